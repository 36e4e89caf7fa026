package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, g.Write(&m))
	return m.GetGauge().GetValue()
}

func TestNewRecorderRegistersAllGauges(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewRecorder(reg)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, mfs, 5)
}

func TestSampleUpdatesGaugeValues(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	r.Sample(10, 4, 40, 12, 33)

	require.Equal(t, float64(10), gaugeValue(t, r.PfIssued))
	require.Equal(t, float64(4), gaugeValue(t, r.PfUseful))
	require.Equal(t, float64(40), gaugeValue(t, r.GlobalAccuracy))
	require.Equal(t, float64(12), gaugeValue(t, r.STOccupancy))
	require.Equal(t, float64(33), gaugeValue(t, r.PTOccupancy))
}
