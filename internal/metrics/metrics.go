// Package metrics exposes FALCON's global counters as Prometheus gauges
// (SPEC_FULL.md §3). It is opt-in: the core falcon engine never imports
// this package, so embedding the engine in a latency-sensitive cache
// simulator carries zero observability overhead unless a host explicitly
// wires a Recorder in, the way cmd/falconsim does.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Recorder holds the gauges a host samples from the engine (cmd/falconsim
// samples after each on_access call). NewRecorder registers them with a
// prometheus.Registerer, so build one Recorder per registry at startup.
type Recorder struct {
	PfIssued       prometheus.Gauge
	PfUseful       prometheus.Gauge
	GlobalAccuracy prometheus.Gauge
	STOccupancy    prometheus.Gauge
	PTOccupancy    prometheus.Gauge
}

// NewRecorder builds a Recorder's gauges, namespaced under "falcon", and
// registers them with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		PfIssued: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "falcon",
			Name:      "pf_issued_total",
			Help:      "High-confidence prefetches issued (GHR.pf_issued).",
		}),
		PfUseful: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "falcon",
			Name:      "pf_useful_total",
			Help:      "Issued prefetches later touched by a demand access (GHR.pf_useful).",
		}),
		GlobalAccuracy: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "falcon",
			Name:      "global_accuracy_percent",
			Help:      "100 * pf_useful / pf_issued, refreshed each on_access.",
		}),
		STOccupancy: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "falcon",
			Name:      "st_occupancy_ways",
			Help:      "Valid Signature Table ways currently in use.",
		}),
		PTOccupancy: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "falcon",
			Name:      "pt_occupancy_sets",
			Help:      "Pattern Table sets with a nonzero signature counter.",
		}),
	}

	reg.MustRegister(r.PfIssued, r.PfUseful, r.GlobalAccuracy, r.STOccupancy, r.PTOccupancy)
	return r
}

// Sample updates the gauges from the engine's current global counters and
// table occupancy. It takes plain values so this package need not import
// the engine; cmd/falconsim passes the results of its Engine's accessors.
func (r *Recorder) Sample(pfIssued, pfUseful, globalAccuracy, stOccupancy, ptOccupancy uint32) {
	r.PfIssued.Set(float64(pfIssued))
	r.PfUseful.Set(float64(pfUseful))
	r.GlobalAccuracy.Set(float64(globalAccuracy))
	r.STOccupancy.Set(float64(stOccupancy))
	r.PTOccupancy.Set(float64(ptOccupancy))
}
