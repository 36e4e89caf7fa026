// Command falconsim is a trace-replay host for the falcon prefetcher
// engine: it supplies the callbacks and geometry constants a real cache
// simulator would normally own (SPEC_FULL.md §3, §4).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "falconsim",
		Short: "Trace-replay harness for the FALCON signature-path-correlation prefetcher",
	}

	// glog registers its verbosity/logtostderr flags on the standard
	// flag.CommandLine set; cobra's persistent flags wrap that set so
	// -v/-logtostderr work the same as any glog-based binary.
	root.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	root.AddCommand(newReplayCmd())
	root.AddCommand(newFeedbackCmd())
	root.AddCommand(newGenCmd())

	defer glog.Flush()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
