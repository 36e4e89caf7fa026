package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/falconsim/falcon/internal/depth"
)

func newFeedbackCmd() *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Exercise the external depth controller against a synthetic feedback stream",
		RunE: func(cmd *cobra.Command, args []string) error {
			runFeedbackDemo(steps)
			return nil
		},
	}

	cmd.Flags().IntVar(&steps, "steps", 8, "number of synthetic feedback samples to replay")
	return cmd
}

// syntheticFeedback alternates between a cache-friendly regime (low miss
// rate, depth should grow) and a thrashing regime (high hit rate on the
// replacement policy's own terms, depth should shrink), so the printed
// trajectory visibly moves in both directions.
func syntheticFeedback(step int) depth.Feedback {
	if step%2 == 0 {
		return depth.Feedback{MissRate: 5, HitRate: 30, ReplaceRate: 10, Utilization: 60}
	}
	return depth.Feedback{MissRate: 40, HitRate: 70, ReplaceRate: 50, Utilization: 90}
}

// runFeedbackDemo prints the depth trajectory this controller would
// produce; it never feeds back into any Engine's internal lookahead
// recursion cap (SPEC_FULL.md §4, spec.md §4.7).
func runFeedbackDemo(steps int) {
	fb0 := syntheticFeedback(0)
	d := depth.InitialDepth(fb0)
	fmt.Printf("step 0: feedback=%+v initial_depth=%d pressure=%d\n", fb0, d, depth.Pressure(fb0))

	for i := 1; i < steps; i++ {
		fb := syntheticFeedback(i)
		d = depth.Adjust(fb, d)
		fmt.Printf("step %d: feedback=%+v depth=%d pressure=%d\n", i, fb, d, depth.Pressure(fb))
	}
}
