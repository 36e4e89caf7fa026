package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/falconsim/falcon/internal/tracegen"
)

func newGenCmd() *cobra.Command {
	var pattern string
	var count int
	var out string

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Synthesize a memory access trace for replay, instead of recording a real one",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen(tracegen.Pattern(pattern), count, out)
		},
	}

	cmd.Flags().StringVar(&pattern, "pattern", string(tracegen.Sequential), "sequential|strided|alternating|page-crossing")
	cmd.Flags().IntVar(&count, "count", 64, "number of accesses to synthesize")
	cmd.Flags().StringVar(&out, "out", "-", "output trace path, or - for stdout")
	return cmd
}

func runGen(pattern tracegen.Pattern, count int, out string) error {
	g := tracegen.New(pattern, 0x1, 6, 12)
	accesses := g.Generate(count)

	w := os.Stdout
	if out != "-" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("creating trace output: %w", err)
		}
		defer f.Close()
		w = f
	}

	bw := bufio.NewWriter(w)
	defer bw.Flush()
	for _, a := range accesses {
		fmt.Fprintf(bw, "%#x,%#x,%d,%d\n", a.Addr, a.IP, a.Hit, a.Typ)
	}
	return nil
}
