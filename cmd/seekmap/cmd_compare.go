package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/skyline93/seekmap/internal/planner"
	"github.com/skyline93/seekmap/internal/report"
	"github.com/skyline93/seekmap/internal/tracefile"
)

var cmdCompare = &cobra.Command{
	Use:   "compare",
	Short: "Compare placement strategies on one trace",
	Long: `
The "compare" command evaluates every applicable placement strategy on its own
copy of the trace and reports the seek distance of each:

  frequency    the --top most frequent blocks, most frequent first
  organ-pipe   the same blocks in organ-pipe order
  hot-list     the blocks listed in --hot, if given
  cluster      the leaves of --tree mapped through --remap, if given

Strategies run concurrently, at most --workers at a time.

EXIT STATUS
===========

Exit status is 0 if the command was successful, and non-zero if there was any error.
`,
	DisableAutoGenTag: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := compareOptions
		opts.Start = startLocation(cmd, opts.Start)
		opts.Top = topCount(cmd, opts.Top)
		if !cmd.Flags().Changed("workers") {
			opts.Workers = globalOptions.Config.Workers
		}
		return runCompare(cmd.Context(), opts)
	},
}

// CompareOptions bundles all options for the compare command.
type CompareOptions struct {
	Trace   string
	Hot     string
	Tree    string
	Remap   string
	Top     int
	Start   uint64
	Workers int
}

var compareOptions CompareOptions

func init() {
	cmdRoot.AddCommand(cmdCompare)

	f := cmdCompare.Flags()
	f.StringVar(&compareOptions.Trace, "trace", "", "trace `file`, one block address per line")
	f.StringVar(&compareOptions.Hot, "hot", "", "also relocate the addresses listed in `file`")
	f.StringVar(&compareOptions.Tree, "tree", "", "also relocate in the leaf order of CLUTO tree `file`")
	f.StringVar(&compareOptions.Remap, "remap", "", "`file` mapping leaf ids to addresses, required with --tree")
	f.IntVar(&compareOptions.Top, "top", 0, "use the `n` most frequent addresses (default: from config)")
	f.Uint64Var(&compareOptions.Start, "start", 0, "first `location` of the relocated blocks (default: from config)")
	f.IntVar(&compareOptions.Workers, "workers", 0, "evaluate `n` strategies concurrently (default: from config)")
}

func compareStrategies(opts CompareOptions) ([]planner.Strategy, error) {
	strategies := []planner.Strategy{
		planner.Frequency{Top: opts.Top},
		planner.OrganPipe{Top: opts.Top},
	}

	if opts.Hot != "" {
		addresses, err := loadAddresses(tracefile.AddressListFile, opts.Hot)
		if err != nil {
			return nil, err
		}
		strategies = append(strategies, planner.HotList{Addresses: addresses})
	}

	if opts.Tree != "" {
		tree, mapping, err := loadTree(opts.Tree, opts.Remap)
		if err != nil {
			return nil, err
		}
		strategies = append(strategies, planner.ClusterOrder{Tree: tree, Mapping: mapping})
	}

	return strategies, nil
}

func runCompare(ctx context.Context, opts CompareOptions) error {
	strategies, err := compareStrategies(opts)
	if err != nil {
		return err
	}

	t, id, err := loadTrace(opts.Trace)
	if err != nil {
		return err
	}

	rep := report.New(opts.Trace, id)
	rep.Accesses = t.Len()
	rep.Addresses = t.Addresses()
	rep.Distance = t.TotalSeekDistance()

	rep.Results, err = planner.Evaluate(ctx, t, planner.Options{
		Start:   opts.Start,
		Workers: opts.Workers,
		Verify:  globalOptions.Config.Verify,
	}, strategies...)
	if err != nil {
		return err
	}

	return writeReport(rep)
}
