package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/skyline93/seekmap/internal/planner"
	"github.com/skyline93/seekmap/internal/report"
	"github.com/skyline93/seekmap/internal/tracefile"
)

var cmdRelocate = &cobra.Command{
	Use:   "relocate",
	Short: "Relocate hot blocks and compare seek distance",
	Long: `
The "relocate" command moves a set of hot blocks to a contiguous region
starting at --start and prints the seek distance before and after.

The hot blocks are either read from --hot, one address per line without
repetitions, or chosen as the --top most frequently accessed blocks of the
trace, optionally arranged in organ-pipe order.

EXIT STATUS
===========

Exit status is 0 if the command was successful, and non-zero if there was any error.
`,
	DisableAutoGenTag: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := relocateOptions
		opts.Start = startLocation(cmd, opts.Start)
		opts.Top = topCount(cmd, opts.Top)
		return runRelocate(opts)
	},
}

// RelocateOptions bundles all options for the relocate command.
type RelocateOptions struct {
	Trace     string
	Hot       string
	Top       int
	OrganPipe bool
	Start     uint64
}

var relocateOptions RelocateOptions

func init() {
	cmdRoot.AddCommand(cmdRelocate)

	f := cmdRelocate.Flags()
	f.StringVar(&relocateOptions.Trace, "trace", "", "trace `file`, one block address per line")
	f.StringVar(&relocateOptions.Hot, "hot", "", "relocate the addresses listed in `file`")
	f.IntVar(&relocateOptions.Top, "top", 0, "relocate the `n` most frequent addresses (default: from config)")
	f.BoolVar(&relocateOptions.OrganPipe, "organ-pipe", false, "arrange the most frequent addresses in organ-pipe order")
	f.Uint64Var(&relocateOptions.Start, "start", 0, "first `location` of the relocated block (default: from config)")
}

func relocateStrategy(opts RelocateOptions) (planner.Strategy, error) {
	if opts.Hot != "" {
		if opts.OrganPipe {
			return nil, errors.New("--organ-pipe cannot be combined with --hot")
		}
		addresses, err := loadAddresses(tracefile.AddressListFile, opts.Hot)
		if err != nil {
			return nil, err
		}
		return planner.HotList{Addresses: addresses}, nil
	}

	if opts.OrganPipe {
		return planner.OrganPipe{Top: opts.Top}, nil
	}
	return planner.Frequency{Top: opts.Top}, nil
}

func runRelocate(opts RelocateOptions) error {
	s, err := relocateStrategy(opts)
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

	res, err := planner.Apply(t, s, planner.Options{Start: opts.Start, Verify: globalOptions.Config.Verify})
	if err != nil {
		return err
	}
	rep.Distance = res.After
	rep.Results = append(rep.Results, res)

	return writeReport(rep)
}
