package main

import (
	"github.com/spf13/cobra"

	"github.com/skyline93/seekmap/internal/report"
)

var cmdSeek = &cobra.Command{
	Use:   "seek",
	Short: "Print the total seek distance of a trace",
	Long: `
The "seek" command loads a trace with every block at its identity location and
prints the total seek distance.

EXIT STATUS
===========

Exit status is 0 if the command was successful, and non-zero if there was any error.
`,
	DisableAutoGenTag: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeek(seekOptions)
	},
}

// SeekOptions bundles all options for the seek command.
type SeekOptions struct {
	Trace string
}

var seekOptions SeekOptions

func init() {
	cmdRoot.AddCommand(cmdSeek)

	f := cmdSeek.Flags()
	f.StringVar(&seekOptions.Trace, "trace", "", "trace `file`, one block address per line")
}

func runSeek(opts SeekOptions) error {
	t, id, err := loadTrace(opts.Trace)
	if err != nil {
		return err
	}

	rep := report.New(opts.Trace, id)
	rep.Accesses = t.Len()
	rep.Addresses = t.Addresses()
	rep.Distance = t.TotalSeekDistance()

	return writeReport(rep)
}
