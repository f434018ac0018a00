package main

import (
	"io"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/skyline93/seekmap/internal/hotset"
	"github.com/skyline93/seekmap/internal/tracefile"
)

var cmdMatrix = &cobra.Command{
	Use:   "matrix",
	Short: "Write the adjacency matrix of the most frequent blocks",
	Long: `
The "matrix" command counts how often any two of the --top most frequent
blocks are accessed back to back and writes the counts as a dense CLUTO graph
to --out. The address of every matrix row is written to --remap-out, for use
with the "cluster" command. Output names ending in .zst are zstd-compressed.

EXIT STATUS
===========

Exit status is 0 if the command was successful, and non-zero if there was any error.
`,
	DisableAutoGenTag: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := matrixOptions
		opts.Top = topCount(cmd, opts.Top)
		return runMatrix(opts)
	},
}

// MatrixOptions bundles all options for the matrix command.
type MatrixOptions struct {
	Trace    string
	Top      int
	Out      string
	RemapOut string
}

var matrixOptions MatrixOptions

func init() {
	cmdRoot.AddCommand(cmdMatrix)

	f := cmdMatrix.Flags()
	f.StringVar(&matrixOptions.Trace, "trace", "", "trace `file`, one block address per line")
	f.IntVar(&matrixOptions.Top, "top", 0, "use the `n` most frequent addresses (default: from config)")
	f.StringVar(&matrixOptions.Out, "out", "", "write the matrix to `file`")
	f.StringVar(&matrixOptions.RemapOut, "remap-out", "", "write the row addresses to `file`")
}

func writeFile(t tracefile.FileType, name string, fn func(w io.Writer) error) error {
	wr, err := tracefile.Create(name)
	if err != nil {
		return errors.Wrapf(err, "create %v file", t)
	}

	err = fn(wr)
	cerr := wr.Close()
	if err == nil {
		err = cerr
	}
	return errors.Wrapf(err, "write %v file %s", t, name)
}

func runMatrix(opts MatrixOptions) error {
	if opts.Out == "" || opts.RemapOut == "" {
		return errors.New("both --out and --remap-out are required")
	}

	t, _, err := loadTrace(opts.Trace)
	if err != nil {
		return err
	}

	hot := hotset.Count(t).MostFrequent(opts.Top)
	m, err := hotset.Adjacency(t, hot)
	if err != nil {
		return err
	}

	if err := writeFile(tracefile.MatrixFile, opts.Out, m.WriteMatrix); err != nil {
		return err
	}
	if err := writeFile(tracefile.RemapFile, opts.RemapOut, m.WriteRemap); err != nil {
		return err
	}

	log.Infof("wrote %dx%d matrix to %s", m.Size(), m.Size(), opts.Out)
	return nil
}
