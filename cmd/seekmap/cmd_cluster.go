package main

import (
	"github.com/spf13/cobra"

	"github.com/skyline93/seekmap/internal/planner"
	"github.com/skyline93/seekmap/internal/report"
)

var cmdCluster = &cobra.Command{
	Use:   "cluster",
	Short: "Relocate blocks in the leaf order of a clustering tree",
	Long: `
The "cluster" command reads a hierarchical clustering tree as written by
CLUTO with -fulltree, maps its leaves to block addresses through the --remap
file (as written by the "matrix" command) and relocates the blocks in leaf
order to a contiguous region starting at --start.

EXIT STATUS
===========

Exit status is 0 if the command was successful, and non-zero if there was any error.
`,
	DisableAutoGenTag: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := clusterOptions
		opts.Start = startLocation(cmd, opts.Start)
		return runCluster(opts)
	},
}

// ClusterOptions bundles all options for the cluster command.
type ClusterOptions struct {
	Trace string
	Tree  string
	Remap string
	Start uint64
}

var clusterOptions ClusterOptions

func init() {
	cmdRoot.AddCommand(cmdCluster)

	f := cmdCluster.Flags()
	f.StringVar(&clusterOptions.Trace, "trace", "", "trace `file`, one block address per line")
	f.StringVar(&clusterOptions.Tree, "tree", "", "CLUTO tree `file`")
	f.StringVar(&clusterOptions.Remap, "remap", "", "`file` mapping leaf ids to addresses, one per line")
	f.Uint64Var(&clusterOptions.Start, "start", 0, "first `location` of the relocated block (default: from config)")
}

func runCluster(opts ClusterOptions) error {
	tree, mapping, err := loadTree(opts.Tree, opts.Remap)
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

	s := planner.ClusterOrder{Tree: tree, Mapping: mapping}
	res, err := planner.Apply(t, s, planner.Options{Start: opts.Start, Verify: globalOptions.Config.Verify})
	if err != nil {
		return err
	}
	rep.Distance = res.After
	rep.Results = append(rep.Results, res)

	return writeReport(rep)
}
