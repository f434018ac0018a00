package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/skyline93/seekmap/internal/cluster"
	"github.com/skyline93/seekmap/internal/layout"
	"github.com/skyline93/seekmap/internal/report"
	"github.com/skyline93/seekmap/internal/tracefile"
)

// loadTrace ingests the named trace file and returns it with the ID of its
// contents. Errors name the file and, for malformed input, the line.
func loadTrace(name string) (*layout.Trace, report.ID, error) {
	if name == "" {
		return nil, report.ID{}, errors.New("no trace file given, use --trace")
	}

	rd, err := tracefile.Open(name)
	if err != nil {
		return nil, report.ID{}, errors.Wrapf(err, "open %v file", tracefile.TraceFile)
	}
	defer rd.Close()

	h := report.NewHasher()
	t := layout.New(layout.Options{MaxAddress: globalOptions.Config.MaxAddress})
	if err := t.Ingest(io.TeeReader(rd, h)); err != nil {
		return nil, report.ID{}, errors.Wrapf(err, "load %v file %s", tracefile.TraceFile, name)
	}

	id := report.IDFromHash(h)
	log.Infof("loaded trace %s (%s): %d accesses, %d addresses", name, id.Str(), t.Len(), t.Addresses())
	return t, id, nil
}

// loadAddresses reads a file holding one address per line.
func loadAddresses(t tracefile.FileType, name string) ([]uint64, error) {
	res, err := tracefile.ReadAddressFile(name)
	if err != nil {
		return nil, errors.Wrapf(err, "load %v file %s", t, name)
	}
	return res, nil
}

// loadTree reads a CLUTO tree file and the mapping from its leaves to
// addresses.
func loadTree(treeFile, remapFile string) (*cluster.Tree, []uint64, error) {
	if remapFile == "" {
		return nil, nil, errors.New("a cluster tree needs a --remap file")
	}

	rd, err := tracefile.Open(treeFile)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open %v file", tracefile.ClusterTreeFile)
	}
	defer rd.Close()

	tree, err := cluster.ReadTree(rd)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "load %v file %s", tracefile.ClusterTreeFile, treeFile)
	}

	mapping, err := loadAddresses(tracefile.RemapFile, remapFile)
	if err != nil {
		return nil, nil, err
	}

	log.Debugf("loaded cluster tree %s: %d nodes, root %d, %d leaves mapped", treeFile, tree.Len(), tree.Root(), len(mapping))
	return tree, mapping, nil
}

// startLocation returns the --start flag if it was given, otherwise the
// configured default.
func startLocation(cmd *cobra.Command, flag uint64) uint64 {
	if cmd.Flags().Changed("start") {
		return flag
	}
	return globalOptions.Config.Start
}

// topCount returns the --top flag if it was given, otherwise the configured
// default.
func topCount(cmd *cobra.Command, flag int) int {
	if cmd.Flags().Changed("top") {
		return flag
	}
	return globalOptions.Config.Top
}

// stdout receives reports.
var stdout io.Writer = os.Stdout

func writeReport(rep *report.Report) error {
	return rep.Write(stdout, globalOptions.Config.Format)
}
