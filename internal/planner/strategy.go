// Package planner turns placement strategies into relocations and measures
// their effect on seek distance.
package planner

import (
	"github.com/pkg/errors"

	"github.com/skyline93/seekmap/internal/cluster"
	"github.com/skyline93/seekmap/internal/hotset"
	"github.com/skyline93/seekmap/internal/layout"
)

// A Strategy chooses the addresses to relocate and their order.
type Strategy interface {
	Name() string
	Plan(t *layout.Trace) ([]uint64, error)
}

// HotList relocates a fixed list of addresses, typically read from a file.
type HotList struct {
	Label     string
	Addresses []uint64
}

func (s HotList) Name() string {
	if s.Label == "" {
		return "hot-list"
	}
	return s.Label
}

// Plan returns the list unchanged.
func (s HotList) Plan(*layout.Trace) ([]uint64, error) {
	return s.Addresses, nil
}

// Frequency relocates the Top most frequently accessed addresses, most
// frequent first.
type Frequency struct {
	Top int
}

func (s Frequency) Name() string {
	return "frequency"
}

func (s Frequency) Plan(t *layout.Trace) ([]uint64, error) {
	return hotset.Count(t).MostFrequent(s.Top), nil
}

// OrganPipe relocates the Top most frequent addresses in organ-pipe order.
type OrganPipe struct {
	Top int
}

func (s OrganPipe) Name() string {
	return "organ-pipe"
}

func (s OrganPipe) Plan(t *layout.Trace) ([]uint64, error) {
	return hotset.OrganPipe(hotset.Count(t).MostFrequent(s.Top)), nil
}

// ClusterOrder relocates addresses in the leaf order of a clustering tree.
// Mapping translates the tree's leaf ids into addresses.
type ClusterOrder struct {
	Tree    *cluster.Tree
	Mapping []uint64
}

func (s ClusterOrder) Name() string {
	return "cluster"
}

func (s ClusterOrder) Plan(*layout.Trace) ([]uint64, error) {
	if s.Tree == nil {
		return nil, errors.New("no cluster tree")
	}
	return cluster.Remap(s.Tree.LeafOrder(), s.Mapping)
}
