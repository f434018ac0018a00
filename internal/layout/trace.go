package layout

import (
	"io"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/skyline93/seekmap/internal/tracefile"
)

// Options configures a Trace.
type Options struct {
	// MaxAddress is the largest address Append accepts. Zero leaves only the
	// MaxIndexable limit. The index is dense, so a single huge address
	// allocates memory in proportion to its value.
	MaxAddress uint64
}

// A Trace is a single session over one workload: the sequence of accesses
// and the placement of every address seen in it.
//
// A Trace must not be used from more than one goroutine at a time.
type Trace struct {
	opts Options
	idx  *Index
	seq  *Sequence
}

// New returns an empty trace.
func New(opts Options) *Trace {
	idx := NewIndex()
	return &Trace{
		opts: opts,
		idx:  idx,
		seq:  NewSequence(idx),
	}
}

// Ingest appends every address read from rd, one per line, in order. On a
// malformed line the error carries the line number and ingestion stops; the
// accesses read before it remain in the trace.
func (t *Trace) Ingest(rd io.Reader) error {
	before := t.seq.Len()
	err := tracefile.Scan(rd, func(address uint64) error {
		return t.Append(address)
	})
	if err != nil {
		return err
	}

	_, locations := t.idx.Capacity()
	log.Debugf("ingested %d accesses, %d addresses mapped onto %d locations", t.seq.Len()-before, t.idx.Used(), locations)
	return nil
}

// Append records a single access.
func (t *Trace) Append(address uint64) error {
	if t.opts.MaxAddress != 0 && address > t.opts.MaxAddress {
		return errors.Wrapf(ErrOutOfRange, "address %d exceeds limit %d", address, t.opts.MaxAddress)
	}
	return t.seq.Append(address)
}

// TotalSeekDistance returns the seek distance of the trace under the current
// placement.
func (t *Trace) TotalSeekDistance() uint64 {
	return t.seq.TotalSeekDistance()
}

// Relocate moves addresses to a contiguous block at start. See
// Index.Relocate.
func (t *Trace) Relocate(addresses []uint64, start uint64) error {
	return t.idx.Relocate(addresses, start)
}

// LocationOf returns the location of address.
func (t *Trace) LocationOf(address uint64) (uint64, bool, error) {
	return t.idx.LocationOf(address)
}

// AddressAt returns the address placed at location.
func (t *Trace) AddressAt(location uint64) (uint64, bool, error) {
	return t.idx.AddressAt(location)
}

// OccurrencesOf returns the positions of every access of address.
func (t *Trace) OccurrencesOf(address uint64) ([]int, error) {
	return t.seq.OccurrencesOf(address)
}

// Reconcile repairs the forward index from the reverse index.
func (t *Trace) Reconcile() int {
	return t.idx.Reconcile()
}

// Check verifies the placement bijection.
func (t *Trace) Check() error {
	return t.idx.Check()
}

// Len returns the number of accesses.
func (t *Trace) Len() int {
	return t.seq.Len()
}

// At returns the address accessed at position i.
func (t *Trace) At(i int) uint64 {
	return t.seq.At(i)
}

// Addresses returns the number of distinct addresses seen.
func (t *Trace) Addresses() int {
	return t.idx.Used()
}

// Clone returns an independent copy of the trace. Relocating the copy does
// not affect the original.
func (t *Trace) Clone() *Trace {
	idx := t.idx.Clone()
	return &Trace{
		opts: t.opts,
		idx:  idx,
		seq:  t.seq.clone(idx),
	}
}
