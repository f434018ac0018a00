package layout

import (
	"slices"

	"github.com/pkg/errors"
)

// none marks the end of an occurrence chain.
const none = -1

// access is one entry of the trace. next links to the following access of
// the same address, or none for the last one.
type access struct {
	lba  uint64
	next int
}

// A Sequence is the append-only record of every access in a trace. Accesses
// of the same address are chained so that all occurrences of an address can
// be listed without scanning the whole trace.
//
// A Sequence shares its Index: appending a never-seen address assigns it a
// location there, and the first/last bookkeeping for every address is kept
// in the Index's forward entries.
type Sequence struct {
	idx     *Index
	records []access
}

// NewSequence returns an empty sequence that records into idx.
func NewSequence(idx *Index) *Sequence {
	return &Sequence{idx: idx}
}

// Append adds an access of address to the end of the sequence.
func (s *Sequence) Append(address uint64) error {
	pos := len(s.records)

	if address < uint64(len(s.idx.forward)) && s.idx.forward[address].used {
		fe := &s.idx.forward[address]
		s.records[fe.last].next = pos
		fe.last = pos
		s.records = append(s.records, access{lba: address, next: none})
		return nil
	}

	if _, err := s.idx.RecordFirstSight(address, pos); err != nil {
		return err
	}
	s.records = append(s.records, access{lba: address, next: none})
	return nil
}

// OccurrencesOf returns the positions of every access of address in
// increasing order. The result is empty for an address that was never
// accessed.
func (s *Sequence) OccurrencesOf(address uint64) ([]int, error) {
	if address >= uint64(len(s.idx.forward)) {
		return nil, errors.Wrapf(ErrOutOfRange, "address %d, capacity %d", address, len(s.idx.forward))
	}

	fe := s.idx.forward[address]
	if !fe.used {
		return []int{}, nil
	}

	res := []int{fe.first}
	for pos := fe.first; pos != fe.last; {
		pos = s.records[pos].next
		assertf(pos != none, "occurrence chain of address %d ends before its last access", address)
		res = append(res, pos)
	}
	return res, nil
}

// Len returns the number of accesses.
func (s *Sequence) Len() int {
	return len(s.records)
}

// At returns the address accessed at position i.
func (s *Sequence) At(i int) uint64 {
	return s.records[i].lba
}

func (s *Sequence) clone(idx *Index) *Sequence {
	return &Sequence{idx: idx, records: slices.Clone(s.records)}
}
