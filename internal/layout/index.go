package layout

import (
	"slices"

	"github.com/pkg/errors"
)

// An Index maps logical block addresses to simulated locations on a
// one-dimensional disk and back.
//
// Both directions are stored in dense arrays indexed directly by the address
// or location value. The forward array answers "where is LBA a", the reverse
// array answers "which LBA sits at location l". Slot 0 exists from the start
// and both arrays grow geometrically as larger addresses are first seen.
//
// The reverse array is the ground truth for placement: bulk operations only
// rearrange reverse slots and then call Reconcile to bring the forward array
// back in line.
type Index struct {
	forward []forwardEntry
	reverse []reverseEntry
	used    int
}

type forwardEntry struct {
	first    int // position of the first access in the sequence
	last     int // position of the last access in the sequence
	location uint64
	used     bool
}

type reverseEntry struct {
	lba  uint64
	used bool
}

// MaxIndexable is the largest address an Index accepts. Both arrays are
// dense and grow to twice the largest address seen, so anything above this
// cannot be allocated on common machines.
const MaxIndexable = 1 << 32

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{
		forward: make([]forwardEntry, 1),
		reverse: make([]reverseEntry, 1),
	}
}

// grow extends s to at least n entries, leaving existing entries in place.
func grow[T any](s []T, n uint64) []T {
	if uint64(len(s)) >= n {
		return s
	}
	return append(s, make([]T, n-uint64(len(s)))...)
}

// RecordFirstSight assigns the identity location to address if it has not
// been seen before and records occurrence as its first and last access.
// For an address that is already used it does nothing and reports false.
//
// The identity location may already hold a different address that was moved
// there by Relocate. Such a call is rejected with ErrPrecondition and the
// index is left untouched.
func (idx *Index) RecordFirstSight(address uint64, occurrence int) (bool, error) {
	if address < uint64(len(idx.forward)) && idx.forward[address].used {
		return false, nil
	}

	if address < uint64(len(idx.reverse)) && idx.reverse[address].used {
		return false, errors.Wrapf(ErrPrecondition,
			"location %d of new address %d is held by address %d", address, address, idx.reverse[address].lba)
	}

	if address > MaxIndexable {
		return false, errors.Wrapf(ErrOutOfRange, "address %d cannot be indexed, limit is %d", address, uint64(MaxIndexable))
	}

	n := 2*address + 1
	if address >= uint64(len(idx.forward)) {
		idx.forward = grow(idx.forward, n)
	}
	if address >= uint64(len(idx.reverse)) {
		idx.reverse = grow(idx.reverse, n)
	}

	idx.forward[address] = forwardEntry{
		first:    occurrence,
		last:     occurrence,
		location: address,
		used:     true,
	}
	idx.reverse[address] = reverseEntry{lba: address, used: true}
	idx.used++

	return true, nil
}

// LocationOf returns the location currently assigned to address. used is
// false if the address has never been seen.
func (idx *Index) LocationOf(address uint64) (location uint64, used bool, err error) {
	if address >= uint64(len(idx.forward)) {
		return 0, false, errors.Wrapf(ErrOutOfRange, "address %d, capacity %d", address, len(idx.forward))
	}

	e := idx.forward[address]
	if !e.used {
		return 0, false, nil
	}
	return e.location, true, nil
}

// AddressAt returns the address placed at location. used is false for an
// empty location.
func (idx *Index) AddressAt(location uint64) (address uint64, used bool, err error) {
	if location >= uint64(len(idx.reverse)) {
		return 0, false, errors.Wrapf(ErrOutOfRange, "location %d, capacity %d", location, len(idx.reverse))
	}

	e := idx.reverse[location]
	if !e.used {
		return 0, false, nil
	}
	return e.lba, true, nil
}

// Reconcile walks the reverse array by ascending location and rewrites every
// forward entry whose location disagrees with the slot holding it. It returns
// the number of entries that were changed.
func (idx *Index) Reconcile() int {
	repaired := 0
	for loc, e := range idx.reverse {
		if !e.used {
			continue
		}

		assertf(e.lba < uint64(len(idx.forward)), "location %d holds address %d beyond capacity", loc, e.lba)
		fe := &idx.forward[e.lba]
		if fe.location != uint64(loc) {
			fe.location = uint64(loc)
			repaired++
		}
	}
	return repaired
}

// Check verifies that the forward and reverse arrays describe the same
// bijection. The returned error wraps ErrInvariant.
func (idx *Index) Check() error {
	forwardUsed := 0
	for a, e := range idx.forward {
		if !e.used {
			continue
		}
		forwardUsed++

		if e.location >= uint64(len(idx.reverse)) {
			return errors.Wrapf(ErrInvariant, "address %d maps to location %d beyond capacity %d",
				a, e.location, len(idx.reverse))
		}
		r := idx.reverse[e.location]
		if !r.used || r.lba != uint64(a) {
			return errors.Wrapf(ErrInvariant, "address %d maps to location %d which holds %d (used=%v)",
				a, e.location, r.lba, r.used)
		}
	}

	reverseUsed := 0
	for loc, r := range idx.reverse {
		if !r.used {
			continue
		}
		reverseUsed++

		if r.lba >= uint64(len(idx.forward)) || !idx.forward[r.lba].used {
			return errors.Wrapf(ErrInvariant, "location %d holds unmapped address %d", loc, r.lba)
		}
		if idx.forward[r.lba].location != uint64(loc) {
			return errors.Wrapf(ErrInvariant, "location %d holds address %d mapped to %d",
				loc, r.lba, idx.forward[r.lba].location)
		}
	}

	if forwardUsed != reverseUsed || forwardUsed != idx.used {
		return errors.Wrapf(ErrInvariant, "used count mismatch: forward %d, reverse %d, recorded %d",
			forwardUsed, reverseUsed, idx.used)
	}
	return nil
}

// Used returns the number of mapped addresses.
func (idx *Index) Used() int {
	return idx.used
}

// Capacity returns the number of address slots and location slots.
func (idx *Index) Capacity() (addresses, locations int) {
	return len(idx.forward), len(idx.reverse)
}

// mapped returns every mapped address in ascending address order.
func (idx *Index) mapped() []uint64 {
	res := make([]uint64, 0, idx.used)
	for a, e := range idx.forward {
		if e.used {
			res = append(res, uint64(a))
		}
	}
	return res
}

// Clone returns a deep copy of the index.
func (idx *Index) Clone() *Index {
	return &Index{
		forward: slices.Clone(idx.forward),
		reverse: slices.Clone(idx.reverse),
		used:    idx.used,
	}
}
