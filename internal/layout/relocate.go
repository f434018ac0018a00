package layout

import (
	"slices"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Relocate moves addresses to consecutive locations starting at start, in
// the order given. Every other mapped address keeps its relative order and
// spacing: the slots vacated by the moved addresses are closed up, and the
// slots at and after start are shifted up to make room for the block.
//
// All addresses must be mapped and distinct, and start must be a valid
// insertion point once the moved addresses have been taken out, that is
// start <= locations - len(addresses). A call that violates this returns an
// error wrapping ErrPrecondition and changes nothing.
func (idx *Index) Relocate(addresses []uint64, start uint64) error {
	if len(addresses) == 0 {
		return nil
	}

	moving, err := idx.extractionSet(addresses)
	if err != nil {
		return err
	}

	remaining := uint64(len(idx.reverse) - len(addresses))
	if start > remaining {
		return errors.Wrapf(ErrPrecondition, "start %d beyond last insertion point %d", start, remaining)
	}

	log.Debugf("relocating %d addresses to %d", len(addresses), start)

	idx.extract(moving)
	idx.insert(addresses, start)
	repaired := idx.Reconcile()

	for i, a := range addresses {
		loc := start + uint64(i)
		assertf(idx.forward[a].location == loc && idx.reverse[loc].lba == a,
			"address %d expected at %d after relocation, found at %d", a, loc, idx.forward[a].location)
	}

	log.Debugf("relocation repaired %d forward entries", repaired)
	return nil
}

// extractionSet maps every address to its current location, rejecting
// unmapped and repeated addresses.
func (idx *Index) extractionSet(addresses []uint64) (map[uint64]uint64, error) {
	set := make(map[uint64]uint64, len(addresses))
	for _, a := range addresses {
		if a >= uint64(len(idx.forward)) || !idx.forward[a].used {
			return nil, errors.Wrapf(ErrPrecondition, "address %d is not mapped", a)
		}
		if _, ok := set[a]; ok {
			return nil, errors.Wrapf(ErrPrecondition, "address %d listed more than once", a)
		}
		set[a] = idx.forward[a].location
	}
	return set, nil
}

// extract removes the reverse slots of the addresses in moving and compacts
// the array behind them. Unused slots are kept so that gaps between the
// remaining addresses survive.
func (idx *Index) extract(moving map[uint64]uint64) {
	shift := 0
	for i, e := range idx.reverse {
		if loc, ok := moving[e.lba]; ok && e.used {
			assertf(loc == uint64(i), "address %d found at %d, forward index says %d", e.lba, i, loc)
			shift++
			continue
		}
		idx.reverse[i-shift] = e
	}

	assertf(shift == len(moving), "extracted %d slots for %d addresses", shift, len(moving))
	idx.reverse = idx.reverse[:len(idx.reverse)-shift]
}

// insert places a used slot for each address, in order, before start.
func (idx *Index) insert(addresses []uint64, start uint64) {
	block := make([]reverseEntry, len(addresses))
	for i, a := range addresses {
		block[i] = reverseEntry{lba: a, used: true}
	}
	idx.reverse = slices.Insert(idx.reverse, int(start), block...)
}
