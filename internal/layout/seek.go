package layout

// TotalSeekDistance returns the sum of the distances between the locations of
// every pair of consecutive accesses. A sequence with fewer than two accesses
// has a distance of zero.
func (s *Sequence) TotalSeekDistance() uint64 {
	var total uint64
	for i := 1; i < len(s.records); i++ {
		total += distance(s.location(i-1), s.location(i))
	}
	return total
}

func (s *Sequence) location(i int) uint64 {
	return s.idx.forward[s.records[i].lba].location
}

// distance returns |a-b| without underflowing.
func distance(a, b uint64) uint64 {
	if a < b {
		return b - a
	}
	return a - b
}
