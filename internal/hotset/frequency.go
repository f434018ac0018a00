// Package hotset picks candidate "hot" addresses from a trace: the most
// frequently accessed ones, arranged for relocation, and the adjacency counts
// between them used as clustering input.
package hotset

import (
	"sort"
)

// Accesses gives read access to an ingested access sequence.
type Accesses interface {
	Len() int
	At(i int) uint64
}

// Frequencies holds the number of accesses per address.
type Frequencies map[uint64]int

// Count returns how often each address occurs in seq.
func Count(seq Accesses) Frequencies {
	f := make(Frequencies)
	for i := 0; i < seq.Len(); i++ {
		f[seq.At(i)]++
	}
	return f
}

// MostFrequent returns up to n addresses ordered from most to least
// frequently accessed. Addresses with equal counts are ordered by ascending
// address. n <= 0 returns every address.
func (f Frequencies) MostFrequent(n int) []uint64 {
	res := make([]uint64, 0, len(f))
	for a := range f {
		res = append(res, a)
	}

	sort.Slice(res, func(i, j int) bool {
		ci, cj := f[res[i]], f[res[j]]
		if ci != cj {
			return ci > cj
		}
		return res[i] < res[j]
	})

	if n > 0 && n < len(res) {
		res = res[:n]
	}
	return res
}

// OrganPipe rearranges a most-to-least frequent list so that the most
// frequent address sits in the middle and frequency falls off towards both
// ends. Elements at even positions are prepended, elements at odd positions
// appended.
func OrganPipe(order []uint64) []uint64 {
	front := make([]uint64, 0, (len(order)+1)/2)
	back := make([]uint64, 0, len(order)/2)
	for i, a := range order {
		if i%2 == 0 {
			front = append(front, a)
		} else {
			back = append(back, a)
		}
	}

	res := make([]uint64, 0, len(order))
	for i := len(front) - 1; i >= 0; i-- {
		res = append(res, front[i])
	}
	return append(res, back...)
}
