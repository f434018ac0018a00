package hotset

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// A Matrix counts how often two hot addresses are accessed back to back.
// Rows and columns follow the order of the hot list it was built from.
type Matrix struct {
	addresses []uint64
	counts    [][]int
}

// Adjacency builds the symmetric adjacency matrix of the addresses in hot
// over seq. Consecutive accesses of the same address are not counted.
func Adjacency(seq Accesses, hot []uint64) (*Matrix, error) {
	row := make(map[uint64]int, len(hot))
	for i, a := range hot {
		if _, ok := row[a]; ok {
			return nil, errors.Errorf("address %d listed more than once", a)
		}
		row[a] = i
	}

	m := &Matrix{
		addresses: hot,
		counts:    make([][]int, len(hot)),
	}
	for i := range m.counts {
		m.counts[i] = make([]int, len(hot))
	}

	for i := 1; i < seq.Len(); i++ {
		a, b := seq.At(i-1), seq.At(i)
		if a == b {
			continue
		}
		ra, okA := row[a]
		rb, okB := row[b]
		if !okA || !okB {
			continue
		}
		m.counts[ra][rb]++
		m.counts[rb][ra]++
	}

	return m, nil
}

// Size returns the number of rows.
func (m *Matrix) Size() int {
	return len(m.addresses)
}

// Count returns the adjacency count between rows i and j.
func (m *Matrix) Count(i, j int) int {
	return m.counts[i][j]
}

// WriteMatrix writes the matrix as a dense CLUTO graph: the number of rows on
// the first line followed by one line of space separated counts per row.
func (m *Matrix) WriteMatrix(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n", len(m.counts))
	for _, r := range m.counts {
		for j, c := range r {
			if j > 0 {
				bw.WriteByte(' ')
			}
			fmt.Fprintf(bw, "%d", c)
		}
		bw.WriteByte('\n')
	}
	return errors.Wrap(bw.Flush(), "Flush")
}

// WriteRemap writes the address of each row, one per line, so that leaf ids
// of a clustering of the matrix can be mapped back to addresses.
func (m *Matrix) WriteRemap(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, a := range m.addresses {
		fmt.Fprintf(bw, "%d\n", a)
	}
	return errors.Wrap(bw.Flush(), "Flush")
}
