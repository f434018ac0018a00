package layout

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyline93/seekmap/internal/tracefile"
)

func TestIngest(t *testing.T) {
	tr := New(Options{})
	require.NoError(t, tr.Ingest(strings.NewReader("4\n2\r\n 4 \n9")))

	assert.Equal(t, 4, tr.Len())
	assert.Equal(t, 3, tr.Addresses())
	assert.Equal(t, []uint64{4, 2, 4, 9}, []uint64{tr.At(0), tr.At(1), tr.At(2), tr.At(3)})
	assert.Equal(t, uint64(2+2+5), tr.TotalSeekDistance())
	require.NoError(t, tr.Check())
}

func TestIngestStopsAtMalformedLine(t *testing.T) {
	tr := New(Options{})
	err := tr.Ingest(strings.NewReader("1\n2\nthree\n4\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, tracefile.ErrMalformed))

	var perr *tracefile.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 3, perr.Line)
	assert.Equal(t, "three", perr.Text)

	assert.Equal(t, 2, tr.Len(), "accesses before the bad line are kept")
}

func TestIngestRejectsNegative(t *testing.T) {
	tr := New(Options{})
	err := tr.Ingest(strings.NewReader("-1\n"))
	assert.True(t, errors.Is(err, tracefile.ErrMalformed))
	assert.Equal(t, 0, tr.Len())
}

func TestMaxAddress(t *testing.T) {
	tr := New(Options{MaxAddress: 100})
	require.NoError(t, tr.Append(100))

	err := tr.Append(101)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	assert.Equal(t, 1, tr.Len())
}

func TestTraceCloneIsIndependent(t *testing.T) {
	tr := newTestTrace(t, 0, 1, 2, 3, 4)
	c := tr.Clone()

	require.NoError(t, c.Relocate([]uint64{4}, 0))
	require.NoError(t, c.Append(1))

	assert.Equal(t, uint64(4), tr.TotalSeekDistance())
	assert.Equal(t, 5, tr.Len())
	loc, _, err := tr.LocationOf(4)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), loc)

	assert.Equal(t, 6, c.Len())
	loc, _, err = c.LocationOf(4)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), loc)

	occ, err := c.OccurrencesOf(1)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 5}, occ)

	occ, err = tr.OccurrencesOf(1)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, occ)
}

func TestIngestRejectsUnindexableAddress(t *testing.T) {
	tr := New(Options{})
	// 2^50 parses as a valid address but cannot be backed by dense arrays
	err := tr.Ingest(strings.NewReader("7\n1125899906842624\n8\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOutOfRange), "got %v", err)

	assert.Equal(t, 1, tr.Len())
	assert.Equal(t, 1, tr.Addresses())
	addresses, _ := tr.idx.Capacity()
	assert.Equal(t, 15, addresses)
	require.NoError(t, tr.Check())
}
