package tracefile

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAddresses(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []uint64
	}{
		{"empty", "", nil},
		{"trailing-newline", "1\n2\n3\n", []uint64{1, 2, 3}},
		{"no-trailing-newline", "1\n2\n3", []uint64{1, 2, 3}},
		{"crlf", "10\r\n20\r\n", []uint64{10, 20}},
		{"blanks", "  7\t\n8  \n", []uint64{7, 8}},
		{"large", "18446744073709551615\n", []uint64{^uint64(0)}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := ReadAddresses(strings.NewReader(test.input))
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestScanMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
	}{
		{"word", "1\nabc\n", 2},
		{"negative", "-4\n", 1},
		{"empty-line", "1\n\n2\n", 2},
		{"hex", "1\n2\n0x10\n", 3},
		{"overflow", "18446744073709551616\n", 1},
		{"two-fields", "1 2\n", 1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			calls := 0
			err := Scan(strings.NewReader(test.input), func(uint64) error {
				calls++
				return nil
			})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformed))

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, test.line, perr.Line)
			assert.Equal(t, test.line-1, calls)
			assert.Contains(t, err.Error(), "line")
		})
	}
}

func TestScanStopsOnCallbackError(t *testing.T) {
	stop := errors.New("stop")

	calls := 0
	err := Scan(strings.NewReader("1\n2\n3\n"), func(a uint64) error {
		calls++
		if a == 2 {
			return stop
		}
		return nil
	})
	assert.Equal(t, stop, err)
	assert.Equal(t, 2, calls)
}

func TestFileTypeString(t *testing.T) {
	assert.Equal(t, "trace", TraceFile.String())
	assert.Equal(t, "address list", AddressListFile.String())
	assert.Equal(t, "cluster tree", ClusterTreeFile.String())
	assert.Equal(t, "remap", RemapFile.String())
	assert.Equal(t, "matrix", MatrixFile.String())
	assert.Equal(t, "invalid", FileType(0).String())
}
