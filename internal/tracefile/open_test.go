package tracefile

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = "5\n3\n5\n1000\n"

func writeZstd(t *testing.T, name string, data []byte) {
	t.Helper()

	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	defer enc.Close()

	require.NoError(t, os.WriteFile(name, enc.EncodeAll(data, nil), 0o644))
}

func TestOpenPlain(t *testing.T) {
	name := filepath.Join(t.TempDir(), "trace.txt")
	require.NoError(t, os.WriteFile(name, []byte(sample), 0o644))

	got, err := ReadAddressFile(name)
	require.NoError(t, err)
	assert.Equal(t, []uint64{5, 3, 5, 1000}, got)
}

func TestOpenZstd(t *testing.T) {
	name := filepath.Join(t.TempDir(), "trace")
	writeZstd(t, name, []byte(sample))

	rd, err := Open(name)
	require.NoError(t, err)
	data, err := io.ReadAll(rd)
	require.NoError(t, err)
	require.NoError(t, rd.Close())

	assert.Equal(t, sample, string(data))
}

func TestOpenEmptyFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(name, nil, 0o644))

	got, err := ReadAddressFile(name)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestCreateRoundTrip(t *testing.T) {
	for _, base := range []string{"out.txt", "out.txt.zst"} {
		t.Run(base, func(t *testing.T) {
			name := filepath.Join(t.TempDir(), base)

			wr, err := Create(name)
			require.NoError(t, err)
			_, err = io.WriteString(wr, sample)
			require.NoError(t, err)
			require.NoError(t, wr.Close())

			raw, err := os.ReadFile(name)
			require.NoError(t, err)
			if filepath.Ext(base) == zstdSuffix {
				assert.Equal(t, zstdMagic, raw[:4])
			} else {
				assert.Equal(t, sample, string(raw))
			}

			got, err := ReadAddressFile(name)
			require.NoError(t, err)
			assert.Equal(t, []uint64{5, 3, 5, 1000}, got)
		})
	}
}
