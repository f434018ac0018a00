package tracefile

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// zstdMagic starts every zstd frame.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// zstdSuffix selects compression for files written by Create.
const zstdSuffix = ".zst"

type readCloser struct {
	io.Reader
	close func() error
}

func (r *readCloser) Close() error {
	return r.close()
}

// Open opens the named file for reading. Files that start with a zstd frame
// are decompressed transparently.
func Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}

	return NewReader(f)
}

// NewReader wraps rd, decompressing it if it starts with a zstd frame.
// Closing the result closes rd.
func NewReader(rd io.ReadCloser) (io.ReadCloser, error) {
	br := bufio.NewReader(rd)
	head, err := br.Peek(len(zstdMagic))
	if err != nil && err != io.EOF {
		_ = rd.Close()
		return nil, errors.Wrap(err, "Peek")
	}

	if !bytes.Equal(head, zstdMagic) {
		return &readCloser{Reader: br, close: rd.Close}, nil
	}

	dec, err := zstd.NewReader(br)
	if err != nil {
		_ = rd.Close()
		return nil, errors.Wrap(err, "zstd.NewReader")
	}

	return &readCloser{
		Reader: dec,
		close: func() error {
			dec.Close()
			return rd.Close()
		},
	}, nil
}

type writeCloser struct {
	io.Writer
	close func() error
}

func (w *writeCloser) Close() error {
	return w.close()
}

// Create creates or truncates the named file for writing. Names ending in
// ".zst" are written zstd-compressed.
func Create(name string) (io.WriteCloser, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, err
	}

	if !strings.HasSuffix(name, zstdSuffix) {
		return f, nil
	}

	enc, err := zstd.NewWriter(f)
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrap(err, "zstd.NewWriter")
	}

	return &writeCloser{
		Writer: enc,
		close: func() error {
			err := enc.Close()
			cerr := f.Close()
			if err == nil {
				err = cerr
			}
			return err
		},
	}, nil
}

// ReadAddressFile returns the addresses listed in the named file.
func ReadAddressFile(name string) ([]uint64, error) {
	rd, err := Open(name)
	if err != nil {
		return nil, err
	}

	res, err := ReadAddresses(rd)
	if err != nil {
		_ = rd.Close()
		return nil, err
	}
	return res, rd.Close()
}
