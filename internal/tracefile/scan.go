package tracefile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrMalformed is wrapped by every ParseError.
var ErrMalformed = errors.New("malformed input")

// ParseError reports a line that is not a decimal unsigned integer.
type ParseError struct {
	Line int // 1-based
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %q: %v", e.Line, e.Text, e.Err)
}

// Unwrap lets errors.Is match ErrMalformed.
func (e *ParseError) Unwrap() error {
	return ErrMalformed
}

// Scan reads one address per line from rd and calls fn for each of them in
// order. Blanks and a trailing carriage return around a number are ignored;
// anything else that does not parse, an empty line included, stops the scan
// with a *ParseError. An error returned by fn stops the scan and is returned
// as is.
func Scan(rd io.Reader, fn func(address uint64) error) error {
	sc := bufio.NewScanner(rd)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())

		v, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			return &ParseError{Line: line, Text: text, Err: err}
		}

		if err := fn(v); err != nil {
			return err
		}
	}

	if err := sc.Err(); err != nil {
		return errors.Wrapf(err, "read after line %d", line)
	}
	return nil
}

// ReadAddresses returns every address in rd, in order.
func ReadAddresses(rd io.Reader) ([]uint64, error) {
	var res []uint64
	err := Scan(rd, func(address uint64) error {
		res = append(res, address)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
