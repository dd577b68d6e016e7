// Package csvdecode turns a comma-delimited text stream into typed records.
//
// The dialect is fixed: one record per line, fields separated by ',' with no
// quoting or escaping. The first line is a header and is always discarded.
// Lines a schema rejects are dropped silently; only stream I/O errors fail.
package csvdecode

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// maxLineSize bounds a single line. Longer lines are dropped like any other
// line the schema rejects. LISTING_STATUS rows are well under 1KB.
const maxLineSize = 1 << 20

// ErrStreamFailure wraps any I/O error raised while reading the stream.
var ErrStreamFailure = errors.New("csvdecode: stream failure")

// LineParser maps the fields of one line to a record.
// It returns false when the line does not satisfy the schema.
type LineParser[T any] func(fields []string) (T, bool)

// Decode reads r to the end and returns the records parse accepted, in order.
// The result is never nil when err is nil.
func Decode[T any](r io.Reader, parse LineParser[T]) ([]T, error) {
	return decode(r, parse, maxLineSize)
}

func decode[T any](r io.Reader, parse LineParser[T], maxLine int) ([]T, error) {
	br := bufio.NewReaderSize(r, 64*1024)

	out := make([]T, 0)
	header := true
	var (
		buf     []byte
		tooLong bool
	)
	for {
		chunk, err := br.ReadSlice('\n')
		if len(buf)+len(chunk) > maxLine {
			// 行末まで読み捨てる
			tooLong = true
			buf = buf[:0]
		}
		if !tooLong {
			buf = append(buf, chunk...)
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %w", ErrStreamFailure, err)
		}

		if len(buf) > 0 || tooLong {
			switch {
			case header:
				header = false
			case tooLong:
			default:
				line := strings.TrimSuffix(strings.TrimSuffix(string(buf), "\n"), "\r")
				if line != "" {
					if rec, ok := parse(Split(line)); ok {
						out = append(out, rec)
					}
				}
			}
		}
		buf, tooLong = buf[:0], false

		if err != nil {
			return out, nil
		}
	}
}

// Split splits a line on ',' without any quote handling.
func Split(line string) []string {
	return strings.Split(line, ",")
}

// Field returns fields[i] trimmed of surrounding space, or "" when out of range.
func Field(fields []string, i int) string {
	if i < 0 || i >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[i])
}
