package warcline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// LineReader reads CRLF-terminated lines and fixed-size blocks from a Source.
// It is not safe for concurrent use.
type LineReader struct {
	src      Source
	examined int
	offset   int64
	dec      *encoding.Decoder
	closed   bool
}

// NewLineReader returns a LineReader that owns src.
func NewLineReader(src Source) *LineReader {
	return &LineReader{src: src}
}

// NewReader returns a LineReader over r. With opts.Gzip set, r is decompressed
// first.
func NewReader(r io.Reader, opts *Options) (*LineReader, error) {
	if opts != nil && opts.Gzip {
		obj := new(objReader)
		err := obj.Reset(r, true)
		if err != nil {
			return nil, err
		}
		r = obj
	}
	return NewLineReader(NewSource(r, opts)), nil
}

// Offset returns the number of bytes consumed so far.
func (lr *LineReader) Offset() int64 {
	return lr.offset
}

func (lr *LineReader) consume(n int) {
	lr.src.Advance(n)
	lr.offset += int64(n)
	lr.examined = 0
}

// Skip discards the next n bytes. It returns an error wrapping
// ErrSkipOutOfRange if the data ends first.
func (lr *LineReader) Skip(ctx context.Context, n int64) error {
	if n < 0 {
		return fmt.Errorf("skip %d bytes: %w", n, ErrSkipOutOfRange)
	}
	remaining := n
	for remaining > 0 {
		window, exhausted, err := lr.src.Request(ctx, 0)
		if err != nil {
			return err
		}
		if len(window) == 0 && exhausted {
			return fmt.Errorf("skip %d bytes with %d left: %w", n, remaining, ErrSkipOutOfRange)
		}
		step := int64(len(window))
		if step > remaining {
			step = remaining
		}
		lr.consume(int(step))
		remaining -= step
	}
	return nil
}

// ReadExact returns the next n bytes. It returns an error wrapping ErrTruncated
// if fewer than n bytes remain, and never a short slice.
func (lr *LineReader) ReadExact(ctx context.Context, n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("read %d bytes: %w", n, ErrInvalidLength)
	}
	if n == 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return []byte{}, nil
	}
	window, _, err := lr.src.Request(ctx, n)
	if err != nil {
		return nil, err
	}
	if len(window) < n {
		return nil, fmt.Errorf("read %d bytes with %d available: %w", n, len(window), ErrTruncated)
	}
	out := make([]byte, n)
	copy(out, window)
	lr.consume(n)
	return out, nil
}

// ReadLine returns the next line without its CRLF terminator. A lone LF does
// not end a line. Unterminated bytes at the end of the data are returned as a
// final line. ReadLine returns io.EOF once nothing is left.
func (lr *LineReader) ReadLine(ctx context.Context) (string, error) {
	for {
		window, exhausted, err := lr.src.Request(ctx, 0)
		if err != nil {
			return "", err
		}
		if lr.examined > len(window) {
			lr.examined = 0
		}
		for i := lr.examined; i < len(window); {
			idx := bytes.IndexByte(window[i:], '\n')
			if idx < 0 {
				break
			}
			idx += i
			if idx > 0 && window[idx-1] == '\r' {
				line := lr.decode(window[:idx-1])
				lr.consume(idx + 1)
				return line, nil
			}
			i = idx + 1
		}
		if exhausted {
			if len(window) == 0 {
				return "", io.EOF
			}
			// lenient: trailing bytes without CRLF still make a line
			line := lr.decode(window)
			lr.consume(len(window))
			return line, nil
		}
		lr.examined = len(window)
		lr.src.MarkExamined(lr.examined)
	}
}

func (lr *LineReader) decode(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	if lr.dec == nil {
		lr.dec = unicode.UTF8.NewDecoder()
	}
	// the UTF-8 decoder replaces invalid bytes with U+FFFD instead of failing
	out, _ := lr.dec.Bytes(b) //nolint:errcheck // see above
	return string(out)
}

// Close closes the underlying Source. It is safe to call more than once.
func (lr *LineReader) Close() error {
	if lr.closed {
		return nil
	}
	lr.closed = true
	return lr.src.Close()
}
