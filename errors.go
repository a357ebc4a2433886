package warcline

import (
	"errors"
	"io"
)

var (
	// ErrSkipOutOfRange is returned by Skip when the source ends before the
	// requested number of bytes could be skipped.
	ErrSkipOutOfRange = errors.New("skip past end of data")

	// ErrTruncated is returned by ReadExact when the source ends before n bytes
	// are available. It matches io.ErrUnexpectedEOF.
	ErrTruncated error = truncatedError{}

	// ErrInvalidLength is returned for negative lengths.
	ErrInvalidLength = errors.New("invalid length")

	// ErrClosed is returned by a source that has already been closed.
	ErrClosed = errors.New("source is closed")
)

type truncatedError struct{}

func (truncatedError) Error() string { return "unexpected end of data" }

func (truncatedError) Is(target error) bool {
	return target == io.ErrUnexpectedEOF
}
