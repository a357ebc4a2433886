package warcline

import (
	"context"
	"io"
)

const (
	newBufferSize            = 8192
	maxConsecutiveEmptyReads = 100
)

// byteReader is a Source backed by an io.Reader. The window is data[start:end].
// The buffer is compacted before it grows, so it stays as large as the longest
// line or ReadExact request seen so far.
type byteReader struct {
	r          io.Reader
	data       []byte
	start, end int
	examined   int
	eof        bool
	err        error
	closed     bool
}

// NewSource returns a Source reading from r. If r is an io.Closer it is closed
// along with the Source.
func NewSource(r io.Reader, opts *Options) Source {
	size := newBufferSize
	if opts != nil && opts.BufferSize > 0 {
		size = opts.BufferSize
	}
	return &byteReader{
		r:    r,
		data: make([]byte, size),
	}
}

func (br *byteReader) window() []byte {
	return br.data[br.start:br.end]
}

func (br *byteReader) buffered() int {
	return br.end - br.start
}

func (br *byteReader) Request(ctx context.Context, min int) ([]byte, bool, error) {
	if br.closed {
		return nil, true, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, br.eof, err
	}
	if br.err != nil {
		return nil, br.eof, br.err
	}
	if min <= 0 {
		if br.buffered() <= br.examined && !br.eof {
			if err := br.extend(ctx); err != nil {
				return nil, br.eof, err
			}
		}
		return br.window(), br.eof, nil
	}
	for br.buffered() < min && !br.eof {
		if err := br.extend(ctx); err != nil {
			return nil, br.eof, err
		}
	}
	return br.window(), br.eof, nil
}

// extend reads once from r into free space. It returns after the first read
// that yields data or reaches EOF.
func (br *byteReader) extend(ctx context.Context) error {
	br.ensureSpace()
	for i := 0; i < maxConsecutiveEmptyReads; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := br.r.Read(br.data[br.end:])
		if n > 0 {
			br.end += n
		}
		if err == io.EOF {
			br.eof = true
			return nil
		}
		if err != nil {
			br.err = err
			return err
		}
		if n > 0 {
			return nil
		}
	}
	br.err = io.ErrNoProgress
	return br.err
}

func (br *byteReader) compact() {
	if br.start == 0 {
		return
	}
	copy(br.data, br.data[br.start:br.end])
	br.end -= br.start
	br.start = 0
}

// ensureSpace leaves room after end for at least one byte. The buffer only
// doubles, so a large Request never allocates more than twice what r has
// actually delivered.
func (br *byteReader) ensureSpace() {
	if br.end < len(br.data) {
		return
	}
	br.compact()
	if br.end < len(br.data) {
		return
	}
	newLen := len(br.data) * 2
	if newLen < newBufferSize {
		newLen = newBufferSize
	}
	nb := make([]byte, newLen)
	copy(nb, br.window())
	br.end -= br.start
	br.start = 0
	br.data = nb
}

func (br *byteReader) Advance(n int) {
	if n <= 0 {
		return
	}
	if n > br.buffered() {
		n = br.buffered()
	}
	br.start += n
	if br.start >= br.end {
		br.start, br.end = 0, 0
	}
	br.examined = 0
}

func (br *byteReader) MarkExamined(n int) {
	if n < 0 {
		n = 0
	}
	if n > br.buffered() {
		n = br.buffered()
	}
	br.examined = n
}

func (br *byteReader) Close() error {
	if br.closed {
		return nil
	}
	br.closed = true
	br.data = nil
	br.start, br.end, br.examined = 0, 0, 0
	if c, ok := br.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
