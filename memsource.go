package warcline

import "context"

// MemorySource is an in-memory Source that hands out one chunk per pull. It
// reports exhaustion on the pull after the last chunk, the way a stream
// returns EOF on the read after its last data.
type MemorySource struct {
	chunks    [][]byte
	buf       []byte
	examined  int
	exhausted bool
	closed    bool
	pulls     int
}

// NewMemorySource returns a MemorySource delivering chunks in order.
func NewMemorySource(chunks ...[]byte) *MemorySource {
	return &MemorySource{chunks: chunks}
}

// Pulls returns how many chunks have been requested from the queue.
func (m *MemorySource) Pulls() int {
	return m.pulls
}

// Closed reports whether Close has been called.
func (m *MemorySource) Closed() bool {
	return m.closed
}

func (m *MemorySource) pull(ctx context.Context) error {
	before := len(m.buf)
	for len(m.buf) == before && !m.exhausted {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.pulls++
		if len(m.chunks) == 0 {
			m.exhausted = true
			return nil
		}
		m.buf = append(m.buf, m.chunks[0]...)
		m.chunks = m.chunks[1:]
	}
	return nil
}

func (m *MemorySource) Request(ctx context.Context, min int) ([]byte, bool, error) {
	if m.closed {
		return nil, true, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, m.exhausted, err
	}
	if min <= 0 {
		if len(m.buf) <= m.examined && !m.exhausted {
			if err := m.pull(ctx); err != nil {
				return nil, m.exhausted, err
			}
		}
		return m.buf, m.exhausted, nil
	}
	for len(m.buf) < min && !m.exhausted {
		if err := m.pull(ctx); err != nil {
			return nil, m.exhausted, err
		}
	}
	return m.buf, m.exhausted, nil
}

func (m *MemorySource) Advance(n int) {
	if n <= 0 {
		return
	}
	if n > len(m.buf) {
		n = len(m.buf)
	}
	m.buf = m.buf[n:]
	m.examined = 0
}

func (m *MemorySource) MarkExamined(n int) {
	if n < 0 {
		n = 0
	}
	if n > len(m.buf) {
		n = len(m.buf)
	}
	m.examined = n
}

func (m *MemorySource) Close() error {
	m.closed = true
	m.buf = nil
	m.chunks = nil
	return nil
}
