package warcline

import "context"

//go:generate mockgen -destination=mock_source_test.go -package=warcline . Source

// Source is a forward-only byte producer with a read-ahead window.
//
// The window returned by Request starts at the first unconsumed byte. It is
// only valid until the next call to Request, Advance or Close.
type Source interface {
	// Request returns the current window and whether the underlying data is
	// exhausted. With min <= 0 it returns at once if the window holds bytes
	// past the examined mark, otherwise it pulls more data first. With
	// min > 0 it pulls until the window holds at least min bytes or the data
	// is exhausted. ctx is checked before every pull.
	Request(ctx context.Context, min int) (window []byte, exhausted bool, err error)

	// Advance consumes n bytes from the start of the window and clears the
	// examined mark.
	Advance(n int)

	// MarkExamined records that the first n bytes of the window were looked at
	// without being consumed, so the next Request extends the window instead
	// of returning it unchanged.
	MarkExamined(n int)

	// Close releases the source. It is safe to call more than once.
	Close() error
}
