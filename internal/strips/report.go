package strips

// Reporter receives per-strip events during compositing so callers decide
// how progress is surfaced; the core has no console dependency.
type Reporter interface {
	// StripDecoded fires after a strip decodes successfully. Index is the
	// zero-based batch position.
	StripDecoded(index, width, height int)
	// StripSkipped fires when a strip fails to decode and is dropped.
	StripSkipped(index int, err error)
}

// NopReporter discards all events.
type NopReporter struct{}

func (NopReporter) StripDecoded(int, int, int) {}

func (NopReporter) StripSkipped(int, error) {}
