package strips

import (
	"errors"
	"fmt"
)

// ErrNoStrips signals that a batch produced zero decodable strips, so no
// composite could be assembled.
var ErrNoStrips = errors.New("no strips decoded")

// ParseError reports a source that classified as JSON but did not parse as a
// JSON array. Callers that only care about "nothing to process" may treat it
// as an empty batch; the distinction stays visible for logging.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse strip source: %v", e.Err) }

func (e *ParseError) Unwrap() error { return e.Err }

// StripError records a single strip that failed to decode. Index is
// zero-based batch position.
type StripError struct {
	Index int
	Err   error
}

func (e *StripError) Error() string { return fmt.Sprintf("strip %d: %v", e.Index+1, e.Err) }

func (e *StripError) Unwrap() error { return e.Err }
