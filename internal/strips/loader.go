package strips

import (
	"encoding/json"
	"strings"
)

// Load extracts the ordered strip payloads from raw source text.
//
// JSON sources must parse as an array; elements that are not strings become
// empty payloads so the decode step records a per-strip failure instead of
// aborting the batch. Line sources are split on newline, each segment
// trimmed, blanks dropped, order preserved. FormatUnknown gets the line
// treatment, which for a single opaque token produces one payload that fails
// at decode time.
func Load(text string, format Format) ([]string, error) {
	if format == FormatJSON {
		var elements []any
		if err := json.Unmarshal([]byte(text), &elements); err != nil {
			return nil, &ParseError{Err: err}
		}
		payloads := make([]string, len(elements))
		for i, element := range elements {
			if value, ok := element.(string); ok {
				payloads[i] = value
			}
		}
		return payloads, nil
	}

	lines := strings.Split(text, "\n")
	payloads := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			payloads = append(payloads, trimmed)
		}
	}
	return payloads, nil
}
