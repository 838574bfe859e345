package strips

import "strings"

// Format classifies the textual encoding of a strip source file.
type Format int

const (
	FormatUnknown Format = iota
	FormatJSON
	FormatLines
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatLines:
		return "lines"
	default:
		return "unknown"
	}
}

// DetectFormat classifies raw source text as a JSON array or a
// newline-delimited payload list. This is a heuristic, not a parser: a
// single token that is neither a JSON array nor a data URL falls through to
// FormatUnknown and is loaded as one line whose decode fails downstream.
func DetectFormat(text string) Format {
	trimmed := strings.TrimSpace(text)
	switch {
	case strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
		return FormatJSON
	case strings.Contains(trimmed, "data:image") || strings.Contains(trimmed, "\n"):
		return FormatLines
	default:
		return FormatUnknown
	}
}
