package history

import "time"

// Status describes the outcome of one processed file.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Record is one processed source file.
type Record struct {
	ID            int64
	RunID         string
	SourcePath    string
	OutputPath    string
	StripsTotal   int
	StripsDecoded int
	Width         int
	Height        int
	Status        Status
	ErrorMessage  string
	CreatedAt     time.Time
}
