package schema

import "time"

// RunRecord represents a row from the polarize_runs history table.
type RunRecord struct {
	RunID       int64
	Metric      string
	InputPath   string
	DatasetHash string
	Value       float64
	RowCount    int32
	Params      *string
	CreatedAt   time.Time
}
