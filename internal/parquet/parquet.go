// Package parquet provides data structures and functions for exporting
// polarization results and run history to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/polarize/schema"
	"github.com/parquet-go/parquet-go"
)

// RunExport represents a single recorded metric computation.
// This struct maps to the polarize_runs database table.
type RunExport struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// Metric is the metric name that was computed
	Metric string `parquet:"metric,snappy"`

	// InputPath is the dataset file the metric was computed over
	InputPath string `parquet:"input_path,snappy"`

	// DatasetHash is the SHA-256 digest of the raw input bytes
	DatasetHash string `parquet:"dataset_hash,snappy"`

	// Value is the scalar metric result
	Value float64 `parquet:"value,snappy"`

	// RowCount is the number of data rows in the input
	RowCount int32 `parquet:"row_count,snappy"`

	// Params contains the canonical parameter string (nullable)
	Params *string `parquet:"params,optional,snappy"`

	// CreatedAt is when the run was recorded (stored as TIMESTAMP with nanosecond precision)
	CreatedAt time.Time `parquet:"created_at,snappy"`
}

// CandidateBreakdown represents per-candidate divisiveness details.
// Weight, Within and Between are nullable because the within and between
// views each carry only a subset of the columns.
type CandidateBreakdown struct {
	// Metric is the metric the breakdown belongs to
	Metric string `parquet:"metric,snappy"`

	// Candidate is the candidate label
	Candidate string `parquet:"candidate,snappy"`

	// Weight is the candidate's share of the overall vote (nullable)
	Weight *float64 `parquet:"weight,optional,snappy"`

	// Within is the within-candidate antagonism component (nullable)
	Within *float64 `parquet:"within,optional,snappy"`

	// Between is the between-candidate antagonism component (nullable)
	Between *float64 `parquet:"between,optional,snappy"`

	// Antagonism is the single-component value for within/between views (nullable)
	Antagonism *float64 `parquet:"antagonism,optional,snappy"`
}

// PartyAllocation represents one party's seat allocation result.
type PartyAllocation struct {
	// Metric is the allocation method that produced this row
	Metric string `parquet:"metric,snappy"`

	// Party is the party label
	Party string `parquet:"party,snappy"`

	// Votes is the raw vote count for the party
	Votes float64 `parquet:"votes,snappy"`

	// Seats is the number of seats awarded
	Seats int32 `parquet:"seats,snappy"`
}

// WriteRunsParquet writes a slice of RunExport structs to a Parquet file.
func WriteRunsParquet(data []RunExport, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the RunExport struct tags
	writer := parquet.NewGenericWriter[RunExport](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteCandidateBreakdownParquet writes per-candidate breakdowns to a Parquet file.
func WriteCandidateBreakdownParquet(data []CandidateBreakdown, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[CandidateBreakdown](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WritePartyAllocationParquet writes seat allocation rows to a Parquet file.
func WritePartyAllocationParquet(data []PartyAllocation, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[PartyAllocation](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertRunRecords converts schema.RunRecord to RunExport for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []RunExport {
	result := make([]RunExport, len(records))
	for i, record := range records {
		result[i] = RunExport{
			RunID:       record.RunID,
			Metric:      record.Metric,
			InputPath:   record.InputPath,
			DatasetHash: record.DatasetHash,
			Value:       record.Value,
			RowCount:    record.RowCount,
			Params:      record.Params,
			CreatedAt:   record.CreatedAt,
		}
	}
	return result
}

// ConvertCandidateDetails converts a divisiveness details table into
// CandidateBreakdown rows. Absent columns yield nil fields.
func ConvertCandidateDetails(metric schema.Metric, details *schema.Table) []CandidateBreakdown {
	if details == nil {
		return nil
	}
	result := make([]CandidateBreakdown, 0, details.Len())
	for i := 0; i < details.Len(); i++ {
		row := CandidateBreakdown{
			Metric:    string(metric),
			Candidate: details.Label(i, "candidate"),
		}
		row.Weight = optionalFloat(details, i, "weight")
		row.Within = optionalFloat(details, i, "within")
		row.Between = optionalFloat(details, i, "between")
		row.Antagonism = optionalFloat(details, i, "antagonism")
		result = append(result, row)
	}
	return result
}

// ConvertAllocationDetails converts a seat allocation details table into
// PartyAllocation rows.
func ConvertAllocationDetails(metric schema.Metric, details *schema.Table) []PartyAllocation {
	if details == nil {
		return nil
	}
	result := make([]PartyAllocation, 0, details.Len())
	for i := 0; i < details.Len(); i++ {
		votes, _ := details.Float(i, "votes")
		seats, _ := details.Float(i, "seats")
		result = append(result, PartyAllocation{
			Metric: string(metric),
			Party:  details.Label(i, "party"),
			Votes:  votes,
			Seats:  int32(seats),
		})
	}
	return result
}

// optionalFloat reads a float cell as a nullable pointer.
func optionalFloat(details *schema.Table, row int, col string) *float64 {
	if !details.HasColumn(col) {
		return nil
	}
	v, ok := details.Float(row, col)
	if !ok {
		return nil
	}
	return &v
}

// MockFetchRunExports generates sample RunExport data for demonstration.
func MockFetchRunExports() []RunExport {
	now := time.Now()
	params1 := "alpha=1;normalize=false"
	params2 := "seats=10;method=dhondt"

	return []RunExport{
		{
			RunID:       1,
			Metric:      string(schema.MetricEstebanRay),
			InputPath:   "data/regions.csv",
			DatasetHash: "9f2c0a5d3e8b41c6a7f0d2e9b8c1a4f5d6e7b8c9a0f1e2d3c4b5a6f7e8d9c0b1",
			Value:       0.4125,
			RowCount:    12,
			Params:      &params1,
			CreatedAt:   now.Add(-2 * time.Hour),
		},
		{
			RunID:       2,
			Metric:      string(schema.MetricDHondt),
			InputPath:   "data/election.csv",
			DatasetHash: "b1c0d9e8f7a6b5c4d3e2f1a0c9b8e7d6f5a4b3c2d1e0f9a8b7c6d5e4f3a2b1c0",
			Value:       10,
			RowCount:    4,
			Params:      &params2,
			CreatedAt:   now.Add(-30 * time.Minute),
		},
		{
			RunID:       3,
			Metric:      string(schema.MetricGini),
			InputPath:   "data/turnout.csv",
			DatasetHash: "c2d1e0f9a8b7c6d5e4f3a2b1c0d9e8f7a6b5c4d3e2f1a0c9b8e7d6f5a4b3c2d1",
			Value:       0.25,
			RowCount:    8,
			Params:      nil, // No parameters recorded - nullable field
			CreatedAt:   now.Add(-5 * time.Minute),
		},
	}
}

// MockFetchCandidateBreakdowns generates sample CandidateBreakdown data for demonstration.
func MockFetchCandidateBreakdowns() []CandidateBreakdown {
	wX, wY := 0.55, 0.45
	withinX, withinY := 0.1333, 0.1333
	betweenX, betweenY := 0.3583, 0.3762

	return []CandidateBreakdown{
		{
			Metric:    string(schema.MetricDivisiveness),
			Candidate: "X",
			Weight:    &wX,
			Within:    &withinX,
			Between:   &betweenX,
		},
		{
			Metric:    string(schema.MetricDivisiveness),
			Candidate: "Y",
			Weight:    &wY,
			Within:    &withinY,
			Between:   &betweenY,
		},
		{
			Metric:     string(schema.MetricBetween),
			Candidate:  "Z",
			Antagonism: &betweenY, // Within-only views leave the other fields nil
		},
	}
}
