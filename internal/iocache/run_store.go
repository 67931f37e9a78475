package iocache

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/huangsam/polarize/internal/contract"
	"github.com/huangsam/polarize/schema"
)

// runsTable is the name of the run history table.
const runsTable = "polarize_runs"

// RunStoreImpl implements the RunStore interface.
type RunStoreImpl struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
}

var _ contract.RunStore = &RunStoreImpl{} // Compile-time check

// NewRunStore creates a new RunStore with the specified backend.
func NewRunStore(backend schema.DatabaseBackend, connStr string) (contract.RunStore, error) {
	var db *sql.DB
	var err error
	var driverName string

	switch backend {
	case schema.SQLiteBackend:
		driverName = "sqlite"
		dbPath := connStr
		if dbPath == "" {
			dbPath = GetRunsDBFilePath()
		}
		db, err = sql.Open(driverName, dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		driverName = "mysql"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		driverName = "pgx"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		// Return a no-op store for disabled tracking
		return &RunStoreImpl{
			db:         nil,
			backend:    backend,
			driverName: "",
		}, nil

	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}

	// Ping to verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w. Check that the server is running and credentials are valid", backend, err)
	}

	// Create the table schema
	if _, err := db.Exec(getCreateRunsQuery(backend)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", runsTable, err)
	}

	return &RunStoreImpl{
		db:         db,
		backend:    backend,
		driverName: driverName,
	}, nil
}

// getCreateRunsQuery returns the CREATE TABLE query for polarize_runs.
func getCreateRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(runsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				metric VARCHAR(50) NOT NULL,
				input_path VARCHAR(512) NOT NULL,
				dataset_hash VARCHAR(64) NOT NULL,
				value DOUBLE NOT NULL,
				row_count INT NOT NULL,
				params TEXT,
				created_at DATETIME(6) NOT NULL
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				metric TEXT NOT NULL,
				input_path TEXT NOT NULL,
				dataset_hash TEXT NOT NULL,
				value DOUBLE PRECISION NOT NULL,
				row_count INT NOT NULL,
				params TEXT,
				created_at TIMESTAMPTZ NOT NULL
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				metric TEXT NOT NULL,
				input_path TEXT NOT NULL,
				dataset_hash TEXT NOT NULL,
				value REAL NOT NULL,
				row_count INTEGER NOT NULL,
				params TEXT,
				created_at TEXT NOT NULL
			);
		`, quotedTableName)
	}
}

// RecordRun stores a completed computation and returns its run ID.
func (rs *RunStoreImpl) RecordRun(record *schema.RunRecord) (int64, error) {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return 0, nil
	}

	quotedTableName := quoteTableName(runsTable, rs.backend)
	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	var runID int64
	var err error
	switch rs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (metric, input_path, dataset_hash, value, row_count, params, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING run_id`, quotedTableName)
		err = rs.db.QueryRow(query,
			record.Metric, record.InputPath, record.DatasetHash,
			record.Value, record.RowCount, record.Params, createdAt).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (metric, input_path, dataset_hash, value, row_count, params, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`, quotedTableName)
		var result sql.Result
		result, err = rs.db.Exec(query,
			record.Metric, record.InputPath, record.DatasetHash,
			record.Value, record.RowCount, record.Params, formatTime(createdAt, rs.backend))
		if err == nil {
			runID, err = result.LastInsertId()
		}
	}

	if err != nil {
		return 0, fmt.Errorf("failed to insert run record: %w", err)
	}
	return runID, nil
}

// ListRuns returns the most recent runs, newest first. A non-positive
// limit returns every run.
func (rs *RunStoreImpl) ListRuns(limit int) ([]schema.RunRecord, error) {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(runsTable, rs.backend)
	query := fmt.Sprintf(`SELECT run_id, metric, input_path, dataset_hash, value, row_count, params, created_at
		FROM %s ORDER BY run_id DESC`, quotedTableName)
	if limit > 0 {
		query = fmt.Sprintf("%s LIMIT %d", query, limit)
	}

	rows, err := rs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunRecord
	for rows.Next() {
		var record schema.RunRecord

		switch rs.backend {
		case schema.SQLiteBackend:
			var createdAtStr string
			if err := rows.Scan(&record.RunID, &record.Metric, &record.InputPath, &record.DatasetHash,
				&record.Value, &record.RowCount, &record.Params, &createdAtStr); err != nil {
				return nil, fmt.Errorf("failed to scan run record: %w", err)
			}
			createdAt, err := time.Parse(time.RFC3339Nano, createdAtStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse created_at: %w", err)
			}
			record.CreatedAt = createdAt
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.RunID, &record.Metric, &record.InputPath, &record.DatasetHash,
				&record.Value, &record.RowCount, &record.Params, &record.CreatedAt); err != nil {
				return nil, fmt.Errorf("failed to scan run record: %w", err)
			}
		}

		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return results, nil
}

// Close closes the underlying connection.
func (rs *RunStoreImpl) Close() error {
	if rs.db != nil {
		return rs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the run store.
func (rs *RunStoreImpl) GetStatus() (schema.RunStatus, error) {
	status := schema.RunStatus{
		Backend:   string(rs.backend),
		Connected: rs.db != nil,
	}

	if rs.backend == schema.NoneBackend || rs.db == nil {
		return status, nil
	}

	quotedTableName := quoteTableName(runsTable, rs.backend)

	// Get total runs
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedTableName)
	row := rs.db.QueryRow(countQuery)
	if err := row.Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		// Get last run info
		lastQuery := fmt.Sprintf("SELECT run_id, created_at FROM %s ORDER BY run_id DESC LIMIT 1", quotedTableName)
		row = rs.db.QueryRow(lastQuery)
		if err := rs.scanRunTime(row, &status.LastRunID, &status.LastRunTime); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}

		// Get oldest run time
		oldestQuery := fmt.Sprintf("SELECT run_id, created_at FROM %s ORDER BY run_id ASC LIMIT 1", quotedTableName)
		row = rs.db.QueryRow(oldestQuery)
		var oldestID int64
		if err := rs.scanRunTime(row, &oldestID, &status.OldestRunTime); err != nil {
			return status, fmt.Errorf("failed to get oldest run info: %w", err)
		}
	}

	if rs.backend == schema.SQLiteBackend {
		row = rs.db.QueryRow("SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()")
		if err := row.Scan(&status.TableSizeBytes); err != nil {
			status.TableSizeBytes = 0
		}
	} else {
		status.TableSizeBytes = int64(status.TotalRuns) * 300 // Rough estimate
	}

	return status, nil
}

// scanRunTime scans a (run_id, created_at) row, handling the SQLite text
// timestamp representation.
func (rs *RunStoreImpl) scanRunTime(row *sql.Row, id *int64, ts *time.Time) error {
	if rs.backend == schema.SQLiteBackend {
		var tsStr string
		if err := row.Scan(id, &tsStr); err != nil {
			return err
		}
		parsed, err := time.Parse(time.RFC3339Nano, tsStr)
		if err != nil {
			return fmt.Errorf("failed to parse created_at: %w", err)
		}
		*ts = parsed
		return nil
	}
	return row.Scan(id, ts)
}
