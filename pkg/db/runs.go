package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrRunNotFound is returned when a run ID does not exist.
var ErrRunNotFound = errors.New("crawl run not found")

// Run statuses
const (
	RunRunning   = "running"
	RunCompleted = "completed"
	RunCancelled = "cancelled"
	RunFailed    = "failed"
)

// Visit statuses
const (
	VisitOK     = "ok"
	VisitEmpty  = "empty"
	VisitFailed = "failed"
)

// Run is one crawl invocation
type Run struct {
	RunID        int64
	Seed         string
	MaxDepth     int
	Wait         time.Duration
	StartedAt    time.Time
	FinishedAt   *time.Time
	Processed    int
	Failed       int
	Skipped      int
	WordsMerged  int
	Status       string
	ErrorMessage string
}

// RunSummary holds the totals written when a run ends
type RunSummary struct {
	Processed    int
	Failed       int
	Skipped      int
	WordsMerged  int
	Status       string
	ErrorMessage string
	FinishedAt   time.Time
}

// Visit is one page processed during a run
type Visit struct {
	VisitID       int64
	RunID         int64
	PageID        string
	Depth         int
	Status        string
	ErrorType     string
	ErrorMessage  string
	StatusCode    int
	WordCount     int
	LinksFound    int
	LinksEnqueued int
	Language      string
	VisitedAt     time.Time
}

// StartRun inserts a run in the running state and returns its ID
func (db *DB) StartRun(seed string, maxDepth int, wait time.Duration, startedAt time.Time) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO crawl_runs (seed, max_depth, wait_ms, started_at, status)
		VALUES (?, ?, ?, ?, ?)
	`, seed, maxDepth, wait.Milliseconds(), startedAt.UTC(), RunRunning)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	return result.LastInsertId()
}

// RecordVisit stores one page visit
func (db *DB) RecordVisit(v Visit) error {
	_, err := db.Exec(`
		INSERT INTO page_visits (run_id, page_id, depth, status, error_type, error_message,
		                         status_code, word_count, links_found, links_enqueued, language, visited_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, v.RunID, v.PageID, v.Depth, v.Status, NewNullString(v.ErrorType), NewNullString(v.ErrorMessage),
		NewNullInt64(int64(v.StatusCode)), v.WordCount, v.LinksFound, v.LinksEnqueued,
		NewNullString(v.Language), v.VisitedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert visit: %w", err)
	}
	return nil
}

// FinishRun writes the final totals and status of a run
func (db *DB) FinishRun(runID int64, s RunSummary) error {
	result, err := db.Exec(`
		UPDATE crawl_runs
		SET finished_at = ?, processed_count = ?, failed_count = ?, skipped_count = ?,
		    words_merged = ?, status = ?, error_message = ?
		WHERE run_id = ?
	`, s.FinishedAt.UTC(), s.Processed, s.Failed, s.Skipped, s.WordsMerged, s.Status,
		NewNullString(s.ErrorMessage), runID)
	if err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrRunNotFound, runID)
	}
	return nil
}

const runColumns = `
	run_id, seed, max_depth, wait_ms, started_at, finished_at, processed_count,
	failed_count, skipped_count, words_merged, status, error_message
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var (
		r          Run
		waitMS     int64
		finishedAt sql.NullTime
		errMsg     sql.NullString
	)
	if err := row.Scan(&r.RunID, &r.Seed, &r.MaxDepth, &waitMS, &r.StartedAt, &finishedAt,
		&r.Processed, &r.Failed, &r.Skipped, &r.WordsMerged, &r.Status, &errMsg); err != nil {
		return nil, err
	}
	r.Wait = time.Duration(waitMS) * time.Millisecond
	if finishedAt.Valid {
		t := finishedAt.Time
		r.FinishedAt = &t
	}
	if errMsg.Valid {
		r.ErrorMessage = errMsg.String
	}
	return &r, nil
}

// ListRuns retrieves runs ordered by most recent first
func (db *DB) ListRuns(limit int) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM crawl_runs ORDER BY started_at DESC, run_id DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *r)
	}
	return runs, rows.Err()
}

// GetRun retrieves a run by ID
func (db *DB) GetRun(runID int64) (*Run, error) {
	row := db.QueryRow(`SELECT `+runColumns+` FROM crawl_runs WHERE run_id = ?`, runID)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return r, nil
}

// LatestRun retrieves the most recently started run
func (db *DB) LatestRun() (*Run, error) {
	runs, err := db.ListRuns(1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, ErrRunNotFound
	}
	return &runs[0], nil
}

// GetRunVisits retrieves the visits of a run in processing order
func (db *DB) GetRunVisits(runID int64) ([]Visit, error) {
	rows, err := db.Query(`
		SELECT visit_id, run_id, page_id, depth, status, error_type, error_message,
		       status_code, word_count, links_found, links_enqueued, language, visited_at
		FROM page_visits
		WHERE run_id = ?
		ORDER BY visit_id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get visits: %w", err)
	}
	defer rows.Close()

	var visits []Visit
	for rows.Next() {
		var (
			v               Visit
			errType, errMsg sql.NullString
			language        sql.NullString
			statusCode      sql.NullInt64
		)
		if err := rows.Scan(&v.VisitID, &v.RunID, &v.PageID, &v.Depth, &v.Status, &errType, &errMsg,
			&statusCode, &v.WordCount, &v.LinksFound, &v.LinksEnqueued, &language, &v.VisitedAt); err != nil {
			return nil, fmt.Errorf("failed to scan visit: %w", err)
		}
		v.ErrorType = errType.String
		v.ErrorMessage = errMsg.String
		v.Language = language.String
		v.StatusCode = int(statusCode.Int64)
		visits = append(visits, v)
	}
	return visits, rows.Err()
}

// NewNullString returns a NullString that is NULL for the empty string
func NewNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// NewNullInt64 returns a NullInt64 that is NULL for zero
func NewNullInt64(n int64) sql.NullInt64 {
	if n == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: n, Valid: true}
}
