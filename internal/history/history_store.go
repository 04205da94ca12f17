package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/recordlens/internal/contract"
	"github.com/huangsam/recordlens/schema"

	_ "github.com/go-sql-driver/mysql" // registers "mysql"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx"
	_ "modernc.org/sqlite"             // registers "sqlite"
)

// Table names for evaluation history.
const (
	RunsTable   = "recordlens_evaluation_runs"
	ScoresTable = "recordlens_evaluation_scores"
)

// HistoryStoreImpl implements the HistoryStore interface on top of database/sql.
type HistoryStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// driverName maps a backend to its database/sql driver.
func driverName(backend schema.DatabaseBackend) (string, error) {
	switch backend {
	case schema.SQLiteBackend:
		return "sqlite", nil
	case schema.MySQLBackend:
		return "mysql", nil
	case schema.PostgreSQLBackend:
		return "pgx", nil
	default:
		return "", fmt.Errorf("unsupported backend: %s", backend)
	}
}

// openDB opens and pings a connection for the backend. An empty SQLite
// connection string selects the default history file.
func openDB(backend schema.DatabaseBackend, connStr string) (*sql.DB, error) {
	driver, err := driverName(backend)
	if err != nil {
		return nil, err
	}
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetHistoryDBFilePath()
	}

	db, err := sql.Open(driver, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", backend, err)
	}
	if backend == schema.SQLiteBackend {
		// a single writer avoids "database is locked"
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w. %s", backend, err, connectHint(backend))
	}
	return db, nil
}

func connectHint(backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return "Check that MySQL is running and the DSN looks like user:password@tcp(host:port)/dbname"
	case schema.PostgreSQLBackend:
		return "Check that PostgreSQL is running and the DSN includes host= and dbname="
	default:
		return "Check that the directory is writable"
	}
}

// NewHistoryStore creates a HistoryStore for the backend. NoneBackend yields a no-op store.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	if backend == schema.NoneBackend {
		return &HistoryStoreImpl{backend: backend}, nil
	}

	db, err := openDB(backend, connStr)
	if err != nil {
		return nil, err
	}
	if err := createTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history tables: %w", err)
	}
	return &HistoryStoreImpl{db: db, backend: backend}, nil
}

// createTables creates both history tables when they do not exist yet.
func createTables(db *sql.DB, backend schema.DatabaseBackend) error {
	for _, table := range []string{RunsTable, ScoresTable} {
		if _, err := db.Exec(createTableQuery(table, backend)); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table, err)
		}
	}
	return nil
}

// column types per backend: id, time, float, short text
type dialect struct {
	serial, ref, when, real, text string
}

func dialectOf(backend schema.DatabaseBackend) dialect {
	switch backend {
	case schema.MySQLBackend:
		return dialect{"BIGINT AUTO_INCREMENT PRIMARY KEY", "BIGINT", "DATETIME(6)", "DOUBLE", "VARCHAR(255)"}
	case schema.PostgreSQLBackend:
		return dialect{"BIGSERIAL PRIMARY KEY", "BIGINT", "TIMESTAMPTZ", "DOUBLE PRECISION", "TEXT"}
	default:
		return dialect{"INTEGER PRIMARY KEY AUTOINCREMENT", "INTEGER", "TEXT", "REAL", "TEXT"}
	}
}

func createTableQuery(table string, backend schema.DatabaseBackend) string {
	d := dialectOf(backend)
	if table == RunsTable {
		return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			run_id %s,
			correlation_id %s NOT NULL,
			start_time %s NOT NULL,
			end_time %s,
			run_duration_ms INTEGER,
			total_records INTEGER NOT NULL DEFAULT 0,
			config_params TEXT
		)`, table, d.serial, d.text, d.when, d.when)
	}
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		score_id %s,
		run_id %s NOT NULL,
		record_ref %s NOT NULL,
		evaluated_at %s NOT NULL,
		target_major %s NOT NULL,
		score_academic %s NOT NULL,
		score_career %s NOT NULL,
		score_community %s NOT NULL,
		score_final %s NOT NULL,
		grade %s NOT NULL,
		percentile INTEGER NOT NULL
	)`, table, d.serial, d.ref, d.text, d.when, d.text, d.real, d.real, d.real, d.real, d.text)
}

// rebind rewrites ? placeholders to $n for PostgreSQL.
func rebind(backend schema.DatabaseBackend, query string) string {
	if backend != schema.PostgreSQLBackend {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// formatTime converts a time.Time to the storage format of the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	if backend == schema.SQLiteBackend {
		return t.UTC().Format(time.RFC3339Nano)
	}
	return t
}

// timeScanner reads a time column stored natively or as SQLite text.
type timeScanner struct {
	backend schema.DatabaseBackend
	text    sql.NullString
	native  sql.NullTime
}

func (ts *timeScanner) dest() any {
	if ts.backend == schema.SQLiteBackend {
		return &ts.text
	}
	return &ts.native
}

func (ts *timeScanner) value() (*time.Time, error) {
	if ts.backend != schema.SQLiteBackend {
		if !ts.native.Valid {
			return nil, nil
		}
		return &ts.native.Time, nil
	}
	if !ts.text.Valid {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, ts.text.String)
	if err != nil {
		return nil, fmt.Errorf("failed to parse time %q: %w", ts.text.String, err)
	}
	return &t, nil
}

func (hs *HistoryStoreImpl) disabled() bool {
	return hs.backend == schema.NoneBackend || hs.db == nil
}

// BeginRun creates a new evaluation run and returns its unique ID.
func (hs *HistoryStoreImpl) BeginRun(startTime time.Time, correlationID string, configParams map[string]any) (int64, error) {
	if hs.disabled() {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	var runID int64
	switch hs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (correlation_id, start_time, config_params) VALUES ($1, $2, $3) RETURNING run_id`, RunsTable)
		err = hs.db.QueryRow(query, correlationID, startTime, string(configJSON)).Scan(&runID)
	default:
		query := fmt.Sprintf(`INSERT INTO %s (correlation_id, start_time, config_params) VALUES (?, ?, ?)`, RunsTable)
		var result sql.Result
		result, err = hs.db.Exec(query, correlationID, formatTime(startTime, hs.backend), string(configJSON))
		if err == nil {
			runID, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert evaluation run: %w", err)
	}
	return runID, nil
}

// EndRun stamps the run with its end time, duration and record count.
func (hs *HistoryStoreImpl) EndRun(runID int64, endTime time.Time, totalRecords int) error {
	if hs.disabled() {
		return nil
	}

	start := timeScanner{backend: hs.backend}
	query := rebind(hs.backend, fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = ?`, RunsTable))
	if err := hs.db.QueryRow(query, runID).Scan(start.dest()); err != nil {
		return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
	}
	startTime, err := start.value()
	if err != nil {
		return err
	}
	durationMs := int64(0)
	if startTime != nil {
		durationMs = endTime.Sub(*startTime).Milliseconds()
	}

	update := rebind(hs.backend, fmt.Sprintf(`UPDATE %s SET end_time = ?, run_duration_ms = ?, total_records = ? WHERE run_id = ?`, RunsTable))
	if _, err := hs.db.Exec(update, formatTime(endTime, hs.backend), durationMs, totalRecords, runID); err != nil {
		return fmt.Errorf("failed to update evaluation run: %w", err)
	}
	return nil
}

// RecordScores stores the flattened outcome of one evaluation.
func (hs *HistoryStoreImpl) RecordScores(runID int64, scores schema.EvaluationScores) error {
	if hs.disabled() {
		return nil
	}

	query := rebind(hs.backend, fmt.Sprintf(`INSERT INTO %s (run_id, record_ref, evaluated_at, target_major,
		score_academic, score_career, score_community, score_final, grade, percentile)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, ScoresTable))
	_, err := hs.db.Exec(query,
		runID, scores.RecordRef, formatTime(scores.EvaluatedAt, hs.backend), scores.TargetMajor,
		scores.AcademicScore, scores.CareerScore, scores.CommunityScore, scores.FinalScore,
		scores.Grade, scores.Percentile,
	)
	if err != nil {
		return fmt.Errorf("failed to insert evaluation scores: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(hs.backend),
		Connected:  hs.db != nil,
		TableSizes: make(map[string]int64),
	}
	if hs.disabled() {
		return status, nil
	}

	if err := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", RunsTable)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		last := timeScanner{backend: hs.backend}
		row := hs.db.QueryRow(fmt.Sprintf("SELECT run_id, start_time FROM %s ORDER BY run_id DESC LIMIT 1", RunsTable))
		if err := row.Scan(&status.LastRunID, last.dest()); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		if t, err := last.value(); err != nil {
			return status, err
		} else if t != nil {
			status.LastRunTime = *t
		}

		oldest := timeScanner{backend: hs.backend}
		row = hs.db.QueryRow(fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", RunsTable))
		if err := row.Scan(oldest.dest()); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		if t, err := oldest.value(); err != nil {
			return status, err
		} else if t != nil {
			status.OldestRunTime = *t
		}

		row = hs.db.QueryRow(fmt.Sprintf("SELECT COALESCE(SUM(total_records), 0) FROM %s", RunsTable))
		if err := row.Scan(&status.TotalEvaluations); err != nil {
			return status, fmt.Errorf("failed to get total evaluations: %w", err)
		}
	}

	for _, table := range []string{RunsTable, ScoresTable} {
		var count int64
		if err := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	return status, nil
}

// GetAllRuns retrieves every evaluation run, oldest first.
func (hs *HistoryStoreImpl) GetAllRuns() ([]schema.EvaluationRunRecord, error) {
	if hs.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, correlation_id, start_time, end_time, run_duration_ms, total_records, config_params
		FROM %s ORDER BY run_id`, RunsTable)
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query evaluation runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.EvaluationRunRecord
	for rows.Next() {
		var record schema.EvaluationRunRecord
		start := timeScanner{backend: hs.backend}
		end := timeScanner{backend: hs.backend}
		if err := rows.Scan(&record.RunID, &record.CorrelationID, start.dest(), end.dest(),
			&record.RunDurationMs, &record.TotalRecords, &record.ConfigParams); err != nil {
			return nil, fmt.Errorf("failed to scan evaluation run: %w", err)
		}
		startTime, err := start.value()
		if err != nil {
			return nil, err
		}
		if startTime != nil {
			record.StartTime = *startTime
		}
		if record.EndTime, err = end.value(); err != nil {
			return nil, err
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating evaluation runs: %w", err)
	}
	return results, nil
}

// GetAllScores retrieves every persisted evaluation outcome.
func (hs *HistoryStoreImpl) GetAllScores() ([]schema.EvaluationScoresRecord, error) {
	if hs.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, record_ref, evaluated_at, target_major,
		score_academic, score_career, score_community, score_final, grade, percentile
		FROM %s ORDER BY run_id, score_id`, ScoresTable)
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query evaluation scores: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.EvaluationScoresRecord
	for rows.Next() {
		var record schema.EvaluationScoresRecord
		at := timeScanner{backend: hs.backend}
		if err := rows.Scan(&record.RunID, &record.RecordRef, at.dest(), &record.TargetMajor,
			&record.ScoreAcademic, &record.ScoreCareer, &record.ScoreCommunity, &record.ScoreFinal,
			&record.Grade, &record.Percentile); err != nil {
			return nil, fmt.Errorf("failed to scan evaluation scores: %w", err)
		}
		evaluatedAt, err := at.value()
		if err != nil {
			return nil, err
		}
		if evaluatedAt != nil {
			record.EvaluatedAt = *evaluatedAt
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating evaluation scores: %w", err)
	}
	return results, nil
}
