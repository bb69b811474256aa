package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists records to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database at path and ensures the
// schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `CREATE TABLE IF NOT EXISTS engine_audit (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        ts INTEGER,
        operation TEXT,
        project_id TEXT,
        record TEXT
    );`
	if _, err := db.Exec(schema); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("close db: %v (schema err: %w)", cerr, err)
		}
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Append writes the record to the database.
func (s *SQLiteStore) Append(ctx context.Context, rec Record) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO engine_audit (ts, operation, project_id, record) VALUES (?, ?, ?, ?)`,
		rec.Timestamp.Unix(), rec.Operation, rec.MissionID, string(b))
	return err
}

// Query returns records matching the filters in insertion order.
func (s *SQLiteStore) Query(ctx context.Context, q Query) ([]Record, error) {
	query := `SELECT record FROM engine_audit WHERE 1=1`
	var args []any
	if !q.Start.IsZero() {
		query += ` AND ts >= ?`
		args = append(args, q.Start.Unix())
	}
	if !q.End.IsZero() {
		query += ` AND ts <= ?`
		args = append(args, q.End.Unix())
	}
	if q.Operation != "" {
		query += ` AND operation = ?`
		args = append(args, q.Operation)
	}
	if q.MissionID != "" {
		query += ` AND project_id = ?`
		args = append(args, q.MissionID)
	}
	query += ` ORDER BY id`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []Record
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var rec Record
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			continue
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }
