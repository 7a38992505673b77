package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/google/uuid"
	"github.com/huangsam/uli/internal/contract"
	"github.com/huangsam/uli/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// Table names for reflection data.
const (
	scoresTable      = "uli_scores"
	reflectionsTable = "uli_reflections"
	historyTable     = "uli_history"
)

// allTables lists every table owned by the record store.
var allTables = []string{scoresTable, reflectionsTable, historyTable}

// scoreColumns is the canonical principle column list shared by every table.
const scoreColumns = "r3, phcb, apd, lps, cdr, eia"

// SQLRecordStore implements RecordStore on top of database/sql.
type SQLRecordStore struct {
	db      *sql.DB
	backend schema.DatabaseBackend
	connStr string
}

var _ contract.RecordStore = &SQLRecordStore{} // Compile-time check

// NewRecordStore initializes and returns a RecordStore for the backend type.
func NewRecordStore(backend schema.DatabaseBackend, connStr string) (contract.RecordStore, error) {
	if backend == schema.MemoryBackend {
		return NewMemoryStore(), nil
	}

	db, err := openDB(backend, connStr)
	if err != nil {
		return nil, err
	}

	if err := createTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create record tables: %w", err)
	}

	return &SQLRecordStore{db: db, backend: backend, connStr: connStr}, nil
}

// openDB opens and pings a connection for a SQL backend.
func openDB(backend schema.DatabaseBackend, connStr string) (*sql.DB, error) {
	var db *sql.DB
	var err error

	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetDBFilePath()
		}
		db, err = sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname
		db, err = sql.Open("mysql", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=mysecretpassword dbname=postgres
		db, err = sql.Open("pgx", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	default:
		return nil, fmt.Errorf("unsupported store backend: %s. Must be sqlite, mysql, postgresql, or memory", backend)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		var connDetail string
		switch backend {
		case schema.MySQLBackend:
			connDetail = "Check that MySQL is running and the connection string is correct. Ensure user/password are valid."
		case schema.PostgreSQLBackend:
			connDetail = "Check that PostgreSQL is running and the connection string is correct. Ensure user/password are valid."
		default:
			connDetail = "Verify the database file is accessible."
		}
		return nil, fmt.Errorf("failed to connect to %s database: %w. %s", backend, err, connDetail)
	}
	return db, nil
}

// rebind rewrites ? placeholders into the form the backend expects.
func rebind(backend schema.DatabaseBackend, query string) string {
	if backend != schema.PostgreSQLBackend {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *SQLRecordStore) q(query string) string {
	return rebind(s.backend, query)
}

func scoreArgs(sc schema.ScoreSet) []any {
	return []any{sc.R3, sc.PHCB, sc.APD, sc.LPS, sc.CDR, sc.EIA}
}

func scoreDest(sc *schema.ScoreSet) []any {
	return []any{&sc.R3, &sc.PHCB, &sc.APD, &sc.LPS, &sc.CDR, &sc.EIA}
}

// LoadHistory returns every history point stored for identity, in insertion order.
func (s *SQLRecordStore) LoadHistory(identity string) ([]schema.HistoryPoint, error) {
	query := s.q(fmt.Sprintf("SELECT %s, recorded_at FROM %s WHERE user_id = ? ORDER BY seq", scoreColumns, historyTable))
	rows, err := s.db.Query(query, identity)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	history := []schema.HistoryPoint{}
	for rows.Next() {
		var point schema.HistoryPoint
		var recordedAt string
		if err := rows.Scan(append(scoreDest(&point.Scores), &recordedAt)...); err != nil {
			return nil, fmt.Errorf("failed to scan history point: %w", err)
		}
		idx := len(history)
		if point.Timestamp, err = schema.ParseTimestamp(recordedAt); err != nil {
			return nil, schema.InCollection(err, "history", idx)
		}
		if err := point.Scores.Validate(); err != nil {
			return nil, schema.InCollection(err, "history", idx)
		}
		history = append(history, point)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history: %w", err)
	}
	return history, nil
}

// LoadCurrentScores returns the current scores and whether any were stored.
func (s *SQLRecordStore) LoadCurrentScores(identity string) (schema.ScoreSet, bool, error) {
	query := s.q(fmt.Sprintf("SELECT %s FROM %s WHERE user_id = ?", scoreColumns, scoresTable))
	var scores schema.ScoreSet
	err := s.db.QueryRow(query, identity).Scan(scoreDest(&scores)...)
	if errors.Is(err, sql.ErrNoRows) {
		return schema.ScoreSet{}, false, nil
	}
	if err != nil {
		return schema.ScoreSet{}, false, fmt.Errorf("failed to query current scores: %w", err)
	}
	if err := scores.Validate(); err != nil {
		return schema.ScoreSet{}, false, schema.InCollection(err, "scores", -1)
	}
	return scores, true, nil
}

// LoadReflections returns every reflection entry stored for identity, in insertion order.
func (s *SQLRecordStore) LoadReflections(identity string) ([]schema.ReflectionEntry, error) {
	query := s.q(fmt.Sprintf("SELECT reflection, tags, %s, recorded_at FROM %s WHERE user_id = ? ORDER BY seq", scoreColumns, reflectionsTable))
	rows, err := s.db.Query(query, identity)
	if err != nil {
		return nil, fmt.Errorf("failed to query reflections: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := []schema.ReflectionEntry{}
	for rows.Next() {
		var entry schema.ReflectionEntry
		var tags, recordedAt string
		dest := append([]any{&entry.Reflection, &tags}, scoreDest(&entry.Scores)...)
		if err := rows.Scan(append(dest, &recordedAt)...); err != nil {
			return nil, fmt.Errorf("failed to scan reflection: %w", err)
		}
		idx := len(entries)
		if err := json.Unmarshal([]byte(tags), &entry.Tags); err != nil {
			return nil, schema.InCollection(schema.Malformed("unreadable tags: %v", err), "reflections", idx)
		}
		if entry.Tags == nil {
			entry.Tags = []string{}
		}
		if entry.Timestamp, err = schema.ParseTimestamp(recordedAt); err != nil {
			return nil, schema.InCollection(err, "reflections", idx)
		}
		if err := entry.Validate(); err != nil {
			return nil, schema.InCollection(err, "reflections", idx)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reflections: %w", err)
	}
	return entries, nil
}

// AppendReflection stores the entry, its history point and the new current scores
// in one transaction.
func (s *SQLRecordStore) AppendReflection(identity string, entry schema.ReflectionEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	return s.withTx(func(tx *sql.Tx) error {
		if err := s.insertReflection(tx, identity, entry); err != nil {
			return err
		}
		if err := s.insertHistory(tx, identity, entry.Point()); err != nil {
			return err
		}
		return s.upsertScores(tx, identity, entry.Scores, entry.Timestamp)
	})
}

// ReplaceAll clears everything stored for bundle.Identity and writes the bundle
// in one transaction.
func (s *SQLRecordStore) ReplaceAll(bundle schema.Bundle) error {
	if err := validateBundle(bundle); err != nil {
		return err
	}
	return s.withTx(func(tx *sql.Tx) error {
		if err := s.deleteIdentity(tx, bundle.Identity); err != nil {
			return err
		}
		for _, entry := range bundle.Reflections {
			if err := s.insertReflection(tx, bundle.Identity, entry); err != nil {
				return err
			}
		}
		for _, point := range bundle.History {
			if err := s.insertHistory(tx, bundle.Identity, point); err != nil {
				return err
			}
		}
		if bundle.Scores != nil {
			return s.upsertScores(tx, bundle.Identity, *bundle.Scores, schema.NewTimestamp(time.Now()))
		}
		return nil
	})
}

// Clear removes everything stored for identity.
func (s *SQLRecordStore) Clear(identity string) error {
	return s.withTx(func(tx *sql.Tx) error {
		return s.deleteIdentity(tx, identity)
	})
}

func (s *SQLRecordStore) withTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *SQLRecordStore) deleteIdentity(tx *sql.Tx, identity string) error {
	for _, table := range allTables {
		query := s.q(fmt.Sprintf("DELETE FROM %s WHERE user_id = ?", table))
		if _, err := tx.Exec(query, identity); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

func (s *SQLRecordStore) insertReflection(tx *sql.Tx, identity string, entry schema.ReflectionEntry) error {
	tags := entry.Tags
	if tags == nil {
		tags = []string{}
	}
	encoded, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	query := s.q(fmt.Sprintf(`INSERT INTO %s (entry_id, user_id, reflection, tags, %s, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, reflectionsTable, scoreColumns))
	args := append([]any{uuid.NewString(), identity, entry.Reflection, string(encoded)}, scoreArgs(entry.Scores)...)
	args = append(args, entry.Timestamp.String())
	if _, err := tx.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to insert reflection: %w", err)
	}
	return nil
}

func (s *SQLRecordStore) insertHistory(tx *sql.Tx, identity string, point schema.HistoryPoint) error {
	query := s.q(fmt.Sprintf(`INSERT INTO %s (point_id, user_id, %s, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, historyTable, scoreColumns))
	args := append([]any{uuid.NewString(), identity}, scoreArgs(point.Scores)...)
	args = append(args, point.Timestamp.String())
	if _, err := tx.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to insert history point: %w", err)
	}
	return nil
}

// upsertScores writes the current scores using the backend-specific UPSERT.
func (s *SQLRecordStore) upsertScores(tx *sql.Tx, identity string, scores schema.ScoreSet, at schema.Timestamp) error {
	var query string
	switch s.backend {
	case schema.MySQLBackend:
		query = fmt.Sprintf(`INSERT INTO %s (user_id, %s, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE r3 = new.r3, phcb = new.phcb, apd = new.apd, lps = new.lps,
			cdr = new.cdr, eia = new.eia, updated_at = new.updated_at`, scoresTable, scoreColumns)
	default: // SQLite and PostgreSQL
		query = fmt.Sprintf(`INSERT INTO %s (user_id, %s, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (user_id) DO UPDATE SET r3 = EXCLUDED.r3, phcb = EXCLUDED.phcb, apd = EXCLUDED.apd,
			lps = EXCLUDED.lps, cdr = EXCLUDED.cdr, eia = EXCLUDED.eia, updated_at = EXCLUDED.updated_at`, scoresTable, scoreColumns)
	}

	args := append([]any{identity}, scoreArgs(scores)...)
	args = append(args, at.String())
	if _, err := tx.Exec(s.q(query), args...); err != nil {
		return fmt.Errorf("failed to upsert current scores: %w", err)
	}
	return nil
}

// Close closes the underlying DB connection.
func (s *SQLRecordStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// GetStatus returns status information about the record store.
func (s *SQLRecordStore) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:    string(s.backend),
		Connected:  s.db != nil,
		TableSizes: make(map[string]int64),
	}
	if s.db == nil {
		return status, nil
	}

	identitiesQuery := fmt.Sprintf(`SELECT COUNT(*) FROM (
		SELECT user_id FROM %s UNION SELECT user_id FROM %s UNION SELECT user_id FROM %s
	) ids`, scoresTable, reflectionsTable, historyTable)
	if err := s.db.QueryRow(identitiesQuery).Scan(&status.Identities); err != nil {
		return status, fmt.Errorf("failed to count identities: %w", err)
	}

	for _, table := range allTables {
		var count int64
		if err := s.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	status.TotalReflections = int(status.TableSizes[reflectionsTable])
	status.TotalHistory = int(status.TableSizes[historyTable])

	if status.TotalHistory == 0 {
		return status, nil
	}

	// recorded_at is fixed-width UTC text, so lexical order is chronological.
	var oldest, latest string
	rangeQuery := fmt.Sprintf("SELECT MIN(recorded_at), MAX(recorded_at) FROM %s", historyTable)
	if err := s.db.QueryRow(rangeQuery).Scan(&oldest, &latest); err != nil {
		return status, fmt.Errorf("failed to get history time range: %w", err)
	}
	if ts, err := schema.ParseTimestamp(oldest); err == nil {
		status.OldestEntryTime = ts.Time
	}
	if ts, err := schema.ParseTimestamp(latest); err == nil {
		status.LastEntryTime = ts.Time
	}
	return status, nil
}

// DatabaseName returns the database the store is connected to, when the backend has one.
func (s *SQLRecordStore) DatabaseName() string {
	switch s.backend {
	case schema.SQLiteBackend:
		if s.connStr == "" {
			return contract.GetDBFilePath()
		}
		return s.connStr
	case schema.MySQLBackend:
		cfg, err := mysql.ParseDSN(s.connStr)
		if err != nil {
			return ""
		}
		return cfg.DBName
	case schema.PostgreSQLBackend:
		for field := range strings.FieldsSeq(s.connStr) {
			if name, ok := strings.CutPrefix(field, "dbname="); ok {
				return name
			}
		}
	}
	return ""
}
