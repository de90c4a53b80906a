// Package history persists command-cycle records.
package history

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/vosh/internal/domain"
	"github.com/doeshing/vosh/internal/ports"
)

// SQLiteStore persists cycle records in a SQLite database. When the
// database cannot be opened it degrades to the JSONL file store next to it.
type SQLiteStore struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// NewSQLiteStore creates (or opens) the database at path.
func NewSQLiteStore(path string) *SQLiteStore {
	_ = os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return &SQLiteStore{path: path}
	}
	store := &SQLiteStore{db: db, path: path}
	if err := store.init(); err != nil {
		return &SQLiteStore{path: path}
	}
	return store
}

func (s *SQLiteStore) init() error {
	if s.db == nil {
		return os.ErrInvalid
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS cycles (
		id TEXT PRIMARY KEY,
		timestamp TEXT,
		utterance TEXT,
		command TEXT,
		summary TEXT,
		confirmed INTEGER,
		executed INTEGER,
		success INTEGER,
		exit_code INTEGER,
		duration_ms INTEGER
	);`)
	return err
}

// Save implements ports.HistoryRepository.
func (s *SQLiteStore) Save(record domain.CycleRecord) error {
	if s.db == nil {
		return (&FileStore{path: s.fallbackPath()}).Save(record)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`INSERT INTO cycles
		(id, timestamp, utterance, command, summary, confirmed, executed, success, exit_code, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.Timestamp.Format(time.RFC3339),
		record.Utterance,
		record.Command,
		record.Summary,
		boolToInt(record.Confirmed),
		boolToInt(record.Executed),
		boolToInt(record.Success),
		record.ExitCode,
		record.DurationMS,
	)
	return err
}

// Records returns cycle entries, newest first. limit <= 0 means no limit;
// search filters on utterance or command substrings.
func (s *SQLiteStore) Records(limit int, search string) ([]domain.CycleRecord, error) {
	if s.db == nil {
		return (&FileStore{path: s.fallbackPath()}).Records(limit, search)
	}

	builder := strings.Builder{}
	builder.WriteString("SELECT id, timestamp, utterance, command, summary, confirmed, executed, success, exit_code, duration_ms FROM cycles")
	var args []interface{}
	if search != "" {
		builder.WriteString(" WHERE utterance LIKE ? OR command LIKE ?")
		args = append(args, "%"+search+"%", "%"+search+"%")
	}
	builder.WriteString(" ORDER BY datetime(timestamp) DESC")
	if limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}

	rows, err := s.db.Query(builder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.CycleRecord
	for rows.Next() {
		var (
			rec                          domain.CycleRecord
			ts                           string
			confirmed, executed, success int
		)
		if err := rows.Scan(&rec.ID, &ts, &rec.Utterance, &rec.Command, &rec.Summary,
			&confirmed, &executed, &success, &rec.ExitCode, &rec.DurationMS); err != nil {
			return nil, err
		}
		rec.Timestamp, _ = time.Parse(time.RFC3339, ts)
		rec.Confirmed = confirmed != 0
		rec.Executed = executed != 0
		rec.Success = success != 0
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) fallbackPath() string {
	return strings.TrimSuffix(s.path, filepath.Ext(s.path)) + ".jsonl"
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ ports.HistoryRepository = (*SQLiteStore)(nil)
