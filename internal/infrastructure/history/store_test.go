package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/vosh/internal/domain"
	"github.com/doeshing/vosh/internal/ports"
)

func sampleRecord(utterance, command string) domain.CycleRecord {
	return domain.CycleRecord{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC().Truncate(time.Second),
		Utterance: utterance,
		Command:   command,
		Confirmed: true,
		Executed:  true,
		Success:   true,
	}
}

func testStore(t *testing.T, store ports.HistoryRepository) {
	t.Helper()

	first := sampleRecord("open the calculator", "kcalc")
	if err := store.Save(first); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	second := sampleRecord("run the backup", "rsync -a /home /backup")
	second.Timestamp = second.Timestamp.Add(time.Second)
	if err := store.Save(second); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	records, err := store.Records(10, "")
	if err != nil {
		t.Fatalf("Records error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if records[0].ID != second.ID {
		t.Errorf("expected newest first, got %q", records[0].Utterance)
	}

	filtered, err := store.Records(10, "backup")
	if err != nil {
		t.Fatalf("Records(search) error: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Command != second.Command {
		t.Fatalf("search mismatch: %+v", filtered)
	}

	limited, err := store.Records(1, "")
	if err != nil {
		t.Fatalf("Records(limit) error: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("len(limited) = %d, want 1", len(limited))
	}
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "cycles.db"))
	defer store.Close()
	testStore(t, store)
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "cycles.jsonl"))
	testStore(t, store)
}
