package store

import (
	"fmt"
	"sort"
	"time"

	"github.com/hashicorp/go-memdb"
)

const tableMeeting = "meeting"

// Store is an in-memory meeting registry. Artifacts live on disk; the
// registry only tracks status and artifact locations, so losing it on
// restart is acceptable.
type Store struct {
	db  *memdb.MemDB
	ttl time.Duration
}

// New creates a Store with the given retention TTL.
func New(ttl time.Duration) (*Store, error) {
	schema := &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			tableMeeting: {
				Name: tableMeeting,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "ID"},
					},
					"status": {
						Name:    "status",
						Indexer: &memdb.StringFieldIndex{Field: "Status"},
					},
					"expiry": {
						Name:    "expiry",
						Indexer: &memdb.StringFieldIndex{Field: "Expiry"},
					},
				},
			},
		},
	}

	db, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, fmt.Errorf("create memdb: %w", err)
	}

	return &Store{db: db, ttl: ttl}, nil
}

// Insert registers a new meeting in uploaded state.
func (s *Store) Insert(m *Meeting) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	if m.Status == "" {
		m.Status = StatusUploaded
	}
	m.Expiry = m.CreatedAt.Add(s.ttl).Format(time.RFC3339)

	txn := s.db.Txn(true)
	defer txn.Abort()

	if err := txn.Insert(tableMeeting, m); err != nil {
		return fmt.Errorf("insert meeting: %w", err)
	}

	txn.Commit()
	return nil
}

// Get returns the meeting with the given ID, or nil if absent.
func (s *Store) Get(id string) (*Meeting, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(tableMeeting, "id", id)
	if err != nil {
		return nil, fmt.Errorf("lookup meeting: %w", err)
	}
	if raw == nil {
		return nil, nil
	}

	return raw.(*Meeting), nil
}

// List returns all meetings, newest first.
func (s *Store) List() ([]*Meeting, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(tableMeeting, "id")
	if err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}

	var meetings []*Meeting
	for obj := it.Next(); obj != nil; obj = it.Next() {
		meetings = append(meetings, obj.(*Meeting))
	}

	sort.Slice(meetings, func(i, j int) bool {
		return meetings[i].CreatedAt.After(meetings[j].CreatedAt)
	})

	return meetings, nil
}

// HasSource reports whether any meeting references the given source file.
// The watcher uses this to skip files the HTTP handler already registered.
func (s *Store) HasSource(sourceFile string) (bool, error) {
	meetings, err := s.List()
	if err != nil {
		return false, err
	}
	for _, m := range meetings {
		if m.SourceFile == sourceFile {
			return true, nil
		}
	}
	return false, nil
}

// UpdateStatus moves a meeting into the given status.
func (s *Store) UpdateStatus(id, status string) error {
	return s.update(id, func(m *Meeting) {
		m.Status = status
	})
}

// Fail marks a meeting failed with the given reason.
func (s *Store) Fail(id, reason string) error {
	return s.update(id, func(m *Meeting) {
		m.Status = StatusFailed
		m.Error = reason
	})
}

// Complete marks a meeting completed and records its artifacts and stats.
func (s *Store) Complete(id string, result CompletionResult) error {
	return s.update(id, func(m *Meeting) {
		m.Status = StatusCompleted
		m.Error = ""
		m.DurationSeconds = result.DurationSeconds
		m.WordCount = result.WordCount
		m.TranscriptFile = result.TranscriptFile
		m.MinutesFile = result.MinutesFile
		m.DocxFile = result.DocxFile
		m.PDFFile = result.PDFFile
	})
}

// CompletionResult carries the artifact paths and stats of a finished run.
type CompletionResult struct {
	DurationSeconds float64
	WordCount       int
	TranscriptFile  string
	MinutesFile     string
	DocxFile        string
	PDFFile         string
}

func (s *Store) update(id string, mutate func(*Meeting)) error {
	txn := s.db.Txn(true)
	defer txn.Abort()

	raw, err := txn.First(tableMeeting, "id", id)
	if err != nil {
		return fmt.Errorf("lookup meeting: %w", err)
	}
	if raw == nil {
		return fmt.Errorf("meeting %s not found", id)
	}

	// memdb records are shared between readers, mutate a copy
	updated := *raw.(*Meeting)
	mutate(&updated)

	if err := txn.Insert(tableMeeting, &updated); err != nil {
		return fmt.Errorf("update meeting: %w", err)
	}

	txn.Commit()
	return nil
}

// DeleteExpired removes meetings past their expiry and returns the purged
// records so the caller can remove their artifacts from disk.
func (s *Store) DeleteExpired(now time.Time) ([]*Meeting, error) {
	txn := s.db.Txn(true)
	defer txn.Abort()

	it, err := txn.Get(tableMeeting, "expiry")
	if err != nil {
		return nil, fmt.Errorf("scan expiry index: %w", err)
	}

	var expired []*Meeting
	for obj := it.Next(); obj != nil; obj = it.Next() {
		m := obj.(*Meeting)
		expiry, err := time.Parse(time.RFC3339, m.Expiry)
		if err != nil {
			continue
		}
		if expiry.Before(now) {
			expired = append(expired, m)
		}
	}

	for _, m := range expired {
		if err := txn.Delete(tableMeeting, m); err != nil {
			return nil, fmt.Errorf("delete meeting %s: %w", m.ID, err)
		}
	}

	txn.Commit()
	return expired, nil
}
