package roster

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/insightdelivered/campus-fund-tracker/internal/models"
)

// ErrNotFound is returned when no roster record matches a requested id.
var ErrNotFound = errors.New("student not found")

// Roster data sources.
const (
	SourceSheet  = "sheet"
	SourceSample = "sample"
)

// LoadInfo describes one roster swap. Concurrent refreshes race and the
// last completed swap wins; the load id tells consumers which one that was.
type LoadInfo struct {
	ID       string    `json:"loadId"`
	Source   string    `json:"source"`
	LoadedAt time.Time `json:"loadedAt"`
	Count    int       `json:"count"`
}

// Store holds the normalized roster for the current load. Replace swaps
// the whole slice at once, so readers always see a complete load and no
// record is ever mutated in place.
type Store struct {
	mu      sync.RWMutex
	records []models.StudentRecord
	info    LoadInfo
}

func NewStore() *Store {
	return &Store{}
}

// Replace installs a new load wholesale and tags it with a fresh load id.
func (s *Store) Replace(records []models.StudentRecord, source string) LoadInfo {
	info := LoadInfo{
		ID:       uuid.NewString(),
		Source:   source,
		LoadedAt: time.Now().UTC(),
		Count:    len(records),
	}

	s.mu.Lock()
	s.records = records
	s.info = info
	s.mu.Unlock()

	return info
}

// All returns the current load. The slice is shared and read-only by
// convention; view computations copy before sorting.
func (s *Store) All() []models.StudentRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}

// Info returns the metadata of the current load. A zero-value LoadInfo
// means nothing has been loaded yet.
func (s *Store) Info() LoadInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.info
}

// Get returns the first record whose id loosely matches the requested one.
func (s *Store) Get(id string) (models.StudentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.records {
		if LooseMatch(rec.ID, id) {
			return rec, nil
		}
	}
	return models.StudentRecord{}, ErrNotFound
}
