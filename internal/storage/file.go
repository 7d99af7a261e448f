package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"

	"wedding-rsvp/internal/models"
)

// FileStore is the local fallback backend: a single JSON array rewritten in
// full on every append. The mutex makes appends safe across goroutines in
// one process; concurrent writers from separate processes are not
// coordinated and the last writer wins.
type FileStore struct {
	mu    sync.RWMutex
	rsvps []models.RSVP
	file  string
}

// NewFileStore creates a file-backed store, loading any existing records.
func NewFileStore(filePath string) (*FileStore, error) {
	s := &FileStore{
		rsvps: make([]models.RSVP, 0),
		file:  filePath,
	}

	if _, err := os.Stat(filePath); err == nil {
		if err := s.load(); err != nil {
			return nil, fmt.Errorf("failed to load storage: %w", err)
		}
	}

	return s, nil
}

func (s *FileStore) Append(_ context.Context, rec models.NewRecord) (models.RSVP, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rsvp := models.RSVP{
		ID:        strconv.FormatInt(time.Now().UnixMilli(), 10),
		FullName:  rec.FullName,
		Email:     rec.Email,
		Attending: rec.Attending,
		Guests:    rec.Guests,
		Notes:     rec.Notes,
		IPAddress: rec.IPAddress,
		UserAgent: rec.UserAgent,
		CreatedAt: time.Now().UTC(),
	}

	s.rsvps = append(s.rsvps, rsvp)
	if err := s.save(); err != nil {
		s.rsvps = s.rsvps[:len(s.rsvps)-1]
		return models.RSVP{}, err
	}

	return rsvp, nil
}

func (s *FileStore) ListAll(_ context.Context) ([]models.RSVP, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rsvps := make([]models.RSVP, len(s.rsvps))
	copy(rsvps, s.rsvps)
	sort.SliceStable(rsvps, func(i, j int) bool {
		return rsvps[i].CreatedAt.After(rsvps[j].CreatedAt)
	})
	return rsvps, nil
}

func (s *FileStore) HasRecentDuplicate(_ context.Context, email string, attending bool, since time.Time) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.rsvps {
		if r.Email == email && r.Attending == attending && !r.CreatedAt.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

// save writes the records to file. Callers must hold the write lock.
func (s *FileStore) save() error {
	data, err := json.MarshalIndent(s.rsvps, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	// Ensure directory exists
	dir := filepath.Dir(s.file)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	return os.WriteFile(s.file, data, 0644)
}

// load reads records from file
func (s *FileStore) load() error {
	data, err := os.ReadFile(s.file)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	if len(data) == 0 {
		s.rsvps = make([]models.RSVP, 0)
		return nil
	}

	if err := json.Unmarshal(data, &s.rsvps); err != nil {
		return fmt.Errorf("failed to unmarshal data: %w", err)
	}

	return nil
}
