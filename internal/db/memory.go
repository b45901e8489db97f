package db

import (
	"context"
	"sync"
	"time"

	"github.com/fupdash/backend/internal/models"
)

// MemoryStore holds datasets in process. Entries older than TTL are evicted
// on access; a zero TTL keeps them forever.
type MemoryStore struct {
	TTL time.Duration
	Now func() time.Time

	mu       sync.RWMutex
	datasets map[string]models.Dataset
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		TTL:      ttl,
		Now:      time.Now,
		datasets: map[string]models.Dataset{},
	}
}

func (s *MemoryStore) Save(_ context.Context, ds models.Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked()
	records := make([]models.ShipmentRecord, len(ds.Records))
	copy(records, ds.Records)
	ds.Records = records
	s.datasets[ds.ID] = ds
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (models.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked()
	ds, ok := s.datasets[id]
	if !ok {
		return models.Dataset{}, ErrDatasetNotFound
	}
	return ds, nil
}

func (s *MemoryStore) Latest(_ context.Context) (models.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked()
	var (
		latest models.Dataset
		found  bool
	)
	for _, ds := range s.datasets {
		if !found || ds.UploadedAt.After(latest.UploadedAt) ||
			(ds.UploadedAt.Equal(latest.UploadedAt) && ds.ID > latest.ID) {
			latest = ds
			found = true
		}
	}
	if !found {
		return models.Dataset{}, ErrDatasetNotFound
	}
	return latest, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked()
	if _, ok := s.datasets[id]; !ok {
		return ErrDatasetNotFound
	}
	delete(s.datasets, id)
	return nil
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

func (s *MemoryStore) evictLocked() {
	if s.TTL <= 0 {
		return
	}
	cutoff := s.Now().Add(-s.TTL)
	for id, ds := range s.datasets {
		if ds.UploadedAt.Before(cutoff) {
			delete(s.datasets, id)
		}
	}
}
