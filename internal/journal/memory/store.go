package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"jupkit/internal/journal"
)

// Store is an in-memory journal.Store, used when no database is configured.
type Store struct {
	mu      sync.RWMutex
	nextID  int64
	entries []*journal.Entry
	bySig   map[string]*journal.Entry
}

func NewStore() *Store {
	return &Store{bySig: make(map[string]*journal.Entry)}
}

var _ journal.Store = (*Store)(nil)

func (s *Store) Record(_ context.Context, e *journal.Entry) error {
	if err := journal.Validate(e); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if e.Signature != "" {
		if _, exists := s.bySig[e.Signature]; exists {
			return journal.ErrDuplicateKey
		}
	}
	s.nextID++
	now := time.Now().UTC()
	e.ID = s.nextID
	e.CreatedAt = now
	e.UpdatedAt = now

	stored := *e
	s.entries = append(s.entries, &stored)
	if e.Signature != "" {
		s.bySig[e.Signature] = &stored
	}
	return nil
}

func (s *Store) UpdateStatus(_ context.Context, signature string, status journal.Status, errMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.bySig[signature]
	if !ok {
		return journal.ErrNotFound
	}
	e.Status = status
	e.Error = errMsg
	e.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *Store) Get(_ context.Context, signature string) (*journal.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.bySig[signature]
	if !ok {
		return nil, journal.ErrNotFound
	}
	out := *e
	return &out, nil
}

func (s *Store) ListByWallet(_ context.Context, wallet string, limit int) ([]*journal.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*journal.Entry
	for _, e := range s.entries {
		if e.Wallet == wallet {
			out := *e
			result = append(result, &out)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID > result[j].ID
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (s *Store) Close() {}
