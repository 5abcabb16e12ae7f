package memory

import (
	"context"
	"sync"

	"github.com/wurt83ow/trivia-ext/internal/models"
	"github.com/wurt83ow/trivia-ext/internal/store"
)

const defaultRecent = 4096

// Store keeps counters in process memory. It is the default journal.
// Results themselves are not kept, only the ids of the most recent ones
// so a repeated save is still reported as a conflict.
type Store struct {
	mu      sync.RWMutex
	total   int
	byScore map[int]int

	seen   map[string]struct{}
	recent []string
	next   int
}

type Option func(*Store)

// WithRecent sets how many result ids are remembered for conflict detection.
func WithRecent(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.recent = make([]string, 0, n)
		}
	}
}

// NewStore creates an empty journal.
func NewStore(opts ...Option) *Store {
	s := &Store{
		byScore: make(map[int]int),
		seen:    make(map[string]struct{}),
		recent:  make([]string, 0, defaultRecent),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) SaveResult(_ context.Context, r models.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.seen[r.ID]; ok {
		return store.ErrConflict
	}
	s.remember(r.ID)

	s.byScore[r.Correct]++
	s.total++
	return nil
}

// remember adds id to the ring of recent ids, evicting the oldest one when full.
func (s *Store) remember(id string) {
	if len(s.recent) < cap(s.recent) {
		s.recent = append(s.recent, id)
	} else {
		delete(s.seen, s.recent[s.next])
		s.recent[s.next] = id
		s.next = (s.next + 1) % len(s.recent)
	}
	s.seen[id] = struct{}{}
}

func (s *Store) Stats(_ context.Context) (models.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := models.Stats{Total: s.total, ByScore: make(map[int]int, len(s.byScore))}
	for correct, n := range s.byScore {
		stats.ByScore[correct] = n
	}
	return stats, nil
}
