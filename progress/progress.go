// Package progress records which levels a player has completed.
package progress

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Store persists completed level indices. MarkCompleted is idempotent.
type Store interface {
	MarkCompleted(ctx context.Context, level int) error
	Completed(ctx context.Context) ([]int, error)
	Clear(ctx context.Context) error
}

// Unlocked reports whether level is playable: the first level always is,
// every later one once its predecessor is completed.
func Unlocked(completed []int, level int) bool {
	if level < 0 {
		return false
	}
	if level == 0 {
		return true
	}
	for _, c := range completed {
		if c == level-1 {
			return true
		}
	}
	return false
}

func validateLevel(level int) error {
	if level < 0 {
		return fmt.Errorf("level index must not be negative, got %d", level)
	}
	return nil
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu   sync.Mutex
	done map[int]struct{}
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{done: make(map[int]struct{})}
}

// MarkCompleted records level as completed.
func (s *MemoryStore) MarkCompleted(_ context.Context, level int) error {
	if err := validateLevel(level); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.done[level] = struct{}{}
	return nil
}

// Completed returns the completed levels in ascending order.
func (s *MemoryStore) Completed(_ context.Context) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, 0, len(s.done))
	for l := range s.done {
		out = append(out, l)
	}
	sort.Ints(out)
	return out, nil
}

// Clear forgets every completion.
func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.done = make(map[int]struct{})
	return nil
}
