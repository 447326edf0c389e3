package match

import (
	"fmt"
	"sync"
)

// Repo persists matches. Implementations serialize access; a match is
// mutated by one command at a time.
type Repo interface {
	// Get returns the match with the given id.
	Get(id string) (*Match, bool, error)

	// Save persists the match.
	Save(m *Match) error

	// List returns all known matches.
	List() ([]*Match, error)

	// Delete removes a match. Deleting a missing match is not an error.
	Delete(id string) error
}

// MemoryRepo is an in-memory Repo for tests and throwaway servers.
type MemoryRepo struct {
	mu      sync.RWMutex
	matches map[string]*Match
}

// NewMemoryRepo creates an empty in-memory match repository.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		matches: make(map[string]*Match),
	}
}

func (r *MemoryRepo) Get(id string) (*Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.matches[id]
	return m, ok, nil
}

func (r *MemoryRepo) Save(m *Match) error {
	if m == nil || m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.matches[m.ID] = m
	return nil
}

func (r *MemoryRepo) List() ([]*Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Match, 0, len(r.matches))
	for _, m := range r.matches {
		out = append(out, m)
	}
	return out, nil
}

func (r *MemoryRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.matches, id)
	return nil
}
