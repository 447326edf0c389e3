package match

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileRepo persists matches as one JSON snapshot per match under a
// data directory. The snapshot is the plain numeric/sequence fields of
// the match; loading one rebuilds a playable match as-is.
type FileRepo struct {
	mu      sync.RWMutex
	dataDir string
	cache   map[string]*Match
}

// NewFileRepo creates a file-backed match repository rooted at dataDir.
func NewFileRepo(dataDir string) (*FileRepo, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	return &FileRepo{
		dataDir: dataDir,
		cache:   make(map[string]*Match),
	}, nil
}

func (r *FileRepo) filePath(id string) string {
	return filepath.Join(r.dataDir, id+".json")
}

func (r *FileRepo) Get(id string) (*Match, bool, error) {
	r.mu.RLock()
	if m, ok := r.cache[id]; ok {
		r.mu.RUnlock()
		return m, true, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring the write lock.
	if m, ok := r.cache[id]; ok {
		return m, true, nil
	}

	data, err := os.ReadFile(r.filePath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var m Match
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, false, fmt.Errorf("decode match %s: %w", id, err)
	}

	r.cache[id] = &m
	return &m, true, nil
}

func (r *FileRepo) Save(m *Match) error {
	if m == nil || m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache[m.ID] = m

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.filePath(m.ID), data, 0o644)
}

func (r *FileRepo) List() ([]*Match, error) {
	entries, err := os.ReadDir(r.dataDir)
	if err != nil {
		return nil, err
	}

	out := make([]*Match, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".json")
		m, ok, err := r.Get(id)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *FileRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.cache, id)
	if err := os.Remove(r.filePath(id)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
