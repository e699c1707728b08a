package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Persister stores the full cart state under a single key.
type Persister interface {
	Load() (State, error)
	Save(State) error
}

type MemoryStore struct {
	mu    sync.Mutex
	state State
	// SaveErr, when set, is returned by every Save.
	SaveErr error
	Saves   int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load() (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := make([]LineItem, len(m.state.Items))
	copy(items, m.state.Items)
	return State{Items: items}, nil
}

func (m *MemoryStore) Save(s State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Saves++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	items := make([]LineItem, len(s.Items))
	copy(items, s.Items)
	m.state = State{Items: items}
	return nil
}

// FileStore keeps the cart as a JSON document on disk.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Load() (State, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return State{}, nil
	}
	if err != nil {
		return State{}, fmt.Errorf("failed to read cart file: %w", err)
	}

	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return State{}, fmt.Errorf("failed to decode cart file: %w", err)
	}
	return s, nil
}

func (f *FileStore) Save(s State) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("failed to create cart directory: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write cart file: %w", err)
	}
	return os.Rename(tmp, f.path)
}
