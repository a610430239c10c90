package brand

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sunseo/internal/logger"
	"sync"
)

// MapStore holds the normalized brand key -> display name overrides persisted
// as a JSON object. Entries are only ever added; existing keys keep the value
// a person typed into the file.
type MapStore struct {
	mu      sync.RWMutex
	path    string
	entries map[string]string
}

// NewMapStore returns an empty store bound to path. Call Load to read it.
func NewMapStore(path string) *MapStore {
	return &MapStore{
		path:    path,
		entries: make(map[string]string),
	}
}

// Load replaces the in-memory entries with the file contents. A missing file
// leaves the store empty. An unreadable document is logged and treated as
// empty, so a hand-edited typo never blocks processing.
func (s *MapStore) Load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.reset(nil)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read brand map %s: %w", s.path, err)
	}

	entries := make(map[string]string)
	if err := json.Unmarshal(data, &entries); err != nil {
		logger.Warn("Brand map is not valid JSON, starting empty", "path", s.path, "error", err)
		entries = nil
	}

	s.reset(entries)
	logger.Debug("Loaded brand map", "path", s.path, "entries", s.Len())
	return nil
}

func (s *MapStore) reset(entries map[string]string) {
	if entries == nil {
		entries = make(map[string]string)
	}
	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
}

// Save writes the entries with sorted keys and unescaped non-ASCII text.
func (s *MapStore) Save() error {
	s.mu.RLock()
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	err := encoder.Encode(s.entries)
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to encode brand map: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create brand map directory: %w", err)
	}
	if err := os.WriteFile(s.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write brand map %s: %w", s.path, err)
	}

	logger.Info("Saved brand map", "path", s.path, "entries", s.Len())
	return nil
}

// Get looks up an already normalized key.
func (s *MapStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[key]
	return v, ok
}

// Len returns the number of entries.
func (s *MapStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Entries returns a copy of the map.
func (s *MapStore) Entries() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.entries))
	for k, v := range s.entries {
		out[k] = v
	}
	return out
}

// Path returns the backing file.
func (s *MapStore) Path() string {
	return s.path
}

// addMissing stores value under key unless the key is already present.
func (s *MapStore) addMissing(key, value string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entries[key]; exists {
		return false
	}
	s.entries[key] = value
	return true
}

// Sync adds a guessed display name for every brand whose key is not in the
// store yet and saves the file when anything was added. It returns the number
// of new keys.
func Sync(store *MapStore, brands []string) (int, error) {
	added := 0
	for _, b := range brands {
		key := Normalize(b)
		if key == "" {
			continue
		}
		if store.addMissing(key, Guess(b)) {
			logger.Debug("Added brand to map", "key", key)
			added++
		}
	}

	if added == 0 {
		return 0, nil
	}
	if err := store.Save(); err != nil {
		return added, err
	}

	logger.Info("Brand map synchronized", "added", added)
	return added, nil
}
