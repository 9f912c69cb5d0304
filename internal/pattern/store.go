package pattern

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store persists site patterns keyed by site identity (domain name).
type Store interface {
	// Load returns the stored pattern for a site. A site with no stored
	// pattern is not an error; it means "use catalog defaults".
	Load(siteKey string) (*SitePattern, bool, error)
	Save(siteKey string, p SitePattern) error
}

type patternsFile struct {
	Patterns map[string]SitePattern `json:"patterns"`
}

// FileStore keeps all site patterns in one JSON file, a nested mapping
// keyed by site under a top-level "patterns" object.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(siteKey string) (*SitePattern, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.read()
	if err != nil {
		return nil, false, err
	}
	p, ok := file.Patterns[siteKey]
	if !ok {
		return nil, false, nil
	}
	return &p, true, nil
}

func (s *FileStore) Save(siteKey string, p SitePattern) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.read()
	if err != nil {
		return err
	}
	file.Patterns[siteKey] = p

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode patterns: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create patterns dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write patterns file: %w", err)
	}
	return nil
}

func (s *FileStore) read() (*patternsFile, error) {
	file := &patternsFile{Patterns: map[string]SitePattern{}}

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return file, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read patterns file: %w", err)
	}
	if err := json.Unmarshal(data, file); err != nil {
		return nil, fmt.Errorf("failed to parse patterns file: %w", err)
	}
	if file.Patterns == nil {
		file.Patterns = map[string]SitePattern{}
	}
	return file, nil
}
