package maps

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/hashfront/skirmish-server/game/engine"
)

// Store holds validated, immutable map templates. Templates come from two
// places: JSON files in the template directory, loaded on demand and cached,
// and templates registered at runtime through the API.
type Store struct {
	dir string

	mu        sync.RWMutex
	templates map[string]*engine.MapTemplate
}

// NewStore creates a store backed by the given directory. An empty dir gives
// a purely in-memory store.
func NewStore(dir string) *Store {
	return &Store{
		dir:       dir,
		templates: make(map[string]*engine.MapTemplate),
	}
}

// LoadDir eagerly loads and validates every *.json template in the backing
// directory. Invalid files fail the whole load so a bad deploy is caught at
// startup, not at session creation.
func (s *Store) LoadDir() error {
	if s.dir == "" {
		return nil
	}
	files, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return fmt.Errorf("scan template dir: %w", err)
	}
	for _, file := range files {
		if _, err := s.loadFile(file); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) loadFile(path string) (*engine.MapTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template %s: %w", filepath.Base(path), err)
	}
	var tpl engine.MapTemplate
	if err := json.Unmarshal(data, &tpl); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", engine.ErrInvalidTemplate, filepath.Base(path), err)
	}
	if tpl.ID == "" {
		// File templates default their id to the file stem.
		tpl.ID = strings.TrimSuffix(filepath.Base(path), ".json")
	}
	if err := tpl.Validate(); err != nil {
		return nil, fmt.Errorf("template %s: %w", filepath.Base(path), err)
	}

	s.mu.Lock()
	s.templates[tpl.ID] = &tpl
	s.mu.Unlock()
	return &tpl, nil
}

// Register validates and stores a runtime-submitted template, assigning it a
// fresh id. Nothing is stored when validation fails.
func (s *Store) Register(tpl *engine.MapTemplate) (string, error) {
	if tpl == nil {
		return "", fmt.Errorf("%w: nil template", engine.ErrInvalidTemplate)
	}
	cp := *tpl
	cp.ID = uuid.NewString()
	if err := cp.Validate(); err != nil {
		return "", err
	}

	s.mu.Lock()
	s.templates[cp.ID] = &cp
	s.mu.Unlock()
	return cp.ID, nil
}

// Get returns a template by id. Ids not in memory are tried against the
// backing directory once, mirroring lazy config loading.
func (s *Store) Get(id string) (*engine.MapTemplate, error) {
	s.mu.RLock()
	tpl, ok := s.templates[id]
	s.mu.RUnlock()
	if ok {
		return tpl, nil
	}

	if s.dir != "" && !strings.ContainsAny(id, `/\.`) {
		if tpl, err := s.loadFile(filepath.Join(s.dir, id+".json")); err == nil {
			return tpl, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", engine.ErrTemplateNotFound, id)
}

// List returns all loaded templates sorted by name, ties by id.
func (s *Store) List() []*engine.MapTemplate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*engine.MapTemplate, 0, len(s.templates))
	for _, tpl := range s.templates {
		out = append(out, tpl)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Save writes a template back to the backing directory as pretty JSON.
func (s *Store) Save(tpl *engine.MapTemplate) error {
	if s.dir == "" {
		return fmt.Errorf("save template: store has no directory")
	}
	if err := tpl.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create template dir: %w", err)
	}
	data, err := json.MarshalIndent(tpl, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal template: %w", err)
	}
	path := filepath.Join(s.dir, tpl.ID+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write template: %w", err)
	}
	return nil
}
