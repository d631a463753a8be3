package session

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// FilePersistence stores one JSON file per session under a directory.
type FilePersistence struct {
	dir string
}

// NewFilePersistence creates the directory if needed.
func NewFilePersistence(dir string) (*FilePersistence, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return &FilePersistence{dir: dir}, nil
}

// filePath maps a session id to its file, flattening any path separators so
// an id can never escape the directory.
func (p *FilePersistence) filePath(sessionID string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(sessionID)
	return filepath.Join(p.dir, safe+".json")
}

func (p *FilePersistence) Save(rec *Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", rec.SessionID, err)
	}
	if err := os.WriteFile(p.filePath(rec.SessionID), data, 0644); err != nil {
		return fmt.Errorf("write session %s: %w", rec.SessionID, err)
	}
	return nil
}

func (p *FilePersistence) Load(sessionID string) (*Record, error) {
	data, err := os.ReadFile(p.filePath(sessionID))
	if err != nil {
		return nil, fmt.Errorf("read session %s: %w", sessionID, err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", sessionID, err)
	}
	return &rec, nil
}

func (p *FilePersistence) Delete(sessionID string) error {
	err := os.Remove(p.filePath(sessionID))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete session %s: %w", sessionID, err)
	}
	return nil
}

func (p *FilePersistence) ListAll() ([]*Record, error) {
	files, err := filepath.Glob(filepath.Join(p.dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("scan session dir: %w", err)
	}
	var records []*Record
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			log.Printf("Warning: cannot read session file %s: %v", file, err)
			continue
		}
		var rec Record
		if err := json.Unmarshal(data, &rec); err != nil {
			log.Printf("Warning: cannot decode session file %s: %v", file, err)
			continue
		}
		records = append(records, &rec)
	}
	return records, nil
}

func (p *FilePersistence) Exists(sessionID string) bool {
	_, err := os.Stat(p.filePath(sessionID))
	return err == nil
}
