package session

import (
	"encoding/json"
	"time"
)

// Record is the durable form of one session: its metadata plus the raw game
// snapshot produced by the engine.
type Record struct {
	SessionID      string          `json:"session_id"`
	CreatedAt      time.Time       `json:"created_at"`
	LastAccessedAt time.Time       `json:"last_accessed_at"`
	Game           json.RawMessage `json:"game"`
}

// Persistence stores session records durably. Implementations must be safe
// for concurrent use.
type Persistence interface {
	Save(rec *Record) error
	Load(sessionID string) (*Record, error)
	Delete(sessionID string) error
	ListAll() ([]*Record, error)
	Exists(sessionID string) bool
}
