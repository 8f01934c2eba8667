package output

import "uigen-bridge/internal/domain/entity"

// SessionStore persists authentication cookies across runs.
//
// Load returns (nil, nil) when no prior session exists or the stored data
// is unreadable, absence is not an error. Save overwrites atomically so a
// concurrent reader never sees a partial file.
type SessionStore interface {
	Load() (*entity.SessionState, error)
	Save(state *entity.SessionState) error
}
