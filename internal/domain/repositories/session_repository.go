package repositories

import (
	"context"
	"time"

	"github.com/johnquangdev/call-assistant/internal/domain/entities"
)

// SessionRepository defines the interface for call session storage.
// Implementations serialize Update calls per session id.
type SessionRepository interface {
	// Create stores a new session; fails with entities.ErrSessionExists on id collision
	Create(ctx context.Context, session *entities.Session) error

	// Get returns a snapshot of the session
	Get(ctx context.Context, id string) (*entities.Session, error)

	// Update runs fn with exclusive access to the stored session
	Update(ctx context.Context, id string, fn func(*entities.Session) error) error

	// Delete removes a session
	Delete(ctx context.Context, id string) error

	// Sweep drops completed sessions ended before completedBefore and
	// active sessions idle since idleBefore. Returns the number removed.
	Sweep(ctx context.Context, completedBefore, idleBefore time.Time) (int, error)

	// Count returns the number of stored sessions
	Count(ctx context.Context) (int, error)
}
