package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/call-assistant/internal/domain/entities"
)

// MemorySessionRepository keeps call sessions in process memory.
// Each session has its own lock so calls on different sessions never contend.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry
	logger   *zap.Logger
}

type sessionEntry struct {
	mu      sync.Mutex
	session *entities.Session
	deleted bool
}

// NewMemorySessionRepository creates an empty session table
func NewMemorySessionRepository(logger *zap.Logger) *MemorySessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[string]*sessionEntry),
		logger:   logger,
	}
}

// Create stores a new session
func (r *MemorySessionRepository) Create(ctx context.Context, session *entities.Session) error {
	if session == nil || session.ID == "" {
		return fmt.Errorf("%w: session id is required", entities.ErrInvalidRequest)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[session.ID]; exists {
		return fmt.Errorf("%w: %s", entities.ErrSessionExists, session.ID)
	}
	r.sessions[session.ID] = &sessionEntry{session: session}
	return nil
}

// Get returns a snapshot of the session
func (r *MemorySessionRepository) Get(ctx context.Context, id string) (*entities.Session, error) {
	var snap *entities.Session
	err := r.withEntry(id, func(s *entities.Session) error {
		snap = s.Snapshot()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// Update runs fn while holding the session's lock
func (r *MemorySessionRepository) Update(ctx context.Context, id string, fn func(*entities.Session) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.withEntry(id, fn)
}

// Delete removes a session
func (r *MemorySessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	entry, ok := r.sessions[id]
	if ok {
		delete(r.sessions, id)
	}
	r.mu.Unlock()

	if !ok {
		return entities.ErrSessionNotFound
	}
	entry.mu.Lock()
	entry.deleted = true
	entry.mu.Unlock()
	return nil
}

// Sweep removes expired sessions. Sessions with a turn in flight are kept.
func (r *MemorySessionRepository) Sweep(ctx context.Context, completedBefore, idleBefore time.Time) (int, error) {
	r.mu.RLock()
	candidates := make(map[string]*sessionEntry, len(r.sessions))
	for id, entry := range r.sessions {
		candidates[id] = entry
	}
	r.mu.RUnlock()

	var expired []string
	for id, entry := range candidates {
		entry.mu.Lock()
		s := entry.session
		drop := false
		switch {
		case s.Processing:
		case s.Status == entities.SessionStatusCompleted:
			drop = s.EndedAt != nil && s.EndedAt.Before(completedBefore)
		default:
			drop = s.LastActivityAt.Before(idleBefore)
		}
		if drop {
			entry.deleted = true
			expired = append(expired, id)
		}
		entry.mu.Unlock()
	}

	if len(expired) == 0 {
		return 0, nil
	}
	r.mu.Lock()
	for _, id := range expired {
		delete(r.sessions, id)
	}
	r.mu.Unlock()
	return len(expired), nil
}

// Count returns the number of stored sessions
func (r *MemorySessionRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions), nil
}

// StartJanitor periodically sweeps expired sessions until ctx is cancelled
func (r *MemorySessionRepository) StartJanitor(ctx context.Context, interval, retention, idleTimeout time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				removed, err := r.Sweep(ctx, now.Add(-retention), now.Add(-idleTimeout))
				if r.logger == nil {
					continue
				}
				if err != nil {
					r.logger.Warn("session.sweep.failed", zap.Error(err))
				} else if removed > 0 {
					r.logger.Info("🧹 Expired call sessions removed", zap.Int("removed", removed))
				}
			}
		}
	}()
}

func (r *MemorySessionRepository) withEntry(id string, fn func(*entities.Session) error) error {
	r.mu.RLock()
	entry, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return entities.ErrSessionNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.deleted {
		return entities.ErrSessionNotFound
	}
	return fn(entry.session)
}
