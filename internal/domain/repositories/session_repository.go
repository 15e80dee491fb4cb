package repositories

import (
	"context"

	"github.com/rios0rios0/sqlplayground/internal/domain/entities"
)

// SessionRepository persists established sessions.
type SessionRepository interface {
	// Save stores or replaces a session.
	Save(ctx context.Context, session *entities.Session) error

	// Get returns a live session, or entities.ErrNotFound when it is missing or expired.
	Get(ctx context.Context, id string) (*entities.Session, error)

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error

	// PurgeExpired removes every expired session and reports how many were removed.
	PurgeExpired(ctx context.Context) (int64, error)
}

// SessionCodec turns session IDs into tamper-proof credentials and back.
type SessionCodec interface {
	Encode(session *entities.Session) (string, error)
	Decode(credential string) (string, error)
}
