package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/oauth2"

	"github.com/rios0rios0/sqlplayground/internal/domain/entities"
)

// SessionRepository persists sessions in the sessions table.
type SessionRepository struct {
	store *Store
}

// NewSessionRepository binds a session repository to an open store.
func NewSessionRepository(store *Store) *SessionRepository {
	return &SessionRepository{store: store}
}

func (r *SessionRepository) Save(ctx context.Context, session *entities.Session) error {
	if session == nil {
		return errors.New("session is required")
	}
	if strings.TrimSpace(session.ID) == "" {
		return errors.New("session id is required")
	}

	var accessToken, tokenType string
	var tokenExpiry int64
	if session.Token != nil {
		accessToken = session.Token.AccessToken
		tokenType = session.Token.TokenType
		tokenExpiry = toMillis(session.Token.Expiry)
	}

	_, err := r.store.sqlDB.ExecContext(ctx, `
INSERT INTO sessions (
    id, login, email, avatar_url, access_token, token_type, token_expires_at,
    authenticated, created_at, expires_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    login = excluded.login,
    email = excluded.email,
    avatar_url = excluded.avatar_url,
    access_token = excluded.access_token,
    token_type = excluded.token_type,
    token_expires_at = excluded.token_expires_at,
    authenticated = excluded.authenticated,
    created_at = excluded.created_at,
    expires_at = excluded.expires_at`,
		session.ID,
		session.Identity.Login,
		session.Identity.Email,
		session.Identity.AvatarURL,
		accessToken,
		tokenType,
		tokenExpiry,
		boolToInt(session.Authenticated),
		toMillis(session.CreatedAt),
		toMillis(session.ExpiresAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Get loads a session. Expired rows are removed and reported as missing.
func (r *SessionRepository) Get(ctx context.Context, id string) (*entities.Session, error) {
	row := r.store.sqlDB.QueryRowContext(ctx, `
SELECT id, login, email, avatar_url, access_token, token_type, token_expires_at,
       authenticated, created_at, expires_at
FROM sessions WHERE id = ?`, id)

	var (
		session                        entities.Session
		accessToken, tokenType         string
		tokenExpiry, createdAt, expiry int64
		authenticated                  int
	)
	err := row.Scan(
		&session.ID,
		&session.Identity.Login,
		&session.Identity.Email,
		&session.Identity.AvatarURL,
		&accessToken,
		&tokenType,
		&tokenExpiry,
		&authenticated,
		&createdAt,
		&expiry,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entities.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	session.Authenticated = authenticated != 0
	session.CreatedAt = fromMillis(createdAt)
	session.ExpiresAt = fromMillis(expiry)
	if accessToken != "" {
		session.Token = &oauth2.Token{
			AccessToken: accessToken,
			TokenType:   tokenType,
			Expiry:      fromMillis(tokenExpiry),
		}
	}

	if session.Expired(r.store.now()) {
		if deleteErr := r.Delete(ctx, id); deleteErr != nil {
			return nil, deleteErr
		}
		return nil, entities.ErrNotFound
	}
	return &session, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.store.sqlDB.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// PurgeExpired removes every session whose lifetime has elapsed.
func (r *SessionRepository) PurgeExpired(ctx context.Context) (int64, error) {
	result, err := r.store.sqlDB.ExecContext(
		ctx,
		"DELETE FROM sessions WHERE expires_at > 0 AND expires_at <= ?",
		toMillis(r.store.now()),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired sessions: %w", err)
	}
	return result.RowsAffected()
}
