//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rios0rios0/sqlplayground/internal/domain/entities"
	"github.com/rios0rios0/sqlplayground/internal/domain/repositories"
)

// InMemorySessionRepository implements repositories.SessionRepository over a map.
type InMemorySessionRepository struct {
	Sessions    map[string]*entities.Session
	SaveErr     error
	DeletedIDs  []string
	PurgeErr    error
	PurgeCalls  int
	CurrentTime time.Time
}

var _ repositories.SessionRepository = (*InMemorySessionRepository)(nil)

// NewInMemorySessionRepository creates an empty session store.
func NewInMemorySessionRepository() *InMemorySessionRepository {
	return &InMemorySessionRepository{Sessions: make(map[string]*entities.Session)}
}

func (s *InMemorySessionRepository) Save(_ context.Context, session *entities.Session) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.Sessions[session.ID] = session
	return nil
}

func (s *InMemorySessionRepository) Get(_ context.Context, id string) (*entities.Session, error) {
	session, ok := s.Sessions[id]
	if !ok {
		return nil, entities.ErrNotFound
	}
	return session, nil
}

func (s *InMemorySessionRepository) Delete(_ context.Context, id string) error {
	s.DeletedIDs = append(s.DeletedIDs, id)
	delete(s.Sessions, id)
	return nil
}

// PurgeExpired drops sessions expired at CurrentTime, or now when it is zero.
func (s *InMemorySessionRepository) PurgeExpired(_ context.Context) (int64, error) {
	s.PurgeCalls++
	if s.PurgeErr != nil {
		return 0, s.PurgeErr
	}
	now := s.CurrentTime
	if now.IsZero() {
		now = time.Now()
	}
	var purged int64
	for id, session := range s.Sessions {
		if !session.ExpiresAt.IsZero() && !session.ExpiresAt.After(now) {
			delete(s.Sessions, id)
			purged++
		}
	}
	return purged, nil
}

// StubSessionCodec encodes a session as "signed:<id>" and rejects anything else.
type StubSessionCodec struct {
	EncodeErr error
}

var _ repositories.SessionCodec = (*StubSessionCodec)(nil)

const stubCredentialPrefix = "signed:"

func (s *StubSessionCodec) Encode(session *entities.Session) (string, error) {
	if s.EncodeErr != nil {
		return "", s.EncodeErr
	}
	return stubCredentialPrefix + session.ID, nil
}

func (s *StubSessionCodec) Decode(credential string) (string, error) {
	id, ok := strings.CutPrefix(credential, stubCredentialPrefix)
	if !ok || id == "" {
		return "", errors.Join(entities.ErrInvalidSession, errors.New("unsigned credential"))
	}
	return id, nil
}
