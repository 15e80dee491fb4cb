package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/rios0rios0/sqlplayground/internal/domain/entities"
	"github.com/rios0rios0/sqlplayground/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/sqlplayground/internal/infrastructure/repositories"
)

// EstablishedSession is a newly persisted session and the credential that refers to it.
type EstablishedSession struct {
	Session    *entities.Session
	Credential string
	Profile    entities.Profile
}

// EstablishSession is the interface for turning an access token into a session.
type EstablishSession interface {
	Execute(ctx context.Context, accessToken string) (EstablishedSession, *entities.Failure)
}

// EstablishSessionCommand verifies an upstream-issued access token by fetching
// the provider profile once, then persists the session.
type EstablishSessionCommand struct {
	access   providerAccess
	sessions repositories.SessionRepository
	codec    repositories.SessionCodec
	profile  GetProfile
	ttl      time.Duration
}

// NewEstablishSessionCommand creates a new EstablishSessionCommand.
func NewEstablishSessionCommand(
	registry *infraRepos.ProviderRegistry,
	settings *entities.Settings,
	sessions repositories.SessionRepository,
	codec repositories.SessionCodec,
	profile GetProfile,
) *EstablishSessionCommand {
	return &EstablishSessionCommand{
		access:   newProviderAccess(registry, settings),
		sessions: sessions,
		codec:    codec,
		profile:  profile,
		ttl:      settings.Session.TTL,
	}
}

func (it *EstablishSessionCommand) Execute(
	ctx context.Context,
	accessToken string,
) (EstablishedSession, *entities.Failure) {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return EstablishedSession{}, &entities.Failure{
			Kind:    entities.FailureValidation,
			Message: "Access token is required",
		}
	}

	provider, failure := it.access.forToken(accessToken, nil)
	if failure != nil {
		return EstablishedSession{}, failure.Failure
	}

	identity, err := provider.GetAuthenticatedUser(ctx)
	if err != nil {
		logger.Warnf("Failed to establish session: %v", err)
		return EstablishedSession{}, entities.ProviderFailed(
			"Failed to establish session", err, nil,
		).Failure
	}

	now := time.Now().UTC()
	session := &entities.Session{
		ID:            uuid.NewString(),
		Identity:      identity,
		Token:         &oauth2.Token{AccessToken: accessToken, TokenType: "bearer"},
		Authenticated: true,
		CreatedAt:     now,
		ExpiresAt:     now.Add(it.ttl),
	}
	if err = it.sessions.Save(ctx, session); err != nil {
		logger.Errorf("Failed to persist session: %v", err)
		return EstablishedSession{}, &entities.Failure{
			Kind:    entities.FailureInternal,
			Message: "Failed to establish session: could not persist session",
		}
	}

	credential, err := it.codec.Encode(session)
	if err != nil {
		logger.Errorf("Failed to sign session: %v", err)
		return EstablishedSession{}, &entities.Failure{
			Kind:    entities.FailureInternal,
			Message: "Failed to establish session: could not sign session",
		}
	}

	logger.WithField("login", identity.Login).Info("Session established")
	return EstablishedSession{
		Session:    session,
		Credential: credential,
		Profile:    it.profile.Execute(session),
	}, nil
}

// ResolveSession is the interface for loading the session behind a credential.
type ResolveSession interface {
	Execute(ctx context.Context, credential string) *entities.Session
}

// ResolveSessionCommand verifies a credential and loads its session. Invalid,
// unknown or expired credentials resolve to nil, an anonymous caller.
type ResolveSessionCommand struct {
	sessions repositories.SessionRepository
	codec    repositories.SessionCodec
}

// NewResolveSessionCommand creates a new ResolveSessionCommand.
func NewResolveSessionCommand(
	sessions repositories.SessionRepository,
	codec repositories.SessionCodec,
) *ResolveSessionCommand {
	return &ResolveSessionCommand{sessions: sessions, codec: codec}
}

func (it *ResolveSessionCommand) Execute(ctx context.Context, credential string) *entities.Session {
	if credential == "" {
		return nil
	}

	id, err := it.codec.Decode(credential)
	if err != nil {
		logger.Debugf("Rejected session credential: %v", err)
		return nil
	}

	session, err := it.sessions.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, entities.ErrNotFound) {
			logger.Errorf("Failed to load session: %v", err)
		}
		return nil
	}
	return session
}

// EndSession is the interface for signing out.
type EndSession interface {
	Execute(ctx context.Context, session *entities.Session) error
}

// EndSessionCommand deletes the stored session. Ending an absent session is a no-op.
type EndSessionCommand struct {
	sessions repositories.SessionRepository
}

// NewEndSessionCommand creates a new EndSessionCommand.
func NewEndSessionCommand(sessions repositories.SessionRepository) *EndSessionCommand {
	return &EndSessionCommand{sessions: sessions}
}

func (it *EndSessionCommand) Execute(ctx context.Context, session *entities.Session) error {
	if session == nil || session.ID == "" {
		return nil
	}
	if err := it.sessions.Delete(ctx, session.ID); err != nil {
		return err
	}
	logger.WithField("login", session.Identity.Login).Info("Session ended")
	return nil
}

// PurgeSessions is the interface for sweeping expired sessions.
type PurgeSessions interface {
	Execute(ctx context.Context) (int64, error)
}

// PurgeSessionsCommand deletes expired sessions from the store.
type PurgeSessionsCommand struct {
	sessions repositories.SessionRepository
}

// NewPurgeSessionsCommand creates a new PurgeSessionsCommand.
func NewPurgeSessionsCommand(sessions repositories.SessionRepository) *PurgeSessionsCommand {
	return &PurgeSessionsCommand{sessions: sessions}
}

func (it *PurgeSessionsCommand) Execute(ctx context.Context) (int64, error) {
	purged, err := it.sessions.PurgeExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep sessions: %w", err)
	}
	if purged > 0 {
		logger.Debugf("Purged %d expired session(s)", purged)
	}
	return purged, nil
}
