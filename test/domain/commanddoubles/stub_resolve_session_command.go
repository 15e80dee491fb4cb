//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/sqlplayground/internal/domain/commands"
	"github.com/rios0rios0/sqlplayground/internal/domain/entities"
)

// StubResolveSessionCommand is a stub implementation of commands.ResolveSession.
type StubResolveSessionCommand struct {
	Session     *entities.Session
	Credentials []string
}

var _ commands.ResolveSession = (*StubResolveSessionCommand)(nil)

func (s *StubResolveSessionCommand) Execute(_ context.Context, credential string) *entities.Session {
	s.Credentials = append(s.Credentials, credential)
	return s.Session
}
