//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/sqlplayground/internal/domain/commands"
	"github.com/rios0rios0/sqlplayground/internal/domain/entities"
)

// StubCommitFileCommand is a stub implementation of commands.CommitFile.
type StubCommitFileCommand struct {
	ExecuteCallCount int
	Response         entities.ProviderResponse
	LastSession      *entities.Session
	LastCommit       entities.FileCommit
}

var _ commands.CommitFile = (*StubCommitFileCommand)(nil)

func (s *StubCommitFileCommand) Execute(
	_ context.Context,
	session *entities.Session,
	commit entities.FileCommit,
) entities.ProviderResponse {
	s.ExecuteCallCount++
	s.LastSession = session
	s.LastCommit = commit
	return s.Response
}
