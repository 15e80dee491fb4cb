package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register command constructors
	constructors := []interface{}{
		NewGetProfileCommand,
		NewListRepositoriesCommand,
		NewCreateRepositoryCommand,
		NewCommitFileCommand,
		NewEstablishSessionCommand,
		NewResolveSessionCommand,
		NewEndSessionCommand,
		NewPurgeSessionsCommand,
		NewExecuteQueryCommand,
		NewValidateQueryCommand,
		NewGetHistoryCommand,
		NewGetSchemaCommand,
		NewSaveQueryToGitCommand,
	}
	for _, constructor := range constructors {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}

	// Bind interfaces to implementations
	bindings := []interface{}{
		func(impl *GetProfileCommand) GetProfile { return impl },
		func(impl *ListRepositoriesCommand) ListRepositories { return impl },
		func(impl *CreateRepositoryCommand) CreateRepository { return impl },
		func(impl *CommitFileCommand) CommitFile { return impl },
		func(impl *EstablishSessionCommand) EstablishSession { return impl },
		func(impl *ResolveSessionCommand) ResolveSession { return impl },
		func(impl *EndSessionCommand) EndSession { return impl },
		func(impl *PurgeSessionsCommand) PurgeSessions { return impl },
		func(impl *ExecuteQueryCommand) ExecuteQuery { return impl },
		func(impl *ValidateQueryCommand) ValidateQuery { return impl },
		func(impl *GetHistoryCommand) GetHistory { return impl },
		func(impl *GetSchemaCommand) GetSchema { return impl },
		func(impl *SaveQueryToGitCommand) SaveQueryToGit { return impl },
	}
	for _, binding := range bindings {
		if err := container.Provide(binding); err != nil {
			return err
		}
	}

	return nil
}
