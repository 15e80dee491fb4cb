package controllers

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/sqlplayground/internal/domain/entities"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	constructors := []interface{}{
		NewSessionMiddleware,
		NewHealthController,
		NewProfileController,
		NewStatusController,
		NewListRepositoriesController,
		NewCreateRepositoryController,
		NewCommitFileController,
		NewEstablishSessionController,
		NewEndSessionController,
		NewExecuteQueryController,
		NewValidateQueryController,
		NewHistoryController,
		NewSchemaController,
		NewSaveQueryToGitController,
		NewControllers,
	}
	for _, constructor := range constructors {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	healthController *HealthController,
	profileController *ProfileController,
	statusController *StatusController,
	listRepositoriesController *ListRepositoriesController,
	createRepositoryController *CreateRepositoryController,
	commitFileController *CommitFileController,
	establishSessionController *EstablishSessionController,
	endSessionController *EndSessionController,
	executeQueryController *ExecuteQueryController,
	validateQueryController *ValidateQueryController,
	historyController *HistoryController,
	schemaController *SchemaController,
	saveQueryToGitController *SaveQueryToGitController,
) *[]entities.Controller {
	return &[]entities.Controller{
		healthController,
		profileController,
		statusController,
		listRepositoriesController,
		createRepositoryController,
		commitFileController,
		establishSessionController,
		endSessionController,
		executeQueryController,
		validateQueryController,
		historyController,
		schemaController,
		saveQueryToGitController,
	}
}
