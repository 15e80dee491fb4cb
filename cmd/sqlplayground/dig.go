package main

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/sqlplayground/internal"
	"github.com/rios0rios0/sqlplayground/internal/domain/entities"
)

func injectAppContext(settings *entities.Settings) (*internal.AppInternal, error) {
	container := dig.New()

	if err := container.Provide(func() *entities.Settings { return settings }); err != nil {
		return nil, err
	}

	// Register all providers
	if err := internal.RegisterProviders(container); err != nil {
		return nil, err
	}

	// Invoke to get AppInternal
	var appInternal *internal.AppInternal
	if err := container.Invoke(func(ai *internal.AppInternal) {
		appInternal = ai
	}); err != nil {
		return nil, err
	}

	return appInternal, nil
}
