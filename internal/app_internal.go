package internal

import (
	"context"
	"errors"
	"net/http"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/sqlplayground/internal/domain/commands"
	"github.com/rios0rios0/sqlplayground/internal/domain/entities"
	"github.com/rios0rios0/sqlplayground/internal/infrastructure/controllers"
	"github.com/rios0rios0/sqlplayground/internal/infrastructure/repositories/sqlite"
	"github.com/rios0rios0/sqlplayground/internal/infrastructure/server"
)

// AppInternal is the assembled application: its routes and the resources they share.
type AppInternal struct {
	controllers []entities.Controller
	middleware  *controllers.SessionMiddleware
	purge       commands.PurgeSessions
	settings    *entities.Settings
	store       *sqlite.Store
}

// NewAppInternal creates the application from its wired parts.
func NewAppInternal(
	controllerList *[]entities.Controller,
	middleware *controllers.SessionMiddleware,
	purge commands.PurgeSessions,
	settings *entities.Settings,
	store *sqlite.Store,
) *AppInternal {
	return &AppInternal{
		controllers: *controllerList,
		middleware:  middleware,
		purge:       purge,
		settings:    settings,
		store:       store,
	}
}

// GetControllers returns every mounted controller.
func (it *AppInternal) GetControllers() []entities.Controller {
	return it.controllers
}

// Handler returns the HTTP handler serving every controller.
func (it *AppInternal) Handler() http.Handler {
	return controllers.NewRouter(it.controllers, it.middleware)
}

// Serve runs the HTTP API until ctx ends, then releases the store.
func (it *AppInternal) Serve(ctx context.Context) error {
	sweepCtx, stopSweep := context.WithCancel(ctx)
	swept := make(chan struct{})
	go func() {
		defer close(swept)
		it.SweepSessions(sweepCtx, it.settings.Session.PurgeInterval)
	}()

	serveErr := server.NewServer(it.settings.Server, it.Handler()).ListenAndServe(ctx)
	stopSweep()
	<-swept
	return errors.Join(serveErr, it.store.Close())
}

// SweepSessions purges expired sessions every interval until ctx ends.
// A non-positive interval disables the sweep.
func (it *AppInternal) SweepSessions(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := it.purge.Execute(ctx); err != nil && ctx.Err() == nil {
				logger.Errorf("Session sweep failed: %v", err)
			}
		}
	}
}
