package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/computerscienceiscool/license-search/internal/infrastructure"
	"github.com/computerscienceiscool/license-search/pkg/config"
	"github.com/computerscienceiscool/license-search/pkg/license"
	"github.com/computerscienceiscool/license-search/pkg/sandbox"
	"github.com/computerscienceiscool/license-search/pkg/search"
	"github.com/computerscienceiscool/license-search/pkg/web"
)

// App represents the main application
type App struct {
	config    *config.Config
	logger    *zap.Logger
	handler   *search.Handler
	audit     *sandbox.AuditLogger
	searchLog infrastructure.SearchLog
}

// Serve runs the HTTP server until ctx is cancelled.
func (a *App) Serve(ctx context.Context) error {
	srv := web.NewServer(web.Options{
		Handler:         a.handler,
		Logger:          a.logger,
		Audit:           a.audit,
		SearchLog:       a.searchLog,
		ReadTimeout:     a.config.ReadTimeout,
		WriteTimeout:    a.config.WriteTimeout,
		ShutdownTimeout: a.config.ShutdownTimeout,
	})
	return srv.ListenAndServe(ctx, a.config.Addr)
}

// Search runs a single search outside of HTTP.
func (a *App) Search(query string) (search.Result, error) {
	return a.handler.Handle(query)
}

// Catalog returns the configured licenses.
func (a *App) Catalog() *license.Catalog {
	return a.handler.Catalog()
}

// History returns the most recent searches from the search log database.
func (a *App) History(limit int) ([]infrastructure.SearchEvent, error) {
	if a.searchLog == nil {
		return nil, fmt.Errorf("search history is disabled: set audit.db_path")
	}
	return a.searchLog.Recent(limit)
}

// Config returns the resolved configuration.
func (a *App) Config() *config.Config {
	return a.config
}

// Close releases the audit sinks.
func (a *App) Close() error {
	var firstErr error
	if a.audit != nil {
		if err := a.audit.Close(); err != nil {
			firstErr = err
		}
	}
	if a.searchLog != nil {
		if err := a.searchLog.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
