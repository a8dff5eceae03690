package app

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/computerscienceiscool/license-search/internal/infrastructure"
	"github.com/computerscienceiscool/license-search/pkg/config"
	"github.com/computerscienceiscool/license-search/pkg/sandbox"
	"github.com/computerscienceiscool/license-search/pkg/search"
)

// Bootstrap initializes and returns a configured App
func Bootstrap(cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	absRoot, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve license root: %w", err)
	}
	cfg.Root = absRoot

	info, err := os.Stat(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("license root does not exist: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("license root is not a directory: %s", cfg.Root)
	}

	catalog, err := cfg.Catalog()
	if err != nil {
		return nil, err
	}

	reader, err := newReader(cfg)
	if err != nil {
		return nil, err
	}

	a := &App{
		config:  cfg,
		logger:  logger,
		handler: search.NewHandler(catalog, reader),
	}

	if cfg.AuditLogPath != "" {
		audit, err := sandbox.NewAuditLogger(cfg.AuditLogPath)
		if err != nil {
			return nil, err
		}
		a.audit = audit
	}

	if cfg.AuditDBPath != "" {
		searchLog, err := infrastructure.OpenSearchLog(cfg.AuditDBPath)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.searchLog = searchLog
	}

	logger.Debug("bootstrapped",
		zap.String("root", cfg.Root),
		zap.Int("licenses", catalog.Len()),
		zap.Bool("containerized", cfg.IOContainerized),
		zap.Bool("audit_log", a.audit != nil),
		zap.Bool("search_log", a.searchLog != nil),
	)
	return a, nil
}

func newReader(cfg *config.Config) (sandbox.FileReader, error) {
	if !cfg.IOContainerized {
		return sandbox.NewHostReader(cfg.Root, cfg.MaxFileSize), nil
	}

	if err := sandbox.ValidateIOContainer(cfg.Root, cfg.IOImage); err != nil {
		return nil, fmt.Errorf("containerized reads unavailable: %w", err)
	}
	return &sandbox.ContainerReader{
		Root:        cfg.Root,
		Image:       cfg.IOImage,
		Timeout:     cfg.IOTimeout,
		MemoryLimit: cfg.IOMemoryLimit,
		CPULimit:    cfg.IOCPULimit,
		MaxFileSize: cfg.MaxFileSize,
	}, nil
}
