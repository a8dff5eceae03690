package config

import "time"

// Default values and limits for the license search service
const (
	DefaultAddr        = ":8080"
	DefaultRoot        = "."
	DefaultMaxFileSize = 1 * 1024 * 1024 // 1MB - largest license text that will be read

	// HTTP server timeouts
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultShutdownTimeout = 5 * time.Second

	// Containerized reads
	DefaultIOImage   = "busybox:latest"
	DefaultIOTimeout = 30 * time.Second
	DefaultIOMemory  = "64m"
	DefaultIOCPUs    = 1

	// Search form input limits, as rendered on the page
	QueryInputSize      = 30
	QueryInputMaxLength = 30

	DefaultHistoryLimit = 20

	DefaultConfigName = "license-search.config"
	EnvPrefix         = "LICENSE_SEARCH"
)
