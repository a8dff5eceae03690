package config

import (
	"fmt"
	"time"

	"github.com/computerscienceiscool/license-search/pkg/license"
	"github.com/spf13/viper"
)

// Config holds the resolved runtime configuration.
type Config struct {
	Root        string
	Addr        string
	MaxFileSize int64
	Licenses    []license.Entry

	AuditLogPath string
	AuditDBPath  string

	IOContainerized bool
	IOImage         string
	IOTimeout       time.Duration
	IOMemoryLimit   string
	IOCPULimit      int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	LogLevel  string
	LogFormat string
	Verbose   bool
}

// FromViper builds a Config from v. Values come from flags, environment,
// the config file and the defaults installed by SetViperDefaults, in that
// order of precedence.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Root:            v.GetString("root"),
		Addr:            v.GetString("addr"),
		MaxFileSize:     v.GetInt64("max_file_size"),
		AuditLogPath:    v.GetString("audit.log_path"),
		AuditDBPath:     v.GetString("audit.db_path"),
		IOContainerized: v.GetBool("io.containerized"),
		IOImage:         v.GetString("io.image"),
		IOTimeout:       v.GetDuration("io.timeout"),
		IOMemoryLimit:   v.GetString("io.memory"),
		IOCPULimit:      v.GetInt("io.cpu"),
		ReadTimeout:     v.GetDuration("server.read_timeout"),
		WriteTimeout:    v.GetDuration("server.write_timeout"),
		ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		LogLevel:        v.GetString("logging.level"),
		LogFormat:       v.GetString("logging.format"),
		Verbose:         v.GetBool("verbose"),
	}

	if v.IsSet("licenses") {
		if err := v.UnmarshalKey("licenses", &cfg.Licenses); err != nil {
			return nil, fmt.Errorf("invalid licenses list: %w", err)
		}
	}
	if len(cfg.Licenses) == 0 {
		cfg.Licenses = license.DefaultEntries()
	}

	if cfg.IOTimeout <= 0 {
		return nil, fmt.Errorf("invalid io.timeout: %v", v.Get("io.timeout"))
	}

	return cfg, nil
}

// Catalog validates the configured licenses.
func (c *Config) Catalog() (*license.Catalog, error) {
	return license.NewCatalog(c.Licenses)
}
