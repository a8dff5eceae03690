package config

import (
	"github.com/computerscienceiscool/license-search/pkg/license"
	"github.com/spf13/viper"
)

// SetViperDefaults installs every default configuration value on v.
func SetViperDefaults(v *viper.Viper) {
	v.SetDefault("root", DefaultRoot)
	v.SetDefault("addr", DefaultAddr)
	v.SetDefault("max_file_size", DefaultMaxFileSize)

	// Audit defaults; empty paths disable the sink
	v.SetDefault("audit.log_path", "")
	v.SetDefault("audit.db_path", "")

	// Containerized I/O defaults
	v.SetDefault("io.containerized", false)
	v.SetDefault("io.image", DefaultIOImage)
	v.SetDefault("io.timeout", DefaultIOTimeout)
	v.SetDefault("io.memory", DefaultIOMemory)
	v.SetDefault("io.cpu", DefaultIOCPUs)

	// Server defaults
	v.SetDefault("server.read_timeout", DefaultReadTimeout)
	v.SetDefault("server.write_timeout", DefaultWriteTimeout)
	v.SetDefault("server.shutdown_timeout", DefaultShutdownTimeout)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// FileConfig is the on-disk YAML layout written by `config init`.
type FileConfig struct {
	Root        string          `yaml:"root"`
	Addr        string          `yaml:"addr"`
	MaxFileSize int64           `yaml:"max_file_size"`
	Licenses    []license.Entry `yaml:"licenses"`

	Audit struct {
		LogPath string `yaml:"log_path"`
		DBPath  string `yaml:"db_path"`
	} `yaml:"audit"`

	IO struct {
		Containerized bool   `yaml:"containerized"`
		Image         string `yaml:"image"`
		Timeout       string `yaml:"timeout"`
		Memory        string `yaml:"memory"`
		CPU           int    `yaml:"cpu"`
	} `yaml:"io"`

	Server struct {
		ReadTimeout     string `yaml:"read_timeout"`
		WriteTimeout    string `yaml:"write_timeout"`
		ShutdownTimeout string `yaml:"shutdown_timeout"`
	} `yaml:"server"`

	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
}

// DefaultFileConfig returns the defaults in their file form.
func DefaultFileConfig() *FileConfig {
	fc := &FileConfig{
		Root:        DefaultRoot,
		Addr:        DefaultAddr,
		MaxFileSize: DefaultMaxFileSize,
		Licenses:    license.DefaultEntries(),
	}

	fc.Audit.LogPath = ""
	fc.Audit.DBPath = ""

	fc.IO.Containerized = false
	fc.IO.Image = DefaultIOImage
	fc.IO.Timeout = DefaultIOTimeout.String()
	fc.IO.Memory = DefaultIOMemory
	fc.IO.CPU = DefaultIOCPUs

	fc.Server.ReadTimeout = DefaultReadTimeout.String()
	fc.Server.WriteTimeout = DefaultWriteTimeout.String()
	fc.Server.ShutdownTimeout = DefaultShutdownTimeout.String()

	fc.Logging.Level = "info"
	fc.Logging.Format = "json"
	return fc
}
