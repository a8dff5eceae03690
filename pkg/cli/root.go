package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/computerscienceiscool/license-search/pkg/app"
	"github.com/computerscienceiscool/license-search/pkg/config"
)

// state is shared by the commands of one invocation.
type state struct {
	v          *viper.Viper
	configFile string
	logger     *zap.Logger
}

func newRootCmd() *cobra.Command {
	rt := &state{v: viper.New()}
	config.SetViperDefaults(rt.v)

	rootCmd := &cobra.Command{
		Use:   "license-search",
		Short: "Search open source license texts",
		Long: `license-search scans a fixed, ordered list of license texts for a literal
substring and shows the first license that contains it, with the match
highlighted. Run "license-search serve" to start the web page.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.initConfig(); err != nil {
				return err
			}

			logger, err := newLogger(rt.v.GetString("logging.level"), rt.v.GetString("logging.format"), rt.v.GetBool("verbose"))
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			rt.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if rt.logger != nil {
				_ = rt.logger.Sync()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rt.configFile, "config", "", "Config file (default: ./license-search.config.yaml or $HOME/license-search.config.yaml)")
	flags.String("root", config.DefaultRoot, "Directory containing the license texts")
	flags.Int64("max-size", config.DefaultMaxFileSize, "Maximum license file size in bytes")
	flags.Bool("verbose", false, "Verbose (debug) logging")
	flags.String("log-level", "info", "Log level: debug, info, warn, error")
	flags.String("log-format", "json", "Log format: json or console")
	flags.String("audit-log", "", "Append one line per search to this file")
	flags.String("audit-db", "", "Record searches in this SQLite database")
	flags.Bool("io-containerized", false, "Read license texts inside a Docker container")
	flags.String("io-image", config.DefaultIOImage, "Docker image for containerized reads")

	bindFlags(rt.v, flags, map[string]string{
		"root":             "root",
		"max_file_size":    "max-size",
		"verbose":          "verbose",
		"logging.level":    "log-level",
		"logging.format":   "log-format",
		"audit.log_path":   "audit-log",
		"audit.db_path":    "audit-db",
		"io.containerized": "io-containerized",
		"io.image":         "io-image",
	})

	rootCmd.AddCommand(
		newServeCmd(rt),
		newSearchCmd(rt),
		newListCmd(rt),
		newHistoryCmd(rt),
		newConfigCmd(rt),
	)
	return rootCmd
}

// Execute runs the root command
func Execute() error {
	return newRootCmd().Execute()
}

// bindFlags binds config keys to flag names.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		// only fails for an unknown flag name
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

// initConfig reads in config file and ENV variables if set
func (rt *state) initConfig() error {
	rt.v.SetEnvPrefix(config.EnvPrefix)
	rt.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	rt.v.AutomaticEnv()

	if rt.configFile != "" {
		rt.v.SetConfigFile(rt.configFile)
		if err := rt.v.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file: %w", err)
		}
		return nil
	}

	rt.v.SetConfigName(config.DefaultConfigName)
	rt.v.SetConfigType("yaml")
	rt.v.AddConfigPath(".")
	rt.v.AddConfigPath("$HOME")
	if err := rt.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using defaults and flags
	}
	return nil
}

// bootstrap builds the App from the resolved configuration.
func (rt *state) bootstrap() (*app.App, error) {
	cfg, err := config.FromViper(rt.v)
	if err != nil {
		return nil, fmt.Errorf("failed to build config: %w", err)
	}

	a, err := app.Bootstrap(cfg, rt.logger)
	if err != nil {
		return nil, fmt.Errorf("bootstrap failed: %w", err)
	}
	return a, nil
}
