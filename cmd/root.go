/*
Copyright © 2026 The lexdb Authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gnames/gn"
	"github.com/lexlib/lexdb/internal/iofs"
	"github.com/lexlib/lexdb/internal/iologger"
	app "github.com/lexlib/lexdb/pkg"
	"github.com/lexlib/lexdb/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the root command with all subcommands attached.
func getRootCmd() *cobra.Command {
	var showConfig bool

	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "lexdb",
		Short:   "LexDB manages the legal library database",
		Long: `LexDB loads court judgments and judicial principles into PostgreSQL,
keeps stored texts clean and maintains a SQLite full-text search index.

Commands:
  - create:     create database schema
  - import:     import judgments from a CSV file
  - principles: replace principles with JSON fixtures
  - purge:      delete invalid judgments
  - normalize:  clean stored judgment texts
  - reindex:    rebuild the full-text search index
  - search:     query the full-text search index

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (LEXDB_*, DATABASE_URL)
  3. Config file (~/.config/lexdb/config.yaml)
  4. Built-in defaults`,
		PersistentPreRunE: bootstrap,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if showConfig {
				return printConfig(cmd)
			}
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Remove the automatic "lexdb version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V
	rootCmd.Flags().BoolP("version", "V", false, "version for lexdb")
	rootCmd.Flags().BoolVar(&showConfig, "show-config", false,
		"print effective configuration as YAML")

	rootCmd.AddCommand(
		getCreateCmd(),
		getImportCmd(),
		getPrinciplesCmd(),
		getPurgeCmd(),
		getNormalizeCmd(),
		getReindexCmd(),
		getSearchCmd(),
	)

	return rootCmd
}

func bootstrap(_ *cobra.Command, _ []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.New().Log
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	if err = reconfigureLogging(cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir))

	return nil
}

// reconfigureLogging reinitializes the logger with the loaded
// configuration, appending to the log file opened by bootstrap.
func reconfigureLogging(cfg *config.Config) error {
	logDir := config.LogDir(cfg.HomeDir)
	return iologger.Init(logDir, cfg.Log, true)
}

// printConfig writes the effective configuration. The password is
// masked.
func printConfig(cmd *cobra.Command) error {
	show := *cfg
	if show.Database.Password != "" {
		show.Database.Password = "*****"
	}
	if show.Database.URL != "" {
		show.Database.URL = maskURL(show.Database.URL)
	}
	show.FTS.Path = cfg.FTSPath()

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(show); err != nil {
		return err
	}
	return enc.Close()
}

// maskURL hides the password of a connection URL.
func maskURL(s string) string {
	scheme, rest, ok := strings.Cut(s, "://")
	if !ok {
		return s
	}
	userInfo, host, ok := strings.Cut(rest, "@")
	if !ok {
		return s
	}
	user, _, hasPass := strings.Cut(userInfo, ":")
	if !hasPass {
		return s
	}
	return scheme + "://" + user + ":*****@" + host
}

// Execute runs the root command. SIGINT and SIGTERM cancel the context
// of a running command. Any error exits with status 1.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)

	err := getRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		if errors.Is(err, context.Canceled) {
			slog.Warn("Interrupted")
		}
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	// the conventional variable is a fallback of LEXDB_DATABASE_URL
	if res.Database.URL == "" {
		res.Database.URL = os.Getenv("DATABASE_URL")
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix("LEXDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Database configuration
	_ = v.BindEnv("database.url", "LEXDB_DATABASE_URL")
	_ = v.BindEnv("database.host", "LEXDB_DATABASE_HOST")
	_ = v.BindEnv("database.port", "LEXDB_DATABASE_PORT")
	_ = v.BindEnv("database.user", "LEXDB_DATABASE_USER")
	_ = v.BindEnv("database.password", "LEXDB_DATABASE_PASSWORD")
	_ = v.BindEnv("database.database", "LEXDB_DATABASE_DATABASE")
	_ = v.BindEnv("database.ssl_mode", "LEXDB_DATABASE_SSL_MODE")

	// Import configuration
	_ = v.BindEnv("import.batch_size", "LEXDB_IMPORT_BATCH_SIZE")
	_ = v.BindEnv("import.skip_failed_batches", "LEXDB_IMPORT_SKIP_FAILED_BATCHES")
	_ = v.BindEnv("import.extract_fields", "LEXDB_IMPORT_EXTRACT_FIELDS")

	// Search index
	_ = v.BindEnv("fts.path", "LEXDB_FTS_PATH")

	// Log configuration
	_ = v.BindEnv("log.level", "LEXDB_LOG_LEVEL")
	_ = v.BindEnv("log.format", "LEXDB_LOG_FORMAT")
	_ = v.BindEnv("log.destination", "LEXDB_LOG_DESTINATION")

	v.AutomaticEnv()
}
