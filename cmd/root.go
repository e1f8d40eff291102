package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"blog-api/config"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var rootCmd = &cobra.Command{
	Use:   "blog-api",
	Short: "Blog backend: accounts, posts and comments over HTTP",
	Long: `blog-api serves the blog's JSON API.

Commands:
  serve         - Migrate the database and start the HTTP server
  migrate       - Create or update tables and indexes
  create-admin  - Create an administrator or promote an existing account`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.IsDevelopment() {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

// bootstrap loads the configuration, installs the logger and opens the
// database. Every subcommand starts here.
func bootstrap() (*config.Config, *slog.Logger, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	log := newLogger(cfg)
	slog.SetDefault(log)

	gormLevel := logger.Warn
	if cfg.SlogLevel() == slog.LevelDebug {
		gormLevel = logger.Info
	}
	db, err := config.InitDB(cfg.Database, gormLevel)
	if err != nil {
		return nil, nil, nil, err
	}

	return cfg, log, db, nil
}

func closeDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		slog.Warn("closing database", "error", err)
	}
}
