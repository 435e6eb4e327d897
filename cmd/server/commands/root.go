// Package commands defines the command-line interface of the server binary.
//
// COMMANDS:
//
//	server            same as "server serve"
//	server serve      run the HTTP API
//	server seed       reset the database and load a dataset
//
// Settings come from the environment (and .env) first. Flags given on the
// command line override them.
package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sakif/nc-news/internal/config"
)

var (
	// Global flags
	port        int
	dbDriver    string
	dbPath      string
	databaseURL string
	logLevel    string
)

// rootCmd represents the base command. Running it without a subcommand
// starts the server.
var rootCmd = &cobra.Command{
	Use:   "server",
	Short: "NC News - a REST API for topics, articles, comments and users",
	Long: `NC News serves a news-style REST API backed by SQLite or PostgreSQL.

Environment:
  PORT           listen port (default 8080)
  DB_DRIVER      sqlite or postgres (default sqlite)
  DB_PATH        SQLite file path (default data/ncnews.db)
  DATABASE_URL   PostgreSQL connection string
  LOG_LEVEL      debug, info, warn or error (default info)
  CORS_ORIGIN    allowed origin (default *)`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&port, "port", "p", config.DefaultPort, "HTTP listen port")
	rootCmd.PersistentFlags().StringVar(&dbDriver, "driver", config.DefaultDBDriver, "Database driver (sqlite or postgres)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db-path", config.DefaultDBPath, "SQLite database file")
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
}

// loadConfig reads the environment and applies any flags the user set
// explicitly. Flags left at their defaults do not clobber env values.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	env := map[string]string{}
	flags := cmd.Flags()
	if flags.Changed("port") {
		env["PORT"] = fmt.Sprint(port)
	}
	if flags.Changed("driver") {
		env["DB_DRIVER"] = dbDriver
	}
	if flags.Changed("db-path") {
		env["DB_PATH"] = dbPath
	}
	if flags.Changed("database-url") {
		env["DATABASE_URL"] = databaseURL
	}
	if flags.Changed("log-level") {
		env["LOG_LEVEL"] = logLevel
	}

	if err := config.LoadDotEnv(); err != nil {
		return config.Config{}, err
	}
	return config.FromEnv(func(key string) string {
		if v, ok := env[key]; ok {
			return v
		}
		return os.Getenv(key)
	})
}

// newLogger builds the process logger. Text output at the configured level.
func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
}
