package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sakif/nc-news/internal/seed"
	"github.com/sakif/nc-news/internal/server"
)

var (
	// Seed flags
	dataset string
)

// seedCmd wipes the database and loads one of the bundled datasets.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Reset the database and load a dataset",
	Long: `Drop every table, recreate the schema and insert a dataset.

Examples:
  server seed                    # load the dev dataset
  server seed --dataset test     # load the dataset the tests use`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed(cmd)
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().StringVarP(&dataset, "dataset", "d", "dev",
		fmt.Sprintf("Dataset to load (%s)", strings.Join(seed.Names(), ", ")))
}

func runSeed(cmd *cobra.Command) error {
	data, err := seed.ByName(dataset)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.LogLevel)

	ctx := context.Background()
	db, err := server.OpenStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if err := db.Reset(ctx); err != nil {
		return err
	}
	if err := db.Seed(ctx, data); err != nil {
		return err
	}

	logger.Info("database seeded",
		slog.String("dataset", dataset),
		slog.String("driver", cfg.DBDriver),
		slog.Int("topics", len(data.Topics)),
		slog.Int("users", len(data.Users)),
		slog.Int("articles", len(data.Articles)),
		slog.Int("comments", len(data.Comments)),
	)
	return nil
}
