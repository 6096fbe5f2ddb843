package main

import (
	"fmt"

	"skill-gap/internal/config"
	"skill-gap/internal/database/migration"
	dbpostgres "skill-gap/internal/database/postgres"
	"skill-gap/internal/database/seeder"
	"skill-gap/internal/dataset"
	"skill-gap/internal/logger"
	"skill-gap/internal/pkg/styles"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Long:  "Applies the embedded SQL migrations to the configured Postgres database. With --seed-dataset a synthetic dataset is generated and stored afterwards.",
	RunE:  runMigrate,
}

var (
	migrateSeedDataset bool
	migrateSeed        int64
	migrateJobs        int
)

func init() {
	migrateCmd.Flags().BoolVar(&migrateSeedDataset, "seed-dataset", false, "Store one synthetic dataset after migrating")
	migrateCmd.Flags().Int64Var(&migrateSeed, "seed", 1, "Random seed for --seed-dataset")
	migrateCmd.Flags().IntVar(&migrateJobs, "jobs", 0, "Number of job postings for --seed-dataset (default from TRACKER_JOBS)")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := initLogger(cfg)
	if !cfg.Database.Enabled() {
		return fmt.Errorf("migrate needs a database: set DB_HOST")
	}

	ctx := cmd.Context()
	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	applied, err := migration.Runner{Logger: logger.Component("migration")}.Run(ctx, db.SQLDB())
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	styles.Fprintln(cmd.OutOrStdout(), styles.Success, "Applied %d migration(s)", applied)

	if !migrateSeedDataset {
		return nil
	}

	opts := dataset.DefaultOptions()
	if migrateJobs > 0 {
		opts.Jobs = migrateJobs
	} else if cfg.Tracker.Jobs > 0 {
		opts.Jobs = cfg.Tracker.Jobs
	}

	var stored uuid.UUID
	runner := seeder.Runner{
		Seeders: []seeder.Seeder{seeder.DatasetSeeder{Seed: migrateSeed, Label: "seed", Options: opts, Stored: &stored}},
		Logger:  logger.Component("seeder"),
	}
	if err := runner.Run(ctx, db); err != nil {
		return err
	}
	log.Info().Str("dataset_id", stored.String()).Msg("dataset seeded")
	styles.Fprintln(cmd.OutOrStdout(), styles.Success, "Seeded dataset %s", stored)
	return nil
}
