package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"skill-gap/internal/config"
	dbpostgres "skill-gap/internal/database/postgres"
	"skill-gap/internal/dataset"
	"skill-gap/internal/repository"
	"skill-gap/internal/tracker"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Run the interactive console tracker",
	Long:  "Generates a synthetic dataset (or loads a stored one), asks for your level in every skill, lets you pick a job and writes the gap charts to an HTML report.",
	RunE:  runTrack,
}

var (
	trackSeed        int64
	trackJobs        int
	trackMaxAttempts int
	trackDatasetID   string
	trackOutDir      string
)

func init() {
	trackCmd.Flags().Int64Var(&trackSeed, "seed", 0, "Random seed for the synthetic dataset (0 = time based)")
	trackCmd.Flags().IntVar(&trackJobs, "jobs", 0, "Number of job postings to generate (default from TRACKER_JOBS)")
	trackCmd.Flags().IntVar(&trackMaxAttempts, "max-attempts", -1, "Attempts per question before giving up, 0 = unbounded (default from TRACKER_MAX_ATTEMPTS)")
	trackCmd.Flags().StringVar(&trackDatasetID, "dataset", "", "Replay a dataset stored with 'generate --store' instead of generating")
	trackCmd.Flags().StringVarP(&trackOutDir, "out", "o", "", "Directory for the HTML report (default from TRACKER_OUTPUT_DIR)")
	rootCmd.AddCommand(trackCmd)
}

func runTrack(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := initLogger(cfg)

	opts := tracker.Options{MaxAttempts: cfg.Tracker.MaxAttempts, OutputDir: cfg.Tracker.OutputDir}
	if trackMaxAttempts >= 0 {
		opts.MaxAttempts = trackMaxAttempts
	}
	if trackOutDir != "" {
		opts.OutputDir = trackOutDir
	}

	var ds *dataset.Dataset
	if trackDatasetID != "" {
		ds, err = loadStoredDataset(cmd.Context(), cfg, trackDatasetID)
	} else {
		seed := trackSeed
		if seed == 0 {
			seed = cfg.Tracker.Seed
		}
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		jobs := trackJobs
		if jobs == 0 {
			jobs = cfg.Tracker.Jobs
		}
		log.Debug().Int64("seed", seed).Int("jobs", jobs).Msg("generating dataset")
		ds, err = generate(seed, jobs)
	}
	if err != nil {
		return err
	}

	_, err = tracker.Run(os.Stdin, cmd.OutOrStdout(), ds, opts)
	return err
}

func generate(seed int64, jobs int) (*dataset.Dataset, error) {
	opts := dataset.DefaultOptions()
	if jobs > 0 {
		opts.Jobs = jobs
	}
	return dataset.Generate(rand.New(rand.NewSource(seed)), opts)
}

func loadStoredDataset(ctx context.Context, cfg config.Config, rawID string) (*dataset.Dataset, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("invalid dataset id %q: %w", rawID, err)
	}
	if !cfg.Database.Enabled() {
		return nil, fmt.Errorf("--dataset needs a database: set DB_HOST")
	}

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	return repository.NewPostgresDatasetRepository(db).Load(ctx, id)
}
