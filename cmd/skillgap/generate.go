package main

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"skill-gap/internal/config"
	"skill-gap/internal/database/migration"
	dbpostgres "skill-gap/internal/database/postgres"
	"skill-gap/internal/logger"
	"skill-gap/internal/pkg/styles"
	"skill-gap/internal/repository"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic dataset and print its statistics",
	Long:  "Generates the synthetic job-skill table, prints summary statistics and optionally stores it in Postgres for later replay with 'track --dataset'.",
	RunE:  runGenerate,
}

var (
	generateSeed  int64
	generateJobs  int
	generateStore bool
	generateLabel string
)

func init() {
	generateCmd.Flags().Int64Var(&generateSeed, "seed", 0, "Random seed (0 = time based)")
	generateCmd.Flags().IntVar(&generateJobs, "jobs", 0, "Number of job postings (default from TRACKER_JOBS)")
	generateCmd.Flags().BoolVar(&generateStore, "store", false, "Persist the dataset to Postgres")
	generateCmd.Flags().StringVar(&generateLabel, "label", "", "Label stored with the dataset")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := initLogger(cfg)

	seed := generateSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	jobs := generateJobs
	if jobs == 0 {
		jobs = cfg.Tracker.Jobs
	}

	ds, err := generate(seed, jobs)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	st := ds.Stats()
	styles.Fprintln(out, styles.Heading, "Synthetic dataset (seed %d)", seed)
	styles.Fprintln(out, styles.Info, "Jobs: %d  Rows: %d  Distinct skills: %d", st.Jobs, st.Rows, st.Skills)
	styles.Fprintln(out, styles.Info, "Avg skills per job: %.2f  Avg required level: %.2f", st.AvgPerJob, st.AvgRequired)

	skills := make([]string, 0, len(st.SkillDemand))
	for s := range st.SkillDemand {
		skills = append(skills, s)
	}
	sort.Slice(skills, func(i, j int) bool {
		if st.SkillDemand[skills[i]] != st.SkillDemand[skills[j]] {
			return st.SkillDemand[skills[i]] > st.SkillDemand[skills[j]]
		}
		return skills[i] < skills[j]
	})
	rows := make([][]string, 0, len(skills))
	for _, s := range skills {
		rows = append(rows, []string{s, strconv.Itoa(st.SkillDemand[s])})
	}
	//nolint:errcheck // console output
	fmt.Fprintln(out, styles.Table([]string{"Skill", "Jobs requiring it"}, rows))

	if !generateStore {
		return nil
	}
	if !cfg.Database.Enabled() {
		return fmt.Errorf("--store needs a database: set DB_HOST")
	}

	ctx := cmd.Context()
	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if _, err := (migration.Runner{Logger: logger.Component("migration")}).Run(ctx, db.SQLDB()); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	meta, err := repository.NewPostgresDatasetRepository(db).Save(ctx, seed, generateLabel, ds)
	if err != nil {
		return err
	}
	log.Info().Str("dataset_id", meta.ID.String()).Int("rows", meta.RowCount).Msg("dataset stored")
	styles.Fprintln(out, styles.Success, "Stored dataset %s", meta.ID)
	return nil
}
