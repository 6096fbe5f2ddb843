package seeder

import (
	"context"
	"fmt"
	"math/rand"

	"skill-gap/internal/database"
	"skill-gap/internal/dataset"
	"skill-gap/internal/repository"

	"github.com/google/uuid"
)

// DatasetSeeder generates a synthetic requirement table from Seed and stores it.
// The stored id is written to Stored once Run succeeds.
type DatasetSeeder struct {
	Seed    int64
	Label   string
	Options dataset.Options

	Stored *uuid.UUID
}

func (DatasetSeeder) Name() string { return "datasets" }

func (s DatasetSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "datasets", "id", "seed", "label", "job_count", "row_count", "created_at"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "dataset_requirements", "dataset_id", "position", "job", "skill", "required_level"); err != nil {
		return err
	}

	opts := s.Options
	if opts.Jobs == 0 {
		opts = dataset.DefaultOptions()
	}
	ds, err := dataset.Generate(rand.New(rand.NewSource(s.Seed)), opts)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	meta, err := repository.NewPostgresDatasetRepository(db).Save(ctx, s.Seed, s.Label, ds)
	if err != nil {
		return err
	}
	if s.Stored != nil {
		*s.Stored = meta.ID
	}
	return nil
}
