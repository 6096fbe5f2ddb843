package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skill-gap/internal/database"
	"skill-gap/internal/dataset"
	"skill-gap/internal/domain/skill"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrDatasetNotFound = errors.New("dataset not found")

type DatasetMeta struct {
	ID        uuid.UUID `json:"id"`
	Seed      int64     `json:"seed"`
	Label     string    `json:"label"`
	JobCount  int       `json:"job_count"`
	RowCount  int       `json:"row_count"`
	CreatedAt time.Time `json:"created_at"`
}

// DatasetRepository persists generated requirement tables so a run can be replayed later.
type DatasetRepository interface {
	Save(ctx context.Context, seed int64, label string, ds *dataset.Dataset) (DatasetMeta, error)
	List(ctx context.Context, limit int) ([]DatasetMeta, error)
	Load(ctx context.Context, id uuid.UUID) (*dataset.Dataset, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresDatasetRepository struct {
	db database.DB
}

func NewPostgresDatasetRepository(db database.DB) *PostgresDatasetRepository {
	return &PostgresDatasetRepository{db: db}
}

func (r *PostgresDatasetRepository) Save(ctx context.Context, seed int64, label string, ds *dataset.Dataset) (DatasetMeta, error) {
	if ds == nil || ds.Len() == 0 {
		return DatasetMeta{}, fmt.Errorf("save dataset: empty dataset")
	}

	meta := DatasetMeta{
		ID:        uuid.New(),
		Seed:      seed,
		Label:     label,
		JobCount:  len(ds.Jobs()),
		RowCount:  ds.Len(),
		CreatedAt: time.Now().UTC(),
	}

	err := database.InTx(ctx, r.db, func(tx database.Tx) error {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO datasets (id, seed, label, job_count, row_count, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
			meta.ID, meta.Seed, meta.Label, meta.JobCount, meta.RowCount, meta.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert dataset: %w", err)
		}

		for i, row := range ds.Rows() {
			if _, err := tx.Exec(
				ctx,
				`INSERT INTO dataset_requirements (dataset_id, position, job, skill, required_level) VALUES ($1, $2, $3, $4, $5)`,
				meta.ID, i, row.Job, row.Skill, row.RequiredLevel,
			); err != nil {
				return fmt.Errorf("insert requirement %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return DatasetMeta{}, err
	}
	return meta, nil
}

func (r *PostgresDatasetRepository) List(ctx context.Context, limit int) ([]DatasetMeta, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.Query(ctx, `
SELECT id, seed, label, job_count, row_count, created_at
FROM datasets
ORDER BY created_at DESC
LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]DatasetMeta, 0)
	for rows.Next() {
		var m DatasetMeta
		if err := rows.Scan(&m.ID, &m.Seed, &m.Label, &m.JobCount, &m.RowCount, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresDatasetRepository) Load(ctx context.Context, id uuid.UUID) (*dataset.Dataset, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM datasets WHERE id = $1)`, id).Scan(&exists); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDatasetNotFound
		}
		return nil, err
	}
	if !exists {
		return nil, ErrDatasetNotFound
	}

	rows, err := r.db.Query(ctx, `
SELECT job, skill, required_level
FROM dataset_requirements
WHERE dataset_id = $1
ORDER BY position ASC`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reqs := make([]skill.Requirement, 0)
	for rows.Next() {
		var req skill.Requirement
		var level int16
		if err := rows.Scan(&req.Job, &req.Skill, &level); err != nil {
			return nil, err
		}
		req.RequiredLevel = int(level)
		reqs = append(reqs, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return dataset.New(reqs), nil
}

func (r *PostgresDatasetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM datasets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrDatasetNotFound
	}
	return nil
}
