package usecase

import (
	"context"
	"errors"
	"fmt"

	"skill-gap/internal/dataset"
	"skill-gap/internal/domain/gap"
	"skill-gap/internal/domain/skill"
	"skill-gap/internal/repository"

	"github.com/google/uuid"
)

type JobPage struct {
	Jobs   []string
	Total  int
	Limit  int
	Offset int
}

type GapReport struct {
	DatasetID      uuid.UUID
	Job            string
	Records        []gap.Record
	Summary        gap.Summary
	Completion     float64
	HasCompletion  bool
	CompletionText string
}

// MissingSkillsError carries the skills a gap request left unrated.
type MissingSkillsError struct {
	Skills []string
}

func (e *MissingSkillsError) Error() string {
	return fmt.Sprintf("%s: %v", ErrUnmappedSkill.Error(), e.Skills)
}

func (e *MissingSkillsError) Unwrap() error { return ErrUnmappedSkill }

type DatasetUsecase interface {
	List(ctx context.Context, limit int) ([]repository.DatasetMeta, error)
	ListJobs(ctx context.Context, id uuid.UUID, limit, offset int) (JobPage, error)
	Gap(ctx context.Context, id uuid.UUID, job string, profile skill.Profile) (GapReport, error)
}

type Datasets struct {
	repo repository.DatasetRepository
}

func NewDatasetUsecase(repo repository.DatasetRepository) *Datasets {
	return &Datasets{repo: repo}
}

func (u *Datasets) List(ctx context.Context, limit int) ([]repository.DatasetMeta, error) {
	if limit < 0 || limit > 100 {
		return nil, ErrInvalidInput
	}
	items, err := u.repo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	return items, nil
}

func (u *Datasets) ListJobs(ctx context.Context, id uuid.UUID, limit, offset int) (JobPage, error) {
	if limit == 0 {
		limit = 50
	}
	if limit < 0 || limit > 1000 || offset < 0 {
		return JobPage{}, ErrInvalidInput
	}

	ds, err := u.load(ctx, id)
	if err != nil {
		return JobPage{}, err
	}

	jobs := ds.Jobs()
	page := JobPage{Total: len(jobs), Limit: limit, Offset: offset, Jobs: []string{}}
	if offset >= len(jobs) {
		return page, nil
	}
	end := offset + limit
	if end > len(jobs) {
		end = len(jobs)
	}
	page.Jobs = jobs[offset:end]
	return page, nil
}

func (u *Datasets) Gap(ctx context.Context, id uuid.UUID, job string, profile skill.Profile) (GapReport, error) {
	if job == "" {
		return GapReport{}, ErrInvalidInput
	}
	for s, lvl := range profile {
		if lvl < skill.DashboardMinUserLevel || lvl > skill.MaxLevel {
			return GapReport{}, fmt.Errorf("%w: %s=%d", ErrInvalidInput, s, lvl)
		}
	}

	ds, err := u.load(ctx, id)
	if err != nil {
		return GapReport{}, err
	}
	reqs := ds.Requirements(job)
	if len(reqs) == 0 {
		return GapReport{}, ErrJobNotFound
	}

	records, err := gap.Calculate(reqs, profile)
	if err != nil {
		var unmapped *gap.UnmappedSkillError
		if errors.As(err, &unmapped) {
			return GapReport{}, &MissingSkillsError{Skills: unmapped.Skills}
		}
		return GapReport{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	pct, cerr := gap.Completion(records)
	return GapReport{
		DatasetID:      id,
		Job:            job,
		Records:        records,
		Summary:        gap.Summarize(records),
		Completion:     pct,
		HasCompletion:  cerr == nil,
		CompletionText: gap.FormatCompletion(pct, cerr),
	}, nil
}

func (u *Datasets) load(ctx context.Context, id uuid.UUID) (*dataset.Dataset, error) {
	if id == uuid.Nil {
		return nil, ErrDatasetNotFound
	}
	ds, err := u.repo.Load(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrDatasetNotFound) {
			return nil, ErrDatasetNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	return ds, nil
}
