package usecase

import (
	"context"
	"errors"
	"testing"

	"skill-gap/internal/dataset"
	"skill-gap/internal/domain/skill"
	"skill-gap/internal/repository"

	"github.com/google/uuid"
)

func seededDatasets(t *testing.T) (*Datasets, uuid.UUID) {
	t.Helper()
	repo := repository.NewMemoryDatasetRepository()
	rows := []skill.Requirement{
		{Job: "Data Analyst #1", Skill: "Python", RequiredLevel: 8},
		{Job: "Data Analyst #1", Skill: "SQL", RequiredLevel: 7},
		{Job: "Cloud Engineer #2", Skill: "Docker", RequiredLevel: 6},
	}
	meta, err := repo.Save(context.Background(), 7, "test", dataset.New(rows))
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return NewDatasetUsecase(repo), meta.ID
}

func TestDatasets_ListJobs_Paging(t *testing.T) {
	uc, id := seededDatasets(t)

	page, err := uc.ListJobs(context.Background(), id, 1, 1)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if page.Total != 2 || len(page.Jobs) != 1 || page.Jobs[0] != "Cloud Engineer #2" {
		t.Fatalf("unexpected page: %+v", page)
	}

	page, err = uc.ListJobs(context.Background(), id, 10, 5)
	if err != nil || len(page.Jobs) != 0 {
		t.Fatalf("expected empty page, got %+v (err=%v)", page, err)
	}

	if _, err := uc.ListJobs(context.Background(), id, -1, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDatasets_Gap_Scenario(t *testing.T) {
	uc, id := seededDatasets(t)

	rep, err := uc.Gap(context.Background(), id, "Data Analyst #1", skill.Profile{"Python": 5, "SQL": 7, "Docker": 1})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(rep.Records) != 2 || rep.Records[0].GapPositive != 3 || rep.Records[1].GapPositive != 0 {
		t.Fatalf("unexpected records: %+v", rep.Records)
	}
	if rep.CompletionText != "80.00%" {
		t.Fatalf("expected 80.00%%, got %s", rep.CompletionText)
	}
}

func TestDatasets_Gap_Errors(t *testing.T) {
	uc, id := seededDatasets(t)
	ctx := context.Background()

	_, err := uc.Gap(ctx, id, "Data Analyst #1", skill.Profile{"Python": 5})
	var missing *MissingSkillsError
	if !errors.As(err, &missing) || len(missing.Skills) != 1 || missing.Skills[0] != "SQL" {
		t.Fatalf("expected missing SQL, got %v", err)
	}
	if !errors.Is(err, ErrUnmappedSkill) {
		t.Fatalf("expected ErrUnmappedSkill")
	}

	if _, err := uc.Gap(ctx, id, "Nope #9", skill.Profile{}); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
	if _, err := uc.Gap(ctx, uuid.New(), "Data Analyst #1", skill.Profile{}); !errors.Is(err, ErrDatasetNotFound) {
		t.Fatalf("expected ErrDatasetNotFound, got %v", err)
	}
	if _, err := uc.Gap(ctx, id, "Data Analyst #1", skill.Profile{"Python": 12, "SQL": 1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
