package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skill-gap/internal/domain/gap"
	"skill-gap/internal/domain/skill"
	"skill-gap/internal/session"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DashboardView is everything one render of the dashboard needs.
type DashboardView struct {
	SessionID      uuid.UUID
	Version        int
	Job            string
	Skills         []string
	Levels         skill.Profile
	Records        []gap.Record
	Summary        gap.Summary
	Completion     float64
	HasCompletion  bool
	CompletionText string
}

type DashboardUsecase interface {
	Job() string
	Skills() []string
	Open(ctx context.Context, id uuid.UUID) (DashboardView, error)
	SetLevels(ctx context.Context, id uuid.UUID, updates ...session.Update) (DashboardView, error)
	Reset(ctx context.Context, id uuid.UUID) (DashboardView, error)
}

type Dashboard struct {
	store  session.Store
	job    string
	reqs   []skill.Requirement
	skills []string
	logger zerolog.Logger

	now func() time.Time
}

func NewDashboardUsecase(store session.Store, job string, reqs []skill.Requirement, logger zerolog.Logger) *Dashboard {
	skills := make([]string, 0, len(reqs))
	for _, r := range reqs {
		skills = append(skills, r.Skill)
	}
	return &Dashboard{
		store:  store,
		job:    job,
		reqs:   append([]skill.Requirement(nil), reqs...),
		skills: skills,
		logger: logger,
		now:    time.Now,
	}
}

func (u *Dashboard) Job() string { return u.job }

func (u *Dashboard) Skills() []string { return append([]string(nil), u.skills...) }

// Open loads the session, creating it with every level at 0 when it does not exist yet.
func (u *Dashboard) Open(ctx context.Context, id uuid.UUID) (DashboardView, error) {
	st, err := u.load(ctx, id)
	if err != nil {
		return DashboardView{}, err
	}
	return u.view(st), nil
}

func (u *Dashboard) SetLevels(ctx context.Context, id uuid.UUID, updates ...session.Update) (DashboardView, error) {
	st, err := u.load(ctx, id)
	if err != nil {
		return DashboardView{}, err
	}

	next, err := session.Apply(st, u.now(), updates...)
	if err != nil {
		if errors.Is(err, session.ErrUnknownSkill) || errors.Is(err, session.ErrInvalidLevel) {
			return DashboardView{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		return DashboardView{}, err
	}
	if next.Version != st.Version {
		if err := u.store.Save(ctx, next); err != nil {
			return DashboardView{}, fmt.Errorf("%w: save session: %w", ErrInternal, err)
		}
	}
	return u.view(next), nil
}

// Reset drops the stored session and starts a fresh one under the same id.
func (u *Dashboard) Reset(ctx context.Context, id uuid.UUID) (DashboardView, error) {
	if id == uuid.Nil {
		return DashboardView{}, ErrSessionNotFound
	}
	if err := u.store.Delete(ctx, id); err != nil {
		return DashboardView{}, fmt.Errorf("%w: delete session: %w", ErrInternal, err)
	}
	st := session.New(id, u.skills, u.now())
	if err := u.store.Save(ctx, st); err != nil {
		return DashboardView{}, fmt.Errorf("%w: save session: %w", ErrInternal, err)
	}
	return u.view(st), nil
}

func (u *Dashboard) load(ctx context.Context, id uuid.UUID) (session.State, error) {
	if id == uuid.Nil {
		return session.State{}, ErrSessionNotFound
	}

	st, err := u.store.Load(ctx, id)
	switch {
	case errors.Is(err, session.ErrNotFound):
		st = session.New(id, u.skills, u.now())
		if err := u.store.Save(ctx, st); err != nil {
			return session.State{}, fmt.Errorf("%w: save session: %w", ErrInternal, err)
		}
		u.logger.Debug().Str("session_id", id.String()).Msg("session created")
		return st, nil
	case err != nil:
		return session.State{}, fmt.Errorf("%w: load session: %w", ErrInternal, err)
	}
	return session.Reconcile(st, u.skills), nil
}

func (u *Dashboard) view(st session.State) DashboardView {
	v := DashboardView{
		SessionID: st.ID,
		Version:   st.Version,
		Job:       u.job,
		Skills:    u.Skills(),
		Levels:    st.Levels.Clone(),
	}

	records, err := gap.Calculate(u.reqs, st.Levels)
	if err != nil {
		// Reconcile guarantees every demo skill has a level.
		u.logger.Error().Err(err).Str("session_id", st.ID.String()).Msg("gap calculation failed")
		v.CompletionText = gap.FormatCompletion(0, err)
		return v
	}
	v.Records = records
	v.Summary = gap.Summarize(records)

	pct, err := gap.Completion(records)
	v.Completion = pct
	v.HasCompletion = err == nil
	v.CompletionText = gap.FormatCompletion(pct, err)
	return v
}
