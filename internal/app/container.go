package app

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"skill-gap/internal/config"
	"skill-gap/internal/database"
	"skill-gap/internal/database/migration"
	dbpostgres "skill-gap/internal/database/postgres"
	"skill-gap/internal/dataset"
	"skill-gap/internal/domain/skill"
	"skill-gap/internal/infrastructure/cache"
	"skill-gap/internal/logger"
	"skill-gap/internal/pkg/jwt"
	"skill-gap/internal/repository"
	"skill-gap/internal/session"
	"skill-gap/internal/usecase"
	"skill-gap/internal/ws"

	"github.com/rs/zerolog"
)

const (
	SessionBackendRedis  = "redis"
	SessionBackendMemory = "memory"
)

type Container struct {
	Config config.Config
	Logger zerolog.Logger

	DB             database.DB
	Redis          *cache.Redis
	Sessions       session.Store
	SessionBackend string
	Datasets       repository.DatasetRepository
	JWT            jwt.Service
	Hub            *ws.Hub

	Dashboard  *usecase.Dashboard
	DatasetsUC *usecase.Datasets
}

// NewContainer connects the optional backends. Postgres is used when DB_HOST is set,
// Redis when REDIS_HOST is set and reachable; otherwise both fall back to process memory.
func NewContainer(ctx context.Context, cfg config.Config, log zerolog.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: log}

	if cfg.Database.Enabled() {
		dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		db, err := dbpostgres.Connect(dbCtx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		c.DB = db

		applied, err := migration.Runner{Logger: logger.Component("migration")}.Run(dbCtx, db.SQLDB())
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		log.Info().Int("applied", applied).Msg("database ready")
		c.Datasets = repository.NewPostgresDatasetRepository(db)
	} else {
		repo := repository.NewMemoryDatasetRepository()
		if err := seedMemoryDataset(ctx, repo, cfg.Tracker, log); err != nil {
			return nil, err
		}
		c.Datasets = repo
	}

	if cfg.Redis.Enabled() {
		c.Redis = cache.NewRedis(ctx, cfg.Redis, logger.Component("redis"))
	}
	if c.Redis.Available() {
		c.Sessions = session.NewCacheStore(c.Redis, cfg.Session.TTL)
		c.SessionBackend = SessionBackendRedis
	} else {
		c.Sessions = session.NewMemoryStore(cfg.Session.TTL)
		c.SessionBackend = SessionBackendMemory
	}

	c.JWT = jwt.NewHMACService(cfg.Session.Secret, cfg.Session.TTL)
	c.Hub = ws.NewHub(logger.Component("ws"))
	c.Dashboard = usecase.NewDashboardUsecase(c.Sessions, skill.DemoJob, skill.DemoRequirements(), logger.Component("dashboard"))
	c.DatasetsUC = usecase.NewDatasetUsecase(c.Datasets)

	log.Info().
		Bool("database", c.DB != nil).
		Str("sessions", c.SessionBackend).
		Msg("container ready")
	return c, nil
}

func seedMemoryDataset(ctx context.Context, repo *repository.MemoryDatasetRepository, cfg config.TrackerConfig, log zerolog.Logger) error {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	opts := dataset.DefaultOptions()
	if cfg.Jobs > 0 {
		opts.Jobs = cfg.Jobs
	}

	ds, err := dataset.Generate(rand.New(rand.NewSource(seed)), opts)
	if err != nil {
		return fmt.Errorf("generate dataset: %w", err)
	}
	meta, err := repo.Save(ctx, seed, "startup", ds)
	if err != nil {
		return err
	}
	log.Info().Str("dataset_id", meta.ID.String()).Int64("seed", seed).Int("jobs", meta.JobCount).Msg("in-memory dataset generated")
	return nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
