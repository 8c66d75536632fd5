package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"skill-match/internal/config"
	"skill-match/internal/database"
	dbpostgres "skill-match/internal/database/postgres"
	"skill-match/internal/domain/matching"
	"skill-match/internal/infrastructure/cache"
	"skill-match/internal/infrastructure/scraper"
	"skill-match/internal/logger"
	"skill-match/internal/pkg/jwt"
	"skill-match/internal/repository"
	"skill-match/internal/usecase"
	"skill-match/internal/ws"
)

// Container owns the process-wide dependencies. The variant cache is shared
// by every usecase that canonicalizes.
type Container struct {
	Config config.Config
	Logger *zap.Logger
	DB     database.DB
	Redis  *cache.Redis

	Variants *cache.VariantCache
	Hub      *ws.Hub
	JWT      *jwt.HMACService
	Fetcher  *scraper.Fetcher

	Synonyms   *usecase.Synonym
	Dictionary *usecase.Dictionary
	Matching   *usecase.Matching
	Keywords   *usecase.Keywords
	Discovery  *usecase.Discovery
	Status     *usecase.Status
}

func NewContainer(cfg config.Config, log *zap.Logger) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	c, err := Wire(cfg, log, db, cache.NewRedis(cfg.Redis, logger.Named(log, "redis")))
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return c, nil
}

// Wire builds the container over an open database. rc may be nil, in which
// case discovery results are not cached.
func Wire(cfg config.Config, log *zap.Logger, db database.DB, rc *cache.Redis) (*Container, error) {
	if log == nil {
		log = zap.NewNop()
	}

	engine, err := matching.NewEngine(
		matching.WithCanonicalThreshold(cfg.Engine.CanonicalThreshold),
		matching.WithFuzzyThreshold(cfg.Engine.FuzzyThreshold),
	)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	synonymRepo := repository.NewPostgresSynonymRepository(db)
	skillRepo := repository.NewPostgresSkillRepository(db)
	roleRepo := repository.NewPostgresRoleRepository(db)
	resumeRepo := repository.NewPostgresResumeRepository(db)

	variants := cache.NewVariantCache(synonymRepo,
		cache.WithTTL(cfg.Engine.VariantTTL),
		cache.WithRefreshBackoff(cfg.Engine.RefreshBackoff),
		cache.WithLogger(logger.Named(log, "variants")),
	)

	fetcherOpts := []scraper.FetcherOption{
		scraper.WithTimeout(cfg.Fetcher.Timeout),
		scraper.WithFetcherLogger(logger.Named(log, "fetcher")),
	}
	if cfg.Fetcher.Headless {
		fetcherOpts = append(fetcherOpts, scraper.WithHeadless(cfg.Fetcher.HeadlessMinChars))
	}
	if cfg.Fetcher.AllowPrivate {
		fetcherOpts = append(fetcherOpts, scraper.WithPrivateNetworks())
	}
	fetcher := scraper.NewFetcher(fetcherOpts...)

	hub := ws.NewHub(logger.Named(log, "ws"))
	notifier := ws.NewNotifier(hub)

	var discoveryCache usecase.DiscoveryCache
	var pinger usecase.Pinger
	if rc != nil {
		discoveryCache = rc
		pinger = rc
	}

	c := &Container{
		Config:   cfg,
		Logger:   log,
		DB:       db,
		Redis:    rc,
		Variants: variants,
		Hub:      hub,
		JWT:      jwt.NewHMACService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL),
		Fetcher:  fetcher,

		Synonyms: usecase.NewSynonymUsecase(synonymRepo, variants, cfg.Engine.CanonicalThreshold, notifier,
			logger.Named(log, "synonyms")),
		Dictionary: usecase.NewDictionaryUsecase(skillRepo, discoveryCache, notifier,
			logger.Named(log, "dictionary")),
		Matching: usecase.NewMatchingUsecase(engine, variants, roleRepo, resumeRepo, skillRepo,
			usecase.MatchingOptions{
				MaxDerivedKeywords: cfg.Engine.MaxDerivedKeywords,
				Concurrency:        cfg.Engine.RankingConcurrency,
			},
			logger.Named(log, "matching")),
		Keywords: usecase.NewKeywordUsecase(roleRepo, skillRepo, variants, fetcher, cfg.Engine.MaxDerivedKeywords,
			notifier, logger.Named(log, "keywords")),
		Discovery: usecase.NewDiscoveryUsecase(resumeRepo, skillRepo, discoveryCache,
			cfg.Engine.DiscoveryCorpusLimit, cfg.Engine.DiscoveryMaxPhrases, logger.Named(log, "discovery")),
		Status: usecase.NewStatusUsecase(db, pinger, variants),
	}
	return c, nil
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
