package usecase

import (
	"context"

	"go.uber.org/zap"

	"skill-match/internal/domain/discovery"
	"skill-match/internal/infrastructure/cache"
	"skill-match/internal/repository"
)

type DiscoverInput struct {
	JDText string
	Max    int
}

type DiscoveryUsecase interface {
	Discover(ctx context.Context, in DiscoverInput) ([]discovery.Candidate, error)
}

type Discovery struct {
	resumes     repository.ResumeRepository
	skills      repository.SkillRepository
	cache       DiscoveryCache
	corpusLimit int
	maxPhrases  int
	logger      *zap.Logger
}

func NewDiscoveryUsecase(
	resumes repository.ResumeRepository,
	skills repository.SkillRepository,
	cache DiscoveryCache,
	corpusLimit, maxPhrases int,
	logger *zap.Logger,
) *Discovery {
	if cache == nil {
		cache = nopDiscoveryCache{}
	}
	if corpusLimit <= 0 {
		corpusLimit = 500
	}
	if maxPhrases <= 0 {
		maxPhrases = discovery.DefaultMaxPhrases
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Discovery{
		resumes:     resumes,
		skills:      skills,
		cache:       cache,
		corpusLimit: corpusLimit,
		maxPhrases:  maxPhrases,
		logger:      logger,
	}
}

// Discover ranks unknown phrases from the most recent resumes. Results are
// advisory and cached until the dictionary changes or the TTL passes.
func (u *Discovery) Discover(ctx context.Context, in DiscoverInput) ([]discovery.Candidate, error) {
	max := in.Max
	if max <= 0 || max > u.maxPhrases {
		max = u.maxPhrases
	}

	key := cache.DiscoveryKey(u.corpusLimit, max, in.JDText)
	var cached []discovery.Candidate
	if found, err := u.cache.GetJSON(ctx, key, &cached); err == nil && found {
		return cached, nil
	}

	corpus, err := u.resumes.ListRecentTexts(ctx, u.corpusLimit)
	if err != nil {
		u.logger.Error("load discovery corpus", zap.Error(err))
		return nil, ErrInternal
	}
	dict, err := u.skills.Dictionary(ctx)
	if err != nil {
		u.logger.Error("load dictionary", zap.Error(err))
		return nil, ErrInternal
	}

	out := discovery.Discover(corpus, dict.Known(), in.JDText, max)
	if out == nil {
		out = []discovery.Candidate{}
	}
	if err := u.cache.SetJSON(ctx, key, out, 0); err != nil {
		u.logger.Warn("cache discovery result", zap.Error(err))
	}

	u.logger.Debug("discovery ran", zap.Int("documents", len(corpus)), zap.Int("candidates", len(out)))
	return out, nil
}
