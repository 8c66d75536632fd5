package usecase

import (
	"context"

	"go.uber.org/zap"

	"skill-match/internal/domain/skill"
	"skill-match/internal/repository"
)

type DictionaryUsecase interface {
	List(ctx context.Context, kind skill.Kind) ([]skill.DictionaryEntry, error)
	Dictionary(ctx context.Context) (skill.Dictionary, error)
	Append(ctx context.Context, kind skill.Kind, tokens []string) (int, error)
}

type Dictionary struct {
	repo     repository.SkillRepository
	cache    DiscoveryCache
	notifier Notifier
	logger   *zap.Logger
}

func NewDictionaryUsecase(repo repository.SkillRepository, cache DiscoveryCache, notifier Notifier, logger *zap.Logger) *Dictionary {
	if cache == nil {
		cache = nopDiscoveryCache{}
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dictionary{repo: repo, cache: cache, notifier: notifier, logger: logger}
}

// List returns the entries of one kind, or of both when kind is empty.
func (u *Dictionary) List(ctx context.Context, kind skill.Kind) ([]skill.DictionaryEntry, error) {
	kinds := []skill.Kind{kind}
	if kind == "" {
		kinds = []skill.Kind{skill.KindHard, skill.KindSoft}
	}

	out := make([]skill.DictionaryEntry, 0)
	for _, k := range kinds {
		if k != skill.KindHard && k != skill.KindSoft {
			return nil, ErrInvalidInput
		}
		items, err := u.repo.ListByKind(ctx, k)
		if err != nil {
			u.logger.Error("list dictionary", zap.String("kind", string(k)), zap.Error(err))
			return nil, ErrInternal
		}
		out = append(out, items...)
	}
	return out, nil
}

func (u *Dictionary) Dictionary(ctx context.Context) (skill.Dictionary, error) {
	d, err := u.repo.Dictionary(ctx)
	if err != nil {
		u.logger.Error("load dictionary", zap.Error(err))
		return skill.Dictionary{}, ErrInternal
	}
	return d, nil
}

// Append adds normalized tokens of one kind and drops cached discovery
// rankings, which exclude known skills.
func (u *Dictionary) Append(ctx context.Context, kind skill.Kind, tokens []string) (int, error) {
	if kind != skill.KindHard && kind != skill.KindSoft {
		return 0, ErrInvalidInput
	}
	clean := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if n := skill.Normalize(t); n != "" {
			clean = append(clean, n)
		}
	}
	if len(clean) == 0 {
		return 0, ErrInvalidInput
	}

	added, err := u.repo.Append(ctx, kind, clean)
	if err != nil {
		u.logger.Error("append dictionary", zap.String("kind", string(kind)), zap.Error(err))
		return 0, ErrInternal
	}
	if added == 0 {
		return 0, nil
	}

	if err := u.cache.InvalidateDiscovery(ctx); err != nil {
		u.logger.Warn("invalidate discovery cache", zap.Error(err))
	}
	u.notifier.SkillsUpdated("appended", string(kind))
	u.logger.Info("dictionary grew", zap.String("kind", string(kind)), zap.Int("added", added))
	return added, nil
}
