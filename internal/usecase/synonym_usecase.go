package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"skill-match/internal/domain/skill"
	"skill-match/internal/repository"
)

type SynonymInput struct {
	Token     string
	ExpandsTo string
	Category  string
}

type SynonymUsecase interface {
	List(ctx context.Context) ([]skill.Synonym, error)
	Create(ctx context.Context, in SynonymInput) (skill.Synonym, error)
	Update(ctx context.Context, id uuid.UUID, in SynonymInput) (skill.Synonym, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Resolve(ctx context.Context, tokens []string) (map[string]string, error)
}

// Synonym manages the synonym table. Every successful write invalidates the
// variant cache before returning.
type Synonym struct {
	repo      repository.SynonymRepository
	variants  VariantProvider
	threshold float64
	notifier  Notifier
	logger    *zap.Logger
}

func NewSynonymUsecase(repo repository.SynonymRepository, variants VariantProvider, threshold float64, notifier Notifier, logger *zap.Logger) *Synonym {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Synonym{repo: repo, variants: variants, threshold: threshold, notifier: notifier, logger: logger}
}

func (u *Synonym) List(ctx context.Context) ([]skill.Synonym, error) {
	items, err := u.repo.List(ctx)
	if err != nil {
		u.logger.Error("list synonyms", zap.Error(err))
		return nil, ErrInternal
	}
	return items, nil
}

func (in SynonymInput) validate() (SynonymInput, error) {
	in.Token = strings.TrimSpace(in.Token)
	in.ExpandsTo = strings.TrimSpace(in.ExpandsTo)
	in.Category = strings.TrimSpace(in.Category)
	if skill.Normalize(in.Token) == "" {
		return SynonymInput{}, ErrInvalidInput
	}
	if in.ExpandsTo != "" && skill.Normalize(in.ExpandsTo) == "" {
		return SynonymInput{}, ErrInvalidInput
	}
	return in, nil
}

func (u *Synonym) Create(ctx context.Context, in SynonymInput) (skill.Synonym, error) {
	in, err := in.validate()
	if err != nil {
		return skill.Synonym{}, err
	}

	created, err := u.repo.Create(ctx, skill.Synonym{Token: in.Token, ExpandsTo: in.ExpandsTo, Category: in.Category})
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return skill.Synonym{}, ErrConflict
		}
		u.logger.Error("create synonym", zap.String("token", in.Token), zap.Error(err))
		return skill.Synonym{}, ErrInternal
	}

	u.changed("created", created.Token)
	return created, nil
}

func (u *Synonym) Update(ctx context.Context, id uuid.UUID, in SynonymInput) (skill.Synonym, error) {
	if id == uuid.Nil {
		return skill.Synonym{}, ErrInvalidInput
	}
	in, err := in.validate()
	if err != nil {
		return skill.Synonym{}, err
	}

	updated, err := u.repo.Update(ctx, skill.Synonym{ID: id, Token: in.Token, ExpandsTo: in.ExpandsTo, Category: in.Category})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return skill.Synonym{}, ErrNotFound
		case repository.IsUniqueViolation(err):
			return skill.Synonym{}, ErrConflict
		}
		u.logger.Error("update synonym", zap.Stringer("id", id), zap.Error(err))
		return skill.Synonym{}, ErrInternal
	}

	u.changed("updated", updated.Token)
	return updated, nil
}

func (u *Synonym) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrInvalidInput
	}
	existing, err := u.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		u.logger.Error("delete synonym", zap.Stringer("id", id), zap.Error(err))
		return ErrInternal
	}

	u.changed("deleted", existing.Token)
	return nil
}

// Resolve returns the canonical form of each token under the current
// variant map.
func (u *Synonym) Resolve(ctx context.Context, tokens []string) (map[string]string, error) {
	c, err := skill.NewCanonicalizer(u.variants.Get(ctx), u.threshold)
	if err != nil {
		return nil, ErrInternal
	}
	out := make(map[string]string, len(tokens))
	for _, t := range tokens {
		if strings.TrimSpace(t) == "" {
			continue
		}
		out[t] = c.Token(t)
	}
	return out, nil
}

func (u *Synonym) changed(action, token string) {
	u.variants.Invalidate()
	u.notifier.SynonymsUpdated(action, token)
	u.logger.Info("synonyms changed", zap.String("action", action), zap.String("token", token))
}
