package usecase

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"skill-match/internal/domain/keyword"
	"skill-match/internal/domain/matching"
	"skill-match/internal/domain/role"
	"skill-match/internal/infrastructure/scraper"
	"skill-match/internal/repository"
)

type KeywordInput struct {
	ID         uuid.UUID
	Keyword    string
	Importance string
	Weight     *float64
}

type DeriveInput struct {
	Role string
	URL  string
	Text string
	Max  int
}

type KeywordUsecase interface {
	ListRoles(ctx context.Context) ([]role.Role, error)
	SaveRole(ctx context.Context, name, jdText string) (role.Role, error)
	List(ctx context.Context, roleName string) ([]role.Keyword, error)
	Upsert(ctx context.Context, roleName string, in KeywordInput) (role.Keyword, error)
	Delete(ctx context.Context, roleName string, id uuid.UUID) error
	Derive(ctx context.Context, in DeriveInput) ([]matching.KeywordRow, error)
}

// Keywords curates role keyword lists and derives fallback lists from job
// description text.
type Keywords struct {
	roles    repository.RoleRepository
	skills   repository.SkillRepository
	variants VariantProvider
	fetcher  scraper.PageFetcher
	max      int
	notifier Notifier
	logger   *zap.Logger
}

func NewKeywordUsecase(
	roles repository.RoleRepository,
	skills repository.SkillRepository,
	variants VariantProvider,
	fetcher scraper.PageFetcher,
	maxDerived int,
	notifier Notifier,
	logger *zap.Logger,
) *Keywords {
	if maxDerived <= 0 {
		maxDerived = keyword.DefaultMaxKeywords
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Keywords{
		roles:    roles,
		skills:   skills,
		variants: variants,
		fetcher:  fetcher,
		max:      maxDerived,
		notifier: notifier,
		logger:   logger,
	}
}

func (u *Keywords) ListRoles(ctx context.Context) ([]role.Role, error) {
	items, err := u.roles.ListRoles(ctx)
	if err != nil {
		u.logger.Error("list roles", zap.Error(err))
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Keywords) SaveRole(ctx context.Context, name, jdText string) (role.Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return role.Role{}, ErrInvalidInput
	}
	saved, err := u.roles.UpsertRole(ctx, name, strings.TrimSpace(jdText))
	if err != nil {
		u.logger.Error("save role", zap.String("role", name), zap.Error(err))
		return role.Role{}, ErrInternal
	}
	return saved, nil
}

func (u *Keywords) List(ctx context.Context, roleName string) ([]role.Keyword, error) {
	ro, err := u.role(ctx, roleName)
	if err != nil {
		return nil, err
	}
	items, err := u.roles.ListKeywords(ctx, ro.ID)
	if err != nil {
		u.logger.Error("list role keywords", zap.String("role", ro.Name), zap.Error(err))
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Keywords) Upsert(ctx context.Context, roleName string, in KeywordInput) (role.Keyword, error) {
	in.Keyword = strings.TrimSpace(in.Keyword)
	if in.Keyword == "" {
		return role.Keyword{}, ErrInvalidInput
	}
	var importance *string
	if s := strings.TrimSpace(in.Importance); s != "" {
		imp := matching.ParseImportance(s)
		if !imp.Valid() {
			return role.Keyword{}, ErrInvalidInput
		}
		v := string(imp)
		importance = &v
	}
	if in.Weight != nil && (*in.Weight <= 0 || math.IsNaN(*in.Weight) || math.IsInf(*in.Weight, 0)) {
		return role.Keyword{}, ErrInvalidInput
	}

	ro, err := u.role(ctx, roleName)
	if err != nil {
		return role.Keyword{}, err
	}

	saved, err := u.roles.UpsertKeyword(ctx, role.Keyword{
		ID:         in.ID,
		RoleID:     ro.ID,
		Keyword:    in.Keyword,
		Importance: importance,
		Weight:     in.Weight,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return role.Keyword{}, ErrNotFound
		case repository.IsUniqueViolation(err):
			return role.Keyword{}, ErrConflict
		}
		u.logger.Error("upsert role keyword", zap.String("role", ro.Name), zap.Error(err))
		return role.Keyword{}, ErrInternal
	}

	u.notifier.KeywordsUpdated("upserted", ro.Name)
	return saved, nil
}

func (u *Keywords) Delete(ctx context.Context, roleName string, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrInvalidInput
	}
	ro, err := u.role(ctx, roleName)
	if err != nil {
		return err
	}
	if err := u.roles.DeleteKeyword(ctx, ro.ID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		u.logger.Error("delete role keyword", zap.String("role", ro.Name), zap.Error(err))
		return ErrInternal
	}
	u.notifier.KeywordsUpdated("deleted", ro.Name)
	return nil
}

// Derive builds keyword rows from explicit text, a posting URL, or a stored
// role's job description, in that order of preference.
func (u *Keywords) Derive(ctx context.Context, in DeriveInput) ([]matching.KeywordRow, error) {
	text := strings.TrimSpace(in.Text)

	if text == "" && strings.TrimSpace(in.URL) != "" {
		if u.fetcher == nil {
			return nil, ErrInvalidInput
		}
		fetched, err := u.fetcher.FetchText(ctx, in.URL)
		if err != nil {
			if errors.Is(err, scraper.ErrInvalidURL) {
				return nil, ErrInvalidInput
			}
			u.logger.Warn("fetch posting", zap.String("url", in.URL), zap.Error(err))
			return nil, ErrInternal
		}
		text = fetched
	}

	if text == "" && strings.TrimSpace(in.Role) != "" {
		ro, err := u.role(ctx, in.Role)
		if err != nil {
			return nil, err
		}
		text = ro.JDText
	}

	if strings.TrimSpace(text) == "" {
		return nil, ErrInvalidInput
	}

	dict, err := u.skills.Dictionary(ctx)
	if err != nil {
		u.logger.Error("load dictionary", zap.Error(err))
		return nil, ErrInternal
	}

	max := in.Max
	if max <= 0 || max > u.max {
		max = u.max
	}
	return keyword.Derive(text, dict, u.variants.Get(ctx), max), nil
}

func (u *Keywords) role(ctx context.Context, name string) (role.Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return role.Role{}, ErrInvalidInput
	}
	ro, err := u.roles.GetRole(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return role.Role{}, ErrNotFound
		}
		u.logger.Error("get role", zap.String("role", name), zap.Error(err))
		return role.Role{}, ErrInternal
	}
	return ro, nil
}
