package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"skill-match/internal/domain/keyword"
	"skill-match/internal/domain/match"
	"skill-match/internal/domain/matching"
	"skill-match/internal/domain/resume"
	"skill-match/internal/domain/role"
	"skill-match/internal/domain/skill"
	"skill-match/internal/repository"
)

type MatchingUsecase interface {
	ScoreTokens(ctx context.Context, roleName string, skills []string) (match.Outcome, error)
	ScoreResume(ctx context.Context, resumeID uuid.UUID) (match.Outcome, error)
	RankRole(ctx context.Context, roleName string, limit int) ([]match.Outcome, error)
}

type MatchingOptions struct {
	MaxDerivedKeywords int
	Concurrency        int
}

type Matching struct {
	engine   *matching.Engine
	variants VariantProvider
	roles    repository.RoleRepository
	resumes  repository.ResumeRepository
	skills   repository.SkillRepository
	opts     MatchingOptions
	logger   *zap.Logger
}

func NewMatchingUsecase(
	engine *matching.Engine,
	variants VariantProvider,
	roles repository.RoleRepository,
	resumes repository.ResumeRepository,
	skills repository.SkillRepository,
	opts MatchingOptions,
	logger *zap.Logger,
) *Matching {
	if opts.MaxDerivedKeywords <= 0 {
		opts.MaxDerivedKeywords = keyword.DefaultMaxKeywords
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matching{
		engine:   engine,
		variants: variants,
		roles:    roles,
		resumes:  resumes,
		skills:   skills,
		opts:     opts,
		logger:   logger,
	}
}

// ScoreTokens scores raw skill tokens against a role.
func (u *Matching) ScoreTokens(ctx context.Context, roleName string, skills []string) (match.Outcome, error) {
	roleName = strings.TrimSpace(roleName)
	if roleName == "" {
		return match.Unscored(match.ReasonNoRole), nil
	}

	ro, err := u.roles.GetRole(ctx, roleName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return match.Outcome{}, ErrNotFound
		}
		u.logger.Error("get role", zap.String("role", roleName), zap.Error(err))
		return match.Outcome{}, ErrInternal
	}

	vm := u.variants.Get(ctx)
	dict := &lazyDictionary{repo: u.skills}
	rows, derived, err := u.keywordRows(ctx, ro, vm, dict)
	if err != nil {
		return match.Outcome{}, err
	}

	out := u.evaluate(rows, skills, vm)
	out.Role = ro.Name
	out.DerivedKeyword = derived
	return out, nil
}

// ScoreResume scores a stored resume against the role it applied for.
func (u *Matching) ScoreResume(ctx context.Context, resumeID uuid.UUID) (match.Outcome, error) {
	if resumeID == uuid.Nil {
		return match.Outcome{}, ErrInvalidInput
	}

	res, err := u.resumes.Get(ctx, resumeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return match.Outcome{}, ErrNotFound
		}
		u.logger.Error("get resume", zap.Stringer("resume_id", resumeID), zap.Error(err))
		return match.Outcome{}, ErrInternal
	}

	roleName := ""
	if res.SelectedRole != nil {
		roleName = strings.TrimSpace(*res.SelectedRole)
	}
	if roleName == "" {
		return withResume(match.Unscored(match.ReasonNoRole), res, ""), nil
	}

	ro, err := u.roles.GetRole(ctx, roleName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return withResume(match.Unscored(match.ReasonNoKeywords), res, roleName), nil
		}
		u.logger.Error("get role", zap.String("role", roleName), zap.Error(err))
		return match.Outcome{}, ErrInternal
	}

	vm := u.variants.Get(ctx)
	dict := &lazyDictionary{repo: u.skills}
	rows, derived, err := u.keywordRows(ctx, ro, vm, dict)
	if err != nil {
		return match.Outcome{}, err
	}

	skills, err := resumeSkills(ctx, res, dict)
	if err != nil {
		return match.Outcome{}, err
	}

	out := withResume(u.evaluate(rows, skills, vm), res, ro.Name)
	out.DerivedKeyword = derived
	u.logger.Debug("resume scored",
		zap.Stringer("resume_id", res.ID),
		zap.String("role", ro.Name),
		zap.Bool("scored", out.Scored()),
		zap.String("reason", out.Reason),
	)
	return out, nil
}

// RankRole scores the most recent resumes that applied for a role, best
// first. Unscored resumes follow with their reason.
func (u *Matching) RankRole(ctx context.Context, roleName string, limit int) ([]match.Outcome, error) {
	roleName = strings.TrimSpace(roleName)
	if roleName == "" {
		return nil, ErrInvalidInput
	}

	ro, err := u.roles.GetRole(ctx, roleName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, ErrInternal
	}

	var (
		keywords []role.Keyword
		records  []resume.Resume
		dict     skill.Dictionary
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		keywords, err = u.roles.ListKeywords(gctx, ro.ID)
		return err
	})
	g.Go(func() error {
		var err error
		records, err = u.resumes.ListByRole(gctx, ro.Name, limit)
		return err
	})
	g.Go(func() error {
		var err error
		dict, err = u.skills.Dictionary(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		u.logger.Error("load ranking inputs", zap.String("role", ro.Name), zap.Error(err))
		return nil, ErrInternal
	}

	vm := u.variants.Get(ctx)
	rows := role.Rows(keywords)
	derived := false
	if len(rows) == 0 {
		rows = keyword.Derive(ro.JDText, dict, vm, u.opts.MaxDerivedKeywords)
		derived = true
	}

	loaded := &lazyDictionary{dict: dict, loaded: true}
	outcomes := make([]match.Outcome, len(records))
	var sg errgroup.Group
	sg.SetLimit(u.opts.Concurrency)
	for i, rec := range records {
		sg.Go(func() error {
			skills, _ := resumeSkills(ctx, rec, loaded)
			out := withResume(u.evaluate(rows, skills, vm), rec, ro.Name)
			out.DerivedKeyword = derived
			outcomes[i] = out
			return nil
		})
	}
	_ = sg.Wait()

	sortOutcomes(outcomes)
	return outcomes, nil
}

func (u *Matching) keywordRows(ctx context.Context, ro role.Role, vm *skill.VariantMap, dict *lazyDictionary) ([]matching.KeywordRow, bool, error) {
	keywords, err := u.roles.ListKeywords(ctx, ro.ID)
	if err != nil {
		u.logger.Error("list role keywords", zap.String("role", ro.Name), zap.Error(err))
		return nil, false, ErrInternal
	}
	if len(keywords) > 0 {
		return role.Rows(keywords), false, nil
	}
	if strings.TrimSpace(ro.JDText) == "" {
		return nil, false, nil
	}

	d, err := dict.get(ctx)
	if err != nil {
		return nil, false, err
	}
	return keyword.Derive(ro.JDText, d, vm, u.opts.MaxDerivedKeywords), true, nil
}

func (u *Matching) evaluate(rows []matching.KeywordRow, skills []string, vm *skill.VariantMap) match.Outcome {
	if len(rows) == 0 {
		return match.Unscored(match.ReasonNoKeywords)
	}
	if len(skills) == 0 {
		return match.Unscored(match.ReasonNoText)
	}
	tokens := u.engine.Canonicalizer(vm).Skills(skills)
	if len(tokens) == 0 {
		return match.Unscored(match.ReasonNoText)
	}
	res, ok := u.engine.ComputeCanonical(tokens, rows, vm)
	if !ok {
		return match.Unscored(match.ReasonNoScoreableKeyword)
	}
	return match.Scored(res)
}

// resumeSkills returns the stored tokens, falling back to extracting known
// skills from the resume text.
func resumeSkills(ctx context.Context, res resume.Resume, dict *lazyDictionary) ([]string, error) {
	if skills := res.Skills(); len(skills) > 0 {
		return skills, nil
	}
	if strings.TrimSpace(res.Text) == "" {
		return nil, nil
	}
	d, err := dict.get(ctx)
	if err != nil {
		return nil, err
	}
	return keyword.Extract(res.Text, d).All(), nil
}

func withResume(out match.Outcome, res resume.Resume, roleName string) match.Outcome {
	out.ResumeID = res.ID
	out.CandidateName = res.CandidateName
	out.Role = roleName
	return out
}

func sortOutcomes(items []match.Outcome) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Scored() != b.Scored() {
			return a.Scored()
		}
		if a.Scored() && a.Result.Score != b.Result.Score {
			return a.Result.Score > b.Result.Score
		}
		if a.CandidateName != b.CandidateName {
			return a.CandidateName < b.CandidateName
		}
		return a.ResumeID.String() < b.ResumeID.String()
	})
}

// lazyDictionary loads the skill dictionary at most once per call.
type lazyDictionary struct {
	repo   repository.SkillRepository
	dict   skill.Dictionary
	loaded bool
}

func (l *lazyDictionary) get(ctx context.Context) (skill.Dictionary, error) {
	if l.loaded {
		return l.dict, nil
	}
	d, err := l.repo.Dictionary(ctx)
	if err != nil {
		return skill.Dictionary{}, ErrInternal
	}
	l.dict, l.loaded = d, true
	return d, nil
}
