package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"skill-match/internal/domain/resume"
	"skill-match/internal/domain/role"
	"skill-match/internal/domain/skill"
	"skill-match/internal/repository"
)

var errStore = errors.New("store down")

type fakeVariants struct {
	mu          sync.Mutex
	vm          *skill.VariantMap
	invalidated int
}

func (f *fakeVariants) Get(context.Context) *skill.VariantMap {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.vm == nil {
		return skill.EmptyVariantMap()
	}
	return f.vm
}

func (f *fakeVariants) Invalidate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated++
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []string
}

func (f *fakeNotifier) record(kind, action, subject string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, kind+":"+action+":"+subject)
}

func (f *fakeNotifier) SynonymsUpdated(action, token string) { f.record("synonyms", action, token) }
func (f *fakeNotifier) SkillsUpdated(action, kind string)    { f.record("skills", action, kind) }
func (f *fakeNotifier) KeywordsUpdated(action, role string)  { f.record("keywords", action, role) }

type fakeSynonymRepo struct {
	items []skill.Synonym
	err   error
}

func (f *fakeSynonymRepo) List(context.Context) ([]skill.Synonym, error) {
	return f.items, f.err
}

func (f *fakeSynonymRepo) ListSynonyms(context.Context) ([]skill.SynonymRow, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]skill.SynonymRow, 0, len(f.items))
	for _, s := range f.items {
		out = append(out, s.Row())
	}
	return out, nil
}

func (f *fakeSynonymRepo) Get(_ context.Context, id uuid.UUID) (skill.Synonym, error) {
	for _, s := range f.items {
		if s.ID == id {
			return s, nil
		}
	}
	return skill.Synonym{}, repository.ErrNotFound
}

func (f *fakeSynonymRepo) Create(_ context.Context, s skill.Synonym) (skill.Synonym, error) {
	if f.err != nil {
		return skill.Synonym{}, f.err
	}
	for _, it := range f.items {
		if strings.EqualFold(it.Token, s.Token) {
			return skill.Synonym{}, &pgconn.PgError{Code: "23505"}
		}
	}
	s.ID = uuid.New()
	s.CreatedAt = time.Now()
	f.items = append(f.items, s)
	return s, nil
}

func (f *fakeSynonymRepo) Update(_ context.Context, s skill.Synonym) (skill.Synonym, error) {
	for i, it := range f.items {
		if it.ID == s.ID {
			f.items[i] = s
			return s, nil
		}
	}
	return skill.Synonym{}, repository.ErrNotFound
}

func (f *fakeSynonymRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, it := range f.items {
		if it.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeSkillRepo struct {
	mu    sync.Mutex
	dict  skill.Dictionary
	err   error
	loads int
}

func (f *fakeSkillRepo) ListByKind(_ context.Context, kind skill.Kind) ([]skill.DictionaryEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	src := f.dict.Hard
	if kind == skill.KindSoft {
		src = f.dict.Soft
	}
	out := make([]skill.DictionaryEntry, 0, len(src))
	for _, t := range src {
		out = append(out, skill.DictionaryEntry{ID: uuid.New(), Token: t, Kind: kind})
	}
	return out, nil
}

func (f *fakeSkillRepo) Dictionary(context.Context) (skill.Dictionary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++
	return f.dict, f.err
}

func (f *fakeSkillRepo) Append(_ context.Context, kind skill.Kind, tokens []string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	existing := f.dict.Known()
	added := 0
	for _, t := range tokens {
		if existing.Has(t) {
			continue
		}
		existing.Add(t)
		if kind == skill.KindHard {
			f.dict.Hard = append(f.dict.Hard, t)
		} else {
			f.dict.Soft = append(f.dict.Soft, t)
		}
		added++
	}
	return added, nil
}

type fakeRoleRepo struct {
	roles    map[string]role.Role
	keywords map[uuid.UUID][]role.Keyword
	err      error
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{roles: map[string]role.Role{}, keywords: map[uuid.UUID][]role.Keyword{}}
}

func (f *fakeRoleRepo) addRole(name, jd string, keywords ...role.Keyword) role.Role {
	ro := role.Role{ID: uuid.New(), Name: name, JDText: jd}
	f.roles[strings.ToLower(name)] = ro
	for i := range keywords {
		keywords[i].ID = uuid.New()
		keywords[i].RoleID = ro.ID
	}
	f.keywords[ro.ID] = keywords
	return ro
}

func (f *fakeRoleRepo) ListRoles(context.Context) ([]role.Role, error) {
	out := make([]role.Role, 0, len(f.roles))
	for _, r := range f.roles {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, f.err
}

func (f *fakeRoleRepo) GetRole(_ context.Context, name string) (role.Role, error) {
	if f.err != nil {
		return role.Role{}, f.err
	}
	ro, ok := f.roles[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return role.Role{}, repository.ErrNotFound
	}
	return ro, nil
}

func (f *fakeRoleRepo) UpsertRole(_ context.Context, name, jd string) (role.Role, error) {
	if ro, ok := f.roles[strings.ToLower(name)]; ok {
		ro.JDText = jd
		f.roles[strings.ToLower(name)] = ro
		return ro, nil
	}
	return f.addRole(name, jd), nil
}

func (f *fakeRoleRepo) ListKeywords(_ context.Context, roleID uuid.UUID) ([]role.Keyword, error) {
	return f.keywords[roleID], nil
}

func (f *fakeRoleRepo) UpsertKeyword(_ context.Context, k role.Keyword) (role.Keyword, error) {
	list := f.keywords[k.RoleID]
	if k.ID != uuid.Nil {
		for i, it := range list {
			if it.ID == k.ID {
				list[i] = k
				return k, nil
			}
		}
		return role.Keyword{}, repository.ErrNotFound
	}
	for _, it := range list {
		if strings.EqualFold(it.Keyword, k.Keyword) {
			return role.Keyword{}, &pgconn.PgError{Code: "23505"}
		}
	}
	k.ID = uuid.New()
	f.keywords[k.RoleID] = append(list, k)
	return k, nil
}

func (f *fakeRoleRepo) DeleteKeyword(_ context.Context, roleID, id uuid.UUID) error {
	list := f.keywords[roleID]
	for i, it := range list {
		if it.ID == id {
			f.keywords[roleID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeResumeRepo struct {
	items []resume.Resume
	err   error
}

func (f *fakeResumeRepo) Get(_ context.Context, id uuid.UUID) (resume.Resume, error) {
	for _, r := range f.items {
		if r.ID == id {
			return r, nil
		}
	}
	return resume.Resume{}, repository.ErrNotFound
}

func (f *fakeResumeRepo) Create(_ context.Context, r resume.Resume) (resume.Resume, error) {
	r.ID = uuid.New()
	f.items = append(f.items, r)
	return r, nil
}

func (f *fakeResumeRepo) ListRecentTexts(_ context.Context, limit int) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]string, 0)
	for _, r := range f.items {
		if r.Text != "" && len(out) < limit {
			out = append(out, r.Text)
		}
	}
	return out, nil
}

func (f *fakeResumeRepo) ListByRole(_ context.Context, name string, limit int) ([]resume.Resume, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]resume.Resume, 0)
	for _, r := range f.items {
		if r.SelectedRole != nil && strings.EqualFold(*r.SelectedRole, name) && len(out) < limit {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeDiscoveryCache struct {
	mu          sync.Mutex
	store       map[string][]byte
	invalidated int
}

func newFakeDiscoveryCache() *fakeDiscoveryCache {
	return &fakeDiscoveryCache{store: map[string][]byte{}}
}

func (f *fakeDiscoveryCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (f *fakeDiscoveryCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.store[key] = b
	return nil
}

func (f *fakeDiscoveryCache) InvalidateDiscovery(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.store = map[string][]byte{}
	f.invalidated++
	return nil
}

type fakeFetcher struct {
	text string
	err  error
	urls []string
}

func (f *fakeFetcher) FetchText(_ context.Context, url string) (string, error) {
	f.urls = append(f.urls, url)
	return f.text, f.err
}

func strPtr(s string) *string { return &s }

func floatPtr(v float64) *float64 { return &v }
