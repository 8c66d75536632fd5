package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skill-match/internal/domain/skill"
)

func TestDictionaryUsecase_AppendInvalidatesDiscovery(t *testing.T) {
	repo := &fakeSkillRepo{dict: skill.Dictionary{Hard: []string{"python"}}}
	cache := newFakeDiscoveryCache()
	notifier := &fakeNotifier{}
	uc := NewDictionaryUsecase(repo, cache, notifier, nil)
	ctx := context.Background()

	require.NoError(t, cache.SetJSON(ctx, "discovery:abc", []string{"x"}, time.Minute))

	added, err := uc.Append(ctx, skill.KindHard, []string{" Python ", "Kubernetes", "!!!"})
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.Equal(t, []string{"python", "kubernetes"}, repo.dict.Hard)
	assert.Equal(t, 1, cache.invalidated)
	assert.Empty(t, cache.store)
	assert.Equal(t, []string{"skills:appended:hard"}, notifier.events)
}

func TestDictionaryUsecase_AppendNothingNew(t *testing.T) {
	repo := &fakeSkillRepo{dict: skill.Dictionary{Soft: []string{"teamwork"}}}
	cache := newFakeDiscoveryCache()
	uc := NewDictionaryUsecase(repo, cache, nil, nil)

	added, err := uc.Append(context.Background(), skill.KindSoft, []string{"Teamwork"})
	require.NoError(t, err)
	assert.Zero(t, added)
	assert.Zero(t, cache.invalidated)
}

func TestDictionaryUsecase_AppendValidation(t *testing.T) {
	uc := NewDictionaryUsecase(&fakeSkillRepo{}, nil, nil, nil)
	ctx := context.Background()

	_, err := uc.Append(ctx, skill.Kind("other"), []string{"go"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Append(ctx, skill.KindHard, []string{"  ", "@@"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDictionaryUsecase_List(t *testing.T) {
	repo := &fakeSkillRepo{dict: skill.Dictionary{Hard: []string{"go", "sql"}, Soft: []string{"leadership"}}}
	uc := NewDictionaryUsecase(repo, nil, nil, nil)
	ctx := context.Background()

	all, err := uc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	soft, err := uc.List(ctx, skill.KindSoft)
	require.NoError(t, err)
	require.Len(t, soft, 1)
	assert.Equal(t, "leadership", soft[0].Token)

	_, err = uc.List(ctx, skill.Kind("x"))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewDictionaryUsecase(&fakeSkillRepo{err: errStore}, nil, nil, nil).List(ctx, skill.KindHard)
	assert.ErrorIs(t, err, ErrInternal)
}
