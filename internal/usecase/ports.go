package usecase

import (
	"context"
	"time"

	"skill-match/internal/domain/skill"
)

// DiscoveryCache stores ranked discovery results.
type DiscoveryCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	InvalidateDiscovery(ctx context.Context) error
}

// VariantProvider serves the shared variant map.
type VariantProvider interface {
	Get(ctx context.Context) *skill.VariantMap
	Invalidate()
}

// Notifier publishes change events to dashboards.
type Notifier interface {
	SynonymsUpdated(action, token string)
	SkillsUpdated(action, kind string)
	KeywordsUpdated(action, role string)
}

type nopNotifier struct{}

func (nopNotifier) SynonymsUpdated(string, string) {}
func (nopNotifier) SkillsUpdated(string, string)   {}
func (nopNotifier) KeywordsUpdated(string, string) {}

type nopDiscoveryCache struct{}

func (nopDiscoveryCache) GetJSON(context.Context, string, any) (bool, error)        { return false, nil }
func (nopDiscoveryCache) SetJSON(context.Context, string, any, time.Duration) error { return nil }
func (nopDiscoveryCache) InvalidateDiscovery(context.Context) error                 { return nil }
