package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"skill-match/internal/domain/skill"
	"skill-match/internal/logger"
)

const (
	DefaultVariantTTL     = 300 * time.Second
	DefaultRefreshBackoff = 10 * time.Second
)

// SynonymSource reads every synonym row, in creation order.
type SynonymSource interface {
	ListSynonyms(ctx context.Context) ([]skill.SynonymRow, error)
}

type variantSnapshot struct {
	variants   *skill.VariantMap
	loadedAt   time.Time
	generation uint64
}

// VariantCache holds the process-wide variant map. Reads are lock free; a
// single rebuild runs at a time and swaps in a complete replacement.
type VariantCache struct {
	source  SynonymSource
	ttl     time.Duration
	backoff time.Duration
	now     func() time.Time
	logger  *zap.Logger

	snapshot   atomic.Pointer[variantSnapshot]
	generation atomic.Uint64
	failedAt   atomic.Int64

	mu sync.Mutex
}

type VariantOption func(*VariantCache)

func WithTTL(ttl time.Duration) VariantOption {
	return func(c *VariantCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithRefreshBackoff(d time.Duration) VariantOption {
	return func(c *VariantCache) {
		if d >= 0 {
			c.backoff = d
		}
	}
}

func WithClock(now func() time.Time) VariantOption {
	return func(c *VariantCache) {
		if now != nil {
			c.now = now
		}
	}
}

func WithLogger(l *zap.Logger) VariantOption {
	return func(c *VariantCache) {
		c.logger = logger.Named(l, "variant-cache")
	}
}

func NewVariantCache(source SynonymSource, opts ...VariantOption) *VariantCache {
	c := &VariantCache{
		source:  source,
		ttl:     DefaultVariantTTL,
		backoff: DefaultRefreshBackoff,
		now:     time.Now,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Get returns the current variant map, rebuilding it when it is expired,
// invalidated or empty. Store failures are logged and the last good map (or
// an empty one) is returned.
func (c *VariantCache) Get(ctx context.Context) *skill.VariantMap {
	s := c.snapshot.Load()
	if c.fresh(s) {
		return s.variants
	}

	if !c.mu.TryLock() {
		if s != nil && s.variants.Len() > 0 {
			return s.variants
		}
		c.mu.Lock()
	}
	defer c.mu.Unlock()

	s = c.snapshot.Load()
	if c.fresh(s) {
		return s.variants
	}
	if c.backingOff() {
		return current(s)
	}

	vm, err := c.rebuild(ctx)
	if err != nil {
		c.logger.Warn("synonym refresh failed, serving previous variants",
			zap.Error(err),
			zap.Int("variants", current(s).Len()),
		)
		return current(s)
	}
	return vm
}

// Invalidate marks the current map stale. The next Get rebuilds it even
// inside the TTL, and a rebuild already in flight is stored as stale.
func (c *VariantCache) Invalidate() {
	c.generation.Add(1)
	c.failedAt.Store(0)
	c.logger.Debug("variants invalidated")
}

// Refresh rebuilds the map now and reports store errors.
func (c *VariantCache) Refresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := c.rebuild(ctx)
	return err
}

// LoadedAt returns when the current map was built, or zero when none was.
func (c *VariantCache) LoadedAt() time.Time {
	if s := c.snapshot.Load(); s != nil {
		return s.loadedAt
	}
	return time.Time{}
}

// rebuild must be called with mu held.
func (c *VariantCache) rebuild(ctx context.Context) (*skill.VariantMap, error) {
	gen := c.generation.Load()
	started := c.now()

	rows, err := c.source.ListSynonyms(ctx)
	if err != nil {
		c.failedAt.Store(c.now().UnixNano())
		return nil, err
	}

	vm := skill.BuildVariantMap(rows)
	c.snapshot.Store(&variantSnapshot{variants: vm, loadedAt: started, generation: gen})
	c.failedAt.Store(0)

	c.logger.Debug("variants rebuilt",
		zap.Int("rows", len(rows)),
		zap.Int("variants", vm.Len()),
		zap.Duration("took", c.now().Sub(started)),
	)
	return vm, nil
}

func (c *VariantCache) fresh(s *variantSnapshot) bool {
	if s == nil || s.variants.Len() == 0 {
		return false
	}
	if s.generation != c.generation.Load() {
		return false
	}
	return c.now().Sub(s.loadedAt) < c.ttl
}

func (c *VariantCache) backingOff() bool {
	at := c.failedAt.Load()
	if at == 0 || c.backoff <= 0 {
		return false
	}
	return c.now().Sub(time.Unix(0, at)) < c.backoff
}

func current(s *variantSnapshot) *skill.VariantMap {
	if s == nil {
		return skill.EmptyVariantMap()
	}
	return s.variants
}
