package usecase

import (
	"context"
	"time"

	"skill-match/internal/domain"
	"skill-match/internal/domain/skill"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// VariantStats exposes the variant cache's current map and load time.
type VariantStats interface {
	Get(ctx context.Context) *skill.VariantMap
	LoadedAt() time.Time
}

type StatusUsecase interface {
	Status(ctx context.Context) domain.ServiceStatus
}

type Status struct {
	db       Pinger
	redis    Pinger
	variants VariantStats
	now      func() time.Time
}

func NewStatusUsecase(db, redis Pinger, variants VariantStats) *Status {
	return &Status{db: db, redis: redis, variants: variants, now: time.Now}
}

func (u *Status) Status(ctx context.Context) domain.ServiceStatus {
	out := domain.ServiceStatus{ServerTime: u.now().UTC()}
	out.DatabaseHealthy = ping(ctx, u.db)
	out.RedisHealthy = ping(ctx, u.redis)
	if u.variants != nil {
		out.Variants = u.variants.Get(ctx).Len()
		out.VariantsLoaded = u.variants.LoadedAt()
	}
	return out
}

func ping(ctx context.Context, p Pinger) bool {
	if p == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return p.Ping(ctx) == nil
}
