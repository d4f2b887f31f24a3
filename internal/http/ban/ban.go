// Package ban tracks rate-limit strikes per client and bans clients that collect too many.
package ban

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Store persists strikes and bans. Implementations must be safe for concurrent use.
type Store interface {
	// AddStrike records a strike for target and returns the number of strikes within window.
	AddStrike(ctx context.Context, target string, window time.Duration) (int64, error)
	// Ban bans target for d and forgets its strikes.
	Ban(ctx context.Context, target string, d time.Duration) error
	IsBanned(ctx context.Context, target string) (bool, error)
}

type Policy struct {
	Strikes  int
	Window   time.Duration
	Duration time.Duration
}

type Guard struct {
	store  Store
	policy Policy
	logger zerolog.Logger
}

func NewGuard(store Store, policy Policy, logger zerolog.Logger) *Guard {
	return &Guard{
		store:  store,
		policy: policy,
		logger: logger.With().Str("component", "ban").Logger(),
	}
}

func (g *Guard) IsBanned(ctx context.Context, target string) (bool, error) {
	return g.store.IsBanned(ctx, target)
}

// Strike records a rate-limit violation by target on route and bans target once it
// reaches the policy threshold. It reports whether target is now banned.
func (g *Guard) Strike(ctx context.Context, target, route string) (bool, error) {
	strikes, err := g.store.AddStrike(ctx, target, g.policy.Window)
	if err != nil {
		return false, fmt.Errorf("record strike for %s: %w", target, err)
	}
	if strikes < int64(g.policy.Strikes) {
		return false, nil
	}

	if err := g.store.Ban(ctx, target, g.policy.Duration); err != nil {
		return false, fmt.Errorf("ban %s: %w", target, err)
	}

	g.logger.Warn().
		Str("target", target).
		Str("route", route).
		Int64("strikes", strikes).
		Dur("duration", g.policy.Duration).
		Msg("client banned")
	return true, nil
}
