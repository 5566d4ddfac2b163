package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/placementflow/placementflow-backend/internal/logger"
	"github.com/placementflow/placementflow-backend/internal/repos"
)

// Gate decides whether a user may start one more paid generation.
// Implementations must reject with ErrQuotaExceeded so callers can
// render an actionable message, and must fail closed when the backing
// record is missing.
type Gate interface {
	Allow(ctx context.Context, userID uuid.UUID) error
}

// CountFunc reports how many generations the user already ran in
// [from, to).
type CountFunc func(ctx context.Context, userID uuid.UUID, from, to time.Time) (int64, error)

type countingGate struct {
	log   *logger.Logger
	count CountFunc
	limit int
	now   func() time.Time
}

// NewCountingGate limits generations to `limit` per UTC calendar day.
func NewCountingGate(log *logger.Logger, count CountFunc, limit int) Gate {
	return &countingGate{
		log:   log.With("gate", "counting"),
		count: count,
		limit: limit,
		now:   time.Now,
	}
}

func (g *countingGate) Allow(ctx context.Context, userID uuid.UUID) error {
	from, to := utcDayBounds(g.now())
	n, err := g.count(ctx, userID, from, to)
	if err != nil {
		return fmt.Errorf("count daily usage: %w", err)
	}
	if n >= int64(g.limit) {
		g.log.Debug("Daily limit reached", "user_id", userID, "count", n, "limit", g.limit)
		return ErrQuotaExceeded
	}
	return nil
}

type balanceGate struct {
	log     *logger.Logger
	credits repos.UserCreditsRepo
	column  string
}

// NewBalanceGate spends one credit per allowed call via an atomic
// conditional decrement. The spend is not refunded if the generation
// later fails.
func NewBalanceGate(log *logger.Logger, credits repos.UserCreditsRepo, column string) Gate {
	return &balanceGate{
		log:     log.With("gate", "balance"),
		credits: credits,
		column:  column,
	}
}

func (g *balanceGate) Allow(ctx context.Context, userID uuid.UUID) error {
	taken, err := g.credits.DecrementIfPositive(ctx, nil, userID, g.column)
	if err != nil {
		return fmt.Errorf("decrement credits: %w", err)
	}
	if taken {
		return nil
	}

	// Nothing decremented: either the balance is exhausted or the row
	// is missing entirely. A missing row is a server error, never
	// "unlimited".
	if _, err := g.credits.GetByUserID(ctx, nil, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoCreditRecord
		}
		return fmt.Errorf("load credits: %w", err)
	}
	return ErrQuotaExceeded
}

// utcDayBounds returns the half-open UTC calendar day containing t.
func utcDayBounds(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}
