package services

import (
	"context"
	"math/rand"
	"time"
)

// FraudChecker decides whether a click counts as valid. Implementations must
// not mutate link or click state.
type FraudChecker interface {
	Validate(ctx context.Context, ipAddress, userAgent string) (bool, error)
}

// FraudCheckerFunc adapts a function to the FraudChecker interface.
type FraudCheckerFunc func(ctx context.Context, ipAddress, userAgent string) (bool, error)

func (f FraudCheckerFunc) Validate(ctx context.Context, ipAddress, userAgent string) (bool, error) {
	return f(ctx, ipAddress, userAgent)
}

// RandomFraudChecker is a placeholder for a real fraud pipeline: it sleeps a
// fixed delay to model an external inspection, then draws valid with a fixed
// probability. Not a security mechanism.
type RandomFraudChecker struct {
	delay     time.Duration
	validRate float64
}

func NewRandomFraudChecker(delay time.Duration, validRate float64) *RandomFraudChecker {
	return &RandomFraudChecker{delay: delay, validRate: validRate}
}

func (c *RandomFraudChecker) Validate(ctx context.Context, ipAddress, userAgent string) (bool, error) {
	timer := time.NewTimer(c.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case <-timer.C:
	}

	return rand.Float64() < c.validRate, nil
}
