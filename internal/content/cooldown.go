package content

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// DefaultCooldown is the minimum spacing between live generations.
const DefaultCooldown = 3 * time.Second

// Cooldown spaces out calls to the wrapped supplier. Callers inside the
// window wait for it to pass instead of failing.
type Cooldown struct {
	next    Supplier
	limiter *rate.Limiter
}

// WithCooldown wraps next. A non-positive interval disables spacing.
func WithCooldown(next Supplier, interval time.Duration) *Cooldown {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Cooldown{next: next, limiter: rate.NewLimiter(limit, 1)}
}

func (c *Cooldown) FetchQuestions(ctx context.Context, subject Subject, grade Grade, count int) ([]QuestionItem, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("cooldown: %w", err)
	}
	return c.next.FetchQuestions(ctx, subject, grade, count)
}

func (c *Cooldown) FetchStoryGraph(ctx context.Context, subject Subject, grade Grade) (*StoryGraph, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("cooldown: %w", err)
	}
	return c.next.FetchStoryGraph(ctx, subject, grade)
}
