package content

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrBankMiss is returned by a Bank that holds no entry for a key.
var ErrBankMiss = errors.New("question bank miss")

// fetchTimeout bounds a shared fetch, which outlives any single caller.
const fetchTimeout = 60 * time.Second

// Bank stores recently generated question sets.
type Bank interface {
	Get(ctx context.Context, key string) ([]QuestionItem, error)
	Put(ctx context.Context, key string, items []QuestionItem, ttl time.Duration) error
}

// Cached serves question sets from a Bank and fills it from the wrapped
// supplier. Concurrent misses for one key share a single fetch. Story
// graphs are not banked.
type Cached struct {
	next Supplier
	bank Bank
	ttl  time.Duration
	sf   singleflight.Group
	log  *zap.Logger
}

// WithBank wraps next with a question bank. Entries live for ttl plus up
// to 10% jitter.
func WithBank(next Supplier, bank Bank, ttl time.Duration, log *zap.Logger) *Cached {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cached{next: next, bank: bank, ttl: ttl, log: log.Named("content.bank")}
}

// BankKey names the bank entry for a question set.
func BankKey(subject Subject, grade Grade, count int) string {
	return fmt.Sprintf("questions:%s:%s:%d", subject, grade, count)
}

func (c *Cached) FetchQuestions(ctx context.Context, subject Subject, grade Grade, count int) ([]QuestionItem, error) {
	key := BankKey(subject, grade, count)
	if items, err := c.bank.Get(ctx, key); err == nil && len(items) > 0 {
		return items, nil
	} else if err != nil && !errors.Is(err, ErrBankMiss) {
		c.log.Warn("bank read failed", zap.String("key", key), zap.Error(err))
	}

	// The shared fetch is detached from the caller that started it so one
	// caller walking away does not fail the others waiting on the key.
	ch := c.sf.DoChan(key, func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fetchTimeout)
		defer cancel()

		if items, err := c.bank.Get(fctx, key); err == nil && len(items) > 0 {
			return items, nil
		}
		items, err := c.next.FetchQuestions(fctx, subject, grade, count)
		if err != nil {
			return nil, err
		}
		if err := c.bank.Put(fctx, key, items, c.ttlWithJitter()); err != nil {
			c.log.Warn("bank write failed", zap.String("key", key), zap.Error(err))
		}
		return items, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return append([]QuestionItem(nil), res.Val.([]QuestionItem)...), nil
	}
}

func (c *Cached) FetchStoryGraph(ctx context.Context, subject Subject, grade Grade) (*StoryGraph, error) {
	return c.next.FetchStoryGraph(ctx, subject, grade)
}

func (c *Cached) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	return c.ttl + time.Duration(rand.Int64N(int64(c.ttl)/10+1))
}
