package content

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type mapBank struct {
	mu    sync.Mutex
	items map[string][]QuestionItem
	ttls  map[string]time.Duration
}

func newMapBank() *mapBank {
	return &mapBank{items: map[string][]QuestionItem{}, ttls: map[string]time.Duration{}}
}

func (b *mapBank) Get(_ context.Context, key string) ([]QuestionItem, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	items, ok := b.items[key]
	if !ok {
		return nil, ErrBankMiss
	}
	return items, nil
}

func (b *mapBank) Put(_ context.Context, key string, items []QuestionItem, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items[key] = items
	b.ttls[key] = ttl
	return nil
}

type countingSupplier struct {
	Static
	calls atomic.Int32
	delay time.Duration
}

func (c *countingSupplier) FetchQuestions(ctx context.Context, s Subject, g Grade, n int) ([]QuestionItem, error) {
	c.calls.Add(1)
	time.Sleep(c.delay)
	return c.Static.FetchQuestions(ctx, s, g, n)
}

func TestCached_SecondFetchHitsBank(t *testing.T) {
	live := &countingSupplier{Static: Static{Questions: BuiltinSet(SubjectEnglish)}}
	bank := newMapBank()
	sup := WithBank(live, bank, time.Minute, nil)

	ctx := context.Background()
	first, err := sup.FetchQuestions(ctx, SubjectEnglish, Grade6, 2)
	if err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	second, err := sup.FetchQuestions(ctx, SubjectEnglish, Grade6, 2)
	if err != nil {
		t.Fatalf("second fetch: %v", err)
	}

	if got := live.calls.Load(); got != 1 {
		t.Errorf("live calls = %d, want 1", got)
	}
	if first[0].ID != second[0].ID {
		t.Errorf("bank returned different set")
	}

	ttl := bank.ttls[BankKey(SubjectEnglish, Grade6, 2)]
	if ttl < time.Minute || ttl > time.Minute+6*time.Second {
		t.Errorf("ttl = %s, want within 10%% jitter of 1m", ttl)
	}
}

func TestCached_ConcurrentMissesShareOneFetch(t *testing.T) {
	live := &countingSupplier{Static: Static{Questions: BuiltinSet(SubjectHindi)}, delay: 50 * time.Millisecond}
	sup := WithBank(live, newMapBank(), time.Minute, nil)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := sup.FetchQuestions(context.Background(), SubjectHindi, Grade7, 2); err != nil {
				t.Errorf("fetch: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := live.calls.Load(); got != 1 {
		t.Errorf("live calls = %d, want 1", got)
	}
}

type gatedSupplier struct {
	Static
	started chan struct{}
	release chan struct{}
}

func (g *gatedSupplier) FetchQuestions(ctx context.Context, s Subject, gr Grade, n int) ([]QuestionItem, error) {
	close(g.started)
	<-g.release
	return g.Static.FetchQuestions(ctx, s, gr, n)
}

func TestCached_FirstCallerLeavingKeepsSharedFetch(t *testing.T) {
	live := &gatedSupplier{
		Static:  Static{Questions: BuiltinSet(SubjectFrench)},
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	sup := WithBank(live, newMapBank(), time.Minute, nil)

	ctx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := sup.FetchQuestions(ctx, SubjectFrench, Grade6, 2)
		firstErr <- err
	}()
	<-live.started

	type result struct {
		items []QuestionItem
		err   error
	}
	second := make(chan result, 1)
	go func() {
		items, err := sup.FetchQuestions(context.Background(), SubjectFrench, Grade6, 2)
		second <- result{items, err}
	}()

	cancel()
	if err := <-firstErr; !errors.Is(err, context.Canceled) {
		t.Fatalf("first caller err = %v, want context.Canceled", err)
	}
	time.Sleep(20 * time.Millisecond)
	close(live.release)

	res := <-second
	if res.err != nil {
		t.Fatalf("second caller: %v", res.err)
	}
	if len(res.items) != 2 {
		t.Errorf("len = %d, want 2", len(res.items))
	}
}

func TestCached_KeysBySubjectGradeCount(t *testing.T) {
	if BankKey(SubjectFrench, Grade8, 15) != "questions:French:8:15" {
		t.Errorf("key = %q", BankKey(SubjectFrench, Grade8, 15))
	}
}

func TestCooldown_WaitsRespectContext(t *testing.T) {
	sup := WithCooldown(&Static{Questions: BuiltinSet(SubjectEnglish)}, time.Hour)

	if _, err := sup.FetchQuestions(context.Background(), SubjectEnglish, Grade6, 1); err != nil {
		t.Fatalf("first call should pass: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := sup.FetchQuestions(ctx, SubjectEnglish, Grade6, 1); err == nil {
		t.Fatal("second call inside the window should fail once the context ends")
	}
}

func TestCooldown_DisabledPassesThrough(t *testing.T) {
	sup := WithCooldown(&Static{Questions: BuiltinSet(SubjectEnglish)}, 0)
	for i := range 5 {
		if _, err := sup.FetchQuestions(context.Background(), SubjectEnglish, Grade6, 1); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
}
