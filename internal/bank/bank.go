// Package bank holds recently generated question sets so repeated rounds
// for the same subject and grade skip generation.
package bank

import (
	"context"
	"sync"
	"time"

	"github.com/linguoquest/linguoquest/internal/content"
)

// Memory is an in-process bank. Entries expire lazily on read.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memEntry
	now     func() time.Time
}

type memEntry struct {
	items   []content.QuestionItem
	expires time.Time
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memEntry), now: time.Now}
}

func (m *Memory) Get(ctx context.Context, key string) ([]content.QuestionItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return nil, content.ErrBankMiss
	}
	if !e.expires.IsZero() && !m.now().Before(e.expires) {
		delete(m.entries, key)
		return nil, content.ErrBankMiss
	}
	return append([]content.QuestionItem(nil), e.items...), nil
}

// Put stores items. A non-positive ttl keeps them until the process exits.
func (m *Memory) Put(ctx context.Context, key string, items []content.QuestionItem, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e := memEntry{items: append([]content.QuestionItem(nil), items...)}
	if ttl > 0 {
		e.expires = m.now().Add(ttl)
	}
	m.mu.Lock()
	m.entries[key] = e
	m.mu.Unlock()
	return nil
}

// Len returns the number of live and not-yet-collected entries.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
