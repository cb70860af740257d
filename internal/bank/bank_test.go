package bank

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linguoquest/linguoquest/internal/content"
)

var sample = []content.QuestionItem{
	{ID: "q1", Prompt: "Pick b", Options: []string{"a", "b"}, CorrectOption: "b", Explanation: "b it is"},
	{ID: "q2", Prompt: "Pick a", Options: []string{"a", "b"}, CorrectOption: "a"},
}

func newRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedis(client), mr
}

func TestRedis_RoundTrip(t *testing.T) {
	b, mr := newRedis(t)
	ctx := context.Background()

	_, err := b.Get(ctx, "questions:English:7:5")
	require.ErrorIs(t, err, content.ErrBankMiss)

	require.NoError(t, b.Put(ctx, "questions:English:7:5", sample, time.Minute))
	assert.True(t, mr.Exists(keyPrefix+"questions:English:7:5"))

	got, err := b.Get(ctx, "questions:English:7:5")
	require.NoError(t, err)
	assert.Equal(t, sample, got)
}

func TestRedis_Expiry(t *testing.T) {
	b, mr := newRedis(t)
	ctx := context.Background()

	require.NoError(t, b.Put(ctx, "k", sample, time.Minute))
	assert.Equal(t, time.Minute, mr.TTL(keyPrefix+"k"))

	mr.FastForward(2 * time.Minute)
	_, err := b.Get(ctx, "k")
	require.ErrorIs(t, err, content.ErrBankMiss)
}

func TestRedis_CorruptEntry(t *testing.T) {
	b, mr := newRedis(t)
	require.NoError(t, mr.Set(keyPrefix+"bad", "{not json"))

	_, err := b.Get(context.Background(), "bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, content.ErrBankMiss)
}

func TestRedis_ServerDown(t *testing.T) {
	b, mr := newRedis(t)
	mr.Close()

	_, err := b.Get(context.Background(), "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, content.ErrBankMiss)
}

func TestDial(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := Dial(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	require.NoError(t, client.Close())
}

func TestMemory_Expiry(t *testing.T) {
	m := NewMemory()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, m.Put(ctx, "k", sample, time.Minute))
	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, sample, got)

	now = now.Add(time.Minute)
	_, err = m.Get(ctx, "k")
	require.ErrorIs(t, err, content.ErrBankMiss)
	assert.Equal(t, 0, m.Len())
}

func TestMemory_CopiesItems(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	items := append([]content.QuestionItem(nil), sample...)
	require.NoError(t, m.Put(ctx, "k", items, 0))
	items[0].ID = "mutated"

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "q1", got[0].ID)
}

func TestBanksBehindCached(t *testing.T) {
	r, _ := newRedis(t)
	for name, b := range map[string]content.Bank{"memory": NewMemory(), "redis": r} {
		t.Run(name, func(t *testing.T) {
			next := &countingSupplier{Static: content.Static{Questions: sample}}
			c := content.WithBank(next, b, time.Minute, nil)
			ctx := context.Background()

			for range 3 {
				got, err := c.FetchQuestions(ctx, content.SubjectEnglish, content.Grade7, 2)
				require.NoError(t, err)
				assert.Len(t, got, 2)
			}
			assert.Equal(t, 1, next.calls)
		})
	}
}

type countingSupplier struct {
	content.Static
	calls int
}

func (s *countingSupplier) FetchQuestions(ctx context.Context, sub content.Subject, g content.Grade, n int) ([]content.QuestionItem, error) {
	s.calls++
	return s.Static.FetchQuestions(ctx, sub, g, n)
}
