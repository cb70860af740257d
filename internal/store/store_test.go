package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL
	}
	for _, tt := range tests {
		var got string
		require.NoError(t, s.DB().QueryRow("PRAGMA "+tt.pragma).Scan(&got), tt.pragma)
		assert.Equal(t, tt.want, got, "PRAGMA %s", tt.pragma)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")

	s1, err := Open(path)
	require.NoError(t, err)
	_, err = s1.ScoreRepo().AppendScore(context.Background(), ScoreRecord{Player: "asha", Mode: "escape", Points: 100})
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	rec, err := s2.ScoreRepo().AppendScore(context.Background(), ScoreRecord{Player: "asha", Mode: "battle", Points: 120})
	require.NoError(t, err)
	assert.Equal(t, int64(2), rec.Sequence, "sequence continues across reopen")
}

func TestSequenceIsSharedAcrossTables(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first, err := s.ScoreRepo().AppendScore(ctx, ScoreRecord{Player: "p", Mode: "sprint", Points: 100})
	require.NoError(t, err)
	require.NoError(t, s.LLMEventRepo().AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "mock", Purpose: "question-set", Success: true}))
	second, err := s.ScoreRepo().AppendScore(ctx, ScoreRecord{Player: "p", Mode: "sprint", Points: 100})
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.Sequence)
	assert.Equal(t, int64(3), second.Sequence)
}

func TestScoreRepo(t *testing.T) {
	s := openTestStore(t)
	repo := s.ScoreRepo()
	ctx := context.Background()

	records := []ScoreRecord{
		{SessionID: "s1", Player: "asha", Mode: "escape", Subject: "English", Grade: "6", Points: 120},
		{SessionID: "s2", Player: "asha", Mode: "battle", Subject: "Hindi", Grade: "7", Points: 100, Penalty: true},
		{SessionID: "s3", Player: "ravi", Mode: "escape", Subject: "French", Grade: "8", Points: 100, Penalty: true},
		{SessionID: "s4", Player: "asha", Mode: "escape", Subject: "English", Grade: "6", Points: 100, Penalty: true},
	}
	for _, rec := range records {
		_, err := repo.AppendScore(ctx, rec)
		require.NoError(t, err)
	}

	t.Run("recent newest first", func(t *testing.T) {
		got, err := repo.RecentScores(ctx, ScoreQuery{Player: "asha", Limit: 2})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "s4", got[0].SessionID)
		assert.Equal(t, "s2", got[1].SessionID)
		assert.True(t, got[1].Penalty)
		assert.False(t, got[0].CreatedAt.IsZero())
	})

	t.Run("all players", func(t *testing.T) {
		got, err := repo.RecentScores(ctx, ScoreQuery{})
		require.NoError(t, err)
		assert.Len(t, got, 4)
	})

	t.Run("total points", func(t *testing.T) {
		total, err := repo.TotalPoints(ctx, "asha")
		require.NoError(t, err)
		assert.Equal(t, 320, total)

		none, err := repo.TotalPoints(ctx, "nobody")
		require.NoError(t, err)
		assert.Equal(t, 0, none)
	})

	t.Run("mode totals", func(t *testing.T) {
		got, err := repo.ModeTotals(ctx, "asha")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, ModeTotal{Mode: "battle", Rounds: 1, Points: 100, Penalties: 1}, got[0])
		assert.Equal(t, ModeTotal{Mode: "escape", Rounds: 2, Points: 220, Penalties: 1}, got[1])
	})
}

func TestLLMEventRepo(t *testing.T) {
	s := openTestStore(t)
	repo := s.LLMEventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "question-set", InputTokens: 100, OutputTokens: 400, LatencyMs: 900, Success: true, ResponseBody: `{"questions":[]}`},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "question-set", InputTokens: 120, OutputTokens: 0, LatencyMs: 300, Success: false, ErrorMessage: "rate limited"},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "story-graph", InputTokens: 90, OutputTokens: 700, LatencyMs: 1500, Success: true},
	}
	for _, ev := range events {
		require.NoError(t, repo.AppendLLMRequest(ctx, ev))
	}

	recent, err := repo.RecentLLMRequests(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "story-graph", recent[0].Purpose)
	assert.Equal(t, "rate limited", recent[1].ErrorMessage)
	assert.False(t, recent[1].Success)

	one, err := repo.LLMRequest(ctx, recent[2].Sequence)
	require.NoError(t, err)
	assert.Equal(t, `{"questions":[]}`, one.ResponseBody)

	_, err = repo.LLMRequest(ctx, 999)
	assert.True(t, errors.Is(err, sql.ErrNoRows))

	usage, err := repo.Usage(ctx)
	require.NoError(t, err)
	require.Len(t, usage, 2)
	assert.Equal(t, "question-set", usage[0].Purpose)
	assert.Equal(t, 2, usage[0].Requests)
	assert.Equal(t, 1, usage[0].Failures)
	assert.Equal(t, 220, usage[0].InputTokens)
	assert.InDelta(t, 600.0, usage[0].AvgLatencyMs, 0.001)
}
