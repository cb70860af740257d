package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// ScoreRecord is one completed round written to the ledger.
type ScoreRecord struct {
	Sequence  int64
	SessionID string
	Player    string
	Mode      string
	Subject   string
	Grade     string
	Points    int
	Penalty   bool
	CreatedAt time.Time
}

// ModeTotal aggregates a player's rounds in one mode.
type ModeTotal struct {
	Mode      string
	Rounds    int
	Points    int
	Penalties int
}

// ScoreQuery filters ledger reads.
type ScoreQuery struct {
	Player string // empty matches every player
	Limit  int    // 0 = unlimited
}

// ScoreRepo is the score ledger.
type ScoreRepo interface {
	// AppendScore records a completed round and returns it with its
	// sequence number and timestamp filled in.
	AppendScore(ctx context.Context, rec ScoreRecord) (ScoreRecord, error)

	// RecentScores returns records newest first.
	RecentScores(ctx context.Context, q ScoreQuery) ([]ScoreRecord, error)

	// TotalPoints sums every recorded round for player.
	TotalPoints(ctx context.Context, player string) (int, error)

	// ModeTotals aggregates rounds per mode for player.
	ModeTotals(ctx context.Context, player string) ([]ModeTotal, error)
}

type scoreRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

const scoreTable = "score_events"

func (r *scoreRepo) AppendScore(ctx context.Context, rec ScoreRecord) (ScoreRecord, error) {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return rec, err
	}
	rec.Sequence = seqNum
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	query, args := builder().Insert(scoreTable).
		Columns("sequence", "session_id", "player", "mode", "subject", "grade", "points", "penalty", "created_at").
		Values(rec.Sequence, rec.SessionID, rec.Player, rec.Mode, rec.Subject, rec.Grade, rec.Points, rec.Penalty, rec.CreatedAt.UnixMilli()).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return rec, fmt.Errorf("save score event: %w", err)
	}
	return rec, nil
}

func (r *scoreRepo) RecentScores(ctx context.Context, q ScoreQuery) ([]ScoreRecord, error) {
	sel := builder().
		Select("sequence", "session_id", "player", "mode", "subject", "grade", "points", "penalty", "created_at").
		From(entsql.Table(scoreTable)).
		OrderBy(entsql.Desc("sequence"))
	if q.Player != "" {
		sel.Where(entsql.EQ("player", q.Player))
	}
	if q.Limit > 0 {
		sel.Limit(q.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	var out []ScoreRecord
	for rows.Next() {
		var (
			rec     ScoreRecord
			penalty bool
			created int64
		)
		if err := rows.Scan(&rec.Sequence, &rec.SessionID, &rec.Player, &rec.Mode, &rec.Subject,
			&rec.Grade, &rec.Points, &penalty, &created); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		rec.Penalty = penalty
		rec.CreatedAt = time.UnixMilli(created)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *scoreRepo) TotalPoints(ctx context.Context, player string) (int, error) {
	sel := builder().
		Select(entsql.As("COALESCE(SUM(points), 0)", "total")).
		From(entsql.Table(scoreTable))
	if player != "" {
		sel.Where(entsql.EQ("player", player))
	}

	query, args := sel.Query()
	var total int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum points: %w", err)
	}
	return total, nil
}

func (r *scoreRepo) ModeTotals(ctx context.Context, player string) ([]ModeTotal, error) {
	sel := builder().
		Select("mode", entsql.Count("*"), entsql.Sum("points"), entsql.Sum("penalty")).
		From(entsql.Table(scoreTable)).
		GroupBy("mode").
		OrderBy("mode")
	if player != "" {
		sel.Where(entsql.EQ("player", player))
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query mode totals: %w", err)
	}
	defer rows.Close()

	var out []ModeTotal
	for rows.Next() {
		var t ModeTotal
		if err := rows.Scan(&t.Mode, &t.Rounds, &t.Points, &t.Penalties); err != nil {
			return nil, fmt.Errorf("scan mode total: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
