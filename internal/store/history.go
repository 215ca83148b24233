package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/abhisek/examsim/internal/analytics"
)

// ErrNotFound is returned when a requested session has no stored result.
var ErrNotFound = errors.New("store: session not found")

// SessionRow is one finished session. Per-domain counts and wrong ids are
// stored as JSON; SQLite has no native map type and these are read back
// whole, never queried into.
type SessionRow struct {
	bun.BaseModel `bun:"table:sessions,alias:s"`

	ID         int64     `bun:"id,pk,autoincrement"`
	SessionID  string    `bun:"session_id,notnull,unique"`
	Timestamp  time.Time `bun:"timestamp,notnull"`
	User       string    `bun:"user,notnull"`
	Title      string    `bun:"title"`
	Adaptive   bool      `bun:"adaptive,notnull,default:false"`
	Total      int       `bun:"total,notnull"`
	Correct    int       `bun:"correct,notnull"`
	Incorrect  int       `bun:"incorrect,notnull"`
	Percentage float64   `bun:"percentage,notnull"`
	PerDomain  string    `bun:"per_domain,notnull"`
	WrongIDs   string    `bun:"wrong_question_ids,notnull"`
}

// AnswerRow is one answered question within a stored session, ordered by
// Position.
type AnswerRow struct {
	bun.BaseModel `bun:"table:answers,alias:a"`

	ID         int64  `bun:"id,pk,autoincrement"`
	SessionID  string `bun:"session_id,notnull"`
	Position   int    `bun:"position,notnull"`
	QuestionID int    `bun:"question_id,notnull"`
	Chosen     string `bun:"chosen,notnull"`
	Correct    string `bun:"correct,notnull"`
	IsCorrect  bool   `bun:"is_correct,notnull"`
	Domain     string `bun:"domain,notnull"`
}

// SessionSummary is the compact listing row for the history views.
type SessionSummary struct {
	SessionID  string
	Timestamp  time.Time
	User       string
	Title      string
	Adaptive   bool
	Total      int
	Correct    int
	Percentage float64
}

// HistoryRepo is the persistence boundary the rest of the app talks to.
type HistoryRepo interface {
	// Append stores a finished session result.
	Append(ctx context.Context, sessionID, title string, adaptive bool, res analytics.SessionResult) error

	// List returns stored sessions, newest first. An empty user matches
	// all users; limit 0 means unlimited.
	List(ctx context.Context, user string, limit int) ([]SessionSummary, error)

	// Result reconstructs the full SessionResult for a stored session.
	Result(ctx context.Context, sessionID string) (analytics.SessionResult, error)

	// Latest returns the id of the most recently stored session for user.
	Latest(ctx context.Context, user string) (string, error)

	// DomainTotals aggregates per-domain counts across all of a user's
	// stored sessions.
	DomainTotals(ctx context.Context, user string) (map[string]analytics.DomainCount, error)

	// Reset deletes all stored sessions and answers.
	Reset(ctx context.Context) error
}

type historyRepo struct {
	db *bun.DB
}

func (r *historyRepo) Append(ctx context.Context, sessionID, title string, adaptive bool, res analytics.SessionResult) error {
	perDomain, err := json.Marshal(res.PerDomain)
	if err != nil {
		return fmt.Errorf("encode per-domain stats: %w", err)
	}
	wrong, err := json.Marshal(res.WrongQuestionIDs)
	if err != nil {
		return fmt.Errorf("encode wrong ids: %w", err)
	}

	return r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		row := &SessionRow{
			SessionID:  sessionID,
			Timestamp:  res.Timestamp,
			User:       res.User,
			Title:      title,
			Adaptive:   adaptive,
			Total:      res.Total,
			Correct:    res.Correct,
			Incorrect:  res.Incorrect,
			Percentage: res.Percentage,
			PerDomain:  string(perDomain),
			WrongIDs:   string(wrong),
		}
		if _, err := tx.NewInsert().Model(row).Exec(ctx); err != nil {
			return fmt.Errorf("insert session: %w", err)
		}

		if len(res.Answers) == 0 {
			return nil
		}
		rows := make([]AnswerRow, 0, len(res.Answers))
		for i, a := range res.Answers {
			rows = append(rows, AnswerRow{
				SessionID:  sessionID,
				Position:   i,
				QuestionID: a.QuestionID,
				Chosen:     a.Chosen,
				Correct:    a.Correct,
				IsCorrect:  a.IsCorrect,
				Domain:     a.Domain,
			})
		}
		if _, err := tx.NewInsert().Model(&rows).Exec(ctx); err != nil {
			return fmt.Errorf("insert answers: %w", err)
		}
		return nil
	})
}

func (r *historyRepo) List(ctx context.Context, user string, limit int) ([]SessionSummary, error) {
	var rows []SessionRow
	q := r.db.NewSelect().Model(&rows).OrderExpr("timestamp DESC")
	if user != "" {
		q = q.Where("user = ?", user)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	out := make([]SessionSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, SessionSummary{
			SessionID:  row.SessionID,
			Timestamp:  row.Timestamp,
			User:       row.User,
			Title:      row.Title,
			Adaptive:   row.Adaptive,
			Total:      row.Total,
			Correct:    row.Correct,
			Percentage: row.Percentage,
		})
	}
	return out, nil
}

func (r *historyRepo) Result(ctx context.Context, sessionID string) (analytics.SessionResult, error) {
	var row SessionRow
	err := r.db.NewSelect().Model(&row).Where("session_id = ?", sessionID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return analytics.SessionResult{}, ErrNotFound
	}
	if err != nil {
		return analytics.SessionResult{}, fmt.Errorf("load session: %w", err)
	}

	var perDomain map[string]analytics.DomainCount
	if err := json.Unmarshal([]byte(row.PerDomain), &perDomain); err != nil {
		return analytics.SessionResult{}, fmt.Errorf("decode per-domain stats: %w", err)
	}
	var wrong []int
	if err := json.Unmarshal([]byte(row.WrongIDs), &wrong); err != nil {
		return analytics.SessionResult{}, fmt.Errorf("decode wrong ids: %w", err)
	}

	var answerRows []AnswerRow
	err = r.db.NewSelect().Model(&answerRows).
		Where("session_id = ?", sessionID).
		OrderExpr("position ASC").
		Scan(ctx)
	if err != nil {
		return analytics.SessionResult{}, fmt.Errorf("load answers: %w", err)
	}

	answers := make([]analytics.AnswerRecord, 0, len(answerRows))
	for _, a := range answerRows {
		answers = append(answers, analytics.AnswerRecord{
			QuestionID: a.QuestionID,
			Chosen:     a.Chosen,
			Correct:    a.Correct,
			IsCorrect:  a.IsCorrect,
			Domain:     a.Domain,
		})
	}

	return analytics.SessionResult{
		Timestamp:        row.Timestamp,
		User:             row.User,
		Total:            row.Total,
		Correct:          row.Correct,
		Incorrect:        row.Incorrect,
		Percentage:       row.Percentage,
		PerDomain:        perDomain,
		WrongQuestionIDs: wrong,
		Answers:          answers,
	}, nil
}

func (r *historyRepo) Latest(ctx context.Context, user string) (string, error) {
	var row SessionRow
	q := r.db.NewSelect().Model(&row).OrderExpr("timestamp DESC").Limit(1)
	if user != "" {
		q = q.Where("user = ?", user)
	}
	err := q.Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("latest session: %w", err)
	}
	return row.SessionID, nil
}

func (r *historyRepo) DomainTotals(ctx context.Context, user string) (map[string]analytics.DomainCount, error) {
	var rows []AnswerRow
	q := r.db.NewSelect().Model(&rows)
	if user != "" {
		q = q.Join("JOIN sessions AS s ON s.session_id = a.session_id").
			Where("s.user = ?", user)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("domain totals: %w", err)
	}

	totals := make(map[string]analytics.DomainCount)
	for _, a := range rows {
		d := totals[a.Domain]
		d.Total++
		if a.IsCorrect {
			d.Correct++
		}
		totals[a.Domain] = d
	}
	return totals, nil
}

func (r *historyRepo) Reset(ctx context.Context) error {
	if _, err := r.db.NewDelete().Model((*AnswerRow)(nil)).Where("1 = 1").Exec(ctx); err != nil {
		return fmt.Errorf("delete answers: %w", err)
	}
	if _, err := r.db.NewDelete().Model((*SessionRow)(nil)).Where("1 = 1").Exec(ctx); err != nil {
		return fmt.Errorf("delete sessions: %w", err)
	}
	return nil
}
