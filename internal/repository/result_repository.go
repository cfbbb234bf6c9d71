package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vigilo-exam/vigilo-backend/internal/model"
)

// ResultRepository handles result record data access. Records are
// append-only; re-attempts accumulate rows.
type ResultRepository struct {
	pool *pgxpool.Pool
}

// NewResultRepository creates a new ResultRepository.
func NewResultRepository(pool *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{pool: pool}
}

// Insert persists a new result record. The store assigns the id and forces
// completed_at to the moment of persistence, ignoring whatever the caller
// put in res. Both are written back into res.
func (r *ResultRepository) Insert(ctx context.Context, res *model.Result) (uuid.UUID, error) {
	answersJSON, err := json.Marshal(res.Answers)
	if err != nil {
		return uuid.Nil, fmt.Errorf("marshal answers: %w", err)
	}

	err = r.pool.QueryRow(ctx,
		`INSERT INTO results (participant_id, participant_name, score, total_questions, percentage, time_spent_seconds, answers, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, completed_at`,
		res.ParticipantID, res.ParticipantName, res.Score, res.TotalQuestions,
		res.Percentage, res.TimeSpentSeconds, answersJSON, res.Status,
	).Scan(&res.ID, &res.CompletedAt)
	if err != nil {
		return uuid.Nil, err
	}
	return res.ID, nil
}

// ListByParticipant retrieves all result records for one participant.
// The query is deliberately unordered; ResultService applies the documented
// completed_at-descending sort.
func (r *ResultRepository) ListByParticipant(ctx context.Context, participantID string) ([]model.Result, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, participant_id, participant_name, score, total_questions, percentage, time_spent_seconds, answers, completed_at, status
		 FROM results
		 WHERE participant_id = $1`, participantID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanResults(rows)
}

// ListAll retrieves every result record, newest completion first, using the
// store's native ordering.
func (r *ResultRepository) ListAll(ctx context.Context) ([]model.Result, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, participant_id, participant_name, score, total_questions, percentage, time_spent_seconds, answers, completed_at, status
		 FROM results
		 ORDER BY completed_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanResults(rows)
}

type resultRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanResults(rows resultRows) ([]model.Result, error) {
	var results []model.Result
	for rows.Next() {
		var (
			res         model.Result
			answersJSON []byte
			completedAt time.Time
		)
		if err := rows.Scan(
			&res.ID, &res.ParticipantID, &res.ParticipantName, &res.Score,
			&res.TotalQuestions, &res.Percentage, &res.TimeSpentSeconds,
			&answersJSON, &completedAt, &res.Status,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(answersJSON, &res.Answers); err != nil {
			return nil, fmt.Errorf("unmarshal answers: %w", err)
		}
		res.CompletedAt = completedAt
		results = append(results, res)
	}
	return results, rows.Err()
}
