package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vigilo-exam/vigilo-backend/internal/model"
)

// pgInsufficientPrivilege is the SQLSTATE for permission-denied errors.
const pgInsufficientPrivilege = "42501"

// StatusRepository handles session status data access. Every write is an
// upsert keyed by participant id, so callers never have to care whether the
// record exists yet.
type StatusRepository struct {
	pool *pgxpool.Pool
}

// NewStatusRepository creates a new StatusRepository.
func NewStatusRepository(pool *pgxpool.Pool) *StatusRepository {
	return &StatusRepository{pool: pool}
}

// IsRecoverableRead reports whether a read failure should be recovered by
// creating a default record: the record being absent, or the read being
// denied outright.
func IsRecoverableRead(err error) bool {
	if errors.Is(err, pgx.ErrNoRows) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgInsufficientPrivilege
}

// Get retrieves the raw session status row. Returns pgx.ErrNoRows when the
// participant has no record yet; callers decide whether to fall back.
func (r *StatusRepository) Get(ctx context.Context, participantID string) (*model.SessionStatus, error) {
	s := &model.SessionStatus{}
	err := r.pool.QueryRow(ctx,
		`SELECT participant_id, has_submitted, submission_date, tab_switch_count, is_test_cancelled, last_activity
		 FROM session_statuses
		 WHERE participant_id = $1`, participantID,
	).Scan(&s.ParticipantID, &s.HasSubmitted, &s.SubmissionDate, &s.TabSwitchCount, &s.IsTestCancelled, &s.LastActivity)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// CreateDefault inserts a fresh default record and returns it. If another
// writer created the row first, the existing row is returned untouched apart
// from a refreshed last_activity.
func (r *StatusRepository) CreateDefault(ctx context.Context, participantID string) (*model.SessionStatus, error) {
	s := &model.SessionStatus{}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO session_statuses (participant_id)
		 VALUES ($1)
		 ON CONFLICT (participant_id) DO UPDATE SET last_activity = NOW()
		 RETURNING participant_id, has_submitted, submission_date, tab_switch_count, is_test_cancelled, last_activity`,
		participantID,
	).Scan(&s.ParticipantID, &s.HasSubmitted, &s.SubmissionDate, &s.TabSwitchCount, &s.IsTestCancelled, &s.LastActivity)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Upsert merges the non-nil fields of upd into the participant's record,
// creating it with defaults first if absent. last_activity is always
// refreshed.
func (r *StatusRepository) Upsert(ctx context.Context, participantID string, upd model.StatusUpdate) (*model.SessionStatus, error) {
	s := &model.SessionStatus{}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO session_statuses (participant_id, has_submitted, submission_date, is_test_cancelled)
		 VALUES ($1, COALESCE($2, FALSE), $3, COALESCE($4, FALSE))
		 ON CONFLICT (participant_id) DO UPDATE SET
		   has_submitted     = COALESCE($2, session_statuses.has_submitted),
		   submission_date   = COALESCE($3, session_statuses.submission_date),
		   is_test_cancelled = COALESCE($4, session_statuses.is_test_cancelled),
		   last_activity     = NOW()
		 RETURNING participant_id, has_submitted, submission_date, tab_switch_count, is_test_cancelled, last_activity`,
		participantID, upd.HasSubmitted, upd.SubmissionDate, upd.IsTestCancelled,
	).Scan(&s.ParticipantID, &s.HasSubmitted, &s.SubmissionDate, &s.TabSwitchCount, &s.IsTestCancelled, &s.LastActivity)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// IncrementViolations bumps the tab switch counter by one and returns the new
// count. The increment happens inside the store, so concurrent calls can
// never lose an update the way a read-then-write would.
func (r *StatusRepository) IncrementViolations(ctx context.Context, participantID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`INSERT INTO session_statuses (participant_id, tab_switch_count)
		 VALUES ($1, 1)
		 ON CONFLICT (participant_id) DO UPDATE SET
		   tab_switch_count = session_statuses.tab_switch_count + 1,
		   last_activity    = NOW()
		 RETURNING tab_switch_count`,
		participantID,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Touch refreshes last_activity only, creating the record if absent.
func (r *StatusRepository) Touch(ctx context.Context, participantID string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO session_statuses (participant_id)
		 VALUES ($1)
		 ON CONFLICT (participant_id) DO UPDATE SET last_activity = NOW()`,
		participantID,
	)
	return err
}

// ListAll retrieves every session status, most recently active first.
// Used by the proctor monitoring endpoint.
func (r *StatusRepository) ListAll(ctx context.Context) ([]model.SessionStatus, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT participant_id, has_submitted, submission_date, tab_switch_count, is_test_cancelled, last_activity
		 FROM session_statuses
		 ORDER BY last_activity DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var statuses []model.SessionStatus
	for rows.Next() {
		var s model.SessionStatus
		if err := rows.Scan(&s.ParticipantID, &s.HasSubmitted, &s.SubmissionDate, &s.TabSwitchCount, &s.IsTestCancelled, &s.LastActivity); err != nil {
			return nil, err
		}
		statuses = append(statuses, s)
	}
	return statuses, rows.Err()
}
