package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/vigilo-exam/vigilo-backend/internal/config"
	"github.com/vigilo-exam/vigilo-backend/internal/model"
	"github.com/vigilo-exam/vigilo-backend/internal/repository"
)

// SessionService maintains the one-per-participant session status record with
// read-or-create semantics, and applies the violation threshold.
type SessionService struct {
	statusRepo *repository.StatusRepository
	rdb        *redis.Client
	window     config.ExamWindow
	log        zerolog.Logger
}

// NewSessionService creates a new SessionService.
func NewSessionService(
	statusRepo *repository.StatusRepository,
	rdb *redis.Client,
	window config.ExamWindow,
	log zerolog.Logger,
) *SessionService {
	return &SessionService{
		statusRepo: statusRepo,
		rdb:        rdb,
		window:     window,
		log:        log.With().Str("component", "session_service").Logger(),
	}
}

// Get returns the participant's session status, creating a default record if
// none exists yet. Absent records and permission-denied reads both fall back
// to the create path; every other failure propagates wrapped.
func (s *SessionService) Get(ctx context.Context, participantID string) (*model.SessionStatus, error) {
	status, err := s.statusRepo.Get(ctx, participantID)
	if err == nil {
		return status, nil
	}
	if !repository.IsRecoverableRead(err) {
		return nil, fmt.Errorf("get session status: %w", err)
	}

	status, err = s.statusRepo.CreateDefault(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("create default session status: %w", err)
	}
	return status, nil
}

// Update merges a partial update into the participant's record, creating it
// with defaults if absent.
func (s *SessionService) Update(ctx context.Context, participantID string, upd model.StatusUpdate) (*model.SessionStatus, error) {
	status, err := s.statusRepo.Upsert(ctx, participantID, upd)
	if err != nil {
		return nil, fmt.Errorf("update session status: %w", err)
	}
	return status, nil
}

// MarkSubmitted flags the session as submitted at the current instant.
func (s *SessionService) MarkSubmitted(ctx context.Context, participantID string) error {
	submitted := true
	now := time.Now()
	if _, err := s.statusRepo.Upsert(ctx, participantID, model.StatusUpdate{
		HasSubmitted:   &submitted,
		SubmissionDate: &now,
	}); err != nil {
		return fmt.Errorf("mark submitted: %w", err)
	}
	return nil
}

// Cancel flags the session as cancelled. It does not block later writes; the
// flag is advisory state the presentation layer must honor.
func (s *SessionService) Cancel(ctx context.Context, participantID string) error {
	cancelled := true
	if _, err := s.statusRepo.Upsert(ctx, participantID, model.StatusUpdate{
		IsTestCancelled: &cancelled,
	}); err != nil {
		return fmt.Errorf("cancel session: %w", err)
	}
	return nil
}

// Heartbeat refreshes the participant's last-activity instant.
func (s *SessionService) Heartbeat(ctx context.Context, participantID string) error {
	if err := s.statusRepo.Touch(ctx, participantID); err != nil {
		return fmt.Errorf("heartbeat: %w", err)
	}
	return nil
}

// RecordViolation registers one loss-of-focus event: the counter is bumped
// atomically in the store, the raw event is queued for the audit worker, and
// the session is cancelled once the count exceeds the configured threshold.
// With a threshold of 5 the cancelling violation is the 6th, not the 5th.
func (s *SessionService) RecordViolation(ctx context.Context, participantID string, report model.ViolationReport) (count int, cancelled bool, err error) {
	count, err = s.statusRepo.IncrementViolations(ctx, participantID)
	if err != nil {
		return 0, false, fmt.Errorf("increment violations: %w", err)
	}

	s.queueAuditEvent(ctx, participantID, report, count)

	if count > s.window.ViolationThreshold {
		if err := s.Cancel(ctx, participantID); err != nil {
			return count, false, err
		}
		cancelled = true
		s.log.Warn().
			Str("participant_id", participantID).
			Int("count", count).
			Msg("Violation threshold exceeded, session cancelled")
	}

	return count, cancelled, nil
}

// AllStatuses returns every session status for proctor monitoring.
func (s *SessionService) AllStatuses(ctx context.Context) ([]model.SessionStatus, error) {
	statuses, err := s.statusRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list session statuses: %w", err)
	}
	return statuses, nil
}

// queueAuditEvent pushes the raw violation to the persist queue. Best effort:
// the counter in PostgreSQL is already authoritative, so a queue failure is
// logged and dropped rather than failing the request.
func (s *SessionService) queueAuditEvent(ctx context.Context, participantID string, report model.ViolationReport, count int) {
	payload, _ := json.Marshal(map[string]interface{}{
		"participant_id": participantID,
		"kind":           report.Kind,
		"detail":         report.Detail,
		"count":          count,
		"occurred_at":    time.Now().Unix(),
	})
	if err := s.rdb.RPush(ctx, config.WorkerKey.PersistViolationsQueue, payload).Err(); err != nil {
		s.log.Error().Err(err).Str("participant_id", participantID).Msg("Failed to queue violation audit event")
	}
}
