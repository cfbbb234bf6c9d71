package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/vigilo-exam/vigilo-backend/internal/config"
	"github.com/vigilo-exam/vigilo-backend/internal/model"
	"github.com/vigilo-exam/vigilo-backend/internal/repository"
)

// Domain errors.
var (
	ErrNoQuestions = errors.New("question catalog is empty")
	ErrExamClosed  = errors.New("exam is not currently open")
)

// WindowInfo is the public availability payload.
type WindowInfo struct {
	Available       bool      `json:"available"`
	Active          bool      `json:"active"`
	StartsAt        time.Time `json:"starts_at"`
	EndsAt          time.Time `json:"ends_at"`
	DurationMinutes int       `json:"duration_minutes"`
}

// ExamService owns the exam window, the immutable question catalog, and the
// Redis caches derived from it.
type ExamService struct {
	window       config.ExamWindow
	questionRepo *repository.QuestionRepository
	rdb          *redis.Client
	log          zerolog.Logger

	// catalog is loaded once by WarmCatalog and never mutated afterwards.
	catalog []model.Question
}

// NewExamService creates a new ExamService.
func NewExamService(
	window config.ExamWindow,
	questionRepo *repository.QuestionRepository,
	rdb *redis.Client,
	log zerolog.Logger,
) *ExamService {
	return &ExamService{
		window:       window,
		questionRepo: questionRepo,
		rdb:          rdb,
		log:          log.With().Str("component", "exam_service").Logger(),
	}
}

// Window returns the configured exam window.
func (s *ExamService) Window() config.ExamWindow {
	return s.window
}

// WindowInfo builds the availability payload against the wall clock.
func (s *ExamService) WindowInfo() WindowInfo {
	return WindowInfo{
		Available:       s.window.IsAvailable(),
		Active:          s.window.Active,
		StartsAt:        s.window.StartsAt,
		EndsAt:          s.window.EndsAt(),
		DurationMinutes: int(s.window.Duration / time.Minute),
	}
}

// WarmCatalog loads the question catalog from PostgreSQL into memory and
// primes the Redis caches (participant payload + answer key). Called once at
// startup, before traffic is accepted.
func (s *ExamService) WarmCatalog(ctx context.Context) error {
	questions, err := s.questionRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list questions: %w", err)
	}
	if len(questions) == 0 {
		return ErrNoQuestions
	}
	s.catalog = questions

	participantQuestions := make([]model.QuestionForParticipant, len(questions))
	for i, q := range questions {
		participantQuestions[i] = q.ForParticipant()
	}

	payload := model.ExamPayload{
		Title:           "Proctored Exam",
		DurationMinutes: int(s.window.Duration / time.Minute),
		Questions:       participantQuestions,
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	answerKey := make(map[string]interface{}, len(questions))
	for _, q := range questions {
		answerKey[q.ID] = q.CorrectOption
	}

	pipe := s.rdb.Pipeline()
	pipe.Set(ctx, config.CacheKey.ExamPayloadKey(), payloadJSON, 0)
	pipe.Del(ctx, config.CacheKey.ExamAnswerKey())
	pipe.HSet(ctx, config.CacheKey.ExamAnswerKey(), answerKey)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache to redis: %w", err)
	}

	s.log.Info().Int("questions", len(questions)).Msg("Catalog warmed")
	return nil
}

// GetPaper returns the participant's personalized paper: the catalog in the
// participant's deterministic order, without correct answers. The computed
// order is cached in Redis so the proctor can audit what a participant saw;
// a cache miss just recomputes the identical order.
func (s *ExamService) GetPaper(ctx context.Context, participantID string) ([]model.QuestionForParticipant, error) {
	if len(s.catalog) == 0 {
		return nil, ErrNoQuestions
	}

	shuffled := ShuffleQuestions(s.catalog, participantID)

	orderKey := config.CacheKey.ParticipantOrderKey(participantID)
	if _, err := s.rdb.Get(ctx, orderKey).Result(); err != nil {
		if errors.Is(err, redis.Nil) {
			order := make([]string, len(shuffled))
			for i, q := range shuffled {
				order[i] = q.ID
			}
			orderJSON, _ := json.Marshal(order)
			if err := s.rdb.Set(ctx, orderKey, orderJSON, 0).Err(); err != nil {
				s.log.Warn().Err(err).Str("participant_id", participantID).Msg("Failed to cache question order")
			}
		} else {
			// A Redis failure must not block the paper; the order is
			// recomputable.
			s.log.Warn().Err(err).Str("participant_id", participantID).Msg("Question order cache read failed")
		}
	}

	paper := make([]model.QuestionForParticipant, len(shuffled))
	for i, q := range shuffled {
		paper[i] = q.ForParticipant()
	}
	return paper, nil
}

// GetAnswerKey returns the question id → correct option index map from Redis.
func (s *ExamService) GetAnswerKey(ctx context.Context) (map[string]int, error) {
	raw, err := s.rdb.HGetAll(ctx, config.CacheKey.ExamAnswerKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("get answer key: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("answer key not cached")
	}

	key := make(map[string]int, len(raw))
	for qID, v := range raw {
		var idx int
		if _, err := fmt.Sscanf(v, "%d", &idx); err != nil {
			return nil, fmt.Errorf("invalid answer key entry for %s: %w", qID, err)
		}
		key[qID] = idx
	}
	return key, nil
}

// QuestionCount reports the catalog size.
func (s *ExamService) QuestionCount() int {
	return len(s.catalog)
}
