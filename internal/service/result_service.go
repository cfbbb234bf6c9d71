package service

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/vigilo-exam/vigilo-backend/internal/model"
	"github.com/vigilo-exam/vigilo-backend/internal/repository"
)

// Score counts correct answers and derives the rounded percentage.
// An empty answer set scores 0 percent rather than dividing by zero.
func Score(answers []model.Answer) (score, percentage int) {
	for _, a := range answers {
		if a.IsCorrect {
			score++
		}
	}
	total := len(answers)
	if total == 0 {
		return 0, 0
	}
	percentage = int(math.Round(float64(score) / float64(total) * 100))
	return score, percentage
}

// Grade is a letter grade with its descriptive label.
type Grade struct {
	Letter string `json:"letter"`
	Label  string `json:"label"`
}

// gradeScale maps inclusive lower percentage bounds to grades, highest first.
var gradeScale = []struct {
	min   int
	grade Grade
}{
	{90, Grade{"A+", "Outstanding"}},
	{80, Grade{"A", "Excellent"}},
	{70, Grade{"B+", "Good"}},
	{60, Grade{"B", "Above Average"}},
	{50, Grade{"C", "Average"}},
}

// GradeFor maps a percentage to its letter grade.
func GradeFor(percentage int) Grade {
	for _, step := range gradeScale {
		if percentage >= step.min {
			return step.grade
		}
	}
	return Grade{"F", "Fail"}
}

// ResultService scores finished attempts and persists result records. It
// holds the SessionService explicitly so marking a session submitted is a
// direct call, not something smuggled in through shared state.
type ResultService struct {
	resultRepo *repository.ResultRepository
	sessions   *SessionService
	log        zerolog.Logger
}

// NewResultService creates a new ResultService.
func NewResultService(resultRepo *repository.ResultRepository, sessions *SessionService, log zerolog.Logger) *ResultService {
	return &ResultService{
		resultRepo: resultRepo,
		sessions:   sessions,
		log:        log.With().Str("component", "result_service").Logger(),
	}
}

// Submit marks the participant's session submitted, then persists the result.
// The store assigns the record id and overwrites completed_at with the moment
// of persistence; any caller-supplied completion instant is discarded.
// Failures are never recovered here — every one propagates to the caller.
func (s *ResultService) Submit(ctx context.Context, res *model.Result) (uuid.UUID, error) {
	if err := s.sessions.MarkSubmitted(ctx, res.ParticipantID); err != nil {
		return uuid.Nil, err
	}

	id, err := s.resultRepo.Insert(ctx, res)
	if err != nil {
		return uuid.Nil, fmt.Errorf("persist result: %w", err)
	}

	s.log.Info().
		Str("participant_id", res.ParticipantID).
		Str("result_id", id.String()).
		Int("score", res.Score).
		Int("percentage", res.Percentage).
		Msg("Result recorded")

	return id, nil
}

// ResultsFor returns the participant's results, newest completion first.
// The underlying query is unordered; the stable sort happens here.
func (s *ResultService) ResultsFor(ctx context.Context, participantID string) ([]model.Result, error) {
	results, err := s.resultRepo.ListByParticipant(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CompletedAt.After(results[j].CompletedAt)
	})
	return results, nil
}

// AllResults returns every result record, using the store's native
// completed_at-descending ordering.
func (s *ResultService) AllResults(ctx context.Context) ([]model.Result, error) {
	results, err := s.resultRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list all results: %w", err)
	}
	return results, nil
}
