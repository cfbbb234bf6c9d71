package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/vigilo-exam/vigilo-backend/internal/middleware"
	"github.com/vigilo-exam/vigilo-backend/internal/model"
	"github.com/vigilo-exam/vigilo-backend/internal/response"
	"github.com/vigilo-exam/vigilo-backend/internal/service"
	"github.com/vigilo-exam/vigilo-backend/internal/validator"
)

// ResultHandler handles attempt submission and result retrieval.
type ResultHandler struct {
	resultService *service.ResultService
	examService   *service.ExamService
	log           zerolog.Logger
}

// NewResultHandler creates a new ResultHandler.
func NewResultHandler(resultService *service.ResultService, examService *service.ExamService, log zerolog.Logger) *ResultHandler {
	return &ResultHandler{
		resultService: resultService,
		examService:   examService,
		log:           log.With().Str("component", "result_handler").Logger(),
	}
}

// Submit godoc
// POST /api/v1/results
// Marks each answer against the server-side answer key, scores the attempt,
// flags the session submitted, and persists the record. A session that is
// already submitted or cancelled is not blocked from submitting again;
// records are append-only and the proctor sees all of them.
func (h *ResultHandler) Submit(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.SubmitResultRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	answerKey, err := h.examService.GetAnswerKey(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Answer key unavailable")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	answers := make([]model.Answer, 0, len(req.Answers))
	for _, sub := range req.Answers {
		correct, known := answerKey[sub.QuestionID]
		answers = append(answers, model.Answer{
			QuestionID:     sub.QuestionID,
			SelectedAnswer: sub.SelectedAnswer,
			IsCorrect:      known && sub.SelectedAnswer == correct,
		})
	}

	score, percentage := service.Score(answers)

	status := model.ResultStatus(req.Status)
	if status == "" {
		status = model.ResultStatusCompleted
	}

	res := &model.Result{
		ParticipantID:    claims.ParticipantID,
		ParticipantName:  claims.Name,
		Score:            score,
		TotalQuestions:   len(answers),
		Percentage:       percentage,
		TimeSpentSeconds: req.TimeSpentSeconds,
		Answers:          answers,
		Status:           status,
	}

	id, err := h.resultService.Submit(c.Request.Context(), res)
	if err != nil {
		h.log.Error().Err(err).Str("participant_id", claims.ParticipantID).Msg("Submit failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"id":           id,
		"score":        score,
		"total":        len(answers),
		"percentage":   percentage,
		"grade":        service.GradeFor(percentage),
		"completed_at": res.CompletedAt,
	})
}

// ListOwn godoc
// GET /api/v1/results
// Returns the participant's own results, newest completion first.
func (h *ResultHandler) ListOwn(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	results, err := h.resultService.ResultsFor(c.Request.Context(), claims.ParticipantID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if results == nil {
		results = []model.Result{}
	}

	response.Success(c, http.StatusOK, gin.H{"results": results})
}
