package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vigilo-exam/vigilo-backend/internal/middleware"
	"github.com/vigilo-exam/vigilo-backend/internal/response"
	"github.com/vigilo-exam/vigilo-backend/internal/service"
)

// ExamHandler handles exam window and paper endpoints.
type ExamHandler struct {
	examService    *service.ExamService
	sessionService *service.SessionService
}

// NewExamHandler creates a new ExamHandler.
func NewExamHandler(examService *service.ExamService, sessionService *service.SessionService) *ExamHandler {
	return &ExamHandler{
		examService:    examService,
		sessionService: sessionService,
	}
}

// GetWindow godoc
// GET /api/v1/exam/window
// Public availability check for the lobby screen.
func (h *ExamHandler) GetWindow(c *gin.Context) {
	response.Success(c, http.StatusOK, h.examService.WindowInfo())
}

// GetPaper godoc
// GET /api/v1/exam/paper
// Returns the participant's personalized question order, without correct
// answers. Gated on the entry window; reading the paper also materializes
// the participant's session status record.
func (h *ExamHandler) GetPaper(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if !h.examService.Window().IsAvailable() {
		response.Fail(c, http.StatusForbidden, response.ErrExamNotOpen)
		return
	}

	// Read-or-create: entering the exam creates the status record lazily.
	status, err := h.sessionService.Get(c.Request.Context(), claims.ParticipantID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	paper, err := h.examService.GetPaper(c.Request.Context(), claims.ParticipantID)
	if err != nil {
		if err == service.ErrNoQuestions {
			response.Fail(c, http.StatusNotFound, response.ErrNoQuestions)
		} else {
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"questions": paper,
		"session":   status,
	})
}
