package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vigilo-exam/vigilo-backend/internal/middleware"
	"github.com/vigilo-exam/vigilo-backend/internal/model"
	"github.com/vigilo-exam/vigilo-backend/internal/response"
	"github.com/vigilo-exam/vigilo-backend/internal/service"
	"github.com/vigilo-exam/vigilo-backend/internal/validator"
)

// SessionHandler handles session status endpoints for the participant.
type SessionHandler struct {
	sessionService *service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// GetStatus godoc
// GET /api/v1/session
// Returns the participant's session status, creating it if absent.
func (h *SessionHandler) GetStatus(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	status, err := h.sessionService.Get(c.Request.Context(), claims.ParticipantID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, status)
}

// Heartbeat godoc
// POST /api/v1/session/heartbeat
// Refreshes the participant's last-activity instant.
func (h *SessionHandler) Heartbeat(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.sessionService.Heartbeat(c.Request.Context(), claims.ParticipantID); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "ok"})
}

// ReportViolation godoc
// POST /api/v1/session/violations
// Records one loss-of-focus event. The response carries the new count and
// whether this event crossed the cancellation threshold.
func (h *SessionHandler) ReportViolation(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var report model.ViolationReport
	if fields := validator.Bind(c, &report); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	count, cancelled, err := h.sessionService.RecordViolation(c.Request.Context(), claims.ParticipantID, report)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"tab_switch_count": count,
		"cancelled":        cancelled,
	})
}
