package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vigilo-exam/vigilo-backend/internal/model"
	"github.com/vigilo-exam/vigilo-backend/internal/response"
	"github.com/vigilo-exam/vigilo-backend/internal/service"
)

// ProctorHandler serves the proctor monitoring surface, guarded by the
// proctor key middleware.
type ProctorHandler struct {
	resultService  *service.ResultService
	sessionService *service.SessionService
}

// NewProctorHandler creates a new ProctorHandler.
func NewProctorHandler(resultService *service.ResultService, sessionService *service.SessionService) *ProctorHandler {
	return &ProctorHandler{
		resultService:  resultService,
		sessionService: sessionService,
	}
}

// ListResults godoc
// GET /api/v1/proctor/results
// All result records, newest completion first (store-side ordering).
func (h *ProctorHandler) ListResults(c *gin.Context) {
	results, err := h.resultService.AllResults(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if results == nil {
		results = []model.Result{}
	}

	response.Success(c, http.StatusOK, gin.H{"results": results})
}

// ListSessions godoc
// GET /api/v1/proctor/sessions
// Every session status record, most recently active first.
func (h *ProctorHandler) ListSessions(c *gin.Context) {
	statuses, err := h.sessionService.AllStatuses(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if statuses == nil {
		statuses = []model.SessionStatus{}
	}

	response.Success(c, http.StatusOK, gin.H{"sessions": statuses})
}
