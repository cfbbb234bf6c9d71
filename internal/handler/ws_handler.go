package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/vigilo-exam/vigilo-backend/internal/middleware"
	"github.com/vigilo-exam/vigilo-backend/internal/model"
	"github.com/vigilo-exam/vigilo-backend/internal/service"
	ws "github.com/vigilo-exam/vigilo-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allowedOrigins slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams the proctoring channel: the client pushes visibility
// events as they happen and learns immediately when the attempt is cancelled.
type WSHandler struct {
	sessionService *service.SessionService
	log            zerolog.Logger
	upgrader       websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(sessionService *service.SessionService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		sessionService: sessionService,
		log:            log.With().Str("component", "ws_handler").Logger(),
		upgrader:       buildUpgrader(allowedOrigins),
	}
}

// ExamStream godoc
// WS /ws/v1/exam/stream
// Upgrades to WebSocket for low-latency violation reporting.
func (h *WSHandler) ExamStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().
		Str("participant_id", claims.ParticipantID).
		Logger()

	wsLog.Info().Msg("Participant connected")

	for {
		var msg ws.RequestPayload
		err := ws.ReadJSON(conn, &msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			break
		}

		switch msg.Action {
		case ws.ActionPing:
			ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
		case ws.ActionHeartbeat:
			h.handleHeartbeat(conn, wsLog, claims.ParticipantID)
		case ws.ActionViolation:
			h.handleViolation(conn, wsLog, claims.ParticipantID, &msg)
		default:
			wsLog.Warn().Str("action", string(msg.Action)).Msg("Unknown action")
			ws.WriteError(conn, "unknown action: "+string(msg.Action))
		}
	}
}

func (h *WSHandler) handleHeartbeat(conn *websocket.Conn, wsLog zerolog.Logger, participantID string) {
	if err := h.sessionService.Heartbeat(context.Background(), participantID); err != nil {
		wsLog.Error().Err(err).Msg("Heartbeat failed")
		ws.WriteError(conn, "heartbeat failed")
		return
	}
	ws.WriteTyped(conn, ws.AckResponse{Event: ws.EventAck})
}

func (h *WSHandler) handleViolation(conn *websocket.Conn, wsLog zerolog.Logger, participantID string, msg *ws.RequestPayload) {
	report := model.ViolationReport{Kind: msg.Kind, Detail: msg.Detail}

	count, cancelled, err := h.sessionService.RecordViolation(context.Background(), participantID, report)
	if err != nil {
		wsLog.Error().Err(err).Msg("Record violation failed")
		ws.WriteError(conn, "violation not recorded")
		return
	}

	event := ws.EventAck
	if cancelled {
		event = ws.EventCancelled
	}
	ws.WriteTyped(conn, ws.ViolationAck{
		Event:          event,
		TabSwitchCount: count,
		Cancelled:      cancelled,
	})
}
