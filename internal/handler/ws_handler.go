package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/tutorium/tutorium-backend/internal/middleware"
	"github.com/tutorium/tutorium-backend/internal/service"
	ws "github.com/tutorium/tutorium-backend/internal/websocket"
)

// overviewPushInterval is how often the stream re-sends the report
// without being asked.
const overviewPushInterval = 30 * time.Second

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
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

// WSHandler handles the live dashboard stream.
type WSHandler struct {
	overviewService *service.OverviewService
	log             zerolog.Logger
	upgrader        websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(overviewService *service.OverviewService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		overviewService: overviewService,
		log:             log.With().Str("component", "ws_handler").Logger(),
		upgrader:        buildUpgrader(allowedOrigins),
	}
}

// OverviewStream godoc
// WS /ws/v1/admin/overview/stream
// Pushes the dashboard report on connect and periodically after that.
// Clients may send {"action":"refresh"} to force a recomputation and
// {"action":"ping"} as a keepalive.
func (h *WSHandler) OverviewStream(c *gin.Context) {
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

	wsLog := h.log.With().Int("admin_id", claims.AdminID).Logger()
	wsLog.Info().Msg("Dashboard stream connected")

	ctx := c.Request.Context()

	// First frame right away so the dashboard renders without waiting
	// for the ticker.
	if err := h.pushReport(c, conn, false); err != nil {
		wsLog.Warn().Err(err).Msg("Initial report push failed")
		return
	}

	// Reader goroutine: client actions arrive here, the writer loop
	// below owns the connection for writes.
	actions := make(chan ws.Action)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var msg ws.RequestEnvelope
			if err := ws.ReadJSON(conn, &msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					wsLog.Warn().Err(err).Msg("Unexpected close")
				} else {
					wsLog.Debug().Msg("Connection closed")
				}
				return
			}
			select {
			case actions <- msg.Action:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(overviewPushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := h.pushReport(c, conn, false); err != nil {
				wsLog.Warn().Err(err).Msg("Periodic report push failed")
				return
			}
		case action := <-actions:
			switch action {
			case ws.ActionPing:
				if err := ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong}); err != nil {
					return
				}
			case ws.ActionRefresh:
				if err := h.pushReport(c, conn, true); err != nil {
					wsLog.Warn().Err(err).Msg("Refresh push failed")
					return
				}
			default:
				wsLog.Warn().Str("action", string(action)).Msg("Unknown action")
				ws.WriteError(conn, "unknown action: "+string(action))
			}
		}
	}
}

// pushReport composes (or fetches the cached) report and writes it as a
// report frame. fresh bypasses the cache.
func (h *WSHandler) pushReport(c *gin.Context, conn *websocket.Conn, fresh bool) error {
	ctx := c.Request.Context()

	var (
		report interface{}
		err    error
	)
	if fresh {
		report, err = h.overviewService.ComputeOverview(ctx)
	} else {
		report, err = h.overviewService.GetOverview(ctx)
	}
	if err != nil {
		ws.WriteError(conn, "report unavailable")
		return err
	}

	return ws.WriteTyped(conn, ws.ReportResponse{Event: ws.EventReport, Report: report})
}
