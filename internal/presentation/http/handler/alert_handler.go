package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/pos-terminal/internal/application/service"
	"github.com/sangkips/pos-terminal/internal/infrastructure/websocket"
	"github.com/sangkips/pos-terminal/internal/presentation/http/dto/response"
	"github.com/sangkips/pos-terminal/pkg/utils"
)

// AlertHandler serves the alert banner of the cashier screen
type AlertHandler struct {
	alertService *service.AlertService
	hub          *websocket.Hub
	jwtManager   *utils.JWTManager
	sessions     websocket.SessionResolver
}

func NewAlertHandler(alertService *service.AlertService, hub *websocket.Hub, jwtManager *utils.JWTManager, sessions websocket.SessionResolver) *AlertHandler {
	return &AlertHandler{alertService: alertService, hub: hub, jwtManager: jwtManager, sessions: sessions}
}

// Active returns the alert currently shown, or null
// @Summary Active alert
// @Tags alerts
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /pos/alert [get]
func (h *AlertHandler) Active(c *gin.Context) {
	response.OK(c, "Alert retrieved", h.alertService.Active(GetTerminal(c).TerminalID))
}

// @Summary Dismiss alert
// @Tags alerts
// @Security BearerAuth
// @Success 204
// @Router /pos/alert [delete]
func (h *AlertHandler) Dismiss(c *gin.Context) {
	h.alertService.Dismiss(GetTerminal(c).TerminalID)
	response.NoContent(c)
}

// Stream upgrades to a websocket that receives show and dismiss events
// @Summary Alert stream
// @Tags alerts
// @Param token query string true "Terminal token"
// @Router /ws/alerts [get]
func (h *AlertHandler) Stream(c *gin.Context) {
	websocket.ServeWs(h.hub, c, h.jwtManager, h.sessions)
}
