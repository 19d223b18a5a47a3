package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/pos-terminal/internal/application/service"
	"github.com/sangkips/pos-terminal/internal/presentation/http/dto/request"
)

// CashHandler handles the cash drawer of the terminal
type CashHandler struct {
	cashService *service.CashService
}

func NewCashHandler(cashService *service.CashService) *CashHandler {
	return &CashHandler{cashService: cashService}
}

// @Summary Cash balance
// @Tags cash
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /pos/cash [get]
func (h *CashHandler) Balance(c *gin.Context) {
	balance, err := h.cashService.Balance(c.Request.Context(), GetTerminal(c))
	view(c, "Cash balance retrieved", balance, err)
}

// @Summary Close cash drawer
// @Tags cash
// @Accept json
// @Security BearerAuth
// @Param request body request.CloseCashRequest true "Counted cash"
// @Success 200 {object} response.APIResponse
// @Router /pos/cash/close [post]
func (h *CashHandler) Close(c *gin.Context) {
	var req request.CloseCashRequest
	if !bind(c, &req) {
		return
	}
	result, err := h.cashService.Close(c.Request.Context(), GetTerminal(c), req.Counted, req.Note)
	view(c, "Cash drawer closed", result, err)
}
