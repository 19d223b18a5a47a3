package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/pos-terminal/internal/application/service"
	"github.com/sangkips/pos-terminal/internal/presentation/http/dto/request"
)

// PaymentHandler handles the payment dialog of an invoice
type PaymentHandler struct {
	sessionService *service.SessionService
}

func NewPaymentHandler(sessionService *service.SessionService) *PaymentHandler {
	return &PaymentHandler{sessionService: sessionService}
}

// Open returns totals, collected payments and the available methods
// @Summary Open payment
// @Tags payment
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /pos/payments [get]
func (h *PaymentHandler) Open(c *gin.Context) {
	v, err := h.sessionService.OpenPayment(c.Request.Context(), GetTerminal(c))
	view(c, "Payment opened", v, err)
}

// @Summary Add payment
// @Tags payment
// @Accept json
// @Security BearerAuth
// @Param request body request.AddPaymentRequest true "Payment"
// @Success 200 {object} response.APIResponse
// @Router /pos/payments [post]
func (h *PaymentHandler) Add(c *gin.Context) {
	var req request.AddPaymentRequest
	if !bind(c, &req) {
		return
	}
	v, err := h.sessionService.AddPayment(c.Request.Context(), GetTerminal(c), service.AddPaymentInput{
		TypeKey:       req.TypeKey,
		Amount:        req.Amount,
		BankReference: req.BankReference,
	})
	view(c, "Payment added", v, err)
}

// @Summary Remove payment
// @Tags payment
// @Security BearerAuth
// @Param index path int true "Payment position"
// @Success 200 {object} response.APIResponse
// @Router /pos/payments/{index} [delete]
func (h *PaymentHandler) Remove(c *gin.Context) {
	index, ok := lineIndex(c)
	if !ok {
		return
	}
	v, err := h.sessionService.RemovePayment(c.Request.Context(), GetTerminal(c), index)
	view(c, "Payment removed", v, err)
}
