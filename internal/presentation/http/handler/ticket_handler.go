package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/pos-terminal/internal/application/service"
	"github.com/sangkips/pos-terminal/internal/domain/enum"
	"github.com/sangkips/pos-terminal/internal/presentation/http/dto/request"
	"github.com/sangkips/pos-terminal/internal/presentation/http/dto/response"
	"github.com/sangkips/pos-terminal/pkg/pagination"
)

// TicketHandler saves, suspends and resumes documents
type TicketHandler struct {
	sessionService *service.SessionService
}

func NewTicketHandler(sessionService *service.SessionService) *TicketHandler {
	return &TicketHandler{sessionService: sessionService}
}

// Finalize saves the document as a closed sale
// @Summary Finalize
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Retry key"
// @Success 201 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /pos/finalize [post]
func (h *TicketHandler) Finalize(c *gin.Context) {
	result, err := h.sessionService.Finalize(c.Request.Context(), GetTerminal(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Document saved", result)
}

// Suspend parks the document on the backend
// @Summary Suspend
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Retry key"
// @Success 201 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /pos/suspend [post]
func (h *TicketHandler) Suspend(c *gin.Context) {
	saved, err := h.sessionService.Suspend(c.Request.Context(), GetTerminal(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Ticket suspended", saved)
}

// Resume loads a stored ticket as the current document
// @Summary Resume ticket
// @Tags tickets
// @Security BearerAuth
// @Param id path string true "Ticket ID"
// @Success 200 {object} response.APIResponse
// @Router /pos/tickets/{id}/resume [post]
func (h *TicketHandler) Resume(c *gin.Context) {
	v, err := h.sessionService.Resume(c.Request.Context(), GetTerminal(c), c.Param("id"))
	view(c, "Ticket resumed", v, err)
}

// @Summary List suspended tickets
// @Tags tickets
// @Security BearerAuth
// @Param search query string false "Search"
// @Param page query int false "Page"
// @Param per_page query int false "Items per page"
// @Success 200 {object} response.APIResponse
// @Router /pos/tickets/suspended [get]
func (h *TicketHandler) ListSuspended(c *gin.Context) {
	h.list(c, enum.TicketModeSuspended)
}

// @Summary List finalized tickets
// @Tags tickets
// @Security BearerAuth
// @Param search query string false "Search"
// @Param page query int false "Page"
// @Param per_page query int false "Items per page"
// @Success 200 {object} response.APIResponse
// @Router /pos/tickets/history [get]
func (h *TicketHandler) ListHistory(c *gin.Context) {
	h.list(c, enum.TicketModeFinalized)
}

func (h *TicketHandler) list(c *gin.Context, mode enum.TicketMode) {
	var req request.TicketListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	result, err := h.sessionService.ListTickets(c.Request.Context(), GetTerminal(c), mode, req.Search, &pagination.PaginationParams{
		Page:    req.Page,
		PerPage: req.PerPage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Tickets retrieved", result)
}

// @Summary Last ticket
// @Tags tickets
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /pos/tickets/last [get]
func (h *TicketHandler) Last(c *gin.Context) {
	data, err := h.sessionService.LastTicket(c.Request.Context(), GetTerminal(c))
	view(c, "Last ticket retrieved", data, err)
}

// Reprint prints the last ticket again. The ticket data is returned even
// when the printer fails.
// @Summary Reprint last ticket
// @Tags tickets
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /pos/tickets/last/print [post]
func (h *TicketHandler) Reprint(c *gin.Context) {
	data, err := h.sessionService.ReprintLast(c.Request.Context(), GetTerminal(c))
	if err != nil && data == nil {
		response.Error(c, err)
		return
	}
	if err != nil {
		response.OK(c, "Ticket generated but printing failed", gin.H{"ticket": data, "warning": err.Error()})
		return
	}
	response.OK(c, "Ticket sent to printer", gin.H{"ticket": data})
}
