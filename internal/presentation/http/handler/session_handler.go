package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/pos-terminal/internal/application/service"
	"github.com/sangkips/pos-terminal/internal/presentation/http/dto/request"
	"github.com/sangkips/pos-terminal/internal/presentation/http/dto/response"
	"github.com/sangkips/pos-terminal/pkg/apperror"
)

// SessionHandler exposes the in-progress document of the terminal
type SessionHandler struct {
	sessionService *service.SessionService
}

func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// Current returns the in-progress document
// @Summary Current document
// @Tags session
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /pos/document [get]
func (h *SessionHandler) Current(c *gin.Context) {
	response.OK(c, "Document retrieved", h.sessionService.Current(c.Request.Context(), GetTerminal(c)))
}

// NewSale discards the current document
// @Summary New sale
// @Tags session
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /pos/document/new [post]
func (h *SessionHandler) NewSale(c *gin.Context) {
	v, err := h.sessionService.NewSale(c.Request.Context(), GetTerminal(c))
	view(c, "New sale started", v, err)
}

// SetDocumentType switches between quote, order and invoice
// @Summary Set document type
// @Tags session
// @Accept json
// @Security BearerAuth
// @Param request body request.SetDocumentTypeRequest true "Document type"
// @Success 200 {object} response.APIResponse
// @Router /pos/document/type [put]
func (h *SessionHandler) SetDocumentType(c *gin.Context) {
	var req request.SetDocumentTypeRequest
	if !bind(c, &req) {
		return
	}
	t, err := req.DocumentType()
	if err != nil {
		response.ValidationError(c, []apperror.FieldError{{Field: "type", Message: "Type must be quote, order or invoice"}})
		return
	}
	v, err := h.sessionService.SetDocumentType(c.Request.Context(), GetTerminal(c), t)
	view(c, "Document type changed", v, err)
}

// RevalidateStock re-runs the stock check of an invoice
// @Summary Revalidate stock
// @Tags session
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /pos/document/revalidate [post]
func (h *SessionHandler) RevalidateStock(c *gin.Context) {
	v, err := h.sessionService.RevalidateStock(c.Request.Context(), GetTerminal(c))
	view(c, "Stock revalidated", v, err)
}

// AddLine adds one unit of a product
// @Summary Add product
// @Tags cart
// @Accept json
// @Security BearerAuth
// @Param request body request.AddLineRequest true "Product"
// @Success 200 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /pos/document/lines [post]
func (h *SessionHandler) AddLine(c *gin.Context) {
	var req request.AddLineRequest
	if !bind(c, &req) {
		return
	}
	v, err := h.sessionService.AddLine(c.Request.Context(), GetTerminal(c), req.ProductID)
	view(c, "Product added", v, err)
}

// @Summary Set line quantity
// @Tags cart
// @Accept json
// @Security BearerAuth
// @Param index path int true "Line position"
// @Param request body request.SetQuantityRequest true "Quantity"
// @Success 200 {object} response.APIResponse
// @Router /pos/document/lines/{index}/quantity [put]
func (h *SessionHandler) SetQuantity(c *gin.Context) {
	index, ok := lineIndex(c)
	if !ok {
		return
	}
	var req request.SetQuantityRequest
	if !bind(c, &req) {
		return
	}
	v, err := h.sessionService.SetQuantity(c.Request.Context(), GetTerminal(c), index, req.Quantity)
	view(c, "Quantity updated", v, err)
}

// @Summary Set line discount
// @Tags cart
// @Accept json
// @Security BearerAuth
// @Param index path int true "Line position"
// @Param request body request.SetDiscountRequest true "Discount percent"
// @Success 200 {object} response.APIResponse
// @Router /pos/document/lines/{index}/discount [put]
func (h *SessionHandler) SetDiscount(c *gin.Context) {
	index, ok := lineIndex(c)
	if !ok {
		return
	}
	var req request.SetDiscountRequest
	if !bind(c, &req) {
		return
	}
	v, err := h.sessionService.SetDiscount(c.Request.Context(), GetTerminal(c), index, req.Percent)
	view(c, "Discount updated", v, err)
}

// @Summary Set line subtotal
// @Tags cart
// @Accept json
// @Security BearerAuth
// @Param index path int true "Line position"
// @Param request body request.SetSubtotalRequest true "Discounted subtotal"
// @Success 200 {object} response.APIResponse
// @Router /pos/document/lines/{index}/subtotal [put]
func (h *SessionHandler) SetSubtotal(c *gin.Context) {
	index, ok := lineIndex(c)
	if !ok {
		return
	}
	var req request.SetSubtotalRequest
	if !bind(c, &req) {
		return
	}
	v, err := h.sessionService.SetSubtotal(c.Request.Context(), GetTerminal(c), index, req.Subtotal)
	view(c, "Subtotal updated", v, err)
}

// @Summary Set line note
// @Tags cart
// @Accept json
// @Security BearerAuth
// @Param index path int true "Line position"
// @Param request body request.NoteRequest true "Note"
// @Success 200 {object} response.APIResponse
// @Router /pos/document/lines/{index}/note [put]
func (h *SessionHandler) SetLineNote(c *gin.Context) {
	index, ok := lineIndex(c)
	if !ok {
		return
	}
	var req request.NoteRequest
	if !bind(c, &req) {
		return
	}
	v, err := h.sessionService.SetLineNote(c.Request.Context(), GetTerminal(c), index, req.Note)
	view(c, "Note updated", v, err)
}

// @Summary Remove line
// @Tags cart
// @Security BearerAuth
// @Param index path int true "Line position"
// @Success 200 {object} response.APIResponse
// @Router /pos/document/lines/{index} [delete]
func (h *SessionHandler) RemoveLine(c *gin.Context) {
	index, ok := lineIndex(c)
	if !ok {
		return
	}
	v, err := h.sessionService.RemoveLine(c.Request.Context(), GetTerminal(c), index)
	view(c, "Product removed", v, err)
}

// @Summary Set general note
// @Tags session
// @Accept json
// @Security BearerAuth
// @Param request body request.NoteRequest true "Note"
// @Success 200 {object} response.APIResponse
// @Router /pos/document/note [put]
func (h *SessionHandler) SetGeneralNote(c *gin.Context) {
	var req request.NoteRequest
	if !bind(c, &req) {
		return
	}
	v, err := h.sessionService.SetGeneralNote(c.Request.Context(), GetTerminal(c), req.Note)
	view(c, "Note updated", v, err)
}

// @Summary Set extra fields
// @Tags session
// @Accept json
// @Security BearerAuth
// @Param request body request.ExtraFieldsRequest true "Fields"
// @Success 200 {object} response.APIResponse
// @Router /pos/document/extra-fields [put]
func (h *SessionHandler) SetExtraFields(c *gin.Context) {
	var req request.ExtraFieldsRequest
	if !bind(c, &req) {
		return
	}
	v, err := h.sessionService.SetExtraFields(c.Request.Context(), GetTerminal(c), req.Fields)
	view(c, "Extra fields updated", v, err)
}

// @Summary Toggle electronic invoice
// @Tags session
// @Accept json
// @Security BearerAuth
// @Param request body request.FELRequest true "FEL flag"
// @Success 200 {object} response.APIResponse
// @Router /pos/document/fel [put]
func (h *SessionHandler) SetFEL(c *gin.Context) {
	var req request.FELRequest
	if !bind(c, &req) {
		return
	}
	v, err := h.sessionService.SetFEL(c.Request.Context(), GetTerminal(c), req.FEL)
	view(c, "FEL updated", v, err)
}

// SelectCustomer selects by id, or by NIT when no id is given
// @Summary Select customer
// @Tags session
// @Accept json
// @Security BearerAuth
// @Param request body request.SelectCustomerRequest true "Customer"
// @Success 200 {object} response.APIResponse
// @Router /pos/document/customer [put]
func (h *SessionHandler) SelectCustomer(c *gin.Context) {
	var req request.SelectCustomerRequest
	if !bind(c, &req) {
		return
	}
	var (
		v   *service.DocumentView
		err error
	)
	if req.CustomerID == "" && req.NIT != "" {
		v, err = h.sessionService.SelectCustomerByNIT(c.Request.Context(), GetTerminal(c), req.NIT)
	} else {
		v, err = h.sessionService.SelectCustomer(c.Request.Context(), GetTerminal(c), req.CustomerID)
	}
	view(c, "Customer selected", v, err)
}

// @Summary Select vendor
// @Tags session
// @Accept json
// @Security BearerAuth
// @Param request body request.SelectVendorRequest true "Vendor"
// @Success 200 {object} response.APIResponse
// @Router /pos/document/vendor [put]
func (h *SessionHandler) SelectVendor(c *gin.Context) {
	var req request.SelectVendorRequest
	if !bind(c, &req) {
		return
	}
	v, err := h.sessionService.SelectVendor(c.Request.Context(), GetTerminal(c), req.VendorID)
	view(c, "Vendor selected", v, err)
}
