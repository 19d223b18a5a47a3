package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/pos-terminal/internal/application/service"
	"github.com/sangkips/pos-terminal/internal/presentation/http/dto/request"
)

// CatalogHandler serves the suggestion searches and the cached catalogs
type CatalogHandler struct {
	searchService  *service.SearchService
	catalogService *service.CatalogService
}

func NewCatalogHandler(searchService *service.SearchService, catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{searchService: searchService, catalogService: catalogService}
}

// SearchProducts returns product suggestions. A newer search from the same
// terminal answers this one with 409.
// @Summary Search products
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param q query string false "Name or code"
// @Success 200 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /pos/products [get]
func (h *CatalogHandler) SearchProducts(c *gin.Context) {
	var req request.SearchRequest
	_ = c.ShouldBindQuery(&req)
	products, err := h.searchService.SearchProducts(c.Request.Context(), GetTerminal(c), req.Query)
	view(c, "Products retrieved", products, err)
}

// @Summary Search customers
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param q query string false "Name or NIT"
// @Success 200 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /pos/customers [get]
func (h *CatalogHandler) SearchCustomers(c *gin.Context) {
	var req request.SearchRequest
	_ = c.ShouldBindQuery(&req)
	customers, err := h.searchService.SearchCustomers(c.Request.Context(), GetTerminal(c), req.Query)
	view(c, "Customers retrieved", customers, err)
}

// @Summary List vendors
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /pos/vendors [get]
func (h *CatalogHandler) Vendors(c *gin.Context) {
	vendors, err := h.catalogService.Vendors(c.Request.Context(), GetTerminal(c))
	view(c, "Vendors retrieved", vendors, err)
}

// @Summary List payment methods
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /pos/payment-methods [get]
func (h *CatalogHandler) PaymentMethods(c *gin.Context) {
	methods, err := h.catalogService.PaymentMethods(c.Request.Context(), GetTerminal(c))
	view(c, "Payment methods retrieved", methods, err)
}
