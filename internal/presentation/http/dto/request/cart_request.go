package request

import (
	"encoding/json"

	"github.com/sangkips/pos-terminal/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// SetDocumentTypeRequest selects quote, order or invoice. Type accepts the
// name ("invoice") or the backend code, as a number (3) or a string ("3").
type SetDocumentTypeRequest struct {
	Type json.RawMessage `json:"type" binding:"required" swaggertype:"string"`
}

// DocumentType decodes Type
func (r SetDocumentTypeRequest) DocumentType() (enum.DocumentType, error) {
	var t enum.DocumentType
	if err := json.Unmarshal(r.Type, &t); err != nil {
		return 0, err
	}
	return t, nil
}

type AddLineRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

type SetQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

type SetDiscountRequest struct {
	Percent decimal.Decimal `json:"percent"`
}

type SetSubtotalRequest struct {
	Subtotal decimal.Decimal `json:"subtotal"`
}

type NoteRequest struct {
	Note string `json:"note" binding:"max=500"`
}

type ExtraFieldsRequest struct {
	Fields map[string]string `json:"fields"`
}

type FELRequest struct {
	FEL bool `json:"fel"`
}

// SelectCustomerRequest selects by id or, when only NIT is given, by
// taxpayer id
type SelectCustomerRequest struct {
	CustomerID string `json:"customer_id"`
	NIT        string `json:"nit"`
}

// SelectVendorRequest selects a vendor; an empty id clears it
type SelectVendorRequest struct {
	VendorID string `json:"vendor_id"`
}

type SearchRequest struct {
	Query string `form:"q"`
}
