package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// DocumentType is the kind of sale document held by a terminal session.
// The numeric values are the backend ticket type codes.
type DocumentType int

const (
	DocumentTypeQuote   DocumentType = 0
	DocumentTypeOrder   DocumentType = 2
	DocumentTypeInvoice DocumentType = 3
)

func (t DocumentType) String() string {
	switch t {
	case DocumentTypeQuote:
		return "Quote"
	case DocumentTypeOrder:
		return "Order"
	case DocumentTypeInvoice:
		return "Invoice"
	}
	return fmt.Sprintf("DocumentType(%d)", int(t))
}

// Label is the caption printed on the receipt
func (t DocumentType) Label() string {
	switch t {
	case DocumentTypeQuote:
		return "COTIZACION"
	case DocumentTypeOrder:
		return "PEDIDO"
	case DocumentTypeInvoice:
		return "FACTURA"
	}
	return ""
}

func (t DocumentType) IsValid() bool {
	return t == DocumentTypeQuote || t == DocumentTypeOrder || t == DocumentTypeInvoice
}

// PricingEditable reports whether discounts and subtotals may be edited
func (t DocumentType) PricingEditable() bool {
	return t == DocumentTypeInvoice
}

// ParseDocumentType accepts a name ("invoice") or a backend code ("3")
func ParseDocumentType(s string) (DocumentType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "quote", "0":
		return DocumentTypeQuote, nil
	case "order", "2":
		return DocumentTypeOrder, nil
	case "invoice", "3":
		return DocumentTypeInvoice, nil
	}
	return 0, fmt.Errorf("unknown document type %q", s)
}

func (t DocumentType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *DocumentType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = DocumentType(i)
		if !t.IsValid() {
			return fmt.Errorf("unknown document type code %d", i)
		}
		return nil
	}
	parsed, err := ParseDocumentType(str)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t DocumentType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *DocumentType) Scan(value interface{}) error {
	if value == nil {
		*t = DocumentTypeInvoice
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = DocumentType(v)
	case int:
		*t = DocumentType(v)
	}
	return nil
}
