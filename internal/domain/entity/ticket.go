package entity

import (
	"fmt"
	"time"

	"github.com/sangkips/pos-terminal/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Ticket is a document persisted by the backend, either suspended or
// finalized. Type carries the backend numeric code.
type Ticket struct {
	ID            string            `json:"id,omitempty"`
	Reference     string            `json:"reference,omitempty"`
	Type          int               `json:"type"`
	Mode          enum.TicketMode   `json:"mode"`
	TerminalID    string            `json:"terminal_id"`
	CustomerID    string            `json:"customer_id"`
	CustomerName  string            `json:"customer_name"`
	CustomerTaxID string            `json:"customer_nit"`
	VendorID      string            `json:"vendor_id"`
	VendorName    string            `json:"vendor_name,omitempty"`
	Note          string            `json:"note,omitempty"`
	FEL           bool              `json:"fel"`
	ExtraFields   map[string]string `json:"extra_fields,omitempty"`
	Lines         []TicketLine      `json:"lines"`
	Payments      []TicketPayment   `json:"payments,omitempty"`
	Subtotal      decimal.Decimal   `json:"subtotal"`
	Discount      decimal.Decimal   `json:"discount"`
	Total         decimal.Decimal   `json:"total"`
	Difference    decimal.Decimal   `json:"difference"`
	OriginalID    string            `json:"original_id,omitempty"`
	Date          time.Time         `json:"date,omitempty"`
}

type TicketLine struct {
	ProductID string          `json:"product_id"`
	Code      string          `json:"code,omitempty"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Discount  decimal.Decimal `json:"discount"`
	Note      string          `json:"note,omitempty"`
	Total     decimal.Decimal `json:"total"`
}

// TicketPayment is one numbered entry of the payment breakdown
type TicketPayment struct {
	Number        int             `json:"number"`
	Method        string          `json:"method"`
	TypeKey       string          `json:"type_id"`
	BankReference string          `json:"bank_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
}

// TicketSummary is a row of the suspended or historical ticket lists
type TicketSummary struct {
	ID           string          `json:"id"`
	Reference    string          `json:"reference"`
	Type         int             `json:"type"`
	Mode         enum.TicketMode `json:"mode"`
	CustomerName string          `json:"customer_name"`
	VendorName   string          `json:"vendor_name,omitempty"`
	Total        decimal.Decimal `json:"total"`
	Date         time.Time       `json:"date"`
}

// SavedTicket is the backend answer to a save call
type SavedTicket struct {
	ID        string    `json:"id"`
	Reference string    `json:"reference"`
	Date      time.Time `json:"date"`
}

// TicketFromDocument serializes a document for the save call
func TicketFromDocument(doc *Document, terminalID string, mode enum.TicketMode) *Ticket {
	totals := doc.Totals()
	t := &Ticket{
		Type:          int(doc.Type),
		Mode:          mode,
		TerminalID:    terminalID,
		CustomerID:    doc.CustomerID,
		CustomerName:  doc.CustomerName,
		CustomerTaxID: doc.CustomerTaxID,
		VendorID:      doc.VendorID,
		VendorName:    doc.VendorName,
		Note:          doc.GeneralNote,
		FEL:           doc.FEL,
		ExtraFields:   doc.ExtraFields,
		Lines:         make([]TicketLine, 0, len(doc.Lines)),
		Subtotal:      totals.Subtotal,
		Discount:      totals.Discount,
		Total:         totals.Total,
		Difference:    totals.Balance,
		OriginalID:    doc.OriginatingTicketID,
	}
	for _, l := range doc.Lines {
		t.Lines = append(t.Lines, TicketLine{
			ProductID: l.ProductID,
			Code:      l.Code,
			Name:      l.Name,
			Price:     l.UnitPrice,
			Quantity:  l.Quantity,
			Discount:  l.DiscountPercent,
			Note:      l.Note,
			Total:     l.Total().Round(2),
		})
	}
	for i, p := range doc.Payments {
		t.Payments = append(t.Payments, TicketPayment{
			Number:        i + 1,
			Method:        p.Method,
			TypeKey:       p.TypeKey,
			BankReference: p.BankReference,
			Amount:        p.Amount,
		})
	}
	return t
}

// ToDocument rebuilds an editable document from a stored ticket. Payments
// are not carried over; a resumed document is collected again.
func (t *Ticket) ToDocument() (*Document, error) {
	docType := enum.DocumentType(t.Type)
	if !docType.IsValid() {
		return nil, &UnknownTypeError{Code: t.Type}
	}
	doc := NewDocument(docType)
	doc.CustomerID = t.CustomerID
	doc.CustomerName = t.CustomerName
	doc.CustomerTaxID = t.CustomerTaxID
	doc.VendorID = t.VendorID
	doc.VendorName = t.VendorName
	doc.GeneralNote = t.Note
	doc.FEL = t.FEL
	doc.OriginatingTicketID = t.ID
	for k, v := range t.ExtraFields {
		doc.ExtraFields[k] = v
	}
	for _, l := range t.Lines {
		qty := l.Quantity
		if qty < 1 {
			qty = 1
		}
		doc.Lines = append(doc.Lines, CartLine{
			ProductID:       l.ProductID,
			Code:            l.Code,
			Name:            l.Name,
			UnitPrice:       l.Price,
			Quantity:        qty,
			DiscountPercent: l.Discount,
			Note:            l.Note,
			HasStock:        true,
		})
	}
	return doc, nil
}

// UnknownTypeError is returned for a ticket type code outside 0, 2 and 3
type UnknownTypeError struct {
	Code int
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown ticket type code %d", e.Code)
}
