package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TicketDataLine is a line item as printed, with its computed total
type TicketDataLine struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount_percent"`
	Total     decimal.Decimal `json:"total"`
	Note      string          `json:"note,omitempty"`
}

type TicketDataPayment struct {
	Method string          `json:"method"`
	Amount decimal.Decimal `json:"amount"`
}

// TicketData is the flat record handed to the ticket renderer. It is not
// persisted; it is composed from the saved document at finalize time.
type TicketData struct {
	Company       string              `json:"company"`
	Terminal      string              `json:"terminal"`
	DocumentLabel string              `json:"document_label"`
	Reference     string              `json:"reference"`
	CustomerName  string              `json:"customer_name"`
	CustomerTaxID string              `json:"customer_nit"`
	Lines         []TicketDataLine    `json:"lines"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	Discount      decimal.Decimal     `json:"discount"`
	Total         decimal.Decimal     `json:"total"`
	Payments      []TicketDataPayment `json:"payments,omitempty"`
	Paid          decimal.Decimal     `json:"paid"`
	Change        decimal.Decimal     `json:"change"`
	VendorName    string              `json:"vendor_name"`
	Note          string              `json:"note,omitempty"`
	ExtraFields   map[string]string   `json:"extra_fields,omitempty"`
	Address       string              `json:"address,omitempty"`
	Phone         string              `json:"phone,omitempty"`
	Email         string              `json:"email,omitempty"`
	FEL           bool                `json:"fel"`
	Date          time.Time           `json:"date"`
}

// NewTicketData composes the printable record of a saved document
func NewTicketData(doc *Document, saved *SavedTicket, term *TerminalContext) *TicketData {
	totals := doc.Totals()
	data := &TicketData{
		Company:       term.Company,
		Terminal:      term.TerminalName,
		DocumentLabel: doc.Type.Label(),
		Reference:     saved.Reference,
		CustomerName:  doc.CustomerName,
		CustomerTaxID: doc.CustomerTaxID,
		Lines:         make([]TicketDataLine, 0, len(doc.Lines)),
		Subtotal:      totals.Subtotal,
		Discount:      totals.Discount,
		Total:         totals.Total,
		Paid:          totals.Paid,
		Change:        decimal.Zero,
		VendorName:    doc.VendorName,
		Note:          doc.GeneralNote,
		ExtraFields:   doc.ExtraFields,
		Address:       term.Address,
		Phone:         term.Phone,
		Email:         term.Email,
		FEL:           doc.FEL,
		Date:          saved.Date,
	}
	if data.Date.IsZero() {
		data.Date = time.Now()
	}
	if totals.Balance.IsNegative() {
		data.Change = totals.Balance.Neg()
	}
	for _, l := range doc.Lines {
		data.Lines = append(data.Lines, TicketDataLine{
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Discount:  l.DiscountPercent,
			Total:     l.Total().Round(2),
			Note:      l.Note,
		})
	}
	for _, p := range doc.Payments {
		data.Payments = append(data.Payments, TicketDataPayment{Method: p.Method, Amount: p.Amount})
	}
	return data
}
