package entity

import (
	"github.com/sangkips/pos-terminal/internal/domain/enum"
	"github.com/sangkips/pos-terminal/pkg/money"
	"github.com/shopspring/decimal"
)

// CartLine is one product row of the in-progress document. Lines are
// addressed by their position in Document.Lines.
type CartLine struct {
	ProductID       string          `json:"product_id"`
	Code            string          `json:"code,omitempty"`
	Name            string          `json:"name"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Quantity        int             `json:"quantity"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Note            string          `json:"note,omitempty"`
	HasStock        bool            `json:"has_stock"`
}

// Gross is unit price times quantity
func (l CartLine) Gross() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func (l CartLine) DiscountAmount() decimal.Decimal {
	return money.Percent(l.Gross(), l.DiscountPercent)
}

// Total is the discounted line subtotal
func (l CartLine) Total() decimal.Decimal {
	return l.DiscountedTotal(l.DiscountPercent)
}

// DiscountedTotal is what the line would cost with another discount
func (l CartLine) DiscountedTotal(pct decimal.Decimal) decimal.Decimal {
	gross := l.Gross()
	return gross.Sub(money.Percent(gross, pct))
}

// MeetsFloor reports whether the line, priced with pct, stays at or above
// floor once rounded to cents
func (l CartLine) MeetsFloor(pct, floor decimal.Decimal) bool {
	return money.Round(l.DiscountedTotal(pct)).GreaterThanOrEqual(money.Round(floor))
}

// Payment is one tender collected before an invoice is finalized
type Payment struct {
	Method        string          `json:"method"`
	TypeKey       string          `json:"type_key"`
	Amount        decimal.Decimal `json:"amount"`
	BankReference string          `json:"bank_reference,omitempty"`
}

// Totals are the amounts shown to the operator. Subtotal and Discount are
// rounded independently and Total is always their difference.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
	Paid     decimal.Decimal `json:"paid"`
	Balance  decimal.Decimal `json:"balance"`
}

// Document is the sale a terminal is building
type Document struct {
	Type                    enum.DocumentType `json:"type"`
	CustomerID              string            `json:"customer_id,omitempty"`
	CustomerName            string            `json:"customer_name,omitempty"`
	CustomerTaxID           string            `json:"customer_tax_id,omitempty"`
	CustomerDiscountPercent decimal.Decimal   `json:"customer_discount_percent"`
	CustomerPriceTier       string            `json:"customer_price_tier,omitempty"`
	VendorID                string            `json:"vendor_id,omitempty"`
	VendorName              string            `json:"vendor_name,omitempty"`
	GeneralNote             string            `json:"general_note,omitempty"`
	ExtraFields             map[string]string `json:"extra_fields"`
	FEL                     bool              `json:"fel"`
	Lines                   []CartLine        `json:"lines"`
	Payments                []Payment         `json:"payments"`
	OriginatingTicketID     string            `json:"originating_ticket_id,omitempty"`
}

// NewDocument returns an empty document of the given type
func NewDocument(t enum.DocumentType) *Document {
	return &Document{
		Type:        t,
		ExtraFields: map[string]string{},
		Lines:       []CartLine{},
		Payments:    []Payment{},
	}
}

func (d *Document) IsEmpty() bool {
	return len(d.Lines) == 0
}

// Subtotal is the exact sum of unit price times quantity
func (d *Document) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range d.Lines {
		sum = sum.Add(l.Gross())
	}
	return sum
}

// DiscountAmount is the exact sum of line discounts
func (d *Document) DiscountAmount() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range d.Lines {
		sum = sum.Add(l.DiscountAmount())
	}
	return sum
}

func (d *Document) Paid() decimal.Decimal {
	sum := decimal.Zero
	for _, p := range d.Payments {
		sum = sum.Add(p.Amount)
	}
	return sum
}

func (d *Document) Totals() Totals {
	sub := money.Round(d.Subtotal())
	disc := money.Round(d.DiscountAmount())
	total := sub.Sub(disc)
	paid := money.Round(d.Paid())
	return Totals{
		Subtotal: sub,
		Discount: disc,
		Total:    total,
		Paid:     paid,
		Balance:  total.Sub(paid),
	}
}

// IndexOf returns the position of the first line holding productID, or -1
func (d *Document) IndexOf(productID string) int {
	for i, l := range d.Lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

func (d *Document) HasLine(i int) bool {
	return i >= 0 && i < len(d.Lines)
}

func (d *Document) RemoveLine(i int) {
	d.Lines = append(d.Lines[:i], d.Lines[i+1:]...)
}

func (d *Document) RemovePayment(i int) {
	d.Payments = append(d.Payments[:i], d.Payments[i+1:]...)
}

// ClearStockFlags marks every line as in stock
func (d *Document) ClearStockFlags() {
	for i := range d.Lines {
		d.Lines[i].HasStock = true
	}
}

// Clone returns a deep copy, used to snapshot a document for saving
func (d *Document) Clone() *Document {
	c := *d
	c.Lines = append([]CartLine{}, d.Lines...)
	c.Payments = append([]Payment{}, d.Payments...)
	c.ExtraFields = make(map[string]string, len(d.ExtraFields))
	for k, v := range d.ExtraFields {
		c.ExtraFields[k] = v
	}
	return &c
}
