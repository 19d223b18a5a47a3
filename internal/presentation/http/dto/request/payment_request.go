package request

import "github.com/shopspring/decimal"

// AddPaymentRequest represents one tender of an invoice
type AddPaymentRequest struct {
	TypeKey       string          `json:"type_id" binding:"required"`
	Amount        decimal.Decimal `json:"amount"`
	BankReference string          `json:"bank_reference"`
}

// CloseCashRequest represents the counted cash at drawer close
type CloseCashRequest struct {
	Counted decimal.Decimal `json:"counted"`
	Note    string          `json:"note" binding:"max=500"`
}
