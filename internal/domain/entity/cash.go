package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashBalance is the cash drawer state reported by the backend
type CashBalance struct {
	TerminalID  string          `json:"terminal_id"`
	Opening     decimal.Decimal `json:"opening"`
	CashSales   decimal.Decimal `json:"cash_sales"`
	Withdrawals decimal.Decimal `json:"withdrawals"`
	Expected    decimal.Decimal `json:"expected"`
	OpenedAt    time.Time       `json:"opened_at"`
}

type CashClose struct {
	TerminalID string          `json:"terminal_id"`
	Counted    decimal.Decimal `json:"counted"`
	Note       string          `json:"note,omitempty"`
}

type CashCloseResult struct {
	Reference  string          `json:"reference"`
	Expected   decimal.Decimal `json:"expected"`
	Counted    decimal.Decimal `json:"counted"`
	Difference decimal.Decimal `json:"difference"`
	ClosedAt   time.Time       `json:"closed_at"`
}
