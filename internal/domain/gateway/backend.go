// Package gateway declares the calls the terminal makes to the billing
// backend. Every call carries the backend token of the logged-in terminal.
package gateway

import (
	"context"

	"github.com/sangkips/pos-terminal/internal/domain/entity"
	"github.com/sangkips/pos-terminal/internal/domain/enum"
)

type LoginRequest struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	TerminalCode string `json:"terminal"`
}

// TicketFilter selects rows for the suspended or historical lists
type TicketFilter struct {
	TerminalID string          `json:"terminal_id"`
	Mode       enum.TicketMode `json:"mode"`
	Type       *int            `json:"type,omitempty"`
	Search     string          `json:"search,omitempty"`
}

type Backend interface {
	Login(ctx context.Context, req LoginRequest) (*entity.LoginResult, error)

	SearchProducts(ctx context.Context, token, query string) ([]entity.Product, error)
	GetProduct(ctx context.Context, token, productID string) (*entity.Product, error)
	GetMinPrice(ctx context.Context, token, productID string) (*entity.MinPrice, error)
	CheckStock(ctx context.Context, token, productID string, quantity int) (*entity.StockCheck, error)

	SearchCustomers(ctx context.Context, token, query string) ([]entity.Customer, error)
	GetCustomer(ctx context.Context, token, customerID string) (*entity.Customer, error)
	FindCustomerByNIT(ctx context.Context, token, nit string) (*entity.Customer, error)

	ListVendors(ctx context.Context, token string) ([]entity.Vendor, error)
	ListPaymentMethods(ctx context.Context, token string) ([]entity.PaymentMethod, error)

	SaveTicket(ctx context.Context, token string, ticket *entity.Ticket) (*entity.SavedTicket, error)
	GetTicket(ctx context.Context, token, ticketID string) (*entity.Ticket, error)
	ListTickets(ctx context.Context, token string, filter TicketFilter) ([]entity.TicketSummary, error)
	SaveExtraFields(ctx context.Context, token, ticketID string, fields map[string]string) error

	CashBalance(ctx context.Context, token, terminalID string) (*entity.CashBalance, error)
	CloseCash(ctx context.Context, token string, req *entity.CashClose) (*entity.CashCloseResult, error)
}
