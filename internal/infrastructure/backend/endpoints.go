package backend

import (
	"context"

	"github.com/sangkips/pos-terminal/internal/domain/entity"
	"github.com/sangkips/pos-terminal/internal/domain/gateway"
	"github.com/sangkips/pos-terminal/pkg/apperror"
)

const (
	endpointLogin          = "auth/login"
	endpointProductSearch  = "products/search"
	endpointProductGet     = "products/get"
	endpointMinPrice       = "products/min-price"
	endpointStockCheck     = "stock/check"
	endpointCustomerSearch = "customers/search"
	endpointCustomerGet    = "customers/get"
	endpointCustomerNIT    = "customers/nit"
	endpointVendors        = "vendors/list"
	endpointPaymentMethods = "payment-methods/list"
	endpointTicketSave     = "tickets/save"
	endpointTicketGet      = "tickets/get"
	endpointTicketList     = "tickets/list"
	endpointExtraFields    = "tickets/extra-fields"
	endpointCashBalance    = "cash/balance"
	endpointCashClose      = "cash/close"
)

var _ gateway.Backend = (*Client)(nil)

type byID struct {
	ID string `json:"id"`
}

type byQuery struct {
	Query string `json:"query"`
}

func (c *Client) Login(ctx context.Context, req gateway.LoginRequest) (*entity.LoginResult, error) {
	var out entity.LoginResult
	if err := c.post(ctx, "", endpointLogin, req, &out); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, apperror.NewBackendError(-1, "Login answer carries no token")
	}
	out.Terminal.BackendToken = out.Token
	out.Terminal.Operator = out.Operator
	return &out, nil
}

func (c *Client) SearchProducts(ctx context.Context, token, query string) ([]entity.Product, error) {
	out := []entity.Product{}
	if err := c.post(ctx, token, endpointProductSearch, byQuery{Query: query}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProduct(ctx context.Context, token, productID string) (*entity.Product, error) {
	var out *entity.Product
	if err := c.post(ctx, token, endpointProductGet, byID{ID: productID}, &out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return out, nil
}

func (c *Client) GetMinPrice(ctx context.Context, token, productID string) (*entity.MinPrice, error) {
	out := entity.MinPrice{ProductID: productID}
	if err := c.post(ctx, token, endpointMinPrice, struct {
		ProductID string `json:"product_id"`
	}{productID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CheckStock(ctx context.Context, token, productID string, quantity int) (*entity.StockCheck, error) {
	out := entity.StockCheck{ProductID: productID, Requested: quantity}
	if err := c.post(ctx, token, endpointStockCheck, struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}{productID, quantity}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SearchCustomers(ctx context.Context, token, query string) ([]entity.Customer, error) {
	out := []entity.Customer{}
	if err := c.post(ctx, token, endpointCustomerSearch, byQuery{Query: query}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetCustomer(ctx context.Context, token, customerID string) (*entity.Customer, error) {
	var out *entity.Customer
	if err := c.post(ctx, token, endpointCustomerGet, byID{ID: customerID}, &out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return out, nil
}

func (c *Client) FindCustomerByNIT(ctx context.Context, token, nit string) (*entity.Customer, error) {
	var out *entity.Customer
	if err := c.post(ctx, token, endpointCustomerNIT, struct {
		NIT string `json:"nit"`
	}{nit}, &out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return out, nil
}

func (c *Client) ListVendors(ctx context.Context, token string) ([]entity.Vendor, error) {
	out := []entity.Vendor{}
	if err := c.post(ctx, token, endpointVendors, struct{}{}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListPaymentMethods(ctx context.Context, token string) ([]entity.PaymentMethod, error) {
	out := []entity.PaymentMethod{}
	if err := c.post(ctx, token, endpointPaymentMethods, struct{}{}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SaveTicket(ctx context.Context, token string, ticket *entity.Ticket) (*entity.SavedTicket, error) {
	var out entity.SavedTicket
	if err := c.post(ctx, token, endpointTicketSave, ticket, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetTicket(ctx context.Context, token, ticketID string) (*entity.Ticket, error) {
	var out *entity.Ticket
	if err := c.post(ctx, token, endpointTicketGet, byID{ID: ticketID}, &out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, apperror.NewNotFoundError("Ticket")
	}
	if out.ID == "" {
		out.ID = ticketID
	}
	return out, nil
}

func (c *Client) ListTickets(ctx context.Context, token string, filter gateway.TicketFilter) ([]entity.TicketSummary, error) {
	out := []entity.TicketSummary{}
	if err := c.post(ctx, token, endpointTicketList, filter, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SaveExtraFields(ctx context.Context, token, ticketID string, fields map[string]string) error {
	return c.post(ctx, token, endpointExtraFields, struct {
		TicketID string            `json:"ticket_id"`
		Fields   map[string]string `json:"fields"`
	}{ticketID, fields}, nil)
}

func (c *Client) CashBalance(ctx context.Context, token, terminalID string) (*entity.CashBalance, error) {
	out := entity.CashBalance{TerminalID: terminalID}
	if err := c.post(ctx, token, endpointCashBalance, struct {
		TerminalID string `json:"terminal_id"`
	}{terminalID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CloseCash(ctx context.Context, token string, req *entity.CashClose) (*entity.CashCloseResult, error) {
	var out entity.CashCloseResult
	if err := c.post(ctx, token, endpointCashClose, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
