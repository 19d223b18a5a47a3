package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/sangkips/pos-terminal/internal/domain/entity"
	"github.com/sangkips/pos-terminal/internal/domain/enum"
	"github.com/sangkips/pos-terminal/internal/domain/gateway"
	domainRepo "github.com/sangkips/pos-terminal/internal/domain/repository"
	"github.com/sangkips/pos-terminal/internal/infrastructure/cache"
	"github.com/sangkips/pos-terminal/internal/infrastructure/repository"
	"github.com/sangkips/pos-terminal/pkg/apperror"
	"github.com/sangkips/pos-terminal/pkg/printer"
	"github.com/shopspring/decimal"
)

// fakeBackend is an in-memory gateway.Backend. Products without a stock
// entry have unlimited stock.
type fakeBackend struct {
	mu          sync.Mutex
	products    map[string]entity.Product
	customers   map[string]entity.Customer
	stock       map[string]int
	stockErr    map[string]error
	minPrices   map[string]decimal.Decimal
	vendors     []entity.Vendor
	methods     []entity.PaymentMethod
	tickets     map[string]*entity.Ticket
	saved       []*entity.Ticket
	saveErr     error
	saveGate    chan struct{}
	saveStarted chan struct{}
	extraFields map[string]map[string]string
	calls       map[string]int
}

var _ gateway.Backend = (*fakeBackend)(nil)

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		products: map[string]entity.Product{
			"A": {ID: "A", Code: "001", Name: "Arroz", Price: dec("100")},
			"B": {ID: "B", Code: "002", Name: "Frijol", Price: dec("50"), TierPrices: map[string]decimal.Decimal{"MAYORISTA": dec("40")}},
			"C": {ID: "C", Code: "003", Name: "Azucar", Price: dec("12.50")},
		},
		customers: map[string]entity.Customer{
			"CF":  {ID: "CF", Name: "Consumidor Final", TaxID: "CF"},
			"C10": {ID: "C10", Name: "Tienda Lupita", TaxID: "1234567-8", DiscountPercent: dec("10"), PriceTier: "MAYORISTA"},
		},
		stock:       map[string]int{},
		stockErr:    map[string]error{},
		minPrices:   map[string]decimal.Decimal{},
		vendors:     []entity.Vendor{{ID: "V1", Name: "Luis"}, {ID: "V2", Name: "Marta"}},
		methods:     []entity.PaymentMethod{{TypeKey: "1", Label: "Efectivo"}, {TypeKey: "2", Label: "Tarjeta", RequiresReference: true}},
		tickets:     map[string]*entity.Ticket{},
		extraFields: map[string]map[string]string{},
		calls:       map[string]int{},
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func (f *fakeBackend) count(name string) {
	f.mu.Lock()
	f.calls[name]++
	f.mu.Unlock()
}

func (f *fakeBackend) Calls(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeBackend) Login(ctx context.Context, req gateway.LoginRequest) (*entity.LoginResult, error) {
	f.count("login")
	if req.Password != "secret" {
		return nil, apperror.NewBackendError(3, "Usuario o clave incorrectos")
	}
	op := entity.Operator{ID: "7", Name: "Ana", Username: req.Username}
	return &entity.LoginResult{
		Token:    "backend-" + req.TerminalCode,
		Operator: op,
		Terminal: entity.TerminalContext{
			TerminalID:        req.TerminalCode,
			TerminalName:      "Caja 1",
			Company:           "Tienda",
			DefaultCustomerID: "CF",
			BackendToken:      "backend-" + req.TerminalCode,
			Operator:          op,
		},
	}, nil
}

func (f *fakeBackend) SearchProducts(ctx context.Context, token, query string) ([]entity.Product, error) {
	f.count("products/search")
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Product
	for _, p := range f.products {
		if p.Name == query || p.Code == query {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeBackend) GetProduct(ctx context.Context, token, productID string) (*entity.Product, error) {
	f.count("products/get")
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[productID]
	if !ok {
		return nil, apperror.NewBackendError(404, "Producto no existe")
	}
	return &p, nil
}

func (f *fakeBackend) GetMinPrice(ctx context.Context, token, productID string) (*entity.MinPrice, error) {
	f.count("products/min-price")
	f.mu.Lock()
	defer f.mu.Unlock()
	return &entity.MinPrice{ProductID: productID, MinPrice: f.minPrices[productID]}, nil
}

func (f *fakeBackend) CheckStock(ctx context.Context, token, productID string, quantity int) (*entity.StockCheck, error) {
	f.count("stock/check")
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.stockErr[productID]; err != nil {
		return nil, err
	}
	available, limited := f.stock[productID]
	if !limited {
		available = 1 << 20
	}
	return &entity.StockCheck{ProductID: productID, Requested: quantity, Available: available, OK: quantity <= available}, nil
}

func (f *fakeBackend) SearchCustomers(ctx context.Context, token, query string) ([]entity.Customer, error) {
	f.count("customers/search")
	return []entity.Customer{}, nil
}

func (f *fakeBackend) GetCustomer(ctx context.Context, token, customerID string) (*entity.Customer, error) {
	f.count("customers/get")
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.customers[customerID]
	if !ok {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return &c, nil
}

func (f *fakeBackend) FindCustomerByNIT(ctx context.Context, token, nit string) (*entity.Customer, error) {
	f.count("customers/nit")
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.customers {
		if c.TaxID == nit {
			return &c, nil
		}
	}
	return nil, apperror.NewNotFoundError("Customer")
}

func (f *fakeBackend) ListVendors(ctx context.Context, token string) ([]entity.Vendor, error) {
	f.count("vendors/list")
	return f.vendors, nil
}

func (f *fakeBackend) ListPaymentMethods(ctx context.Context, token string) ([]entity.PaymentMethod, error) {
	f.count("payment-methods/list")
	return f.methods, nil
}

func (f *fakeBackend) SaveTicket(ctx context.Context, token string, ticket *entity.Ticket) (*entity.SavedTicket, error) {
	f.count("tickets/save")
	if f.saveStarted != nil {
		f.saveStarted <- struct{}{}
	}
	if f.saveGate != nil {
		<-f.saveGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	id := fmt.Sprintf("%d", len(f.saved)+1)
	stored := *ticket
	stored.ID = id
	stored.Reference = "R-" + id
	f.saved = append(f.saved, &stored)
	f.tickets[id] = &stored
	return &entity.SavedTicket{ID: id, Reference: stored.Reference, Date: time.Now()}, nil
}

func (f *fakeBackend) GetTicket(ctx context.Context, token, ticketID string) (*entity.Ticket, error) {
	f.count("tickets/get")
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tickets[ticketID]
	if !ok {
		return nil, apperror.NewNotFoundError("Ticket")
	}
	c := *t
	return &c, nil
}

func (f *fakeBackend) ListTickets(ctx context.Context, token string, filter gateway.TicketFilter) ([]entity.TicketSummary, error) {
	f.count("tickets/list")
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []entity.TicketSummary{}
	for _, t := range f.saved {
		if t.Mode == filter.Mode && t.TerminalID == filter.TerminalID {
			out = append(out, entity.TicketSummary{ID: t.ID, Reference: t.Reference, Type: t.Type, Mode: t.Mode, CustomerName: t.CustomerName, Total: t.Total})
		}
	}
	return out, nil
}

func (f *fakeBackend) SaveExtraFields(ctx context.Context, token, ticketID string, fields map[string]string) error {
	f.count("tickets/extra-fields")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.extraFields[ticketID] = fields
	return nil
}

func (f *fakeBackend) CashBalance(ctx context.Context, token, terminalID string) (*entity.CashBalance, error) {
	f.count("cash/balance")
	return &entity.CashBalance{TerminalID: terminalID, Opening: dec("100"), CashSales: dec("250"), Expected: dec("350")}, nil
}

func (f *fakeBackend) CloseCash(ctx context.Context, token string, req *entity.CashClose) (*entity.CashCloseResult, error) {
	f.count("cash/close")
	expected := dec("350")
	return &entity.CashCloseResult{Reference: "CIERRE-1", Expected: expected, Counted: req.Counted, Difference: req.Counted.Sub(expected)}, nil
}

type harness struct {
	svc     *SessionService
	backend *fakeBackend
	alerts  *AlertService
	term    *entity.TerminalContext
}

func testTerminal() *entity.TerminalContext {
	return &entity.TerminalContext{
		TerminalID:        "T01",
		TerminalName:      "Caja 1",
		Company:           "Tienda",
		Address:           "Zona 1",
		DefaultCustomerID: "CF",
		BackendToken:      "tok",
		Operator:          entity.Operator{ID: "7", Name: "Ana"},
	}
}

func defaultOptions() SessionOptions {
	return SessionOptions{
		StockValidation: true,
		DefaultType:     enum.DocumentTypeInvoice,
	}
}

func newHarness(t *testing.T, opts SessionOptions) *harness {
	t.Helper()
	backend := newFakeBackend()
	return newHarnessWith(t, backend, repository.NewMemoryDraftRepository(), opts)
}

func newHarnessWith(t *testing.T, backend *fakeBackend, drafts domainRepo.DraftRepository, opts SessionOptions) *harness {
	t.Helper()
	alerts := NewAlertService(time.Minute, nil)
	catalog := NewCatalogService(backend, cache.NewCatalogCache(time.Minute))
	printerSvc := NewPrinterService(printer.NewNullPrinter(), "none", printer.Width58mm)
	svc := NewSessionService(backend, drafts, NewStockValidator(backend, 4), catalog, alerts, printerSvc, opts)
	return &harness{svc: svc, backend: backend, alerts: alerts, term: testTerminal()}
}

func (h *harness) alert() string {
	if a := h.alerts.Active(h.term.TerminalID); a != nil {
		return a.Message
	}
	return ""
}

var entityTicketOrder = entity.Ticket{
	ID:           "42",
	Type:         int(enum.DocumentTypeOrder),
	Mode:         enum.TicketModeSuspended,
	CustomerID:   "CF",
	CustomerName: "Consumidor Final",
	VendorID:     "V2",
	Lines: []entity.TicketLine{
		{ProductID: "A", Name: "Arroz", Price: dec("100"), Quantity: 2},
	},
}
