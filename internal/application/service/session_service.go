package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/sangkips/pos-terminal/internal/domain/entity"
	"github.com/sangkips/pos-terminal/internal/domain/enum"
	"github.com/sangkips/pos-terminal/internal/domain/gateway"
	"github.com/sangkips/pos-terminal/internal/domain/repository"
	"github.com/sangkips/pos-terminal/pkg/apperror"
)

// SessionOptions are the feature flags of the cashier screen
type SessionOptions struct {
	StockValidation bool
	ExtraFields     bool
	PriceTiers      bool
	OrdersEnabled   bool
	DefaultType     enum.DocumentType
	AutoPrint       bool
}

// session is the state of one terminal. mu serializes every operation on
// it; a save releases mu during the backend call and sets state to saving
// so that concurrent mutations are rejected instead of queued.
type session struct {
	mu                 sync.Mutex
	loaded             bool
	doc                *entity.Document
	state              enum.SaveState
	defaultCustomer    *entity.Customer
	defaultCustomerRef string
	lastTicket         *entity.TicketData
}

// SessionService owns the in-progress document of every terminal
type SessionService struct {
	backend  gateway.Backend
	drafts   repository.DraftRepository
	stock    *StockValidator
	catalog  *CatalogService
	alerts   *AlertService
	printer  *PrinterService
	opts     SessionOptions
	mu       sync.Mutex
	sessions map[string]*session
}

func NewSessionService(
	backend gateway.Backend,
	drafts repository.DraftRepository,
	stock *StockValidator,
	catalog *CatalogService,
	alerts *AlertService,
	printer *PrinterService,
	opts SessionOptions,
) *SessionService {
	if !opts.DefaultType.IsValid() || (opts.DefaultType == enum.DocumentTypeOrder && !opts.OrdersEnabled) {
		opts.DefaultType = enum.DocumentTypeInvoice
	}
	return &SessionService{
		backend:  backend,
		drafts:   drafts,
		stock:    stock,
		catalog:  catalog,
		alerts:   alerts,
		printer:  printer,
		opts:     opts,
		sessions: make(map[string]*session),
	}
}

// DocumentView is the document as shown to the operator
type DocumentView struct {
	Document        *entity.Document `json:"document"`
	Totals          entity.Totals    `json:"totals"`
	PricingEditable bool             `json:"pricing_editable"`
	Saving          bool             `json:"saving"`
}

func newView(sess *session) *DocumentView {
	return &DocumentView{
		Document:        sess.doc.Clone(),
		Totals:          sess.doc.Totals(),
		PricingEditable: sess.doc.Type.PricingEditable(),
		Saving:          sess.state == enum.SaveStateSaving,
	}
}

// acquire returns the locked session of term, restoring its draft and
// refreshing the default customer on first use. Callers must unlock.
func (s *SessionService) acquire(ctx context.Context, term *entity.TerminalContext) *session {
	s.mu.Lock()
	sess, ok := s.sessions[term.TerminalID]
	if !ok {
		sess = &session{}
		s.sessions[term.TerminalID] = sess
	}
	s.mu.Unlock()

	sess.mu.Lock()
	if !sess.loaded {
		sess.doc = s.restoreDraft(ctx, term.TerminalID)
		sess.loaded = true
	}
	s.refreshDefaultCustomer(ctx, sess, term)
	return sess
}

func (s *SessionService) restoreDraft(ctx context.Context, terminalID string) *entity.Document {
	draft, err := s.drafts.Get(ctx, terminalID)
	if err != nil {
		log.Printf("Failed to load draft for terminal %s: %v", terminalID, err)
	}
	if draft != nil {
		doc, err := draft.Document()
		if err == nil {
			log.Printf("Restored draft for terminal %s (%d lines)", terminalID, len(doc.Lines))
			return doc
		}
		log.Printf("Discarding unreadable draft for terminal %s: %v", terminalID, err)
	}
	return entity.NewDocument(s.opts.DefaultType)
}

// refreshDefaultCustomer reloads the default customer whenever the
// terminal's customer reference changes. A fresh document picks it up.
func (s *SessionService) refreshDefaultCustomer(ctx context.Context, sess *session, term *entity.TerminalContext) {
	if term.DefaultCustomerID == sess.defaultCustomerRef {
		return
	}
	sess.defaultCustomerRef = term.DefaultCustomerID
	sess.defaultCustomer = nil
	if term.DefaultCustomerID == "" {
		return
	}

	customer, err := s.backend.GetCustomer(ctx, term.BackendToken, term.DefaultCustomerID)
	if err != nil {
		log.Printf("Failed to load default customer %s for terminal %s: %v", term.DefaultCustomerID, term.TerminalID, err)
		sess.defaultCustomerRef = ""
		return
	}
	sess.defaultCustomer = customer
	if sess.doc.IsEmpty() && sess.doc.CustomerID == "" {
		applyCustomer(sess.doc, customer)
	}
}

func applyCustomer(doc *entity.Document, c *entity.Customer) {
	doc.CustomerID = c.ID
	doc.CustomerName = c.Name
	doc.CustomerTaxID = c.TaxID
	doc.CustomerDiscountPercent = c.DiscountPercent
	doc.CustomerPriceTier = c.PriceTier
}

// reset replaces the document with a fresh one carrying the default customer
func (s *SessionService) reset(sess *session) {
	sess.doc = entity.NewDocument(s.opts.DefaultType)
	if sess.defaultCustomer != nil {
		applyCustomer(sess.doc, sess.defaultCustomer)
	}
}

// persist stores the draft. Failures are logged; the in-memory document
// stays authoritative.
func (s *SessionService) persist(ctx context.Context, terminalID string, sess *session) {
	draft, err := entity.NewDocumentDraft(terminalID, sess.doc)
	if err == nil {
		err = s.drafts.Save(ctx, draft)
	}
	if err != nil {
		log.Printf("Failed to persist draft for terminal %s: %v", terminalID, err)
	}
}

// discardDraft drops the stored draft once its document reached the backend
func (s *SessionService) discardDraft(ctx context.Context, terminalID string) {
	if err := s.drafts.Delete(ctx, terminalID); err != nil {
		log.Printf("Failed to discard draft for terminal %s: %v", terminalID, err)
	}
}

// fail raises the alert for err and returns it
func (s *SessionService) fail(term *entity.TerminalContext, err error) error {
	s.alerts.RaiseError(term.TerminalID, err)
	return err
}

// mutate runs fn on the locked, idle session, persists the draft on
// success and returns the resulting view
func (s *SessionService) mutate(ctx context.Context, term *entity.TerminalContext, fn func(sess *session) error) (*DocumentView, error) {
	sess := s.acquire(ctx, term)
	defer sess.mu.Unlock()

	if sess.state == enum.SaveStateSaving {
		return nil, s.fail(term, apperror.ErrSaveInProgress)
	}
	if err := fn(sess); err != nil {
		return nil, s.fail(term, err)
	}
	s.persist(ctx, term.TerminalID, sess)
	return newView(sess), nil
}

// Current returns the in-progress document of the terminal
func (s *SessionService) Current(ctx context.Context, term *entity.TerminalContext) *DocumentView {
	sess := s.acquire(ctx, term)
	defer sess.mu.Unlock()
	return newView(sess)
}

// NewSale discards the current document
func (s *SessionService) NewSale(ctx context.Context, term *entity.TerminalContext) (*DocumentView, error) {
	return s.mutate(ctx, term, func(sess *session) error {
		s.reset(sess)
		return nil
	})
}

// SetDocumentType switches between quote, order and invoice. Entering an
// invoice re-validates stock; leaving it clears stock flags and payments.
// Validation failures never block the switch.
func (s *SessionService) SetDocumentType(ctx context.Context, term *entity.TerminalContext, t enum.DocumentType) (*DocumentView, error) {
	return s.mutate(ctx, term, func(sess *session) error {
		if !t.IsValid() {
			return apperror.NewRuleError(fmt.Sprintf("Unknown document type %d", int(t)))
		}
		if t == enum.DocumentTypeOrder && !s.opts.OrdersEnabled {
			return apperror.NewRuleError("Orders are not enabled on this terminal")
		}
		sess.doc.Type = t
		if t == enum.DocumentTypeInvoice {
			s.revalidate(ctx, term, sess)
			return nil
		}
		sess.doc.ClearStockFlags()
		sess.doc.Payments = []entity.Payment{}
		return nil
	})
}

// RevalidateStock re-runs the bulk stock check on an invoice
func (s *SessionService) RevalidateStock(ctx context.Context, term *entity.TerminalContext) (*DocumentView, error) {
	return s.mutate(ctx, term, func(sess *session) error {
		s.revalidate(ctx, term, sess)
		return nil
	})
}

// revalidate flags under-stocked lines and raises one aggregated warning
func (s *SessionService) revalidate(ctx context.Context, term *entity.TerminalContext, sess *session) {
	if !s.opts.StockValidation || sess.doc.Type != enum.DocumentTypeInvoice || sess.doc.IsEmpty() {
		return
	}
	flags := s.stock.ValidateLines(ctx, term.BackendToken, sess.doc.Lines)

	var short []string
	for i, ok := range flags {
		sess.doc.Lines[i].HasStock = ok
		if !ok {
			short = append(short, sess.doc.Lines[i].Name)
		}
	}
	if len(short) > 0 {
		s.alerts.Raise(term.TerminalID, enum.AlertLevelWarning, "Insufficient stock: "+strings.Join(short, ", "))
	}
}
