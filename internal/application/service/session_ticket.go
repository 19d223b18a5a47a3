package service

import (
	"context"
	"fmt"
	"log"

	"github.com/sangkips/pos-terminal/internal/domain/entity"
	"github.com/sangkips/pos-terminal/internal/domain/enum"
	"github.com/sangkips/pos-terminal/internal/domain/gateway"
	"github.com/sangkips/pos-terminal/pkg/apperror"
	"github.com/sangkips/pos-terminal/pkg/pagination"
)

// FinalizeResult is returned after a document was saved. PrintError is set
// when the ticket was saved but could not be printed.
type FinalizeResult struct {
	Saved      *entity.SavedTicket `json:"saved"`
	Ticket     *entity.TicketData  `json:"ticket"`
	Printed    bool                `json:"printed"`
	PrintError string              `json:"print_error,omitempty"`
}

// beginSave moves an idle session to saving and returns a snapshot of the
// document. The session lock is released on return.
func (s *SessionService) beginSave(ctx context.Context, term *entity.TerminalContext, check func(doc *entity.Document) error) (*session, *entity.Document, error) {
	sess := s.acquire(ctx, term)
	defer sess.mu.Unlock()

	if sess.state == enum.SaveStateSaving {
		return nil, nil, s.fail(term, apperror.ErrSaveInProgress)
	}
	if err := check(sess.doc); err != nil {
		return nil, nil, s.fail(term, err)
	}
	sess.state = enum.SaveStateSaving
	return sess, sess.doc.Clone(), nil
}

// Finalize saves the document as a closed sale. Invoices need at least one
// payment; quotes and orders are saved without payments. On success the
// ticket data is kept as the terminal's last ticket and the document resets.
func (s *SessionService) Finalize(ctx context.Context, term *entity.TerminalContext) (*FinalizeResult, error) {
	sess, snapshot, err := s.beginSave(ctx, term, func(doc *entity.Document) error {
		if err := checkoutReady(doc); err != nil {
			return err
		}
		if doc.Type == enum.DocumentTypeInvoice && len(doc.Payments) == 0 {
			return apperror.NewRuleError("Add at least one payment")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if snapshot.Type != enum.DocumentTypeInvoice {
		snapshot.Payments = []entity.Payment{}
	}

	saved, err := s.backend.SaveTicket(ctx, term.BackendToken, entity.TicketFromDocument(snapshot, term.TerminalID, enum.TicketModeFinalized))

	sess.mu.Lock()
	sess.state = enum.SaveStateIdle
	if err != nil {
		sess.mu.Unlock()
		return nil, s.fail(term, err)
	}

	if s.opts.ExtraFields && len(snapshot.ExtraFields) > 0 {
		if err := s.backend.SaveExtraFields(ctx, term.BackendToken, saved.ID, snapshot.ExtraFields); err != nil {
			log.Printf("Ticket %s saved without extra fields: %v", saved.ID, err)
			s.alerts.Raise(term.TerminalID, enum.AlertLevelWarning, "The sale was saved but its extra fields were not stored")
		}
	}

	data := entity.NewTicketData(snapshot, saved, term)
	sess.lastTicket = data
	s.reset(sess)
	s.discardDraft(ctx, term.TerminalID)
	sess.mu.Unlock()

	log.Printf("Terminal %s saved %s %s", term.TerminalID, snapshot.Type, saved.Reference)
	s.alerts.Raise(term.TerminalID, enum.AlertLevelSuccess, fmt.Sprintf("%s %s saved", snapshot.Type, saved.Reference))

	result := &FinalizeResult{Saved: saved, Ticket: data}
	if s.opts.AutoPrint && s.printer != nil {
		if err := s.printer.PrintTicket(ctx, data); err != nil {
			result.PrintError = err.Error()
			s.alerts.Raise(term.TerminalID, enum.AlertLevelWarning, "The ticket was saved but could not be printed")
		} else {
			result.Printed = true
		}
	}
	return result, nil
}

// Suspend parks the document on the backend so it can be resumed later.
// Payments are not carried.
func (s *SessionService) Suspend(ctx context.Context, term *entity.TerminalContext) (*entity.SavedTicket, error) {
	sess, snapshot, err := s.beginSave(ctx, term, checkoutReady)
	if err != nil {
		return nil, err
	}
	snapshot.Payments = []entity.Payment{}

	saved, err := s.backend.SaveTicket(ctx, term.BackendToken, entity.TicketFromDocument(snapshot, term.TerminalID, enum.TicketModeSuspended))

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.state = enum.SaveStateIdle
	if err != nil {
		return nil, s.fail(term, err)
	}
	s.reset(sess)
	s.discardDraft(ctx, term.TerminalID)
	s.alerts.Raise(term.TerminalID, enum.AlertLevelSuccess, fmt.Sprintf("Ticket %s suspended", saved.Reference))
	return saved, nil
}

// Resume loads a suspended or historical ticket into the session,
// replacing the current document. Stock is re-validated for invoices.
func (s *SessionService) Resume(ctx context.Context, term *entity.TerminalContext, ticketID string) (*DocumentView, error) {
	return s.mutate(ctx, term, func(sess *session) error {
		if ticketID == "" {
			return apperror.NewValidationError([]apperror.FieldError{{Field: "ticket_id", Message: "Ticket is required"}})
		}
		ticket, err := s.backend.GetTicket(ctx, term.BackendToken, ticketID)
		if err != nil {
			return err
		}
		doc, err := ticket.ToDocument()
		if err != nil {
			return apperror.NewRuleError(err.Error())
		}
		if doc.CustomerID != "" {
			if customer, err := s.backend.GetCustomer(ctx, term.BackendToken, doc.CustomerID); err == nil {
				doc.CustomerDiscountPercent = customer.DiscountPercent
				doc.CustomerPriceTier = customer.PriceTier
			} else {
				log.Printf("Resumed ticket %s without customer discount: %v", ticketID, err)
			}
		}
		sess.doc = doc
		s.revalidate(ctx, term, sess)
		return nil
	})
}

// ListTickets returns one page of the suspended or historical tickets
func (s *SessionService) ListTickets(ctx context.Context, term *entity.TerminalContext, mode enum.TicketMode, search string, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.TicketSummary], error) {
	tickets, err := s.backend.ListTickets(ctx, term.BackendToken, gateway.TicketFilter{
		TerminalID: term.TerminalID,
		Mode:       mode,
		Search:     search,
	})
	if err != nil {
		return nil, s.fail(term, err)
	}
	return pagination.Slice(tickets, params), nil
}

// LastTicket returns the ticket data of the last finalized sale
func (s *SessionService) LastTicket(ctx context.Context, term *entity.TerminalContext) (*entity.TicketData, error) {
	sess := s.acquire(ctx, term)
	defer sess.mu.Unlock()
	if sess.lastTicket == nil {
		return nil, apperror.NewNotFoundError("Last ticket")
	}
	return sess.lastTicket, nil
}

// ReprintLast sends the last ticket to the printer again
func (s *SessionService) ReprintLast(ctx context.Context, term *entity.TerminalContext) (*entity.TicketData, error) {
	data, err := s.LastTicket(ctx, term)
	if err != nil {
		return nil, s.fail(term, err)
	}
	if s.printer == nil {
		return data, nil
	}
	if err := s.printer.PrintTicket(ctx, data); err != nil {
		s.alerts.Raise(term.TerminalID, enum.AlertLevelWarning, "The ticket could not be printed")
		return data, err
	}
	return data, nil
}
