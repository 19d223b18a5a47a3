package service

import (
	"context"
	"fmt"

	"github.com/sangkips/pos-terminal/internal/domain/entity"
	"github.com/sangkips/pos-terminal/internal/domain/enum"
	"github.com/sangkips/pos-terminal/pkg/apperror"
	"github.com/shopspring/decimal"
)

// PaymentView is what the payment dialog shows
type PaymentView struct {
	Totals   entity.Totals          `json:"totals"`
	Payments []entity.Payment       `json:"payments"`
	Methods  []entity.PaymentMethod `json:"methods"`
}

type AddPaymentInput struct {
	TypeKey       string
	Amount        decimal.Decimal
	BankReference string
}

// checkoutReady holds the rules shared by opening payment, saving and
// suspending: a non-empty cart with a vendor
func checkoutReady(doc *entity.Document) error {
	if doc.IsEmpty() {
		return apperror.ErrEmptyCart
	}
	if doc.VendorID == "" {
		return apperror.ErrVendorRequired
	}
	return nil
}

func paymentView(doc *entity.Document, methods []entity.PaymentMethod) *PaymentView {
	return &PaymentView{
		Totals:   doc.Totals(),
		Payments: append([]entity.Payment{}, doc.Payments...),
		Methods:  methods,
	}
}

// OpenPayment checks an invoice can be paid and returns the dialog data
func (s *SessionService) OpenPayment(ctx context.Context, term *entity.TerminalContext) (*PaymentView, error) {
	sess := s.acquire(ctx, term)
	defer sess.mu.Unlock()

	if sess.state == enum.SaveStateSaving {
		return nil, s.fail(term, apperror.ErrSaveInProgress)
	}
	if err := s.paymentAllowed(sess.doc); err != nil {
		return nil, s.fail(term, err)
	}
	methods, err := s.catalog.PaymentMethods(ctx, term)
	if err != nil {
		return nil, s.fail(term, err)
	}
	return paymentView(sess.doc, methods), nil
}

func (s *SessionService) paymentAllowed(doc *entity.Document) error {
	if doc.Type != enum.DocumentTypeInvoice {
		return apperror.NewRuleError("Payments are only collected on invoices")
	}
	return checkoutReady(doc)
}

// AddPayment appends a payment. The balance may go negative, which is the
// change owed to the customer.
func (s *SessionService) AddPayment(ctx context.Context, term *entity.TerminalContext, input AddPaymentInput) (*PaymentView, error) {
	var methods []entity.PaymentMethod
	view, err := s.mutate(ctx, term, func(sess *session) error {
		if err := s.paymentAllowed(sess.doc); err != nil {
			return err
		}
		var fieldErrors []apperror.FieldError
		if !input.Amount.IsPositive() {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "amount", Message: "Amount must be greater than zero"})
		}
		if input.TypeKey == "" {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "type_key", Message: "Select a payment method"})
		}
		if len(fieldErrors) > 0 {
			return apperror.NewValidationError(fieldErrors)
		}
		var err error
		if methods, err = s.catalog.PaymentMethods(ctx, term); err != nil {
			return err
		}
		method, err := s.catalog.PaymentMethod(ctx, term, input.TypeKey)
		if err != nil {
			return err
		}
		if method.RequiresReference && input.BankReference == "" {
			return apperror.NewValidationError([]apperror.FieldError{{Field: "bank_reference", Message: fmt.Sprintf("%s requires a bank reference", method.Label)}})
		}
		sess.doc.Payments = append(sess.doc.Payments, entity.Payment{
			Method:        method.Label,
			TypeKey:       method.TypeKey,
			Amount:        input.Amount,
			BankReference: input.BankReference,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paymentView(view.Document, methods), nil
}

// RemovePayment drops the payment at index
func (s *SessionService) RemovePayment(ctx context.Context, term *entity.TerminalContext, index int) (*PaymentView, error) {
	var methods []entity.PaymentMethod
	view, err := s.mutate(ctx, term, func(sess *session) error {
		if index < 0 || index >= len(sess.doc.Payments) {
			return apperror.NewValidationError([]apperror.FieldError{{Field: "index", Message: fmt.Sprintf("No payment at position %d", index)}})
		}
		var err error
		if methods, err = s.catalog.PaymentMethods(ctx, term); err != nil {
			return err
		}
		sess.doc.RemovePayment(index)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paymentView(view.Document, methods), nil
}
