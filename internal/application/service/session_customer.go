package service

import (
	"context"
	"strings"

	"github.com/sangkips/pos-terminal/internal/domain/entity"
	"github.com/sangkips/pos-terminal/pkg/apperror"
)

// SelectCustomer sets the customer of the document. The customer discount
// applies to lines added afterwards; existing lines keep theirs.
func (s *SessionService) SelectCustomer(ctx context.Context, term *entity.TerminalContext, customerID string) (*DocumentView, error) {
	return s.mutate(ctx, term, func(sess *session) error {
		if customerID == "" {
			return apperror.NewValidationError([]apperror.FieldError{{Field: "customer_id", Message: "Customer is required"}})
		}
		customer, err := s.backend.GetCustomer(ctx, term.BackendToken, customerID)
		if err != nil {
			return err
		}
		applyCustomer(sess.doc, customer)
		return nil
	})
}

// SelectCustomerByNIT looks the customer up by taxpayer id and selects it
func (s *SessionService) SelectCustomerByNIT(ctx context.Context, term *entity.TerminalContext, nit string) (*DocumentView, error) {
	return s.mutate(ctx, term, func(sess *session) error {
		nit = strings.ToUpper(strings.TrimSpace(nit))
		if nit == "" {
			return apperror.NewValidationError([]apperror.FieldError{{Field: "nit", Message: "NIT is required"}})
		}
		customer, err := s.backend.FindCustomerByNIT(ctx, term.BackendToken, nit)
		if err != nil {
			return err
		}
		applyCustomer(sess.doc, customer)
		return nil
	})
}

// SelectVendor sets the salesperson credited with the document
func (s *SessionService) SelectVendor(ctx context.Context, term *entity.TerminalContext, vendorID string) (*DocumentView, error) {
	return s.mutate(ctx, term, func(sess *session) error {
		if vendorID == "" {
			sess.doc.VendorID = ""
			sess.doc.VendorName = ""
			return nil
		}
		vendor, err := s.catalog.Vendor(ctx, term, vendorID)
		if err != nil {
			return err
		}
		sess.doc.VendorID = vendor.ID
		sess.doc.VendorName = vendor.Name
		return nil
	})
}
