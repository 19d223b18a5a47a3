package service

import (
	"context"
	"fmt"

	"github.com/sangkips/pos-terminal/internal/domain/entity"
	"github.com/sangkips/pos-terminal/internal/domain/enum"
	"github.com/sangkips/pos-terminal/pkg/apperror"
	"github.com/sangkips/pos-terminal/pkg/money"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

func lineIndexError(index int) error {
	return apperror.NewValidationError([]apperror.FieldError{
		{Field: "index", Message: fmt.Sprintf("No cart line at position %d", index)},
	})
}

// checkStock gates quantity on an invoice when stock validation is on
func (s *SessionService) checkStock(ctx context.Context, term *entity.TerminalContext, doc *entity.Document, productID, name string, quantity int) error {
	if !s.opts.StockValidation || doc.Type != enum.DocumentTypeInvoice {
		return nil
	}
	check, err := s.stock.Check(ctx, term.BackendToken, productID, quantity)
	if err != nil {
		return err
	}
	if !check.OK {
		return apperror.NewRuleError(fmt.Sprintf("Insufficient stock for %s, maximum available is %d", name, check.Available))
	}
	return nil
}

// AddLine adds one unit of productID. A product already in the cart gets
// its quantity incremented; a new line takes the customer discount.
func (s *SessionService) AddLine(ctx context.Context, term *entity.TerminalContext, productID string) (*DocumentView, error) {
	return s.mutate(ctx, term, func(sess *session) error {
		doc := sess.doc
		if i := doc.IndexOf(productID); i >= 0 {
			line := &doc.Lines[i]
			if err := s.checkStock(ctx, term, doc, line.ProductID, line.Name, line.Quantity+1); err != nil {
				return err
			}
			line.Quantity++
			line.HasStock = true
			return nil
		}

		product, err := s.backend.GetProduct(ctx, term.BackendToken, productID)
		if err != nil {
			return err
		}
		if err := s.checkStock(ctx, term, doc, product.ID, product.Name, 1); err != nil {
			return err
		}

		price := product.Price
		if s.opts.PriceTiers {
			price = product.PriceFor(doc.CustomerPriceTier)
		}
		doc.Lines = append(doc.Lines, entity.CartLine{
			ProductID:       product.ID,
			Code:            product.Code,
			Name:            product.Name,
			UnitPrice:       price,
			Quantity:        1,
			DiscountPercent: doc.CustomerDiscountPercent,
			HasStock:        true,
		})
		return nil
	})
}

// SetQuantity sets an absolute quantity on the line at index
func (s *SessionService) SetQuantity(ctx context.Context, term *entity.TerminalContext, index, quantity int) (*DocumentView, error) {
	return s.mutate(ctx, term, func(sess *session) error {
		if !sess.doc.HasLine(index) {
			return lineIndexError(index)
		}
		if quantity < 1 {
			return apperror.NewValidationError([]apperror.FieldError{{Field: "quantity", Message: "Quantity must be at least 1"}})
		}
		line := &sess.doc.Lines[index]
		if err := s.checkStock(ctx, term, sess.doc, line.ProductID, line.Name, quantity); err != nil {
			return err
		}
		line.Quantity = quantity
		line.HasStock = true
		return nil
	})
}

// priceFloor fetches the minimum price of the line and returns the lowest
// subtotal the line may reach at its quantity
func (s *SessionService) priceFloor(ctx context.Context, term *entity.TerminalContext, line *entity.CartLine) (decimal.Decimal, error) {
	minPrice, err := s.backend.GetMinPrice(ctx, term.BackendToken, line.ProductID)
	if err != nil {
		return decimal.Zero, err
	}
	return minPrice.MinPrice.Mul(decimal.NewFromInt(int64(line.Quantity))), nil
}

func belowFloor(floor decimal.Decimal) error {
	return apperror.NewRuleError(fmt.Sprintf("The line subtotal cannot be lower than %s", money.Format(floor)))
}

// SetDiscount changes the discount percent of a line. The discounted
// subtotal must stay at or above the backend minimum price times quantity.
func (s *SessionService) SetDiscount(ctx context.Context, term *entity.TerminalContext, index int, pct decimal.Decimal) (*DocumentView, error) {
	return s.mutate(ctx, term, func(sess *session) error {
		if !sess.doc.HasLine(index) {
			return lineIndexError(index)
		}
		if !sess.doc.Type.PricingEditable() {
			return apperror.ErrReadOnlyPricing
		}
		if pct.IsNegative() || pct.GreaterThan(hundred) {
			return apperror.NewValidationError([]apperror.FieldError{{Field: "discount", Message: "Discount must be between 0 and 100"}})
		}
		line := &sess.doc.Lines[index]
		floor, err := s.priceFloor(ctx, term, line)
		if err != nil {
			return err
		}
		if !line.MeetsFloor(pct, floor) {
			return belowFloor(floor)
		}
		line.DiscountPercent = pct
		return nil
	})
}

// SetSubtotal sets the discounted subtotal of a line directly by solving
// for the unit price with the current discount and quantity.
func (s *SessionService) SetSubtotal(ctx context.Context, term *entity.TerminalContext, index int, subtotal decimal.Decimal) (*DocumentView, error) {
	return s.mutate(ctx, term, func(sess *session) error {
		if !sess.doc.HasLine(index) {
			return lineIndexError(index)
		}
		if !sess.doc.Type.PricingEditable() {
			return apperror.ErrReadOnlyPricing
		}
		if subtotal.IsNegative() {
			return apperror.NewValidationError([]apperror.FieldError{{Field: "subtotal", Message: "Subtotal cannot be negative"}})
		}
		line := &sess.doc.Lines[index]
		factor := money.Remaining(line.DiscountPercent).Mul(decimal.NewFromInt(int64(line.Quantity)))
		if !factor.IsPositive() {
			return apperror.NewRuleError("The subtotal cannot be set on a line with a 100% discount")
		}
		floor, err := s.priceFloor(ctx, term, line)
		if err != nil {
			return err
		}
		if money.Round(subtotal).LessThan(money.Round(floor)) {
			return belowFloor(floor)
		}
		line.UnitPrice = subtotal.Div(factor)
		return nil
	})
}

// RemoveLine drops the line at index
func (s *SessionService) RemoveLine(ctx context.Context, term *entity.TerminalContext, index int) (*DocumentView, error) {
	return s.mutate(ctx, term, func(sess *session) error {
		if !sess.doc.HasLine(index) {
			return lineIndexError(index)
		}
		sess.doc.RemoveLine(index)
		return nil
	})
}

func (s *SessionService) SetLineNote(ctx context.Context, term *entity.TerminalContext, index int, note string) (*DocumentView, error) {
	return s.mutate(ctx, term, func(sess *session) error {
		if !sess.doc.HasLine(index) {
			return lineIndexError(index)
		}
		sess.doc.Lines[index].Note = note
		return nil
	})
}

func (s *SessionService) SetGeneralNote(ctx context.Context, term *entity.TerminalContext, note string) (*DocumentView, error) {
	return s.mutate(ctx, term, func(sess *session) error {
		sess.doc.GeneralNote = note
		return nil
	})
}

// SetExtraFields replaces the open key/value fields of the document
func (s *SessionService) SetExtraFields(ctx context.Context, term *entity.TerminalContext, fields map[string]string) (*DocumentView, error) {
	return s.mutate(ctx, term, func(sess *session) error {
		if !s.opts.ExtraFields {
			return apperror.NewRuleError("Extra fields are not enabled on this terminal")
		}
		sess.doc.ExtraFields = make(map[string]string, len(fields))
		for k, v := range fields {
			sess.doc.ExtraFields[k] = v
		}
		return nil
	})
}

// SetFEL marks the document for electronic invoicing
func (s *SessionService) SetFEL(ctx context.Context, term *entity.TerminalContext, fel bool) (*DocumentView, error) {
	return s.mutate(ctx, term, func(sess *session) error {
		sess.doc.FEL = fel
		return nil
	})
}
