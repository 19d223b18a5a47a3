package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sangkips/pos-terminal/internal/domain/enum"
	"github.com/sangkips/pos-terminal/internal/infrastructure/repository"
	"github.com/sangkips/pos-terminal/pkg/apperror"
	"github.com/sangkips/pos-terminal/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quoteOptions() SessionOptions {
	opts := defaultOptions()
	opts.DefaultType = enum.DocumentTypeQuote
	return opts
}

func TestFreshSaleCarriesDefaultCustomer(t *testing.T) {
	h := newHarness(t, defaultOptions())

	view := h.svc.Current(context.Background(), h.term)

	assert.Equal(t, "CF", view.Document.CustomerID)
	assert.Equal(t, enum.DocumentTypeInvoice, view.Document.Type)
	assert.True(t, view.PricingEditable)
}

func TestAddSameProductTwiceIncrementsQuantity(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, defaultOptions())

	_, err := h.svc.AddLine(ctx, h.term, "A")
	require.NoError(t, err)
	view, err := h.svc.AddLine(ctx, h.term, "A")
	require.NoError(t, err)

	require.Len(t, view.Document.Lines, 1)
	assert.Equal(t, 2, view.Document.Lines[0].Quantity)
	assert.Equal(t, 1, h.backend.Calls("products/get"))
}

func TestCustomerDiscountAppliesToNewLinesOnly(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, defaultOptions())

	_, err := h.svc.AddLine(ctx, h.term, "A")
	require.NoError(t, err)
	_, err = h.svc.SetQuantity(ctx, h.term, 0, 2)
	require.NoError(t, err)
	_, err = h.svc.SelectCustomer(ctx, h.term, "C10")
	require.NoError(t, err)
	view, err := h.svc.AddLine(ctx, h.term, "C")
	require.NoError(t, err)

	require.Len(t, view.Document.Lines, 2)
	assert.True(t, view.Document.Lines[0].DiscountPercent.IsZero())
	assert.Equal(t, "10", view.Document.Lines[1].DiscountPercent.String())
	assert.Equal(t, "Tienda Lupita", view.Document.CustomerName)
}

func TestTotalsWithTenPercentDiscount(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, defaultOptions())

	_, err := h.svc.AddLine(ctx, h.term, "A")
	require.NoError(t, err)
	_, err = h.svc.SetQuantity(ctx, h.term, 0, 2)
	require.NoError(t, err)
	view, err := h.svc.SetDiscount(ctx, h.term, 0, dec("10"))
	require.NoError(t, err)

	assert.Equal(t, "200.00", view.Totals.Subtotal.StringFixed(2))
	assert.Equal(t, "20.00", view.Totals.Discount.StringFixed(2))
	assert.Equal(t, "180.00", view.Totals.Total.StringFixed(2))
}

func TestPriceTierUsedWhenEnabled(t *testing.T) {
	ctx := context.Background()
	opts := defaultOptions()
	opts.PriceTiers = true
	h := newHarness(t, opts)

	_, err := h.svc.SelectCustomer(ctx, h.term, "C10")
	require.NoError(t, err)
	view, err := h.svc.AddLine(ctx, h.term, "B")
	require.NoError(t, err)

	assert.Equal(t, "40", view.Document.Lines[0].UnitPrice.String())
}

func TestDiscountBelowFloorIsRejected(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, defaultOptions())
	h.backend.minPrices["A"] = dec("95")

	_, err := h.svc.AddLine(ctx, h.term, "A")
	require.NoError(t, err)
	_, err = h.svc.SetQuantity(ctx, h.term, 0, 2)
	require.NoError(t, err)

	_, err = h.svc.SetDiscount(ctx, h.term, 0, dec("10"))
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	assert.Contains(t, h.alert(), "190.00")

	view := h.svc.Current(ctx, h.term)
	assert.True(t, view.Document.Lines[0].DiscountPercent.IsZero())

	view, err = h.svc.SetDiscount(ctx, h.term, 0, dec("5"))
	require.NoError(t, err)
	assert.Equal(t, "190.00", view.Totals.Total.StringFixed(2))
}

func TestDiscountOutOfRange(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, defaultOptions())
	_, err := h.svc.AddLine(ctx, h.term, "A")
	require.NoError(t, err)

	_, err = h.svc.SetDiscount(ctx, h.term, 0, dec("101"))
	assert.Error(t, err)
	_, err = h.svc.SetDiscount(ctx, h.term, 0, dec("-1"))
	assert.Error(t, err)
	assert.Equal(t, 0, h.backend.Calls("products/min-price"))
}

func TestSetSubtotalSolvesUnitPrice(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, defaultOptions())

	_, err := h.svc.AddLine(ctx, h.term, "A")
	require.NoError(t, err)
	_, err = h.svc.SetQuantity(ctx, h.term, 0, 2)
	require.NoError(t, err)
	_, err = h.svc.SetDiscount(ctx, h.term, 0, dec("10"))
	require.NoError(t, err)

	view, err := h.svc.SetSubtotal(ctx, h.term, 0, dec("90"))
	require.NoError(t, err)
	assert.True(t, view.Document.Lines[0].UnitPrice.Equal(dec("50")))
	assert.Equal(t, "90.00", view.Totals.Total.StringFixed(2))

	h.backend.minPrices["A"] = dec("60")
	_, err = h.svc.SetSubtotal(ctx, h.term, 0, dec("100"))
	require.Error(t, err)
	assert.Contains(t, h.alert(), "120.00")
	assert.True(t, h.svc.Current(ctx, h.term).Document.Lines[0].UnitPrice.Equal(dec("50")))
}

func TestLineAtFloorKeepsItsDiscount(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, defaultOptions())

	_, err := h.svc.AddLine(ctx, h.term, "A")
	require.NoError(t, err)
	_, err = h.svc.SetQuantity(ctx, h.term, 0, 3)
	require.NoError(t, err)
	_, err = h.svc.SetDiscount(ctx, h.term, 0, dec("10"))
	require.NoError(t, err)

	h.backend.minPrices["A"] = dec("10")
	view, err := h.svc.SetSubtotal(ctx, h.term, 0, dec("30"))
	require.NoError(t, err)
	assert.Equal(t, "30.00", view.Totals.Total.StringFixed(2))

	view, err = h.svc.SetDiscount(ctx, h.term, 0, dec("10"))
	require.NoError(t, err)
	assert.Equal(t, "30.00", view.Totals.Total.StringFixed(2))

	_, err = h.svc.SetDiscount(ctx, h.term, 0, dec("11"))
	require.Error(t, err)
	assert.Contains(t, h.alert(), "30.00")
}

func TestSetSubtotalWithFullDiscountIsValidationError(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, defaultOptions())

	_, err := h.svc.AddLine(ctx, h.term, "A")
	require.NoError(t, err)
	_, err = h.svc.SetDiscount(ctx, h.term, 0, dec("100"))
	require.NoError(t, err)

	_, err = h.svc.SetSubtotal(ctx, h.term, 0, dec("10"))
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestPricingIsReadOnlyOnQuote(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, quoteOptions())

	_, err := h.svc.AddLine(ctx, h.term, "A")
	require.NoError(t, err)

	_, err = h.svc.SetDiscount(ctx, h.term, 0, dec("5"))
	assert.ErrorIs(t, err, apperror.ErrReadOnlyPricing)
	_, err = h.svc.SetSubtotal(ctx, h.term, 0, dec("5"))
	assert.ErrorIs(t, err, apperror.ErrReadOnlyPricing)

	view, err := h.svc.SetQuantity(ctx, h.term, 0, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, view.Document.Lines[0].Quantity)
	view, err = h.svc.SetLineNote(ctx, h.term, 0, "sin bolsa")
	require.NoError(t, err)
	assert.Equal(t, "sin bolsa", view.Document.Lines[0].Note)
	assert.False(t, view.PricingEditable)
}

func TestAddLineWithInsufficientStockAborts(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, defaultOptions())
	h.backend.stock["A"] = 1
	h.backend.stock["B"] = 0

	_, err := h.svc.AddLine(ctx, h.term, "A")
	require.NoError(t, err)

	_, err = h.svc.AddLine(ctx, h.term, "A")
	require.Error(t, err)
	assert.Contains(t, h.alert(), "Arroz")

	_, err = h.svc.AddLine(ctx, h.term, "B")
	require.Error(t, err)
	assert.Contains(t, h.alert(), "Frijol")

	view := h.svc.Current(ctx, h.term)
	require.Len(t, view.Document.Lines, 1)
	assert.Equal(t, 1, view.Document.Lines[0].Quantity)
}

func TestStockIsNotCheckedOnQuote(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, quoteOptions())
	h.backend.stock["A"] = 0

	_, err := h.svc.AddLine(ctx, h.term, "A")
	require.NoError(t, err)
	assert.Equal(t, 0, h.backend.Calls("stock/check"))
}

func TestSetQuantityRejectionNamesProductAndMaximum(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, defaultOptions())
	h.backend.stock["A"] = 5

	_, err := h.svc.AddLine(ctx, h.term, "A")
	require.NoError(t, err)

	_, err = h.svc.SetQuantity(ctx, h.term, 0, 6)
	require.Error(t, err)
	assert.Contains(t, h.alert(), "Arroz")
	assert.Contains(t, h.alert(), "5")
	assert.Equal(t, 1, h.svc.Current(ctx, h.term).Document.Lines[0].Quantity)

	_, err = h.svc.SetQuantity(ctx, h.term, 0, 0)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, err = h.svc.SetQuantity(ctx, h.term, 3, 1)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestSwitchInvoiceToQuoteClearsStockFlags(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, quoteOptions())
	h.backend.stock["A"] = 1

	_, err := h.svc.AddLine(ctx, h.term, "A")
	require.NoError(t, err)
	_, err = h.svc.SetQuantity(ctx, h.term, 0, 3)
	require.NoError(t, err)
	_, err = h.svc.AddLine(ctx, h.term, "B")
	require.NoError(t, err)

	view, err := h.svc.SetDocumentType(ctx, h.term, enum.DocumentTypeInvoice)
	require.NoError(t, err)
	assert.False(t, view.Document.Lines[0].HasStock)
	assert.True(t, view.Document.Lines[1].HasStock)
	before := view.Totals

	view, err = h.svc.SetDocumentType(ctx, h.term, enum.DocumentTypeQuote)
	require.NoError(t, err)
	for _, l := range view.Document.Lines {
		assert.True(t, l.HasStock)
	}
	assert.Equal(t, 3, view.Document.Lines[0].Quantity)
	assert.True(t, view.Document.Lines[0].UnitPrice.Equal(dec("100")))
	assert.True(t, before.Total.Equal(view.Totals.Total))
}

func TestInvoiceStockFailureFlagsLineWithoutBlockingSave(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, quoteOptions())
	h.backend.stock["B"] = 0

	_, err := h.svc.AddLine(ctx, h.term, "A")
	require.NoError(t, err)
	_, err = h.svc.AddLine(ctx, h.term, "B")
	require.NoError(t, err)

	view, err := h.svc.SetDocumentType(ctx, h.term, enum.DocumentTypeInvoice)
	require.NoError(t, err)
	require.Len(t, view.Document.Lines, 2)
	assert.True(t, view.Document.Lines[0].HasStock)
	assert.False(t, view.Document.Lines[1].HasStock)
	assert.Equal(t, "Insufficient stock: Frijol", h.alert())

	_, err = h.svc.SelectVendor(ctx, h.term, "V1")
	require.NoError(t, err)
	_, err = h.svc.AddPayment(ctx, h.term, AddPaymentInput{TypeKey: "1", Amount: dec("150")})
	require.NoError(t, err)

	result, err := h.svc.Finalize(ctx, h.term)
	require.NoError(t, err)
	assert.Len(t, result.Ticket.Lines, 2)
}

func TestBulkRevalidationSurvivesFailedRequest(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, quoteOptions())
	h.backend.stockErr["A"] = apperror.NewTransportError(errors.New("timeout"))
	h.backend.stock["B"] = 0

	for _, id := range []string{"A", "B", "C"} {
		_, err := h.svc.AddLine(ctx, h.term, id)
		require.NoError(t, err)
	}

	view, err := h.svc.SetDocumentType(ctx, h.term, enum.DocumentTypeInvoice)
	require.NoError(t, err)

	assert.True(t, view.Document.Lines[0].HasStock)
	assert.False(t, view.Document.Lines[1].HasStock)
	assert.True(t, view.Document.Lines[2].HasStock)
	assert.Equal(t, 3, h.backend.Calls("stock/check"))
	assert.Equal(t, "Insufficient stock: Frijol", h.alert())
}

func TestOrderTypeIsGated(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, defaultOptions())

	_, err := h.svc.SetDocumentType(ctx, h.term, enum.DocumentTypeOrder)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	opts := defaultOptions()
	opts.OrdersEnabled = true
	h = newHarness(t, opts)
	view, err := h.svc.SetDocumentType(ctx, h.term, enum.DocumentTypeOrder)
	require.NoError(t, err)
	assert.Equal(t, enum.DocumentTypeOrder, view.Document.Type)
}

func TestLeavingInvoiceDropsPayments(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, defaultOptions())
	_, err := h.svc.AddLine(ctx, h.term, "A")
	require.NoError(t, err)
	_, err = h.svc.SelectVendor(ctx, h.term, "V1")
	require.NoError(t, err)
	_, err = h.svc.AddPayment(ctx, h.term, AddPaymentInput{TypeKey: "1", Amount: dec("10")})
	require.NoError(t, err)

	view, err := h.svc.SetDocumentType(ctx, h.term, enum.DocumentTypeQuote)
	require.NoError(t, err)
	assert.Empty(t, view.Document.Payments)
}

func TestPaymentRules(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, defaultOptions())

	_, err := h.svc.OpenPayment(ctx, h.term)
	assert.ErrorIs(t, err, apperror.ErrEmptyCart)

	_, err = h.svc.AddLine(ctx, h.term, "A")
	require.NoError(t, err)
	_, err = h.svc.OpenPayment(ctx, h.term)
	assert.ErrorIs(t, err, apperror.ErrVendorRequired)

	_, err = h.svc.SelectVendor(ctx, h.term, "V9")
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	_, err = h.svc.SelectVendor(ctx, h.term, "V1")
	require.NoError(t, err)

	pv, err := h.svc.OpenPayment(ctx, h.term)
	require.NoError(t, err)
	assert.Len(t, pv.Methods, 2)
	assert.Equal(t, "100.00", pv.Totals.Balance.StringFixed(2))

	_, err = h.svc.AddPayment(ctx, h.term, AddPaymentInput{TypeKey: "1", Amount: dec("0")})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	_, err = h.svc.AddPayment(ctx, h.term, AddPaymentInput{Amount: dec("5")})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	_, err = h.svc.AddPayment(ctx, h.term, AddPaymentInput{TypeKey: "2", Amount: dec("5")})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	pv, err = h.svc.AddPayment(ctx, h.term, AddPaymentInput{TypeKey: "2", Amount: dec("60"), BankReference: "AUTH-1"})
	require.NoError(t, err)
	pv, err = h.svc.AddPayment(ctx, h.term, AddPaymentInput{TypeKey: "1", Amount: dec("50")})
	require.NoError(t, err)
	assert.Equal(t, "-10.00", pv.Totals.Balance.StringFixed(2))
	assert.Equal(t, "Tarjeta", pv.Payments[0].Method)

	pv, err = h.svc.RemovePayment(ctx, h.term, 0)
	require.NoError(t, err)
	require.Len(t, pv.Payments, 1)
	assert.Equal(t, "50.00", pv.Totals.Balance.StringFixed(2))

	_, err = h.svc.RemovePayment(ctx, h.term, 5)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestPaymentsOnlyOnInvoice(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, quoteOptions())
	_, err := h.svc.AddLine(ctx, h.term, "A")
	require.NoError(t, err)
	_, err = h.svc.SelectVendor(ctx, h.term, "V1")
	require.NoError(t, err)

	_, err = h.svc.AddPayment(ctx, h.term, AddPaymentInput{TypeKey: "1", Amount: dec("10")})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestFinalizePreconditions(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, defaultOptions())

	_, err := h.svc.Finalize(ctx, h.term)
	assert.ErrorIs(t, err, apperror.ErrEmptyCart)

	_, err = h.svc.AddLine(ctx, h.term, "A")
	require.NoError(t, err)
	_, err = h.svc.Finalize(ctx, h.term)
	assert.ErrorIs(t, err, apperror.ErrVendorRequired)
	assert.Equal(t, apperror.ErrVendorRequired.Message, h.alert())

	_, err = h.svc.SelectVendor(ctx, h.term, "V1")
	require.NoError(t, err)
	_, err = h.svc.Finalize(ctx, h.term)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	assert.Equal(t, 0, h.backend.Calls("tickets/save"))
	assert.False(t, h.svc.Current(ctx, h.term).Saving)
}

func TestFinalizeBuildsTicketDataAndResets(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, defaultOptions())

	_, err := h.svc.AddLine(ctx, h.term, "A")
	require.NoError(t, err)
	_, err = h.svc.SelectCustomer(ctx, h.term, "C10")
	require.NoError(t, err)
	_, err = h.svc.SelectVendor(ctx, h.term, "V1")
	require.NoError(t, err)
	_, err = h.svc.SetGeneralNote(ctx, h.term, "entregar en bodega")
	require.NoError(t, err)
	_, err = h.svc.SetFEL(ctx, h.term, true)
	require.NoError(t, err)
	_, err = h.svc.AddPayment(ctx, h.term, AddPaymentInput{TypeKey: "1", Amount: dec("120")})
	require.NoError(t, err)

	result, err := h.svc.Finalize(ctx, h.term)
	require.NoError(t, err)

	ticket := result.Ticket
	assert.Equal(t, "R-1", ticket.Reference)
	assert.Equal(t, "FACTURA", ticket.DocumentLabel)
	assert.Equal(t, "Tienda Lupita", ticket.CustomerName)
	assert.Equal(t, "1234567-8", ticket.CustomerTaxID)
	assert.Equal(t, "Luis", ticket.VendorName)
	assert.Equal(t, "Tienda", ticket.Company)
	assert.Equal(t, "Zona 1", ticket.Address)
	assert.Equal(t, "entregar en bodega", ticket.Note)
	assert.True(t, ticket.FEL)
	assert.Equal(t, "100.00", ticket.Total.StringFixed(2))
	assert.Equal(t, "20.00", ticket.Change.StringFixed(2))
	assert.False(t, result.Printed)

	saved := h.backend.saved[0]
	assert.Equal(t, enum.TicketModeFinalized, saved.Mode)
	require.Len(t, saved.Payments, 1)
	assert.Equal(t, 1, saved.Payments[0].Number)
	assert.Equal(t, "-20.00", saved.Difference.StringFixed(2))

	view := h.svc.Current(ctx, h.term)
	assert.Empty(t, view.Document.Lines)
	assert.Empty(t, view.Document.Payments)
	assert.Equal(t, "CF", view.Document.CustomerID)
	assert.Empty(t, view.Document.VendorID)

	last, err := h.svc.LastTicket(ctx, h.term)
	require.NoError(t, err)
	assert.Equal(t, ticket, last)
}

func TestFinalizeQuoteWithoutPayments(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, quoteOptions())
	_, err := h.svc.AddLine(ctx, h.term, "A")
	require.NoError(t, err)
	_, err = h.svc.SelectVendor(ctx, h.term, "V2")
	require.NoError(t, err)

	result, err := h.svc.Finalize(ctx, h.term)
	require.NoError(t, err)
	assert.Equal(t, "COTIZACION", result.Ticket.DocumentLabel)
	assert.Equal(t, int(enum.DocumentTypeQuote), h.backend.saved[0].Type)
	assert.Empty(t, h.backend.saved[0].Payments)
}

func TestFailedSaveKeepsDocument(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, defaultOptions())
	h.backend.saveErr = apperror.NewBackendError(7, "Serie de facturas agotada")

	_, err := h.svc.AddLine(ctx, h.term, "A")
	require.NoError(t, err)
	_, err = h.svc.SelectVendor(ctx, h.term, "V1")
	require.NoError(t, err)
	_, err = h.svc.AddPayment(ctx, h.term, AddPaymentInput{TypeKey: "1", Amount: dec("100")})
	require.NoError(t, err)

	_, err = h.svc.Finalize(ctx, h.term)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindBackend))
	assert.Equal(t, "Serie de facturas agotada", h.alert())

	view := h.svc.Current(ctx, h.term)
	assert.Len(t, view.Document.Lines, 1)
	assert.Len(t, view.Document.Payments, 1)
	assert.False(t, view.Saving)

	_, err = h.svc.LastTicket(ctx, h.term)
	assert.Error(t, err)
}

func TestSaveInProgressRejectsMutationsAndSecondSave(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, defaultOptions())

	_, err := h.svc.AddLine(ctx, h.term, "A")
	require.NoError(t, err)
	_, err = h.svc.SelectVendor(ctx, h.term, "V1")
	require.NoError(t, err)
	_, err = h.svc.AddPayment(ctx, h.term, AddPaymentInput{TypeKey: "1", Amount: dec("100")})
	require.NoError(t, err)

	h.backend.saveGate = make(chan struct{})
	h.backend.saveStarted = make(chan struct{}, 1)

	done := make(chan error, 1)
	go func() {
		_, err := h.svc.Finalize(ctx, h.term)
		done <- err
	}()
	<-h.backend.saveStarted

	assert.True(t, h.svc.Current(ctx, h.term).Saving)
	_, err = h.svc.AddLine(ctx, h.term, "B")
	assert.ErrorIs(t, err, apperror.ErrSaveInProgress)
	_, err = h.svc.Finalize(ctx, h.term)
	assert.ErrorIs(t, err, apperror.ErrSaveInProgress)
	_, err = h.svc.Suspend(ctx, h.term)
	assert.ErrorIs(t, err, apperror.ErrSaveInProgress)

	close(h.backend.saveGate)
	require.NoError(t, <-done)
	assert.Equal(t, 1, h.backend.Calls("tickets/save"))

	_, err = h.svc.AddLine(ctx, h.term, "B")
	assert.NoError(t, err)
}

func TestSuspendAndResumeRoundTrip(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, defaultOptions())

	_, err := h.svc.SelectCustomer(ctx, h.term, "C10")
	require.NoError(t, err)
	_, err = h.svc.AddLine(ctx, h.term, "A")
	require.NoError(t, err)
	_, err = h.svc.AddLine(ctx, h.term, "B")
	require.NoError(t, err)
	_, err = h.svc.SetQuantity(ctx, h.term, 1, 3)
	require.NoError(t, err)
	before, err := h.svc.SelectVendor(ctx, h.term, "V1")
	require.NoError(t, err)

	saved, err := h.svc.Suspend(ctx, h.term)
	require.NoError(t, err)
	assert.Equal(t, enum.TicketModeSuspended, h.backend.saved[0].Mode)

	fresh := h.svc.Current(ctx, h.term)
	assert.Empty(t, fresh.Document.Lines)
	assert.Equal(t, "CF", fresh.Document.CustomerID)

	after, err := h.svc.Resume(ctx, h.term, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, len(before.Document.Lines), len(after.Document.Lines))
	assert.Equal(t, before.Document.CustomerID, after.Document.CustomerID)
	assert.True(t, before.Totals.Total.Equal(after.Totals.Total))
	assert.Equal(t, saved.ID, after.Document.OriginatingTicketID)
	assert.Equal(t, "V1", after.Document.VendorID)
	assert.Equal(t, "10", after.Document.CustomerDiscountPercent.String())
}

func TestSuspendNeedsVendorAndLines(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, quoteOptions())

	_, err := h.svc.Suspend(ctx, h.term)
	assert.ErrorIs(t, err, apperror.ErrEmptyCart)

	_, err = h.svc.AddLine(ctx, h.term, "A")
	require.NoError(t, err)
	_, err = h.svc.Suspend(ctx, h.term)
	assert.ErrorIs(t, err, apperror.ErrVendorRequired)
}

func TestResumeOrderTicketEvenWhenOrdersDisabled(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, defaultOptions())
	h.backend.tickets["42"] = &entityTicketOrder

	view, err := h.svc.Resume(ctx, h.term, "42")
	require.NoError(t, err)
	assert.Equal(t, enum.DocumentTypeOrder, view.Document.Type)
	assert.Equal(t, 0, h.backend.Calls("stock/check"))
}

func TestResumeInvoiceRevalidatesStock(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, defaultOptions())
	invoice := entityTicketOrder
	invoice.Type = int(enum.DocumentTypeInvoice)
	h.backend.tickets["43"] = &invoice
	h.backend.stock["A"] = 0

	view, err := h.svc.Resume(ctx, h.term, "43")
	require.NoError(t, err)
	assert.False(t, view.Document.Lines[0].HasStock)
	assert.Equal(t, "Insufficient stock: Arroz", h.alert())
}

func TestListTicketsIsPaginated(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, quoteOptions())

	for i := 0; i < 3; i++ {
		_, err := h.svc.AddLine(ctx, h.term, "A")
		require.NoError(t, err)
		_, err = h.svc.SelectVendor(ctx, h.term, "V1")
		require.NoError(t, err)
		_, err = h.svc.Suspend(ctx, h.term)
		require.NoError(t, err)
	}

	page, err := h.svc.ListTickets(ctx, h.term, enum.TicketModeSuspended, "", &pagination.PaginationParams{Page: 2, PerPage: 2})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, int64(3), page.Pagination.Total)
	assert.False(t, page.Pagination.HasNext)
}

func TestExtraFieldsSavedAfterFinalize(t *testing.T) {
	ctx := context.Background()
	opts := quoteOptions()
	opts.ExtraFields = true
	h := newHarness(t, opts)

	_, err := h.svc.AddLine(ctx, h.term, "A")
	require.NoError(t, err)
	_, err = h.svc.SelectVendor(ctx, h.term, "V1")
	require.NoError(t, err)
	_, err = h.svc.SetExtraFields(ctx, h.term, map[string]string{"placa": "P-123"})
	require.NoError(t, err)

	result, err := h.svc.Finalize(ctx, h.term)
	require.NoError(t, err)
	assert.Equal(t, "P-123", h.backend.extraFields[result.Saved.ID]["placa"])
}

func TestExtraFieldsDisabled(t *testing.T) {
	h := newHarness(t, defaultOptions())
	_, err := h.svc.SetExtraFields(context.Background(), h.term, map[string]string{"a": "b"})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestDefaultCustomerReloadsWhenReferenceChanges(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, defaultOptions())

	assert.Equal(t, "CF", h.svc.Current(ctx, h.term).Document.CustomerID)
	h.svc.Current(ctx, h.term)
	assert.Equal(t, 1, h.backend.Calls("customers/get"))

	moved := *h.term
	moved.DefaultCustomerID = "C10"
	view, err := h.svc.NewSale(ctx, &moved)
	require.NoError(t, err)
	assert.Equal(t, "C10", view.Document.CustomerID)
	assert.Equal(t, 2, h.backend.Calls("customers/get"))
}

func TestSelectCustomerByNIT(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, defaultOptions())

	view, err := h.svc.SelectCustomerByNIT(ctx, h.term, " 1234567-8 ")
	require.NoError(t, err)
	assert.Equal(t, "C10", view.Document.CustomerID)

	_, err = h.svc.SelectCustomerByNIT(ctx, h.term, "999")
	assert.Error(t, err)
	assert.Equal(t, "C10", h.svc.Current(ctx, h.term).Document.CustomerID)
}

func TestDraftSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	drafts := repository.NewMemoryDraftRepository()
	backend := newFakeBackend()

	first := newHarnessWith(t, backend, drafts, defaultOptions())
	_, err := first.svc.AddLine(ctx, first.term, "A")
	require.NoError(t, err)
	_, err = first.svc.SetQuantity(ctx, first.term, 0, 4)
	require.NoError(t, err)

	second := newHarnessWith(t, backend, drafts, defaultOptions())
	view := second.svc.Current(ctx, second.term)
	require.Len(t, view.Document.Lines, 1)
	assert.Equal(t, 4, view.Document.Lines[0].Quantity)
}

func TestSavedDocumentLeavesNoDraft(t *testing.T) {
	ctx := context.Background()
	drafts := repository.NewMemoryDraftRepository()
	h := newHarnessWith(t, newFakeBackend(), drafts, quoteOptions())

	_, err := h.svc.AddLine(ctx, h.term, "A")
	require.NoError(t, err)
	_, err = h.svc.SelectVendor(ctx, h.term, "V2")
	require.NoError(t, err)
	draft, err := drafts.Get(ctx, h.term.TerminalID)
	require.NoError(t, err)
	require.NotNil(t, draft)

	_, err = h.svc.Suspend(ctx, h.term)
	require.NoError(t, err)

	draft, err = drafts.Get(ctx, h.term.TerminalID)
	require.NoError(t, err)
	assert.Nil(t, draft)
}

func TestRemoveLine(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, defaultOptions())
	_, err := h.svc.AddLine(ctx, h.term, "A")
	require.NoError(t, err)
	_, err = h.svc.AddLine(ctx, h.term, "B")
	require.NoError(t, err)

	view, err := h.svc.RemoveLine(ctx, h.term, 0)
	require.NoError(t, err)
	require.Len(t, view.Document.Lines, 1)
	assert.Equal(t, "B", view.Document.Lines[0].ProductID)

	_, err = h.svc.RemoveLine(ctx, h.term, 1)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}
