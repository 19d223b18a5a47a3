package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/sangkips/pos-terminal/internal/domain/entity"
	"github.com/sangkips/pos-terminal/pkg/money"
	"github.com/sangkips/pos-terminal/pkg/printer"
	"github.com/shopspring/decimal"
)

// PrinterService renders ticket data to ESC/POS and sends it to the
// configured thermal printer.
type PrinterService struct {
	printer     printer.Printer
	printerType string
	width       int
}

// NewPrinterService creates a new printer service.
func NewPrinterService(p printer.Printer, printerType string, width int) *PrinterService {
	if width <= 0 {
		width = printer.Width58mm
	}
	return &PrinterService{
		printer:     p,
		printerType: printerType,
		width:       width,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
	Width      int    `json:"width"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
		Width:      s.width,
	}
}

// TestPrint sends a sample ticket to the printer.
// The ticket data is returned even when printing fails.
func (s *PrinterService) TestPrint(ctx context.Context, term *entity.TerminalContext) (*entity.TicketData, error) {
	ten := decimal.NewFromInt(10)
	data := &entity.TicketData{
		Company:       "PRINTER TEST",
		Terminal:      term.TerminalName,
		DocumentLabel: "TEST",
		Reference:     "TEST-001",
		CustomerName:  "Consumidor Final",
		CustomerTaxID: "CF",
		Lines: []entity.TicketDataLine{
			{Name: "Test item 1", Quantity: 1, UnitPrice: ten, Total: ten},
			{Name: "Test item 2", Quantity: 2, UnitPrice: decimal.NewFromInt(5), Total: ten},
		},
		Subtotal: decimal.NewFromInt(20),
		Discount: decimal.Zero,
		Total:    decimal.NewFromInt(20),
		Paid:     decimal.NewFromInt(20),
		Change:   decimal.Zero,
		Address:  term.Address,
		Phone:    term.Phone,
		Date:     time.Now(),
	}

	if err := s.PrintTicket(ctx, data); err != nil {
		return data, fmt.Errorf("test print failed: %w", err)
	}
	return data, nil
}

// PrintTicket renders and prints data
func (s *PrinterService) PrintTicket(ctx context.Context, data *entity.TicketData) error {
	if err := s.printer.Print(ctx, FormatTicket(data, s.width)); err != nil {
		log.Printf("Printer error (ticket %s): %v", data.Reference, err)
		return fmt.Errorf("failed to print ticket: %w", err)
	}
	return nil
}

// FormatTicket converts ticket data into ESC/POS bytes for a paper width
// of width characters.
func FormatTicket(t *entity.TicketData, width int) []byte {
	doc := printer.NewDocument(width)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(t.Company).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if t.Address != "" {
		doc.Text(t.Address)
	}
	if t.Phone != "" {
		doc.TextF("Tel: %s", t.Phone)
	}
	if t.Email != "" {
		doc.Text(t.Email)
	}

	doc.SetBold(true).Text(t.DocumentLabel).SetBold(false)
	if t.FEL {
		doc.Text("FACTURA ELECTRONICA (FEL)")
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("No.:", t.Reference).
		KeyValue("Fecha:", t.Date.Format("2006-01-02 15:04"))
	if t.Terminal != "" {
		doc.KeyValue("Terminal:", t.Terminal)
	}
	if t.CustomerName != "" {
		doc.KeyValue("Cliente:", t.CustomerName)
	}
	if t.CustomerTaxID != "" {
		doc.KeyValue("NIT:", t.CustomerTaxID)
	}
	if t.VendorName != "" {
		doc.KeyValue("Vendedor:", t.VendorName)
	}

	doc.Separator('-')

	for _, item := range t.Lines {
		doc.ItemLine(item.Quantity, item.Name, money.Format(item.Total))
		if item.Quantity > 1 {
			doc.TextF("  @ %s", money.Format(item.UnitPrice))
		}
		if item.Discount.IsPositive() {
			doc.TextF("  Desc. %s%%", item.Discount.String())
		}
		if item.Note != "" {
			doc.Text("  " + item.Note)
		}
	}

	doc.Separator('-')

	doc.KeyValue("Subtotal:", money.Format(t.Subtotal))
	if t.Discount.IsPositive() {
		doc.KeyValue("Descuento:", money.Format(t.Discount))
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", money.Format(t.Total)).
		SetBold(false)

	for _, p := range t.Payments {
		doc.KeyValue(p.Method+":", money.Format(p.Amount))
	}
	if t.Change.IsPositive() {
		doc.KeyValue("Cambio:", money.Format(t.Change))
	}

	if len(t.ExtraFields) > 0 {
		doc.Separator('-')
		keys := make([]string, 0, len(t.ExtraFields))
		for k := range t.ExtraFields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			doc.KeyValue(k+":", t.ExtraFields[k])
		}
	}

	if t.Note != "" {
		doc.Separator('-').Text(t.Note)
	}

	doc.Separator('-')

	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text("Gracias por su compra").
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
