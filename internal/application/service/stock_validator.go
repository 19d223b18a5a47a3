package service

import (
	"context"
	"log"

	"github.com/sangkips/pos-terminal/internal/domain/entity"
	"github.com/sangkips/pos-terminal/internal/domain/gateway"
	"golang.org/x/sync/errgroup"
)

// StockValidator checks cart lines against backend stock
type StockValidator struct {
	backend     gateway.Backend
	concurrency int
}

func NewStockValidator(backend gateway.Backend, concurrency int) *StockValidator {
	if concurrency <= 0 {
		concurrency = 8
	}
	return &StockValidator{backend: backend, concurrency: concurrency}
}

// Check asks whether quantity units of productID can be sold
func (v *StockValidator) Check(ctx context.Context, token, productID string, quantity int) (*entity.StockCheck, error) {
	return v.backend.CheckStock(ctx, token, productID, quantity)
}

// ValidateLines checks every line concurrently and returns the stock flag
// of each position. A line whose request failed keeps its current flag;
// one failure never cancels the other requests.
func (v *StockValidator) ValidateLines(ctx context.Context, token string, lines []entity.CartLine) []bool {
	flags := make([]bool, len(lines))
	for i, l := range lines {
		flags[i] = l.HasStock
	}

	var g errgroup.Group
	g.SetLimit(v.concurrency)
	for i, l := range lines {
		i, l := i, l
		g.Go(func() error {
			check, err := v.backend.CheckStock(ctx, token, l.ProductID, l.Quantity)
			if err != nil {
				log.Printf("Stock check failed for %s (line %d): %v", l.ProductID, i, err)
				return nil
			}
			flags[i] = check.OK
			return nil
		})
	}
	_ = g.Wait()

	return flags
}
