package service

import (
	"context"
	"errors"
	"strings"

	"github.com/sangkips/pos-terminal/internal/domain/entity"
	"github.com/sangkips/pos-terminal/internal/domain/gateway"
	"github.com/sangkips/pos-terminal/pkg/apperror"
	"github.com/sangkips/pos-terminal/pkg/debounce"
)

// SearchService runs the product and customer suggestion searches. Each
// (terminal, field) pair holds one in-flight search; a newer keystroke
// supersedes the older one, which answers with a conflict.
type SearchService struct {
	backend   gateway.Backend
	debouncer *debounce.Debouncer
	alerts    *AlertService
}

func NewSearchService(backend gateway.Backend, debouncer *debounce.Debouncer, alerts *AlertService) *SearchService {
	return &SearchService{backend: backend, debouncer: debouncer, alerts: alerts}
}

func searchKey(terminalID, field string) string {
	return terminalID + "/" + field
}

func (s *SearchService) SearchProducts(ctx context.Context, term *entity.TerminalContext, query string) ([]entity.Product, error) {
	products, err := debounced(ctx, s.debouncer, searchKey(term.TerminalID, "products"), query, func(ctx context.Context, q string) ([]entity.Product, error) {
		return s.backend.SearchProducts(ctx, term.BackendToken, q)
	})
	return products, s.report(term, err)
}

func (s *SearchService) SearchCustomers(ctx context.Context, term *entity.TerminalContext, query string) ([]entity.Customer, error) {
	customers, err := debounced(ctx, s.debouncer, searchKey(term.TerminalID, "customers"), query, func(ctx context.Context, q string) ([]entity.Customer, error) {
		return s.backend.SearchCustomers(ctx, term.BackendToken, q)
	})
	return customers, s.report(term, err)
}

// report alerts on failed searches. Superseded searches stay silent.
func (s *SearchService) report(term *entity.TerminalContext, err error) error {
	if err != nil && !errors.Is(err, apperror.ErrSuperseded) {
		s.alerts.RaiseError(term.TerminalID, err)
	}
	return err
}

// debounced runs search after the quiet window. An empty query cancels the
// pending search for key and answers with no results.
func debounced[T any](ctx context.Context, d *debounce.Debouncer, key, query string, search func(context.Context, string) ([]T, error)) ([]T, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		d.Cancel(key)
		return []T{}, nil
	}
	out, err := debounce.Do(ctx, d, key, func(ctx context.Context) ([]T, error) {
		return search(ctx, query)
	})
	if errors.Is(err, debounce.ErrSuperseded) {
		return nil, apperror.ErrSuperseded
	}
	if err != nil && !apperror.IsAppError(err) {
		return nil, apperror.NewTransportError(err)
	}
	return out, err
}
