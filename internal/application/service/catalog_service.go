package service

import (
	"context"

	"github.com/sangkips/pos-terminal/internal/domain/entity"
	"github.com/sangkips/pos-terminal/internal/domain/gateway"
	"github.com/sangkips/pos-terminal/internal/infrastructure/cache"
	"github.com/sangkips/pos-terminal/pkg/apperror"
)

// CatalogService serves the vendor and payment method lists of a terminal
type CatalogService struct {
	backend gateway.Backend
	cache   *cache.CatalogCache
}

func NewCatalogService(backend gateway.Backend, cache *cache.CatalogCache) *CatalogService {
	return &CatalogService{backend: backend, cache: cache}
}

func (s *CatalogService) Vendors(ctx context.Context, term *entity.TerminalContext) ([]entity.Vendor, error) {
	return s.cache.Vendors(ctx, term.TerminalID, func(ctx context.Context) ([]entity.Vendor, error) {
		return s.backend.ListVendors(ctx, term.BackendToken)
	})
}

func (s *CatalogService) PaymentMethods(ctx context.Context, term *entity.TerminalContext) ([]entity.PaymentMethod, error) {
	return s.cache.PaymentMethods(ctx, term.TerminalID, func(ctx context.Context) ([]entity.PaymentMethod, error) {
		return s.backend.ListPaymentMethods(ctx, term.BackendToken)
	})
}

// Vendor resolves vendorID, loading the list when it is not cached yet
func (s *CatalogService) Vendor(ctx context.Context, term *entity.TerminalContext, vendorID string) (*entity.Vendor, error) {
	if v, ok := s.cache.Vendor(term.TerminalID, vendorID); ok {
		return &v, nil
	}
	if _, err := s.Vendors(ctx, term); err != nil {
		return nil, err
	}
	if v, ok := s.cache.Vendor(term.TerminalID, vendorID); ok {
		return &v, nil
	}
	return nil, apperror.NewRuleError("Unknown vendor")
}

func (s *CatalogService) PaymentMethod(ctx context.Context, term *entity.TerminalContext, typeKey string) (*entity.PaymentMethod, error) {
	if m, ok := s.cache.PaymentMethod(term.TerminalID, typeKey); ok {
		return &m, nil
	}
	if _, err := s.PaymentMethods(ctx, term); err != nil {
		return nil, err
	}
	if m, ok := s.cache.PaymentMethod(term.TerminalID, typeKey); ok {
		return &m, nil
	}
	return nil, apperror.NewRuleError("Unknown payment method")
}

// Forget drops the cached lists of a terminal
func (s *CatalogService) Forget(terminalID string) {
	s.cache.Invalidate(terminalID)
}
