package service

import (
	"context"

	"github.com/sangkips/pos-terminal/internal/domain/entity"
	"github.com/sangkips/pos-terminal/internal/domain/enum"
	"github.com/sangkips/pos-terminal/internal/domain/gateway"
	"github.com/sangkips/pos-terminal/pkg/apperror"
	"github.com/sangkips/pos-terminal/pkg/money"
	"github.com/shopspring/decimal"
)

// CashService queries and closes the cash drawer of a terminal
type CashService struct {
	backend gateway.Backend
	alerts  *AlertService
}

func NewCashService(backend gateway.Backend, alerts *AlertService) *CashService {
	return &CashService{backend: backend, alerts: alerts}
}

func (s *CashService) Balance(ctx context.Context, term *entity.TerminalContext) (*entity.CashBalance, error) {
	balance, err := s.backend.CashBalance(ctx, term.BackendToken, term.TerminalID)
	if err != nil {
		s.alerts.RaiseError(term.TerminalID, err)
		return nil, err
	}
	return balance, nil
}

// Close closes the drawer with the counted amount
func (s *CashService) Close(ctx context.Context, term *entity.TerminalContext, counted decimal.Decimal, note string) (*entity.CashCloseResult, error) {
	if counted.IsNegative() {
		err := apperror.NewValidationError([]apperror.FieldError{{Field: "counted", Message: "Counted amount cannot be negative"}})
		s.alerts.RaiseError(term.TerminalID, err)
		return nil, err
	}
	result, err := s.backend.CloseCash(ctx, term.BackendToken, &entity.CashClose{
		TerminalID: term.TerminalID,
		Counted:    money.Round(counted),
		Note:       note,
	})
	if err != nil {
		s.alerts.RaiseError(term.TerminalID, err)
		return nil, err
	}
	s.alerts.Raise(term.TerminalID, enum.AlertLevelSuccess, "Cash drawer closed, difference "+money.Format(result.Difference))
	return result, nil
}
