package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/pos-terminal/internal/domain/enum"
)

// Alert is a transient message for the operator. A terminal shows at most
// one alert at a time.
type Alert struct {
	ID         uuid.UUID       `json:"id"`
	TerminalID string          `json:"terminal_id"`
	Level      enum.AlertLevel `json:"level"`
	Message    string          `json:"message"`
	CreatedAt  time.Time       `json:"created_at"`
	ExpiresAt  time.Time       `json:"expires_at"`
}

func (a *Alert) IsExpired(now time.Time) bool {
	return !now.Before(a.ExpiresAt)
}
