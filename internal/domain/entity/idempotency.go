package entity

import (
	"time"

	"github.com/google/uuid"
)

// IdempotencyKey stores processed finalize and suspend requests so that a
// retried request replays the first answer instead of saving twice.
type IdempotencyKey struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Key          string    `gorm:"uniqueIndex:idx_idem_terminal_key;size:255;not null"`
	TerminalID   string    `gorm:"uniqueIndex:idx_idem_terminal_key;size:64;not null"`
	Endpoint     string    `gorm:"size:255;not null"` // e.g. "POST /api/v1/pos/finalize"
	RequestHash  string    `gorm:"size:64"`
	ResponseCode int       `gorm:"not null"`
	ResponseBody string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	ExpiresAt    time.Time `gorm:"not null;index"`
}

func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

func (i *IdempotencyKey) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}
