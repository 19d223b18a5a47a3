package repository

import (
	"context"

	"github.com/sangkips/pos-terminal/internal/domain/entity"
)

// DraftRepository persists the in-progress document of each terminal
type DraftRepository interface {
	// Get returns nil, nil when the terminal has no draft
	Get(ctx context.Context, terminalID string) (*entity.DocumentDraft, error)
	Save(ctx context.Context, draft *entity.DocumentDraft) error
	Delete(ctx context.Context, terminalID string) error
}
