package repository

import (
	"context"
	"errors"

	"github.com/sangkips/pos-terminal/internal/domain/entity"
	domainRepo "github.com/sangkips/pos-terminal/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type draftRepository struct {
	db *gorm.DB
}

// NewDraftRepository creates a postgres backed draft repository
func NewDraftRepository(db *gorm.DB) domainRepo.DraftRepository {
	return &draftRepository{db: db}
}

func (r *draftRepository) Get(ctx context.Context, terminalID string) (*entity.DocumentDraft, error) {
	var draft entity.DocumentDraft
	err := r.db.WithContext(ctx).
		Scopes(TerminalScope(terminalID)).
		First(&draft).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

// Save upserts the draft of the terminal
func (r *draftRepository) Save(ctx context.Context, draft *entity.DocumentDraft) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "terminal_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"document_type", "line_count", "payload", "updated_at"}),
		}).
		Create(draft).Error
}

func (r *draftRepository) Delete(ctx context.Context, terminalID string) error {
	return r.db.WithContext(ctx).
		Scopes(TerminalScope(terminalID)).
		Delete(&entity.DocumentDraft{}).Error
}
