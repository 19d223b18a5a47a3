package repository

import (
	"context"
	"sync"
	"time"

	"github.com/sangkips/pos-terminal/internal/domain/entity"
	domainRepo "github.com/sangkips/pos-terminal/internal/domain/repository"
)

// memoryDraftRepository is used when DB_ENABLED is false and in tests
type memoryDraftRepository struct {
	mu     sync.RWMutex
	drafts map[string]entity.DocumentDraft
}

func NewMemoryDraftRepository() domainRepo.DraftRepository {
	return &memoryDraftRepository{drafts: make(map[string]entity.DocumentDraft)}
}

func (r *memoryDraftRepository) Get(_ context.Context, terminalID string) (*entity.DocumentDraft, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	draft, ok := r.drafts[terminalID]
	if !ok {
		return nil, nil
	}
	return &draft, nil
}

func (r *memoryDraftRepository) Save(_ context.Context, draft *entity.DocumentDraft) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	draft.UpdatedAt = time.Now()
	r.drafts[draft.TerminalID] = *draft
	return nil
}

func (r *memoryDraftRepository) Delete(_ context.Context, terminalID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.drafts, terminalID)
	return nil
}

type memoryIdempotencyRepository struct {
	mu   sync.RWMutex
	keys map[string]entity.IdempotencyKey
}

func NewMemoryIdempotencyRepository() domainRepo.IdempotencyRepository {
	return &memoryIdempotencyRepository{keys: make(map[string]entity.IdempotencyKey)}
}

func (r *memoryIdempotencyRepository) GetByKey(_ context.Context, key string, terminalID string) (*entity.IdempotencyKey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ikey, ok := r.keys[terminalID+"/"+key]
	if !ok {
		return nil, nil
	}
	return &ikey, nil
}

func (r *memoryIdempotencyRepository) Create(_ context.Context, ikey *entity.IdempotencyKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ikey.CreatedAt.IsZero() {
		ikey.CreatedAt = time.Now()
	}
	r.keys[ikey.TerminalID+"/"+ikey.Key] = *ikey
	return nil
}

func (r *memoryIdempotencyRepository) DeleteExpired(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, v := range r.keys {
		if v.IsExpired() {
			delete(r.keys, k)
		}
	}
	return nil
}
