package service

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sangkips/pos-terminal/internal/domain/entity"
	"github.com/sangkips/pos-terminal/internal/domain/gateway"
	"github.com/sangkips/pos-terminal/pkg/apperror"
	"github.com/sangkips/pos-terminal/pkg/utils"
)

type terminalEntry struct {
	sessionID uuid.UUID
	terminal  *entity.TerminalContext
}

// AuthService logs operators in through the backend and keeps the
// terminal context of every active session server-side.
type AuthService struct {
	backend    gateway.Backend
	jwtManager *utils.JWTManager
	catalog    *CatalogService
	mu         sync.RWMutex
	terminals  map[string]*terminalEntry
}

// NewAuthService creates a new auth service
func NewAuthService(backend gateway.Backend, jwtManager *utils.JWTManager, catalog *CatalogService) *AuthService {
	return &AuthService{
		backend:    backend,
		jwtManager: jwtManager,
		catalog:    catalog,
		terminals:  make(map[string]*terminalEntry),
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Username     string
	Password     string
	TerminalCode string
}

// LoginOutput represents the login output
type LoginOutput struct {
	AccessToken string                  `json:"access_token"`
	TokenType   string                  `json:"token_type"`
	ExpiresIn   int64                   `json:"expires_in"`
	Terminal    *entity.TerminalContext `json:"terminal"`
}

// Login authenticates the operator against the backend and opens a
// terminal session. A new login on the same terminal replaces the old one.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	var fieldErrors []apperror.FieldError
	if strings.TrimSpace(input.Username) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "username", Message: "Username is required"})
	}
	if input.Password == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "password", Message: "Password is required"})
	}
	if strings.TrimSpace(input.TerminalCode) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "terminal", Message: "Terminal is required"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	result, err := s.backend.Login(ctx, gateway.LoginRequest{
		Username:     strings.TrimSpace(input.Username),
		Password:     input.Password,
		TerminalCode: strings.TrimSpace(input.TerminalCode),
	})
	if err != nil {
		return nil, err
	}

	term := result.Terminal
	if term.TerminalID == "" {
		term.TerminalID = strings.TrimSpace(input.TerminalCode)
	}
	sessionID := uuid.New()

	token, err := s.jwtManager.GenerateAccessToken(sessionID, term.Operator.ID, term.Operator.Name, term.TerminalID)
	if err != nil {
		return nil, apperror.ErrInternalServer
	}

	s.mu.Lock()
	s.terminals[term.TerminalID] = &terminalEntry{sessionID: sessionID, terminal: &term}
	s.mu.Unlock()
	s.catalog.Forget(term.TerminalID)

	log.Printf("Operator %s logged in on terminal %s", term.Operator.Name, term.TerminalID)
	return &LoginOutput{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.jwtManager.Expiry().Seconds()),
		Terminal:    &term,
	}, nil
}

// Terminal returns the context of the session named by claims
func (s *AuthService) Terminal(claims *utils.TerminalClaims) (*entity.TerminalContext, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.terminals[claims.TerminalID]
	if !ok || entry.sessionID != claims.SessionID {
		return nil, apperror.ErrSessionEnded
	}
	return entry.terminal, nil
}

// Logout ends the session named by claims. The in-progress document is
// kept as a draft for the next login.
func (s *AuthService) Logout(claims *utils.TerminalClaims) {
	s.mu.Lock()
	entry, ok := s.terminals[claims.TerminalID]
	if ok && entry.sessionID == claims.SessionID {
		delete(s.terminals, claims.TerminalID)
	}
	s.mu.Unlock()
	if ok {
		s.catalog.Forget(claims.TerminalID)
		log.Printf("Terminal %s logged out", claims.TerminalID)
	}
}
