package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sangkips/pos-terminal/pkg/apperror"
)

// TerminalClaims are the claims carried by a terminal session token
type TerminalClaims struct {
	SessionID    uuid.UUID `json:"sid"`
	OperatorID   string    `json:"operator_id"`
	OperatorName string    `json:"operator_name"`
	TerminalID   string    `json:"terminal_id"`
	jwt.RegisteredClaims
}

// JWTManager handles JWT token generation and validation
type JWTManager struct {
	secretKey         []byte
	accessTokenExpiry time.Duration
	issuer            string
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(secret string, accessExpiry time.Duration, issuer string) *JWTManager {
	if issuer == "" {
		issuer = "pos-terminal"
	}
	return &JWTManager{
		secretKey:         []byte(secret),
		accessTokenExpiry: accessExpiry,
		issuer:            issuer,
	}
}

// Expiry returns how long issued tokens stay valid
func (m *JWTManager) Expiry() time.Duration {
	return m.accessTokenExpiry
}

// GenerateAccessToken generates a new terminal session token
func (m *JWTManager) GenerateAccessToken(sessionID uuid.UUID, operatorID, operatorName, terminalID string) (string, error) {
	now := time.Now()
	claims := &TerminalClaims{
		SessionID:    sessionID,
		OperatorID:   operatorID,
		OperatorName: operatorName,
		TerminalID:   terminalID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    m.issuer,
			Subject:   terminalID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}

// ValidateAccessToken validates a terminal session token and returns the
// claims. Failures are apperror.ErrTokenExpired or apperror.ErrInvalidToken.
func (m *JWTManager) ValidateAccessToken(tokenString string) (*TerminalClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TerminalClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secretKey, nil
	}, jwt.WithIssuer(m.issuer))

	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, apperror.ErrTokenExpired
	}
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	claims, ok := token.Claims.(*TerminalClaims)
	if !ok || !token.Valid {
		return nil, apperror.ErrInvalidToken
	}
	if claims.TerminalID == "" || claims.SessionID == uuid.Nil {
		return nil, apperror.ErrInvalidToken
	}

	return claims, nil
}
