package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/pos-terminal/internal/domain/entity"
	"github.com/sangkips/pos-terminal/internal/presentation/http/dto/response"
	"github.com/sangkips/pos-terminal/pkg/apperror"
	"github.com/sangkips/pos-terminal/pkg/utils"
)

const (
	claimsKey   = "terminal_claims"
	terminalKey = "terminal"
)

// TerminalResolver returns the terminal context of a live session
type TerminalResolver interface {
	Terminal(claims *utils.TerminalClaims) (*entity.TerminalContext, error)
}

// AuthMiddleware creates a JWT authentication middleware. The token must
// name a session that is still open on its terminal.
func AuthMiddleware(jwtManager *utils.JWTManager, terminals TerminalResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, apperror.ErrUnauthorized)
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		term, err := terminals.Terminal(claims)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(claimsKey, claims)
		c.Set(terminalKey, term)
		c.Set("terminal_id", term.TerminalID)

		c.Next()
	}
}

// GetClaims retrieves the token claims set by AuthMiddleware
func GetClaims(c *gin.Context) *utils.TerminalClaims {
	v, exists := c.Get(claimsKey)
	if !exists {
		return nil
	}
	claims, _ := v.(*utils.TerminalClaims)
	return claims
}

// GetTerminal retrieves the terminal context set by AuthMiddleware
func GetTerminal(c *gin.Context) *entity.TerminalContext {
	v, exists := c.Get(terminalKey)
	if !exists {
		return nil
	}
	term, _ := v.(*entity.TerminalContext)
	return term
}

// GetTerminalID retrieves the terminal ID from gin context
func GetTerminalID(c *gin.Context) string {
	return c.GetString("terminal_id")
}
