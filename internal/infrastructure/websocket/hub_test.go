package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	gorilla "github.com/gorilla/websocket"
	"github.com/sangkips/pos-terminal/internal/domain/entity"
	"github.com/sangkips/pos-terminal/pkg/apperror"
	"github.com/sangkips/pos-terminal/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openSessions accepts only the session ids it holds
type openSessions map[uuid.UUID]bool

func (s openSessions) Terminal(claims *utils.TerminalClaims) (*entity.TerminalContext, error) {
	if !s[claims.SessionID] {
		return nil, apperror.ErrSessionEnded
	}
	return &entity.TerminalContext{TerminalID: claims.TerminalID}, nil
}

func startServer(t *testing.T, sessions openSessions) (*Hub, *utils.JWTManager, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := NewHub()
	go hub.Run(ctx)

	jwtManager := utils.NewJWTManager("secret", time.Hour, "")
	r := gin.New()
	r.GET("/ws", func(c *gin.Context) { ServeWs(hub, c, jwtManager, sessions) })
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return hub, jwtManager, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func TestPublishReachesOnlyThatTerminal(t *testing.T) {
	sid := uuid.New()
	hub, jwtManager, url := startServer(t, openSessions{sid: true})

	token, err := jwtManager.GenerateAccessToken(sid, "op", "Ana", "T01")
	require.NoError(t, err)

	conn, _, err := gorilla.DefaultDialer.Dial(url+"?token="+token, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount("T01") == 1 }, time.Second, 10*time.Millisecond)

	hub.Publish("T02", []byte(`{"message":"other"}`))
	hub.Publish("T01", []byte(`{"message":"mine"}`))

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"mine"}`, string(payload))
}

func TestServeWsRejectsMissingOrBadToken(t *testing.T) {
	_, _, url := startServer(t, openSessions{})

	_, resp, err := gorilla.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	_, resp, err = gorilla.DefaultDialer.Dial(url+"?token=garbage", nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestServeWsRejectsEndedSession(t *testing.T) {
	hub, jwtManager, url := startServer(t, openSessions{uuid.New(): true})

	token, err := jwtManager.GenerateAccessToken(uuid.New(), "op", "Ana", "T01")
	require.NoError(t, err)

	_, resp, err := gorilla.DefaultDialer.Dial(url+"?token="+token, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 0, hub.ClientCount("T01"))
}
