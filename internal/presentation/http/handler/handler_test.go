package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestSetDocumentTypeRejectsUnknownType(t *testing.T) {
	h := NewSessionHandler(nil)
	r := gin.New()
	r.PUT("/type", h.SetDocumentType)

	req := httptest.NewRequest(http.MethodPut, "/type", strings.NewReader(`{"type":"receipt"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "quote, order or invoice")
}

func TestLineIndexValidation(t *testing.T) {
	r := gin.New()
	r.GET("/lines/:index", func(c *gin.Context) {
		if index, ok := lineIndex(c); ok {
			c.JSON(http.StatusOK, gin.H{"index": index})
		}
	})

	for path, code := range map[string]int{
		"/lines/2":   http.StatusOK,
		"/lines/-1":  http.StatusUnprocessableEntity,
		"/lines/abc": http.StatusUnprocessableEntity,
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, code, w.Code, path)
	}
}

func TestBindRejectsMalformedBody(t *testing.T) {
	h := NewPaymentHandler(nil)
	r := gin.New()
	r.POST("/payments", h.Add)

	req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(`{"amount":`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
