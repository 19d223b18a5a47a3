package service

import (
	"context"
	"testing"
	"time"

	"github.com/sangkips/pos-terminal/pkg/apperror"
	"github.com/sangkips/pos-terminal/pkg/debounce"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSearchHarness(window time.Duration) (*SearchService, *fakeBackend, *AlertService) {
	backend := newFakeBackend()
	alerts := NewAlertService(time.Minute, nil)
	return NewSearchService(backend, debounce.New(window), alerts), backend, alerts
}

func TestSearchProductsReturnsMatches(t *testing.T) {
	svc, _, _ := newSearchHarness(time.Millisecond)

	products, err := svc.SearchProducts(context.Background(), testTerminal(), " Arroz ")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "A", products[0].ID)
}

func TestEmptyQueryNeverCallsBackend(t *testing.T) {
	svc, backend, _ := newSearchHarness(time.Millisecond)

	products, err := svc.SearchProducts(context.Background(), testTerminal(), "   ")
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.Equal(t, 0, backend.Calls("products/search"))
}

func TestNewerKeystrokeSupersedesOlderSearch(t *testing.T) {
	svc, backend, alerts := newSearchHarness(200 * time.Millisecond)
	term := testTerminal()

	older := make(chan error, 1)
	go func() {
		_, err := svc.SearchProducts(context.Background(), term, "Arr")
		older <- err
	}()
	time.Sleep(20 * time.Millisecond)

	products, err := svc.SearchProducts(context.Background(), term, "Arroz")
	require.NoError(t, err)
	assert.Len(t, products, 1)

	assert.ErrorIs(t, <-older, apperror.ErrSuperseded)
	assert.Equal(t, 1, backend.Calls("products/search"))
	assert.Nil(t, alerts.Active(term.TerminalID))
}

func TestProductAndCustomerSearchesAreIndependent(t *testing.T) {
	svc, backend, _ := newSearchHarness(50 * time.Millisecond)
	term := testTerminal()

	done := make(chan error, 1)
	go func() {
		_, err := svc.SearchCustomers(context.Background(), term, "Lupita")
		done <- err
	}()
	_, err := svc.SearchProducts(context.Background(), term, "Arroz")
	require.NoError(t, err)
	require.NoError(t, <-done)
	assert.Equal(t, 1, backend.Calls("customers/search"))
}
