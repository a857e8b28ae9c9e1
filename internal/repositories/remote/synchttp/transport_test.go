package synchttp_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coinkeep/coinkeep_backend/internal/core/domain"
	"github.com/coinkeep/coinkeep_backend/internal/dto"
	"github.com/coinkeep/coinkeep_backend/internal/repositories/remote/synchttp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTransaction() domain.Transaction {
	return domain.Transaction{
		TransactionID: "txn-1",
		AccountID:     "acc-1",
		Amount:        decimal.RequireFromString("42.50"),
		Type:          domain.Expense,
		Date:          time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
		CurrencyCode:  "EUR",
		RemoteVersion: "v1",
	}
}

func TestUpload_Acked(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/transactions/txn-1", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "42.5", body["amount"])
		assert.Equal(t, "v1", body["baseVersion"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"remoteVersion": "v2"})
	}))
	defer srv.Close()

	transport := synchttp.NewTransport(srv.URL)
	outcome, err := transport.Upload(context.Background(), sampleTransaction())

	require.NoError(t, err)
	assert.True(t, outcome.Acked)
	assert.Equal(t, "v2", outcome.RemoteVersion)
	assert.Nil(t, outcome.Remote)
}

func TestUpload_ConflictCarriesRemoteCopy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(dto.RemoteTransaction{
			TransactionID: "txn-1",
			AccountID:     "acc-1",
			Amount:        decimal.RequireFromString("99"),
			Type:          domain.Expense,
			Date:          time.Now().UTC(),
			CurrencyCode:  "EUR",
			RemoteVersion: "v7",
		})
	}))
	defer srv.Close()

	transport := synchttp.NewTransport(srv.URL)
	outcome, err := transport.Upload(context.Background(), sampleTransaction())

	require.NoError(t, err)
	assert.False(t, outcome.Acked)
	assert.Equal(t, "v7", outcome.RemoteVersion)
	require.NotNil(t, outcome.Remote)
	assert.True(t, outcome.Remote.Amount.Equal(decimal.RequireFromString("99")))
}

func TestUpload_ServerErrorIsNotAnOutcome(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	transport := synchttp.NewTransport(srv.URL)
	outcome, err := transport.Upload(context.Background(), sampleTransaction())

	require.Error(t, err)
	assert.Nil(t, outcome)
}

func TestUpload_HonoursContextCancellation(t *testing.T) {
	blocked := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-blocked
	}))
	defer srv.Close()
	defer close(blocked)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	transport := synchttp.NewTransport(srv.URL)
	_, err := transport.Upload(ctx, sampleTransaction())

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUpload_NotConfigured(t *testing.T) {
	transport := synchttp.NewTransport("")
	_, err := transport.Upload(context.Background(), sampleTransaction())

	require.Error(t, err)
	assert.ErrorIs(t, err, synchttp.ErrNotConfigured)
}
