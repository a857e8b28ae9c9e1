// Package synchttp implements the sync transport over a JSON HTTP API.
package synchttp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/coinkeep/coinkeep_backend/internal/core/domain"
	portssvc "github.com/coinkeep/coinkeep_backend/internal/core/ports/services"
	"github.com/coinkeep/coinkeep_backend/internal/dto"
)

// ErrNotConfigured is returned when no remote endpoint is set.
var ErrNotConfigured = errors.New("remote sync endpoint is not configured")

// Transport uploads transactions to a remote sync endpoint.
//
// The endpoint accepts PUT /transactions/{id} with the record as JSON.
// A 2xx answer acknowledges the record and returns the version the remote
// now holds. A 409 answer rejects it as divergent and carries the remote's
// copy for conflict handling.
type Transport struct {
	baseURL string
	client  *http.Client
}

var _ portssvc.SyncTransport = (*Transport)(nil)

// Option configures a Transport.
type Option func(*Transport)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(t *Transport) {
		t.client = client
	}
}

// NewTransport creates a Transport for the given base URL. An empty URL
// yields a transport whose uploads fail with ErrNotConfigured.
func NewTransport(baseURL string, opts ...Option) *Transport {
	t := &Transport{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// uploadPayload is the wire shape of an uploaded transaction.
type uploadPayload struct {
	TransactionID string                 `json:"transactionID"`
	AccountID     string                 `json:"accountID,omitempty"`
	CategoryID    string                 `json:"categoryID,omitempty"`
	Amount        string                 `json:"amount"`
	Type          domain.TransactionType `json:"type"`
	Date          time.Time              `json:"date"`
	Note          string                 `json:"note,omitempty"`
	CurrencyCode  string                 `json:"currencyCode"`
	BaseVersion   string                 `json:"baseVersion,omitempty"`
}

// ackPayload is the wire shape of an acknowledgment.
type ackPayload struct {
	RemoteVersion string `json:"remoteVersion"`
}

// Upload sends one transaction to the remote store.
func (t *Transport) Upload(ctx context.Context, txn domain.Transaction) (*portssvc.UploadOutcome, error) {
	if t.baseURL == "" {
		return nil, ErrNotConfigured
	}

	payload := uploadPayload{
		TransactionID: txn.TransactionID,
		AccountID:     txn.AccountID,
		CategoryID:    txn.CategoryID,
		Amount:        txn.Amount.String(),
		Type:          txn.Type,
		Date:          txn.Date,
		Note:          txn.Note,
		CurrencyCode:  txn.CurrencyCode,
		BaseVersion:   txn.RemoteVersion,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode transaction %s for upload: %w", txn.TransactionID, err)
	}

	url := t.baseURL + "/transactions/" + txn.TransactionID
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to upload transaction %s: %w", txn.TransactionID, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		var ack ackPayload
		if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
			return nil, fmt.Errorf("failed to decode ack for transaction %s: %w", txn.TransactionID, err)
		}
		return &portssvc.UploadOutcome{Acked: true, RemoteVersion: ack.RemoteVersion}, nil

	case resp.StatusCode == http.StatusConflict:
		var remote dto.RemoteTransaction
		if err := json.NewDecoder(resp.Body).Decode(&remote); err != nil {
			return nil, fmt.Errorf("failed to decode remote copy for transaction %s: %w", txn.TransactionID, err)
		}
		return &portssvc.UploadOutcome{
			Acked:         false,
			RemoteVersion: remote.RemoteVersion,
			Remote:        &remote,
		}, nil

	default:
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("remote rejected transaction %s with status %d", txn.TransactionID, resp.StatusCode)
	}
}
