package infrastructure

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	"storefront/pkg/logger"
	"storefront/pkg/metrics"
)

func TestReceiptClientSignsPayload(t *testing.T) {
	var (
		body      []byte
		signature string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ = io.ReadAll(r.Body)
		signature = r.Header.Get("X-Signature")
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client := NewReceiptClient(server.URL, "s3cret", time.Second, 10, logger.Discard(), metrics.NewWithRegistry(prometheus.NewRegistry()))

	receipt := domain.PurchaseReceipt{
		Email:   "buyer@example.com",
		Order:   domain.Order{ID: "o1", PricePaidInCents: 800},
		Product: domain.Product{ID: "p1", Name: "Course"},
	}
	require.NoError(t, client.SendPurchaseReceipt(context.Background(), receipt))

	mac := hmac.New(sha256.New, []byte("s3cret"))
	mac.Write(body)
	assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), signature)

	var envelope struct {
		Kind string                 `json:"kind"`
		To   string                 `json:"to"`
		Data domain.PurchaseReceipt `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))
	assert.Equal(t, MailPurchaseReceipt, envelope.Kind)
	assert.Equal(t, "buyer@example.com", envelope.To)
	assert.Equal(t, "o1", envelope.Data.Order.ID)
}

func TestReceiptClientErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("X-Signature"))
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewReceiptClient(server.URL, "", time.Second, 0, logger.Discard(), metrics.NewWithRegistry(prometheus.NewRegistry()))

	err := client.SendOrderHistory(context.Background(), domain.OrderHistory{Email: "a@example.com"})
	assert.ErrorContains(t, err, "status 502")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, client.SendOrderHistory(ctx, domain.OrderHistory{Email: "a@example.com"}))
}
