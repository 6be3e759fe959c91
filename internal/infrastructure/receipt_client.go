package infrastructure

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"storefront/internal/domain"
	"storefront/pkg/logger"
	"storefront/pkg/metrics"

	"golang.org/x/time/rate"
)

// Mail kinds posted to the mailer
const (
	MailPurchaseReceipt = "purchase_receipt"
	MailOrderHistory    = "order_history"
)

// mailEnvelope is the body posted to the mailer
type mailEnvelope struct {
	Kind string `json:"kind"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

// ReceiptClient posts customer mail to an external mailer endpoint.
// Implements usecase.ReceiptSender.
type ReceiptClient struct {
	client      *http.Client
	url         string
	secret      string
	logger      *logger.Logger
	metrics     *metrics.Metrics
	rateLimiter *rate.Limiter
}

func NewReceiptClient(url, secret string, timeout time.Duration, ratePerSecond int, logger *logger.Logger, metrics *metrics.Metrics) *ReceiptClient {
	if ratePerSecond < 1 {
		ratePerSecond = 1
	}
	return &ReceiptClient{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		url:         url,
		secret:      secret,
		logger:      logger,
		metrics:     metrics,
		rateLimiter: rate.NewLimiter(rate.Limit(ratePerSecond), ratePerSecond),
	}
}

func (c *ReceiptClient) SendPurchaseReceipt(ctx context.Context, receipt domain.PurchaseReceipt) error {
	return c.send(ctx, mailEnvelope{Kind: MailPurchaseReceipt, To: receipt.Email, Data: receipt})
}

func (c *ReceiptClient) SendOrderHistory(ctx context.Context, history domain.OrderHistory) error {
	return c.send(ctx, mailEnvelope{Kind: MailOrderHistory, To: history.Email, Data: history})
}

func (c *ReceiptClient) send(ctx context.Context, mail mailEnvelope) error {
	start := time.Now()

	if err := c.rateLimiter.Wait(ctx); err != nil {
		c.metrics.RecordExternalAPIFailure("mailer", "rate_limit")
		return fmt.Errorf("rate limit exceeded: %w", err)
	}

	payload, err := json.Marshal(mail)
	if err != nil {
		c.metrics.RecordExternalAPIFailure("mailer", "json_marshal")
		return fmt.Errorf("failed to marshal %s: %w", mail.Kind, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		c.metrics.RecordExternalAPIFailure("mailer", "request_creation")
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	if c.secret != "" {
		req.Header.Set("X-Signature", c.generateHMACSignature(payload))
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.metrics.RecordExternalAPIFailure("mailer", "network_error")
		return fmt.Errorf("failed to send %s: %w", mail.Kind, err)
	}
	defer resp.Body.Close()

	duration := time.Since(start)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.metrics.RecordExternalAPICall("mailer", fmt.Sprintf("error_%d", resp.StatusCode), duration)
		return fmt.Errorf("mailer returned status %d", resp.StatusCode)
	}

	c.metrics.RecordExternalAPICall("mailer", "success", duration)

	c.logger.WithContext(ctx).WithFields(map[string]any{
		"kind":     mail.Kind,
		"duration": duration,
	}).Info("Mail sent")

	return nil
}

// generates HMAC-SHA256 signature for the payload
func (c *ReceiptClient) generateHMACSignature(payload []byte) string {
	h := hmac.New(sha256.New, []byte(c.secret))
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}
