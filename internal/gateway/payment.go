package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// CheckoutItem is one order line as the payment backend expects it: identifier
// and quantity only. The backend is the source of truth for current price, so
// product snapshots are never re-sent.
type CheckoutItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// PaymentRequest is the JSON body POSTed to the payment-initiation endpoint.
type PaymentRequest struct {
	Items         []CheckoutItem `json:"items"`
	CustomerName  string         `json:"customerName"`
	CustomerEmail string         `json:"customerEmail"`
	CustomerPhone string         `json:"customerPhone"`
}

// PaymentSession is a successfully initiated payment: the URL the customer
// must be redirected to in order to complete it.
type PaymentSession struct {
	PaymentLink string `json:"paymentLink"`
}

// paymentEnvelope is the gateway's response shape. The gateway returns this
// envelope on every status code, so the body is always parsed as JSON.
type paymentEnvelope struct {
	Success bool            `json:"success"`
	Data    *PaymentSession `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// DeclinedError is a business failure reported by the gateway itself
// (success:false with a message), as opposed to a transport failure.
type DeclinedError struct {
	Message string
}

func (e *DeclinedError) Error() string {
	return fmt.Sprintf("payment declined: %s", e.Message)
}

// PaymentInitiator starts a payment for an order and returns the redirect
// URL issued by the gateway.
type PaymentInitiator interface {
	CreatePayment(ctx context.Context, req PaymentRequest) (*PaymentSession, error)
}

// Client is the HTTP implementation of PaymentInitiator.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a payment gateway client for the given endpoint URL.
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// CreatePayment POSTs the request to the gateway and interprets the envelope.
// The context bounds the whole call, so a torn-down caller cancels the
// in-flight HTTP request rather than leaking it.
func (c *Client) CreatePayment(ctx context.Context, req PaymentRequest) (*PaymentSession, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payment request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build payment request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to reach payment gateway: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read payment gateway response: %w", err)
	}

	// The gateway wraps failures in the same envelope regardless of status
	// code, so parse first and fall back to the status only if that fails.
	var envelope paymentEnvelope
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, fmt.Errorf("payment gateway returned an unreadable response (%d): %w", resp.StatusCode, err)
	}

	if !envelope.Success {
		msg := envelope.Error
		if msg == "" {
			msg = fmt.Sprintf("gateway error (status %d)", resp.StatusCode)
		}
		return nil, &DeclinedError{Message: msg}
	}

	if envelope.Data == nil || envelope.Data.PaymentLink == "" {
		return nil, fmt.Errorf("payment gateway returned an empty payment link")
	}

	return envelope.Data, nil
}
