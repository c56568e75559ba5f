// Package services provides external service integrations such as the payment gateway and email delivery
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// PaymentGateway abstracts the payment provider for the payment flow
type PaymentGateway interface {
	CreatePayment(ctx context.Context, idempotencyKey string, req *GatewayPaymentRequest) (*GatewayPaymentResponse, error)
	GetPayment(ctx context.Context, paymentID string) (*GatewayPaymentResponse, error)
}

// GatewayPaymentRequest mirrors the Mercado Pago /v1/payments request body.
// Token and Installments are set for card payments only.
type GatewayPaymentRequest struct {
	TransactionAmount float64      `json:"transaction_amount"`
	Description       string       `json:"description"`
	PaymentMethodID   string       `json:"payment_method_id,omitempty"`
	Token             string       `json:"token,omitempty"`
	Installments      int          `json:"installments,omitempty"`
	Payer             GatewayPayer `json:"payer"`
}

// GatewayPayer identifies the paying customer
type GatewayPayer struct {
	Email          string                `json:"email"`
	FirstName      string                `json:"first_name,omitempty"`
	Identification GatewayIdentification `json:"identification"`
}

// GatewayIdentification is the payer document (CPF/CNPJ)
type GatewayIdentification struct {
	Type   string `json:"type"`
	Number string `json:"number"`
}

// GatewayPaymentResponse is the subset of the gateway payment object this service reads
type GatewayPaymentResponse struct {
	ID                 int64                      `json:"id"`
	Status             string                     `json:"status"`
	StatusDetail       string                     `json:"status_detail"`
	TransactionAmount  float64                    `json:"transaction_amount"`
	Description        string                     `json:"description"`
	Installments       int                        `json:"installments"`
	PaymentMethodID    string                     `json:"payment_method_id"`
	PaymentTypeID      string                     `json:"payment_type_id"`
	Payer              *GatewayPayer              `json:"payer,omitempty"`
	PointOfInteraction *GatewayPointOfInteraction `json:"point_of_interaction,omitempty"`
}

// GatewayPointOfInteraction carries the Pix transaction data
type GatewayPointOfInteraction struct {
	TransactionData GatewayTransactionData `json:"transaction_data"`
}

// GatewayTransactionData holds the Pix QR payload
type GatewayTransactionData struct {
	QRCode       string `json:"qr_code"`
	QRCodeBase64 string `json:"qr_code_base64"`
	TicketURL    string `json:"ticket_url"`
}

// GatewayError is a business rejection reported by the gateway. The raw
// body is preserved verbatim so the caller can pass it through.
type GatewayError struct {
	StatusCode int
	Body       json.RawMessage
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway rejected request with status %d: %s", e.StatusCode, string(e.Body))
}

// IsGatewayError reports whether err is a gateway business rejection
func IsGatewayError(err error) (*GatewayError, bool) {
	var ge *GatewayError
	if errors.As(err, &ge) {
		return ge, true
	}
	return nil, false
}

// MercadoPagoClient implements PaymentGateway against the Mercado Pago REST API
type MercadoPagoClient struct {
	BaseURL     string
	AccessToken string
	HTTPClient  *http.Client
	Timeout     time.Duration
}

func NewMercadoPagoClient(baseURL, accessToken string, timeout time.Duration) *MercadoPagoClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &MercadoPagoClient{
		BaseURL:     strings.TrimRight(baseURL, "/"),
		AccessToken: accessToken,
		HTTPClient:  &http.Client{Timeout: timeout},
		Timeout:     timeout,
	}
}

func (c *MercadoPagoClient) Name() string { return "mercadopago" }

// CreatePayment posts a payment intent. The idempotency key only protects
// against this function's own retries; caller-level retries produce new keys.
func (c *MercadoPagoClient) CreatePayment(ctx context.Context, idempotencyKey string, payment *GatewayPaymentRequest) (*GatewayPaymentResponse, error) {
	b, err := json.Marshal(payment)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/payments", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.AccessToken)
	req.Header.Set("X-Idempotency-Key", idempotencyKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &GatewayError{StatusCode: resp.StatusCode, Body: json.RawMessage(body)}
	}

	var out GatewayPaymentResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("mercadopago: failed to decode payment response: %w", err)
	}
	return &out, nil
}

// GetPayment fetches a payment by its gateway id (used by the webhook flow)
func (c *MercadoPagoClient) GetPayment(ctx context.Context, paymentID string) (*GatewayPaymentResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/v1/payments/"+paymentID, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.AccessToken)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &GatewayError{StatusCode: resp.StatusCode, Body: json.RawMessage(body)}
	}

	var out GatewayPaymentResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("mercadopago: failed to decode payment response: %w", err)
	}
	return &out, nil
}
