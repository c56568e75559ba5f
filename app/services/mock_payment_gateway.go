package services

import (
	"context"
	"sync"
)

// MockPaymentGateway records payment calls instead of reaching the gateway
type MockPaymentGateway struct {
	mu          sync.Mutex
	createCalls []MockCreateCall
	getCalls    []string

	CreateResponse *GatewayPaymentResponse
	GetResponse    *GatewayPaymentResponse
	Err            error
}

// MockCreateCall captures one CreatePayment invocation
type MockCreateCall struct {
	IdempotencyKey string
	Request        *GatewayPaymentRequest
}

func NewMockPaymentGateway() *MockPaymentGateway {
	return &MockPaymentGateway{}
}

func (g *MockPaymentGateway) CreatePayment(_ context.Context, idempotencyKey string, req *GatewayPaymentRequest) (*GatewayPaymentResponse, error) {
	g.mu.Lock()
	g.createCalls = append(g.createCalls, MockCreateCall{IdempotencyKey: idempotencyKey, Request: req})
	g.mu.Unlock()
	if g.Err != nil {
		return nil, g.Err
	}
	return g.CreateResponse, nil
}

func (g *MockPaymentGateway) GetPayment(_ context.Context, paymentID string) (*GatewayPaymentResponse, error) {
	g.mu.Lock()
	g.getCalls = append(g.getCalls, paymentID)
	g.mu.Unlock()
	if g.Err != nil {
		return nil, g.Err
	}
	return g.GetResponse, nil
}

// CreateCalls returns the recorded CreatePayment invocations
func (g *MockPaymentGateway) CreateCalls() []MockCreateCall {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]MockCreateCall, len(g.createCalls))
	copy(out, g.createCalls)
	return out
}

// GetCalls returns the recorded GetPayment ids
func (g *MockPaymentGateway) GetCalls() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, len(g.getCalls))
	copy(out, g.getCalls)
	return out
}
