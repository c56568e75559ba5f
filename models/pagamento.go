package models

import "time"

// Payment status values as reported by the gateway
const (
	PagamentoStatusPending   = "pending"
	PagamentoStatusApproved  = "approved"
	PagamentoStatusRejected  = "rejected"
	PagamentoStatusCancelled = "cancelled"
	PagamentoStatusRefunded  = "refunded"
)

// Pagamento records a confirmed payment reported by the gateway webhook.
// GatewayPaymentID is the gateway-assigned id and is unique; webhook
// redeliveries update the existing row instead of inserting a duplicate.
type Pagamento struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	GatewayPaymentID string    `gorm:"size:64;not null;uniqueIndex:uk_pagamentos_gateway_payment_id" json:"gateway_payment_id"`
	PlanoID          *uint     `gorm:"index:idx_pagamentos_plano_id" json:"plano_id,omitempty"`
	Status           string    `gorm:"size:32;not null;index:idx_pagamentos_status" json:"status"`
	StatusDetail     *string   `gorm:"size:64" json:"status_detail,omitempty"`
	Amount           float64   `gorm:"type:numeric(10,2);not null" json:"amount"`
	PaymentMethodID  *string   `gorm:"size:32" json:"payment_method_id,omitempty"`
	PaymentTypeID    *string   `gorm:"size:32" json:"payment_type_id,omitempty"`
	PayerEmail       *string   `gorm:"size:255" json:"payer_email,omitempty"`
	CreatedAt        time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt        time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

// TableName returns the table name for Pagamento
func (Pagamento) TableName() string { return "pagamentos" }

// IsFinal reports whether the status will no longer change at the gateway
func (p *Pagamento) IsFinal() bool {
	switch p.Status {
	case PagamentoStatusApproved, PagamentoStatusRejected, PagamentoStatusCancelled, PagamentoStatusRefunded:
		return true
	}
	return false
}

// PagamentoFilter provides filter fields for repository queries
type PagamentoFilter struct {
	ID               *uint
	GatewayPaymentID *string
	PlanoID          *uint
	Status           *string
	CreatedAfter     *time.Time
	CreatedBefore    *time.Time
}
