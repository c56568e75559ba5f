package models

import "time"

// Plano is read-only reference data describing a subscription plan.
// Rows are seeded by the admin side; this service only reads them when
// constructing payment requests.
type Plano struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Nome        string    `gorm:"size:255;not null" json:"nome"`
	Descricao   *string   `gorm:"type:text" json:"descricao,omitempty"`
	PrecoMensal float64   `gorm:"type:numeric(10,2);not null" json:"preco_mensal"`
	Ativo       *bool     `gorm:"default:true" json:"ativo"`
	CreatedAt   time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
}

// TableName returns the table name for Plano
func (Plano) TableName() string { return "planos" }

// PlanoFilter provides filter fields for repository queries
type PlanoFilter struct {
	ID    *uint
	Nome  *string
	Ativo *bool
}
