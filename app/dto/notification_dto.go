package dto

// WelcomeEmailRequest defines input for the signup welcome email.
// TipoConta selects the template; unknown values fall back to the generic one.
type WelcomeEmailRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Nome      string `json:"nome" validate:"required"`
	TipoConta string `json:"tipo_conta" validate:"omitempty"`
}

// EmpresaNotificationRequest defines input for the business approval outcome email
type EmpresaNotificationRequest struct {
	Email       string  `json:"email" validate:"required,email"`
	NomeEmpresa string  `json:"nome_empresa" validate:"required"`
	Status      string  `json:"status" validate:"required,oneof=aprovado rejeitado"`
	Observacoes *string `json:"observacoes,omitempty" validate:"omitempty"`
}

// EventoNotificationRequest defines input for the event approval outcome email
type EventoNotificationRequest struct {
	Email       string  `json:"email" validate:"required,email"`
	NomeEvento  string  `json:"nome_evento" validate:"required"`
	Status      string  `json:"status" validate:"required,oneof=aprovado rejeitado"`
	DataEvento  *string `json:"data_evento,omitempty" validate:"omitempty"`
	Local       *string `json:"local,omitempty" validate:"omitempty"`
	Observacoes *string `json:"observacoes,omitempty" validate:"omitempty"`
}

// ContactEmailRequest defines input for the contact form relay
type ContactEmailRequest struct {
	Nome     string `json:"nome" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Assunto  string `json:"assunto" validate:"required"`
	Mensagem string `json:"mensagem" validate:"required"`
}

// SendEmailResponse reports dispatch of a fire-once email
type SendEmailResponse struct {
	Sent bool `json:"sent"`
}
