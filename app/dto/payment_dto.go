package dto

// UserInfoDTO identifies the payer towards the gateway
type UserInfoDTO struct {
	Email         string `json:"email" validate:"required,email"`
	Nome          string `json:"nome" validate:"required"`
	Documento     string `json:"documento" validate:"required"`
	TipoDocumento string `json:"tipo_documento" validate:"required,oneof=CPF CNPJ"`
}

// CreatePixPaymentRequest defines input for a Pix payment intent
type CreatePixPaymentRequest struct {
	PlanoID  uint        `json:"plano_id" validate:"required"`
	UserInfo UserInfoDTO `json:"user_info" validate:"required"`
}

// PixPaymentResponse is the normalized subset of the gateway response
type PixPaymentResponse struct {
	ID                int64   `json:"id"`
	Status            string  `json:"status"`
	QRCode            string  `json:"qr_code"`
	QRCodeBase64      string  `json:"qr_code_base64"`
	TicketURL         string  `json:"ticket_url"`
	TransactionAmount float64 `json:"transaction_amount"`
	Description       string  `json:"description"`
}

// CreateCardPaymentRequest defines input for a card payment intent.
// CardToken is produced client-side by the gateway SDK; the raw card
// never reaches this service.
type CreateCardPaymentRequest struct {
	PlanoID      uint        `json:"plano_id" validate:"required"`
	UserInfo     UserInfoDTO `json:"user_info" validate:"required"`
	CardToken    string      `json:"card_token" validate:"required"`
	Installments int         `json:"installments" validate:"required,gte=1,lte=12"`
}

// CardPaymentResponse is the normalized subset of the gateway response
type CardPaymentResponse struct {
	PaymentID         int64   `json:"paymentId"`
	Status            string  `json:"status"`
	StatusDetail      string  `json:"statusDetail"`
	TransactionAmount float64 `json:"transactionAmount"`
	Installments      int     `json:"installments"`
	PaymentMethodID   string  `json:"paymentMethodId"`
	PaymentTypeID     string  `json:"paymentTypeId"`
}

// PaymentWebhookRequest is the gateway notification payload.
// Only type=payment notifications are acted on.
type PaymentWebhookRequest struct {
	Type string             `json:"type" validate:"required"`
	Data PaymentWebhookData `json:"data" validate:"required"`
}

// PaymentWebhookData carries the gateway payment id being notified about
type PaymentWebhookData struct {
	ID string `json:"id" validate:"required"`
}
