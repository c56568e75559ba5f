package businessflow

import (
	"context"
	"errors"
	"testing"

	"github.com/sajtem/sajtem-backend/app/dto"
	"github.com/sajtem/sajtem-backend/app/services"
	"github.com/sajtem/sajtem-backend/config"
	"github.com/sajtem/sajtem-backend/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEmailConfig() config.EmailConfig {
	return config.EmailConfig{
		APIKey:        "test-key",
		FromAddress:   "Saj Tem <nao-responda@sajtem.com.br>",
		InternalEmail: "contato@sajtem.com.br",
	}
}

func TestSendWelcomeEmail_MissingAPIKey(t *testing.T) {
	flow := NewNotificationFlow(services.NewMockEmailProvider(), config.EmailConfig{})

	_, err := flow.SendWelcomeEmail(context.Background(), &dto.WelcomeEmailRequest{
		Email: "user@example.com",
		Nome:  "João",
	}, nil)

	assert.True(t, IsMissingEmailAPIKey(err))
}

func TestSendWelcomeEmail_SendsUserAndInternalCopy(t *testing.T) {
	provider := services.NewMockEmailProvider()
	flow := NewNotificationFlow(provider, testEmailConfig())

	resp, err := flow.SendWelcomeEmail(context.Background(), &dto.WelcomeEmailRequest{
		Email:     "user@example.com",
		Nome:      "João",
		TipoConta: "empresa",
	}, nil)

	require.NoError(t, err)
	assert.True(t, resp.Sent)

	sent := provider.GetSentEmails()
	require.Len(t, sent, 2)
	assert.Equal(t, []string{"user@example.com"}, sent[0].To)
	assert.Contains(t, sent[0].Subject, "empresa em destaque")
	assert.Contains(t, sent[0].HTML, "João")
	assert.Equal(t, []string{"contato@sajtem.com.br"}, sent[1].To)
	assert.Contains(t, sent[1].Subject, "Novo cadastro")
}

func TestSendWelcomeEmail_UnknownAccountTypeGetsGenericTemplate(t *testing.T) {
	provider := services.NewMockEmailProvider()
	flow := NewNotificationFlow(provider, testEmailConfig())

	_, err := flow.SendWelcomeEmail(context.Background(), &dto.WelcomeEmailRequest{
		Email:     "user@example.com",
		Nome:      "João",
		TipoConta: "visitante",
	}, nil)

	require.NoError(t, err)
	sent := provider.GetSentEmails()
	require.NotEmpty(t, sent)
	assert.Equal(t, "Bem-vindo ao Saj Tem!", sent[0].Subject)
}

func TestSendWelcomeEmail_NoInternalCopyWhenUnconfigured(t *testing.T) {
	provider := services.NewMockEmailProvider()
	cfg := testEmailConfig()
	cfg.InternalEmail = ""
	flow := NewNotificationFlow(provider, cfg)

	_, err := flow.SendWelcomeEmail(context.Background(), &dto.WelcomeEmailRequest{
		Email: "user@example.com",
		Nome:  "João",
	}, nil)

	require.NoError(t, err)
	assert.Len(t, provider.GetSentEmails(), 1)
}

func TestSendWelcomeEmail_ProviderFailure(t *testing.T) {
	provider := services.NewMockEmailProvider()
	provider.Err = errors.New("provider down")
	flow := NewNotificationFlow(provider, testEmailConfig())

	_, err := flow.SendWelcomeEmail(context.Background(), &dto.WelcomeEmailRequest{
		Email: "user@example.com",
		Nome:  "João",
	}, nil)

	var be *BusinessError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, "EMAIL_SEND_FAILED", be.Code)
}

func TestSendEmpresaNotification_ApprovedAndRejected(t *testing.T) {
	provider := services.NewMockEmailProvider()
	flow := NewNotificationFlow(provider, testEmailConfig())

	_, err := flow.SendEmpresaNotification(context.Background(), &dto.EmpresaNotificationRequest{
		Email:       "dona@example.com",
		NomeEmpresa: "Padaria Central",
		Status:      "aprovado",
	}, nil)
	require.NoError(t, err)

	obs := "Faltou o CNPJ"
	_, err = flow.SendEmpresaNotification(context.Background(), &dto.EmpresaNotificationRequest{
		Email:       "dona@example.com",
		NomeEmpresa: "Padaria Central",
		Status:      "rejeitado",
		Observacoes: &obs,
	}, nil)
	require.NoError(t, err)

	sent := provider.GetSentEmails()
	require.Len(t, sent, 2)
	assert.Contains(t, sent[0].Subject, "aprovada")
	assert.Contains(t, sent[1].Subject, "não aprovado")
	assert.Contains(t, sent[1].HTML, "Faltou o CNPJ")
}

func TestSendEventoNotification_IncludesEventDetails(t *testing.T) {
	provider := services.NewMockEmailProvider()
	flow := NewNotificationFlow(provider, testEmailConfig())

	_, err := flow.SendEventoNotification(context.Background(), &dto.EventoNotificationRequest{
		Email:      "organizador@example.com",
		NomeEvento: "Festa Junina",
		Status:     "aprovado",
		DataEvento: utils.ToPtr("2026-06-24"),
		Local:      utils.ToPtr("Praça Central"),
	}, nil)

	require.NoError(t, err)
	sent := provider.GetSentEmails()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].HTML, "Festa Junina")
	assert.Contains(t, sent[0].HTML, "2026-06-24")
	assert.Contains(t, sent[0].HTML, "Praça Central")
}

func TestSendContactEmail_RelaysAndAcks(t *testing.T) {
	provider := services.NewMockEmailProvider()
	flow := NewNotificationFlow(provider, testEmailConfig())

	resp, err := flow.SendContactEmail(context.Background(), &dto.ContactEmailRequest{
		Nome:     "Carlos",
		Email:    "carlos@example.com",
		Assunto:  "Parceria",
		Mensagem: "Gostaria de anunciar.",
	}, nil)

	require.NoError(t, err)
	assert.True(t, resp.Sent)

	sent := provider.GetSentEmails()
	require.Len(t, sent, 2)
	assert.Equal(t, []string{"contato@sajtem.com.br"}, sent[0].To)
	assert.Contains(t, sent[0].HTML, "Gostaria de anunciar.")
	assert.Equal(t, []string{"carlos@example.com"}, sent[1].To)
}

func TestTemplates_EscapeUserInput(t *testing.T) {
	provider := services.NewMockEmailProvider()
	flow := NewNotificationFlow(provider, testEmailConfig())

	_, err := flow.SendWelcomeEmail(context.Background(), &dto.WelcomeEmailRequest{
		Email: "user@example.com",
		Nome:  `<script>alert("x")</script>`,
	}, nil)

	require.NoError(t, err)
	sent := provider.GetSentEmails()
	require.NotEmpty(t, sent)
	assert.NotContains(t, sent[0].HTML, "<script>")
	assert.Contains(t, sent[0].HTML, "&lt;script&gt;")
}
