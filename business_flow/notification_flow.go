// Package businessflow contains the core business logic and use cases for notification workflows
package businessflow

import (
	"context"
	"log"

	"github.com/sajtem/sajtem-backend/app/dto"
	"github.com/sajtem/sajtem-backend/app/services"
	"github.com/sajtem/sajtem-backend/config"
)

// NotificationFlow dispatches transactional emails. Every send is
// fire-once: no queue, no retry, no delivery tracking.
type NotificationFlow interface {
	SendWelcomeEmail(ctx context.Context, req *dto.WelcomeEmailRequest, metadata *ClientMetadata) (*dto.SendEmailResponse, error)
	SendEmpresaNotification(ctx context.Context, req *dto.EmpresaNotificationRequest, metadata *ClientMetadata) (*dto.SendEmailResponse, error)
	SendEventoNotification(ctx context.Context, req *dto.EventoNotificationRequest, metadata *ClientMetadata) (*dto.SendEmailResponse, error)
	SendContactEmail(ctx context.Context, req *dto.ContactEmailRequest, metadata *ClientMetadata) (*dto.SendEmailResponse, error)
}

// NotificationFlowImpl implements NotificationFlow
type NotificationFlowImpl struct {
	provider services.EmailProvider
	emailCfg config.EmailConfig
}

func NewNotificationFlow(provider services.EmailProvider, emailCfg config.EmailConfig) NotificationFlow {
	return &NotificationFlowImpl{
		provider: provider,
		emailCfg: emailCfg,
	}
}

// SendWelcomeEmail sends the signup welcome email and a copy to the
// internal inbox. The internal copy is best-effort.
func (f *NotificationFlowImpl) SendWelcomeEmail(ctx context.Context, req *dto.WelcomeEmailRequest, metadata *ClientMetadata) (*dto.SendEmailResponse, error) {
	if f.emailCfg.APIKey == "" {
		return nil, ErrMissingEmailAPIKey
	}

	subject, html := welcomeEmailTemplate(req.Nome, req.TipoConta)
	if err := f.provider.SendEmail(ctx, []string{req.Email}, subject, html); err != nil {
		return nil, NewBusinessError("EMAIL_SEND_FAILED", "Failed to send welcome email", err)
	}

	internalSubject, internalHTML := internalSignupTemplate(req.Nome, req.Email, req.TipoConta)
	f.notifyInternal(ctx, internalSubject, internalHTML)

	return &dto.SendEmailResponse{Sent: true}, nil
}

// SendEmpresaNotification tells a business owner the outcome of their
// listing review
func (f *NotificationFlowImpl) SendEmpresaNotification(ctx context.Context, req *dto.EmpresaNotificationRequest, metadata *ClientMetadata) (*dto.SendEmailResponse, error) {
	if f.emailCfg.APIKey == "" {
		return nil, ErrMissingEmailAPIKey
	}

	subject, html := empresaNotificationTemplate(req.NomeEmpresa, req.Status, req.Observacoes)
	if err := f.provider.SendEmail(ctx, []string{req.Email}, subject, html); err != nil {
		return nil, NewBusinessError("EMAIL_SEND_FAILED", "Failed to send business notification email", err)
	}
	return &dto.SendEmailResponse{Sent: true}, nil
}

// SendEventoNotification tells an event organizer the outcome of their
// event review
func (f *NotificationFlowImpl) SendEventoNotification(ctx context.Context, req *dto.EventoNotificationRequest, metadata *ClientMetadata) (*dto.SendEmailResponse, error) {
	if f.emailCfg.APIKey == "" {
		return nil, ErrMissingEmailAPIKey
	}

	subject, html := eventoNotificationTemplate(req.NomeEvento, req.Status, req.DataEvento, req.Local, req.Observacoes)
	if err := f.provider.SendEmail(ctx, []string{req.Email}, subject, html); err != nil {
		return nil, NewBusinessError("EMAIL_SEND_FAILED", "Failed to send event notification email", err)
	}
	return &dto.SendEmailResponse{Sent: true}, nil
}

// SendContactEmail relays a contact form submission to the internal inbox
// and acknowledges the sender
func (f *NotificationFlowImpl) SendContactEmail(ctx context.Context, req *dto.ContactEmailRequest, metadata *ClientMetadata) (*dto.SendEmailResponse, error) {
	if f.emailCfg.APIKey == "" {
		return nil, ErrMissingEmailAPIKey
	}

	subject, html := contactRelayTemplate(req.Nome, req.Email, req.Assunto, req.Mensagem)
	if err := f.provider.SendEmail(ctx, []string{f.emailCfg.InternalEmail}, subject, html); err != nil {
		return nil, NewBusinessError("EMAIL_SEND_FAILED", "Failed to relay contact email", err)
	}

	ackSubject, ackHTML := contactAckTemplate(req.Nome)
	if err := f.provider.SendEmail(ctx, []string{req.Email}, ackSubject, ackHTML); err != nil {
		log.Printf("contact acknowledgement email failed for %s: %v", req.Email, err)
	}

	return &dto.SendEmailResponse{Sent: true}, nil
}

func (f *NotificationFlowImpl) notifyInternal(ctx context.Context, subject, html string) {
	if f.emailCfg.InternalEmail == "" {
		return
	}
	if err := f.provider.SendEmail(ctx, []string{f.emailCfg.InternalEmail}, subject, html); err != nil {
		log.Printf("internal notification email failed: %v", err)
	}
}
