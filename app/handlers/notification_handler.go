// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/sajtem/sajtem-backend/app/dto"
	businessflow "github.com/sajtem/sajtem-backend/business_flow"
)

// NotificationHandlerInterface defines the contract for notification handlers
type NotificationHandlerInterface interface {
	SendWelcomeEmail(c fiber.Ctx) error
	SendEmpresaNotification(c fiber.Ctx) error
	SendEventoNotification(c fiber.Ctx) error
	SendContactEmail(c fiber.Ctx) error
}

// NotificationHandler handles transactional email HTTP requests
type NotificationHandler struct {
	notificationFlow businessflow.NotificationFlow
	validator        *validator.Validate
}

func NewNotificationHandler(notificationFlow businessflow.NotificationFlow) *NotificationHandler {
	return &NotificationHandler{
		notificationFlow: notificationFlow,
		validator:        validator.New(),
	}
}

func (h *NotificationHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *NotificationHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// SendWelcomeEmail dispatches the signup welcome email
// @Summary Send Welcome Email
// @Tags Notifications
// @Accept json
// @Produce json
// @Param request body dto.WelcomeEmailRequest true "Welcome email data"
// @Success 200 {object} dto.APIResponse{data=dto.SendEmailResponse} "Email sent"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/notifications/welcome [post]
func (h *NotificationHandler) SendWelcomeEmail(c fiber.Ctx) error {
	var req dto.WelcomeEmailRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return err
	}

	metadata := clientMetadataFromRequest(c)

	result, err := h.notificationFlow.SendWelcomeEmail(h.createRequestContext(c, "/api/v1/notifications/welcome"), &req, metadata)
	if err != nil {
		return h.emailError(c, err, "Welcome email dispatch failed")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Welcome email sent", result)
}

// SendEmpresaNotification dispatches the business review outcome email
// @Summary Send Business Notification
// @Tags Notifications
// @Accept json
// @Produce json
// @Param request body dto.EmpresaNotificationRequest true "Business notification data"
// @Success 200 {object} dto.APIResponse{data=dto.SendEmailResponse} "Email sent"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/notifications/empresa [post]
func (h *NotificationHandler) SendEmpresaNotification(c fiber.Ctx) error {
	var req dto.EmpresaNotificationRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return err
	}

	metadata := clientMetadataFromRequest(c)

	result, err := h.notificationFlow.SendEmpresaNotification(h.createRequestContext(c, "/api/v1/notifications/empresa"), &req, metadata)
	if err != nil {
		return h.emailError(c, err, "Business notification dispatch failed")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Business notification sent", result)
}

// SendEventoNotification dispatches the event review outcome email
// @Summary Send Event Notification
// @Tags Notifications
// @Accept json
// @Produce json
// @Param request body dto.EventoNotificationRequest true "Event notification data"
// @Success 200 {object} dto.APIResponse{data=dto.SendEmailResponse} "Email sent"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/notifications/evento [post]
func (h *NotificationHandler) SendEventoNotification(c fiber.Ctx) error {
	var req dto.EventoNotificationRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return err
	}

	metadata := clientMetadataFromRequest(c)

	result, err := h.notificationFlow.SendEventoNotification(h.createRequestContext(c, "/api/v1/notifications/evento"), &req, metadata)
	if err != nil {
		return h.emailError(c, err, "Event notification dispatch failed")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Event notification sent", result)
}

// SendContactEmail relays a contact form submission
// @Summary Send Contact Email
// @Tags Notifications
// @Accept json
// @Produce json
// @Param request body dto.ContactEmailRequest true "Contact form data"
// @Success 200 {object} dto.APIResponse{data=dto.SendEmailResponse} "Email sent"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/notifications/contact [post]
func (h *NotificationHandler) SendContactEmail(c fiber.Ctx) error {
	var req dto.ContactEmailRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return err
	}

	metadata := clientMetadataFromRequest(c)

	result, err := h.notificationFlow.SendContactEmail(h.createRequestContext(c, "/api/v1/notifications/contact"), &req, metadata)
	if err != nil {
		return h.emailError(c, err, "Contact email dispatch failed")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Contact email sent", result)
}

func (h *NotificationHandler) bindAndValidate(c fiber.Ctx, req any) error {
	if err := c.Bind().JSON(req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}
	return nil
}

func (h *NotificationHandler) emailError(c fiber.Ctx, err error, genericMessage string) error {
	if businessflow.IsMissingEmailAPIKey(err) {
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Email provider is not configured", "EMAIL_NOT_CONFIGURED", nil)
	}

	log.Println(genericMessage, err)
	return h.ErrorResponse(c, fiber.StatusInternalServerError, genericMessage, "EMAIL_SEND_FAILED", nil)
}

func (h *NotificationHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return createRequestContextWithTimeout(c, endpoint, 15*time.Second)
}
