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

// PaymentHandlerInterface defines the contract for payment handlers
type PaymentHandlerInterface interface {
	CreatePixPayment(c fiber.Ctx) error
	CreateCardPayment(c fiber.Ctx) error
	Webhook(c fiber.Ctx) error
}

// PaymentHandler handles payment-related HTTP requests
type PaymentHandler struct {
	paymentFlow businessflow.PaymentFlow
	validator   *validator.Validate
}

func NewPaymentHandler(paymentFlow businessflow.PaymentFlow) *PaymentHandler {
	return &PaymentHandler{
		paymentFlow: paymentFlow,
		validator:   validator.New(),
	}
}

func (h *PaymentHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *PaymentHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// CreatePixPayment creates a Pix payment intent at the gateway
// @Summary Create Pix Payment
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body dto.CreatePixPaymentRequest true "Pix payment data"
// @Success 200 {object} dto.APIResponse{data=dto.PixPaymentResponse} "Payment intent created"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 404 {object} dto.APIResponse "Plan not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/payments/pix [post]
func (h *PaymentHandler) CreatePixPayment(c fiber.Ctx) error {
	var req dto.CreatePixPaymentRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	metadata := clientMetadataFromRequest(c)

	result, err := h.paymentFlow.CreatePixPayment(h.createRequestContext(c, "/api/v1/payments/pix"), &req, metadata)
	if err != nil {
		return h.paymentError(c, err, "Pix payment creation failed", "PIX_PAYMENT_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Pix payment created successfully", result)
}

// CreateCardPayment charges a tokenized card at the gateway
// @Summary Create Card Payment
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body dto.CreateCardPaymentRequest true "Card payment data"
// @Success 200 {object} dto.APIResponse{data=dto.CardPaymentResponse} "Payment processed"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 404 {object} dto.APIResponse "Plan not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/payments/card [post]
func (h *PaymentHandler) CreateCardPayment(c fiber.Ctx) error {
	var req dto.CreateCardPaymentRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	metadata := clientMetadataFromRequest(c)

	result, err := h.paymentFlow.CreateCardPayment(h.createRequestContext(c, "/api/v1/payments/card"), &req, metadata)
	if err != nil {
		return h.paymentError(c, err, "Card payment failed", "CARD_PAYMENT_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Card payment processed successfully", result)
}

// Webhook receives gateway payment notifications. Always acknowledged
// with 200 unless the payload is unreadable, so the gateway does not
// retry storms on our own downstream failures.
// @Summary Payment Webhook
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body dto.PaymentWebhookRequest true "Gateway notification"
// @Success 200 {object} dto.APIResponse "Notification processed"
// @Failure 400 {object} dto.APIResponse "Invalid payload"
// @Router /api/v1/payments/webhook [post]
func (h *PaymentHandler) Webhook(c fiber.Ctx) error {
	var req dto.PaymentWebhookRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	metadata := clientMetadataFromRequest(c)

	if err := h.paymentFlow.HandleWebhook(h.createRequestContext(c, "/api/v1/payments/webhook"), &req, metadata); err != nil {
		log.Println("Payment webhook processing failed", err)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Webhook received", nil)
}

func (h *PaymentHandler) paymentError(c fiber.Ctx, err error, genericMessage, genericCode string) error {
	if businessflow.IsPlanNotFound(err) {
		return h.ErrorResponse(c, fiber.StatusNotFound, "Plan not found", "PLAN_NOT_FOUND", nil)
	}
	if businessflow.IsPlanInactive(err) {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Plan is inactive", "PLAN_INACTIVE", nil)
	}
	if businessflow.IsMissingGatewayToken(err) {
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Payment gateway is not configured", "GATEWAY_NOT_CONFIGURED", nil)
	}

	log.Println(genericMessage, err)
	return h.ErrorResponse(c, fiber.StatusInternalServerError, genericMessage, genericCode, nil)
}

func (h *PaymentHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}
