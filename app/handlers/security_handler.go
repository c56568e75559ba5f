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

// SecurityHandlerInterface defines the contract for security handlers
type SecurityHandlerInterface interface {
	LogEvent(c fiber.Ctx) error
	CheckRateLimit(c fiber.Ctx) error
}

// SecurityHandler handles security event and rate limit HTTP requests
type SecurityHandler struct {
	securityFlow businessflow.SecurityFlow
	validator    *validator.Validate
}

func NewSecurityHandler(securityFlow businessflow.SecurityFlow) *SecurityHandler {
	return &SecurityHandler{
		securityFlow: securityFlow,
		validator:    validator.New(),
	}
}

func (h *SecurityHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *SecurityHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// LogEvent appends a security event to the audit trail
// @Summary Log Security Event
// @Tags Security
// @Accept json
// @Produce json
// @Param request body dto.LogSecurityEventRequest true "Security event data"
// @Success 200 {object} dto.APIResponse{data=dto.LogSecurityEventResponse} "Event recorded"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/security/events [post]
func (h *SecurityHandler) LogEvent(c fiber.Ctx) error {
	var req dto.LogSecurityEventRequest
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

	result, err := h.securityFlow.LogEvent(h.createRequestContext(c, "/api/v1/security/events"), &req, metadata)
	if err != nil {
		if businessflow.IsEventTypeRequired(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "event_type is required", "EVENT_TYPE_REQUIRED", nil)
		}

		log.Println("Security event logging failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Security event logging failed", "SECURITY_EVENT_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Security event recorded", result)
}

// CheckRateLimit answers an advisory sliding-window rate limit check
// @Summary Check Rate Limit
// @Tags Security
// @Accept json
// @Produce json
// @Param request body dto.RateLimitCheckRequest true "Rate limit check data"
// @Success 200 {object} dto.APIResponse{data=dto.RateLimitCheckResponse} "Window state"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/security/rate-limit-check [post]
func (h *SecurityHandler) CheckRateLimit(c fiber.Ctx) error {
	var req dto.RateLimitCheckRequest
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

	result, err := h.securityFlow.CheckRateLimit(h.createRequestContext(c, "/api/v1/security/rate-limit-check"), &req, metadata)
	if err != nil {
		if businessflow.IsIdentifierRequired(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "identifier is required", "IDENTIFIER_REQUIRED", nil)
		}

		log.Println("Rate limit check failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Rate limit check failed", "RATE_LIMIT_CHECK_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Rate limit check completed", result)
}

func (h *SecurityHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return createRequestContextWithTimeout(c, endpoint, 10*time.Second)
}
