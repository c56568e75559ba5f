package handlers

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/sajtem/sajtem-backend/app/dto"
	"github.com/sajtem/sajtem-backend/app/middleware"
	businessflow "github.com/sajtem/sajtem-backend/business_flow"
	"github.com/sajtem/sajtem-backend/utils"
)

// ShortURLHandlerInterface defines the contract for short URL handlers
type ShortURLHandlerInterface interface {
	Create(c fiber.Ctx) error
	Resolve(c fiber.Ctx) error
	QRCode(c fiber.Ctx) error
}

// ShortURLHandler handles short URL HTTP requests
type ShortURLHandler struct {
	createFlow businessflow.ShortURLFlow
	visitFlow  businessflow.ShortURLVisitFlow
	validator  *validator.Validate
}

func NewShortURLHandler(createFlow businessflow.ShortURLFlow, visitFlow businessflow.ShortURLVisitFlow) *ShortURLHandler {
	return &ShortURLHandler{
		createFlow: createFlow,
		visitFlow:  visitFlow,
		validator:  validator.New(),
	}
}

func (h *ShortURLHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *ShortURLHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Create registers a new short URL mapping
// @Summary Create Short URL
// @Tags ShortURLs
// @Accept json
// @Produce json
// @Param request body dto.CreateShortURLRequest true "Short URL data"
// @Success 201 {object} dto.APIResponse{data=dto.CreateShortURLResponse} "Short URL created"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/short-urls [post]
func (h *ShortURLHandler) Create(c fiber.Ctx) error {
	var req dto.CreateShortURLRequest
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

	// Anonymous creation is allowed; the identity only fills created_by
	var createdBy *uuid.UUID
	if uid, ok := middleware.GetUserIDFromContext(c); ok {
		createdBy = &uid
	}

	result, err := h.createFlow.Create(h.createRequestContext(c, "/api/v1/short-urls"), &req, createdBy, metadata)
	if err != nil {
		if businessflow.IsInvalidURL(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "original_url must be an absolute http(s) URL", "INVALID_URL", nil)
		}
		if businessflow.IsShortCodeConflict(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Could not generate a unique short code", "SHORT_CODE_CONFLICT", nil)
		}

		log.Println("Short URL creation failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Short URL creation failed", "SHORT_URL_CREATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Short URL created successfully", result)
}

// Resolve returns the original URL for a short code. The client performs
// the navigation; this endpoint never redirects.
// @Summary Resolve Short URL
// @Tags ShortURLs
// @Produce json
// @Param code path string true "Short code"
// @Success 200 {object} dto.ResolveShortURLResponse "Original URL"
// @Failure 404 {string} string "Not found or expired"
// @Router /{code} [get]
func (h *ShortURLHandler) Resolve(c fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).SendString("invalid short code")
	}

	metadata := clientMetadataFromRequest(c)

	result, err := h.visitFlow.Visit(h.createRequestContext(c, "/:code"), code, metadata)
	if err != nil {
		// Expired codes are indistinguishable from unknown ones to callers
		if businessflow.IsShortURLNotFound(err) || businessflow.IsShortURLExpired(err) {
			return c.Status(fiber.StatusNotFound).SendString("not found")
		}
		log.Println("Short URL resolution failed", err)
		return c.Status(fiber.StatusInternalServerError).SendString("internal error")
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// QRCode renders a PNG QR code for a short code
// @Summary Short URL QR Code
// @Tags ShortURLs
// @Produce png
// @Param code path string true "Short code"
// @Param size query int false "Image size in pixels"
// @Success 200 {string} binary "PNG image"
// @Failure 404 {string} string "Not found or expired"
// @Router /{code}/qr [get]
func (h *ShortURLHandler) QRCode(c fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).SendString("invalid short code")
	}

	size, _ := strconv.Atoi(c.Query("size", "256"))

	png, err := h.createFlow.QRCode(h.createRequestContext(c, "/:code/qr"), code, size)
	if err != nil {
		if businessflow.IsShortURLNotFound(err) || businessflow.IsShortURLExpired(err) {
			return c.Status(fiber.StatusNotFound).SendString("not found")
		}
		log.Println("Short URL QR rendering failed", err)
		return c.Status(fiber.StatusInternalServerError).SendString("internal error")
	}

	c.Set("Content-Type", "image/png")
	return c.Status(fiber.StatusOK).Send(png)
}

func (h *ShortURLHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return createRequestContextWithTimeout(c, endpoint, 10*time.Second)
}

func createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get(businessflow.RequestIDKey))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.TimeoutKey, timeout)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)
	return ctx
}
