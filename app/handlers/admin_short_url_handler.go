// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sajtem/sajtem-backend/app/dto"
	businessflow "github.com/sajtem/sajtem-backend/business_flow"
)

// AdminShortURLHandlerInterface defines the contract for admin short URL handlers
type AdminShortURLHandlerInterface interface {
	List(c fiber.Ctx) error
	Export(c fiber.Ctx) error
}

// AdminShortURLHandler handles the admin short URL listing and export
type AdminShortURLHandler struct {
	adminFlow businessflow.AdminShortURLFlow
}

func NewAdminShortURLHandler(adminFlow businessflow.AdminShortURLFlow) *AdminShortURLHandler {
	return &AdminShortURLHandler{adminFlow: adminFlow}
}

func (h *AdminShortURLHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *AdminShortURLHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// List returns paginated short URLs with click stats
// @Summary List Short URLs
// @Tags Admin
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.APIResponse "Short URLs with click stats"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/short-urls [get]
func (h *AdminShortURLHandler) List(c fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "50"))

	rows, total, err := h.adminFlow.List(h.createRequestContext(c, "/api/v1/admin/short-urls"), page, pageSize)
	if err != nil {
		log.Println("Short URL listing failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Short URL listing failed", "SHORT_URL_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Short URLs retrieved successfully", fiber.Map{
		"items": rows,
		"total": total,
		"page":  page,
	})
}

// Export streams the full mapping list as an xlsx attachment
// @Summary Export Short URLs
// @Tags Admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {string} binary "Workbook"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/short-urls/export [get]
func (h *AdminShortURLHandler) Export(c fiber.Ctx) error {
	data, filename, err := h.adminFlow.ExportExcel(h.createRequestContext(c, "/api/v1/admin/short-urls/export"))
	if err != nil {
		log.Println("Short URL export failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Short URL export failed", "SHORT_URL_EXPORT_FAILED", nil)
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Status(fiber.StatusOK).Send(data)
}

func (h *AdminShortURLHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}
