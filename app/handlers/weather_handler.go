package handlers

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sajtem/sajtem-backend/app/dto"
	businessflow "github.com/sajtem/sajtem-backend/business_flow"
)

// WeatherHandlerInterface defines the contract for the weather proxy
type WeatherHandlerInterface interface {
	Current(c fiber.Ctx) error
}

// WeatherHandler proxies current weather conditions for the city pages
type WeatherHandler struct {
	weatherFlow businessflow.WeatherFlow
}

func NewWeatherHandler(weatherFlow businessflow.WeatherFlow) *WeatherHandler {
	return &WeatherHandler{weatherFlow: weatherFlow}
}

func (h *WeatherHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *WeatherHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Current returns current conditions for a city
// @Summary Current Weather
// @Tags Weather
// @Produce json
// @Param city query string true "City name"
// @Success 200 {object} dto.APIResponse{data=dto.WeatherResponse} "Current conditions"
// @Failure 400 {object} dto.APIResponse "Missing city"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/weather [get]
func (h *WeatherHandler) Current(c fiber.Ctx) error {
	city := c.Query("city")

	result, err := h.weatherFlow.Current(h.createRequestContext(c, "/api/v1/weather"), city)
	if err != nil {
		if businessflow.IsCityRequired(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "city query parameter is required", "CITY_REQUIRED", nil)
		}
		if businessflow.IsMissingWeatherAPIKey(err) {
			return h.ErrorResponse(c, fiber.StatusInternalServerError, "Weather provider is not configured", "WEATHER_NOT_CONFIGURED", nil)
		}

		log.Println("Weather lookup failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Weather lookup failed", "WEATHER_LOOKUP_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Weather retrieved successfully", result)
}

func (h *WeatherHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return createRequestContextWithTimeout(c, endpoint, 10*time.Second)
}
