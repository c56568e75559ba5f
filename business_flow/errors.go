// Package businessflow contains the core business logic and use cases of the backend
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Short URL errors
	ErrInvalidURL        = errors.New("original URL is invalid")
	ErrShortURLNotFound  = errors.New("short URL not found")
	ErrShortURLExpired   = errors.New("short URL has expired")
	ErrShortCodeConflict = errors.New("short code generation conflict")

	// Payment errors
	ErrPlanNotFound        = errors.New("plan not found")
	ErrPlanInactive        = errors.New("plan is inactive")
	ErrMissingGatewayToken = errors.New("payment gateway access token is not configured")

	// Notification errors
	ErrMissingEmailAPIKey = errors.New("email provider API key is not configured")

	// Security errors
	ErrEventTypeRequired  = errors.New("event type is required")
	ErrIdentifierRequired = errors.New("rate limit identifier is required")

	// Weather errors
	ErrMissingWeatherAPIKey = errors.New("weather provider API key is not configured")
	ErrCityRequired         = errors.New("city is required")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func IsInvalidURL(err error) bool {
	return errors.Is(err, ErrInvalidURL)
}

func IsShortURLNotFound(err error) bool {
	return errors.Is(err, ErrShortURLNotFound)
}

func IsShortURLExpired(err error) bool {
	return errors.Is(err, ErrShortURLExpired)
}

func IsShortCodeConflict(err error) bool {
	return errors.Is(err, ErrShortCodeConflict)
}

func IsPlanNotFound(err error) bool {
	return errors.Is(err, ErrPlanNotFound)
}

func IsPlanInactive(err error) bool {
	return errors.Is(err, ErrPlanInactive)
}

func IsMissingGatewayToken(err error) bool {
	return errors.Is(err, ErrMissingGatewayToken)
}

func IsMissingEmailAPIKey(err error) bool {
	return errors.Is(err, ErrMissingEmailAPIKey)
}

func IsEventTypeRequired(err error) bool {
	return errors.Is(err, ErrEventTypeRequired)
}

func IsIdentifierRequired(err error) bool {
	return errors.Is(err, ErrIdentifierRequired)
}

func IsMissingWeatherAPIKey(err error) bool {
	return errors.Is(err, ErrMissingWeatherAPIKey)
}

func IsCityRequired(err error) bool {
	return errors.Is(err, ErrCityRequired)
}
