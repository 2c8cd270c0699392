package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"certshare/internal/http/middleware"
	"certshare/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "NOT_FOUND", "FILE_TOO_LARGE")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// writeServiceError translates service-level sentinel errors into the
// standardized payload. Unknown errors become INTERNAL_ERROR.
func writeServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "certificate not found")
	case errors.Is(err, service.ErrProfileNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "profile not found")
	case errors.Is(err, service.ErrAuthRequired):
		return writeError(c, fiber.StatusUnauthorized, "AUTH_REQUIRED", "authentication required")
	case errors.Is(err, service.ErrFileTooLarge):
		return writeError(c, fiber.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds the maximum allowed size")
	case errors.Is(err, service.ErrUnsupportedFileType):
		return writeError(c, fiber.StatusUnsupportedMediaType, "UNSUPPORTED_FILE_TYPE", "file type is not allowed")
	case errors.Is(err, service.ErrMissingInformation),
		errors.Is(err, service.ErrMissingUsername),
		errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "MISSING_INFORMATION", "required fields are missing")
	case errors.Is(err, service.ErrUsernameTaken):
		return writeError(c, fiber.StatusConflict, "USERNAME_TAKEN", "username is already taken")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
