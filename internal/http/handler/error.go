package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"hotelapi/internal/http/middleware"
	"hotelapi/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	Status    int                  `json:"status"`
	Code      string               `json:"code"`
	Message   string               `json:"message"`
	RequestID string               `json:"request_id"`
	Details   []service.FieldError `json:"details,omitempty"`
}

// APIError is a request error raised by the HTTP layer itself (bad id, body or query).
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string { return e.Message }

var (
	errInvalidID    = &APIError{Status: fiber.StatusBadRequest, Code: "INVALID_ID", Message: "invalid id format"}
	errInvalidBody  = &APIError{Status: fiber.StatusBadRequest, Code: "INVALID_BODY", Message: "malformed JSON body"}
	errFileRequired = &APIError{Status: fiber.StatusBadRequest, Code: "FILE_REQUIRED", Message: "file is required"}
	errUnavailable  = &APIError{Status: fiber.StatusServiceUnavailable, Code: "SERVICE_UNAVAILABLE", Message: "dependency unavailable"}
)

func invalidQuery(msg string) *APIError {
	return &APIError{Status: fiber.StatusBadRequest, Code: "INVALID_QUERY", Message: msg}
}

// serviceErrors maps service sentinels to their response.
var serviceErrors = []struct {
	err    error
	status int
	code   string
}{
	{service.ErrRoomTypeNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{service.ErrRoomNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{service.ErrImageNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{service.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{service.ErrRoomTypeInUse, fiber.StatusConflict, "ROOM_TYPE_IN_USE"},
	{service.ErrInvalidRoomType, fiber.StatusBadRequest, "INVALID_ROOM_TYPE"},
	{service.ErrStorageUnavailable, fiber.StatusServiceUnavailable, "STORAGE_UNAVAILABLE"},
}

// ErrorHandler returns the Fiber global error handler. It is the only place that writes
// error bodies. Unexpected errors become 500 INTERNAL_ERROR and are logged; their text
// never reaches the client.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		res := errorPayload{RequestID: middleware.GetRequestID(c)}

		var (
			apiErr   *APIError
			valErr   *service.ValidationError
			fiberErr *fiber.Error
		)
		switch {
		case errors.As(err, &apiErr):
			res.Status, res.Code, res.Message = apiErr.Status, apiErr.Code, apiErr.Message
		case errors.As(err, &valErr):
			res.Status, res.Code, res.Message = fiber.StatusBadRequest, "VALIDATION_FAILED", "validation failed"
			res.Details = valErr.Fields
		case errors.As(err, &fiberErr):
			res.Status, res.Code, res.Message = fiberErr.Code, statusCode(fiberErr.Code), fiberErr.Message
		default:
			for _, m := range serviceErrors {
				if errors.Is(err, m.err) {
					res.Status, res.Code, res.Message = m.status, m.code, m.err.Error()
					break
				}
			}
		}

		if res.Status == 0 {
			res.Status, res.Code, res.Message = fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error"
		}
		if res.Status >= fiber.StatusInternalServerError {
			log.Error("request failed",
				zap.String("request_id", res.RequestID),
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Int("status", res.Status),
				zap.Error(err),
			)
		}

		return c.Status(res.Status).JSON(res)
	}
}

// statusCode turns an HTTP status into an upper snake case code, e.g. 404 -> NOT_FOUND.
func statusCode(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return "ERROR"
	}
	return strings.ToUpper(strings.NewReplacer(" ", "_", "-", "_", "'", "").Replace(text))
}
