package router

import (
	"net/http"
	"strconv"

	"github.com/akeren/waitlist-api/internal/log"
	apperrors "github.com/akeren/waitlist-api/pkg/errors"
)

func GetLogger(ctx *RequestContext) *log.Logger {
	if logger := ctx.Request.Context().Value(log.LoggerKeyForContext); logger != nil {
		if l, ok := logger.(*log.Logger); ok {
			return l
		}
	}

	baseLogger := log.NewLoggerWithJSONOutput()
	return baseLogger.WithCorrelationID(ctx.Request.Context())
}

// OKResult wraps an arbitrary body, for endpoints with a richer shape than
// the standard envelope (health, status).
func OKResult(body any) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusOK,
		Body:       body,
	}
}

func OKMessageResult(message string) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusOK,
		Body:       APIResponse{OK: true, Message: message},
	}
}

func CreatedResult(message string) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusCreated,
		Body:       APIResponse{OK: true, Message: message},
	}
}

func NoContentResult(headers map[string]string) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusNoContent,
		Headers:    headers,
	}
}

func ErrorResult(statusCode int, code, message string) *ServiceResult {
	return &ServiceResult{
		StatusCode: statusCode,
		Body:       APIResponse{OK: false, Error: code, Message: message},
	}
}

func BadRequestResult(code, message string) *ServiceResult {
	return ErrorResult(http.StatusBadRequest, code, message)
}

func NotFoundResult(message string) *ServiceResult {
	return ErrorResult(http.StatusNotFound, apperrors.CodeNotFound, message)
}

func MethodNotAllowedResult(message string) *ServiceResult {
	return ErrorResult(http.StatusMethodNotAllowed, apperrors.CodeMethodNotAllowed, message)
}

func InternalServerErrorResult(message string) *ServiceResult {
	return ErrorResult(http.StatusInternalServerError, apperrors.CodeInternalError, message)
}

// TooManyRequestsResult carries the Retry-After header alongside the
// rate_limited envelope.
func TooManyRequestsResult(message string, retryAfterSeconds int) *ServiceResult {
	if retryAfterSeconds < 1 {
		retryAfterSeconds = 1
	}

	result := ErrorResult(http.StatusTooManyRequests, apperrors.CodeRateLimited, message)
	result.Headers = map[string]string{"Retry-After": strconv.Itoa(retryAfterSeconds)}
	return result
}
