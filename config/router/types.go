package router

import (
	"github.com/gin-gonic/gin"
)

type RequestContext = gin.Context

type MiddlewareFunc = gin.HandlerFunc

// APIResponse is the fixed envelope every JSON endpoint speaks. Error holds a
// stable machine-readable code and is omitted on success.
type APIResponse struct {
	OK      bool   `json:"ok"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// ServiceResult is what handlers return; the router writes Headers, then the
// Body as JSON (or just the status when Body is nil).
type ServiceResult struct {
	StatusCode int
	Body       any
	Headers    map[string]string
}

type HandlerFunction func(*RequestContext) *ServiceResult

type RESTController struct {
	name         string
	mountPoint   string
	handlerCount int
	prepare      func(*RouterService, *RESTController)
}

func (result *ServiceResult) IsSuccess() bool {
	return result.StatusCode >= 200 && result.StatusCode < 300
}

func (result *ServiceResult) IsError() bool {
	return result.StatusCode >= 400
}
