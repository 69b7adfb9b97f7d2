// Package response writes the JSON envelope shared by every endpoint.
package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestIDKey is the gin context key the request-id middleware fills.
const RequestIDKey = "request_id"

// APIResponse is the envelope. Data is set on success, Error on failure.
type APIResponse[T any] struct {
	Status    int       `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id"`
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Data      T         `json:"data,omitempty"`
	Meta      any       `json:"meta,omitempty"`
	Error     any       `json:"error,omitempty"`
}

func write[T any](c *gin.Context, resp APIResponse[T]) APIResponse[T] {
	resp.Timestamp = time.Now().UTC()
	resp.RequestID = c.GetString(RequestIDKey)
	c.JSON(resp.Status, resp)
	return resp
}

// Success answers status (200 when zero) with data and optional meta.
func Success[T any](c *gin.Context, status int, data T, message string, meta any) APIResponse[T] {
	if status == 0 {
		status = http.StatusOK
	}
	return write(c, APIResponse[T]{Status: status, Success: true, Message: message, Data: data, Meta: meta})
}

// Error answers status (400 when zero) with details under "error". It does
// not abort the chain.
func Error[T any](c *gin.Context, status int, message string, details any) APIResponse[T] {
	if status == 0 {
		status = http.StatusBadRequest
	}
	return write(c, APIResponse[T]{Status: status, Message: message, Error: details})
}
