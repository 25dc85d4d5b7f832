// Package handlers provides HTTP handler implementations for the public
// API.
//
// This file defines the standard response utilities used across all
// endpoints: structured error envelopes, consistent JSON serialization,
// and helpers for common HTTP patterns, so both success and failure
// responses stay uniform and machine-friendly.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kimmyna/Tripspark-Log/internal/http/middleware"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
type ErrorResponse struct {
	// RequestID correlates server logs and client errors.
	RequestID string `json:"request_id,omitempty"`
	// Code is a stable, machine-readable string (see errors.go constants).
	Code string `json:"code"`
	// Message is a human-readable description, safe to show to users.
	Message string `json:"message"`
}

// fail aborts the request with a structured error. Server errors (>= 500)
// are additionally logged with the request-scoped logger.
func fail(c *gin.Context, status int, code, msg string) {
	reqID := c.Writer.Header().Get("X-Request-ID")
	resp := ErrorResponse{
		RequestID: reqID,
		Code:      code,
		Message:   msg,
	}

	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail(), for router-level fallbacks.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}
