// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides SecurityHeaders, a hardening middleware that attaches
// a conservative set of HTTP security headers suitable for JSON APIs
// running behind a reverse proxy. HSTS is opt-in and only emitted when the
// request is actually HTTPS.
package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// SecurityOptions configures the headers emitted by SecurityHeaders.
// EnableHSTS should only be set when traffic is HTTPS end-to-end
// (including between proxy and app); HSTSMaxAge defaults to 180 days.
type SecurityOptions struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// SecurityHeaders returns a Gin middleware adding baseline hardening
// headers to each response: nosniff, frame denial, no-referrer, and a
// restrictive Permissions-Policy. With EnableHSTS, HTTPS responses also
// carry Strict-Transport-Security.
func SecurityHeaders(opt SecurityOptions) gin.HandlerFunc {
	maxAge := int(opt.HSTSMaxAge.Seconds())
	if maxAge <= 0 {
		maxAge = int((180 * 24 * time.Hour).Seconds())
	}
	return func(c *gin.Context) {
		h := c.Writer.Header()

		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=(), payment=()")

		if opt.EnableHSTS && c.Request.TLS != nil {
			h.Set("Strict-Transport-Security", "max-age="+strconv.Itoa(maxAge)+"; includeSubDomains")
		}

		c.Next()
	}
}
