package middleware

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Tracing opens a span per request named after the matched route. Place it
// early in the chain so downstream middleware and handlers run inside the
// span.
func Tracing(serviceName string) gin.HandlerFunc {
	return otelgin.Middleware(serviceName)
}

// TraceAttributes enriches the active request span with the request ID and
// the authenticated tenant. It must run after Tracing and after the JWT
// middleware has populated the context.
func TraceAttributes() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if span.IsRecording() {
			if requestID := c.GetString("request_id"); requestID != "" {
				span.SetAttributes(attribute.String("request_id", requestID))
			}
			if tenantID := c.GetString(JWTTenantIDKey); tenantID != "" {
				span.SetAttributes(attribute.String("tenant_id", tenantID))
			}
		}
		c.Next()
	}
}
