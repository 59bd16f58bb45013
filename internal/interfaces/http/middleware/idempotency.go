package middleware

import (
	"net/http"
	"time"

	"github.com/gemsuite/backend/internal/infrastructure/cache"
	"github.com/gemsuite/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// IdempotencyKeyHeader is the header clients send to deduplicate retries
const IdempotencyKeyHeader = "Idempotency-Key"

// DefaultIdempotencyTTL is how long a processed key stays recorded
const DefaultIdempotencyTTL = 24 * time.Hour

// Idempotency returns a middleware that rejects replays of mutating requests.
// Clients opt in by sending an Idempotency-Key header; requests without the
// header pass through untouched. Keys are scoped per tenant so two tenants
// can use the same key without colliding.
func Idempotency(store cache.IdempotencyStore) gin.HandlerFunc {
	return IdempotencyWithTTL(store, DefaultIdempotencyTTL)
}

// IdempotencyWithTTL returns an idempotency middleware with a custom TTL
func IdempotencyWithTTL(store cache.IdempotencyStore, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		if tenantID := GetJWTTenantID(c); tenantID != "" {
			key = tenantID + ":" + key
		}

		firstUse, err := store.MarkProcessed(c.Request.Context(), key, ttl)
		if err != nil {
			// Store failure must not block the request
			c.Next()
			return
		}
		if !firstUse {
			c.AbortWithStatusJSON(http.StatusConflict, dto.NewErrorResponse(
				dto.ErrCodeConflict,
				"A request with this idempotency key was already processed",
			))
			return
		}

		c.Next()
	}
}
