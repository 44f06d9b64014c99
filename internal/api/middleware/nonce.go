package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// NonceHeader carries the one-time token on mutating requests.
const NonceHeader = "X-Nonce"

// NonceStore issues and verifies single-use, action-bound tokens backed by
// Redis. Tokens expire after the configured TTL; verification consumes the
// token, so a replayed request fails even inside the TTL window.
type NonceStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewNonceStore creates a new NonceStore.
func NewNonceStore(rdb *redis.Client, ttl time.Duration) *NonceStore {
	return &NonceStore{rdb: rdb, ttl: ttl}
}

func nonceKey(action, token string) string {
	return fmt.Sprintf("nonce:%s:%s", action, token)
}

// Issue creates a fresh nonce for the given action and returns the token.
func (ns *NonceStore) Issue(ctx context.Context, action string) (string, error) {
	token := uuid.NewString()
	ok, err := ns.rdb.SetNX(ctx, nonceKey(action, token), "1", ns.ttl).Result()
	if err != nil {
		return "", fmt.Errorf("failed to store nonce: %w", err)
	}
	if !ok {
		// UUID collision, practically unreachable.
		return "", fmt.Errorf("nonce token already exists")
	}
	return token, nil
}

// Verify consumes the token for the given action. Returns false when the
// token is unknown, expired, already used, or bound to a different action.
func (ns *NonceStore) Verify(ctx context.Context, action, token string) (bool, error) {
	_, err := ns.rdb.GetDel(ctx, nonceKey(action, token)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to verify nonce: %w", err)
	}
	return true, nil
}

// Require creates a Gin middleware that rejects requests lacking a valid
// nonce for the given action.
func (ns *NonceStore) Require(action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(NonceHeader)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Missing nonce"})
			return
		}

		valid, err := ns.Verify(c.Request.Context(), action, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify nonce"})
			return
		}
		if !valid {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid or expired nonce"})
			return
		}

		c.Next()
	}
}
