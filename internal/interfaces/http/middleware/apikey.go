package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"github.com/tasknest/tasknest/internal/shared/errors"
	"github.com/tasknest/tasknest/internal/shared/utils"
)

const APIKeyHeader = "x-api-key"

// APIKey checks the x-api-key header against the configured keys. Requests
// without the header pass; a present header must match one of the keys.
func APIKey(keys []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader(APIKeyHeader)
		if provided == "" {
			c.Next()
			return
		}

		if !matchesAny(provided, keys) {
			utils.ErrorResponseWithError(c, errors.NewForbiddenError("invalid API key"))
			c.Abort()
			return
		}
		c.Next()
	}
}

func matchesAny(provided string, keys []string) bool {
	found := 0
	for _, k := range keys {
		if k == "" {
			continue
		}
		found |= subtle.ConstantTimeCompare([]byte(provided), []byte(k))
	}
	return found == 1
}
