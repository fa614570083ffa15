package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"taskapi/internal/adapter/http/helper"
)

// BearerAuth lets a request through only when its Authorization header is
// exactly "Bearer <secret>".
func BearerAuth(secret string) gin.HandlerFunc {
	expected := []byte("Bearer " + secret)

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")

		if header == "" || secret == "" || subtle.ConstantTimeCompare([]byte(header), expected) != 1 {
			helper.SendUnauthorizedError(c)
			return
		}

		c.Next()
	}
}
