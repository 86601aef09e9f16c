package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vitamed/backend/internal/auth"
	"github.com/vitamed/backend/internal/common"
)

const (
	UserIDKey    = "user_id"
	RequestIDKey = "request_id"
)

func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("panic recovered path=%s err=%v", c.Request.URL.Path, r)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"detail": "Sunucu hatası",
				})
			}
		}()
		c.Next()
	}
}

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := common.NewULID()
		if err == nil {
			c.Set(RequestIDKey, id)
			c.Writer.Header().Set("X-Request-ID", id)
		}
		c.Next()
	}
}

// TokenAuth validates the session token passed as the `token` query
// parameter. Any failure mode reports the same undifferentiated message.
func TokenAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		uid, err := auth.ParseJWT(token, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"detail": "Geçersiz veya süresi dolmuş token",
			})
			return
		}
		c.Set(UserIDKey, uid)
		c.Next()
	}
}
