package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestIDMiddleware はリクエストごとに ID を割り当て、レスポンスヘッダーに返します。
// クライアントが UUID 形式の ID を送ってきた場合はそれを使います。
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)

		c.Next()

		if status := c.Writer.Status(); status >= 400 {
			log.Printf("[%s] %s %s -> %d", id, c.Request.Method, c.Request.URL.Path, status)
		}
	}
}
