package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"repo-event-relay/pkg/response"
)

// Recovery turns a handler panic into 500 {"error": msg} so every endpoint answers with a body.
func (m Middleware) Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				m.l.Errorf(c.Request.Context(), "middleware.Recovery: %s %s: %v", c.Request.Method, c.Request.URL.Path, r)
				if c.Writer.Written() {
					c.Abort()
					return
				}
				response.AbortErrorJSON(c, http.StatusInternalServerError, fmt.Sprint(r))
			}
		}()
		c.Next()
	}
}
