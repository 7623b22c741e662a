package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewOKResp returns a new OK response with the given data.
func NewOKResp(data any) Resp {
	return Resp{
		ErrorCode: 0,
		Message:   MessageSuccess,
		Data:      data,
	}
}

// OK sends 200 JSON with data.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, NewOKResp(data))
}

// Status sends 200 {"status": status}.
func Status(c *gin.Context, status string) {
	c.JSON(http.StatusOK, StatusResp{Status: status})
}

// ErrorJSON sends {"error": msg} with the given status code.
func ErrorJSON(c *gin.Context, code int, msg string) {
	c.JSON(code, ErrorResp{Error: msg})
}

// AbortErrorJSON is ErrorJSON for middleware that must stop the chain.
func AbortErrorJSON(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(code, ErrorResp{Error: msg})
}
