// Package httperr renders API failures as
// {"error": {"code", "message"}, "detail"} and records the cause on the gin
// context, where the error middleware logs it.
package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const CodeInternal = "InternalError"

type Body struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

type Response struct {
	Status int  `json:"-"`
	Error  Body `json:"error"`
	Detail any  `json:"detail,omitempty"`
}

func New(status int, code, msg string, detail any) Response {
	return Response{
		Status: status,
		Error:  Body{Code: code, Message: msg},
		Detail: detail,
	}
}

// Internal is the only body a client sees for a 5xx.
func Internal() Response {
	return New(http.StatusInternalServerError, CodeInternal, "Internal server error", nil)
}

// AbortWithCode adds a stable machine-readable code next to the message.
func AbortWithCode(c *gin.Context, status int, err error, code, msg string, detail any) {
	abort(c, err, New(status, code, msg, detail))
}

// AbortInternal keeps err out of the response body.
func AbortInternal(c *gin.Context, err error) {
	abort(c, err, Internal())
}

func abort(c *gin.Context, err error, resp Response) {
	if err == nil {
		panic("httperr: abort without a cause")
	}
	_ = c.Error(gin.Error{Err: err, Type: gin.ErrorTypePublic, Meta: resp})
	c.AbortWithStatusJSON(resp.Status, resp)
}
