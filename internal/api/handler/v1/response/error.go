package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Err struct {
	Err            error  `json:"-"`
	HTTPStatusCode int    `json:"-"`
	Success        bool   `json:"success"`
	StatusText     string `json:"status_text"`
	Message        string `json:"message"`
}

func (e *Err) Error() string {
	if e.Err == nil {
		return e.StatusText
	}
	return e.Err.Error()
}

// RenderErr writes the error body and aborts the chain. Server side faults are
// logged and replaced with a generic message.
func RenderErr(ctx *gin.Context, e *Err) {
	if e.HTTPStatusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.FullPath()),
			zap.Error(e.Err),
		)
	}

	ctx.AbortWithStatusJSON(e.HTTPStatusCode, e)
}

func newErr(status int, err error, msg string) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: status,
		StatusText:     http.StatusText(status),
		Message:        msg,
	}
}

func ErrBadRequest(err error) *Err {
	return newErr(http.StatusBadRequest, err, err.Error())
}

func ErrNotFound(resource, field string, value any) *Err {
	err := fmt.Errorf("%v with %v=%v is not found", resource, field, value)
	return newErr(http.StatusNotFound, err, err.Error())
}

// ErrNotFoundMessage is used where the body must carry a fixed message.
func ErrNotFoundMessage(msg string) *Err {
	return newErr(http.StatusNotFound, fmt.Errorf("%v", msg), msg)
}

func ErrWrongCredentials(err error) *Err {
	return newErr(http.StatusUnauthorized, err, "Invalid credentials")
}

func ErrAccountDisabled(err error) *Err {
	return newErr(http.StatusUnauthorized, err, "Account is disabled")
}

func ErrUnauthorized(err error) *Err {
	return newErr(http.StatusUnauthorized, err, "Unauthorized")
}

func ErrPermissionDenied(err error) *Err {
	return newErr(http.StatusForbidden, err, "Permission denied")
}

func ErrConflict(err error) *Err {
	return newErr(http.StatusConflict, err, err.Error())
}

func ErrServiceUnavailable(err error) *Err {
	return newErr(http.StatusServiceUnavailable, err, "Service unavailable")
}

func ErrInternalServerError(err error) *Err {
	return newErr(http.StatusInternalServerError, err, "Internal Server Error")
}

// ErrBadRequestMessage keeps err for logs and shows msg to the client.
func ErrBadRequestMessage(err error, msg string) *Err {
	return newErr(http.StatusBadRequest, err, msg)
}
