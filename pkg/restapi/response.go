package restapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"videoflix-service/pkg/errno"
)

// Response is the uniform envelope for JSON endpoints.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success writes a 200 envelope with the given payload.
func Success(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, Response{
		Code:    errno.OK.Code,
		Message: errno.OK.Message,
		Data:    data,
	})
}

// Failed maps an error to its envelope. Errno values keep their code; any
// other error is reported as an internal error without leaking its text in
// the code field.
func Failed(ctx *gin.Context, err error) {
	var e *errno.Errno
	if errors.As(err, &e) {
		ctx.JSON(httpStatus(e.Code), Response{Code: e.Code, Message: e.Message})
		return
	}
	ctx.JSON(http.StatusInternalServerError, Response{
		Code:    errno.ErrInternalServer.Code,
		Message: err.Error(),
	})
}

// httpStatus collapses business codes onto transport status codes.
func httpStatus(code int) int {
	switch {
	case code == errno.ErrPlaylistNotFound.Code || code == errno.ErrSegmentNotFound.Code:
		return http.StatusNotFound
	case code >= 200 && code < 600:
		return code
	default:
		return http.StatusBadRequest
	}
}
