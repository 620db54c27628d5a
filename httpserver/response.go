package httpserver

import (
	"fmt"
	"net/http"
	"strconv"

	"moviecatalog/errs"

	"github.com/labstack/echo/v4"
)

const (
	successMessage         = "OK"
	internalErrorMessage   = "Internal server error"
	internalServerErrorKey = "100500"
)

// APIResponse is the envelope of every JSON body the server writes.
type APIResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Result  interface{} `json:"result,omitempty"`
	Info    string      `json:"info,omitempty"`
}

type listResult struct {
	Data interface{} `json:"data"`
}

type errorKind struct {
	status int
	code   string
}

// errorKinds maps application error codes to their HTTP status and
// envelope code. Codes missing here are treated as internal errors.
var errorKinds = map[string]errorKind{
	errs.EINVALID:        {status: http.StatusBadRequest, code: "100010"},
	errs.ENOTFOUND:       {status: http.StatusNotFound, code: "100404"},
	errs.ECONFLICT:       {status: http.StatusConflict, code: "100409"},
	errs.EUNAUTHORIZED:   {status: http.StatusUnauthorized, code: "100401"},
	errs.ENOTIMPLEMENTED: {status: http.StatusNotImplemented, code: "100501"},
}

func writeSuccess(c echo.Context, status int, result interface{}) error {
	return c.JSON(status, APIResponse{
		Code:    strconv.Itoa(status),
		Message: successMessage,
		Result:  result,
	})
}

func writeList(c echo.Context, status int, data interface{}) error {
	return writeSuccess(c, status, listResult{Data: data})
}

func writeError(c echo.Context, status int, message, info string, err error) error {
	return c.JSON(status, APIResponse{
		Code:    errorCode(err, status),
		Message: message,
		Info:    info,
	})
}

func errorCode(err error, status int) string {
	if kind, ok := errorKinds[errs.ErrorCode(err)]; ok {
		return kind.code
	}
	if status == 0 || status == http.StatusInternalServerError {
		return internalServerErrorKey
	}
	return fmt.Sprintf("100%03d", status)
}
