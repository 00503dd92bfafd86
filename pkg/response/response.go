package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/class-attendance-api/pkg/errors"
)

// ErrorBody is written for every failed request. Err carries the message under the key the
// browser frontend reads; Error carries the structured form.
type ErrorBody struct {
	Err   string           `json:"err"`
	Error *appErrors.Error `json:"error"`
}

// JSON sends a success payload as-is.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, payload)
}

// OK responds with HTTP 200.
func OK(c *gin.Context, payload interface{}) {
	JSON(c, http.StatusOK, payload)
}

// Error sends an error response converting the error to the common structure.
// Internal errors are reduced to their generic message; the cause stays in the logs.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	if appErr.Status >= http.StatusInternalServerError && appErr.Err != nil {
		_ = c.Error(appErr.Err)
	}
	public := &appErrors.Error{Code: appErr.Code, Message: appErr.Message, Status: appErr.Status}
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(appErr.Status, ErrorBody{Err: public.Message, Error: public})
}

// Abort writes the error and stops the handler chain.
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
