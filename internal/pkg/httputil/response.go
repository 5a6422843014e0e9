package httputil

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/marcos-nsantos/satellite-imagery-backend/internal/pkg/apperror"
)

const (
	RequestIDKey = "request_id"
	SubjectKey   = "subject"
)

type ErrorResponse struct {
	Error     string         `json:"error"`
	Code      string         `json:"code,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
}

// detailer is implemented by errors that carry data worth returning to the client,
// such as the tile counts of a failed download.
type detailer interface {
	Details() map[string]any
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func ErrorWithCode(c *gin.Context, status int, code, message string) {
	writeError(c, status, code, message, nil)
}

// ValidationError reports binding failures. Validator errors are listed per JSON field.
func ValidationError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	fields := make(map[string]any, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		fields[jsonName(fe.Field())] = rule
	}
	writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "request validation failed", fields)
}

func InternalError(c *gin.Context) {
	writeError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error", nil)
}

// HandleError writes the mapped error response and records err on the context for the request logger.
func HandleError(c *gin.Context, err error) {
	_ = c.Error(err)

	appErr := apperror.FromError(err)
	if appErr.StatusCode >= http.StatusInternalServerError && appErr.Code == "INTERNAL_ERROR" {
		InternalError(c)
		return
	}

	var details map[string]any
	var d detailer
	if errors.As(err, &d) {
		details = d.Details()
	}
	writeError(c, appErr.StatusCode, appErr.Code, appErr.Message, details)
}

func writeError(c *gin.Context, status int, code, message string, details map[string]any) {
	c.JSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		Details:   details,
		RequestID: GetRequestID(c),
	})
}

// jsonName turns a Go field name such as ImageWidth into image_width.
func jsonName(field string) string {
	var b strings.Builder
	for i, r := range field {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

func GetSubject(c *gin.Context) string {
	return c.GetString(SubjectKey)
}

func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
