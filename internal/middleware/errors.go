package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"sync"

	"Club_Portal/internal/apperr"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// UseJSONFieldNames makes validator report fields by their json names.
func UseJSONFieldNames() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// ErrorHandler renders the last error pushed with c.Error as the single JSON error shape.
// Internal details are hidden unless devMode is set.
func ErrorHandler(devMode bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		raw := c.Errors.Last().Err
		ae := Translate(raw)

		msg := ae.Message
		if ae.Kind == apperr.KindInternal {
			slog.Error("request failed",
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", raw,
			)
			if devMode && ae.Err != nil {
				msg = ae.Err.Error()
			}
		}

		body := gin.H{"error": ae.Reason, "message": msg}
		if len(ae.Fields) > 0 {
			body["details"] = ae.Fields
		}
		if ae.Kind == apperr.KindForbidden {
			if len(ae.Required) > 0 {
				body["required_roles"] = ae.Required
			}
			if ae.Actual != "" {
				body["role"] = ae.Actual
			}
		}
		c.AbortWithStatusJSON(ae.HTTPStatus(), body)
	}
}

// Translate maps binding and decoding failures onto validation errors; everything
// else goes through apperr.From.
func Translate(err error) *apperr.Error {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		fields := make([]apperr.FieldError, 0, len(ve))
		for _, fe := range ve {
			fields = append(fields, fieldError(fe))
		}
		return apperr.Validation("invalid input", fields...)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		return apperr.Validation("invalid input", apperr.FieldError{
			Field:   typeErr.Field,
			Rule:    "type",
			Message: fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type),
		})
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return apperr.Validation("malformed JSON body")
	}
	return apperr.From(err)
}

func fieldError(fe validator.FieldError) apperr.FieldError {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	var msg string
	switch fe.Tag() {
	case "required":
		msg = field + " is required"
	case "email":
		msg = field + " must be a valid email"
	case "min":
		msg = fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		msg = fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		msg = fmt.Sprintf("%s must be one of %s", field, fe.Param())
	case "datetime":
		msg = fmt.Sprintf("%s must match %s", field, fe.Param())
	default:
		msg = fmt.Sprintf("%s failed the %s rule", field, fe.Tag())
	}
	return apperr.FieldError{Field: field, Rule: fe.Tag(), Message: msg}
}
