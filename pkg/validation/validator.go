// Package validation wires go-playground/validator into gin binding and turns
// its errors into the field → message map returned under "error".
package validation

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Init configures the validator behind gin's ShouldBind* calls.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		Configure(v)
	}
}

// Configure makes errors report json (or form) field names and registers the
// domain aliases used in request structs.
func Configure(v *validator.Validate) {
	v.RegisterTagNameFunc(fieldName)
	v.RegisterAlias("pwd", "min=8,max=72") // bcrypt limit
	v.RegisterAlias("phone", "e164")
	v.RegisterAlias("nationalid", "len=11,numeric")
}

func fieldName(f reflect.StructField) string {
	for _, key := range []string{"json", "form"} {
		name, _, _ := strings.Cut(f.Tag.Get(key), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// ToDetails maps a binding error to per-field messages. Errors that are not
// about a field are reported under "payload".
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}
	var (
		syntax   *json.SyntaxError
		typeErr  *json.UnmarshalTypeError
		failures validator.ValidationErrors
	)
	switch {
	case errors.As(err, &failures):
		out := make(map[string]string, len(failures))
		for _, fe := range failures {
			out[fe.Field()] = message(fe)
		}
		return out
	case errors.As(err, &syntax), errors.As(err, &typeErr):
		return map[string]string{"payload": "invalid json"}
	case errors.Is(err, io.EOF):
		return map[string]string{"payload": "request body is empty"}
	}
	return map[string]string{"payload": "invalid payload"}
}

// fixed messages for tags whose wording does not depend on the parameter
var fixed = map[string]string{
	"required":   "is required",
	"email":      "must be a valid email",
	"url":        "must be a valid URL",
	"numeric":    "must be numeric",
	"pwd":        "must be between 8 and 72 characters long",
	"phone":      "must be a valid phone number",
	"e164":       "must be a valid phone number",
	"nationalid": "must be 11 digits",
}

func message(fe validator.FieldError) string {
	if msg, ok := fixed[fe.Tag()]; ok {
		return msg
	}
	p := fe.Param()
	unit := ""
	if !isNumber(fe.Kind()) {
		unit = " characters long"
	}
	switch fe.Tag() {
	case "required_with":
		return "is required when " + p + " is present"
	case "len":
		return "must be exactly " + p + " characters long"
	case "min":
		return "must be at least " + p + unit
	case "max":
		return "must be at most " + p + unit
	case "gte":
		return "must be greater than or equal to " + p
	case "lte":
		return "must be less than or equal to " + p
	case "eqfield":
		return "must be equal to " + p + " field"
	case "datetime":
		return "must match the format " + p
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(p), ", ")
	}
	if p != "" {
		return "failed on " + fe.Tag() + "=" + p
	}
	return "failed on " + fe.Tag()
}

func isNumber(k reflect.Kind) bool {
	return (k >= reflect.Int && k <= reflect.Uint64) || k == reflect.Float32 || k == reflect.Float64
}
