package shared

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"leavehub/internal/transport/http/api"
)

type ValidationIssue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	return v
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return field.Name
	}
	return name
}

// CheckPayload validates a decoded request struct against its validate tags
// and converts failures into the field-issue error envelope. Returns true
// when the request has been rejected.
func CheckPayload(w http.ResponseWriter, payload any, requestID string) bool {
	err := validate.Struct(payload)
	if err == nil {
		return false
	}

	var issues []ValidationIssue
	if fieldErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range fieldErrors {
			issues = append(issues, ValidationIssue{Field: fe.Field(), Reason: reasonFor(fe)})
		}
	} else {
		issues = append(issues, ValidationIssue{Field: "", Reason: "invalid payload"})
	}

	api.FailWithDetails(w, http.StatusBadRequest, "validation_error", "payload validation failed",
		map[string]any{"fields": issues}, requestID)
	return true
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "hexcolor":
		return "must be a hex color like #3B82F6"
	default:
		return "is invalid"
	}
}
