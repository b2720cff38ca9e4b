package validator

import (
	"errors"
	"reflect"
	"strings"

	playground "github.com/go-playground/validator/v10"
)

// validate is shared; go-playground caches struct metadata per instance.
var validate = newValidate()

func newValidate() *playground.Validate {
	v := playground.New(playground.WithRequiredStructEnabled())
	// Report JSON field names instead of Go field names
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldError describes one failed rule on a request field.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// ValidateStruct runs the `validate` tags on s. It returns the list of field
// failures (nil when s is valid) and a non-nil error only when s could not be
// validated at all.
func ValidateStruct(s any) ([]FieldError, error) {
	err := validate.Struct(s)
	if err == nil {
		return nil, nil
	}

	var verrs playground.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Field: fe.Field(),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}
	return fields, nil
}
