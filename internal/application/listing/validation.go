package listing

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/erp/ausyexpo/internal/domain/shared"
)

var emailShape = regexp.MustCompile(`\S+@\S+\.\S+`)

// NewValidator returns a validator that knows the form tags used by the
// entity bindings and reports fields by their form name.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Use form tag names for field names in errors
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	custom := map[string]validator.Func{
		"emailshape":    func(fl validator.FieldLevel) bool { return emailShape.MatchString(fl.Field().String()) },
		"positive":      decimalCheck(func(d decimal.Decimal) bool { return d.IsPositive() }),
		"nonnegative":   decimalCheck(func(d decimal.Decimal) bool { return !d.IsNegative() }),
		"integer":       isInteger,
		"refid":         isRefID,
		"date":          isDate,
		"localdatetime": isDateTime,
	}
	for tag, fn := range custom {
		// Registration only fails for empty tags or nil funcs.
		_ = v.RegisterValidation(tag, fn)
	}
	return v
}

func decimalCheck(ok func(decimal.Decimal) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
		return err == nil && ok(d)
	}
}

func isInteger(fl validator.FieldLevel) bool {
	_, err := strconv.Atoi(strings.TrimSpace(fl.Field().String()))
	return err == nil
}

func isRefID(fl validator.FieldLevel) bool {
	_, err := shared.ParseRefID(fl.Field().String())
	return err == nil
}

func isDate(fl validator.FieldLevel) bool {
	_, err := shared.ParseLocalDate(fl.Field().String())
	return err == nil
}

func isDateTime(fl validator.FieldLevel) bool {
	_, err := shared.ParseLocalDateTime(fl.Field().String())
	return err == nil
}

// fieldErrors converts validator output to per-field messages.
func fieldErrors(err error) []shared.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []shared.FieldError{{Field: "", Message: err.Error()}}
	}
	out := make([]shared.FieldError, 0, len(verrs))
	for _, e := range verrs {
		out = append(out, shared.FieldError{Field: e.Field(), Message: validationMessage(e)})
	}
	return out
}

// validationMessage returns a human-readable validation message
func validationMessage(e validator.FieldError) string {
	label := shared.FieldLabel(e.Field())
	switch e.Tag() {
	case "required":
		return label + " is required"
	case "emailshape":
		return label + " is invalid"
	case "positive":
		return label + " must be greater than zero"
	case "nonnegative":
		return label + " cannot be negative"
	case "integer":
		return label + " must be a whole number"
	case "number":
		return label + " must be a number"
	case "refid":
		return label + " must be a valid id"
	case "date":
		return label + " must be a date (YYYY-MM-DD)"
	case "localdatetime":
		return label + " must be a date and time (YYYY-MM-DDTHH:MM)"
	case "oneof":
		return label + " must be one of: " + strings.ReplaceAll(e.Param(), " ", ", ")
	default:
		return label + " is invalid"
	}
}
