package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/fatflowers/payfacade/pkg/types"
)

// Violation is a single failed rule, keyed by the JSON field name.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v Violation) String() string { return v.Message }

// Validator wraps validator.Validate with the payment rules registered once.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	mustRegister(v, "regulator", func(fl validator.FieldLevel) bool {
		return types.Regulator(fl.Field().String()).IsKnown()
	})
	mustRegister(v, "requestor_type", func(fl validator.FieldLevel) bool {
		return types.RequestorType(fl.Field().String()).IsKnown()
	})
	mustRegister(v, "payment_method", func(fl validator.FieldLevel) bool {
		return types.PaymentMethod(fl.Field().String()).IsKnown()
	})
	mustRegister(v, "decimal_gt0", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && d.IsPositive()
	})
	return &Validator{v: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %s: %v", tag, err))
	}
}

// RegisterStructRule attaches a cross-field rule to the given struct types.
// The rule reports failures with sl.ReportError; the tag becomes the message key.
func (x *Validator) RegisterStructRule(fn validator.StructLevelFunc, samples ...any) {
	x.v.RegisterStructValidation(fn, samples...)
}

// Struct validates s and returns its violations in field declaration order.
// A nil slice means s is valid.
func (x *Validator) Struct(s any) ([]Violation, error) {
	err := x.v.Struct(s)
	if err == nil {
		return nil, nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil, err
	}
	out := make([]Violation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, Violation{Field: fe.Field(), Message: message(fe)})
	}
	return out, nil
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "decimal_gt0":
		return fmt.Sprintf("%s must be greater than 0", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "uuid":
		return fmt.Sprintf("%s must be a valid identifier", fe.Field())
	case "regulator":
		return fmt.Sprintf("%s %q is not a known regulator", fe.Field(), fe.Value())
	case "requestor_type":
		return fmt.Sprintf("%s %q is not a known requestor type", fe.Field(), fe.Value())
	case "payment_method":
		return fmt.Sprintf("%s %q is not a known payment method", fe.Field(), fe.Value())
	case "online_regulator":
		return fmt.Sprintf("online payment is only available for regulator %s; %q requires an offline payment", types.OnlineRegulator, fe.Value())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// Messages flattens violations for log lines and error strings.
func Messages(vs []Violation) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.Message)
	}
	return out
}
