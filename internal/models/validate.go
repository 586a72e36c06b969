package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Decimals are compared as numbers so tags like gt=0 apply to them.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		d, ok := field.Interface().(decimal.Decimal)
		if !ok {
			return nil
		}
		f, _ := d.Float64()
		return f
	}, decimal.Decimal{})

	return v
}

// ValidateTransaction normalizes t in place (trimmed text, derived month)
// and checks every transaction invariant.
func ValidateTransaction(t *Transaction) error {
	t.Category = strings.TrimSpace(t.Category)
	t.Person = strings.TrimSpace(t.Person)
	t.Description = strings.TrimSpace(t.Description)
	if err := validate.Struct(t); err != nil {
		return translate(err)
	}
	t.Month = MonthOf(t.Date)
	return nil
}

// ValidateAccount normalizes and checks an account.
func ValidateAccount(a *Account) error {
	a.Name = strings.TrimSpace(a.Name)
	if err := validate.Struct(a); err != nil {
		return translate(err)
	}
	return nil
}

// ValidateGroup normalizes members and checks a group.
func ValidateGroup(g *Group) error {
	g.Name = strings.TrimSpace(g.Name)
	g.Members = NormalizeMembers(g.Members)
	if err := validate.Struct(g); err != nil {
		return translate(err)
	}
	return nil
}

// ValidateDate checks a YYYY-MM-DD string.
func ValidateDate(field, value string) error {
	if err := validate.Var(value, "datetime=2006-01-02"); err != nil {
		return fmt.Errorf("%w: %s must be in YYYY-MM-DD format", ErrValidation, field)
	}
	return nil
}

// ValidateMonth checks a YYYY-MM string.
func ValidateMonth(value string) error {
	if err := validate.Var(value, "datetime=2006-01"); err != nil {
		return fmt.Errorf("%w: month must be in YYYY-MM format", ErrValidation)
	}
	return nil
}

// translate turns validator errors into one ErrValidation with readable text.
func translate(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := toSnake(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "gt":
		return field + " must be positive"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must have at least %s entries", field, fe.Param())
	case "datetime":
		return field + " must be in YYYY-MM-DD format"
	case "excluded_with":
		return "a transaction cannot be linked to both a person and a group"
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && !(r == 'D' && s[i-1] == 'I') {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
