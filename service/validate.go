package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// MaxAmount is the largest value a numeric(15,2) money column holds.
var MaxAmount = decimal.RequireFromString("9999999999999.99")

// validAmount reports whether d fits a money column: not negative and at
// most MaxAmount.
func validAmount(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThanOrEqual(MaxAmount)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report JSON names so callers see the fields they sent
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// missingFields runs struct validation and splits the failures into
// "required" (missing) and everything else (invalid), in field order.
func missingFields(obj any) (missing, invalid []string) {
	err := validate.Struct(obj)
	if err == nil {
		return nil, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, []string{err.Error()}
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
		} else {
			invalid = append(invalid, fe.Field())
		}
	}
	return missing, invalid
}
