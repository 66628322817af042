package accommodation

import (
	"reflect"

	"github.com/go-playground/validator/v10"
)

// NewValidator returns a validator that understands Date fields and checks
// that every interval ends no earlier than it starts.
func NewValidator() *validator.Validate {
	v := validator.New()

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(Date); ok {
			return d.String()
		}
		return nil
	}, Date{})

	v.RegisterStructValidation(func(sl validator.StructLevel) {
		iv := sl.Current().Interface().(Interval)
		if iv.End.Before(iv.Start) {
			sl.ReportError(iv.End, "End", "intervalEnd", "gtefield", "Start")
		}
	}, Interval{})

	v.RegisterStructValidation(func(sl validator.StructLevel) {
		iv := sl.Current().Interface().(PriceInterval)
		if iv.End.Before(iv.Start) {
			sl.ReportError(iv.End, "End", "intervalEnd", "gtefield", "Start")
		}
	}, PriceInterval{})

	return v
}
