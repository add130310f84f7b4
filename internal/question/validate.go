package question

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the wire format of date bounds and date responses.
const DateLayout = "2006-01-02"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(alternativePropsLevel, AlternativeProps{})
	v.RegisterStructValidation(datePropsLevel, DateProps{})
	return v
}

// alternativePropsLevel enforces labels parallel to alternatives.
func alternativePropsLevel(sl validator.StructLevel) {
	p := sl.Current().Interface().(AlternativeProps)
	if len(p.Labels) != len(p.Alternatives) {
		sl.ReportError(p.Labels, "labels", "Labels", "labels_len", "")
	}
}

// datePropsLevel enforces min <= max when both bounds are present.
func datePropsLevel(sl validator.StructLevel) {
	p := sl.Current().Interface().(DateProps)
	if p.Min == "" || p.Max == "" {
		return
	}
	lo, err1 := time.Parse(DateLayout, p.Min)
	hi, err2 := time.Parse(DateLayout, p.Max)
	if err1 != nil || err2 != nil {
		return // reported by the datetime tag
	}
	if lo.After(hi) {
		sl.ReportError(p.Max, "max", "Max", "date_order", p.Min)
	}
}
