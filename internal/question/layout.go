package question

import (
	"unicode/utf8"
)

// Control names the form control a question is rendered with.
type Control string

const (
	ControlChoice Control = "choice"
	ControlDate   Control = "date"
	ControlNumber Control = "number"
	ControlSlider Control = "slider"
)

// Layout is presentation metadata derived from a question's shape.
type Layout struct {
	Control Control
	// Width is the preferred width of the input area in cells.
	Width int
	// Ticks is the number of slider positions (0 for other controls).
	Ticks int
	// Inline reports whether the options fit on a single row.
	Inline bool
}

const (
	maxInlineOptions = 3
	maxInlineLabel   = 12
	maxInputWidth    = 24
)

// WithLayout decorates a Question with layout metadata. It holds no
// response state of its own; everything is forwarded to the inner value.
type WithLayout struct {
	inner  Question
	layout Layout
}

var _ Question = WithLayout{}

// Decorate wraps q, computing its layout once.
func Decorate(q Question) WithLayout {
	if d, ok := q.(WithLayout); ok {
		return d
	}
	return WithLayout{inner: q, layout: layoutFor(q)}
}

func (d WithLayout) ID() string            { return d.inner.ID() }
func (d WithLayout) Title() string         { return d.inner.Title() }
func (d WithLayout) Description() string   { return d.inner.Description() }
func (d WithLayout) Kind() Kind            { return d.inner.Kind() }
func (d WithLayout) Response() (any, bool) { return d.inner.Response() }
func (d WithLayout) Layout() Layout        { return d.layout }
func (d WithLayout) Unwrap() Question      { return d.inner }

func (d WithLayout) WithResponse(v any) (Question, error) {
	inner, err := d.inner.WithResponse(v)
	if err != nil {
		return nil, err
	}
	return WithLayout{inner: inner, layout: d.layout}, nil
}

// LayoutOf returns the layout of q, deriving it when q is undecorated.
func LayoutOf(q Question) Layout {
	if d, ok := q.(WithLayout); ok {
		return d.layout
	}
	return layoutFor(q)
}

func layoutFor(q Question) Layout {
	switch v := Unwrap(q).(type) {
	case Alternative:
		widest := 0
		for _, l := range v.labels {
			widest = max(widest, utf8.RuneCountInString(l))
		}
		return Layout{
			Control: ControlChoice,
			Width:   widest + 4,
			Inline:  len(v.labels) <= maxInlineOptions && widest <= maxInlineLabel,
		}
	case Date:
		return Layout{Control: ControlDate, Width: len(DateLayout)}
	case Number:
		w := max(6, utf8.RuneCountInString(v.placeholder),
			len(formatFloat(v.min)), len(formatFloat(v.max)))
		return Layout{Control: ControlNumber, Width: min(w, maxInputWidth)}
	case Slider:
		ticks := v.Ticks()
		return Layout{Control: ControlSlider, Width: ticks * 2, Ticks: ticks, Inline: true}
	default:
		return Layout{Control: ControlNumber, Width: maxInputWidth}
	}
}
