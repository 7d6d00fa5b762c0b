package stack

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// ErrUnknownOrientation is returned by ParseOrientation.
var ErrUnknownOrientation = errors.New("unknown orientation")

// Orientation selects the scroll axis: vertical in Portrait, horizontal in
// Landscape.
type Orientation int

const (
	Portrait Orientation = iota
	Landscape
)

func (o Orientation) String() string {
	switch o {
	case Portrait:
		return "portrait"
	case Landscape:
		return "landscape"
	default:
		return "unknown"
	}
}

// ParseOrientation accepts "portrait" or "landscape" (case-insensitive).
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "portrait", "":
		return Portrait, nil
	case "landscape":
		return Landscape, nil
	}
	return Portrait, fmt.Errorf("%w: %q", ErrUnknownOrientation, s)
}

// LayoutDirection mirrors the platform text direction.
type LayoutDirection int

const (
	LeftToRight LayoutDirection = iota
	RightToLeft
)

func (d LayoutDirection) String() string {
	if d == RightToLeft {
		return "rtl"
	}
	return "ltr"
}

// rtlScripts lists the ISO 15924 codes written right to left.
var rtlScripts = map[string]bool{
	"Adlm": true,
	"Arab": true,
	"Hebr": true,
	"Mand": true,
	"Nkoo": true,
	"Rohg": true,
	"Samr": true,
	"Syrc": true,
	"Thaa": true,
}

// DirectionForTag reports the layout direction of the tag's most likely
// script.
func DirectionForTag(tag language.Tag) LayoutDirection {
	script, _ := tag.Script()
	if rtlScripts[script.String()] {
		return RightToLeft
	}
	return LeftToRight
}

// DirectionForLocale parses a BCP 47 locale such as "ar-EG" or "en" and
// returns its layout direction. An empty locale is left-to-right.
func DirectionForLocale(locale string) (LayoutDirection, error) {
	if strings.TrimSpace(locale) == "" {
		return LeftToRight, nil
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return LeftToRight, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	return DirectionForTag(tag), nil
}

// Viewport is the switcher surface size in pixels. ChromeHeight is the height
// of the toolbar drawn above full-screen tabs.
type Viewport struct {
	Width        float64
	Height       float64
	ChromeHeight float64
}

// ScrollDimension is the viewport size along the scroll axis.
func (v Viewport) ScrollDimension(o Orientation) float64 {
	if o == Landscape {
		return v.Width
	}
	return v.Height
}

// CrossDimension is the viewport size across the scroll axis.
func (v Viewport) CrossDimension(o Orientation) float64 {
	if o == Landscape {
		return v.Height
	}
	return v.Width
}
