package timetable

import (
	"fmt"
	"strings"
)

// Color is a display colour tag for a slot. The values are the persisted
// encoding; NoColor means the default background.
type Color string

// Palette colours offered by the edit form.
const (
	NoColor      Color = ""
	DefaultColor Color = "bg-white"
	Blue         Color = "bg-blue-100"
	Green        Color = "bg-green-100"
	Yellow       Color = "bg-yellow-100"
	Red          Color = "bg-red-100"
	Purple       Color = "bg-purple-100"
	Pink         Color = "bg-pink-100"
	Indigo       Color = "bg-indigo-100"
	Orange       Color = "bg-orange-100"
)

// PaletteEntry pairs a colour with its short name and Japanese label.
type PaletteEntry struct {
	Color Color
	Name  string
	Label string
}

// Palette lists the selectable colours in form order.
var Palette = []PaletteEntry{
	{Blue, "blue", "青"},
	{Green, "green", "緑"},
	{Yellow, "yellow", "黄"},
	{Red, "red", "赤"},
	{Purple, "purple", "紫"},
	{Pink, "pink", "ピンク"},
	{Indigo, "indigo", "藍"},
	{Orange, "orange", "オレンジ"},
}

// IsValid reports whether c is unset or a palette colour.
func (c Color) IsValid() bool {
	if c == NoColor {
		return true
	}
	_, ok := c.entry()
	return ok
}

// Label returns the Japanese label, or "" for the default colour.
func (c Color) Label() string {
	e, _ := c.entry()
	return e.Label
}

// Name returns the short English name, or "" for the default colour.
func (c Color) Name() string {
	e, _ := c.entry()
	return e.Name
}

func (c Color) entry() (PaletteEntry, bool) {
	for _, e := range Palette {
		if e.Color == c {
			return e, true
		}
	}
	return PaletteEntry{}, false
}

// ParseColor accepts a palette value ("bg-blue-100"), a short name ("blue")
// or a Japanese label ("青"). Blank input, "white" and "bg-white" select the
// default colour.
func ParseColor(s string) (Color, error) {
	v := strings.TrimSpace(s)
	switch strings.ToLower(v) {
	case "", "white", "none", string(DefaultColor):
		return NoColor, nil
	}
	for _, e := range Palette {
		if v == string(e.Color) || strings.EqualFold(v, e.Name) || v == e.Label {
			return e.Color, nil
		}
	}
	return NoColor, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}
