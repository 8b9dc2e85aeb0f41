// Package layout fits a structured resume onto a single fixed-size page by
// estimating rendered height and searching over font sizes.
package layout

import (
	"fmt"
	"strings"
)

// PageGeometry describes a page in px at 96 DPI
type PageGeometry struct {
	Name             string  `json:"name"`
	Width            float64 `json:"width"`
	Height           float64 `json:"height"`
	MarginTop        float64 `json:"margin_top"`
	MarginBottom     float64 `json:"margin_bottom"`
	MarginHorizontal float64 `json:"margin_horizontal"`
	// BulletIndent is the extra width bullets give up for the glyph and indentation
	BulletIndent float64 `json:"bullet_indent"`
}

var (
	// A4 is 210x297mm, the default page
	A4 = PageGeometry{
		Name:             "a4",
		Width:            794,
		Height:           1123,
		MarginTop:        20,
		MarginBottom:     20,
		MarginHorizontal: 30,
		BulletIndent:     10,
	}

	// Letter is 8.5x11in
	Letter = PageGeometry{
		Name:             "letter",
		Width:            816,
		Height:           1056,
		MarginTop:        20,
		MarginBottom:     20,
		MarginHorizontal: 30,
		BulletIndent:     10,
	}
)

// UsableHeight is the page height minus the top and bottom margins
func (g PageGeometry) UsableHeight() float64 {
	return g.Height - g.MarginTop - g.MarginBottom
}

// UsableWidth is the page width minus both horizontal margins
func (g PageGeometry) UsableWidth() float64 {
	return g.Width - 2*g.MarginHorizontal
}

// BulletWidth is the usable width left for bullet text
func (g PageGeometry) BulletWidth() float64 {
	return g.UsableWidth() - g.BulletIndent
}

// PageByName returns the named page preset. An empty name selects A4.
func PageByName(name string) (PageGeometry, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "a4":
		return A4, nil
	case "letter", "us-letter":
		return Letter, nil
	default:
		return PageGeometry{}, fmt.Errorf("unknown page size %q (expected a4 or letter)", name)
	}
}
