package textrep

import (
	"strings"

	"github.com/fatih/color"
)

// ColorAttr is the role of a piece of formatted text.
type ColorAttr int

const (
	CommentColor ColorAttr = iota
	FieldColor
	TypeColor
	IsaColor
	ValueColor
	SepColor
)

// Colors maps text roles to coloring functions. The functions take the text
// verbatim, not as a format. Roles missing from Map use Default.
type Colors struct {
	Default func(string, ...any) string
	Map     map[ColorAttr]func(string, ...any) string
}

var plainColors = &Colors{Default: colorDefault}

// NewColors returns the default palette.
func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map: map[ColorAttr]func(string, ...any) string{
			CommentColor: color.BlueString,
			FieldColor:   color.RGB(196, 96, 16).SprintfFunc(),
			TypeColor:    color.RGB(74, 92, 138).SprintfFunc(),
			IsaColor:     color.RGB(128, 168, 196).SprintfFunc(),
			ValueColor:   color.RGB(8, 196, 16).SprintfFunc(),
			SepColor:     color.RGB(255, 0, 196).SprintfFunc(),
		},
	}
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.ReplaceAll(v, "%", "%%"))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

// Get returns the coloring function of a.
func (c *Colors) Get(a ColorAttr) func(string, ...any) string {
	if f := c.Map[a]; f != nil {
		return f
	}
	return c.Default
}
