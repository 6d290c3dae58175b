// Package surface provides immutable character grids that sprites draw.
//
// A Surface never changes after construction. Sprites change appearance by
// swapping the *Surface they reference. Every Surface lazily derives a blank
// twin of identical geometry used to erase its footprint.
//
// Widths are measured in terminal cells (go-runewidth), so a row holding a
// double-width glyph is two cells wide and its blank twin erases both.
package surface

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"
)

// ErrNotSurface is returned by Coerce for values that cannot describe a grid
var ErrNotSurface = errors.New("surface: value is not surface-like")

// Surface is an immutable rectangular grid of characters
type Surface struct {
	rows   []string
	widths []int // display width per row
	width  int
	blank  bool

	once sync.Once
	twin *Surface
}

// New splits text into rows on line breaks (\n, \r\n, \r)
func New(text string) *Surface {
	return build(splitLines(text), false)
}

// FromLines builds a surface from explicit rows
func FromLines(lines ...string) *Surface {
	return build(slices.Clone(lines), false)
}

// Strip trims leading and trailing newlines before splitting, for raw string literals
func Strip(text string) *Surface {
	return New(strings.Trim(text, "\r\n"))
}

// Blank returns a width x height rectangle of spaces
func Blank(width, height int) *Surface {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	rows := make([]string, height)
	line := strings.Repeat(" ", width)
	for i := range rows {
		rows[i] = line
	}
	return build(rows, true)
}

// Coerce normalizes surface-like input: *Surface, Surface-producing func, string or []string
func Coerce(v any) (*Surface, error) {
	switch s := v.(type) {
	case *Surface:
		if s == nil {
			return nil, fmt.Errorf("nil *Surface: %w", ErrNotSurface)
		}
		return s, nil
	case string:
		return New(s), nil
	case []string:
		return FromLines(s...), nil
	case fmt.Stringer:
		return New(s.String()), nil
	case func() *Surface:
		return Coerce(s())
	}
	return nil, fmt.Errorf("%T: %w", v, ErrNotSurface)
}

func build(rows []string, blank bool) *Surface {
	s := &Surface{
		rows:   rows,
		widths: make([]int, len(rows)),
		blank:  blank,
	}
	for i, row := range rows {
		w := DisplayWidth(row)
		s.widths[i] = w
		if w > s.width {
			s.width = w
		}
	}
	if blank {
		s.twin = s
	}
	return s
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	rows := strings.Split(text, "\n")
	// A trailing line break does not start a new row
	if rows[len(rows)-1] == "" {
		rows = rows[:len(rows)-1]
	}
	return rows
}

// Width is the widest row in cells
func (s *Surface) Width() int { return s.width }

// Height is the row count
func (s *Surface) Height() int { return len(s.rows) }

// Size returns width and height
func (s *Surface) Size() (int, int) { return s.width, len(s.rows) }

// Line returns row i
func (s *Surface) Line(i int) string { return s.rows[i] }

// LineWidth returns the display width of row i
func (s *Surface) LineWidth(i int) int { return s.widths[i] }

// Lines returns a copy of the rows
func (s *Surface) Lines() []string { return slices.Clone(s.rows) }

// IsBlankSurface reports whether the surface is an all-space twin
func (s *Surface) IsBlankSurface() bool { return s.blank }

// ToBlank returns the cached all-space twin with the same row widths
func (s *Surface) ToBlank() *Surface {
	s.once.Do(func() {
		if s.twin != nil {
			return
		}
		rows := make([]string, len(s.rows))
		for i, w := range s.widths {
			rows[i] = strings.Repeat(" ", w)
		}
		s.twin = build(rows, true)
	})
	return s.twin
}

// At returns the rune in cell column x of row y, or ' ' outside the row
// A cell covered by the right half of a wide rune reports 0
func (s *Surface) At(x, y int) rune {
	if y < 0 || y >= len(s.rows) || x < 0 {
		return ' '
	}
	col := 0
	for _, r := range s.rows[y] {
		w := runewidth.RuneWidth(r)
		if x == col {
			return r
		}
		if x < col+w {
			return 0
		}
		col += w
	}
	return ' '
}

// IsBlank reports whether cell (x, y) holds a space or nothing
func (s *Surface) IsBlank(x, y int) bool {
	return s.At(x, y) == ' '
}

// SameGeometry reports whether two surfaces are interchangeable for footprint purposes
func SameGeometry(a, b *Surface) bool {
	if a.Height() != b.Height() || a.width != b.width {
		return false
	}
	return slices.Equal(a.widths, b.widths)
}

func (s *Surface) String() string {
	return strings.Join(s.rows, "\n")
}

// DisplayWidth is the number of terminal cells text occupies
func DisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}
