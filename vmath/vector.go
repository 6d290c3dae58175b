package vmath

import "fmt"

// Coord is a 2D position with exact fractional components
// Values are immutable; every operation returns a new Coord
type Coord struct {
	X, Y Frac
}

// Origin is (0, 0)
var Origin = Coord{}

// Pt builds a Coord from integer cells
func Pt(x, y int) Coord {
	return Coord{X: I(x), Y: I(y)}
}

// PtF builds a Coord from fractional components
func PtF(x, y Frac) Coord {
	return Coord{X: x, Y: y}
}

func (c Coord) Add(d Coord) Coord {
	return Coord{X: c.X.Add(d.X), Y: c.Y.Add(d.Y)}
}

func (c Coord) Sub(d Coord) Coord {
	return Coord{X: c.X.Sub(d.X), Y: c.Y.Sub(d.Y)}
}

func (c Coord) Neg() Coord {
	return Coord{X: c.X.Neg(), Y: c.Y.Neg()}
}

// DX translates along x only
func (c Coord) DX(dx Frac) Coord { return Coord{X: c.X.Add(dx), Y: c.Y} }

// DY translates along y only
func (c Coord) DY(dy Frac) Coord { return Coord{X: c.X, Y: c.Y.Add(dy)} }

func (c Coord) WithX(x Frac) Coord { return Coord{X: x, Y: c.Y} }

func (c Coord) WithY(y Frac) Coord { return Coord{X: c.X, Y: y} }

// Cells truncates to the 0-based screen cell containing the coordinate
func (c Coord) Cells() (x, y int) {
	return c.X.Floor(), c.Y.Floor()
}

// ToTerm converts to 1-based terminal coordinates
func (c Coord) ToTerm() (col, row int) {
	x, y := c.Cells()
	return x + 1, y + 1
}

func (c Coord) String() string {
	return fmt.Sprintf("(%s, %s)", c.X, c.Y)
}
