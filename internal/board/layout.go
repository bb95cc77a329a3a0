// Package board composes stat entries onto a named-area grid.
package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tinytelemetry/pokerclock/internal/model"
)

var (
	ErrEmptyLayout        = errors.New("layout has no rows")
	ErrRaggedLayout       = errors.New("layout rows have different column counts")
	ErrNonRectangularArea = errors.New("layout area is not a single rectangle")
)

// EmptyCell marks a grid cell that belongs to no area.
const EmptyCell = "."

// Area is a named rectangle of grid cells.
type Area struct {
	Name    string
	Row     int
	Col     int
	RowSpan int
	ColSpan int
}

// Grid is a parsed layout.
type Grid struct {
	Rows  int
	Cols  int
	areas []Area
	index map[string]int
}

// ParseLayout parses grid-template-areas style rows.
func ParseLayout(rows []string) (Grid, error) {
	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		fields := strings.Fields(row)
		if len(fields) == 0 {
			continue
		}
		cells = append(cells, fields)
	}
	if len(cells) == 0 {
		return Grid{}, ErrEmptyLayout
	}

	cols := len(cells[0])
	for i, row := range cells {
		if len(row) != cols {
			return Grid{}, fmt.Errorf("%w: row %d has %d columns, want %d", ErrRaggedLayout, i, len(row), cols)
		}
	}

	g := Grid{Rows: len(cells), Cols: cols, index: make(map[string]int)}
	counts := make(map[string]int)
	for r, row := range cells {
		for c, name := range row {
			if name == EmptyCell {
				continue
			}
			counts[name]++
			idx, ok := g.index[name]
			if !ok {
				g.index[name] = len(g.areas)
				g.areas = append(g.areas, Area{Name: name, Row: r, Col: c, RowSpan: 1, ColSpan: 1})
				continue
			}
			a := &g.areas[idx]
			if r < a.Row {
				a.RowSpan += a.Row - r
				a.Row = r
			}
			if r >= a.Row+a.RowSpan {
				a.RowSpan = r - a.Row + 1
			}
			if c < a.Col {
				a.ColSpan += a.Col - c
				a.Col = c
			}
			if c >= a.Col+a.ColSpan {
				a.ColSpan = c - a.Col + 1
			}
		}
	}

	for _, a := range g.areas {
		if counts[a.Name] != a.RowSpan*a.ColSpan {
			return Grid{}, fmt.Errorf("%w: %q", ErrNonRectangularArea, a.Name)
		}
		for r := a.Row; r < a.Row+a.RowSpan; r++ {
			for c := a.Col; c < a.Col+a.ColSpan; c++ {
				if cells[r][c] != a.Name {
					return Grid{}, fmt.Errorf("%w: %q", ErrNonRectangularArea, a.Name)
				}
			}
		}
	}
	return g, nil
}

// MustParseLayout is ParseLayout for layouts known to be valid.
func MustParseLayout(rows []string) Grid {
	g, err := ParseLayout(rows)
	if err != nil {
		panic(err)
	}
	return g
}

// ParseModelLayout parses a model layout.
func ParseModelLayout(l model.Layout) (Grid, error) {
	return ParseLayout(l.Areas)
}

// ResolveLayout parses the layout carried by c, falling back to the
// configured layout and then to model.DefaultLayout.
func ResolveLayout(c model.Content, configured model.Layout) (Grid, error) {
	switch {
	case !c.Layout.Empty():
		return ParseModelLayout(c.Layout)
	case !configured.Empty():
		return ParseModelLayout(configured)
	}
	return ParseLayout(model.DefaultLayout)
}

// Area returns the named area.
func (g Grid) Area(name string) (Area, bool) {
	idx, ok := g.index[name]
	if !ok {
		return Area{}, false
	}
	return g.areas[idx], true
}

// Areas returns every area in order of first appearance.
func (g Grid) Areas() []Area {
	out := make([]Area, len(g.areas))
	copy(out, g.areas)
	return out
}

// Names returns area names in order of first appearance.
func (g Grid) Names() []string {
	names := make([]string, 0, len(g.areas))
	for _, a := range g.areas {
		names = append(names, a.Name)
	}
	return names
}
