package patch

import (
	"sort"

	"github.com/hashicorp/go-set/v2"

	"github.com/pescuma/gitweb/lib/diffview"
)

type Cell struct {
	Column diffview.Column `json:"column"`
	Row    int             `json:"row"`
}

// Selection holds the lines of a split view that go into a partial patch.
type Selection struct {
	cells *set.Set[Cell]
	hunks *set.Set[int]
}

func NewSelection() *Selection {
	return &Selection{
		cells: set.New[Cell](10),
		hunks: set.New[int](10),
	}
}

func SelectionFrom(cells []Cell) *Selection {
	result := NewSelection()
	result.cells.InsertSlice(cells)
	return result
}

func (s *Selection) IsSelected(column diffview.Column, row int) bool {
	return s.cells.Contains(Cell{Column: column, Row: row})
}

func (s *Selection) Len() int {
	return s.cells.Size()
}

func (s *Selection) Empty() bool {
	return s.cells.Size() == 0
}

func (s *Selection) Clear() {
	s.cells = set.New[Cell](10)
	s.hunks = set.New[int](10)
}

func (s *Selection) Cells() []Cell {
	result := s.cells.Slice()
	sort.Slice(result, func(i, j int) bool {
		if result[i].Row != result[j].Row {
			return result[i].Row < result[j].Row
		}
		return result[i].Column < result[j].Column
	})
	return result
}

// Toggle flips the selection of an added or removed line. On a hunk header it
// selects, or clears, every change of the hunk in both columns.
func (s *Selection) Toggle(view *diffview.SplitView, column diffview.Column, row int) bool {
	line := view.Line(column, row)
	if line == nil {
		return false
	}

	switch {
	case line.Selectable():
		s.set(Cell{Column: column, Row: row}, !s.IsSelected(column, row))
		return true

	case line.Kind == diffview.KindHunkHeader:
		active := !s.hunks.Contains(row)
		if active {
			s.hunks.Insert(row)
		} else {
			s.hunks.Remove(row)
		}

		for r := row + 1; r < view.HunkEnd(row); r++ {
			for _, c := range []diffview.Column{diffview.Left, diffview.Right} {
				if view.Line(c, r).Selectable() {
					s.set(Cell{Column: c, Row: r}, active)
				}
			}
		}
		return true

	default:
		return false
	}
}

// SelectAll selects every change in the view.
func (s *Selection) SelectAll(view *diffview.SplitView) {
	for r := 0; r < view.Len(); r++ {
		for _, c := range []diffview.Column{diffview.Left, diffview.Right} {
			line := view.Line(c, r)
			if line.Selectable() {
				s.set(Cell{Column: c, Row: r}, true)
			} else if line.Kind == diffview.KindHunkHeader && c == diffview.Left {
				s.hunks.Insert(r)
			}
		}
	}
}

func (s *Selection) set(cell Cell, active bool) {
	if active {
		s.cells.Insert(cell)
	} else {
		s.cells.Remove(cell)
	}
}
