package diffview

import (
	"github.com/pescuma/gitweb/lib/linediff"
)

type Column int

const (
	Left Column = iota
	Right
)

func (c Column) String() string {
	if c == Left {
		return "left"
	}
	return "right"
}

// SplitView is the side by side view. Left shows removed and context lines,
// Right shows added and context lines, and both always have the same number
// of rows.
type SplitView struct {
	Left  []Line `json:"left"`
	Right []Line `json:"right"`
}

func SideBySide(diff string) *SplitView {
	lines := splitLines(diff)

	return &SplitView{
		Left:  buildColumn(lines, '-'),
		Right: buildColumn(lines, '+'),
	}
}

func buildColumn(lines []string, operation byte) []Line {
	c := newClassifier()
	result := make([]Line, 0, len(lines))

	var added, removed []string
	flush := func() {
		own, other := removed, added
		if operation == '+' {
			own, other = added, removed
		}

		for _, text := range removed {
			line := c.line(text)
			if operation == '-' {
				result = append(result, line)
			}
		}
		for _, text := range added {
			line := c.line(text)
			if operation == '+' {
				result = append(result, line)
			}
		}

		for i := len(own); i < len(other); i++ {
			result = append(result, Line{Kind: KindPhantom})
		}

		added = nil
		removed = nil
	}

	for _, text := range lines {
		switch marker(text) {
		case '+':
			added = append(added, text)
		case '-':
			removed = append(removed, text)
		default:
			flush()
			result = append(result, c.line(text))
		}
	}
	flush()

	return result
}

func (v *SplitView) Len() int {
	return len(v.Left)
}

func (v *SplitView) Column(c Column) []Line {
	if c == Left {
		return v.Left
	}
	return v.Right
}

func (v *SplitView) Line(c Column, row int) *Line {
	lines := v.Column(c)
	if row < 0 || row >= len(lines) {
		return nil
	}
	return &lines[row]
}

// HunkEnd returns the row after the last line of the hunk whose header is at row.
func (v *SplitView) HunkEnd(row int) int {
	for i := row + 1; i < v.Len(); i++ {
		l := v.Left[i]
		if l.Kind == KindHunkHeader || l.SectionStart {
			return i
		}
	}
	return v.Len()
}

// Spans returns the changed parts of a removed line and the added line next
// to it, as rune offsets into the line text including the marker.
func (v *SplitView) Spans(row int) ([]linediff.Span, []linediff.Span) {
	left := v.Line(Left, row)
	right := v.Line(Right, row)
	if left == nil || right == nil || left.Kind != KindRemoved || right.Kind != KindAdded {
		return nil, nil
	}

	oldSpans, newSpans := linediff.Spans(left.Text[1:], right.Text[1:])
	shift := func(spans []linediff.Span) []linediff.Span {
		for i := range spans {
			spans[i].Start++
			spans[i].End++
		}
		return spans
	}

	return shift(oldSpans), shift(newSpans)
}
