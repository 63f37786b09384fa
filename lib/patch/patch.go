package patch

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/pescuma/gitweb/lib/diffview"
	"github.com/pescuma/gitweb/lib/utils"
)

var ErrEmptySelection = errors.New("no lines selected")

// ReverseLine turns an added line into a removed one and the other way around.
func ReverseLine(line string) string {
	switch {
	case strings.HasPrefix(line, "-"):
		return "+" + line[1:]
	case strings.HasPrefix(line, "+"):
		return "-" + line[1:]
	default:
		return line
	}
}

// Build creates a zero context patch with only the selected lines. In reverse
// the patch undoes the selected lines, for unstaging or discarding.
func Build(view *diffview.SplitView, selection *Selection, reverse bool) (string, error) {
	if selection == nil || selection.Empty() {
		return "", ErrEmptySelection
	}

	b := &builder{
		view:      view,
		selection: selection,
		reverse:   reverse,
	}
	b.build()

	if !b.wroteHunk {
		return "", ErrEmptySelection
	}

	return b.out.String(), nil
}

type builder struct {
	view      *diffview.SplitView
	selection *Selection
	reverse   bool

	out       strings.Builder
	wroteHunk bool

	header        []string
	headerWritten bool
	inHeader      bool

	refLineNo   int
	patchOffset int
	added       []string
	removed     []string
	// buffer that got the last line, for end of file markers
	last *[]string
}

func (b *builder) build() {
	b.inHeader = true

	for l := 0; l < b.view.Len(); l++ {
		left := b.view.Left[l]

		switch {
		case left.SectionStart:
			b.flush()
			b.header = []string{left.Text}
			b.headerWritten = false
			b.inHeader = true
			b.refLineNo = 0
			b.patchOffset = 0

		case left.Kind == diffview.KindHunkHeader:
			b.flush()
			if b.inHeader {
				b.inHeader = false
				if l > 0 && strings.HasPrefix(b.view.Right[l-1].Text, "+++") {
					b.header = append(b.header, b.view.Right[l-1].Text)
				}
			}

			if h, ok := diffview.ParseHunkHeader(left.Text); ok {
				b.refLineNo = utils.IIf(b.reverse, h.NewStart, h.OldStart)
			}

		case b.inHeader:
			if left.Kind != diffview.KindPhantom {
				b.header = append(b.header, left.Text)
			}

		case left.Kind == diffview.KindContext:
			b.flush()
			b.refLineNo++
			b.last = nil

		case left.Kind == diffview.KindMeta:
			// \ No newline at end of file goes with the line before it
			if b.last != nil {
				*b.last = append(*b.last, left.Text)
			}
			b.last = nil

		case left.Kind == diffview.KindRemoved || left.Kind == diffview.KindPhantom:
			if left.Kind == diffview.KindRemoved {
				switch {
				case b.selection.IsSelected(diffview.Left, l) && !b.reverse:
					b.add(&b.removed, left.Text)
				case b.selection.IsSelected(diffview.Left, l):
					b.add(&b.added, ReverseLine(left.Text))
				case !b.reverse:
					b.keep()
				default:
					b.last = nil
				}
			}

			right := b.view.Right[l]
			if right.Kind == diffview.KindAdded {
				switch {
				case b.selection.IsSelected(diffview.Right, l) && !b.reverse:
					b.add(&b.added, right.Text)
				case b.selection.IsSelected(diffview.Right, l):
					b.add(&b.removed, ReverseLine(right.Text))
				case b.reverse:
					b.keep()
				default:
					b.last = nil
				}
			}
		}
	}

	b.flush()
}

func (b *builder) add(buffer *[]string, line string) {
	*buffer = append(*buffer, line)
	b.last = buffer
}

// keep skips a changed line that stays in the file the patch applies to.
// Removed lines of one hunk must be contiguous, so a pending hunk with
// removed lines ends here.
func (b *builder) keep() {
	if len(b.removed) > 0 {
		b.flush()
	}
	b.refLineNo++
	b.last = nil
}

func (b *builder) flush() {
	if len(b.added) == 0 && len(b.removed) == 0 {
		return
	}

	if !b.headerWritten {
		for _, line := range b.header {
			b.out.WriteString(line)
			b.out.WriteString("\n")
		}
		b.headerWritten = true
	}

	b.out.WriteString(fmt.Sprintf("@@ -%v,%v +%v,%v @@\n",
		b.refLineNo, lineCount(b.removed), b.refLineNo+b.patchOffset, lineCount(b.added)))
	for _, line := range b.removed {
		b.out.WriteString(line)
		b.out.WriteString("\n")
	}
	for _, line := range b.added {
		b.out.WriteString(line)
		b.out.WriteString("\n")
	}
	b.wroteHunk = true

	b.refLineNo += lineCount(b.removed)
	b.patchOffset += lineCount(b.added) - lineCount(b.removed)
	b.added = nil
	b.removed = nil
	b.last = nil
}

// lineCount ignores end of file markers.
func lineCount(lines []string) int {
	result := 0
	for _, line := range lines {
		if !strings.HasPrefix(line, "\\") {
			result++
		}
	}
	return result
}
