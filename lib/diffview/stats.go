package diffview

import (
	"strings"

	"github.com/pescuma/gitweb/lib/linediff"
)

// Stats counts changed lines. Removed lines paired with added lines in the
// same run are modifications. Both sides are diffed again line by line, with
// the headers in both so files and hunks stay apart.
func Stats(lines []Line) linediff.Stats {
	var before, after strings.Builder

	for _, l := range lines {
		switch l.Kind {
		case KindAdded:
			writeLine(&after, l.Text[1:])
		case KindRemoved:
			writeLine(&before, l.Text[1:])
		case KindContext:
			writeLine(&before, l.Text[1:])
			writeLine(&after, l.Text[1:])
		case KindHunkHeader, KindFileHeader:
			writeLine(&before, l.Text)
			writeLine(&after, l.Text)
		}
	}

	return linediff.Count(linediff.Do(before.String(), after.String()))
}

func writeLine(b *strings.Builder, text string) {
	b.WriteString(text)
	b.WriteString("\n")
}
