package diffview

import (
	"strings"
)

// classifier tracks whether lines belong to a file header or to a hunk, and
// the line numbers inside the current hunk.
type classifier struct {
	inHeader  bool
	oldNumber int
	newNumber int
}

func newClassifier() *classifier {
	return &classifier{inHeader: true}
}

func (c *classifier) line(text string) Line {
	result := Line{Text: text}

	switch marker(text) {
	case 'd':
		c.inHeader = true
		result.Kind = KindFileHeader
		result.SectionStart = true

	case '@':
		c.inHeader = false
		result.Kind = KindHunkHeader
		if h, ok := ParseHunkHeader(text); ok {
			c.oldNumber = h.OldStart
			c.newNumber = h.NewStart
		}

	case '+':
		if c.inHeader {
			result.Kind = KindFileHeader
		} else {
			result.Kind = KindAdded
			result.NewNumber = c.newNumber
			c.newNumber++
		}

	case '-':
		if c.inHeader {
			result.Kind = KindFileHeader
		} else {
			result.Kind = KindRemoved
			result.OldNumber = c.oldNumber
			c.oldNumber++
		}

	case ' ':
		if c.inHeader {
			result.Kind = KindFileHeader
		} else {
			result.Kind = KindContext
			result.OldNumber = c.oldNumber
			result.NewNumber = c.newNumber
			c.oldNumber++
			c.newNumber++
		}

	default:
		result.Kind = KindMeta
		if c.inHeader {
			result.Kind = KindFileHeader
		}
	}

	return result
}

func marker(text string) byte {
	switch {
	case text == "":
		return 0
	case text[0] == 'd' && !strings.HasPrefix(text, "diff "):
		// deleted file mode and dissimilarity index are plain header lines
		return 0
	default:
		return text[0]
	}
}

func splitLines(diff string) []string {
	if diff == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(diff, "\n"), "\n")
}

// Classify builds the single column view, one line per diff line.
func Classify(diff string) []Line {
	c := newClassifier()

	lines := splitLines(diff)
	result := make([]Line, 0, len(lines))
	for _, text := range lines {
		result = append(result, c.line(text))
	}

	return result
}
