package diffview

import (
	"regexp"
	"strconv"
)

type Kind int

const (
	KindContext Kind = iota
	KindAdded
	KindRemoved
	KindHunkHeader
	KindFileHeader
	KindPhantom
	KindMeta
)

func (k Kind) String() string {
	switch k {
	case KindContext:
		return "context"
	case KindAdded:
		return "added"
	case KindRemoved:
		return "removed"
	case KindHunkHeader:
		return "hunk-header"
	case KindFileHeader:
		return "file-header"
	case KindPhantom:
		return "phantom"
	default:
		return "meta"
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

type Line struct {
	Text string `json:"text"`
	Kind Kind   `json:"kind"`

	// SectionStart marks the "diff --git" line that opens a file.
	SectionStart bool `json:"sectionStart,omitempty"`

	OldNumber int `json:"oldNumber,omitempty"`
	NewNumber int `json:"newNumber,omitempty"`
}

// Selectable lines are the ones a partial patch can pick.
func (l *Line) Selectable() bool {
	return l.Kind == KindAdded || l.Kind == KindRemoved
}

type HunkHeader struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Section  string
}

var hunkHeaderRE = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@ ?(.*)$`)

func ParseHunkHeader(line string) (*HunkHeader, bool) {
	m := hunkHeaderRE.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}

	atoi := func(s string, def int) int {
		if s == "" {
			return def
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return def
		}
		return v
	}

	return &HunkHeader{
		OldStart: atoi(m[1], 0),
		OldCount: atoi(m[2], 1),
		NewStart: atoi(m[3], 0),
		NewCount: atoi(m[4], 1),
		Section:  m[5],
	}, true
}
