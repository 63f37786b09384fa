package diffview

import (
	"regexp"
	"strings"
)

type FileSection struct {
	LeftName  string   `json:"leftName"`
	RightName string   `json:"rightName"`
	Lines     []string `json:"lines"`
}

func (s *FileSection) Diff() string {
	return strings.Join(s.Lines, "\n")
}

// Explorer splits a commit diff, as printed by git show, in the commit header
// and one section per file.
type Explorer struct {
	Header   []string       `json:"header"`
	Sections []*FileSection `json:"sections"`
}

var sectionStartRE = regexp.MustCompile(`^diff --git a/(.*) b/(.*)$`)

func Explore(diff string) *Explorer {
	result := &Explorer{}

	var current *FileSection
	for _, line := range splitLines(diff) {
		if marker(line) == 'd' {
			current = &FileSection{}
			if m := sectionStartRE.FindStringSubmatch(line); m != nil {
				current.LeftName = m[1]
				current.RightName = m[2]
			}
			result.Sections = append(result.Sections, current)
			continue
		}

		if current == nil {
			result.Header = append(result.Header, line)
		} else {
			current.Lines = append(current.Lines, line)
		}
	}

	return result
}

func (e *Explorer) Find(name string) *FileSection {
	for _, s := range e.Sections {
		if s.RightName == name || s.LeftName == name {
			return s
		}
	}
	return nil
}
