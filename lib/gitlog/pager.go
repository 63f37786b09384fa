package gitlog

import (
	"fmt"

	"github.com/pescuma/gitweb/lib/model"
)

const DefaultPageSize = 1000

type Page struct {
	Commits []*model.Commit `json:"commits"`

	// NextRef is where the following page starts, empty when history ended.
	NextRef string `json:"nextRef,omitempty"`
}

// LogArgs asks for one commit more than the page holds, so the caller knows
// where to continue.
func LogArgs(ref string, maxCount int) []string {
	if ref == "" {
		ref = "HEAD"
	}
	if maxCount <= 0 {
		maxCount = DefaultPageSize
	}

	return []string{
		"log",
		"--date-order",
		"--pretty=raw",
		"--decorate=full",
		fmt.Sprintf("--max-count=%v", maxCount+1),
		ref,
		"--",
	}
}

func ParsePage(data string, maxCount int) *Page {
	return NewPage(Parse(data), maxCount)
}

func NewPage(commits []*model.Commit, maxCount int) *Page {
	if maxCount <= 0 {
		maxCount = DefaultPageSize
	}

	result := &Page{Commits: commits}
	if len(commits) > maxCount {
		result.NextRef = commits[maxCount].ID
		result.Commits = commits[:maxCount]
	}

	return result
}
