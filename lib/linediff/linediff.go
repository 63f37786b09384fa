package linediff

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

type Diff struct {
	Type  Operation
	Lines int
}

type Operation int8

const (
	DiffDelete Operation = Operation(diffmatchpatch.DiffDelete)
	DiffInsert Operation = Operation(diffmatchpatch.DiffInsert)
	DiffEqual  Operation = Operation(diffmatchpatch.DiffEqual)
)

func Do(src, dst string) []Diff {
	return DoWithTimeout(src, dst, time.Second)
}

func DoWithTimeout(src, dst string, timeout time.Duration) []Diff {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = timeout
	wSrc, wDst := textsToLineIndexes(src, dst)
	dmpd := dmp.DiffMainRunes(wSrc, wDst, false)
	diffs := lineIndexesToDiff(dmpd)
	return diffs
}

func lineIndexesToDiff(diffs []diffmatchpatch.Diff) []Diff {
	hydrated := make([]Diff, 0, len(diffs))
	for _, aDiff := range diffs {
		hydrated = append(hydrated, Diff{
			Type:  Operation(aDiff.Type),
			Lines: len([]rune(aDiff.Text)),
		})
	}
	return hydrated
}

func textsToLineIndexes(text1, text2 string) ([]rune, []rune) {
	lineToIndex := make(map[string]int)
	indexes1 := textToLineIndexes(text1, lineToIndex)
	indexes2 := textToLineIndexes(text2, lineToIndex)
	return indexes1, indexes2
}

func textToLineIndexes(text string, lineToIndex map[string]int) []rune {
	if text == "" {
		return nil
	}

	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	result := make([]rune, len(lines))
	for i, line := range lines {
		lineValue, ok := lineToIndex[line]

		if !ok {
			lineValue = len(lineToIndex)
			lineToIndex[line] = lineValue
		}

		result[i] = rune(lineValue)
	}
	return result
}

type Stats struct {
	Added    int `json:"added"`
	Deleted  int `json:"deleted"`
	Modified int `json:"modified"`
}

// Count sums the diffs, pairing deletes and inserts that follow each other as
// modifications.
func Count(diffs []Diff) Stats {
	var result Stats

	deleted, inserted := 0, 0
	flush := func() {
		modified := min(deleted, inserted)
		result.Modified += modified
		result.Deleted += deleted - modified
		result.Added += inserted - modified
		deleted, inserted = 0, 0
	}

	for _, d := range diffs {
		switch d.Type {
		case DiffDelete:
			deleted += d.Lines
		case DiffInsert:
			inserted += d.Lines
		default:
			flush()
		}
	}
	flush()

	return result
}

// Span is a range of runes inside a line.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Spans finds the parts of two versions of a line that differ, as rune
// offsets into old and new.
func Spans(old, new string) ([]Span, []Span) {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(old, new, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var oldSpans, newSpans []Span
	oldPos, newPos := 0, 0
	for _, d := range diffs {
		l := utf8.RuneCountInString(d.Text)

		switch d.Type {
		case diffmatchpatch.DiffDelete:
			oldSpans = append(oldSpans, Span{oldPos, oldPos + l})
			oldPos += l
		case diffmatchpatch.DiffInsert:
			newSpans = append(newSpans, Span{newPos, newPos + l})
			newPos += l
		default:
			oldPos += l
			newPos += l
		}
	}

	return oldSpans, newSpans
}
