package patch

import (
	"github.com/pkg/errors"
)

type Mode int

const (
	ModeStage Mode = iota
	ModeUnstage
	ModeDiscard
)

func ParseMode(s string) (Mode, error) {
	switch s {
	case "stage":
		return ModeStage, nil
	case "unstage":
		return ModeUnstage, nil
	case "discard", "cancel":
		return ModeDiscard, nil
	default:
		return 0, errors.Errorf("unknown apply mode: %v", s)
	}
}

func (m Mode) String() string {
	switch m {
	case ModeUnstage:
		return "unstage"
	case ModeDiscard:
		return "discard"
	default:
		return "stage"
	}
}

// Reverse patches undo the selected lines.
func (m Mode) Reverse() bool {
	return m != ModeStage
}

// Cached patches change the index instead of the working tree.
func (m Mode) Cached() bool {
	return m != ModeDiscard
}

func ApplyArgs(cached bool) []string {
	result := []string{"apply", "--unidiff-zero"}
	if cached {
		result = append(result, "--cached")
	}
	return result
}
