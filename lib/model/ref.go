package model

import "strings"

type RefCategory int

const (
	RefOther RefCategory = iota
	RefRemote
	RefLocalBranch
	RefTag
)

func (c RefCategory) String() string {
	switch c {
	case RefRemote:
		return "remote"
	case RefLocalBranch:
		return "local"
	case RefTag:
		return "tag"
	default:
		return "other"
	}
}

func (c RefCategory) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

type Ref struct {
	Name     string      `json:"name"`
	Category RefCategory `json:"category"`
}

// ParseRef classifies one entry of a --decorate=full list.
func ParseRef(decoration string) Ref {
	switch {
	case strings.HasPrefix(decoration, "refs/remotes/"):
		return Ref{Name: decoration[len("refs/remotes/"):], Category: RefRemote}
	case strings.HasPrefix(decoration, "refs/heads/"):
		return Ref{Name: decoration[len("refs/heads/"):], Category: RefLocalBranch}
	case strings.HasPrefix(decoration, "tag: refs/tags/"):
		return Ref{Name: decoration[len("tag: refs/tags/"):], Category: RefTag}
	default:
		return Ref{Name: decoration, Category: RefOther}
	}
}
