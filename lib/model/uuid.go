package model

import (
	"github.com/teris-io/shortid"
	"golang.org/x/exp/rand"
)

const uuidAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ_."

// UUID identifies things gitweb keeps outside of the repository, like
// history sessions. The last character tells the kind.
type UUID string

func NewUUID(kind string) UUID {
	return UUID(shortid.MustGenerate() + kind)
}

func (u UUID) Kind() string {
	if u == "" {
		return ""
	}
	return string(u[len(u)-1:])
}

func init() {
	shortid.SetDefault(shortid.MustNew(0, uuidAlphabet, rand.Uint64()))
}
