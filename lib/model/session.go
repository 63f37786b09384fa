package model

import (
	"encoding/json"
	"time"
)

// HistorySession is a paginated history listing. State holds the graph
// layout after the last loaded page, so the next page continues its lanes.
type HistorySession struct {
	ID      UUID   `json:"id"`
	RootDir string `json:"rootDir"`
	Ref     string `json:"ref"`

	// NextRef is the first commit of the next page, empty after the last page.
	NextRef string          `json:"nextRef"`
	Loaded  int             `json:"loaded"`
	State   json.RawMessage `json:"state"`

	LastSeen time.Time `json:"lastSeen"`
}

func NewHistorySession(rootDir string, ref string) *HistorySession {
	return &HistorySession{
		ID:       NewUUID("h"),
		RootDir:  rootDir,
		Ref:      ref,
		LastSeen: time.Now(),
	}
}

func (s *HistorySession) HasMore() bool {
	return s.NextRef != ""
}
