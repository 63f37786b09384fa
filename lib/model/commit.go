package model

import "strings"

type Commit struct {
	ID        string   `json:"id"`
	Parents   []string `json:"parents"`
	Tree      string   `json:"tree"`
	Author    Person   `json:"author"`
	Committer Person   `json:"committer"`
	Message   string   `json:"message"`
	Refs      []Ref    `json:"refs"`
}

func NewCommit(id string, parents ...string) *Commit {
	return &Commit{
		ID:      id,
		Parents: parents,
	}
}

func (c *Commit) AbbrevID() string {
	if len(c.ID) <= 7 {
		return c.ID
	}
	return c.ID[:7]
}

func (c *Commit) Subject() string {
	subject, _, _ := strings.Cut(c.Message, "\n")
	return subject
}

func (c *Commit) IsRoot() bool {
	return len(c.Parents) == 0
}

func (c *Commit) IsMerge() bool {
	return len(c.Parents) > 1
}
