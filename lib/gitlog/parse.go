package gitlog

import (
	"strconv"
	"strings"
	"time"

	"github.com/pescuma/gitweb/lib/model"
)

const recordSeparator = "\ncommit "

// Parse reads the output of git log --pretty=raw --decorate=full. Lines it
// does not understand are skipped, and records without a commit id are dropped.
func Parse(data string) []*model.Commit {
	var result []*model.Commit

	for _, record := range splitRecords(data) {
		commit := ParseRecord(record)
		if commit != nil {
			result = append(result, commit)
		}
	}

	return result
}

func splitRecords(data string) []string {
	if data == "" {
		return nil
	}

	var result []string
	start := 0
	for {
		end := strings.Index(data[start:], recordSeparator)
		if end == -1 {
			result = append(result, data[start:])
			return result
		}

		result = append(result, data[start:start+end])
		start += end + 1
	}
}

func ParseRecord(record string) *model.Commit {
	commit := &model.Commit{}

	var message strings.Builder
	for _, line := range strings.Split(record, "\n") {
		switch {
		case strings.HasPrefix(line, "commit "):
			commit.ID, commit.Refs = parseCommitLine(line[len("commit "):])

		case strings.HasPrefix(line, "parent "):
			commit.Parents = append(commit.Parents, strings.TrimSpace(line[len("parent "):]))

		case strings.HasPrefix(line, "tree "):
			commit.Tree = strings.TrimSpace(line[len("tree "):])

		case strings.HasPrefix(line, "author "):
			commit.Author = ParsePerson(line[len("author "):])

		case strings.HasPrefix(line, "committer "):
			commit.Committer = ParsePerson(line[len("committer "):])

		case strings.HasPrefix(line, "    "):
			message.WriteString(line[4:])
			message.WriteString("\n")
		}
	}

	if !IsValidID(commit.ID) {
		return nil
	}

	commit.Message = strings.TrimSpace(message.String())

	return commit
}

func parseCommitLine(rest string) (string, []model.Ref) {
	id, decorations, _ := strings.Cut(rest, " ")

	s := strings.LastIndex(decorations, "(")
	e := strings.LastIndex(decorations, ")")
	if s == -1 || e <= s {
		return id, nil
	}

	var refs []model.Ref
	for _, d := range strings.Split(decorations[s+1:e], ", ") {
		if d != "" {
			refs = append(refs, model.ParseRef(d))
		}
	}

	return id, refs
}

// IsValidID accepts full sha1 or sha256 object names.
func IsValidID(id string) bool {
	if len(id) != 40 && len(id) != 64 {
		return false
	}

	for _, c := range id {
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f') {
			return false
		}
	}

	return true
}

// ParsePerson parses "Name <email> epoch tz".
func ParsePerson(data string) model.Person {
	var result model.Person

	nameEnd := strings.Index(data, "<")
	if nameEnd == -1 {
		result.Name = strings.TrimSpace(data)
		return result
	}
	result.Name = strings.TrimSpace(data[:nameEnd])

	emailEnd := strings.Index(data[nameEnd:], ">")
	if emailEnd == -1 {
		return result
	}
	emailEnd += nameEnd
	result.Email = data[nameEnd+1 : emailEnd]

	fields := strings.Fields(data[emailEnd+1:])
	if len(fields) > 0 {
		secs, err := strconv.ParseInt(fields[0], 10, 64)
		if err == nil {
			result.Date = time.Unix(secs, 0).UTC()
		}
	}

	return result
}
