package refs

import (
	"sort"
	"strings"

	"github.com/hashicorp/go-set/v2"
)

type SectionID string

const (
	LocalBranches  SectionID = "local-branches"
	RemoteBranches SectionID = "remote-branches"
	Tags           SectionID = "tags"
)

// VisibleItems is how many refs a sidebar section shows before "more".
const VisibleItems = 5

type Item struct {
	Section SectionID `json:"section"`
	Name    string    `json:"name"`
	Current bool      `json:"current,omitempty"`
}

type Section struct {
	ID    SectionID `json:"id"`
	Title string    `json:"title"`
	Items []Item    `json:"items"`
}

// Visible returns the first items, and if there are more to show.
func (s *Section) Visible() ([]Item, bool) {
	if len(s.Items) <= VisibleItems {
		return s.Items, false
	}
	return s.Items[:VisibleItems], true
}

func (s *Section) Current() *Item {
	for i := range s.Items {
		if s.Items[i].Current {
			return &s.Items[i]
		}
	}
	return nil
}

func Args(id SectionID) []string {
	switch id {
	case RemoteBranches:
		return []string{"branch", "--remotes"}
	case Tags:
		return []string{"tag"}
	default:
		return []string{"branch"}
	}
}

func Title(id SectionID) string {
	switch id {
	case RemoteBranches:
		return "Remote Branches"
	case Tags:
		return "Tags"
	default:
		return "Local Branches"
	}
}

// Parse reads the output of the command returned by Args. Local branches
// are sorted with the current one first, the others are sorted newest name first.
func Parse(id SectionID, output string) *Section {
	seen := set.New[string](10)
	var items []Item

	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		item := parseLine(id, line)
		if item.Name == "" || seen.Contains(item.Name) {
			continue
		}
		seen.Insert(item.Name)

		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if id != LocalBranches {
			return a.Name > b.Name
		}
		if a.Current != b.Current {
			return a.Current
		}
		return a.Name < b.Name
	})

	return &Section{
		ID:    id,
		Title: Title(id),
		Items: items,
	}
}

func parseLine(id SectionID, line string) Item {
	result := Item{Section: id}

	name := strings.TrimSpace(line)
	if i := strings.Index(name, " ->"); i >= 0 {
		name = name[:i]
	}

	if strings.HasPrefix(name, "*") {
		result.Current = true
		name = strings.TrimSpace(name[1:])
	}

	// (HEAD detached at 0123abc) and (detached from 0123abc)
	if strings.HasPrefix(name, "(") && strings.HasSuffix(name, ")") {
		name = name[strings.LastIndex(name, " ")+1 : len(name)-1]
	}

	result.Name = name
	return result
}
