package tree

import (
	"path"
	"strings"

	"github.com/samber/lo"
)

type StackItem struct {
	Name   string `json:"name"`
	Object string `json:"object,omitempty"`
	Type   string `json:"type,omitempty"`
}

// Stack is the breadcrumb of the folder being browsed. Objects starting with /
// are local folders, others are git trees like HEAD:lib/model.
type Stack struct {
	items []StackItem
}

func NewStack() *Stack {
	return &Stack{
		items: []StackItem{{Name: "root"}},
	}
}

// StackFor builds the breadcrumb of an object.
func StackFor(object string, typ string) *Stack {
	result := NewStack()
	result.Update(object, typ)
	return result
}

func (s *Stack) Update(object string, typ string) {
	var items []StackItem

	if IsLocal(object) {
		items = append(items, StackItem{Name: "root"})

		fullPath := ""
		for _, part := range splitPath(object) {
			fullPath += "/" + part
			items = append(items, StackItem{Name: part, Object: fullPath, Type: TypeTree})
		}

	} else {
		rev, dir, found := strings.Cut(object, ":")
		if !found {
			items = append(items, StackItem{Name: object, Object: object, Type: TypeTree})
		} else {
			items = append(items, StackItem{Name: rev, Object: rev + ":", Type: TypeTree})

			fullPath := ""
			for _, part := range splitPath(dir) {
				fullPath = path.Join(fullPath, part)
				items = append(items, StackItem{Name: part, Object: rev + ":" + fullPath, Type: TypeTree})
			}
		}
	}

	if typ == TypeBlob && len(items) > 1 {
		items[len(items)-1].Type = TypeBlob
	}

	s.items = items
}

func splitPath(p string) []string {
	return lo.Filter(strings.Split(p, "/"), func(part string, _ int) bool {
		return part != ""
	})
}

// ChildObject is the object of name inside folder. Git trees given by id have
// no path, so their children are only known by their own ids.
func ChildObject(folder string, name string) string {
	switch {
	case IsLocal(folder):
		return path.Join("/", folder, name)
	case strings.Contains(folder, ":"):
		rev, dir, _ := strings.Cut(folder, ":")
		return rev + ":" + path.Join(dir, name)
	default:
		return ""
	}
}

func (s *Stack) Items() []StackItem {
	result := make([]StackItem, len(s.items))
	copy(result, s.items)
	return result
}

func (s *Stack) Last() *StackItem {
	if len(s.items) == 0 {
		return nil
	}
	return &s.items[len(s.items)-1]
}

func (s *Stack) Parent() *StackItem {
	if len(s.items) < 2 {
		return nil
	}
	return &s.items[len(s.items)-2]
}

// IsGit tells if the last item is inside a git ref.
func (s *Stack) IsGit() bool {
	last := s.Last()
	return last != nil && last.Object != "" && !strings.HasPrefix(last.Object, "/")
}
