package tree

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ListLocal lists a folder of the working copy the way ls-tree -l lists a tree.
// Paths are relative to root and may not leave it.
func ListLocal(root string, dir string) ([]*Entry, error) {
	full, err := resolve(root, dir)
	if err != nil {
		return nil, err
	}

	items, err := os.ReadDir(full)
	if err != nil {
		return nil, err
	}

	result := make([]*Entry, 0, len(items))
	for _, item := range items {
		info, err := item.Info()
		if err != nil {
			return nil, err
		}

		mtime := info.ModTime().UTC().Truncate(time.Minute)
		entry := &Entry{
			Mode:   uint32(info.Mode().Perm()),
			Type:   TypeBlob,
			Object: filepath.ToSlash(filepath.Join(dir, item.Name())),
			Size:   info.Size(),
			Name:   item.Name(),
			MTime:  &mtime,
		}

		switch {
		case item.IsDir():
			entry.Type = TypeTree
			entry.Mode |= 0o040000

			children, err := os.ReadDir(filepath.Join(full, item.Name()))
			if err != nil {
				// unreadable folders are listed with no items
				children = nil
			}
			entry.Size = int64(len(children))

		case info.Mode()&os.ModeSymlink != 0:
			entry.Mode |= modeSymlink

		default:
			entry.Mode |= 0o100000
		}

		result = append(result, entry)
	}

	Sort(result)

	return result, nil
}

// Sort puts folders first, then sorts by name.
func Sort(entries []*Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.IsTree() != b.IsTree() {
			return a.IsTree()
		}
		return a.Name < b.Name
	})
}

func resolve(root string, dir string) (string, error) {
	clean := filepath.Clean("/" + filepath.FromSlash(dir))
	full := filepath.Join(root, clean)

	rel, err := filepath.Rel(root, full)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", errors.Errorf("path outside of repository: %v", dir)
	}

	return full, nil
}

// ReadLocal reads a file of the working copy. Paths are relative to root.
func ReadLocal(root string, file string) ([]byte, error) {
	full, err := resolve(root, file)
	if err != nil {
		return nil, err
	}

	return os.ReadFile(full)
}

// IsLocal reports whether object names a working copy path instead of a git object.
func IsLocal(object string) bool {
	return object == "" || strings.HasPrefix(object, "/")
}
