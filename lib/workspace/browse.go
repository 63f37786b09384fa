package workspace

import (
	"context"
	"strings"

	"github.com/pescuma/gitweb/lib/filters"
	"github.com/pescuma/gitweb/lib/gitlog"
	"github.com/pescuma/gitweb/lib/refs"
	"github.com/pescuma/gitweb/lib/tree"
	"github.com/pescuma/gitweb/lib/utils"
)

var refSections = []refs.SectionID{refs.LocalBranches, refs.RemoteBranches, refs.Tags}

// Refs loads the sidebar sections: local branches, remote branches and tags.
func (w *Workspace) Refs(ctx context.Context) ([]*refs.Section, error) {
	return utils.ParallelMap(refSections, func(id refs.SectionID) (*refs.Section, error) {
		out, err := w.git(ctx, refs.Args(id)...)
		if err != nil {
			return nil, err
		}

		return refs.Parse(id, out), nil
	}, utils.ParallelOptions{Routines: len(refSections)})
}

// Tree lists a folder. Objects starting with / are working copy folders,
// anything else is a git tree.
func (w *Workspace) Tree(ctx context.Context, object string, filter filters.PathFilter) ([]*tree.Entry, error) {
	var entries []*tree.Entry
	var err error

	if tree.IsLocal(object) {
		entries, err = tree.ListLocal(w.rootDir, utils.Coalesce(object, "/"))
		if err != nil {
			return nil, err
		}
	} else if gitlog.IsValidID(object) {
		entries, err = w.trees.Get(object, func(id string) ([]*tree.Entry, error) {
			return w.lsTree(ctx, id)
		})
		if err != nil {
			return nil, err
		}
	} else {
		entries, err = w.lsTree(ctx, object)
		if err != nil {
			return nil, err
		}
	}

	if filter == nil {
		return entries, nil
	}

	return filters.Filter(func(p string) bool {
		return strings.HasSuffix(p, "/") || filter(p)
	}, entries, entryPath), nil
}

func (w *Workspace) lsTree(ctx context.Context, object string) ([]*tree.Entry, error) {
	out, err := w.git(ctx, "ls-tree", "-l", object)
	if err != nil {
		return nil, err
	}

	entries, err := tree.ParseLsTree(out)
	if err != nil {
		return nil, err
	}

	tree.Sort(entries)
	return entries, nil
}

// folders always pass the filter
func entryPath(e *tree.Entry) string {
	if e.IsTree() {
		return e.Name + "/"
	}
	if tree.IsLocal(e.Object) {
		return strings.TrimPrefix(e.Object, "/")
	}
	return e.Name
}

// Blob returns the contents of a file, from the working copy or from git.
func (w *Workspace) Blob(ctx context.Context, object string) (string, error) {
	if tree.IsLocal(object) {
		data, err := tree.ReadLocal(w.rootDir, object)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	return w.git(ctx, "cat-file", "-p", object)
}
