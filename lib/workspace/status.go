package workspace

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/pescuma/gitweb/lib/filters"
)

var (
	ErrNothingStaged = errors.New("no files staged for commit")
	ErrEmptyMessage  = errors.New("enter a commit message first")
)

type FileStatus struct {
	// Path is the file to pass to git. For renames it is the new name.
	Path string `json:"path"`
	// Line is what git status shows, with both names for renames.
	Line   string `json:"line"`
	Status string `json:"status"`
}

func (f *FileStatus) IsDeleted() bool {
	return f.Status == "D"
}

type Status struct {
	WorkingCopy []*FileStatus `json:"workingCopy"`
	StagingArea []*FileStatus `json:"stagingArea"`
}

func (s *Status) Filter(filter filters.PathFilter) *Status {
	path := func(f *FileStatus) string { return f.Path }

	return &Status{
		WorkingCopy: filters.Filter(filter, s.WorkingCopy, path),
		StagingArea: filters.Filter(filter, s.StagingArea, path),
	}
}

// ParseStatus reads git status --porcelain. The staging area comes from the
// first column and the working copy from the second one.
func ParseStatus(porcelain string) *Status {
	result := &Status{
		WorkingCopy: []*FileStatus{},
		StagingArea: []*FileStatus{},
	}

	for _, line := range strings.Split(porcelain, "\n") {
		if len(line) < 4 {
			continue
		}

		staged := line[0]
		working := line[1]
		name := line[3:]

		path := name
		if i := strings.LastIndex(name, " -> "); i >= 0 {
			path = name[i+len(" -> "):]
		}

		if staged != ' ' && staged != '?' {
			result.StagingArea = append(result.StagingArea, &FileStatus{Path: path, Line: name, Status: string(staged)})
		}
		if working != ' ' {
			result.WorkingCopy = append(result.WorkingCopy, &FileStatus{Path: path, Line: name, Status: string(working)})
		}
	}

	return result
}

func (w *Workspace) Status(ctx context.Context) (*Status, error) {
	out, err := w.git(ctx, "status", "--porcelain")
	if err != nil {
		return nil, err
	}

	return ParseStatus(out), nil
}

// Stage adds paths to the staging area. Files deleted in the working copy are
// removed with git rm.
func (w *Workspace) Stage(ctx context.Context, paths ...string) (*Status, error) {
	status, err := w.Status(ctx)
	if err != nil {
		return nil, err
	}

	deleted := lo.FilterMap(status.WorkingCopy, func(f *FileStatus, _ int) (string, bool) {
		return f.Path, f.IsDeleted() && lo.Contains(paths, f.Path)
	})
	files := lo.Without(paths, deleted...)

	if len(files) > 0 {
		_, err = w.git(ctx, append([]string{"add", "--"}, files...)...)
		if err != nil {
			return nil, err
		}
	}

	if len(deleted) > 0 {
		_, err = w.git(ctx, append([]string{"rm", "--"}, deleted...)...)
		if err != nil {
			return nil, err
		}
	}

	return w.afterChange(ctx)
}

func (w *Workspace) Unstage(ctx context.Context, paths ...string) (*Status, error) {
	if len(paths) > 0 {
		_, err := w.git(ctx, append([]string{"reset", "--"}, paths...)...)
		if err != nil {
			return nil, err
		}
	}

	return w.afterChange(ctx)
}

// Revert throws away the working copy changes of paths.
func (w *Workspace) Revert(ctx context.Context, paths ...string) (*Status, error) {
	if len(paths) > 0 {
		_, err := w.git(ctx, append([]string{"checkout", "--"}, paths...)...)
		if err != nil {
			return nil, err
		}
	}

	return w.afterChange(ctx)
}

func (w *Workspace) Commit(ctx context.Context, message string, amend bool) (*Status, error) {
	status, err := w.Status(ctx)
	if err != nil {
		return nil, err
	}

	if len(status.StagingArea) == 0 && !amend {
		return nil, ErrNothingStaged
	}
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}

	args := []string{"commit"}
	if amend {
		args = append(args, "--amend")
	}
	args = append(args, "-m", message)

	_, err = w.git(ctx, args...)
	if err != nil {
		return nil, err
	}

	return w.afterChange(ctx)
}

// LastMessage is the message of HEAD, to be edited when amending.
func (w *Workspace) LastMessage(ctx context.Context) (string, error) {
	return w.git(ctx, "log", "--pretty=format:%B", "-n", "1")
}

func (w *Workspace) afterChange(ctx context.Context) (*Status, error) {
	w.refresh()
	return w.Status(ctx)
}
