package workspace

import (
	"context"

	"github.com/pkg/errors"

	"github.com/pescuma/gitweb/lib/diffview"
	"github.com/pescuma/gitweb/lib/linediff"
	"github.com/pescuma/gitweb/lib/patch"
	"github.com/pescuma/gitweb/lib/repo"
)

type DiffRequest struct {
	Commit  string            `json:"commit,omitempty"`
	Staged  bool              `json:"staged,omitempty"`
	Files   []string          `json:"files,omitempty"`
	Options *diffview.Options `json:"options,omitempty"`
}

func (r *DiffRequest) Args(defaults *diffview.Options) []string {
	opts := r.Options
	if opts == nil {
		opts = defaults
	}

	switch {
	case r.Commit != "":
		return opts.Args([]string{"show", "--pretty=raw"}, []string{r.Commit}, r.Files...)
	case r.Staged:
		return opts.Args([]string{"diff"}, []string{"--cached"}, r.Files...)
	default:
		return opts.Args([]string{"diff"}, nil, r.Files...)
	}
}

type Diff struct {
	Raw   string              `json:"raw"`
	Lines []diffview.Line     `json:"lines"`
	View  *diffview.SplitView `json:"view"`
	Stats linediff.Stats      `json:"stats"`
}

func (w *Workspace) Diff(ctx context.Context, req *DiffRequest) (*Diff, error) {
	out, err := w.git(ctx, req.Args(w.config.DiffOptions())...)
	if err != nil {
		return nil, err
	}

	lines := diffview.Classify(out)

	return &Diff{
		Raw:   out,
		Lines: lines,
		View:  diffview.SideBySide(out),
		Stats: diffview.Stats(lines),
	}, nil
}

// Explore splits the changes of commit in one section per file.
func (w *Workspace) Explore(ctx context.Context, commit string, opts *diffview.Options) (*diffview.Explorer, error) {
	req := &DiffRequest{Commit: commit, Options: opts}

	out, err := w.git(ctx, req.Args(w.config.DiffOptions())...)
	if err != nil {
		return nil, err
	}

	return diffview.Explore(out), nil
}

// ApplySelection builds a patch with the selected lines of view and applies it.
// An empty selection does nothing.
func (w *Workspace) ApplySelection(ctx context.Context, view *diffview.SplitView, selection *patch.Selection, mode patch.Mode) (*Status, error) {
	p, err := patch.Build(view, selection, mode.Reverse())
	if errors.Is(err, patch.ErrEmptySelection) {
		return w.Status(ctx)
	} else if err != nil {
		return nil, err
	}

	_, err = repo.Execute(ctx, w.runner, w.console, repo.Request{
		Args:  patch.ApplyArgs(mode.Cached()),
		Stdin: p,
	})
	if err != nil {
		return nil, err
	}

	return w.afterChange(ctx)
}

// ApplyLines runs the diff in req again and applies the given cells of it.
func (w *Workspace) ApplyLines(ctx context.Context, req *DiffRequest, cells []patch.Cell, mode patch.Mode) (*Status, error) {
	if req.Commit != "" {
		return nil, errors.Errorf("lines of commit %v can not be applied", req.Commit)
	}
	if req.Staged != (mode == patch.ModeUnstage) {
		return nil, errors.Errorf("can not %v lines of a %v diff", mode, stagedName(req.Staged))
	}

	diff, err := w.Diff(ctx, req)
	if err != nil {
		return nil, err
	}

	return w.ApplySelection(ctx, diff.View, patch.SelectionFrom(cells), mode)
}

func stagedName(staged bool) string {
	if staged {
		return "staged"
	}
	return "working copy"
}
