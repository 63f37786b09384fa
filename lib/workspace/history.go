package workspace

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/pescuma/gitweb/lib/gitlog"
	"github.com/pescuma/gitweb/lib/graph"
	"github.com/pescuma/gitweb/lib/model"
	"github.com/pescuma/gitweb/lib/storages"
	"github.com/pescuma/gitweb/lib/utils"
)

// SessionTTL is how long an unused history session is kept.
const SessionTTL = 24 * time.Hour

type HistoryPage struct {
	Session model.UUID      `json:"session"`
	Commits []*model.Commit `json:"commits"`
	Graph   *graph.Page     `json:"graph"`
	HasMore bool            `json:"hasMore"`
}

type historySource interface {
	Page(ctx context.Context, ref string, maxCount int) (*gitlog.Page, error)
}

type commandSource struct {
	w *Workspace
}

func (s *commandSource) Page(ctx context.Context, ref string, maxCount int) (*gitlog.Page, error) {
	out, err := s.w.git(ctx, gitlog.LogArgs(ref, maxCount)...)
	if err != nil {
		return nil, err
	}

	return gitlog.ParsePage(out, maxCount), nil
}

type goGitSource struct {
	source *gitlog.GoGitSource
}

func (s *goGitSource) Page(_ context.Context, ref string, maxCount int) (*gitlog.Page, error) {
	return s.source.Page(ref, maxCount)
}

func (s *goGitSource) Refresh() {
	s.source.Refresh()
}

// UseGoGit reads history straight from the repository instead of running git log.
func (w *Workspace) UseGoGit() {
	w.source = &goGitSource{source: gitlog.NewGoGitSource(w.rootDir)}
}

// OpenHistory starts a new history listing at ref, with a fresh graph layout.
func (w *Workspace) OpenHistory(ctx context.Context, ref string) (*HistoryPage, error) {
	w.historyMutex.Lock()
	defer w.historyMutex.Unlock()

	_, err := w.storage.DeleteHistorySessionsBefore(time.Now().Add(-SessionTTL))
	if err != nil {
		w.console.Warnf("Error removing old history sessions: %v\n", err)
	}

	ref = utils.Coalesce(ref, "HEAD")
	session := model.NewHistorySession(w.rootDir, ref)
	state := graph.NewLayoutState(w.config.GraphOptions())

	return w.loadHistoryPage(ctx, session, state, ref)
}

// MoreHistory loads the page after the last one loaded in the session,
// continuing its graph lanes and colors.
func (w *Workspace) MoreHistory(ctx context.Context, id model.UUID) (*HistoryPage, error) {
	w.historyMutex.Lock()
	defer w.historyMutex.Unlock()

	session, err := w.storage.LoadHistorySession(id)
	if err != nil {
		return nil, errors.Wrapf(err, "history session %v", id)
	}

	if !session.HasMore() {
		return &HistoryPage{Session: session.ID}, nil
	}

	var state graph.LayoutState
	err = json.Unmarshal(session.State, &state)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid layout in history session %v", id)
	}

	return w.loadHistoryPage(ctx, session, &state, session.NextRef)
}

func (w *Workspace) CloseHistory(id model.UUID) error {
	return w.storage.DeleteHistorySession(id)
}

func (w *Workspace) loadHistoryPage(ctx context.Context, session *model.HistorySession, state *graph.LayoutState, start string) (*HistoryPage, error) {
	page, err := w.source.Page(ctx, start, w.config.PageSize)
	if err != nil {
		return nil, err
	}

	next, graphPage := graph.Layout(state, page.Commits)

	session.State, err = json.Marshal(next)
	if err != nil {
		return nil, err
	}
	session.NextRef = page.NextRef
	session.Loaded += len(page.Commits)
	session.LastSeen = time.Now()

	err = w.storage.WriteHistorySession(session)
	if err != nil {
		return nil, err
	}

	return &HistoryPage{
		Session: session.ID,
		Commits: page.Commits,
		Graph:   graphPage,
		HasMore: session.HasMore(),
	}, nil
}

// WalkHistory loads every page of ref, showing the progress on stderr.
func (w *Workspace) WalkHistory(ctx context.Context, ref string, cb func(*HistoryPage) error) error {
	ids, err := w.git(ctx, "log", "--pretty=format:%H", utils.Coalesce(ref, "HEAD"), "--")
	if err != nil {
		return err
	}
	total := len(strings.Fields(ids))

	bar := utils.NewProgressBar(os.Stderr, total, "Loading history")
	defer bar.Finish()

	page, err := w.OpenHistory(ctx, ref)
	if err != nil {
		return err
	}
	defer func() {
		if err := w.CloseHistory(page.Session); err != nil && !errors.Is(err, storages.ErrNotFound) {
			w.console.Warnf("Error closing history session: %v\n", err)
		}
	}()

	for {
		_ = bar.Add(len(page.Commits))

		err = cb(page)
		if err != nil {
			return err
		}

		if !page.HasMore {
			return nil
		}

		page, err = w.MoreHistory(ctx, page.Session)
		if err != nil {
			return err
		}
	}
}
