package workspace

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pescuma/gitweb/lib/consoles"
	"github.com/pescuma/gitweb/lib/diffview"
	"github.com/pescuma/gitweb/lib/filters"
	"github.com/pescuma/gitweb/lib/gitlog"
	"github.com/pescuma/gitweb/lib/graph"
	"github.com/pescuma/gitweb/lib/patch"
	"github.com/pescuma/gitweb/lib/refs"
	"github.com/pescuma/gitweb/lib/repo"
	"github.com/pescuma/gitweb/lib/storages"
	"github.com/pescuma/gitweb/lib/storages/orm"
	"github.com/pescuma/gitweb/lib/tree"
)

var (
	idA = strings.Repeat("a", 40)
	idB = strings.Repeat("b", 40)
	idC = strings.Repeat("c", 40)
	idT = strings.Repeat("f", 40)
)

func newTestWorkspace(t *testing.T, rootDir string) (*Workspace, *repo.FakeRunner, *consoles.MemoryConsole) {
	t.Helper()

	console := consoles.NewMemoryConsole()

	storage, err := orm.NewGormStorage(orm.WithSqliteInMemory(), console)
	require.Nil(t, err)

	runner := repo.NewFakeRunner()

	ws, err := Open(console, storage, runner, rootDir)
	require.Nil(t, err)

	t.Cleanup(func() { _ = ws.Close() })

	return ws, runner, console
}

func rawCommit(id string, parents ...string) string {
	lines := []string{"commit " + id, "tree " + idT}
	for _, p := range parents {
		lines = append(lines, "parent "+p)
	}
	lines = append(lines,
		"author Jane Doe <jane@example.com> 1700000000 +0000",
		"committer Jane Doe <jane@example.com> 1700000000 +0000",
		"",
		"    Commit "+id[:1],
		"",
	)
	return strings.Join(lines, "\n")
}

func TestHistoryPages(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ws, runner, _ := newTestWorkspace(t, "/repo")
	require.Nil(t, ws.SetConfig("history.page-size", "2"))

	runner.OnStdout(rawCommit(idC, idB)+rawCommit(idB, idA)+rawCommit(idA), gitlog.LogArgs("HEAD", 2)...)
	runner.OnStdout(rawCommit(idA), gitlog.LogArgs(idA, 2)...)

	first, err := ws.OpenHistory(ctx, "")
	require.Nil(t, err)
	assert.Len(t, first.Commits, 2)
	assert.True(t, first.HasMore)
	assert.Equal(t, []string{idC, idB}, lo.Map(first.Graph.Rows, func(r graph.Row, _ int) string { return r.Commit }))
	assert.Len(t, first.Graph.Open, 1)

	second, err := ws.MoreHistory(ctx, first.Session)
	require.Nil(t, err)
	assert.Equal(t, first.Session, second.Session)
	require.Len(t, second.Commits, 1)
	assert.Equal(t, idA, second.Commits[0].ID)
	assert.Equal(t, 2, second.Graph.Rows[0].Index)
	assert.Equal(t, first.Graph.Rows[0].Lane, second.Graph.Rows[0].Lane)
	assert.False(t, second.HasMore)

	third, err := ws.MoreHistory(ctx, first.Session)
	require.Nil(t, err)
	assert.Empty(t, third.Commits)
	assert.False(t, third.HasMore)

	require.Nil(t, ws.CloseHistory(first.Session))

	_, err = ws.MoreHistory(ctx, first.Session)
	assert.ErrorIs(t, err, storages.ErrNotFound)
}

func TestOpenHistoryResetsLayout(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ws, runner, _ := newTestWorkspace(t, "/repo")

	runner.OnStdout(rawCommit(idB, idA)+rawCommit(idA), gitlog.LogArgs("main", gitlog.DefaultPageSize)...)

	first, err := ws.OpenHistory(ctx, "main")
	require.Nil(t, err)
	second, err := ws.OpenHistory(ctx, "main")
	require.Nil(t, err)

	assert.NotEqual(t, first.Session, second.Session)
	assert.Equal(t, first.Graph, second.Graph)
	assert.False(t, second.HasMore)
}

func TestHistoryErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ws, runner, console := newTestWorkspace(t, "/repo")

	runner.On(&repo.Result{Stderr: "fatal: bad revision 'nope'\n", ExitCode: 128}, gitlog.LogArgs("nope", gitlog.DefaultPageSize)...)

	_, err := ws.OpenHistory(ctx, "nope")
	require.NotNil(t, err)
	assert.True(t, repo.IsCommandError(err))
	assert.Equal(t, "fatal: bad revision 'nope'", err.Error())

	notices := console.Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, consoles.LevelError, notices[0].Level)
}

func TestWalkHistory(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ws, runner, _ := newTestWorkspace(t, "/repo")
	require.Nil(t, ws.SetConfig("history.page-size", "1"))

	runner.OnStdout(idB+"\n"+idA, "log", "--pretty=format:%H", "HEAD", "--")
	runner.OnStdout(rawCommit(idB, idA)+rawCommit(idA), gitlog.LogArgs("HEAD", 1)...)
	runner.OnStdout(rawCommit(idA), gitlog.LogArgs(idA, 1)...)

	var ids []string
	err := ws.WalkHistory(ctx, "", func(page *HistoryPage) error {
		for _, c := range page.Commits {
			ids = append(ids, c.ID)
		}
		return nil
	})
	require.Nil(t, err)
	assert.Equal(t, []string{idB, idA}, ids)
}

const fileDiff = `diff --git a/f b/f
index 1111111..2222222 100644
--- a/f
+++ b/f
@@ -1,3 +1,3 @@
 one
-two
+TWO
 three
`

func TestDiff(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ws, runner, _ := newTestWorkspace(t, "/repo")

	runner.OnStdout(fileDiff, "diff", "--unified=3", "--cached", "--", "f")

	diff, err := ws.Diff(ctx, &DiffRequest{Staged: true, Files: []string{"f"}})
	require.Nil(t, err)
	assert.Equal(t, fileDiff, diff.Raw)
	assert.Equal(t, 7, diff.View.Len())
	assert.Equal(t, 1, diff.Stats.Modified)
	assert.Equal(t, diffview.KindRemoved, diff.Lines[6].Kind)
}

func TestDiffArgs(t *testing.T) {
	t.Parallel()

	defaults := diffview.NewOptions()

	assert.Equal(t,
		[]string{"diff", "--unified=3", "--", "a", "b"},
		(&DiffRequest{Files: []string{"a", "b"}}).Args(defaults))
	assert.Equal(t,
		[]string{"show", "--pretty=raw", "--unified=999999999", "--ignore-all-space", "--ignore-blank-lines", idA},
		(&DiffRequest{Commit: idA, Options: &diffview.Options{Complete: true, IgnoreWhitespace: true}}).Args(defaults))
}

func TestExplore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ws, runner, _ := newTestWorkspace(t, "/repo")

	runner.OnStdout(rawCommit(idB, idA)+fileDiff, "show", "--pretty=raw", "--unified=3", idB)

	explorer, err := ws.Explore(ctx, idB, nil)
	require.Nil(t, err)
	require.Len(t, explorer.Sections, 1)
	assert.Equal(t, "f", explorer.Sections[0].RightName)
	assert.Equal(t, "commit "+idB, explorer.Header[0])
}

func TestApplyLines(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ws, runner, _ := newTestWorkspace(t, "/repo")

	runner.OnStdout(fileDiff, "diff", "--unified=3", "--", "f")

	_, err := ws.ApplyLines(ctx, &DiffRequest{Files: []string{"f"}}, []patch.Cell{
		{Column: diffview.Left, Row: 5},
		{Column: diffview.Right, Row: 5},
	}, patch.ModeStage)
	require.Nil(t, err)

	apply := lo.Filter(runner.Requests(), func(r repo.Request, _ int) bool { return r.Args[0] == "apply" })
	require.Len(t, apply, 1)
	assert.Equal(t, []string{"apply", "--unidiff-zero", "--cached"}, apply[0].Args)
	assert.Equal(t, "diff --git a/f b/f\nindex 1111111..2222222 100644\n--- a/f\n+++ b/f\n@@ -2,1 +2,1 @@\n-two\n+TWO\n", apply[0].Stdin)

	commands := runner.Commands()
	assert.Equal(t, "status --porcelain", commands[len(commands)-1])
}

func TestApplyLinesDiscard(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ws, runner, _ := newTestWorkspace(t, "/repo")

	runner.OnStdout(fileDiff, "diff", "--unified=3", "--", "f")

	_, err := ws.ApplyLines(ctx, &DiffRequest{Files: []string{"f"}}, []patch.Cell{
		{Column: diffview.Right, Row: 5},
	}, patch.ModeDiscard)
	require.Nil(t, err)

	apply := lo.Filter(runner.Requests(), func(r repo.Request, _ int) bool { return r.Args[0] == "apply" })
	require.Len(t, apply, 1)
	assert.Equal(t, []string{"apply", "--unidiff-zero"}, apply[0].Args)
	assert.Equal(t, "diff --git a/f b/f\nindex 1111111..2222222 100644\n--- a/f\n+++ b/f\n@@ -2,1 +2,0 @@\n-TWO\n", apply[0].Stdin)
}

func TestApplyEmptySelectionDoesNothing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ws, runner, _ := newTestWorkspace(t, "/repo")

	runner.OnStdout(fileDiff, "diff", "--unified=3", "--", "f")

	_, err := ws.ApplyLines(ctx, &DiffRequest{Files: []string{"f"}}, []patch.Cell{{Column: diffview.Left, Row: 4}}, patch.ModeStage)
	require.Nil(t, err)

	assert.False(t, lo.SomeBy(runner.Commands(), func(c string) bool { return strings.HasPrefix(c, "apply") }))
}

func TestApplyLinesRejectsWrongDiff(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ws, _, _ := newTestWorkspace(t, "/repo")

	_, err := ws.ApplyLines(ctx, &DiffRequest{Commit: idA}, nil, patch.ModeStage)
	assert.NotNil(t, err)

	_, err = ws.ApplyLines(ctx, &DiffRequest{Staged: true}, nil, patch.ModeStage)
	assert.NotNil(t, err)
}

const porcelain = ` M lib/a.go
M  lib/b.go
MM lib/c.go
?? new.txt
 D gone.txt
R  old.txt -> renamed.txt
`

func TestParseStatus(t *testing.T) {
	t.Parallel()

	status := ParseStatus(porcelain)

	paths := func(files []*FileStatus) []string {
		return lo.Map(files, func(f *FileStatus, _ int) string { return f.Status + " " + f.Path })
	}

	assert.Equal(t, []string{"M lib/a.go", "M lib/c.go", "? new.txt", "D gone.txt"}, paths(status.WorkingCopy))
	assert.Equal(t, []string{"M lib/b.go", "M lib/c.go", "R renamed.txt"}, paths(status.StagingArea))
	assert.Equal(t, "old.txt -> renamed.txt", status.StagingArea[2].Line)

	empty := ParseStatus("")
	assert.NotNil(t, empty.WorkingCopy)
	assert.Empty(t, empty.StagingArea)
}

func TestStatusFilter(t *testing.T) {
	t.Parallel()

	filter, err := filters.ParsePathFilter("lib/**")
	require.Nil(t, err)

	status := ParseStatus(porcelain).Filter(filter)

	assert.Len(t, status.WorkingCopy, 2)
	assert.Len(t, status.StagingArea, 2)
}

func TestStage(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ws, runner, _ := newTestWorkspace(t, "/repo")

	runner.OnStdout(porcelain, "status", "--porcelain")

	_, err := ws.Stage(ctx, "lib/a.go", "gone.txt")
	require.Nil(t, err)

	assert.Equal(t, []string{
		"status --porcelain",
		"add -- lib/a.go",
		"rm -- gone.txt",
		"status --porcelain",
	}, runner.Commands())
}

func TestStageOnlyDeleted(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ws, runner, _ := newTestWorkspace(t, "/repo")

	runner.OnStdout(porcelain, "status", "--porcelain")

	_, err := ws.Stage(ctx, "gone.txt")
	require.Nil(t, err)

	assert.Equal(t, []string{"status --porcelain", "rm -- gone.txt", "status --porcelain"}, runner.Commands())
}

func TestUnstageAndRevert(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ws, runner, _ := newTestWorkspace(t, "/repo")

	_, err := ws.Unstage(ctx, "lib/b.go", "renamed.txt")
	require.Nil(t, err)
	_, err = ws.Revert(ctx, "lib/a.go")
	require.Nil(t, err)
	_, err = ws.Revert(ctx)
	require.Nil(t, err)

	assert.Equal(t, []string{
		"reset -- lib/b.go renamed.txt",
		"status --porcelain",
		"checkout -- lib/a.go",
		"status --porcelain",
		"status --porcelain",
	}, runner.Commands())
}

func TestCommit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ws, runner, _ := newTestWorkspace(t, "/repo")

	_, err := ws.Commit(ctx, "message", false)
	assert.ErrorIs(t, err, ErrNothingStaged)

	runner.OnStdout(porcelain, "status", "--porcelain")

	_, err = ws.Commit(ctx, "  \n", false)
	assert.ErrorIs(t, err, ErrEmptyMessage)

	runner.Reset()

	_, err = ws.Commit(ctx, "Fix it", false)
	require.Nil(t, err)
	assert.Contains(t, runner.Commands(), "commit -m Fix it")

	runner.Reset()

	_, err = ws.Commit(ctx, "Fix it again", true)
	require.Nil(t, err)
	assert.Contains(t, runner.Commands(), "commit --amend -m Fix it again")
}

func TestAmendWithNothingStaged(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ws, runner, _ := newTestWorkspace(t, "/repo")

	runner.OnStdout("Old message\n", "log", "--pretty=format:%B", "-n", "1")

	msg, err := ws.LastMessage(ctx)
	require.Nil(t, err)
	assert.Equal(t, "Old message\n", msg)

	_, err = ws.Commit(ctx, msg, true)
	require.Nil(t, err)
}

func TestWarningsReachTheConsole(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ws, runner, console := newTestWorkspace(t, "/repo")

	runner.On(&repo.Result{Stderr: "warning: LF will be replaced by CRLF\n"}, "add", "--", "x")

	_, err := ws.Stage(ctx, "x")
	require.Nil(t, err)

	notices := console.Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, consoles.LevelWarning, notices[0].Level)
	assert.Contains(t, notices[0].Text, "LF will be replaced")
}

func TestRefs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ws, runner, _ := newTestWorkspace(t, "/repo")

	runner.OnStdout("  dev\n* main\n", refs.Args(refs.LocalBranches)...)
	runner.OnStdout("  origin/HEAD -> origin/main\n  origin/main\n", refs.Args(refs.RemoteBranches)...)
	runner.OnStdout("v1\nv2\n", refs.Args(refs.Tags)...)

	sections, err := ws.Refs(ctx)
	require.Nil(t, err)
	require.Len(t, sections, 3)

	assert.Equal(t, refs.LocalBranches, sections[0].ID)
	assert.Equal(t, "main", sections[0].Current().Name)
	assert.Equal(t, refs.RemoteBranches, sections[1].ID)
	assert.Equal(t, refs.Tags, sections[2].ID)
	assert.Equal(t, []string{"v2", "v1"}, lo.Map(sections[2].Items, func(i refs.Item, _ int) string { return i.Name }))
}

func TestGitTree(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ws, runner, _ := newTestWorkspace(t, "/repo")

	runner.OnStdout(strings.Join([]string{
		"100644 blob " + idA + "     120\tmain.go",
		"040000 tree " + idB + "       -\tlib",
		"100644 blob " + idC + "      10\tREADME.md",
	}, "\n")+"\n", "ls-tree", "-l", "HEAD")
	runner.OnStdout("package main\n", "cat-file", "-p", idA)

	entries, err := ws.Tree(ctx, "HEAD", nil)
	require.Nil(t, err)
	assert.Equal(t, []string{"lib", "README.md", "main.go"}, lo.Map(entries, func(e *tree.Entry, _ int) string { return e.Name }))

	filter, err := filters.ParsePathFilter("*.go")
	require.Nil(t, err)

	entries, err = ws.Tree(ctx, "HEAD", filter)
	require.Nil(t, err)
	assert.Equal(t, []string{"lib", "main.go"}, lo.Map(entries, func(e *tree.Entry, _ int) string { return e.Name }))

	blob, err := ws.Blob(ctx, idA)
	require.Nil(t, err)
	assert.Equal(t, "package main\n", blob)
}

func TestGitTreeByIDIsLoadedOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ws, runner, _ := newTestWorkspace(t, "/repo")

	runner.OnStdout("100644 blob "+idA+"     120\tmain.go\n", "ls-tree", "-l", idB)

	for i := 0; i < 2; i++ {
		entries, err := ws.Tree(ctx, idB, nil)
		require.Nil(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "main.go", entries[0].Name)
	}

	assert.Equal(t, []string{"ls-tree -l " + idB}, runner.Commands())
}

func TestLocalTree(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	root := t.TempDir()
	require.Nil(t, os.MkdirAll(filepath.Join(root, "docs"), 0o755))
	require.Nil(t, os.WriteFile(filepath.Join(root, "docs", "index.md"), []byte("# Docs\n"), 0o644))

	ws, runner, _ := newTestWorkspace(t, root)

	entries, err := ws.Tree(ctx, "", nil)
	require.Nil(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "/docs", entries[0].Object)

	entries, err = ws.Tree(ctx, "/docs", nil)
	require.Nil(t, err)
	require.Len(t, entries, 1)

	blob, err := ws.Blob(ctx, entries[0].Object)
	require.Nil(t, err)
	assert.Equal(t, "# Docs\n", blob)

	assert.Empty(t, runner.Commands())
}

func TestConfig(t *testing.T) {
	t.Parallel()

	ws, _, _ := newTestWorkspace(t, "/repo")

	require.Nil(t, ws.SetConfig("diff.context", "10"))
	assert.Equal(t, 10, ws.Config().DiffContext)

	assert.NotNil(t, ws.SetConfig("diff.context", "-1"))
	assert.NotNil(t, ws.SetConfig("nope", "1"))

	values, err := ws.ListConfig()
	require.Nil(t, err)
	assert.Equal(t, "10", values["diff.context"])
	assert.Equal(t, "git", values["git.cmd"])

	require.Nil(t, ws.UnsetConfig("diff.context"))
	assert.Equal(t, diffview.DefaultContext, ws.Config().DiffContext)
}

func TestRunGitRemote(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ws, runner, console := newTestWorkspace(t, "/repo")

	runner.OnStdout("a\nb\n", "branch")

	require.Nil(t, ws.RunGit(ctx, "branch"))

	texts := lo.Map(console.Messages(), func(m consoles.Message, _ int) string { return m.Text })
	assert.Equal(t, []string{"a", "b"}, texts)
}
