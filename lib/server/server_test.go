package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pescuma/gitweb/lib/consoles"
	"github.com/pescuma/gitweb/lib/repo"
	"github.com/pescuma/gitweb/lib/storages/orm"
	"github.com/pescuma/gitweb/lib/tree"
	"github.com/pescuma/gitweb/lib/workspace"
)

func newTestServer(t *testing.T, opts *Options) (*httptest.Server, *repo.FakeRunner) {
	t.Helper()

	console := consoles.NewMemoryConsole()

	storage, err := orm.NewGormStorage(orm.WithSqliteInMemory(), console)
	require.Nil(t, err)

	runner := repo.NewFakeRunner()

	ws, err := workspace.Open(console, storage, runner, "/repo")
	require.Nil(t, err)

	ts := httptest.NewServer(newServer(ws, opts).router())
	t.Cleanup(func() {
		ts.Close()
		_ = ws.Close()
	})

	return ts, runner
}

type response struct {
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Notices []struct {
		Level string `json:"level"`
		Text  string `json:"text"`
	} `json:"notices"`
}

func call(t *testing.T, method string, url string, body string) (int, *response) {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.Nil(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.Nil(t, err)
	defer resp.Body.Close()

	var result response
	_ = json.NewDecoder(resp.Body).Decode(&result)

	return resp.StatusCode, &result
}

func TestStatus(t *testing.T) {
	t.Parallel()

	ts, runner := newTestServer(t, nil)
	runner.OnStdout(" M a.go\nM  b.txt\n", "status", "--porcelain")

	code, resp := call(t, http.MethodGet, ts.URL+"/api/status?filter=*.go", "")
	require.Equal(t, http.StatusOK, code)

	var status workspace.Status
	require.Nil(t, json.Unmarshal(resp.Data, &status))
	require.Len(t, status.WorkingCopy, 1)
	assert.Equal(t, "a.go", status.WorkingCopy[0].Path)
	assert.Empty(t, status.StagingArea)
}

func TestInvalidFilter(t *testing.T) {
	t.Parallel()

	ts, _ := newTestServer(t, nil)

	code, _ := call(t, http.MethodGet, ts.URL+"/api/status?filter=[", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestStageSendsNotices(t *testing.T) {
	t.Parallel()

	ts, runner := newTestServer(t, nil)
	runner.On(&repo.Result{Stderr: "warning: CRLF\n"}, "add", "--", "a.go")

	code, resp := call(t, http.MethodPost, ts.URL+"/api/stage", `{"files": ["a.go"]}`)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, resp.Notices, 1)
	assert.Equal(t, "warning", resp.Notices[0].Level)
	assert.Equal(t, "warning: CRLF", resp.Notices[0].Text)
}

func TestCommandErrors(t *testing.T) {
	t.Parallel()

	ts, runner := newTestServer(t, nil)
	runner.On(&repo.Result{Stderr: "error: pathspec 'x' did not match\n", ExitCode: 1}, "checkout", "--", "x")

	code, resp := call(t, http.MethodPost, ts.URL+"/api/revert", `{"files": ["x"]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "error: pathspec 'x' did not match", resp.Error)
	require.Len(t, resp.Notices, 1)
	assert.Equal(t, "error", resp.Notices[0].Level)
}

func TestCommitWithoutMessage(t *testing.T) {
	t.Parallel()

	ts, runner := newTestServer(t, nil)
	runner.OnStdout("M  b.txt\n", "status", "--porcelain")

	code, resp := call(t, http.MethodPost, ts.URL+"/api/commit", `{"message": ""}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, workspace.ErrEmptyMessage.Error(), resp.Error)
}

func TestReadOnly(t *testing.T) {
	t.Parallel()

	ts, runner := newTestServer(t, &Options{ReadOnly: true})

	code, _ := call(t, http.MethodPost, ts.URL+"/api/stage", `{"files": ["a.go"]}`)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Empty(t, runner.Commands())
}

func TestPatchInvalidMode(t *testing.T) {
	t.Parallel()

	ts, _ := newTestServer(t, nil)

	code, _ := call(t, http.MethodPost, ts.URL+"/api/patch", `{"mode": "explode"}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestUnknownHistorySession(t *testing.T) {
	t.Parallel()

	ts, _ := newTestServer(t, nil)

	code, _ := call(t, http.MethodPost, ts.URL+"/api/history/nope/more", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestTreeBreadcrumb(t *testing.T) {
	t.Parallel()

	ts, runner := newTestServer(t, nil)
	runner.OnStdout("100644 blob "+strings.Repeat("a", 40)+"     120\tmain.go\n", "ls-tree", "-l", "HEAD:lib")

	code, resp := call(t, http.MethodGet, ts.URL+"/api/tree?object=HEAD:lib", "")
	require.Equal(t, http.StatusOK, code)

	var listing struct {
		Entries []struct {
			Name string `json:"name"`
			Path string `json:"path"`
		} `json:"entries"`
		Breadcrumb []tree.StackItem `json:"breadcrumb"`
		Parent     *tree.StackItem  `json:"parent"`
		Git        bool             `json:"git"`
	}
	require.Nil(t, json.Unmarshal(resp.Data, &listing))

	require.Len(t, listing.Entries, 1)
	assert.Equal(t, "main.go", listing.Entries[0].Name)
	assert.Equal(t, "HEAD:lib/main.go", listing.Entries[0].Path)
	assert.Equal(t, []tree.StackItem{
		{Name: "HEAD", Object: "HEAD:", Type: tree.TypeTree},
		{Name: "lib", Object: "HEAD:lib", Type: tree.TypeTree},
	}, listing.Breadcrumb)
	require.NotNil(t, listing.Parent)
	assert.Equal(t, "HEAD:", listing.Parent.Object)
	assert.True(t, listing.Git)
}

func TestBlob(t *testing.T) {
	t.Parallel()

	ts, runner := newTestServer(t, nil)
	runner.OnStdout("hello\n", "cat-file", "-p", "HEAD:README.md")

	resp, err := http.Get(ts.URL + "/api/blob?object=HEAD:README.md")
	require.Nil(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/octet-stream", resp.Header.Get("Content-Type"))

	resp2, err := http.Get(ts.URL + "/api/blob?object=/missing.txt")
	require.Nil(t, err)
	defer resp2.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp2.StatusCode)
}

func TestRepoEndpoint(t *testing.T) {
	t.Parallel()

	ts, runner := newTestServer(t, nil)
	runner.On(&repo.Result{Stdout: "* main\n", Stderr: "careful\n"}, "branch")

	remote := repo.NewHTTPRunner(ts.URL+"/repo", nil)

	result, err := remote.Run(context.Background(), repo.NewRequest("branch"))
	require.Nil(t, err)
	assert.Equal(t, &repo.Result{Stdout: "* main\n", Stderr: "careful\n"}, result)

	result, err = remote.Run(context.Background(), repo.NewRequest("push", "origin"))
	require.Nil(t, err)
	assert.Equal(t, 1, result.ExitCode)
	assert.Equal(t, "Command not supported: git push origin", result.Stderr)
	assert.Equal(t, []string{"branch"}, runner.Commands())
}

func TestRepoEndpointReadOnly(t *testing.T) {
	t.Parallel()

	ts, runner := newTestServer(t, &Options{ReadOnly: true})

	remote := repo.NewHTTPRunner(ts.URL+"/repo", nil)

	result, err := remote.Run(context.Background(), repo.Request{Args: []string{"apply", "--cached"}, Stdin: "x"})
	require.Nil(t, err)
	assert.Equal(t, 1, result.ExitCode)

	for _, args := range [][]string{
		{"branch", "-D", "victim"},
		{"tag", "evil"},
		{"log", "--output=../outside.txt"},
		{"diff", "--output", "../outside.txt"},
	} {
		result, err = remote.Run(context.Background(), repo.NewRequest(args...))
		require.Nil(t, err)
		assert.Equal(t, 1, result.ExitCode, "%v", args)
	}

	_, err = remote.Run(context.Background(), repo.NewRequest("status", "--porcelain"))
	require.Nil(t, err)
	_, err = remote.Run(context.Background(), repo.NewRequest("branch", "--remotes"))
	require.Nil(t, err)
	assert.Equal(t, []string{"status --porcelain", "branch --remotes"}, runner.Commands())
}

func TestRemoteWorkspace(t *testing.T) {
	t.Parallel()

	ts, runner := newTestServer(t, nil)
	runner.OnStdout("?? new.txt\n", "status", "--porcelain")

	console := consoles.NewMemoryConsole()
	storage, err := orm.NewGormStorage(orm.WithSqliteInMemory(), console)
	require.Nil(t, err)

	ws, err := workspace.Open(console, storage, repo.NewHTTPRunner(ts.URL+"/repo", nil), "/remote")
	require.Nil(t, err)
	defer ws.Close()

	status, err := ws.Status(context.Background())
	require.Nil(t, err)
	require.Len(t, status.WorkingCopy, 1)
	assert.Equal(t, "new.txt", status.WorkingCopy[0].Path)
}
