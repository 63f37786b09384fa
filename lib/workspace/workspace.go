package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/pescuma/gitweb/lib/caches"
	"github.com/pescuma/gitweb/lib/config"
	"github.com/pescuma/gitweb/lib/consoles"
	"github.com/pescuma/gitweb/lib/repo"
	"github.com/pescuma/gitweb/lib/storages"
	"github.com/pescuma/gitweb/lib/storages/orm"
	"github.com/pescuma/gitweb/lib/tree"
	"github.com/pescuma/gitweb/lib/utils"
)

type Workspace struct {
	console consoles.Console
	storage storages.Storage
	config  *config.Config
	rootDir string
	runner  repo.Runner
	source  historySource

	// git trees by object id, which never change
	trees *caches.Cache[string, []*tree.Entry]

	historyMutex *sync.Mutex
}

// NewWorkspace opens the workspace database in file and browses the repository at rootDir.
func NewWorkspace(file string, rootDir string) (*Workspace, error) {
	if file == "" {
		local, err := utils.FileExists("./.gitweb")
		if err != nil {
			return nil, err
		}

		if local {
			file = "./.gitweb/gitweb.sqlite"
		} else {
			file = "~/.gitweb/gitweb.sqlite"
		}
	}

	console := consoles.NewStdOutConsole()

	var storage storages.Storage
	var err error
	switch {
	case file == ":memory:":
		storage, err = orm.NewGormStorage(orm.WithSqliteInMemory(), console)

	case strings.HasSuffix(file, ".sqlite"):
		file, err = utils.PathAbs(file)
		if err != nil {
			return nil, err
		}

		err = createWorkspaceDir(file)
		if err != nil {
			return nil, err
		}

		storage, err = orm.NewGormStorage(orm.WithSqlite(file), console)

	default:
		return nil, errors.Errorf("unknown storage type for file %v", file)
	}
	if err != nil {
		return nil, err
	}

	if rootDir == "" {
		rootDir = "."
	}
	rootDir, err = utils.PathAbs(rootDir)
	if err != nil {
		return nil, err
	}

	return Open(console, storage, nil, rootDir)
}

// Open builds a workspace over an existing storage. With a nil runner the
// local git executable is used.
func Open(console consoles.Console, storage storages.Storage, runner repo.Runner, rootDir string) (*Workspace, error) {
	cfg, err := config.Load(storage)
	if err != nil {
		return nil, errors.Wrap(err, "error loading config")
	}

	if runner == nil {
		runner = repo.NewExecRunner(rootDir, cfg.GitOptions())
	}

	result := &Workspace{
		console: console,
		storage: storage,
		config:  cfg,
		rootDir: rootDir,
		runner:  runner,

		trees:        caches.NewCache[string, []*tree.Entry](),
		historyMutex: &sync.Mutex{},
	}
	result.source = &commandSource{w: result}

	return result, nil
}

func createWorkspaceDir(file string) error {
	path := filepath.Dir(file)

	if _, err := os.Stat(path); err != nil {
		fmt.Printf("Creating workspace at %v\n", path)
		err = os.MkdirAll(path, 0o700)
		if err != nil {
			return err
		}
	}

	return nil
}

func (w *Workspace) Close() error {
	return w.storage.Close()
}

func (w *Workspace) Console() consoles.Console {
	return w.console
}

func (w *Workspace) Config() *config.Config {
	return w.config
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

// WithConsole returns a view of the workspace that reports to console.
func (w *Workspace) WithConsole(console consoles.Console) *Workspace {
	result := *w
	result.console = console
	if _, ok := w.source.(*commandSource); ok {
		result.source = &commandSource{w: &result}
	}
	return &result
}

func (w *Workspace) Runner() repo.Runner {
	return w.runner
}

// UseRemote sends every git command to the /repo endpoint at url.
func (w *Workspace) UseRemote(url string) {
	w.runner = repo.NewHTTPRunner(url, nil)
	w.source = &commandSource{w: w}
}

func (w *Workspace) SetConfig(key string, value string) error {
	err := config.Store(w.storage, key, value)
	if err != nil {
		return err
	}

	return w.reloadConfig()
}

func (w *Workspace) UnsetConfig(key string) error {
	err := config.Unset(w.storage, key)
	if err != nil {
		return err
	}

	return w.reloadConfig()
}

// ListConfig returns every known key with its current value, stored or default.
func (w *Workspace) ListConfig() (map[string]string, error) {
	result := map[string]string{}
	for _, k := range config.Keys() {
		v, err := w.config.Get(k)
		if err != nil {
			return nil, err
		}
		result[k] = v
	}
	return result, nil
}

func (w *Workspace) reloadConfig() error {
	cfg, err := config.Load(w.storage)
	if err != nil {
		return err
	}

	w.config = cfg

	if _, ok := w.runner.(*repo.ExecRunner); ok {
		w.runner = repo.NewExecRunner(w.rootDir, cfg.GitOptions())
	}

	return nil
}

func (w *Workspace) git(ctx context.Context, args ...string) (string, error) {
	return repo.Git(ctx, w.runner, w.console, args...)
}

// refresh drops anything cached about the repository after a mutation.
func (w *Workspace) refresh() {
	if r, ok := w.source.(interface{ Refresh() }); ok {
		r.Refresh()
	}
}
