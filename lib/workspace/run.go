package workspace

import (
	"context"
	"os"
	"strings"

	"github.com/pescuma/gitweb/lib/repo"
)

// RunGit runs any git command in the repository. Locally the output goes
// straight to the terminal; remote commands must be allowed by the server.
func (w *Workspace) RunGit(ctx context.Context, args ...string) error {
	if r, ok := w.runner.(*repo.ExecRunner); ok {
		return r.Stream(ctx, w.console, os.Stdin, args...)
	}

	out, err := w.git(ctx, args...)
	if err != nil {
		return err
	}

	for _, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
		w.console.Printf("%v\n", line)
	}

	return nil
}
