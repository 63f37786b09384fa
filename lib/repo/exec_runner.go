package repo

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/abiosoft/lineprefix"
	"github.com/pkg/errors"

	"github.com/pescuma/gitweb/lib/consoles"
)

type Options struct {
	// Git is the git executable.
	Git         string
	DefaultArgs []string
	AuthorName  string
	AuthorEmail string
}

func NewOptions() *Options {
	return &Options{
		Git:         "git",
		DefaultArgs: []string{"-c", "color.ui=false", "-c", "core.quotepath=false"},
	}
}

// ExecRunner runs the local git executable inside the repository root.
type ExecRunner struct {
	rootDir string
	opts    *Options
}

func NewExecRunner(rootDir string, opts *Options) *ExecRunner {
	if opts == nil {
		opts = NewOptions()
	}

	return &ExecRunner{
		rootDir: rootDir,
		opts:    opts,
	}
}

func (r *ExecRunner) RootDir() string {
	return r.rootDir
}

func (r *ExecRunner) Run(ctx context.Context, req Request) (*Result, error) {
	if err := Supported(req.Args); err != nil {
		return UnsupportedResult(req), nil
	}

	cmd := r.command(ctx, req.Args)
	if req.Stdin != "" {
		cmd.Stdin = strings.NewReader(req.Stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := &Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	default:
		return nil, errors.Wrapf(err, "error starting %v", r.opts.Git)
	}

	return result, nil
}

// Stream runs any git command with the console prefix in front of each
// output line. The output is not captured.
func (r *ExecRunner) Stream(ctx context.Context, console consoles.Console, stdin io.Reader, args ...string) error {
	cmd := r.command(ctx, args)

	console.Printf("Executing 'git %v'\n", joinArgs(args))

	prefix := lineprefix.PrefixFunc(func() string {
		return console.Prefix()
	})

	cmd.Stdin = stdin
	cmd.Stdout = lineprefix.New(lineprefix.Writer(os.Stdout), prefix)
	cmd.Stderr = lineprefix.New(lineprefix.Writer(os.Stderr), prefix)

	err := cmd.Run()

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &CommandError{Args: args, ExitCode: exitErr.ExitCode()}
	}
	return err
}

func (r *ExecRunner) command(ctx context.Context, args []string) *exec.Cmd {
	all := make([]string, 0, len(r.opts.DefaultArgs)+len(args))
	all = append(all, r.opts.DefaultArgs...)
	all = append(all, args...)

	cmd := exec.CommandContext(ctx, r.opts.Git, all...)
	cmd.Dir = r.rootDir
	cmd.Env = append(os.Environ(), r.env()...)
	return cmd
}

func (r *ExecRunner) env() []string {
	var result []string
	if r.opts.AuthorName != "" {
		result = append(result,
			"GIT_AUTHOR_NAME="+r.opts.AuthorName,
			"GIT_COMMITTER_NAME="+r.opts.AuthorName)
	}
	if r.opts.AuthorEmail != "" {
		result = append(result,
			"GIT_AUTHOR_EMAIL="+r.opts.AuthorEmail,
			"GIT_COMMITTER_EMAIL="+r.opts.AuthorEmail)
	}
	return result
}

func joinArgs(args []string) string {
	return strings.Join(args, " ")
}
