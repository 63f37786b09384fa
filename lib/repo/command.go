package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/pescuma/gitweb/lib/consoles"
)

var ErrUnsupported = errors.New("command not supported")

type Request struct {
	Args  []string `json:"args"`
	Stdin string   `json:"stdin,omitempty"`
}

func NewRequest(args ...string) Request {
	return Request{Args: args}
}

func (r Request) String() string {
	return "git " + strings.Join(r.Args, " ")
}

type Result struct {
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
	ExitCode int    `json:"exitCode"`
}

// Runner executes git commands against one repository.
type Runner interface {
	Run(ctx context.Context, req Request) (*Result, error)
}

// CommandError is a command that finished with a non-zero exit code.
type CommandError struct {
	Args     []string
	ExitCode int
	Stderr   string
}

func (e *CommandError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return fmt.Sprintf("git %v failed with exit code %v", strings.Join(e.Args, " "), e.ExitCode)
	}
	return msg
}

// Check turns a result into its output. A zero exit code with something on
// stderr is a warning, and the output is still valid. Any other exit code
// is a *CommandError and the output is dropped.
func Check(req Request, result *Result) (stdout string, warning string, err error) {
	if result.ExitCode != 0 {
		return "", "", &CommandError{
			Args:     req.Args,
			ExitCode: result.ExitCode,
			Stderr:   result.Stderr,
		}
	}

	return result.Stdout, strings.TrimSpace(result.Stderr), nil
}

// Execute runs the command, reports warnings to the console and returns stdout.
func Execute(ctx context.Context, runner Runner, console consoles.Console, req Request) (string, error) {
	result, err := runner.Run(ctx, req)
	if err != nil {
		return "", errors.Wrapf(err, "error running %v", req)
	}

	stdout, warning, err := Check(req, result)
	if err != nil {
		console.Errorf("%v\n", err)
		return "", err
	}

	if warning != "" {
		console.Warnf("%v\n", warning)
	}

	return stdout, nil
}

// Git is a shortcut for Execute without stdin.
func Git(ctx context.Context, runner Runner, console consoles.Console, args ...string) (string, error) {
	return Execute(ctx, runner, console, NewRequest(args...))
}

func IsCommandError(err error) bool {
	var ce *CommandError
	return errors.As(err, &ce)
}
