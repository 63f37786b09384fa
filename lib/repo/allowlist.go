package repo

import (
	"strings"

	"github.com/hashicorp/go-set/v2"
	"github.com/pkg/errors"
)

var supportedCommands = set.From([]string{
	"add",
	"apply",
	"branch",
	"checkout",
	"cat-file",
	"commit",
	"diff",
	"log",
	"ls-tree",
	"reset",
	"rm",
	"show",
	"stage",
	"status",
	"tag",
	"unstage",
})

// Supported checks the git subcommand, which is always the first argument.
func Supported(args []string) error {
	if len(args) == 0 || !supportedCommands.Contains(args[0]) {
		return errors.Wrapf(ErrUnsupported, "git %v", joinArgs(args))
	}
	return nil
}

var readOnlyCommands = set.From([]string{
	"branch",
	"cat-file",
	"diff",
	"log",
	"ls-tree",
	"show",
	"status",
	"tag",
})

// branch and tag create or delete refs unless they are listing
var listingFlags = set.From([]string{
	"-a", "--all",
	"-r", "--remotes",
	"-l", "--list",
	"-v", "-vv", "--verbose",
	"-n",
	"-i", "--ignore-case",
	"--no-color", "--color=never",
	"--no-column", "--show-current",
	"--contains", "--no-contains",
	"--merged", "--no-merged",
	"--points-at",
	"--sort", "--format",
})

// ReadOnly reports whether the command can not change the repository or
// write files.
func ReadOnly(args []string) bool {
	if len(args) == 0 || !readOnlyCommands.Contains(args[0]) {
		return false
	}

	for _, arg := range args[1:] {
		if arg == "--" {
			break
		}
		if strings.HasPrefix(arg, "--output") || strings.HasPrefix(arg, "-o") {
			return false
		}
	}

	if args[0] == "branch" || args[0] == "tag" {
		return isListing(args[1:])
	}

	return true
}

func isListing(args []string) bool {
	list := false
	positional := false

	for _, arg := range args {
		switch {
		case !strings.HasPrefix(arg, "-"):
			positional = true
		case listingFlags.Contains(arg) || listingFlags.Contains(strings.SplitN(arg, "=", 2)[0]):
			if arg == "-l" || arg == "--list" {
				list = true
			}
		case strings.HasPrefix(arg, "-n") && len(arg) > 2:
			// tag -n<lines>
		default:
			return false
		}
	}

	return list || !positional
}

func UnsupportedResult(req Request) *Result {
	return &Result{
		Stderr:   "Command not supported: " + req.String(),
		ExitCode: 1,
	}
}
