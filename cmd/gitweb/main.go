package main

import (
	stdcontext "context"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	"github.com/pescuma/gitweb/lib/workspace"
)

var cli struct {
	Workspace string `short:"w" help:"Workspace to store data. Default is ./.gitweb or ~/.gitweb if that does not exist." type:"path"`
	Repo      string `short:"r" help:"Repository to browse. Default is the current folder." type:"path"`
	Remote    string `help:"URL of the /repo endpoint of a gitweb server to use instead of a local repository."`
	GoGit     bool   `name:"go-git" help:"Read history with go-git instead of running git log."`

	Log   LogCmd   `cmd:"" help:"Show the history of a ref, with the commit graph lanes."`
	Graph GraphCmd `cmd:"" help:"Draw the commit graph of a ref as SVG."`
	Diff  DiffCmd  `cmd:"" help:"Show a diff of the working copy, the staging area or a commit."`
	Files FilesCmd `cmd:"" help:"List the files changed by a commit."`

	Status  StatusCmd  `cmd:"" help:"Show working copy and staging area files."`
	Stage   StageCmd   `cmd:"" help:"Add files to the staging area."`
	Unstage UnstageCmd `cmd:"" help:"Remove files from the staging area."`
	Revert  RevertCmd  `cmd:"" help:"Discard working copy changes of files."`
	Lines   LinesCmd   `cmd:"" help:"Stage, unstage or discard some lines of a file diff."`
	Commit  CommitCmd  `cmd:"" help:"Commit the staging area."`

	Refs RefsCmd `cmd:"" help:"List branches, remote branches and tags."`
	Tree TreeCmd `cmd:"" help:"List a folder of the working copy or a git tree."`
	Cat  CatCmd  `cmd:"" help:"Print a file of the working copy or a git blob."`

	Serve ServeCmd  `cmd:"" help:"Serve the JSON API and the /repo command endpoint."`
	Run   RunGitCmd `cmd:"" help:"Run a git command in the repository."`

	Config struct {
		Set   ConfigSetCmd   `cmd:"" help:"Set configuration parameters."`
		List  ConfigListCmd  `cmd:"" help:"List configuration parameters."`
		Unset ConfigUnsetCmd `cmd:"" help:"Go back to the default value of a parameter."`
	} `cmd:""`
}

type context struct {
	ctx stdcontext.Context
	ws  *workspace.Workspace
}

func main() {
	ctx := kong.Parse(&cli, kong.ShortUsageOnError())

	ws, err := workspace.NewWorkspace(cli.Workspace, cli.Repo)
	ctx.FatalIfErrorf(err)
	defer ws.Close()

	if cli.Remote != "" {
		ws.UseRemote(cli.Remote)
	} else if cli.GoGit {
		ws.UseGoGit()
	}

	c, cancel := signal.NotifyContext(stdcontext.Background(), os.Interrupt)
	defer cancel()

	err = ctx.Run(&context{
		ctx: c,
		ws:  ws,
	})
	ctx.FatalIfErrorf(err)
}
