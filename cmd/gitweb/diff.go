package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aquilax/truncate"
	"github.com/pkg/errors"

	"github.com/pescuma/gitweb/lib/diffview"
	"github.com/pescuma/gitweb/lib/patch"
	"github.com/pescuma/gitweb/lib/workspace"
)

type diffFlags struct {
	Context          int  `short:"U" help:"Lines of context. Default comes from the diff.context config."`
	Complete         bool `help:"Show the complete files."`
	IgnoreWhitespace bool `short:"b" help:"Ignore whitespace changes."`
}

func (f *diffFlags) options(ws *workspace.Workspace) *diffview.Options {
	result := ws.Config().DiffOptions()
	if f.Context > 0 {
		result.Context = f.Context
	}
	result.Complete = f.Complete
	result.IgnoreWhitespace = f.IgnoreWhitespace
	return result
}

type DiffCmd struct {
	diffFlags

	Files  []string `arg:"" optional:"" help:"Files to diff."`
	Staged bool     `short:"s" help:"Diff the staging area instead of the working copy."`
	Commit string   `short:"c" help:"Show the changes of a commit."`
	Split  bool     `help:"Show removed and added lines side by side, with row numbers for the lines command."`
	Width  int      `default:"80" help:"Column width for --split."`
}

func (c *DiffCmd) Run(ctx *context) error {
	diff, err := ctx.ws.Diff(ctx.ctx, &workspace.DiffRequest{
		Commit:  c.Commit,
		Staged:  c.Staged,
		Files:   c.Files,
		Options: c.options(ctx.ws),
	})
	if err != nil {
		return err
	}

	if c.Split {
		for row := 0; row < diff.View.Len(); row++ {
			fmt.Printf("%5v %v | %v\n", row,
				column(diff.View.Left[row], c.Width),
				column(diff.View.Right[row], c.Width))
		}
	} else {
		for _, line := range diff.Lines {
			fmt.Printf("%v %v %v\n", number(line.OldNumber), number(line.NewNumber), line.Text)
		}
	}

	fmt.Printf("\n%v added, %v removed, %v modified\n", diff.Stats.Added, diff.Stats.Deleted, diff.Stats.Modified)

	return nil
}

func column(line diffview.Line, width int) string {
	text := truncate.Truncate(line.Text, width, truncate.DEFAULT_OMISSION, truncate.PositionEnd)
	return text + strings.Repeat(" ", max(width-len([]rune(text)), 0))
}

func number(n int) string {
	if n == 0 {
		return "    "
	}
	return fmt.Sprintf("%4v", n)
}

type FilesCmd struct {
	diffFlags

	Commit string `arg:"" help:"Commit to explore."`
	File   string `arg:"" optional:"" help:"Show the diff of this file only."`
}

func (c *FilesCmd) Run(ctx *context) error {
	explorer, err := ctx.ws.Explore(ctx.ctx, c.Commit, c.options(ctx.ws))
	if err != nil {
		return err
	}

	if c.File == "" {
		for _, line := range explorer.Header {
			fmt.Println(line)
		}
		for _, s := range explorer.Sections {
			if s.LeftName != s.RightName {
				fmt.Printf("%v -> %v\n", s.LeftName, s.RightName)
			} else {
				fmt.Println(s.RightName)
			}
		}
		return nil
	}

	section := explorer.Find(c.File)
	if section == nil {
		return errors.Errorf("%v was not changed by %v", c.File, c.Commit)
	}

	fmt.Println(section.Diff())
	return nil
}

type LinesCmd struct {
	diffFlags

	Mode string   `arg:"" enum:"stage,unstage,discard" help:"What to do with the lines: stage, unstage or discard."`
	File string   `arg:"" help:"File with the lines."`
	Rows []string `arg:"" help:"Rows of diff --split. Use L<row> or R<row> for only one side."`
}

func (c *LinesCmd) Run(ctx *context) error {
	mode, err := patch.ParseMode(c.Mode)
	if err != nil {
		return err
	}

	cells, err := parseCells(c.Rows)
	if err != nil {
		return err
	}

	status, err := ctx.ws.ApplyLines(ctx.ctx, &workspace.DiffRequest{
		Staged:  mode == patch.ModeUnstage,
		Files:   []string{c.File},
		Options: c.options(ctx.ws),
	}, cells, mode)
	if err != nil {
		return err
	}

	printStatus(status)
	return nil
}

func parseCells(rows []string) ([]patch.Cell, error) {
	var result []patch.Cell

	for _, r := range rows {
		columns := []diffview.Column{diffview.Left, diffview.Right}
		switch {
		case strings.HasPrefix(r, "L"):
			columns = columns[:1]
			r = r[1:]
		case strings.HasPrefix(r, "R"):
			columns = columns[1:]
			r = r[1:]
		}

		row, err := strconv.Atoi(r)
		if err != nil || row < 0 {
			return nil, errors.Errorf("invalid row: %v", r)
		}

		for _, col := range columns {
			result = append(result, patch.Cell{Column: col, Row: row})
		}
	}

	return result, nil
}
