package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/aquilax/truncate"
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"

	"github.com/pescuma/gitweb/lib/graph"
	"github.com/pescuma/gitweb/lib/model"
	"github.com/pescuma/gitweb/lib/workspace"
)

type LogCmd struct {
	Ref     string `arg:"" optional:"" help:"Ref to show. Default is HEAD."`
	All     bool   `short:"a" help:"Load every page instead of only the first one."`
	Subject int    `default:"72" help:"Maximum subject length."`
}

func (c *LogCmd) Run(ctx *context) error {
	show := func(page *workspace.HistoryPage) error {
		for i, commit := range page.Commits {
			fmt.Println(formatCommit(commit, page.Graph.Rows[i], c.Subject))
		}
		return nil
	}

	if c.All {
		return ctx.ws.WalkHistory(ctx.ctx, c.Ref, show)
	}

	page, err := ctx.ws.OpenHistory(ctx.ctx, c.Ref)
	if err != nil {
		return err
	}
	defer ctx.ws.CloseHistory(page.Session)

	err = show(page)
	if err != nil {
		return err
	}

	if page.HasMore {
		fmt.Printf("... use --all to show older commits\n")
	}

	return nil
}

func formatCommit(commit *model.Commit, row graph.Row, maxSubject int) string {
	lanes := make([]string, row.Lanes())
	for i := range lanes {
		lanes[i] = "|"
	}
	lanes[row.Lane] = "*"

	refs := ""
	if len(commit.Refs) > 0 {
		refs = " (" + strings.Join(lo.Map(commit.Refs, func(r model.Ref, _ int) string { return r.Name }), ", ") + ")"
	}

	return fmt.Sprintf("%v %v %v%v  %v, %v",
		strings.Join(lanes, " "),
		commit.AbbrevID(),
		truncate.Truncate(commit.Subject(), maxSubject, truncate.DEFAULT_OMISSION, truncate.PositionEnd),
		refs,
		commit.Author.Name,
		humanize.Time(commit.Author.Date))
}

type GraphCmd struct {
	Ref    string `arg:"" optional:"" help:"Ref to draw. Default is HEAD."`
	Output string `short:"o" help:"File to write. Default is stdout." type:"path"`
}

func (c *GraphCmd) Run(ctx *context) error {
	var rows []graph.Row
	var edges []graph.Edge
	var last *graph.Page

	err := ctx.ws.WalkHistory(ctx.ctx, c.Ref, func(page *workspace.HistoryPage) error {
		rows = append(rows, page.Graph.Rows...)
		edges = append(edges, page.Graph.Edges...)
		last = page.Graph
		return nil
	})
	if err != nil {
		return err
	}

	if last == nil {
		return nil
	}

	svg := graph.RenderSVG(last.Width, last.Height, rows, append(edges, last.Open...))

	if c.Output == "" {
		fmt.Print(svg)
		return nil
	}

	fmt.Printf("Writing %v\n", c.Output)
	return os.WriteFile(c.Output, []byte(svg), 0o644)
}
