package main

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/pescuma/gitweb/lib/filters"
	"github.com/pescuma/gitweb/lib/refs"
	"github.com/pescuma/gitweb/lib/tree"
)

type RefsCmd struct {
	Short bool `short:"s" help:"Only show the first items of each section."`
}

func (c *RefsCmd) Run(ctx *context) error {
	sections, err := ctx.ws.Refs(ctx.ctx)
	if err != nil {
		return err
	}

	for _, s := range sections {
		fmt.Printf("%v:\n", s.Title)

		items := s.Items
		more := false
		if c.Short {
			items, more = s.Visible()
		}

		for _, item := range items {
			fmt.Printf("  %v %v\n", currentMarker(item), item.Name)
		}
		if more {
			fmt.Printf("  ... %v more\n", len(s.Items)-len(items))
		}
	}

	return nil
}

func currentMarker(item refs.Item) string {
	if item.Current {
		return "*"
	}
	return " "
}

type TreeCmd struct {
	Object string `arg:"" optional:"" help:"Git tree (like HEAD or HEAD:lib) or local folder starting with /. Default is the working copy root."`
	Filter string `short:"f" help:"Only show files matching this glob."`
}

func (c *TreeCmd) Run(ctx *context) error {
	filter, err := filters.ParsePathFilter(c.Filter)
	if err != nil {
		return err
	}

	entries, err := ctx.ws.Tree(ctx.ctx, c.Object, filter)
	if err != nil {
		return err
	}

	breadcrumb := tree.StackFor(c.Object, tree.TypeTree).Items()
	fmt.Println(strings.Join(lo.Map(breadcrumb, func(i tree.StackItem, _ int) string { return i.Name }), " / "))

	for _, e := range entries {
		name := e.Name
		if e.IsTree() {
			name += "/"
		}

		fmt.Printf("%06o %-4v %10v  %-12v %v\n", e.Mode, e.Type, e.FormattedSize(), e.Language(), name)
	}

	return nil
}

type CatCmd struct {
	Object string `arg:"" help:"Git blob (like HEAD:README.md) or local file starting with /."`
}

func (c *CatCmd) Run(ctx *context) error {
	data, err := ctx.ws.Blob(ctx.ctx, c.Object)
	if err != nil {
		return err
	}

	fmt.Print(data)
	return nil
}
