package main

import (
	"fmt"

	"github.com/pescuma/gitweb/lib/filters"
	"github.com/pescuma/gitweb/lib/workspace"
)

type StatusCmd struct {
	Filter string `short:"f" help:"Only show files matching this glob."`
}

func (c *StatusCmd) Run(ctx *context) error {
	filter, err := filters.ParsePathFilter(c.Filter)
	if err != nil {
		return err
	}

	status, err := ctx.ws.Status(ctx.ctx)
	if err != nil {
		return err
	}

	printStatus(status.Filter(filter))
	return nil
}

func printStatus(status *workspace.Status) {
	fmt.Printf("Staging area:\n")
	for _, f := range status.StagingArea {
		fmt.Printf("  %v %v\n", f.Status, f.Line)
	}

	fmt.Printf("Working copy:\n")
	for _, f := range status.WorkingCopy {
		fmt.Printf("  %v %v\n", f.Status, f.Line)
	}
}

type StageCmd struct {
	Files []string `arg:"" help:"Files to stage."`
}

func (c *StageCmd) Run(ctx *context) error {
	status, err := ctx.ws.Stage(ctx.ctx, c.Files...)
	if err != nil {
		return err
	}

	printStatus(status)
	return nil
}

type UnstageCmd struct {
	Files []string `arg:"" help:"Files to unstage."`
}

func (c *UnstageCmd) Run(ctx *context) error {
	status, err := ctx.ws.Unstage(ctx.ctx, c.Files...)
	if err != nil {
		return err
	}

	printStatus(status)
	return nil
}

type RevertCmd struct {
	Files []string `arg:"" help:"Files to revert."`
}

func (c *RevertCmd) Run(ctx *context) error {
	status, err := ctx.ws.Revert(ctx.ctx, c.Files...)
	if err != nil {
		return err
	}

	printStatus(status)
	return nil
}

type CommitCmd struct {
	Message string `short:"m" help:"Commit message. When amending, the default is the last message."`
	Amend   bool   `help:"Amend the last commit."`
}

func (c *CommitCmd) Run(ctx *context) error {
	message := c.Message
	if message == "" && c.Amend {
		last, err := ctx.ws.LastMessage(ctx.ctx)
		if err != nil {
			return err
		}
		message = last
	}

	status, err := ctx.ws.Commit(ctx.ctx, message, c.Amend)
	if err != nil {
		return err
	}

	printStatus(status)
	return nil
}
