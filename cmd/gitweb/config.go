package main

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
)

type ConfigSetCmd struct {
	Config string `arg:"" help:"Configuration name to change."`
	Value  string `arg:"" help:"Configuration value to set."`
}

func (c *ConfigSetCmd) Run(ctx *context) error {
	fmt.Printf("Setting '%v' = '%v'\n", c.Config, c.Value)

	return ctx.ws.SetConfig(c.Config, c.Value)
}

type ConfigListCmd struct {
}

func (c *ConfigListCmd) Run(ctx *context) error {
	values, err := ctx.ws.ListConfig()
	if err != nil {
		return err
	}

	keys := lo.Keys(values)
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Printf("%v = %v\n", k, values[k])
	}

	return nil
}

type ConfigUnsetCmd struct {
	Config string `arg:"" help:"Configuration name to reset."`
}

func (c *ConfigUnsetCmd) Run(ctx *context) error {
	fmt.Printf("Removing '%v'\n", c.Config)

	return ctx.ws.UnsetConfig(c.Config)
}
