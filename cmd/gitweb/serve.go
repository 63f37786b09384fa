package main

import (
	"github.com/pescuma/gitweb/lib/server"
)

type ServeCmd struct {
	Port     uint `default:"2427" help:"Port to listen to."`
	ReadOnly bool `help:"Refuse the requests that change the repository."`
}

func (c *ServeCmd) Run(ctx *context) error {
	return server.Run(ctx.ws, &server.Options{
		Port:     c.Port,
		ReadOnly: c.ReadOnly,
	})
}
