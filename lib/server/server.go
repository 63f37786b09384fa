package server

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/pescuma/gitweb/lib/workspace"
)

type Options struct {
	Port uint
	// ReadOnly disables the endpoints that change the repository.
	ReadOnly bool
}

func Run(ws *workspace.Workspace, opts *Options) error {
	s := newServer(ws, opts)

	ws.Console().Printf("Serving %v\n", ws.RootDir())
	ws.Console().Printf("Starting server on port %v...\n", s.opts.Port)

	return s.router().Run(fmt.Sprintf(":%v", s.opts.Port))
}

type server struct {
	opts *Options
	ws   *workspace.Workspace
}

func newServer(ws *workspace.Workspace, opts *Options) *server {
	if opts == nil {
		opts = &Options{}
	}
	if opts.Port == 0 {
		opts.Port = 2427
	}

	return &server{
		opts: opts,
		ws:   ws,
	}
}

func (s *server) router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	s.initHistory(r)
	s.initDiff(r)
	s.initWorkspace(r)
	s.initBrowse(r)
	s.initRepo(r)

	return r
}
