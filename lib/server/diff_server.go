package server

import (
	"github.com/gin-gonic/gin"

	"github.com/pescuma/gitweb/lib/patch"
	"github.com/pescuma/gitweb/lib/workspace"
)

type ExploreParams struct {
	Commit           string `uri:"commit" binding:"required"`
	Context          int    `form:"context"`
	Complete         bool   `form:"complete"`
	IgnoreWhitespace bool   `form:"ignoreWhitespace"`
}

type PatchParams struct {
	Diff  workspace.DiffRequest `json:"diff"`
	Cells []patch.Cell          `json:"cells"`
	Mode  string                `json:"mode"`
}

func (s *server) initDiff(r *gin.Engine) {
	r.POST("/api/diff", postP[workspace.DiffRequest](s, s.diff))
	r.GET("/api/explore/:commit", getP[ExploreParams](s, s.explore))
	r.POST("/api/patch", mutateP[PatchParams](s, s.patch))
}

func (s *server) diff(ws *workspace.Workspace, c *gin.Context, params *workspace.DiffRequest) (any, error) {
	return ws.Diff(c.Request.Context(), params)
}

func (s *server) explore(ws *workspace.Workspace, c *gin.Context, params *ExploreParams) (any, error) {
	opts := ws.Config().DiffOptions()
	if params.Context > 0 {
		opts.Context = params.Context
	}
	opts.Complete = params.Complete
	opts.IgnoreWhitespace = params.IgnoreWhitespace

	return ws.Explore(c.Request.Context(), params.Commit, opts)
}

func (s *server) patch(ws *workspace.Workspace, c *gin.Context, params *PatchParams) (any, error) {
	mode, err := patch.ParseMode(params.Mode)
	if err != nil {
		return nil, badRequest(err)
	}

	return ws.ApplyLines(c.Request.Context(), &params.Diff, params.Cells, mode)
}
