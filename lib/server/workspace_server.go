package server

import (
	"github.com/gin-gonic/gin"

	"github.com/pescuma/gitweb/lib/workspace"
)

type StatusParams struct {
	Filter string `form:"filter"`
}

type FilesParams struct {
	Files []string `json:"files" binding:"required"`
}

type CommitParams struct {
	Message string `json:"message"`
	Amend   bool   `json:"amend"`
}

func (s *server) initWorkspace(r *gin.Engine) {
	r.GET("/api/status", getP[StatusParams](s, s.status))
	r.POST("/api/stage", mutateP[FilesParams](s, s.stage))
	r.POST("/api/unstage", mutateP[FilesParams](s, s.unstage))
	r.POST("/api/revert", mutateP[FilesParams](s, s.revert))
	r.GET("/api/commit/message", getP[noParams](s, s.lastMessage))
	r.POST("/api/commit", mutateP[CommitParams](s, s.commit))
}

func (s *server) status(ws *workspace.Workspace, c *gin.Context, params *StatusParams) (any, error) {
	filter, err := parseFilter(params.Filter)
	if err != nil {
		return nil, err
	}

	status, err := ws.Status(c.Request.Context())
	if err != nil {
		return nil, err
	}

	return status.Filter(filter), nil
}

func (s *server) stage(ws *workspace.Workspace, c *gin.Context, params *FilesParams) (any, error) {
	return ws.Stage(c.Request.Context(), params.Files...)
}

func (s *server) unstage(ws *workspace.Workspace, c *gin.Context, params *FilesParams) (any, error) {
	return ws.Unstage(c.Request.Context(), params.Files...)
}

func (s *server) revert(ws *workspace.Workspace, c *gin.Context, params *FilesParams) (any, error) {
	return ws.Revert(c.Request.Context(), params.Files...)
}

func (s *server) lastMessage(ws *workspace.Workspace, c *gin.Context, _ *noParams) (any, error) {
	msg, err := ws.LastMessage(c.Request.Context())
	if err != nil {
		return nil, err
	}

	return gin.H{"message": msg}, nil
}

func (s *server) commit(ws *workspace.Workspace, c *gin.Context, params *CommitParams) (any, error) {
	return ws.Commit(c.Request.Context(), params.Message, params.Amend)
}
