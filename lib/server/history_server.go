package server

import (
	"github.com/gin-gonic/gin"

	"github.com/pescuma/gitweb/lib/model"
	"github.com/pescuma/gitweb/lib/workspace"
)

type HistoryParams struct {
	Ref string `form:"ref"`
}

type SessionParams struct {
	Session model.UUID `uri:"session" binding:"required"`
}

func (s *server) initHistory(r *gin.Engine) {
	r.GET("/api/history", getP[HistoryParams](s, s.historyOpen))
	r.POST("/api/history/:session/more", postP[SessionParams](s, s.historyMore))
	r.DELETE("/api/history/:session", postP[SessionParams](s, s.historyClose))
}

func (s *server) historyOpen(ws *workspace.Workspace, c *gin.Context, params *HistoryParams) (any, error) {
	return ws.OpenHistory(c.Request.Context(), params.Ref)
}

func (s *server) historyMore(ws *workspace.Workspace, c *gin.Context, params *SessionParams) (any, error) {
	return ws.MoreHistory(c.Request.Context(), params.Session)
}

func (s *server) historyClose(ws *workspace.Workspace, _ *gin.Context, params *SessionParams) (any, error) {
	err := ws.CloseHistory(params.Session)
	if err != nil {
		return nil, err
	}

	return gin.H{"closed": params.Session}, nil
}
