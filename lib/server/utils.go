package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/pescuma/gitweb/lib/consoles"
	"github.com/pescuma/gitweb/lib/filters"
	"github.com/pescuma/gitweb/lib/patch"
	"github.com/pescuma/gitweb/lib/repo"
	"github.com/pescuma/gitweb/lib/storages"
	"github.com/pescuma/gitweb/lib/workspace"
)

var errorReadOnly = errors.New("server is read only")

// requestError is a problem with the request parameters.
type requestError struct {
	error
}

func badRequest(err error) error {
	if err == nil {
		return nil
	}
	return &requestError{err}
}

type handler[P any] func(ws *workspace.Workspace, c *gin.Context, params *P) (any, error)

type noParams struct{}

func sendError(c *gin.Context, err error, notices []consoles.Message) {
	var ce *repo.CommandError
	var re *requestError

	switch {
	case errors.Is(err, storages.ErrNotFound):
		c.String(http.StatusNotFound, "")
	case errors.As(err, &ce):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":    err.Error(),
			"exitCode": ce.ExitCode,
			"notices":  toNotices(notices),
		})
	case errors.Is(err, workspace.ErrNothingStaged),
		errors.Is(err, workspace.ErrEmptyMessage),
		errors.Is(err, patch.ErrEmptySelection),
		errors.Is(err, repo.ErrUnsupported),
		errors.As(err, &re):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, errorReadOnly):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func toNotices(messages []consoles.Message) []gin.H {
	return lo.Map(messages, func(m consoles.Message, _ int) gin.H {
		return gin.H{
			"level": m.Level.String(),
			"text":  m.Text,
		}
	})
}

// run calls f with a workspace that collects the notices of this request,
// and sends them with the result.
func (s *server) run(c *gin.Context, f func(ws *workspace.Workspace) (any, error)) {
	console := consoles.NewMemoryConsole()

	result, err := f(s.ws.WithConsole(console))
	if err != nil {
		sendError(c, err, console.Notices())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":    result,
		"notices": toNotices(console.Notices()),
	})
}

func getP[P any](s *server, f handler[P]) func(c *gin.Context) {
	return func(c *gin.Context) {
		var params P

		err := c.ShouldBindUri(&params)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		err = c.ShouldBindQuery(&params)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		s.run(c, func(ws *workspace.Workspace) (any, error) {
			return f(ws, c, &params)
		})
	}
}

func postP[P any](s *server, f handler[P]) func(c *gin.Context) {
	return func(c *gin.Context) {
		var params P

		err := c.ShouldBindUri(&params)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if c.Request.ContentLength != 0 {
			err = c.ShouldBindJSON(&params)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}

		s.run(c, func(ws *workspace.Workspace) (any, error) {
			return f(ws, c, &params)
		})
	}
}

// mutateP is postP for endpoints that change the repository.
func mutateP[P any](s *server, f handler[P]) func(c *gin.Context) {
	post := postP(s, f)

	return func(c *gin.Context) {
		if s.opts.ReadOnly {
			sendError(c, errorReadOnly, nil)
			return
		}

		post(c)
	}
}

func parseFilter(rule string) (filters.PathFilter, error) {
	if rule == "" {
		return nil, nil
	}

	result, err := filters.ParsePathFilter(rule)
	return result, badRequest(err)
}
