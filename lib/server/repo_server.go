package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pescuma/gitweb/lib/repo"
)

func (s *server) initRepo(r *gin.Engine) {
	r.POST("/repo", s.repoCommand)
}

// repoCommand runs a git command for a remote HTTPRunner. The answer is
// always 200, with the exit code and the stderr size in the headers.
func (s *server) repoCommand(c *gin.Context) {
	var req repo.Request

	err := c.ShouldBindJSON(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var result *repo.Result
	switch {
	case repo.Supported(req.Args) != nil:
		result = repo.UnsupportedResult(req)
	case s.opts.ReadOnly && !repo.ReadOnly(req.Args):
		result = repo.UnsupportedResult(req)
	default:
		result, err = s.ws.Runner().Run(c.Request.Context(), req)
		if err != nil {
			sendError(c, err, nil)
			return
		}
	}

	body := repo.EncodeResult(c.Writer.Header(), result)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", body)
}
