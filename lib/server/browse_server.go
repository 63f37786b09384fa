package server

import (
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/pescuma/gitweb/lib/tree"
	"github.com/pescuma/gitweb/lib/workspace"
)

type TreeParams struct {
	Object string `form:"object"`
	Filter string `form:"filter"`
}

type BlobParams struct {
	Object string `form:"object" binding:"required"`
}

func (s *server) initBrowse(r *gin.Engine) {
	r.GET("/api/refs", getP[noParams](s, s.refs))
	r.GET("/api/tree", getP[TreeParams](s, s.tree))
	r.GET("/api/blob", s.blob)
}

func (s *server) refs(ws *workspace.Workspace, c *gin.Context, _ *noParams) (any, error) {
	return ws.Refs(c.Request.Context())
}

func (s *server) tree(ws *workspace.Workspace, c *gin.Context, params *TreeParams) (any, error) {
	filter, err := parseFilter(params.Filter)
	if err != nil {
		return nil, err
	}

	entries, err := ws.Tree(c.Request.Context(), params.Object, filter)
	if err != nil {
		return nil, err
	}

	result := make([]gin.H, 0, len(entries))
	for _, e := range entries {
		result = append(result, toEntry(params.Object, e))
	}

	stack := tree.StackFor(params.Object, tree.TypeTree)

	return gin.H{
		"entries":    result,
		"breadcrumb": stack.Items(),
		"parent":     stack.Parent(),
		"git":        stack.IsGit(),
	}, nil
}

func toEntry(folder string, e *tree.Entry) gin.H {
	return gin.H{
		"mode":          e.Mode,
		"type":          e.Type,
		"object":        e.Object,
		"path":          tree.ChildObject(folder, e.Name),
		"size":          e.Size,
		"formattedSize": e.FormattedSize(),
		"name":          e.Name,
		"mtime":         e.MTime,
		"symlink":       e.IsSymlink(),
		"language":      e.Language(),
	}
}

// blob sends the file contents as they are, not wrapped in JSON.
func (s *server) blob(c *gin.Context) {
	var params BlobParams

	err := c.ShouldBindQuery(&params)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	data, err := s.ws.Blob(c.Request.Context(), params.Object)
	if errors.Is(err, fs.ErrNotExist) {
		c.String(http.StatusNotFound, "")
		return
	} else if err != nil {
		sendError(c, err, nil)
		return
	}

	c.Data(http.StatusOK, "application/octet-stream", []byte(data))
}
