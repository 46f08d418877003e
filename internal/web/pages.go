package web

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const linkField = "youtube_link"

func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{})
}

// handleSubmit resuelve el link del formulario y muestra los resultados
func (s *Server) handleSubmit(c *gin.Context) {
	link, ok := c.GetPostForm(linkField)
	link = strings.TrimSpace(link)
	if !ok || link == "" {
		submitError(c, http.StatusUnprocessableEntity, linkField+" is required", "")
		return
	}

	result, err := s.links.Lookup(c.Request.Context(), link)
	if err != nil {
		submitError(c, http.StatusBadRequest, err.Error(), link)
		return
	}

	c.HTML(http.StatusOK, "result.html", gin.H{
		"video_title": result.Title,
		"video_links": result.VideoLinks,
		"audio_links": result.AudioLinks,
	})
}

// submitError re-muestra el formulario con el error.
// Con Accept: application/json responde {"detail": msg} sin escapar.
func submitError(c *gin.Context, status int, msg, link string) {
	if c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON {
		c.JSON(status, gin.H{"detail": msg})
		return
	}

	c.HTML(status, "index.html", gin.H{
		"error": msg,
		"link":  link,
	})
}
