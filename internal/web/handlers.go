package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/elsanchez/smart-links/internal/domain"
	"github.com/elsanchez/smart-links/internal/extractor"
	"github.com/elsanchez/smart-links/internal/repository"
)

const (
	defaultLookupLimit = 50
	maxLookupLimit     = 500
)

// LinksPayload es el body de POST /api/links
type LinksPayload struct {
	URL string `json:"url"`
}

// Stats son los contadores del historial
type Stats struct {
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
	Total     int `json:"total"`
}

func (s *Server) handlePing(c *gin.Context) {
	c.JSON(http.StatusOK, Response{Success: true, Data: gin.H{"message": "pong"}})
}

// handleLinks maneja la petición de extraer links
func (s *Server) handleLinks(c *gin.Context) {
	var req LinksPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: fmt.Sprintf("invalid payload: %v", err)})
		return
	}

	req.URL = strings.TrimSpace(req.URL)
	if req.URL == "" {
		c.JSON(http.StatusBadRequest, Response{Error: "url is required"})
		return
	}

	result, err := s.links.Lookup(c.Request.Context(), req.URL)
	if err != nil {
		resp := Response{Error: err.Error(), Kind: string(extractor.KindUnknown)}
		if failure, ok := extractor.AsFailure(err); ok {
			resp.Kind = string(failure.Kind)
		}
		c.JSON(http.StatusBadRequest, resp)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: result})
}

// handleListLookups lista las consultas más recientes
func (s *Server) handleListLookups(c *gin.Context) {
	if !s.requireHistory(c) {
		return
	}

	limit := defaultLookupLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, Response{Error: fmt.Sprintf("invalid limit: %q", raw)})
			return
		}
		limit = min(n, maxLookupLimit)
	}

	lookups, err := s.history.GetRecent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{Error: fmt.Sprintf("list lookups: %v", err)})
		return
	}

	if lookups == nil {
		lookups = []*domain.Lookup{}
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: lookups})
}

// handleGetLookup retorna una entrada del historial
func (s *Server) handleGetLookup(c *gin.Context) {
	if !s.requireHistory(c) {
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: fmt.Sprintf("invalid id: %q", c.Param("id"))})
		return
	}

	lookup, err := s.history.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrLookupNotFound) {
			c.JSON(http.StatusNotFound, Response{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, Response{Error: fmt.Sprintf("get lookup: %v", err)})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: lookup})
}

// handleStats retorna los contadores del historial
func (s *Server) handleStats(c *gin.Context) {
	if !s.requireHistory(c) {
		return
	}

	ctx := c.Request.Context()
	var stats Stats
	var err error

	if stats.Completed, err = s.history.CountByStatus(ctx, domain.LookupCompleted); err == nil {
		if stats.Failed, err = s.history.CountByStatus(ctx, domain.LookupFailed); err == nil {
			stats.Total, err = s.history.CountTotal(ctx)
		}
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{Error: fmt.Sprintf("get stats: %v", err)})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: stats})
}

func (s *Server) requireHistory(c *gin.Context) bool {
	if s.history == nil {
		c.JSON(http.StatusServiceUnavailable, Response{Error: "lookup history is disabled"})
		return false
	}
	return true
}
