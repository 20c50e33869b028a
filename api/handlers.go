package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stellarlinkco/llm-arena/internal/store"
)

type evalInfo struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	DefaultRuns int            `json:"default_runs"`
	Params      map[string]any `json:"params,omitempty"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleListEvals(c *gin.Context) {
	if s == nil || s.registry == nil {
		c.JSON(http.StatusOK, []evalInfo{})
		return
	}

	out := make([]evalInfo, 0)
	for _, name := range s.registry.Names() {
		def, ok := s.registry.Get(name)
		if !ok {
			continue
		}
		out = append(out, evalInfo{
			Name:        def.Name,
			Description: def.Description,
			DefaultRuns: def.DefaultRuns,
			Params:      def.Params,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleListResults(c *gin.Context) {
	if s == nil || s.store == nil {
		respondError(c, http.StatusInternalServerError, errors.New("results store not configured"))
		return
	}

	f := store.Filter{
		Model: strings.TrimSpace(c.Query("model")),
		Eval:  strings.TrimSpace(c.Query("eval")),
	}
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondError(c, http.StatusBadRequest, errors.New("invalid limit"))
			return
		}
		if n > 500 {
			n = 500
		}
		f.Limit = n
	}

	recs, err := s.store.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	if recs == nil {
		recs = []store.Record{}
	}
	c.JSON(http.StatusOK, recs)
}

func (s *Server) handleLeaderboard(c *gin.Context) {
	if s == nil || s.store == nil {
		respondError(c, http.StatusInternalServerError, errors.New("results store not configured"))
		return
	}

	rows, err := s.store.Leaderboard(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	if rows == nil {
		rows = []store.LeaderboardRow{}
	}
	c.JSON(http.StatusOK, rows)
}

func respondError(c *gin.Context, status int, err error) {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, gin.H{"error": msg})
}
