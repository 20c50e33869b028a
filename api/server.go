// Package api serves the read-only results dashboard: batch aggregates,
// the leaderboard, and the registered eval catalog.
package api

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/stellarlinkco/llm-arena/internal/config"
	"github.com/stellarlinkco/llm-arena/internal/eval"
	"github.com/stellarlinkco/llm-arena/internal/store"
)

type Server struct {
	router   *gin.Engine
	store    *store.Store
	registry *eval.Registry
	config   *config.Config
}

func NewServer(cfg *config.Config, st *store.Store, registry *eval.Registry) (*Server, error) {
	if st == nil {
		return nil, errors.New("api: nil store")
	}

	r := gin.New()
	s := &Server{
		router:   r,
		store:    st,
		registry: registry,
		config:   cfg,
	}
	s.registerMiddleware()
	s.registerRoutes()
	s.registerStatic()
	return s, nil
}

func (s *Server) Run(addr string) error {
	if s == nil || s.router == nil {
		return errors.New("api: nil server")
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		addr = ":8080"
	}
	return s.router.Run(addr)
}
