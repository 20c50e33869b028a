package api

import (
	"os"
	"strings"
)

func (s *Server) registerRoutes() {
	if s == nil || s.router == nil {
		return
	}

	api := s.router.Group("/api")
	if apiKey := strings.TrimSpace(os.Getenv("LLM_ARENA_API_KEY")); apiKey != "" {
		api.Use(apiKeyAuthMiddleware(apiKey))
	}

	api.GET("/health", s.handleHealth)
	api.GET("/evals", s.handleListEvals)
	api.GET("/results", s.handleListResults)
	api.GET("/leaderboard", s.handleLeaderboard)
}
