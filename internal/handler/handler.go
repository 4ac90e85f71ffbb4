package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/oguzcv/football-league-service/internal/service"
)

// Register mounts all public routes on the given engine.
// Accepts service layer dependencies for API endpoints.
func Register(r *gin.Engine, repo Pinger, authSvc service.AuthService, playerSvc service.PlayerService, matchSvc service.MatchService, pitchSvc service.PitchService) {
	h := NewHealthHandler(repo)

	// Health probes
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	// Docs endpoints (root-level)
	RegisterDocs(r)

	auth := AuthRequired(authSvc)

	api := r.Group(APIV1Prefix) // Versioning added via single source of truth
	{
		health := api.Group("/health")
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
		}
		NewAuthHandler(authSvc).Register(api)
		NewPlayerHandler(playerSvc).Register(api, auth)
		NewMatchHandler(matchSvc).Register(api, auth)
		NewPitchHandler(pitchSvc).Register(api, auth)
	}
}
