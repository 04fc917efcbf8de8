package api

import (
	"vidxiv/orchestrator"

	"github.com/gin-gonic/gin"
)

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(pipeline *orchestrator.Pipeline, states *orchestrator.StateStore) *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	// Register resource routers
	RegisterRunRoutes(r, pipeline, states)
	RegisterHealthRoutes(r)
	return r
}
