package api

import (
	"net/http"
	"region-path-service/internal/api/handlers"
	"region-path-service/internal/domain"
	"region-path-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
// obstacleSource may be nil when no obstacle data is configured.
func NewRouter(planner handlers.PathGenerator, obstacleSource ports.ObstacleSource, defaultCosts domain.TerrainCosts) http.Handler {
	mux := http.NewServeMux()

	pathHandler := &handlers.PathHandler{Planner: planner, Obstacles: obstacleSource}
	costsHandler := &handlers.CostsHandler{Defaults: defaultCosts}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/paths", pathHandler.Plan)
	mux.HandleFunc("/costs", costsHandler.Derive)

	return loggingMiddleware(mux)
}
