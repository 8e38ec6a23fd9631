package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"region-path-service/internal/adapters/cache"
	"region-path-service/internal/adapters/obstacles"
	"region-path-service/internal/adapters/pathfinder"
	"region-path-service/internal/adapters/worldmap"
	"region-path-service/internal/api"
	"region-path-service/internal/config"
	"region-path-service/internal/platform/db"
	"region-path-service/internal/platform/kv"
	"region-path-service/internal/ports"
	"region-path-service/internal/services"
	"time"
)

// main is the application composition root.
// It wires concrete adapters (YAML world, Postgres, Redis) behind ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	world, err := worldmap.LoadWorld(cfg.WorldPath)
	if err != nil {
		log.Fatal(err)
	}

	source, closeSource, err := openObstacleSource(cfg, world)
	if err != nil {
		log.Fatal(err)
	}

	planner := services.NewPlanner(
		pathfinder.NewGridSearch(world),
		worldmap.NewRouteFinder(world),
		world,
		cfg.MoveDefaults,
	)
	defaultCosts := services.ResolveMoveOpts(cfg.MoveDefaults, nil).Costs
	router := api.NewRouter(planner, source, defaultCosts)

	log.Printf("Server listening addr=:%s world=%s", cfg.Port, cfg.WorldPath)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(serve(srv, closeSource))
}

// Run srv until it stops, then release the obstacle store.
// log.Fatal skips deferred calls, so closing happens here rather than in a defer in main.
func serve(srv *http.Server, closeSource func()) error {
	err := srv.ListenAndServe()
	closeSource()
	return err
}

// Obstacles come from Postgres when DATABASE_URL is set, otherwise from the world file.
// REDIS_URL puts a matrix cache in front of either.
func openObstacleSource(cfg config.Config, world *worldmap.World) (ports.ObstacleSource, func(), error) {
	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var source ports.ObstacleSource = obstacles.NewMemorySource(world.Obstacles(), world.Blocked())
	if cfg.DatabaseURL != "" {
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open obstacle source: %w", err)
		}
		closers = append(closers, func() { _ = conn.Close() })
		source = obstacles.NewSQLSource(conn)
		log.Println("Obstacles source=postgres")
	}

	if cfg.RedisURL != "" {
		client, err := kv.Open(context.Background(), cfg.RedisURL)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("open obstacle source: %w", err)
		}
		closers = append(closers, func() { _ = client.Close() })
		source = cache.NewRedisMatrixCache(client, source, cfg.MatrixCacheTTL)
		log.Printf("Obstacles cache=redis ttl=%s", cfg.MatrixCacheTTL)
	}

	return source, closeAll, nil
}
