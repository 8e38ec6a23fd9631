package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"region-path-service/internal/adapters/obstacles"
	"region-path-service/internal/api/dto"
	"region-path-service/internal/domain"
	"region-path-service/internal/ports"
	"region-path-service/internal/services"
)

// PathGenerator is the planning capability the handler needs.
type PathGenerator interface {
	GeneratePath(ctx context.Context, origin domain.Position, targets []domain.MoveTarget, opts *domain.MoveOpts) ([]domain.Position, error)
}

type PathHandler struct {
	Planner PathGenerator
	// Optional. Consulted per room for obstacle overlays.
	Obstacles ports.ObstacleSource
}

// Plan a path from the request's origin to the closest reachable target.
func (h *PathHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.PathRequest
	if !decodeBody(w, r, &req) {
		return
	}

	origin := domain.NewPosition(domain.RoomName(req.Origin.Room), req.Origin.X, req.Origin.Y)
	targets := make([]domain.MoveTarget, 0, len(req.Targets))
	for _, t := range req.Targets {
		targets = append(targets, domain.MoveTarget{
			Pos:   domain.NewPosition(domain.RoomName(t.Room), t.X, t.Y),
			Range: t.Range,
		})
	}

	opts, err := toMoveOpts(req.Opts, obstacles.RoomCallback(h.Obstacles))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	path, err := h.Planner.GeneratePath(r.Context(), origin, targets, opts)
	switch {
	case errors.Is(err, services.ErrInvalidRequest):
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, services.ErrPathNotFound):
		writeError(w, r, http.StatusNotFound, "path not found")
		return
	case err != nil:
		log.Printf("generate path failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.PathResponse{Path: make([]dto.PositionResponse, 0, len(path)), Length: len(path)}
	for _, p := range path {
		res.Path = append(res.Path, dto.PositionResponse{Room: string(p.Room), X: p.X, Y: p.Y})
	}

	writeJSON(w, r, http.StatusOK, res)
}
