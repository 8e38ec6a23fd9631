package handlers

import (
	"errors"
	"log"
	"net/http"
	"region-path-service/internal/api/dto"
	"region-path-service/internal/domain"
	"region-path-service/internal/services"
)

type CostsHandler struct {
	// Returned when the body has no usable traction.
	Defaults domain.TerrainCosts
}

// Derive terrain costs for an agent body.
func (h *CostsHandler) Derive(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.CostsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	agent, err := toComposition(req.Body, req.UsedCapacity)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	costs, err := services.DeriveTerrainCosts(*agent, h.Defaults)
	applicable := true
	if err != nil {
		if !errors.Is(err, services.ErrInapplicableCostModel) {
			log.Printf("derive costs failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
		applicable = false
	}

	writeJSON(w, r, http.StatusOK, dto.CostsResponse{
		Road:       costs.Road,
		Plain:      costs.Plain,
		Swamp:      costs.Swamp,
		Applicable: applicable,
	})
}
