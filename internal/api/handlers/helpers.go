package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"region-path-service/internal/api/dto"
	"region-path-service/internal/domain"
)

// Hit points of an undamaged body segment.
const fullHits = 100

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// Allow only the given method; writes 405 otherwise.
func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	return false
}

// Decode exactly one JSON object with no unknown fields. Writes 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

func toComposition(body []dto.BodySegmentRequest, used int) (*domain.AgentComposition, error) {
	if used < 0 {
		return nil, errors.New("used_capacity must not be negative")
	}

	segments := make([]domain.BodySegment, 0, len(body))
	for i, s := range body {
		t, err := domain.ParseBodyPartType(s.Type)
		if err != nil {
			return nil, fmt.Errorf("body[%d]: %w", i, err)
		}
		hits := fullHits
		if s.Hits != nil {
			hits = *s.Hits
		}
		if s.Boost != nil && *s.Boost < 0 {
			return nil, fmt.Errorf("body[%d]: boost must not be negative", i)
		}
		segments = append(segments, domain.BodySegment{Type: t, Hits: hits, Boost: s.Boost})
	}
	return &domain.AgentComposition{Body: segments, UsedCapacity: used}, nil
}

func toMoveOpts(req *dto.MoveOptsRequest, callback domain.RoomCallback) (*domain.MoveOpts, error) {
	opts := &domain.MoveOpts{RoomCallback: callback}
	if req == nil {
		return opts, nil
	}

	opts.MaxOps = req.MaxOps
	opts.MaxOpsPerRoom = req.MaxOpsPerRoom
	opts.MaxRooms = req.MaxRooms
	opts.RoadCost = req.RoadCost
	opts.PlainCost = req.PlainCost
	opts.SwampCost = req.SwampCost
	opts.HeuristicWeight = req.HeuristicWeight

	for _, name := range req.AvoidRooms {
		room := domain.RoomName(name)
		if !room.Valid() {
			return nil, fmt.Errorf("avoid_rooms: invalid room name %q", name)
		}
		opts.AvoidRooms = append(opts.AvoidRooms, room)
	}

	if len(req.Body) > 0 {
		c, err := toComposition(req.Body, req.UsedCapacity)
		if err != nil {
			return nil, err
		}
		opts.Composition = c
	}
	return opts, nil
}
