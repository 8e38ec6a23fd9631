package obstacles

import (
	"context"
	"region-path-service/internal/domain"
	"sync"
)

// MemorySource holds obstacle overlays in process memory.
// Callers always receive copies, so returned matrices may be modified freely.
type MemorySource struct {
	mu       sync.RWMutex
	matrices map[domain.RoomName]*domain.CostMatrix
	blocked  map[domain.RoomName]bool
}

func NewMemorySource(matrices map[domain.RoomName]*domain.CostMatrix, blocked []domain.RoomName) *MemorySource {
	s := &MemorySource{
		matrices: make(map[domain.RoomName]*domain.CostMatrix, len(matrices)),
		blocked:  make(map[domain.RoomName]bool, len(blocked)),
	}
	for room, m := range matrices {
		if m != nil {
			s.matrices[room] = m.Clone()
		}
	}
	for _, room := range blocked {
		s.blocked[room] = true
	}
	return s
}

// Set replaces the overlay of a room. A nil matrix clears it.
func (s *MemorySource) Set(room domain.RoomName, m *domain.CostMatrix) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m == nil {
		delete(s.matrices, room)
		return
	}
	s.matrices[room] = m.Clone()
}

func (s *MemorySource) Block(room domain.RoomName, blocked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if blocked {
		s.blocked[room] = true
		return
	}
	delete(s.blocked, room)
}

// CostMatrix implements ports.ObstacleSource.
func (s *MemorySource) CostMatrix(_ context.Context, room domain.RoomName) (*domain.CostMatrix, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.blocked[room] {
		return nil, true, nil
	}
	m, ok := s.matrices[room]
	if !ok {
		return nil, false, nil
	}
	return m.Clone(), false, nil
}
