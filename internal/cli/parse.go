package cli

import (
	"fmt"
	"strconv"
	"strings"

	"region-path-service/internal/domain"
)

// Parse "ROOM:X,Y".
func parsePosition(s string) (domain.Position, error) {
	room, coords, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return domain.Position{}, fmt.Errorf("position %q: want ROOM:X,Y", s)
	}
	xs, ys, ok := strings.Cut(coords, ",")
	if !ok {
		return domain.Position{}, fmt.Errorf("position %q: want ROOM:X,Y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return domain.Position{}, fmt.Errorf("position %q: x: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return domain.Position{}, fmt.Errorf("position %q: y: %w", s, err)
	}

	p := domain.NewPosition(domain.RoomName(room), x, y)
	if err := p.Validate(); err != nil {
		return domain.Position{}, err
	}
	return p, nil
}

// Parse "ROOM:X,Y" with an optional ":RANGE" suffix.
func parseTarget(s string) (domain.MoveTarget, error) {
	pos := s
	rng := 0
	if i := strings.LastIndex(s, ":"); i > 0 && !strings.Contains(s[i:], ",") {
		n, err := strconv.Atoi(strings.TrimSpace(s[i+1:]))
		if err != nil {
			return domain.MoveTarget{}, fmt.Errorf("target %q: range: %w", s, err)
		}
		pos, rng = s[:i], n
	}

	p, err := parsePosition(pos)
	if err != nil {
		return domain.MoveTarget{}, err
	}
	t := domain.MoveTarget{Pos: p, Range: rng}
	if err := t.Validate(); err != nil {
		return domain.MoveTarget{}, err
	}
	return t, nil
}

// Parse a body spec such as "move,move*2,carry,work!".
// "*N" sets a boost multiplier, a trailing "!" marks the segment destroyed.
func parseBody(specs []string) ([]domain.BodySegment, error) {
	var body []domain.BodySegment
	for _, spec := range specs {
		for _, part := range strings.Split(spec, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}

			seg := domain.BodySegment{Hits: 100}
			if strings.HasSuffix(part, "!") {
				seg.Hits = 0
				part = strings.TrimSuffix(part, "!")
			}
			name, boost, hasBoost := strings.Cut(part, "*")
			if hasBoost {
				b, err := strconv.ParseFloat(boost, 64)
				if err != nil || b < 0 {
					return nil, fmt.Errorf("body part %q: invalid boost", part)
				}
				seg.Boost = domain.Ptr(b)
			}

			t, err := domain.ParseBodyPartType(name)
			if err != nil {
				return nil, err
			}
			seg.Type = t
			body = append(body, seg)
		}
	}
	return body, nil
}

func parseRooms(names []string) ([]domain.RoomName, error) {
	var rooms []domain.RoomName
	for _, n := range names {
		r := domain.RoomName(strings.TrimSpace(n))
		if !r.Valid() {
			return nil, fmt.Errorf("invalid room name %q", n)
		}
		rooms = append(rooms, r)
	}
	return rooms, nil
}
