package domain

import (
	"fmt"
	"strings"
)

// Capacity of a single unboosted cargo segment.
const CargoCapacity = 50

type BodyPartType int

const (
	Other BodyPartType = iota
	Traction
	Cargo
)

var bodyPartNames = map[BodyPartType]string{
	Other:    "other",
	Traction: "traction",
	Cargo:    "cargo",
}

func (t BodyPartType) String() string {
	if s, ok := bodyPartNames[t]; ok {
		return s
	}
	return fmt.Sprintf("BodyPartType(%d)", int(t))
}

// Parse a body part type name. Accepts "move" and "carry" as aliases.
func ParseBodyPartType(s string) (BodyPartType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "traction", "move":
		return Traction, nil
	case "cargo", "carry":
		return Cargo, nil
	case "other", "work", "attack", "ranged_attack", "heal", "claim", "tough":
		return Other, nil
	}
	return Other, fmt.Errorf("parse body part: unknown type %q", s)
}

// One segment of an agent's body.
// Hits <= 0 means the segment is destroyed. A nil Boost means no multiplier;
// for Traction it scales movement power, for Cargo it scales capacity.
type BodySegment struct {
	Type  BodyPartType
	Hits  int
	Boost *float64
}

// Boost multiplier, 1 when absent.
func (s BodySegment) Multiplier() float64 {
	if s.Boost == nil {
		return 1
	}
	return *s.Boost
}

func (s BodySegment) Active() bool { return s.Hits > 0 }

// Physical composition of an agent.
// Body order matters: cargo segments later in the slice are filled first.
type AgentComposition struct {
	Body         []BodySegment
	UsedCapacity int
}

// Total carrying capacity of the active cargo segments.
func (a *AgentComposition) Capacity() int {
	total := 0.0
	for _, s := range a.Body {
		if s.Type == Cargo && s.Active() {
			total += CargoCapacity * s.Multiplier()
		}
	}
	return int(total)
}

// Add amount to the used capacity.
func (a *AgentComposition) Load(amount int) error {
	if amount < 0 {
		return fmt.Errorf("load agent: amount must not be negative (amount=%d)", amount)
	}
	if a.UsedCapacity+amount > a.Capacity() {
		return fmt.Errorf("load agent: over capacity (used=%d, amount=%d, capacity=%d)", a.UsedCapacity, amount, a.Capacity())
	}
	a.UsedCapacity += amount
	return nil
}

// Drop everything carried.
func (a *AgentComposition) Clear() {
	a.UsedCapacity = 0
}
