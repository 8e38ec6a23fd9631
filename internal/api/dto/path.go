package dto

type PositionRequest struct {
	Room string `json:"room"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

type TargetRequest struct {
	Room  string `json:"room"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Range int    `json:"range"`
}

type BodySegmentRequest struct {
	Type string `json:"type"`
	// Defaults to a fully healthy segment when omitted.
	Hits  *int     `json:"hits"`
	Boost *float64 `json:"boost"`
}

type MoveOptsRequest struct {
	MaxOps          *int                 `json:"max_ops"`
	MaxOpsPerRoom   *int                 `json:"max_ops_per_room"`
	MaxRooms        *int                 `json:"max_rooms"`
	RoadCost        *int                 `json:"road_cost"`
	PlainCost       *int                 `json:"plain_cost"`
	SwampCost       *int                 `json:"swamp_cost"`
	HeuristicWeight *float64             `json:"heuristic_weight"`
	AvoidRooms      []string             `json:"avoid_rooms"`
	Body            []BodySegmentRequest `json:"body"`
	UsedCapacity    int                  `json:"used_capacity"`
}

type PathRequest struct {
	Origin  PositionRequest  `json:"origin"`
	Targets []TargetRequest  `json:"targets"`
	Opts    *MoveOptsRequest `json:"opts"`
}

type PositionResponse struct {
	Room string `json:"room"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

type PathResponse struct {
	Path   []PositionResponse `json:"path"`
	Length int                `json:"length"`
}
