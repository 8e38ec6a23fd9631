package dto

type CostsRequest struct {
	Body         []BodySegmentRequest `json:"body"`
	UsedCapacity int                  `json:"used_capacity"`
}

type CostsResponse struct {
	Road  int `json:"road"`
	Plain int `json:"plain"`
	Swamp int `json:"swamp"`
	// False when the body cannot move and the configured costs were returned instead.
	Applicable bool `json:"applicable"`
}
