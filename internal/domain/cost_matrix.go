package domain

import "errors"

// Per-room tile cost overlay.
// A zero entry leaves the tile to its terrain cost; MaxTileCost blocks it.
type CostMatrix struct {
	bits [RoomSize * RoomSize]uint8
}

func NewCostMatrix() *CostMatrix { return &CostMatrix{} }

func (m *CostMatrix) Get(x, y int) uint8 { return m.bits[y*RoomSize+x] }

func (m *CostMatrix) Set(x, y int, cost uint8) { m.bits[y*RoomSize+x] = cost }

func (m *CostMatrix) Clone() *CostMatrix {
	c := *m
	return &c
}

// Row-major bytes, RoomSize*RoomSize long.
func (m *CostMatrix) Bytes() []byte {
	out := make([]byte, len(m.bits))
	copy(out, m.bits[:])
	return out
}

func CostMatrixFromBytes(b []byte) (*CostMatrix, error) {
	if len(b) != RoomSize*RoomSize {
		return nil, errors.New("cost matrix: serialized matrix has wrong length")
	}
	m := &CostMatrix{}
	copy(m.bits[:], b)
	return m, nil
}
