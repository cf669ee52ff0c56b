package game

import "fmt"

// Observation tensor layout: one one-hot plane per height level 1 through
// NumFloors+1, then two planes carrying each occupied cell's height, split
// into the requesting player's own workers and the opponent's.
const (
	NumCellPlanes   = 1 + NumFloors + NumPlayers
	ObservationSize = NumCellPlanes * NumRows * NumCols
)

// ObservationShape returns the (planes, rows, cols) shape external
// learning collaborators expect.
func ObservationShape() [3]int {
	return [3]int{NumCellPlanes, NumRows, NumCols}
}

// ObservationTensor encodes the position as a dense buffer of
// ObservationSize floats from the given player's perspective. A player
// index outside [0, NumPlayers) is a caller contract violation and panics.
func (gs *GameState) ObservationTensor(player int) []float32 {
	if player < 0 || player >= NumPlayers {
		panic(fmt.Sprintf("observation for invalid player %d", player))
	}
	buf := make([]float32, ObservationSize)
	for cell, c := range gs.board {
		row, col := Coord(cell)
		h := c.Height()
		if h > 0 {
			buf[planeIndex(h-1, row, col)] = 1
		}
		if c.Occupied() {
			plane := NumFloors + 1
			if c.Occupant() != player {
				plane++
			}
			buf[planeIndex(plane, row, col)] = float32(h)
		}
	}
	return buf
}

func planeIndex(plane, row, col int) int {
	return (plane*NumRows+row)*NumCols + col
}
