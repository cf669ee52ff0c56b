package game

import (
	"errors"
	"fmt"
	"strings"
)

// Action id space: first every unordered pair of distinct cells (the
// placement actions), then worker x move direction x build direction.
const (
	NumPlacementActions = NumCells * (NumCells - 1) / 2
	NumMoveBuildActions = 2 * 8 * 8
	NumDistinctActions  = NumPlacementActions + NumMoveBuildActions
)

// Action is a dense id in [0, NumDistinctActions). Ids below
// NumPlacementActions place a worker pair; the rest encode a move-build.
type Action int

type ActionKind int

const (
	PlacementAction ActionKind = iota
	MoveBuildAction
)

// ErrMalformedAction is wrapped by every ParseAction failure.
var ErrMalformedAction = errors.New("malformed action string")

type offset struct {
	dr, dc int
}

// directions enumerates the 8 neighbour offsets in row-major order. Their
// glyphs follow the numpad: '8' is up, '2' is down.
var directions = [8]offset{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

const directionGlyphs = "78946123"

// opposite[i] is the direction whose offset negates directions[i].
var opposite = buildOpposites()

func buildOpposites() [8]int {
	var opp [8]int
	for i, d := range directions {
		for j, e := range directions {
			if e.dr == -d.dr && e.dc == -d.dc {
				opp[i] = j
			}
		}
	}
	return opp
}

// placementCells maps each placement id to its cell pair, cellA < cellB.
// Enumeration order fixes the id assignment.
var placementCells = buildPlacementCells()

func buildPlacementCells() [NumPlacementActions][2]int {
	var pairs [NumPlacementActions][2]int
	id := 0
	for i := 0; i < NumCells; i++ {
		for j := i + 1; j < NumCells; j++ {
			pairs[id] = [2]int{i, j}
			id++
		}
	}
	return pairs
}

// EncodePlacement returns the id placing workers on cellA and cellB,
// which must satisfy cellA < cellB.
func EncodePlacement(cellA, cellB int) Action {
	return Action((cellB - 1) + (NumCells-2)*cellA - cellA*(cellA-1)/2)
}

// EncodeMoveBuild returns the id moving the given worker along moveDir
// and building along buildDir from the destination.
func EncodeMoveBuild(workerID, moveDir, buildDir int) Action {
	return Action(NumPlacementActions + workerID*64 + moveDir*8 + buildDir)
}

func (a Action) Kind() ActionKind {
	if a < NumPlacementActions {
		return PlacementAction
	}
	return MoveBuildAction
}

// PlacementCells returns the cell pair of a placement action, cellA < cellB.
func (a Action) PlacementCells() (cellA, cellB int) {
	pair := placementCells[a]
	return pair[0], pair[1]
}

// WorkerID returns which of the mover's two workers a move-build action moves.
func (a Action) WorkerID() int {
	return int(a-NumPlacementActions) / 64
}

// MoveDirection returns the move direction index of a move-build action.
func (a Action) MoveDirection() int {
	return int(a-NumPlacementActions) / 8 % 8
}

// BuildDirection returns the build direction index of a move-build action.
func (a Action) BuildDirection() int {
	return int(a-NumPlacementActions) % 8
}

// String renders the action in its wire form: "P" followed by both cell
// coordinates for a placement, "{worker}M{move}B{build}" with numpad
// direction glyphs for a move-build.
func (a Action) String() string {
	if a.Kind() == PlacementAction {
		cellA, cellB := a.PlacementCells()
		r1, c1 := Coord(cellA)
		r2, c2 := Coord(cellB)
		return fmt.Sprintf("P%d%d%d%d", r1, c1, r2, c2)
	}
	return fmt.Sprintf("%dM%cB%c",
		a.WorkerID(),
		directionGlyphs[a.MoveDirection()],
		directionGlyphs[a.BuildDirection()])
}

// ParseAction is the inverse of Action.String. Any input that is not the
// exact rendering of some action id fails with ErrMalformedAction.
func ParseAction(s string) (Action, error) {
	if len(s) == 5 {
		if s[0] == 'P' {
			return parsePlacement(s)
		}
		if s[1] == 'M' && s[3] == 'B' {
			return parseMoveBuild(s)
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrMalformedAction, s)
}

func parsePlacement(s string) (Action, error) {
	var coords [4]int
	for i, b := range []byte(s[1:]) {
		if b < '0' || b >= '0'+NumRows {
			return 0, fmt.Errorf("%w: %q has no coordinate at position %d", ErrMalformedAction, s, i+1)
		}
		coords[i] = int(b - '0')
	}
	cellA := CellIndex(coords[0], coords[1])
	cellB := CellIndex(coords[2], coords[3])
	if cellA >= cellB {
		return 0, fmt.Errorf("%w: %q cells out of order", ErrMalformedAction, s)
	}
	return EncodePlacement(cellA, cellB), nil
}

func parseMoveBuild(s string) (Action, error) {
	if s[0] != '0' && s[0] != '1' {
		return 0, fmt.Errorf("%w: %q has no worker index", ErrMalformedAction, s)
	}
	moveDir := strings.IndexByte(directionGlyphs, s[2])
	buildDir := strings.IndexByte(directionGlyphs, s[4])
	if moveDir < 0 || buildDir < 0 {
		return 0, fmt.Errorf("%w: %q has no direction glyph", ErrMalformedAction, s)
	}
	return EncodeMoveBuild(int(s[0]-'0'), moveDir, buildDir), nil
}
