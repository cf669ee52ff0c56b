package game

// Board geometry and tower limits.
const (
	NumRows  = 5
	NumCols  = 5
	NumCells = NumRows * NumCols

	// NumFloors is the winning height; one more level above it is the dome.
	NumFloors = 3
)

const (
	numFloorBits = 3
	heightMask   = 1<<numFloorBits - 1
)

// Cell packs one board square into a byte: tower height in the low bits,
// one occupant tag bit per player above them. At most one tag is ever set.
type Cell uint8

// Height returns the tower height, 0 through NumFloors+1 (dome).
func (c Cell) Height() int {
	return int(c & heightMask)
}

// Occupied reports whether a worker stands on the cell.
func (c Cell) Occupied() bool {
	return c>>numFloorBits != 0
}

// Occupant returns the worker's owner, or NoPlayer on a free cell.
func (c Cell) Occupant() int {
	switch c >> numFloorBits {
	case 1 << 0:
		return 0
	case 1 << 1:
		return 1
	}
	return NoPlayer
}

func (c Cell) withWorker(player int) Cell {
	return c | 1<<(numFloorBits+player)
}

func (c Cell) vacated() Cell {
	return c & heightMask
}

func (c Cell) raised() Cell {
	return c + 1
}

// Glyph renders the cell as one byte: '0'..'4' for a free tower of that
// height, 'a'..'d' for player 0's worker standing on it, 'A'..'D' for
// player 1's.
func (c Cell) Glyph() byte {
	h := byte(c.Height())
	switch c.Occupant() {
	case 0:
		return 'a' + h
	case 1:
		return 'A' + h
	}
	return '0' + h
}

// Coord splits a cell index into its row and column.
func Coord(cell int) (row, col int) {
	return cell / NumCols, cell % NumCols
}

// CellIndex is the inverse of Coord.
func CellIndex(row, col int) int {
	return row*NumCols + col
}

// Adjacent reports whether two distinct cells touch, diagonals included.
// Board edges do not wrap.
func Adjacent(a, b int) bool {
	if a == b {
		return false
	}
	aRow, aCol := Coord(a)
	bRow, bCol := Coord(b)
	return abs(aRow-bRow) <= 1 && abs(aCol-bCol) <= 1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
