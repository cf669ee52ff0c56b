package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCellPacking(t *testing.T) {
	empty := Cell(0)
	require.Equal(t, 0, empty.Height())
	require.False(t, empty.Occupied())
	require.Equal(t, NoPlayer, empty.Occupant())

	tower := Cell(2)
	require.Equal(t, 2, tower.Height())
	require.False(t, tower.Occupied())

	worker0 := tower.withWorker(0)
	require.Equal(t, 2, worker0.Height(), "occupying must preserve height")
	require.True(t, worker0.Occupied())
	require.Equal(t, 0, worker0.Occupant())

	worker1 := Cell(3).withWorker(1)
	require.Equal(t, 3, worker1.Height())
	require.Equal(t, 1, worker1.Occupant())

	vacated := worker0.vacated()
	require.Equal(t, 2, vacated.Height(), "vacating must preserve height")
	require.False(t, vacated.Occupied())

	require.Equal(t, 3, tower.raised().Height())
}

func TestCellGlyphs(t *testing.T) {
	require.Equal(t, byte('0'), Cell(0).Glyph())
	require.Equal(t, byte('4'), Cell(NumFloors+1).Glyph())
	require.Equal(t, byte('a'), Cell(0).withWorker(0).Glyph())
	require.Equal(t, byte('c'), Cell(2).withWorker(0).Glyph())
	require.Equal(t, byte('A'), Cell(0).withWorker(1).Glyph())
	require.Equal(t, byte('D'), Cell(3).withWorker(1).Glyph())
}

func TestCoordRoundTrip(t *testing.T) {
	for cell := 0; cell < NumCells; cell++ {
		row, col := Coord(cell)
		require.GreaterOrEqual(t, row, 0)
		require.Less(t, row, NumRows)
		require.GreaterOrEqual(t, col, 0)
		require.Less(t, col, NumCols)
		require.Equal(t, cell, CellIndex(row, col))
	}
	row, col := Coord(7)
	require.Equal(t, 1, row)
	require.Equal(t, 2, col)
}

func TestAdjacent(t *testing.T) {
	center := CellIndex(2, 2)
	neighbours := 0
	for cell := 0; cell < NumCells; cell++ {
		if Adjacent(center, cell) {
			neighbours++
		}
	}
	require.Equal(t, 8, neighbours, "an interior cell has 8 neighbours")

	require.False(t, Adjacent(center, center), "a cell is not its own neighbour")
	require.True(t, Adjacent(CellIndex(0, 0), CellIndex(1, 1)))
	require.False(t, Adjacent(CellIndex(0, 4), CellIndex(1, 0)), "no wraparound across rows")
	require.False(t, Adjacent(CellIndex(0, 0), CellIndex(0, 2)))

	corner := CellIndex(4, 4)
	neighbours = 0
	for cell := 0; cell < NumCells; cell++ {
		if Adjacent(corner, cell) {
			neighbours++
		}
	}
	require.Equal(t, 3, neighbours, "a corner cell has 3 neighbours")
}
