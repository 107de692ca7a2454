package maze

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gridWithRoles(t *testing.T, rows, cols int, start, finish, prize CellPosition) *Grid {
	t.Helper()
	g, err := New(rows, cols)
	require.NoError(t, err)
	g.AssignRole(start, RoleStart)
	g.AssignRole(finish, RoleFinish)
	g.AssignRole(prize, RolePrize)
	return g
}

func TestNew(t *testing.T) {
	t.Run("all walls and no roles", func(t *testing.T) {
		for _, dims := range [][2]int{{1, 1}, {2, 3}, {5, 4}, {7, 7}} {
			g, err := New(dims[0], dims[1])
			require.NoError(t, err)
			assert.Equal(t, dims[0], g.Rows())
			assert.Equal(t, dims[1], g.Cols())

			snap := g.Snapshot()
			require.Len(t, snap.Cells, dims[0])
			for _, row := range snap.Cells {
				require.Len(t, row, dims[1])
				for _, cell := range row {
					assert.True(t, cell.NorthWall && cell.SouthWall && cell.EastWall && cell.WestWall)
					assert.Equal(t, RoleNone, cell.Role())
				}
			}
			assert.False(t, g.RolesPlaced())
		}
	})

	t.Run("non-positive dimensions", func(t *testing.T) {
		for _, dims := range [][2]int{{0, 3}, {3, 0}, {-1, 2}, {0, 0}} {
			_, err := New(dims[0], dims[1])
			assert.ErrorIs(t, err, ErrInvalidDimension)
		}
	})
}

func TestRemoveWall(t *testing.T) {
	t.Run("symmetric and local", func(t *testing.T) {
		g, err := New(3, 3)
		require.NoError(t, err)
		center := CellPosition{Row: 1, Col: 1}

		for _, d := range Directions {
			before := g.Snapshot()
			g.RemoveWall(center, d)
			after := g.Snapshot()

			next, ok := g.Neighbor(center, d)
			require.True(t, ok)
			assert.False(t, g.HasWall(center, d))
			assert.False(t, g.HasWall(next, d.Opposite()))

			changed := 0
			for r := 0; r < 3; r++ {
				for c := 0; c < 3; c++ {
					if before.Cells[r][c] != after.Cells[r][c] {
						changed++
					}
				}
			}
			assert.Equal(t, 2, changed, "direction %s", d)
		}
	})

	t.Run("boundary is a no-op", func(t *testing.T) {
		g, err := New(2, 2)
		require.NoError(t, err)
		before := g.Snapshot()

		g.RemoveWall(CellPosition{Row: 0, Col: 0}, North)
		g.RemoveWall(CellPosition{Row: 0, Col: 0}, West)
		g.RemoveWall(CellPosition{Row: 1, Col: 1}, South)
		g.RemoveWall(CellPosition{Row: 1, Col: 1}, East)

		assert.Equal(t, before, g.Snapshot())
	})
}

func TestNeighborsReachable(t *testing.T) {
	g, err := New(3, 3)
	require.NoError(t, err)
	center := CellPosition{Row: 1, Col: 1}
	assert.Empty(t, g.NeighborsReachable(center))

	g.RemoveWall(center, North)
	g.RemoveWall(center, East)
	assert.ElementsMatch(t, []CellPosition{{Row: 0, Col: 1}, {Row: 1, Col: 2}}, g.NeighborsReachable(center))
	assert.Equal(t, []CellPosition{center}, g.NeighborsReachable(CellPosition{Row: 0, Col: 1}))
}

func TestPlaceRoles(t *testing.T) {
	t.Run("three distinct cells", func(t *testing.T) {
		for seed := int64(1); seed <= 20; seed++ {
			g, err := New(2, 2)
			require.NoError(t, err)
			require.NoError(t, g.PlaceRoles(rand.New(rand.NewSource(seed))))

			assert.True(t, g.RolesPlaced())
			assert.NotEqual(t, g.Start(), g.Finish())
			assert.NotEqual(t, g.Start(), g.Prize())
			assert.NotEqual(t, g.Finish(), g.Prize())
			assert.True(t, g.Cell(g.Start()).Start)
			assert.True(t, g.Cell(g.Finish()).Finish)
			assert.True(t, g.Cell(g.Prize()).Prize)
		}
	})

	t.Run("same seed same layout", func(t *testing.T) {
		a, _ := New(6, 6)
		b, _ := New(6, 6)
		require.NoError(t, a.PlaceRoles(rand.New(rand.NewSource(40))))
		require.NoError(t, b.PlaceRoles(rand.New(rand.NewSource(40))))
		assert.Equal(t, a.Snapshot(), b.Snapshot())
	})

	t.Run("too few cells", func(t *testing.T) {
		for _, dims := range [][2]int{{1, 1}, {1, 2}, {2, 1}} {
			g, err := New(dims[0], dims[1])
			require.NoError(t, err)
			err = g.PlaceRoles(rand.New(rand.NewSource(1)))
			assert.ErrorIs(t, err, ErrInvalidDimension)
			assert.False(t, g.RolesPlaced())
		}
	})
}

func TestIsConnected(t *testing.T) {
	t.Run("a cell reaches itself", func(t *testing.T) {
		g, err := New(1, 1)
		require.NoError(t, err)
		a := CellPosition{Row: 0, Col: 0}
		assert.True(t, g.IsConnected(a, a))
	})

	t.Run("walls block and openings connect", func(t *testing.T) {
		g, err := New(3, 3)
		require.NoError(t, err)
		from := CellPosition{Row: 0, Col: 0}
		to := CellPosition{Row: 2, Col: 2}
		assert.False(t, g.IsConnected(from, to))

		g.RemoveWall(from, East)
		g.RemoveWall(CellPosition{Row: 0, Col: 1}, East)
		g.RemoveWall(CellPosition{Row: 0, Col: 2}, South)
		assert.False(t, g.IsConnected(from, to))

		g.RemoveWall(CellPosition{Row: 1, Col: 2}, South)
		assert.True(t, g.IsConnected(from, to))
		assert.True(t, g.IsConnected(to, from))
	})

	t.Run("cycles terminate", func(t *testing.T) {
		g, err := New(2, 3)
		require.NoError(t, err)
		g.RemoveWall(CellPosition{Row: 0, Col: 0}, East)
		g.RemoveWall(CellPosition{Row: 0, Col: 1}, South)
		g.RemoveWall(CellPosition{Row: 1, Col: 1}, West)
		g.RemoveWall(CellPosition{Row: 1, Col: 0}, North)
		assert.False(t, g.IsConnected(CellPosition{Row: 0, Col: 0}, CellPosition{Row: 0, Col: 2}))
		assert.True(t, g.IsConnected(CellPosition{Row: 0, Col: 0}, CellPosition{Row: 1, Col: 1}))
	})
}

func TestIsValid(t *testing.T) {
	g, err := New(2, 2)
	require.NoError(t, err)
	assert.False(t, g.IsValid())

	g = gridWithRoles(t, 2, 2, CellPosition{Row: 0, Col: 0}, CellPosition{Row: 0, Col: 1}, CellPosition{Row: 1, Col: 0})
	assert.False(t, g.IsValid())

	g.RemoveWall(g.Start(), East)
	assert.False(t, g.IsValid())

	g.RemoveWall(g.Start(), South)
	assert.True(t, g.IsValid())
}

func TestClone(t *testing.T) {
	template := gridWithRoles(t, 3, 3, CellPosition{Row: 0, Col: 0}, CellPosition{Row: 2, Col: 2}, CellPosition{Row: 1, Col: 1})
	before := template.Snapshot()

	clone := template.Clone()
	clone.RemoveWall(CellPosition{Row: 1, Col: 1}, North)
	clone.AssignRole(CellPosition{Row: 0, Col: 2}, RoleFinish)

	assert.Equal(t, before, template.Snapshot())
	assert.NotEqual(t, before, clone.Snapshot())
	assert.Equal(t, template.Start(), clone.Start())
	assert.Equal(t, CellPosition{Row: 2, Col: 2}, template.Finish())
	assert.Equal(t, CellPosition{Row: 0, Col: 2}, clone.Finish())
}

func TestAssignRoleMovesRole(t *testing.T) {
	g := gridWithRoles(t, 2, 2, CellPosition{Row: 0, Col: 0}, CellPosition{Row: 0, Col: 1}, CellPosition{Row: 1, Col: 1})

	g.AssignRole(CellPosition{Row: 1, Col: 0}, RoleFinish)

	assert.Equal(t, CellPosition{Row: 1, Col: 0}, g.Finish())
	assert.Equal(t, RoleNone, roleAt(g, CellPosition{Row: 0, Col: 1}))
	assert.Equal(t, RoleFinish, roleAt(g, CellPosition{Row: 1, Col: 0}))

	finishes := 0
	for _, row := range g.Snapshot().Cells {
		for _, cell := range row {
			if cell.Finish {
				finishes++
			}
		}
	}
	assert.Equal(t, 1, finishes)

	t.Run("unknown role is ignored", func(t *testing.T) {
		g.AssignRole(CellPosition{Row: 0, Col: 1}, Role(7))
		assert.Equal(t, RoleNone, roleAt(g, CellPosition{Row: 0, Col: 1}))
	})
}

func roleAt(g *Grid, pos CellPosition) Role {
	cell := g.Cell(pos)
	return cell.Role()
}

func TestFromSnapshot(t *testing.T) {
	g := gridWithRoles(t, 2, 3, CellPosition{Row: 0, Col: 0}, CellPosition{Row: 1, Col: 2}, CellPosition{Row: 0, Col: 2})
	g.RemoveWall(CellPosition{Row: 0, Col: 0}, East)
	g.RemoveWall(CellPosition{Row: 0, Col: 1}, South)

	restored, err := FromSnapshot(g.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, g.Snapshot(), restored.Snapshot())
	assert.True(t, restored.RolesPlaced())
	assert.Equal(t, g.Prize(), restored.Prize())
}

func TestSnapshotString(t *testing.T) {
	g := gridWithRoles(t, 1, 3, CellPosition{Row: 0, Col: 0}, CellPosition{Row: 0, Col: 1}, CellPosition{Row: 0, Col: 2})
	g.RemoveWall(CellPosition{Row: 0, Col: 0}, East)

	expected := "" +
		"+---+---+---+\n" +
		"| S   F | P |\n" +
		"+---+---+---+\n"
	assert.Equal(t, expected, g.String())

	t.Run("malformed snapshots draw nothing", func(t *testing.T) {
		s := g.Snapshot()

		short := s
		short.Cells = s.Cells[:0]
		assert.Equal(t, "", short.String())

		ragged := s
		ragged.Cells = [][]Cell{s.Cells[0][:2]}
		assert.Equal(t, "", ragged.String())

		assert.Equal(t, "", Snapshot{Rows: 2, Cols: 2}.String())
	})
}
