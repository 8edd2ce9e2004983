package survivalmaze

import (
	"testing"
)

// --- generate ---

func TestGenerateStartIsFree(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		m, err := NewMaze(testMazeConfig(10, 10, 3, seed))
		if err != nil {
			t.Fatal(err)
		}
		start := m.Start()
		if start != (Cell{Col: 5, Row: 5}) {
			t.Errorf("seed %d: start = %v, want {5 5}", seed, start)
		}
		if m.Tile(start) != TileFree {
			t.Errorf("seed %d: start tile = %v, want free", seed, m.Tile(start))
		}
	}
}

func TestGenerateExitReachable(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		m, err := NewMaze(testMazeConfig(10, 10, 3, seed))
		if err != nil {
			t.Fatal(err)
		}
		exit, ok := m.Exit()
		if !ok {
			t.Errorf("seed %d: no exit", seed)
			continue
		}
		if !m.IsOnBoundary(exit) {
			t.Errorf("seed %d: exit %v not on the boundary", seed, exit)
		}
		if m.Tile(exit) == TileWall {
			t.Errorf("seed %d: exit %v is a wall", seed, exit)
		}
		if !reachable(m, m.Start())[exit] {
			t.Errorf("seed %d: exit %v unreachable from start\n%s", seed, exit, m)
		}
	}
}

func TestGenerateSingleBoundaryOpening(t *testing.T) {
	m, err := NewMaze(testMazeConfig(15, 15, 10, 3))
	if err != nil {
		t.Fatal(err)
	}
	open := 0
	for row := 0; row < m.Rows(); row++ {
		for col := 0; col < m.Cols(); col++ {
			c := Cell{Col: col, Row: row}
			if m.IsOnBoundary(c) && m.Tile(c) != TileWall {
				open++
			}
		}
	}
	if open != 1 {
		t.Errorf("boundary openings = %d, want 1\n%s", open, m)
	}
}

func TestGenerateEveryWalkableCellConnected(t *testing.T) {
	m, err := NewMaze(testMazeConfig(12, 9, 3, 9))
	if err != nil {
		t.Fatal(err)
	}
	seen := reachable(m, m.Start())
	for row := 0; row < m.Rows(); row++ {
		for col := 0; col < m.Cols(); col++ {
			c := Cell{Col: col, Row: row}
			if m.Tile(c) != TileWall && !seen[c] {
				t.Errorf("cell %v walkable but disconnected", c)
			}
		}
	}
}

func TestGenerateDeterministicForSeed(t *testing.T) {
	a, err := NewMaze(testMazeConfig(11, 11, 3, 42))
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewMaze(testMazeConfig(11, 11, 3, 42))
	if err != nil {
		t.Fatal(err)
	}
	if a.String() != b.String() {
		t.Errorf("same seed produced different mazes:\n%s\n%s", a, b)
	}
}

func TestGenerateEnemyChance(t *testing.T) {
	cfg := testMazeConfig(15, 15, 3, 8)
	cfg.EnemyChance = -1
	m, err := NewMaze(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Enemies()) != 0 {
		t.Errorf("enemies with chance disabled = %d, want 0", len(m.Enemies()))
	}

	cfg = testMazeConfig(15, 15, 3, 8)
	cfg.EnemyChance = 1
	m, err = NewMaze(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Enemies()) == 0 {
		t.Error("chance 1 spawned no enemies")
	}
	if m.Tile(m.Start()) != TileFree {
		t.Error("start cell holds an enemy")
	}
	for _, e := range m.Enemies() {
		c, ok := m.CoordinatesFromPosition(e.Position())
		if !ok || m.Tile(c) != TileEnemy {
			t.Errorf("enemy at %v stands on %v", e.Position(), m.Tile(c))
		}
	}
}

func TestGenerateSmallestMaze(t *testing.T) {
	m, err := NewMaze(testMazeConfig(3, 3, 1, 1))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := m.Exit(); !ok {
		t.Error("3x3 maze has no exit")
	}
}

// --- neighbours ---

func TestNeighboursExcludesVisitedAndOutOfBounds(t *testing.T) {
	m, err := newEmptyMaze(testMazeConfig(4, 4, 1, 1))
	if err != nil {
		t.Fatal(err)
	}
	visited := make([]bool, 16)

	corner := m.neighbours(Cell{0, 0}, visited)
	if len(corner) != 2 {
		t.Errorf("corner neighbours = %v, want 2", corner)
	}

	visited[m.index(Cell{1, 2})] = true
	inner := m.neighbours(Cell{1, 1}, visited)
	if len(inner) != 3 {
		t.Errorf("inner neighbours = %v, want 3", inner)
	}
	for _, n := range inner {
		if n == (Cell{1, 2}) {
			t.Error("visited cell returned")
		}
		d := absInt(n.Col-1) + absInt(n.Row-1)
		if d != 1 {
			t.Errorf("neighbour %v not orthogonally adjacent", n)
		}
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
