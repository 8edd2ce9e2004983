package survivalmaze

// neighbourDirs lists the four orthogonal steps in (col, row) order.
var neighbourDirs = [4]Cell{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}

// generate carves the grid with a randomized growing-tree walk from the center
// cell. The frontier is popped at a uniformly random index, so the walk is
// neither depth- nor breadth-first. The walk stops at the first boundary cell
// it pops, which becomes the exit.
func (m *Maze) generate(enemyChance float64) {
	start := Cell{Col: m.cols / 2, Row: m.rows / 2}
	m.start = start

	visited := make([]bool, len(m.tiles))
	visited[m.index(start)] = true
	frontier := []Cell{start}

	for len(frontier) > 0 {
		i := m.rng.IntN(len(frontier))
		current := frontier[i]
		frontier = append(frontier[:i], frontier[i+1:]...)

		if m.IsOnBoundary(current) {
			m.setTile(current, TileFree)
			m.exit = current
			m.hasExit = true
			break
		}

		free := 0
		var available []Cell
		for _, n := range m.neighbours(current, visited) {
			switch m.Tile(n) {
			case TileFree:
				free++
			case TileWall:
				available = append(available, n)
			}
		}
		if free > 2 {
			continue
		}

		if m.rng.Float64() <= enemyChance {
			m.setTile(current, TileEnemy)
		} else {
			m.setTile(current, TileFree)
		}

		if len(available) > 1 {
			frontier = append(frontier, current)
		}
		for _, n := range available {
			frontier = append(frontier, n)
			visited[m.index(n)] = true
		}
	}

	// The start may have been turned into an enemy cell, or never carved at all.
	m.setTile(start, TileFree)
}

// neighbours returns the in-bounds, not yet visited orthogonal neighbours of c.
func (m *Maze) neighbours(c Cell, visited []bool) []Cell {
	out := make([]Cell, 0, len(neighbourDirs))
	for _, d := range neighbourDirs {
		n := Cell{Col: c.Col + d.Col, Row: c.Row + d.Row}
		if !m.InBounds(n) {
			continue
		}
		if visited[m.index(n)] {
			continue
		}
		out = append(out, n)
	}
	return out
}
