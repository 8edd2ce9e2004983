package survivalmaze

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Level layouts are plain text, one grid row per line:
//
//	# wall
//	. free floor
//	? enemy spawn
//	S start cell (free floor)
//
// Spaces are ignored so that layouts printed by Maze.String parse back.
// Blank lines and lines starting with ';' are skipped.

// ParseLayout reads a layout and returns one string per grid row with
// spaces removed.
func ParseLayout(reader io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Split(bufio.ScanLines)

	var rows []string
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.HasPrefix(line, ";") {
			continue
		}
		line = strings.ReplaceAll(line, " ", "")
		if line == "" {
			continue
		}
		if len(rows) > 0 && len(line) != len(rows[0]) {
			return nil, fmt.Errorf("layout row %d has %d cells, want %d: %w",
				len(rows), len(line), len(rows[0]), ErrLayout)
		}
		rows = append(rows, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	return rows, nil
}

// LoadLayout reads a layout file from disk.
func LoadLayout(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		logger.WithError(err).WithField("path", path).Error("failed opening layout")
		return nil, err
	}
	defer file.Close()
	return ParseLayout(file)
}

// NewMazeFromLayout builds a maze from layout rows instead of generating one.
// cfg.Rows and cfg.Cols are taken from the layout; cfg.EnemyChance is unused.
// The start is the 'S' cell if present, else the center cell when walkable,
// else the first walkable cell. The exit is the first walkable boundary cell
// in row-major order.
func NewMazeFromLayout(lines []string, cfg MazeConfig) (*Maze, error) {
	cfg.Rows = len(lines)
	if len(lines) > 0 {
		cfg.Cols = len(lines[0])
	}
	m, err := newEmptyMaze(cfg)
	if err != nil {
		return nil, err
	}

	hasStart := false
	for row, line := range lines {
		if len(line) != m.cols {
			return nil, fmt.Errorf("layout row %d has %d cells, want %d: %w", row, len(line), m.cols, ErrLayout)
		}
		for col, ch := range line {
			c := Cell{Col: col, Row: row}
			switch ch {
			case '#':
				m.setTile(c, TileWall)
			case '.':
				m.setTile(c, TileFree)
			case '?':
				m.setTile(c, TileEnemy)
			case 'S', 's':
				m.setTile(c, TileFree)
				m.start = c
				hasStart = true
			default:
				logger.WithFields(log.Fields{"row": row, "col": col, "char": string(ch)}).
					Error("unknown layout character")
				return nil, fmt.Errorf("layout cell (%d,%d) %q: %w", col, row, ch, ErrLayout)
			}
		}
	}

	if !hasStart {
		start, ok := m.defaultStart()
		if !ok {
			return nil, fmt.Errorf("layout has no walkable cell: %w", ErrLayout)
		}
		m.start = start
	}
	m.exit, m.hasExit = m.firstBoundaryExit()

	m.placeInstances()
	m.logSummary()
	return m, nil
}

func (m *Maze) defaultStart() (Cell, bool) {
	center := Cell{Col: m.cols / 2, Row: m.rows / 2}
	if m.Tile(center) != TileWall {
		return center, true
	}
	for i, t := range m.tiles {
		if t != TileWall {
			return Cell{Col: i % m.cols, Row: i / m.cols}, true
		}
	}
	return Cell{}, false
}

func (m *Maze) firstBoundaryExit() (Cell, bool) {
	for i, t := range m.tiles {
		c := Cell{Col: i % m.cols, Row: i / m.cols}
		if t != TileWall && m.IsOnBoundary(c) && c != m.start {
			return c, true
		}
	}
	return Cell{}, false
}
