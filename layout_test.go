package survivalmaze

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// --- ParseLayout ---

func TestParseLayoutSkipsCommentsAndSpaces(t *testing.T) {
	src := "; header\n\n# # #\r\n# S .\n; trailing\n# # #\n"
	rows, err := ParseLayout(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"###", "#S.", "###"}
	if len(rows) != len(want) {
		t.Fatalf("rows = %q, want %q", rows, want)
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("row %d = %q, want %q", i, rows[i], want[i])
		}
	}
}

func TestParseLayoutRaggedRows(t *testing.T) {
	_, err := ParseLayout(strings.NewReader("###\n##\n###\n"))
	if !errors.Is(err, ErrLayout) {
		t.Errorf("err = %v, want ErrLayout", err)
	}
}

func TestLoadLayoutFile(t *testing.T) {
	rows, err := LoadLayout(filepath.Join("testdata", "ring.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 5 || rows[2] != "#.S?#" {
		t.Errorf("rows = %q", rows)
	}
}

func TestLoadLayoutMissingFile(t *testing.T) {
	_, err := LoadLayout(filepath.Join(t.TempDir(), "missing.txt"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist", err)
	}
}

// --- NewMazeFromLayout ---

func TestNewMazeFromLayoutFixture(t *testing.T) {
	rows, err := LoadLayout(filepath.Join("testdata", "ring.txt"))
	if err != nil {
		t.Fatal(err)
	}
	m, err := NewMazeFromLayout(rows, testMazeConfig(0, 0, 10, 1))
	if err != nil {
		t.Fatal(err)
	}
	if m.Rows() != 5 || m.Cols() != 5 {
		t.Errorf("size = %dx%d, want 5x5", m.Rows(), m.Cols())
	}
	if m.Start() != (Cell{2, 2}) {
		t.Errorf("Start = %v, want {2 2}", m.Start())
	}
	exit, ok := m.Exit()
	if !ok || exit != (Cell{2, 4}) {
		t.Errorf("Exit = %v, %v, want {2 4}, true", exit, ok)
	}
	if len(m.Enemies()) != 1 {
		t.Errorf("enemies = %d, want 1", len(m.Enemies()))
	}
	if m.Tile(Cell{3, 2}) != TileEnemy {
		t.Errorf("tile (3,2) = %v, want enemy", m.Tile(Cell{3, 2}))
	}
}

func TestNewMazeFromLayoutDefaultStart(t *testing.T) {
	centered := testLayoutMaze(t,
		"###",
		"#.#",
		"###",
	)
	if centered.Start() != (Cell{1, 1}) {
		t.Errorf("center start = %v, want {1 1}", centered.Start())
	}

	fallback := testLayoutMaze(t,
		"####",
		"##.#",
		"####",
		"####",
	)
	// Center (2,2) is a wall; the first walkable cell wins.
	if fallback.Start() != (Cell{2, 1}) {
		t.Errorf("fallback start = %v, want {2 1}", fallback.Start())
	}
	if _, ok := fallback.Exit(); ok {
		t.Error("closed layout reports an exit")
	}
}

func TestNewMazeFromLayoutErrors(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		want error
	}{
		{"unknown char", []string{"###", "#x#", "###"}, ErrLayout},
		{"ragged", []string{"###", "#.", "###"}, ErrLayout},
		{"all walls", []string{"###", "###", "###"}, ErrLayout},
		{"too small", []string{"#.", ".#"}, ErrMazeTooSmall},
		{"empty", nil, ErrMazeTooSmall},
	}
	for _, tt := range tests {
		_, err := NewMazeFromLayout(tt.rows, testMazeConfig(0, 0, 10, 1))
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: err = %v, want %v", tt.name, err, tt.want)
		}
	}
}
