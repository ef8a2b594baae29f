// Package tilemap reads the text tile-map format:
//
//	#Tiles#
//	<texture>, <index>, <collidable>
//	...
//	#Map#
//	<index>,<index>,...
//	...
//
// Blank lines and lines starting with "//" are ignored.
package tilemap

import (
	"bufio"
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
)

// TileSize is the edge length of a map tile in pixels.
const TileSize = 32

//go:embed maps/*.map
var builtinMaps embed.FS

// DefaultMapName is the embedded map used when no map file is given.
const DefaultMapName = "meadow.map"

var (
	ErrMissingSection = errors.New("tilemap: line outside #Tiles# or #Map# section")
	ErrUnknownTile    = errors.New("tilemap: tile index not in palette")
	ErrRaggedMap      = errors.New("tilemap: map rows differ in length")
	ErrEmptyMap       = errors.New("tilemap: map has no rows")
	ErrBadTile        = errors.New("tilemap: malformed tile definition")
)

// Tile is one palette entry.
type Tile struct {
	Texture string
	Index   int
	Solid   bool
}

// Map is a parsed tile map.
type Map struct {
	Palette  map[int]Tile
	Cols     int
	Rows     int
	TileSize int
	cells    []int
}

// At returns the palette index of the tile at (col, row).
func (m *Map) At(col, row int) int {
	return m.cells[row*m.Cols+col]
}

// Solid reports whether the tile at (col, row) is collidable. Tiles outside
// the map are solid.
func (m *Map) Solid(col, row int) bool {
	if col < 0 || row < 0 || col >= m.Cols || row >= m.Rows {
		return true
	}
	return m.Palette[m.At(col, row)].Solid
}

// Load parses the map file at path.
func Load(path string) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open map: %w", err)
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Printf("[MAP] Loaded %s (%dx%d tiles)", path, m.Cols, m.Rows)
	return m, nil
}

// Builtin parses one of the maps embedded in the binary.
func Builtin(name string) (*Map, error) {
	data, err := builtinMaps.ReadFile("maps/" + name)
	if err != nil {
		return nil, fmt.Errorf("read builtin map: %w", err)
	}
	return Parse(bytes.NewReader(data))
}

// Parse reads a map from r.
func Parse(r io.Reader) (*Map, error) {
	const (
		sectionNone = iota
		sectionTiles
		sectionMap
	)

	m := &Map{
		Palette:  make(map[int]Tile),
		TileSize: TileSize,
	}
	section := sectionNone
	lineNo := 0

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		switch {
		case strings.Contains(line, "#Tiles#"):
			section = sectionTiles
			continue
		case strings.Contains(line, "#Map#"):
			section = sectionMap
			continue
		}

		switch section {
		case sectionTiles:
			t, err := parseTile(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			if _, dup := m.Palette[t.Index]; dup {
				return nil, fmt.Errorf("line %d: %w: duplicate index %d", lineNo, ErrBadTile, t.Index)
			}
			m.Palette[t.Index] = t

		case sectionMap:
			fields := strings.Split(line, ",")
			if m.Rows > 0 && len(fields) != m.Cols {
				return nil, fmt.Errorf("line %d: %w: got %d, want %d", lineNo, ErrRaggedMap, len(fields), m.Cols)
			}
			for _, f := range fields {
				idx, err := strconv.Atoi(strings.TrimSpace(f))
				if err != nil {
					return nil, fmt.Errorf("line %d: bad tile index %q: %w", lineNo, f, err)
				}
				if _, ok := m.Palette[idx]; !ok {
					return nil, fmt.Errorf("line %d: %w: %d", lineNo, ErrUnknownTile, idx)
				}
				m.cells = append(m.cells, idx)
			}
			m.Cols = len(fields)
			m.Rows++

		default:
			return nil, fmt.Errorf("line %d: %w", lineNo, ErrMissingSection)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read map: %w", err)
	}
	if m.Rows == 0 {
		return nil, ErrEmptyMap
	}
	return m, nil
}

func parseTile(line string) (Tile, error) {
	parts := strings.Split(line, ",")
	if len(parts) < 3 {
		return Tile{}, fmt.Errorf("%w: %q", ErrBadTile, line)
	}
	idx, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Tile{}, fmt.Errorf("%w: index %q", ErrBadTile, parts[1])
	}
	return Tile{
		Texture: strings.TrimSpace(parts[0]),
		Index:   idx,
		Solid:   strings.Contains(parts[2], "true"),
	}, nil
}
