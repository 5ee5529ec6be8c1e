// Package domineering generates games from Domineering boards. Left places
// vertical dominoes and Right places horizontal ones; a placed domino
// removes its two cells from the board.
package domineering

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"combgame/internal/domain/game"
	errs "combgame/internal/errors"
)

type Cell struct {
	X int `json:"x" bson:"x"`
	Y int `json:"y" bson:"y"`
}

func compareCells(a, b Cell) int {
	if c := cmp.Compare(a.Y, b.Y); c != 0 {
		return c
	}
	return cmp.Compare(a.X, b.X)
}

// Board is a finite set of free cells, kept sorted by row then column.
type Board struct {
	cells []Cell
}

func NewBoard(cells ...Cell) Board {
	cs := slices.Clone(cells)
	slices.SortFunc(cs, compareCells)
	return Board{cells: slices.Compact(cs)}
}

// Rect is the full w×h board with its lower left cell at (0,0).
func Rect(w, h int) Board {
	cells := make([]Cell, 0, max(w, 0)*max(h, 0))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cells = append(cells, Cell{x, y})
		}
	}
	return Board{cells: cells}
}

// ParseBoard reads rows of '#' (free cell) and '.' (hole). The first row is
// the top of the board. Rows may differ in length.
func ParseBoard(rows []string) (Board, error) {
	var cells []Cell
	for i, row := range rows {
		y := len(rows) - 1 - i
		for x, c := range []rune(row) {
			switch c {
			case '#':
				cells = append(cells, Cell{x, y})
			case '.':
			default:
				return Board{}, fmt.Errorf("%w: row %d column %d: unexpected %q", errs.ErrInvalidBoard, i, x, c)
			}
		}
	}
	return NewBoard(cells...), nil
}

func (b Board) Cells() []Cell { return slices.Clone(b.cells) }

func (b Board) Len() int { return len(b.cells) }

// Check rejects boards with more than maxCells cells. A non-positive
// maxCells accepts any board.
func (b Board) Check(maxCells int) error {
	if maxCells > 0 && len(b.cells) > maxCells {
		return fmt.Errorf("%w: %d cells, at most %d allowed", errs.ErrBoardTooLarge, len(b.cells), maxCells)
	}
	return nil
}

func (b Board) bounds() (minX, minY, maxX, maxY int) {
	if len(b.cells) == 0 {
		return 0, 0, -1, -1
	}
	minX, maxX = b.cells[0].X, b.cells[0].X
	minY, maxY = b.cells[0].Y, b.cells[len(b.cells)-1].Y
	for _, c := range b.cells {
		minX = min(minX, c.X)
		maxX = max(maxX, c.X)
	}
	return minX, minY, maxX, maxY
}

// Rows renders the bounding box of the board in the ParseBoard format.
func (b Board) Rows() []string {
	minX, minY, maxX, maxY := b.bounds()
	if len(b.cells) == 0 {
		return nil
	}
	set := b.set()
	rows := make([]string, 0, maxY-minY+1)
	for y := maxY; y >= minY; y-- {
		var sb strings.Builder
		for x := minX; x <= maxX; x++ {
			if _, ok := set[Cell{x, y}]; ok {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		rows = append(rows, sb.String())
	}
	return rows
}

func (b Board) String() string { return strings.Join(b.Rows(), "/") }

// Key identifies the position up to translation: boards that are shifted
// copies of each other play the same game.
func (b Board) Key() string {
	minX, minY, _, _ := b.bounds()
	var sb strings.Builder
	for i, c := range b.cells {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(strconv.Itoa(c.X - minX))
		sb.WriteByte(',')
		sb.WriteString(strconv.Itoa(c.Y - minY))
	}
	return sb.String()
}

// TurnBound is the number of dominoes that could still fit.
func (b Board) TurnBound() int { return len(b.cells) / 2 }

func (b Board) set() map[Cell]struct{} {
	s := make(map[Cell]struct{}, len(b.cells))
	for _, c := range b.cells {
		s[c] = struct{}{}
	}
	return s
}

// LeftMoves lists the boards left after a vertical domino on (x,y),(x,y+1).
func (b Board) LeftMoves() []Board {
	return b.moves(0, 1)
}

// RightMoves lists the boards left after a horizontal domino on (x,y),(x+1,y).
func (b Board) RightMoves() []Board {
	return b.moves(1, 0)
}

func (b Board) moves(dx, dy int) []Board {
	set := b.set()
	var out []Board
	for _, c := range b.cells {
		other := Cell{c.X + dx, c.Y + dy}
		if _, ok := set[other]; !ok {
			continue
		}
		rest := make([]Cell, 0, len(b.cells)-2)
		for _, k := range b.cells {
			if k != c && k != other {
				rest = append(rest, k)
			}
		}
		out = append(out, Board{cells: rest})
	}
	return out
}

// Game expands the board into its game tree.
func (b Board) Game() (*game.Game, error) {
	return game.FromState(b)
}

// GameContext expands the board, giving up when ctx ends or once more than
// maxNodes positions have been built.
func (b Board) GameContext(ctx context.Context, maxNodes int) (*game.Game, error) {
	return game.FromStateContext(ctx, b, maxNodes)
}
