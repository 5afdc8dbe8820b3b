// Package moves projects the destination squares a piece could reach from a
// given square. Only piece geometry and occupancy are considered: there is no
// notion of check, turn order or special moves.
package moves

import (
	"fmt"
	"sort"

	"github.com/qnkhuat/clickboard/pkg/board"
)

type direction struct {
	dr, dc int
}

var (
	orthogonal = []direction{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	diagonal   = []direction{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	neighbours = append(append([]direction{}, orthogonal...), diagonal...)
	jumps      = []direction{
		{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
		{1, -2}, {1, 2}, {2, -1}, {2, 1},
	}
)

// Set is an unordered set of positions.
type Set map[board.Position]struct{}

func (s Set) Add(p board.Position) {
	s[p] = struct{}{}
}

func (s Set) Has(p board.Position) bool {
	_, ok := s[p]
	return ok
}

func (s Set) Len() int {
	return len(s)
}

// Sorted returns the members in row-major order.
func (s Set) Sorted() []board.Position {
	out := make([]board.Position, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

// Project returns the candidate destinations for p standing on origin. The
// board is only read. p does not have to be the piece on origin, which lets
// callers ask "what if" questions.
func Project(b *board.Board, origin board.Position, p board.Piece) (Set, error) {
	if !origin.Valid() {
		return nil, fmt.Errorf("project from %s: %w", origin, board.ErrOutOfBounds)
	}

	out := make(Set)
	switch p.Kind {
	case board.Pawn:
		// Single step only; occupancy of the target is not checked.
		if to := origin.Offset(p.Side.Forward(), 0); to.Valid() {
			out.Add(to)
		}
	case board.Rook:
		walk(b, origin, p.Side, orthogonal, out)
	case board.Bishop:
		walk(b, origin, p.Side, diagonal, out)
	case board.Queen:
		walk(b, origin, p.Side, orthogonal, out)
		walk(b, origin, p.Side, diagonal, out)
	case board.Knight:
		step(b, origin, p.Side, jumps, out)
	case board.King:
		step(b, origin, p.Side, neighbours, out)
	default:
		return nil, fmt.Errorf("project %s from %s: %w", p.Kind, origin, board.ErrUnknownPieceKind)
	}
	return out, nil
}

// walk follows each direction until the edge or the first occupied square.
// An enemy piece ends the ray and is included; a friendly one is not.
func walk(b *board.Board, origin board.Position, side board.Side, dirs []direction, out Set) {
	for _, d := range dirs {
		for to := origin.Offset(d.dr, d.dc); to.Valid(); to = to.Offset(d.dr, d.dc) {
			target, _ := b.PieceAt(to)
			if target.IsZero() {
				out.Add(to)
				continue
			}
			if target.Side != side {
				out.Add(to)
			}
			break
		}
	}
}

func step(b *board.Board, origin board.Position, side board.Side, offsets []direction, out Set) {
	for _, d := range offsets {
		to := origin.Offset(d.dr, d.dc)
		if !to.Valid() {
			continue
		}
		target, _ := b.PieceAt(to)
		if target.IsZero() || target.Side != side {
			out.Add(to)
		}
	}
}
