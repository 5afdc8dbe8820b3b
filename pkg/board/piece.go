package board

import (
	"fmt"
)

type Side int

const (
	White Side = iota
	Black
)

func (s Side) String() string {
	switch s {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "Unknown"
	}
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == White {
		return Black
	}
	return White
}

// Forward is the row delta a pawn of this side advances by.
func (s Side) Forward() int {
	if s == White {
		return -1
	}
	return 1
}

type Kind int

const (
	NoKind Kind = iota
	Pawn
	Rook
	Knight
	Bishop
	Queen
	King
)

func (k Kind) String() string {
	switch k {
	case NoKind:
		return "None"
	case Pawn:
		return "Pawn"
	case Rook:
		return "Rook"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Known reports whether k is one of the six piece kinds.
func (k Kind) Known() bool {
	return k >= Pawn && k <= King
}

// Piece is a value; two pieces of the same kind and side are interchangeable.
// The zero Piece stands for an empty square.
type Piece struct {
	Kind Kind
	Side Side
}

func W(k Kind) Piece { return Piece{Kind: k, Side: White} }
func B(k Kind) Piece { return Piece{Kind: k, Side: Black} }

func (p Piece) IsZero() bool {
	return p.Kind == NoKind
}

func (p Piece) String() string {
	if p.IsZero() {
		return "Empty"
	}
	return p.Side.String() + p.Kind.String()
}

// Glyph returns the Unicode chess symbol for p, or a blank for an empty
// square.
func (p Piece) Glyph() string {
	cp, ok := toChess(p)
	if !ok {
		return " "
	}
	return cp.String()
}
