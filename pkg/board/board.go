package board

import (
	"errors"
	"fmt"
)

const (
	NumRows = 8
	NumCols = 8
)

var (
	ErrOutOfBounds      = errors.New("position out of bounds")
	ErrUnknownPieceKind = errors.New("unknown piece kind")
)

// Position addresses a square by grid index. Row 0 is the eighth rank,
// column 0 is the a-file.
type Position struct {
	Row int
	Col int
}

func (p Position) Valid() bool {
	return p.Row >= 0 && p.Row < NumRows && p.Col >= 0 && p.Col < NumCols
}

func (p Position) String() string {
	if !p.Valid() {
		return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
	}
	return fmt.Sprintf("%c%d", 'a'+p.Col, NumRows-p.Row)
}

// Offset returns the position dr rows and dc columns away. The result may be
// out of bounds.
func (p Position) Offset(dr, dc int) Position {
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}

type SquareColor int

const (
	Light SquareColor = iota
	Dark
)

func (c SquareColor) String() string {
	if c == Dark {
		return "Dark"
	}
	return "Light"
}

// Square is one cell of the grid. Active and Candidate mirror the selection
// state so that a renderer can rebuild the view from the board alone.
type Square struct {
	Piece     Piece
	Color     SquareColor
	Active    bool
	Candidate bool
}

// Board is the 8x8 grid. It is the single source of truth for piece
// placement; keeping any view in sync is the caller's job.
type Board struct {
	squares [NumRows][NumCols]Square
}

var backRank = [NumCols]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// Empty returns a board without pieces.
func Empty() *Board {
	b := &Board{}
	for r := 0; r < NumRows; r++ {
		for c := 0; c < NumCols; c++ {
			color := Light
			if (r+c)%2 == 1 {
				color = Dark
			}
			b.squares[r][c].Color = color
		}
	}
	return b
}

// New returns a board in the standard starting layout.
func New() *Board {
	b := Empty()
	for c, k := range backRank {
		b.squares[0][c].Piece = Piece{Kind: k, Side: Black}
		b.squares[1][c].Piece = Piece{Kind: Pawn, Side: Black}
		b.squares[6][c].Piece = Piece{Kind: Pawn, Side: White}
		b.squares[7][c].Piece = Piece{Kind: k, Side: White}
	}
	return b
}

func (b *Board) cell(pos Position) (*Square, error) {
	if !pos.Valid() {
		return nil, fmt.Errorf("square %s: %w", pos, ErrOutOfBounds)
	}
	return &b.squares[pos.Row][pos.Col], nil
}

func (b *Board) Square(pos Position) (Square, error) {
	sq, err := b.cell(pos)
	if err != nil {
		return Square{}, err
	}
	return *sq, nil
}

// PieceAt returns the piece on pos, or the zero Piece when the square is empty.
func (b *Board) PieceAt(pos Position) (Piece, error) {
	sq, err := b.cell(pos)
	if err != nil {
		return Piece{}, err
	}
	return sq.Piece, nil
}

// Place puts p on pos, replacing whatever was there. Placing the zero Piece
// clears the square.
func (b *Board) Place(pos Position, p Piece) error {
	sq, err := b.cell(pos)
	if err != nil {
		return err
	}
	sq.Piece = p
	return nil
}

func (b *Board) IsEmpty(pos Position) (bool, error) {
	p, err := b.PieceAt(pos)
	if err != nil {
		return false, err
	}
	return p.IsZero(), nil
}

// IsEnemy reports whether pos holds a piece of the side opposing side.
func (b *Board) IsEnemy(pos Position, side Side) (bool, error) {
	p, err := b.PieceAt(pos)
	if err != nil {
		return false, err
	}
	return !p.IsZero() && p.Side == side.Opponent(), nil
}

// Move relocates the piece on from to to and returns whatever piece was
// overwritten on to.
func (b *Board) Move(from, to Position) (Piece, error) {
	src, err := b.cell(from)
	if err != nil {
		return Piece{}, err
	}
	dst, err := b.cell(to)
	if err != nil {
		return Piece{}, err
	}
	captured := dst.Piece
	dst.Piece = src.Piece
	if from != to {
		src.Piece = Piece{}
	}
	return captured, nil
}

func (b *Board) SetActive(pos Position, active bool) error {
	sq, err := b.cell(pos)
	if err != nil {
		return err
	}
	sq.Active = active
	return nil
}

func (b *Board) SetCandidate(pos Position, candidate bool) error {
	sq, err := b.cell(pos)
	if err != nil {
		return err
	}
	sq.Candidate = candidate
	return nil
}

// ClearMarks drops every active and candidate flag.
func (b *Board) ClearMarks() {
	for r := range b.squares {
		for c := range b.squares[r] {
			b.squares[r][c].Active = false
			b.squares[r][c].Candidate = false
		}
	}
}

// Pieces returns every occupied position in row-major order.
func (b *Board) Pieces() []Position {
	var out []Position
	for r := 0; r < NumRows; r++ {
		for c := 0; c < NumCols; c++ {
			if !b.squares[r][c].Piece.IsZero() {
				out = append(out, Position{Row: r, Col: c})
			}
		}
	}
	return out
}

// Clone returns a deep copy of the board, marks included.
func (b *Board) Clone() *Board {
	cp := *b
	return &cp
}
