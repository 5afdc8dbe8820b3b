package board

import (
	"fmt"
	"strings"

	"github.com/notnil/chess"
)

const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"

var chessPieces = map[Piece]chess.Piece{
	W(King):   chess.WhiteKing,
	W(Queen):  chess.WhiteQueen,
	W(Rook):   chess.WhiteRook,
	W(Bishop): chess.WhiteBishop,
	W(Knight): chess.WhiteKnight,
	W(Pawn):   chess.WhitePawn,
	B(King):   chess.BlackKing,
	B(Queen):  chess.BlackQueen,
	B(Rook):   chess.BlackRook,
	B(Bishop): chess.BlackBishop,
	B(Knight): chess.BlackKnight,
	B(Pawn):   chess.BlackPawn,
}

var boardPieces = func() map[chess.Piece]Piece {
	m := make(map[chess.Piece]Piece, len(chessPieces))
	for p, cp := range chessPieces {
		m[cp] = p
	}
	return m
}()

func toChess(p Piece) (chess.Piece, bool) {
	cp, ok := chessPieces[p]
	return cp, ok
}

// A1 is square 0 in chess; row 0 of the grid is the eighth rank.
func toSquare(pos Position) chess.Square {
	return chess.Square((NumRows-pos.Row-1)*NumCols + pos.Col)
}

// FromFEN builds a board from a FEN string. Only the piece placement field is
// read; a full six-field record is accepted as well.
func FromFEN(fen string) (*Board, error) {
	fields := strings.Fields(fen)
	if len(fields) == 0 {
		return nil, fmt.Errorf("fen: empty input")
	}
	var cb chess.Board
	if err := cb.UnmarshalText([]byte(fields[0])); err != nil {
		return nil, fmt.Errorf("fen %q: %w", fields[0], err)
	}

	b := Empty()
	for r := 0; r < NumRows; r++ {
		for c := 0; c < NumCols; c++ {
			pos := Position{Row: r, Col: c}
			cp := cb.Piece(toSquare(pos))
			if cp == chess.NoPiece {
				continue
			}
			p, ok := boardPieces[cp]
			if !ok {
				return nil, fmt.Errorf("fen %s: %w", pos, ErrUnknownPieceKind)
			}
			b.squares[r][c].Piece = p
		}
	}
	return b, nil
}

// FEN returns the piece placement field for b.
func (b *Board) FEN() string {
	m := make(map[chess.Square]chess.Piece)
	for _, pos := range b.Pieces() {
		if cp, ok := toChess(b.squares[pos.Row][pos.Col].Piece); ok {
			m[toSquare(pos)] = cp
		}
	}
	return chess.NewBoard(m).String()
}
