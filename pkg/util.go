package pkg

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/fatih/color"
	"github.com/qnkhuat/clickboard/pkg/board"
)

func InitLog(dest, prefix string) {
	f, err := os.OpenFile(dest, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	log.SetOutput(f)
	log.SetPrefix(prefix)
}

// SessionName returns a key that identifies a player. SSH users keep their
// login name; anonymous ones get a generated pet name.
func SessionName(user string) string {
	user = strings.TrimSpace(user)
	if user != "" {
		return user
	}
	return petname.Generate(2, "-")
}

var (
	lightSquare = color.New(color.BgHiWhite, color.FgBlack)
	darkSquare  = color.New(color.BgHiBlack, color.FgHiWhite)
)

// PrintBoard writes b to w as a grid of coloured squares with rank and file
// labels, White at the bottom.
func PrintBoard(w io.Writer, b *board.Board) error {
	var sb strings.Builder
	for r := 0; r < board.NumRows; r++ {
		fmt.Fprintf(&sb, "%d ", board.NumRows-r)
		for c := 0; c < board.NumCols; c++ {
			sq, err := b.Square(board.Position{Row: r, Col: c})
			if err != nil {
				return err
			}
			paint := lightSquare
			if sq.Color == board.Dark {
				paint = darkSquare
			}
			sb.WriteString(paint.Sprintf(" %s ", sq.Piece.Glyph()))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("   a  b  c  d  e  f  g  h\n")
	_, err := io.WriteString(w, sb.String())
	return err
}
