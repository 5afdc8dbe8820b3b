package gui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/qnkhuat/clickboard/pkg/board"
	"github.com/qnkhuat/clickboard/pkg/selection"
	"github.com/rivo/tview"
)

const (
	numrows = board.NumRows
	numcols = board.NumCols
)

// BoardView draws a board into a tview.Table. Row numrows holds the file
// labels and column 0 the rank labels; the squares fill the rest.
type BoardView struct {
	Table  *tview.Table
	widget *clickTable
	theme  Theme
	flip   bool
	board  *board.Board
	shades map[board.Position]selection.Shade
}

func NewBoardView(theme Theme, flip bool) *BoardView {
	table := tview.NewTable()
	return &BoardView{
		Table:  table,
		widget: &clickTable{Table: table},
		theme:  theme,
		flip:   flip,
		shades: make(map[board.Position]selection.Shade),
	}
}

// Primitive is what goes into the layout. It is the table plus mouse clicks.
func (v *BoardView) Primitive() tview.Primitive {
	return v.widget
}

// SetClickedFunc sets the handler for left clicks on a table cell.
func (v *BoardView) SetClickedFunc(fn func(row, col int)) {
	v.widget.clicked = fn
}

// clickTable reports left clicks on its cells. A plain table only fires its
// selected func on Enter; a click just moves the selection there.
type clickTable struct {
	*tview.Table
	clicked func(row, col int)
}

func (t *clickTable) MouseHandler() func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
	handler := t.Table.MouseHandler()
	return func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
		consumed, capture = handler(action, event, setFocus)
		if action == tview.MouseLeftClick && t.clicked != nil && t.InRect(event.Position()) {
			t.clicked(t.GetSelection())
		}
		return
	}
}

// SetFlip chooses whether Black is drawn at the bottom. The caller redraws.
func (v *BoardView) SetFlip(flip bool) {
	v.flip = flip
}

func (v *BoardView) Flipped() bool {
	return v.flip
}

// CellToPos maps a table cell to the board position drawn in it. Label cells
// report false.
func (v *BoardView) CellToPos(row, col int) (board.Position, bool) {
	if row < 0 || row >= numrows || col < 1 || col > numcols {
		return board.Position{}, false
	}
	col-- // 1 column for the rank
	if v.flip {
		return board.Position{Row: numrows - row - 1, Col: numcols - col - 1}, true
	}
	return board.Position{Row: row, Col: col}, true
}

func (v *BoardView) PosToCell(pos board.Position) (row, col int) {
	if v.flip {
		return numrows - pos.Row - 1, numcols - pos.Col
	}
	return pos.Row, pos.Col + 1
}

// RenderBoard redraws every cell of b, taking the highlight of each square
// from its Active and Candidate marks.
func (v *BoardView) RenderBoard(b *board.Board) {
	v.board = b
	v.shades = make(map[board.Position]selection.Shade)
	v.Table.Clear()

	for r := 0; r < numrows; r++ {
		pos, _ := v.CellToPos(r, 1)
		cell := tview.NewTableCell(fmt.Sprint(numrows - pos.Row)).
			SetAlign(tview.AlignCenter).
			SetTextColor(v.theme.Rank).
			SetSelectable(false)
		v.Table.SetCell(r, 0, cell)
	}
	for c := 1; c <= numcols; c++ {
		pos, _ := v.CellToPos(0, c)
		cell := tview.NewTableCell(fmt.Sprintf(" %c", 'a'+pos.Col)).
			SetAlign(tview.AlignCenter).
			SetTextColor(v.theme.File).
			SetSelectable(false)
		v.Table.SetCell(numrows, c, cell)
	}
	// The bottom left tile is not used
	v.Table.SetCell(numrows, 0, tview.NewTableCell("").SetSelectable(false))

	for r := 0; r < numrows; r++ {
		for c := 0; c < numcols; c++ {
			pos := board.Position{Row: r, Col: c}
			sq, _ := b.Square(pos)
			switch {
			case sq.Active:
				v.shades[pos] = selection.ShadeActive
			case sq.Candidate:
				v.shades[pos] = selection.ShadeCandidate
			}
			v.drawSquare(pos)
		}
	}
}

func (v *BoardView) SetSquareShade(pos board.Position, s selection.Shade) {
	if s == selection.ShadeBase {
		delete(v.shades, pos)
	} else {
		v.shades[pos] = s
	}
	v.drawSquare(pos)
}

// MovePiece redraws both ends of a move; the board already holds the result.
func (v *BoardView) MovePiece(from, to board.Position) {
	v.drawSquare(from)
	v.drawSquare(to)
}

func (v *BoardView) drawSquare(pos board.Position) {
	if v.board == nil {
		return
	}
	sq, err := v.board.Square(pos)
	if err != nil {
		return
	}
	bg := v.theme.Background(sq.Color, v.shades[pos], !sq.Piece.IsZero())
	cell := tview.NewTableCell(fmt.Sprintf(" %s", sq.Piece.Glyph())).
		SetAlign(tview.AlignCenter).
		SetBackgroundColor(bg)
	if !sq.Piece.IsZero() {
		cell.SetTextColor(v.theme.PieceColor(sq.Piece.Side))
	}
	row, col := v.PosToCell(pos)
	v.Table.SetCell(row, col, cell)
}
