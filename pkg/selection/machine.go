// Package selection tracks which square is active and which squares are
// highlighted as its candidate destinations, and turns clicks into selects,
// deselects and moves.
//
// A Machine is not safe for concurrent use. It is meant to be driven from a
// single UI event loop, one click at a time.
package selection

import (
	"fmt"

	"github.com/qnkhuat/clickboard/pkg/board"
	"github.com/qnkhuat/clickboard/pkg/moves"
)

// Shade is the highlight a square should be drawn with.
type Shade int

const (
	ShadeBase Shade = iota
	ShadeActive
	ShadeCandidate
)

func (s Shade) String() string {
	switch s {
	case ShadeActive:
		return "Active"
	case ShadeCandidate:
		return "Candidate"
	default:
		return "Base"
	}
}

// Renderer draws the board. The Machine tells it exactly which squares
// changed; it never has to inspect selection state itself.
type Renderer interface {
	RenderBoard(b *board.Board)
	SetSquareShade(pos board.Position, s Shade)
	MovePiece(from, to board.Position)
}

type nopRenderer struct{}

func (nopRenderer) RenderBoard(*board.Board)             {}
func (nopRenderer) SetSquareShade(board.Position, Shade) {}
func (nopRenderer) MovePiece(from, to board.Position)    {}

// State is a snapshot of the selection. Active is nil when idle.
type State struct {
	Active     *board.Position
	Candidates []board.Position
}

func (s State) Idle() bool {
	return s.Active == nil
}

type Machine struct {
	board       *board.Board
	renderer    Renderer
	hasActive   bool
	active      board.Position
	candidates  moves.Set
	subscribers []func(Event)
}

// New returns an idle Machine over b. A nil renderer discards drawing calls.
func New(b *board.Board, r Renderer) *Machine {
	if r == nil {
		r = nopRenderer{}
	}
	b.ClearMarks()
	return &Machine{
		board:    b,
		renderer: r,
	}
}

func (m *Machine) Board() *board.Board {
	return m.board
}

// Subscribe registers fn to receive every event the Machine emits, in order.
func (m *Machine) Subscribe(fn func(Event)) {
	m.subscribers = append(m.subscribers, fn)
}

// Render asks the renderer to draw the whole board.
func (m *Machine) Render() {
	m.renderer.RenderBoard(m.board)
}

func (m *Machine) State() State {
	if !m.hasActive {
		return State{}
	}
	active := m.active
	return State{Active: &active, Candidates: m.candidates.Sorted()}
}

// Click applies one click on pos and returns the resulting event, or nil when
// the click changed nothing. ErrUnknownPieceKind means the board holds an
// invalid piece and should be treated as fatal by the caller.
func (m *Machine) Click(pos board.Position) (Event, error) {
	if !pos.Valid() {
		return nil, fmt.Errorf("click %s: %w", pos, board.ErrOutOfBounds)
	}

	if !m.hasActive {
		return m.selectAt(pos)
	}

	if pos == m.active {
		ev := DeselectEvent{Square: m.active}
		m.clear()
		m.emit(ev)
		return ev, nil
	}

	if m.candidates.Has(pos) {
		return m.moveTo(pos)
	}

	// Reselect: an empty square leaves the machine idle.
	deselect := DeselectEvent{Square: m.active}
	m.clear()
	m.emit(deselect)
	ev, err := m.selectAt(pos)
	if err != nil || ev != nil {
		return ev, err
	}
	return deselect, nil
}

// Reset installs b, drops any selection and redraws everything.
func (m *Machine) Reset(b *board.Board) {
	m.hasActive = false
	m.candidates = nil
	b.ClearMarks()
	m.board = b
	m.renderer.RenderBoard(b)
	m.emit(ResetEvent{FEN: b.FEN()})
}

func (m *Machine) selectAt(pos board.Position) (Event, error) {
	piece, err := m.board.PieceAt(pos)
	if err != nil {
		return nil, err
	}
	if piece.IsZero() {
		return nil, nil
	}

	candidates, err := moves.Project(m.board, pos, piece)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", pos, err)
	}

	m.hasActive = true
	m.active = pos
	m.candidates = candidates

	// pos was read above and every candidate comes from Project, so the
	// marks below are always in bounds.
	m.board.SetActive(pos, true)
	m.renderer.SetSquareShade(pos, ShadeActive)
	sorted := candidates.Sorted()
	for _, c := range sorted {
		m.board.SetCandidate(c, true)
		m.renderer.SetSquareShade(c, ShadeCandidate)
	}

	ev := SelectEvent{Square: pos, Piece: piece, Candidates: sorted}
	m.emit(ev)
	return ev, nil
}

func (m *Machine) moveTo(to board.Position) (Event, error) {
	from := m.active
	piece, err := m.board.PieceAt(from)
	if err != nil {
		return nil, err
	}
	captured, err := m.board.Move(from, to)
	if err != nil {
		return nil, err
	}
	m.clear()
	m.renderer.MovePiece(from, to)

	ev := MoveEvent{From: from, To: to, Piece: piece, Captured: captured}
	m.emit(ev)
	return ev, nil
}

// clear un-highlights the candidates and the active square and returns the
// machine to idle. Only positions marked by selectAt are touched, so the
// mark errors cannot occur.
func (m *Machine) clear() {
	for c := range m.candidates {
		m.board.SetCandidate(c, false)
		m.renderer.SetSquareShade(c, ShadeBase)
	}
	if m.hasActive {
		m.board.SetActive(m.active, false)
		m.renderer.SetSquareShade(m.active, ShadeBase)
	}
	m.hasActive = false
	m.candidates = nil
}

func (m *Machine) emit(ev Event) {
	for _, fn := range m.subscribers {
		fn(ev)
	}
}
