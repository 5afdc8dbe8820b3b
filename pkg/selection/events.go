package selection

import (
	"encoding/json"
	"log"

	"github.com/qnkhuat/clickboard/pkg/board"
)

type EventType int

const (
	TypeSelectEvent EventType = iota
	TypeDeselectEvent
	TypeMoveEvent
	TypeResetEvent
)

func (e EventType) String() string {
	switch e {
	case TypeSelectEvent:
		return "TypeSelectEvent"
	case TypeDeselectEvent:
		return "TypeDeselectEvent"
	case TypeMoveEvent:
		return "TypeMoveEvent"
	case TypeResetEvent:
		return "TypeResetEvent"
	default:
		return "Unknown EventType"
	}
}

// Event is a state change announced by the Machine.
type Event interface {
	Type() EventType
	Encode() json.RawMessage
}

func encode(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		log.Panic(err)
	}
	return data
}

// SelectEvent: a piece became active.
type SelectEvent struct {
	Square     board.Position
	Piece      board.Piece
	Candidates []board.Position
}

func (e SelectEvent) Type() EventType { return TypeSelectEvent }

func (e SelectEvent) Encode() json.RawMessage {
	return encode(struct {
		Square     string
		Piece      string
		Candidates []string
	}{e.Square.String(), e.Piece.String(), names(e.Candidates)})
}

// DeselectEvent: the active square was cleared without moving.
type DeselectEvent struct {
	Square board.Position
}

func (e DeselectEvent) Type() EventType { return TypeDeselectEvent }

func (e DeselectEvent) Encode() json.RawMessage {
	return encode(struct{ Square string }{e.Square.String()})
}

// MoveEvent: a piece was relocated. Captured is the zero Piece when the
// target was empty.
type MoveEvent struct {
	From     board.Position
	To       board.Position
	Piece    board.Piece
	Captured board.Piece
}

func (e MoveEvent) Type() EventType { return TypeMoveEvent }

func (e MoveEvent) Encode() json.RawMessage {
	return encode(struct {
		Move     string
		Piece    string
		Captured string `json:",omitempty"`
	}{e.UCI(), e.Piece.String(), capturedName(e.Captured)})
}

// UCI returns the move as from/to coordinates, e.g. "e2e3".
func (e MoveEvent) UCI() string {
	return e.From.String() + e.To.String()
}

// ResetEvent: a new board was installed.
type ResetEvent struct {
	FEN string
}

func (e ResetEvent) Type() EventType { return TypeResetEvent }

func (e ResetEvent) Encode() json.RawMessage {
	return encode(e)
}

func names(ps []board.Position) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.String()
	}
	return out
}

func capturedName(p board.Piece) string {
	if p.IsZero() {
		return ""
	}
	return p.String()
}
