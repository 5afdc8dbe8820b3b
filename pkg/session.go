package pkg

import (
	"errors"
	"log"

	"github.com/qnkhuat/clickboard/pkg/board"
	"github.com/qnkhuat/clickboard/pkg/selection"
	"github.com/qnkhuat/clickboard/pkg/store"
)

// StartFEN is the placement a session begins from and resets to.
func (cfg Config) StartFEN() string {
	if cfg.FEN != "" {
		return cfg.FEN
	}
	return board.StartFEN
}

// LoadBoard returns the session's saved board when st has one, otherwise the
// configured start placement. st may be nil.
func LoadBoard(cfg Config, st *store.Store) (*board.Board, error) {
	if st != nil {
		fen, err := st.LoadBoard(cfg.Session)
		switch {
		case err == nil:
			b, err := board.FromFEN(fen)
			if err == nil {
				log.Printf("session %s: restored %s", cfg.Session, fen)
				return b, nil
			}
			log.Printf("session %s: discarding saved board: %v", cfg.Session, err)
		case !errors.Is(err, store.ErrNotFound):
			return nil, err
		}
	}
	return board.FromFEN(cfg.StartFEN())
}

// OpenStore opens the store in dir. An empty dir disables persistence. A
// store that cannot be opened, usually because another session holds its
// lock, is logged and the session runs without persistence.
func OpenStore(dir string) *store.Store {
	if dir == "" {
		return nil
	}
	st, err := store.Open(dir)
	if err != nil {
		log.Printf("persistence disabled: %v", err)
		return nil
	}
	return st
}

// Persist saves the placement to st after every move. A reset forgets the
// saved placement so the next start begins from the start layout again.
func Persist(m *selection.Machine, st *store.Store, session string) {
	m.Subscribe(func(ev selection.Event) {
		var err error
		switch ev.Type() {
		case selection.TypeMoveEvent:
			err = st.SaveBoard(session, m.Board().FEN())
		case selection.TypeResetEvent:
			err = st.DeleteBoard(session)
		}
		if err != nil {
			log.Printf("session %s: %s: %v", session, ev.Type(), err)
		}
	})
}

// LogEvents writes every selection event to the log.
func LogEvents(m *selection.Machine) {
	m.Subscribe(func(ev selection.Event) {
		log.Printf("%s %s", ev.Type(), ev.Encode())
	})
}
