// Package gui is the terminal front end: a tview table that draws the board
// and feeds clicks into a selection.Machine.
package gui

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/qnkhuat/clickboard/pkg/board"
	"github.com/qnkhuat/clickboard/pkg/selection"
	"github.com/rivo/tview"
)

type Options struct {
	Theme Theme
	Flip  bool
	// Start is the board Reset returns to, the standard layout when nil.
	Start *board.Board
}

type App struct {
	App     *tview.Application
	View    *BoardView
	Layout  *tview.Grid
	Status  *tview.TextView
	History *tview.TextView
	machine *selection.Machine
	opts    Options
	moves   []string
	// notice replaces the status line until the next event
	notice string
}

// New builds the application around b. Nothing is drawn on a terminal until
// Run is called.
func New(b *board.Board, opts Options) *App {
	if opts.Start == nil {
		opts.Start = board.New()
	}
	app := tview.NewApplication()
	view := NewBoardView(opts.Theme, opts.Flip)

	status := tview.NewTextView()
	status.SetBorder(true).SetTitle("Selection")
	history := tview.NewTextView()
	history.SetBorder(true).SetTitle("Moves")

	a := &App{
		App:     app,
		View:    view,
		Status:  status,
		History: history,
		opts:    opts,
	}

	buttons := tview.NewGrid().SetColumns(-1, -1, -1)
	for i, action := range []Action{ActionReset, ActionFlip, ActionExit} {
		action := action
		btn := tview.NewButton(string(action)).SetSelectedFunc(func() {
			a.Do(action)
		})
		buttons.AddItem(btn, 0, i, 1, 1, 0, 0, false)
	}

	side := tview.NewGrid().
		SetRows(1, 3, -1).
		AddItem(buttons, 0, 0, 1, 1, 0, 0, false).
		AddItem(status, 1, 0, 1, 1, 0, 0, false).
		AddItem(history, 2, 0, 1, 1, 0, 0, false)

	a.Layout = tview.NewGrid().
		SetRows(-1, numrows+1, -1).
		SetColumns(-1, 3*(numcols+1), 30, -1).
		AddItem(view.Primitive(), 1, 1, 1, 1, 0, 0, true).
		AddItem(side, 0, 2, 3, 1, 0, 0, false)

	a.machine = selection.New(b, view)
	a.machine.Subscribe(a.onEvent)
	a.initTable()
	a.machine.Render()
	a.updateStatus()
	return a
}

func (a *App) initTable() {
	a.View.Table.SetSelectable(true, true)
	a.View.Table.Select(0, 1).SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEscape {
			a.Do(ActionExit)
		}
	}).SetSelectedFunc(a.clickCell)
	a.View.SetClickedFunc(a.clickCell)

	a.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() != tcell.KeyRune {
			return event
		}
		if action, ok := keyActions[event.Rune()]; ok {
			a.Do(action)
			return nil
		}
		return event
	})
}

// clickCell handles a click or Enter on a table cell. Labels are ignored.
func (a *App) clickCell(row, col int) {
	pos, ok := a.View.CellToPos(row, col)
	if !ok {
		return
	}
	a.Click(pos)
}

func (a *App) Machine() *selection.Machine {
	return a.machine
}

// Run blocks until the user exits.
func (a *App) Run() error {
	return a.App.SetRoot(a.Layout, true).EnableMouse(true).Run()
}

// Click forwards a click on pos to the selection machine. An invalid piece
// on the board is a broken invariant and panics.
func (a *App) Click(pos board.Position) selection.Event {
	ev, err := a.machine.Click(pos)
	if errors.Is(err, board.ErrUnknownPieceKind) {
		log.Panic(err)
	}
	if err != nil {
		log.Printf("click ignored: %v", err)
		a.notice = err.Error()
		a.updateStatus()
		return nil
	}
	return ev
}

func (a *App) Do(action Action) {
	switch action {
	case ActionReset:
		a.machine.Reset(a.opts.Start.Clone())
	case ActionFlip:
		a.View.SetFlip(!a.View.Flipped())
		a.machine.Render()
	case ActionExit:
		a.App.Stop()
	}
}

func (a *App) onEvent(ev selection.Event) {
	a.notice = ""
	switch e := ev.(type) {
	case selection.MoveEvent:
		line := fmt.Sprintf("%d. %s", len(a.moves)+1, e.UCI())
		if !e.Captured.IsZero() {
			line += " x" + e.Captured.Glyph()
		}
		a.moves = append(a.moves, line)
		a.History.SetText(strings.Join(a.moves, "\n"))
		a.History.ScrollToEnd()
	case selection.ResetEvent:
		a.moves = nil
		a.History.Clear()
	}
	a.updateStatus()
}

func (a *App) updateStatus() {
	color := tview.Styles.PrimaryTextColor
	if a.notice != "" {
		color = a.opts.Theme.Msg
	}
	a.Status.SetTextColor(color)
	a.Status.SetText(a.statusLine())
}

func (a *App) statusLine() string {
	if a.notice != "" {
		return a.notice
	}
	st := a.machine.State()
	if st.Idle() {
		return "Idle"
	}
	p, _ := a.machine.Board().PieceAt(*st.Active)
	return fmt.Sprintf("%s %s: %d target(s)", st.Active, p, len(st.Candidates))
}

// Moves returns the move list shown in the side panel.
func (a *App) Moves() []string {
	return append([]string(nil), a.moves...)
}
