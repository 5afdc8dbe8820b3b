package gui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/qnkhuat/clickboard/pkg/board"
	"github.com/qnkhuat/clickboard/pkg/selection"
	"github.com/qnkhuat/clickboard/pkg/testutil"
	"github.com/rivo/tview"
)

type pos = board.Position

func cellAt(a *App, p pos) (text string, bg tcell.Color) {
	row, col := a.View.PosToCell(p)
	cell := a.View.Table.GetCell(row, col)
	return cell.Text, cell.BackgroundColor
}

func TestCellMapping(t *testing.T) {
	for _, flip := range []bool{false, true} {
		v := NewBoardView(ThemeBasic, flip)
		seen := make(map[pos]bool)
		for r := 0; r < numrows; r++ {
			for c := 1; c <= numcols; c++ {
				p, ok := v.CellToPos(r, c)
				if !ok {
					t.Fatalf("flip=%v: cell (%d,%d) is not a square", flip, r, c)
				}
				gr, gc := v.PosToCell(p)
				if gr != r || gc != c {
					t.Errorf("flip=%v: %s maps back to (%d,%d), want (%d,%d)", flip, p, gr, gc, r, c)
				}
				seen[p] = true
			}
		}
		testutil.AssertEqual(t, len(seen), numrows*numcols)

		for _, label := range [][2]int{{0, 0}, {numrows, 1}, {numrows, 0}, {-1, 3}, {2, numcols + 1}} {
			if _, ok := v.CellToPos(label[0], label[1]); ok {
				t.Errorf("flip=%v: label cell %v mapped to a square", flip, label)
			}
		}
	}

	v := NewBoardView(ThemeBasic, false)
	p, _ := v.CellToPos(0, 1)
	testutil.AssertEqual(t, p, pos{0, 0})
	v.SetFlip(true)
	p, _ = v.CellToPos(0, 1)
	testutil.AssertEqual(t, p, pos{7, 7})
}

func TestRenderStartPosition(t *testing.T) {
	a := New(board.New(), Options{Theme: ThemeBasic})

	text, bg := cellAt(a, pos{7, 4})
	testutil.AssertEqual(t, text, " "+board.W(board.King).Glyph())
	testutil.AssertEqual(t, bg, ThemeBasic.SquareDark)

	text, bg = cellAt(a, pos{4, 4})
	testutil.AssertEqual(t, text, "  ")
	testutil.AssertEqual(t, bg, ThemeBasic.SquareLight)

	_, bg = cellAt(a, pos{4, 3})
	testutil.AssertEqual(t, bg, ThemeBasic.SquareDark)

	testutil.AssertEqual(t, a.View.Table.GetCell(0, 0).Text, "8")
	testutil.AssertEqual(t, a.View.Table.GetCell(numrows, 1).Text, " a")
	testutil.AssertEqual(t, a.statusLine(), "Idle")
}

func TestClickHighlightsAndMoves(t *testing.T) {
	a := New(board.New(), Options{Theme: ThemeBasic})

	ev := a.Click(pos{6, 4})
	if _, ok := ev.(selection.SelectEvent); !ok {
		t.Fatalf("got %T, want SelectEvent", ev)
	}
	_, bg := cellAt(a, pos{6, 4})
	testutil.AssertEqual(t, bg, ThemeBasic.SquareActive)
	_, bg = cellAt(a, pos{5, 4})
	testutil.AssertEqual(t, bg, ThemeBasic.SquareCandidate)
	testutil.AssertEqual(t, a.statusLine(), "e2 WhitePawn: 1 target(s)")

	a.Click(pos{5, 4})
	text, bg := cellAt(a, pos{5, 4})
	testutil.AssertEqual(t, text, " "+board.W(board.Pawn).Glyph())
	testutil.AssertEqual(t, bg, ThemeBasic.SquareDark)
	text, bg = cellAt(a, pos{6, 4})
	testutil.AssertEqual(t, text, "  ")
	testutil.AssertEqual(t, bg, ThemeBasic.SquareLight)
	testutil.AssertEqual(t, a.Moves(), []string{"1. e2e3"})
	testutil.AssertEqual(t, a.statusLine(), "Idle")
}

func TestCaptureShade(t *testing.T) {
	b, err := board.FromFEN("8/8/8/8/4r3/8/8/4R3")
	testutil.AssertNoError(t, err)
	a := New(b, Options{Theme: ThemeClassic})

	a.Click(pos{7, 4})
	_, bg := cellAt(a, pos{4, 4})
	testutil.AssertEqual(t, bg, ThemeClassic.SquareCapture)
	_, bg = cellAt(a, pos{5, 4})
	testutil.AssertEqual(t, bg, ThemeClassic.SquareCandidate)

	a.Click(pos{4, 4})
	testutil.AssertEqual(t, a.Moves(), []string{"1. e1e4 x" + board.B(board.Rook).Glyph()})
}

func TestActions(t *testing.T) {
	a := New(board.New(), Options{Theme: ThemeBasic})
	a.Click(pos{6, 0})
	a.Click(pos{5, 0})
	a.Click(pos{7, 1})

	a.Do(ActionFlip)
	testutil.AssertEqual(t, a.View.Flipped(), true)
	testutil.AssertEqual(t, a.View.Table.GetCell(0, 0).Text, "1")
	_, bg := cellAt(a, pos{7, 1})
	testutil.AssertEqual(t, bg, ThemeBasic.SquareActive, "selection survives a flip")

	a.Do(ActionReset)
	testutil.AssertEqual(t, a.Machine().State().Idle(), true)
	testutil.AssertEqual(t, a.Machine().Board().FEN(), board.StartFEN)
	testutil.AssertEqual(t, len(a.Moves()), 0)
	_, bg = cellAt(a, pos{7, 1})
	testutil.AssertEqual(t, bg, ThemeBasic.SquareLight)
}

func TestResetToCustomStart(t *testing.T) {
	start := "8/8/8/8/4N3/8/8/8"
	b, err := board.FromFEN(start)
	testutil.AssertNoError(t, err)
	a := New(b, Options{Theme: ThemeBasic, Start: b.Clone()})

	a.Click(pos{4, 4})
	a.Click(pos{2, 3})
	a.Do(ActionReset)
	testutil.AssertEqual(t, a.Machine().Board().FEN(), start)

	a.Click(pos{4, 4})
	a.Click(pos{2, 5})
	a.Do(ActionReset)
	testutil.AssertEqual(t, a.Machine().Board().FEN(), start, "the start board is not shared with the game")
}

func TestClickOutsideBoardIsIgnored(t *testing.T) {
	a := New(board.New(), Options{Theme: ThemeBasic})
	if ev := a.Click(pos{9, 9}); ev != nil {
		t.Errorf("got %v, want nil", ev)
	}
}

func TestMouseClicks(t *testing.T) {
	b := board.Empty()
	testutil.AssertNoError(t, b.Place(pos{6, 4}, board.W(board.Pawn)))
	a := New(b, Options{Theme: ThemeBasic})

	screen := tcell.NewSimulationScreen("UTF-8")
	testutil.AssertNoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(80, 24)
	widget := a.View.Primitive()
	widget.SetRect(0, 0, 40, 20)
	widget.Draw(screen)

	// The rank labels are one cell wide and files a to d hold only empty
	// squares, two cells each, with one cell between columns.
	click := func(p pos) {
		row, col := a.View.PosToCell(p)
		x := 2 + 3*(col-1)
		ev := tcell.NewEventMouse(x, row, tcell.Button1, tcell.ModNone)
		widget.MouseHandler()(tview.MouseLeftClick, ev, func(tview.Primitive) {})
	}

	click(pos{6, 4})
	testutil.AssertEqual(t, a.statusLine(), "e2 WhitePawn: 1 target(s)")
	_, bg := cellAt(a, pos{5, 4})
	testutil.AssertEqual(t, bg, ThemeBasic.SquareCandidate)

	click(pos{5, 4})
	testutil.AssertEqual(t, a.Moves(), []string{"1. e2e3"})
	testutil.AssertEqual(t, a.statusLine(), "Idle")

	// Scrolling is not a click.
	row, col := a.View.PosToCell(pos{5, 4})
	ev := tcell.NewEventMouse(2+3*(col-1), row, tcell.WheelDown, tcell.ModNone)
	widget.MouseHandler()(tview.MouseScrollDown, ev, func(tview.Primitive) {})
	testutil.AssertEqual(t, a.statusLine(), "Idle")
}

func TestRejectedClickNotice(t *testing.T) {
	a := New(board.New(), Options{Theme: ThemeBasic})
	a.Click(pos{9, 9})
	if !strings.Contains(a.statusLine(), "out of bounds") {
		t.Errorf("status %q does not report the rejected click", a.statusLine())
	}
	testutil.AssertEqual(t, a.notice != "", true)

	a.Click(pos{6, 4})
	testutil.AssertEqual(t, a.statusLine(), "e2 WhitePawn: 1 target(s)", "the next event clears the notice")
}

func TestUnknownPiecePanics(t *testing.T) {
	b := board.Empty()
	testutil.AssertNoError(t, b.Place(pos{0, 0}, board.Piece{Kind: board.Kind(7)}))
	a := New(b, Options{Theme: ThemeBasic})

	defer func() {
		if recover() == nil {
			t.Error("expected a panic")
		}
	}()
	a.Click(pos{0, 0})
}

func TestThemes(t *testing.T) {
	got, err := ThemeByName("classic")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got.Name, "classic")

	_, err = ThemeByName("nope")
	testutil.AssertErrorIs(t, err, ErrNoTheme)

	// RGB and default colors survive the hex round trip unchanged.
	hex := ThemeClassic.Hex()
	testutil.AssertEqual(t, hex.Rank, "#0")
	testutil.AssertEqual(t, hex.SquareLight, "#f0d9b5")
	imported, err := ImportThemes("classic", []ThemeHex{ThemeBasic.Hex(), hex})
	testutil.AssertNoError(t, err)
	if imported != ThemeClassic {
		t.Errorf("round trip changed the theme: %+v", imported.Hex())
	}

	_, err = ImportThemes("classic", nil)
	testutil.AssertErrorIs(t, err, ErrNoTheme)
}

func TestThemeFile(t *testing.T) {
	night := ThemeClassic
	night.Name = "night"
	night.SquareLight = tcell.NewRGBColor(60, 60, 80)

	path := filepath.Join(t.TempDir(), "themes.json")
	f, err := os.Create(path)
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, WriteThemes(f, night))
	testutil.AssertNoError(t, f.Close())

	got, err := ResolveTheme("night", path)
	testutil.AssertNoError(t, err)
	if got != night {
		t.Errorf("loaded %+v, want %+v", got.Hex(), night.Hex())
	}

	got, err = ResolveTheme("basic", path)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got.Name, "basic", "built-in themes stay available")

	_, err = ResolveTheme("nope", path)
	testutil.AssertErrorIs(t, err, ErrNoTheme)

	_, err = ResolveTheme("night", filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Error("missing theme file accepted")
	}

	_, err = LoadThemes(strings.NewReader("{not json"))
	if err == nil {
		t.Error("malformed theme file accepted")
	}
}

func TestBackground(t *testing.T) {
	th := ThemeBasic
	testutil.AssertEqual(t, th.Background(board.Light, selection.ShadeBase, true), th.SquareLight)
	testutil.AssertEqual(t, th.Background(board.Dark, selection.ShadeBase, false), th.SquareDark)
	testutil.AssertEqual(t, th.Background(board.Dark, selection.ShadeActive, true), th.SquareActive)
	testutil.AssertEqual(t, th.Background(board.Light, selection.ShadeCandidate, false), th.SquareCandidate)
	testutil.AssertEqual(t, th.Background(board.Light, selection.ShadeCandidate, true), th.SquareCapture)
}
