package gui

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/qnkhuat/clickboard/pkg/board"
	"github.com/qnkhuat/clickboard/pkg/selection"
)

// Terminal safe color palette is available here
// Themes should be limited to the colors defined in this reference
// https://upload.wikimedia.org/wikipedia/commons/1/15/Xterm_256color_chart.svg

// Theme is used for dynamically coloring the UI
type Theme struct {
	Name            string      `json:"name"`
	SquareLight     tcell.Color `json:"squareLight"`
	SquareDark      tcell.Color `json:"squareDark"`
	SquareActive    tcell.Color `json:"squareActive"`
	SquareCandidate tcell.Color `json:"squareCandidate"`
	SquareCapture   tcell.Color `json:"squareCapture"`
	White           tcell.Color `json:"white"`
	Black           tcell.Color `json:"black"`
	Rank            tcell.Color `json:"rank"`
	File            tcell.Color `json:"file"`
	Msg             tcell.Color `json:"msg"`
}

// ThemeHex is the serialisable form of a Theme
type ThemeHex struct {
	Name            string `json:"name"`
	SquareLight     string `json:"squareLight"`
	SquareDark      string `json:"squareDark"`
	SquareActive    string `json:"squareActive"`
	SquareCandidate string `json:"squareCandidate"`
	SquareCapture   string `json:"squareCapture"`
	White           string `json:"white"`
	Black           string `json:"black"`
	Rank            string `json:"rank"`
	File            string `json:"file"`
	Msg             string `json:"msg"`
}

// fmtHex returns a one character hex for the ColorDefault
// and otherwise it returns a standard hex. This is useful
// because it allows ColorDefault to be imported from the config
// and parsed properly rather than being interpreted as black
func fmtHex(v int32) string {
	if v == -1 {
		return "#0"
	}
	return fmt.Sprintf("#%06x", v)
}

// Hex converts a Theme to a ThemeHex
func (t Theme) Hex() ThemeHex {
	return ThemeHex{
		t.Name,
		fmtHex(t.SquareLight.Hex()),
		fmtHex(t.SquareDark.Hex()),
		fmtHex(t.SquareActive.Hex()),
		fmtHex(t.SquareCandidate.Hex()),
		fmtHex(t.SquareCapture.Hex()),
		fmtHex(t.White.Hex()),
		fmtHex(t.Black.Hex()),
		fmtHex(t.Rank.Hex()),
		fmtHex(t.File.Hex()),
		fmtHex(t.Msg.Hex()),
	}
}

// Theme converts a ThemeHex to a Theme
func (t ThemeHex) Theme() Theme {
	return Theme{
		t.Name,
		tcell.GetColor(t.SquareLight),
		tcell.GetColor(t.SquareDark),
		tcell.GetColor(t.SquareActive),
		tcell.GetColor(t.SquareCandidate),
		tcell.GetColor(t.SquareCapture),
		tcell.GetColor(t.White),
		tcell.GetColor(t.Black),
		tcell.GetColor(t.Rank),
		tcell.GetColor(t.File),
		tcell.GetColor(t.Msg),
	}
}

var ErrNoTheme = errors.New("theme: no theme found")

// ImportThemes returns a converted Theme from a slice of ThemeHex
// entities if its name matches the want argument
func ImportThemes(want string, themes []ThemeHex) (Theme, error) {
	for _, t := range themes {
		if t.Name == want {
			return t.Theme(), nil
		}
	}
	return Theme{}, fmt.Errorf("%q: %w", want, ErrNoTheme)
}

// ThemeByName looks want up among the built-in themes
func ThemeByName(want string) (Theme, error) {
	for _, t := range Themes {
		if t.Name == want {
			return t, nil
		}
	}
	return Theme{}, fmt.Errorf("%q: %w", want, ErrNoTheme)
}

// LoadThemes reads a JSON array of themes in the form WriteThemes produces
func LoadThemes(r io.Reader) ([]ThemeHex, error) {
	var themes []ThemeHex
	if err := json.NewDecoder(r).Decode(&themes); err != nil {
		return nil, fmt.Errorf("theme: decode: %w", err)
	}
	return themes, nil
}

// WriteThemes writes themes as an indented JSON array of hex colors
func WriteThemes(w io.Writer, themes ...Theme) error {
	hex := make([]ThemeHex, len(themes))
	for i, t := range themes {
		hex[i] = t.Hex()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(hex)
}

// ResolveTheme looks want up in the theme file first, when one is given, and
// then among the built-in themes
func ResolveTheme(want, file string) (Theme, error) {
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return Theme{}, err
		}
		defer f.Close()
		themes, err := LoadThemes(f)
		if err != nil {
			return Theme{}, fmt.Errorf("%s: %w", file, err)
		}
		t, err := ImportThemes(want, themes)
		if !errors.Is(err, ErrNoTheme) {
			return t, err
		}
	}
	return ThemeByName(want)
}

// Background picks the fill for a square given its static color, its
// current shade and whether a piece stands on it
func (t Theme) Background(c board.SquareColor, s selection.Shade, occupied bool) tcell.Color {
	switch s {
	case selection.ShadeActive:
		return t.SquareActive
	case selection.ShadeCandidate:
		if occupied {
			return t.SquareCapture
		}
		return t.SquareCandidate
	}
	if c == board.Dark {
		return t.SquareDark
	}
	return t.SquareLight
}

// PieceColor is the foreground used for the glyph of a piece of side
func (t Theme) PieceColor(side board.Side) tcell.Color {
	if side == board.White {
		return t.White
	}
	return t.Black
}

// ThemeBasic is the default theme
var ThemeBasic = Theme{
	"basic",        // Name
	tcell.Color230, // SquareLight
	tcell.Color188, // SquareDark
	tcell.Color226, // SquareActive
	tcell.Color223, // SquareCandidate
	tcell.Color218, // SquareCapture
	tcell.Color232, // White
	tcell.Color232, // Black
	tcell.Color247, // Rank
	tcell.Color247, // File
	tcell.Color160, // Msg
}

// ThemeClassic uses the wooden board colors
var ThemeClassic = Theme{
	"classic",
	tcell.NewRGBColor(240, 217, 181),
	tcell.NewRGBColor(181, 136, 99),
	tcell.NewRGBColor(130, 151, 105),
	tcell.NewRGBColor(205, 210, 106),
	tcell.NewRGBColor(214, 120, 100),
	tcell.NewRGBColor(255, 255, 255),
	tcell.NewRGBColor(0, 0, 0),
	tcell.ColorDefault,
	tcell.ColorDefault,
	tcell.NewRGBColor(215, 0, 0),
}

var Themes = []Theme{ThemeBasic, ThemeClassic}
