package terminal

import (
	"strconv"

	"github.com/gdamore/tcell/v2"

	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
)

const (
	statusRow = 0
	boardRow  = 2
	cellWidth = 4
	helpRow   = boardRow + 6

	helpText = "1-9 play  arrows+enter play  r reset  q quit"
)

var (
	defaultStyle = tcell.StyleDefault
	hintStyle    = tcell.StyleDefault.Dim(true)
	winStyle     = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	cursorStyle  = tcell.StyleDefault.Reverse(true)
)

// View is everything Render needs to draw one frame.
type View struct {
	Board  entity.Board
	Win    *entity.WinInfo
	Full   bool
	Status string
	Cursor int
}

// NewView - builds a frame from a snapshot and the cursor position.
func NewView(snapshot entity.Snapshot, cursor int) View {
	return View{
		Board:  snapshot.Board,
		Win:    snapshot.Win,
		Full:   snapshot.Full,
		Status: snapshot.Status.String(),
		Cursor: cursor,
	}
}

// decided reports whether the board accepts no more moves.
func (that View) decided() bool {
	return that.Win != nil || that.Full
}

// Render - draws the status line, the 3x3 grid and the key help.
func Render(screen tcell.Screen, view View) {
	screen.Clear()

	drawText(screen, 0, statusRow, defaultStyle.Bold(true), view.Status)

	for i, mark := range view.Board {
		x, y := cellOrigin(i)

		text, style := cellText(i, mark, view)
		drawText(screen, x, y, style, text)

		if i%3 != 2 {
			screen.SetContent(x+cellWidth-1, y, '|', nil, defaultStyle)
		}
	}

	for row := 0; row < 2; row++ {
		drawText(screen, 0, boardRow+row*2+1, defaultStyle, "---+---+---")
	}

	drawText(screen, 0, helpRow, hintStyle, helpText)

	screen.Show()
}

func cellText(i int, mark entity.Mark, view View) (string, tcell.Style) {
	text := " " + string(mark) + " "
	style := defaultStyle

	switch {
	case view.Win != nil && view.Win.Contains(i):
		style = winStyle
	case mark.IsEmpty() && !view.decided():
		text = " " + strconv.Itoa(i+1) + " "
		style = hintStyle
	case mark.IsEmpty():
		text = "   "
	}

	if i == view.Cursor && !view.decided() {
		style = cursorStyle
	}

	return text, style
}

// cellOrigin returns the top-left screen position of cell i.
func cellOrigin(i int) (int, int) {
	return (i % 3) * cellWidth, boardRow + (i/3)*2
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
