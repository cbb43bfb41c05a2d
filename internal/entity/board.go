package entity

const BoardSize = 9

// Mark is the content of a cell and doubles as the turn indicator.
type Mark string

const (
	Empty Mark = ""
	X     Mark = "X"
	O     Mark = "O"
)

// WinCombos - the lines that win the game, in the order they are checked.
var WinCombos = [8][3]int{
	// rows
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	// columns
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	// diagonals
	{0, 4, 8},
	{2, 4, 6},
}

// Opponent - returns the mark that moves after this one.
func (that Mark) Opponent() Mark {
	if that == X {
		return O
	}
	return X
}

func (that Mark) IsEmpty() bool {
	return that == Empty
}

// Board holds the cells in row-major order.
type Board [BoardSize]Mark

// WinInfo describes the mark that completed a line and the line itself.
type WinInfo struct {
	Mark Mark   `json:"mark"`
	Line [3]int `json:"line"`
}

// Contains reports whether the cell is part of the winning line.
func (that WinInfo) Contains(cell int) bool {
	for _, idx := range that.Line {
		if idx == cell {
			return true
		}
	}
	return false
}

// DetectWin - returns the first completed line in WinCombos order.
func (that Board) DetectWin() (WinInfo, bool) {
	for _, combo := range WinCombos {
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if a != Empty && a == b && b == c {
			return WinInfo{Mark: a, Line: combo}, true
		}
	}

	return WinInfo{}, false
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == Empty {
			return false
		}
	}
	return true
}

// IsTie - the board is full and nobody completed a line.
func (that Board) IsTie() bool {
	if _, won := that.DetectWin(); won {
		return false
	}
	return that.IsFull()
}

// IsValidCell reports whether idx addresses a cell of the board.
func IsValidCell(idx int) bool {
	return idx >= 0 && idx < BoardSize
}
