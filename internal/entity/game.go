package entity

const (
	StateInProgress = "in_progress"
	StateWon        = "won"
	StateTied       = "tied"
)

// Game is the whole mutable game state: the board and whose turn it is.
type Game struct {
	Board Board `json:"board"`
	Turn  Mark  `json:"turn"`
}

// NewGame - returns a game with an empty board and X to move.
func NewGame() *Game {
	return &Game{
		Turn: X,
	}
}

// Reset - brings the game back to its initial state.
func (that *Game) Reset() {
	that.Board = Board{}
	that.Turn = X
}

// State - derives the lifecycle state from the board.
func (that *Game) State() string {
	if _, won := that.Board.DetectWin(); won {
		return StateWon
	}

	if that.Board.IsFull() {
		return StateTied
	}

	return StateInProgress
}

// IsFinished reports whether the game reached a terminal state.
func (that *Game) IsFinished() bool {
	return that.State() != StateInProgress
}

func (that *Game) Status() DisplayStatus {
	return ProjectStatus(that.Board, that.Turn)
}

// Snapshot - builds an immutable read model of the current state.
func (that *Game) Snapshot() Snapshot {
	return NewSnapshot(that.Board, that.Turn)
}
