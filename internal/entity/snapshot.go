package entity

// Cell is the presentation view of a single board position.
type Cell struct {
	Index    int  `json:"index"`
	Mark     Mark `json:"mark"`
	Winning  bool `json:"winning"`
	Playable bool `json:"playable"`
}

// Snapshot is a read-only copy of the game handed to the presentation layer.
// Everything except Board and Turn is derived from them.
type Snapshot struct {
	Board  Board           `json:"board"`
	Turn   Mark            `json:"turn"`
	State  string          `json:"state"`
	Win    *WinInfo        `json:"win,omitempty"`
	Full   bool            `json:"full"`
	Status DisplayStatus   `json:"status"`
	Cells  [BoardSize]Cell `json:"cells"`
}

// NewSnapshot - derives the read model from the board and the turn indicator.
func NewSnapshot(board Board, turn Mark) Snapshot {
	snapshot := Snapshot{
		Board:  board,
		Turn:   turn,
		State:  StateInProgress,
		Full:   board.IsFull(),
		Status: ProjectStatus(board, turn),
	}

	if win, ok := board.DetectWin(); ok {
		snapshot.Win = &win
		snapshot.State = StateWon
	} else if snapshot.Full {
		snapshot.State = StateTied
	}

	decided := snapshot.State != StateInProgress
	for i, mark := range board {
		snapshot.Cells[i] = Cell{
			Index:    i,
			Mark:     mark,
			Winning:  snapshot.Win != nil && snapshot.Win.Contains(i),
			Playable: mark == Empty && !decided,
		}
	}

	return snapshot
}
