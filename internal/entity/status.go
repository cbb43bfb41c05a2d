package entity

import (
	"encoding/json"
	"fmt"
)

const (
	StatusWinner = "winner"
	StatusTie    = "tie"
	StatusTurn   = "turn"
)

// DisplayStatus is the text projection shown above the board.
type DisplayStatus struct {
	Kind string
	Mark Mark
}

// ProjectStatus - a winner beats a tie, a tie beats the current turn.
func ProjectStatus(board Board, turn Mark) DisplayStatus {
	if win, ok := board.DetectWin(); ok {
		return DisplayStatus{Kind: StatusWinner, Mark: win.Mark}
	}

	if board.IsFull() {
		return DisplayStatus{Kind: StatusTie}
	}

	return DisplayStatus{Kind: StatusTurn, Mark: turn}
}

func (that DisplayStatus) String() string {
	switch that.Kind {
	case StatusWinner:
		return fmt.Sprintf("Winner: %s", that.Mark)
	case StatusTie:
		return "Tie"
	default:
		return fmt.Sprintf("Current player: %s", that.Mark)
	}
}

func (that DisplayStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind string `json:"kind"`
		Mark Mark   `json:"mark,omitempty"`
		Text string `json:"text"`
	}{
		Kind: that.Kind,
		Mark: that.Mark,
		Text: that.String(),
	})
}

func (that *DisplayStatus) UnmarshalJSON(data []byte) error {
	var raw struct {
		Kind string `json:"kind"`
		Mark Mark   `json:"mark"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal status: %w", err)
	}

	that.Kind = raw.Kind
	that.Mark = raw.Mark

	return nil
}
