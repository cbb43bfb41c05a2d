package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
)

const (
	ActionState  = "game:state"
	ActionMove   = "game:move"
	ActionReset  = "game:reset"
	ActionUpdate = "game:update"
	ActionError  = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	Cell     *int             `json:"cell,omitempty"`
	Accepted *bool            `json:"accepted,omitempty"`
	State    *entity.Snapshot `json:"state,omitempty"`
	Error    string           `json:"error,omitempty"`
}

func newMessage(action string, payload Payload) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return json.Marshal(Message{
		Action:  action,
		Payload: raw,
	})
}
