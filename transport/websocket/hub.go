package websocket

import (
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
)

const sendBufferSize = 16

// Client is one connected presentation screen.
type Client struct {
	send chan []byte
}

func newClient() *Client {
	return &Client{
		send: make(chan []byte, sendBufferSize),
	}
}

// enqueue drops the message when the client is too slow to keep up.
func (that *Client) enqueue(data []byte) bool {
	select {
	case that.send <- data:
		return true
	default:
		return false
	}
}

// Hub fans every game update out to the connected clients.
type Hub struct {
	logger *slog.Logger

	mu      sync.Mutex
	clients map[*Client]struct{}
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:  logger.With("component", "ws_hub"),
		clients: make(map[*Client]struct{}),
	}
}

func (that *Hub) Register(client *Client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.clients[client] = struct{}{}
}

func (that *Hub) Unregister(client *Client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.clients[client]; ok {
		delete(that.clients, client)
		close(client.send)
	}
}

func (that *Hub) ClientCount() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.clients)
}

// Notify - broadcasts the snapshot as a game:update message.
func (that *Hub) Notify(snapshot entity.Snapshot) {
	data, err := newMessage(ActionUpdate, Payload{State: &snapshot})
	if err != nil {
		that.logger.Error("failed to marshal update", "error", err)
		return
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	for client := range that.clients {
		if !client.enqueue(data) {
			that.logger.Warn("client is lagging, update dropped")
		}
	}
}
