package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-board/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
	"github.com/rocketscienceinc/tictactoe-board/internal/usecase"
)

const (
	pingInterval = 30 * time.Second
	pongWait     = 2 * pingInterval
	writeWait    = 10 * time.Second
)

var ErrUnknownAction = errors.New("unknown action")

type gameUseCase interface {
	Move(ctx context.Context, cell int) (*usecase.MoveResult, error)
	Reset(ctx context.Context) (entity.Snapshot, error)
	GetState(ctx context.Context) entity.Snapshot
}

type handlerFunc func(ctx context.Context, msg *Message) (Payload, error)

type Server struct {
	logger *slog.Logger
	game   gameUseCase
	hub    *Hub

	upgrader websocket.Upgrader
	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, game gameUseCase, hub *Hub) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		game:   game,
		hub:    hub,

		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		handlers: make(map[string]handlerFunc),
	}

	server.handlers[ActionState] = server.handleState
	server.handlers[ActionMove] = server.handleMove
	server.handlers[ActionReset] = server.handleReset

	return server
}

// ServeHTTP - upgrades the connection and serves the client until it goes away.
func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	client := newClient()

	// register before reading the state so no update between the two is lost
	that.hub.Register(client)

	state := that.game.GetState(r.Context())
	if data, err := newMessage(ActionState, Payload{State: &state}); err == nil {
		client.enqueue(data)
	}

	go that.writeMessages(conn, client)

	log.Info("WebSocket connection established", "clients", that.hub.ClientCount())

	if err = that.readMessages(r.Context(), conn, client); err != nil {
		log.Debug("connection closed", "error", err)
	}

	that.hub.Unregister(client)
}

// readMessages - processes messages from the client.
func (that *Server) readMessages(ctx context.Context, conn *websocket.Conn, client *Client) error {
	log := that.logger.With("method", "readMessages")

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}

		var msg Message
		if err = json.Unmarshal(data, &msg); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			that.reply(client, ActionError, Payload{Error: "malformed message"})
			continue
		}

		payload, err := that.processMessage(ctx, &msg)
		if err != nil {
			log.Error("error processing message", "action", msg.Action, "error", err)
			that.reply(client, msg.Action, Payload{Error: err.Error()})
			continue
		}

		that.reply(client, msg.Action, payload)
	}
}

func (that *Server) processMessage(ctx context.Context, msg *Message) (Payload, error) {
	handler, ok := that.handlers[msg.Action]
	if !ok {
		return Payload{}, fmt.Errorf("%w: %s", ErrUnknownAction, msg.Action)
	}

	return handler(ctx, msg)
}

// writeMessages owns every write to conn and pings idle clients.
func (that *Server) writeMessages(conn *websocket.Conn, client *Client) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case data, ok := <-client.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (that *Server) reply(client *Client, action string, payload Payload) {
	data, err := newMessage(action, payload)
	if err != nil {
		that.logger.Error("failed to marshal reply", "error", err)
		return
	}

	client.enqueue(data)
}

func (that *Server) handleState(ctx context.Context, _ *Message) (Payload, error) {
	state := that.game.GetState(ctx)
	return Payload{State: &state}, nil
}

func (that *Server) handleMove(ctx context.Context, msg *Message) (Payload, error) {
	var req Payload
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		return Payload{}, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if req.Cell == nil {
		return Payload{}, fmt.Errorf("%w: cell is required", apperror.ErrInvalidCell)
	}

	result, err := that.game.Move(ctx, *req.Cell)
	if err != nil {
		return Payload{}, err
	}

	return Payload{
		Cell:     req.Cell,
		Accepted: &result.Accepted,
		State:    &result.State,
	}, nil
}

func (that *Server) handleReset(ctx context.Context, _ *Message) (Payload, error) {
	state, err := that.game.Reset(ctx)
	if err != nil {
		return Payload{}, err
	}

	return Payload{State: &state}, nil
}
