package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-board/internal/apperror"
)

const maxMoveBodyBytes = 1 << 10

type moveRequest struct {
	Cell *int `json:"cell"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		that.logger.Error("failed to write pong", "error", err)
	}
}

func (that *Server) handleState(w http.ResponseWriter, r *http.Request) {
	that.writeJSON(w, http.StatusOK, that.game.GetState(r.Context()))
}

func (that *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	that.writeJSON(w, http.StatusOK, that.game.GetStatus(r.Context()))
}

func (that *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	that.writeJSON(w, http.StatusOK, that.game.GetBoard(r.Context()))
}

func (that *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleMove")

	r.Body = http.MaxBytesReader(w, r.Body, maxMoveBodyBytes)

	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Cell == nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid payload"})
		return
	}

	result, err := that.game.Move(r.Context(), *req.Cell)
	if errors.Is(err, apperror.ErrInvalidCell) {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if err != nil {
		log.Error("failed to move", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
		return
	}

	that.writeJSON(w, http.StatusOK, result)
}

func (that *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	snapshot, err := that.game.Reset(r.Context())
	if err != nil {
		that.logger.Error("failed to reset", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
		return
	}

	that.writeJSON(w, http.StatusOK, snapshot)
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}
