package webhook

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/KlimZavadski/granica-bot/internal/domain/entity"
	"github.com/KlimZavadski/granica-bot/internal/usecase"
	"github.com/KlimZavadski/granica-bot/pkg/logger"

	"github.com/google/uuid"
)

// Server adapts an HTTP chat-transport webhook to the conversation driver.
// The transport posts one inbound interaction per request and receives the
// render instructions back; how they are delivered to the chat surface is
// the transport's concern.
type Server struct {
	dispatcher *usecase.UpdateDispatcher
	logger     logger.Logger
}

// NewServer creates a new webhook server
func NewServer(dispatcher *usecase.UpdateDispatcher, logger logger.Logger) *Server {
	return &Server{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

type updateRequest struct {
	UpdateID   string `json:"updateId,omitempty"`
	UserID     int64  `json:"userId"`
	ChatID     int64  `json:"chatId,omitempty"`
	Kind       string `json:"kind"`
	Text       string `json:"text,omitempty"`
	CallbackID string `json:"callbackId,omitempty"`
}

type updateResponse struct {
	Replies []entity.Reply `json:"replies"`
}

// Register attaches the webhook routes to a mux
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/updates", s.HandleUpdate)
}

// HandleUpdate processes one inbound update and returns render instructions
func (s *Server) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.UserID == 0 || req.Kind == "" {
		http.Error(w, "userId and kind are required", http.StatusBadRequest)
		return
	}

	update := &entity.Update{
		UpdateID:   req.UpdateID,
		UserID:     req.UserID,
		ChatID:     req.ChatID,
		Kind:       req.Kind,
		Text:       req.Text,
		CallbackID: req.CallbackID,
		ReceivedAt: time.Now().UTC(),
	}
	if update.UpdateID == "" {
		update.UpdateID = uuid.NewString()
	}
	if update.ChatID == 0 {
		update.ChatID = update.UserID
	}

	replies, err := s.dispatcher.Dispatch(r.Context(), update)
	if err != nil {
		s.logger.Error("Dispatch failed", "updateId", update.UpdateID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(updateResponse{Replies: replies}); err != nil {
		s.logger.Error("Failed to encode response", "updateId", update.UpdateID, "error", err)
	}
}
