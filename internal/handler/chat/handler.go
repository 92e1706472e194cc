package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/codesoft-bot/backend/internal/model/chat"
	"github.com/zhouzirui/codesoft-bot/backend/internal/service/responder"
	"github.com/zhouzirui/codesoft-bot/backend/pkg/utils"
)

// MissingFieldsMessage is returned when user_id or message is absent.
const MissingFieldsMessage = "Missing message or user_id"

// Responder answers one user message.
type Responder interface {
	Respond(ctx context.Context, userID, message string) (responder.Reply, error)
}

// HistoryReader lists stored turns for a user.
type HistoryReader interface {
	HistoryFor(ctx context.Context, userID string) ([]chat.Turn, error)
}

// Request is the inbound chat payload. Pointers distinguish a missing field
// from an empty one.
type Request struct {
	UserID  *string `json:"user_id"`
	Message *string `json:"message"`
}

// Response is the body of a successful chat exchange.
type Response struct {
	Response  string    `json:"response"`
	Intent    *string   `json:"intent"`
	Timestamp time.Time `json:"timestamp"`
}

// HistoryResponse wraps a user's turns.
type HistoryResponse struct {
	History []chat.Turn `json:"history"`
}

// NewResponse converts a responder reply into its wire form.
func NewResponse(reply responder.Reply) Response {
	return Response{
		Response:  reply.Response,
		Intent:    reply.IntentPtr(),
		Timestamp: reply.Timestamp,
	}
}

// Handler 聊天服务的HTTP处理器
type Handler struct {
	responder Responder
	history   HistoryReader
}

// New 创建聊天处理器
func New(responder Responder, history HistoryReader) *Handler {
	return &Handler{
		responder: responder,
		history:   history,
	}
}

// RegisterRoutes 注册聊天相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
	r.Get("/history/{userID}", h.handleHistory)
}

// handleChat 处理一条用户消息
func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload Request
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if payload.UserID == nil || payload.Message == nil {
		utils.RespondError(w, http.StatusBadRequest, MissingFieldsMessage)
		return
	}

	reply, err := h.responder.Respond(r.Context(), *payload.UserID, *payload.Message)
	if err != nil {
		utils.RespondInternalError(w, "chat", err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, NewResponse(reply))
}

// handleHistory 返回用户的消息历史
func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	history, err := h.history.HistoryFor(r.Context(), userID)
	if err != nil {
		utils.RespondInternalError(w, "history", err)
		return
	}
	if history == nil {
		history = []chat.Turn{}
	}

	utils.RespondJSON(w, http.StatusOK, HistoryResponse{History: history})
}
