package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	chathandler "github.com/zhouzirui/codesoft-bot/backend/internal/handler/chat"
	"github.com/zhouzirui/codesoft-bot/backend/pkg/utils"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8 << 10
)

type errorFrame struct {
	Error string `json:"error"`
}

// Handler serves chat exchanges over a WebSocket. Each client frame is
// answered exactly like POST /chat.
type Handler struct {
	responder chathandler.Responder
	upgrader  websocket.Upgrader
}

// New 创建WebSocket处理器
func New(responder chathandler.Responder, checkOrigin func(r *http.Request) bool) *Handler {
	if checkOrigin == nil {
		checkOrigin = func(r *http.Request) bool { return true }
	}
	return &Handler{
		responder: responder,
		upgrader: websocket.Upgrader{
			CheckOrigin:     checkOrigin,
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes 注册WebSocket路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws/chat", h.handleWebSocket)
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	connID := uuid.NewString()
	log.Printf("[ws] connection opened id=%s remote=%s", connID, r.RemoteAddr)
	defer log.Printf("[ws] connection closed id=%s", connID)

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	stopped := make(chan struct{})
	writes := make(chan any, 8)
	go h.writeLoop(conn, connID, writes, done, stopped)

	ctx := r.Context()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ws] read error id=%s: %v", connID, err)
			}
			return
		}

		frame := h.handleFrame(ctx, data)
		select {
		case writes <- frame:
		case <-stopped:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (h *Handler) handleFrame(ctx context.Context, data []byte) any {
	var payload chathandler.Request
	if err := json.Unmarshal(data, &payload); err != nil {
		return errorFrame{Error: "invalid request body"}
	}
	if payload.UserID == nil || payload.Message == nil {
		return errorFrame{Error: chathandler.MissingFieldsMessage}
	}

	reply, err := h.responder.Respond(ctx, *payload.UserID, *payload.Message)
	if err != nil {
		log.Printf("[ws] error processing frame: %v", err)
		return errorFrame{Error: utils.InternalErrorMessage}
	}
	return chathandler.NewResponse(reply)
}

// writeLoop owns all writes on conn. On a write failure it closes conn so
// the read loop unblocks.
func (h *Handler) writeLoop(conn *websocket.Conn, connID string, writes <-chan any, done <-chan struct{}, stopped chan<- struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	defer close(stopped)

	for {
		select {
		case <-done:
			return
		case frame := <-writes:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(frame); err != nil {
				log.Printf("[ws] write error id=%s: %v", connID, err)
				_ = conn.Close()
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				_ = conn.Close()
				return
			}
		}
	}
}
