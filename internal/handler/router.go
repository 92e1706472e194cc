package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zhouzirui/codesoft-bot/backend/internal/handler/chat"
	"github.com/zhouzirui/codesoft-bot/backend/internal/handler/health"
	"github.com/zhouzirui/codesoft-bot/backend/internal/handler/ws"
	middlewarePkg "github.com/zhouzirui/codesoft-bot/backend/internal/middleware"
	"github.com/zhouzirui/codesoft-bot/backend/pkg/utils"
)

// Options toggles optional transports.
type Options struct {
	AllowedOrigins []string
	WSEnabled      bool
}

// NewRouter wires HTTP routes to core services.
func NewRouter(responder chat.Responder, history chat.HistoryReader, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(opts.AllowedOrigins))

	health.New().RegisterRoutes(r)
	chat.New(responder, history).RegisterRoutes(r)

	if opts.WSEnabled {
		ws.New(responder, originChecker(opts.AllowedOrigins)).RegisterRoutes(r)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}

// originChecker mirrors the CORS allow-list for WebSocket upgrades.
func originChecker(origins []string) func(r *http.Request) bool {
	allowed := make(map[string]bool, len(origins))
	for _, origin := range origins {
		if origin == "*" {
			return nil
		}
		allowed[origin] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || allowed[origin]
	}
}
