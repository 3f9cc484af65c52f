package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zhouzirui/campushelp/backend/internal/config"
	"github.com/zhouzirui/campushelp/backend/internal/handler/chat"
	"github.com/zhouzirui/campushelp/backend/internal/handler/messages"
	"github.com/zhouzirui/campushelp/backend/internal/handler/profile"
	middlewarePkg "github.com/zhouzirui/campushelp/backend/internal/middleware"
	botService "github.com/zhouzirui/campushelp/backend/internal/service/bot"
	"github.com/zhouzirui/campushelp/backend/pkg/utils"
)

// NewRouter wires HTTP routes to the bot service.
func NewRouter(botSvc *botService.Service, wsCfg config.WebSocketConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		// Channel activities
		messages.New(botSvc).RegisterRoutes(api)

		// Web chat channel
		chat.NewWebSocketHandler(botSvc, wsCfg).RegisterRoutes(api)

		profile.New(botSvc).RegisterRoutes(api)
	})

	return r
}
