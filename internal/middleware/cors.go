package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS 允许网页渠道跨域访问 /api 与 WebSocket 接口
var CORS = cors.Handler(cors.Options{
	AllowedOrigins:   []string{"https://*", "http://*"},
	AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
	ExposedHeaders:   []string{"X-Request-Id"},
	AllowCredentials: false,
	MaxAge:           300,
})
