package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/campushelp/backend/internal/config"
	botModel "github.com/zhouzirui/campushelp/backend/internal/model/bot"
	botService "github.com/zhouzirui/campushelp/backend/internal/service/bot"
)

func newTestRouter() http.Handler {
	svc := botService.NewService(botModel.Default("", ""), nil, nil)
	return NewRouter(svc, config.WebSocketConfig{RateLimit: 5, RateBurst: 10})
}

func TestRouterRoutes(t *testing.T) {
	r := newTestRouter()

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{name: "health", method: http.MethodGet, path: "/healthz", want: http.StatusOK},
		{name: "metrics", method: http.MethodGet, path: "/metrics", want: http.StatusOK},
		{name: "profile", method: http.MethodGet, path: "/api/profile", want: http.StatusOK},
		{name: "rules", method: http.MethodGet, path: "/api/rules", want: http.StatusOK},
		{name: "message", method: http.MethodPost, path: "/api/messages", body: `{"type":"message","text":"hi"}`, want: http.StatusOK},
		{name: "bad body", method: http.MethodPost, path: "/api/messages", body: `nope`, want: http.StatusBadRequest},
		{name: "ws without upgrade", method: http.MethodGet, path: "/api/ws", want: http.StatusBadRequest},
		{name: "unknown", method: http.MethodGet, path: "/api/personas", want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, bytes.NewBufferString(tt.body))
			resp := httptest.NewRecorder()
			r.ServeHTTP(resp, req)
			assert.Equal(t, tt.want, resp.Code)
		})
	}
}

func TestRouterMessageReply(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/messages", bytes.NewBufferString(`{"type":"message","text":"menu"}`))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Here's what I can do")
}
