package profile

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	botModel "github.com/zhouzirui/campushelp/backend/internal/model/bot"
	"github.com/zhouzirui/campushelp/backend/pkg/utils"
)

// Source 提供机器人身份与规则列表
type Source interface {
	Profile() botModel.Profile
	Rules() []string
}

// Handler 机器人信息的HTTP处理器
type Handler struct {
	bot Source
}

// New 创建profile处理器
func New(bot Source) *Handler {
	return &Handler{bot: bot}
}

// RegisterRoutes 注册profile相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/profile", h.handleProfile)
	r.Get("/rules", h.handleRules)
}

func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.bot.Profile())
}

// handleRules 按优先级返回规则名，fallback 总在最后
func (h *Handler) handleRules(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string][]string{"rules": h.bot.Rules()})
}
