package messages

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/campushelp/backend/internal/model/activity"
	"github.com/zhouzirui/campushelp/backend/pkg/utils"
)

// Dispatcher 抽象机器人对活动的处理，便于测试替换。
type Dispatcher interface {
	OnActivity(ctx context.Context, in activity.Activity) []activity.Activity
}

// Handler 渠道活动的HTTP处理器
type Handler struct {
	bot Dispatcher
}

// New 创建活动处理器
func New(bot Dispatcher) *Handler {
	return &Handler{bot: bot}
}

// RegisterRoutes 注册活动相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/messages", h.handleActivity)
}

type activitiesResponse struct {
	Activities []activity.Activity `json:"activities"`
}

// handleActivity 处理渠道推送的单个活动，返回需要发送的回复活动
func (h *Handler) handleActivity(w http.ResponseWriter, r *http.Request) {
	var in activity.Activity
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid activity body")
		return
	}
	if in.Type == "" {
		utils.RespondError(w, http.StatusBadRequest, "activity type is required")
		return
	}

	out := h.bot.OnActivity(r.Context(), in)
	if r.URL.Query().Get("format") == activity.FormatHTML {
		out = RenderHTML(out)
	}
	if out == nil {
		out = []activity.Activity{}
	}

	utils.RespondJSON(w, http.StatusOK, activitiesResponse{Activities: out})
}

// RenderHTML 将回复文本渲染为 HTML。渲染失败时保留原始 Markdown。
func RenderHTML(in []activity.Activity) []activity.Activity {
	out := make([]activity.Activity, len(in))
	for i, act := range in {
		out[i] = act
		if act.Text == "" {
			continue
		}
		html, err := utils.RenderMarkdown(act.Text)
		if err != nil {
			log.Printf("[activity] markdown render failed, keep markdown: %v", err)
			continue
		}
		out[i].Text = html
		out[i].TextFormat = activity.FormatHTML
	}
	return out
}
