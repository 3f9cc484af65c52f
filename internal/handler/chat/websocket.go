package chat

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/zhouzirui/campushelp/backend/internal/config"
	"github.com/zhouzirui/campushelp/backend/internal/handler/messages"
	"github.com/zhouzirui/campushelp/backend/internal/metrics"
	"github.com/zhouzirui/campushelp/backend/internal/model/activity"
	botModel "github.com/zhouzirui/campushelp/backend/internal/model/bot"
)

const (
	readTimeout  = 60 * time.Second
	pingInterval = 54 * time.Second
	writeTimeout = 10 * time.Second
)

// Bot 抽象聊天通道依赖的机器人能力
type Bot interface {
	Profile() botModel.Profile
	OnActivity(ctx context.Context, in activity.Activity) []activity.Activity
}

// WebSocketHandler WebSocket聊天处理器
type WebSocketHandler struct {
	bot      Bot
	cfg      config.WebSocketConfig
	upgrader websocket.Upgrader
}

// NewWebSocketHandler 创建WebSocket处理器
func NewWebSocketHandler(bot Bot, cfg config.WebSocketConfig) *WebSocketHandler {
	return &WebSocketHandler{
		bot: bot,
		cfg: cfg,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes 注册WebSocket路由
func (h *WebSocketHandler) RegisterRoutes(r chi.Router) {
	r.Get("/ws", h.handleWebSocket)
}

type inboundMessage struct {
	Type   string `json:"type"`
	Text   string `json:"text"`
	Format string `json:"format,omitempty"`
}

type outgoingMessage struct {
	Type           string             `json:"type"`
	ConversationID string             `json:"conversationId,omitempty"`
	Activity       *activity.Activity `json:"activity,omitempty"`
	Error          string             `json:"error,omitempty"`
	Timestamp      int64              `json:"timestamp"`
}

type connectionState struct {
	conversation *activity.ConversationAccount
	user         *activity.ChannelAccount
	format       string
	limiter      *rate.Limiter
}

func (h *WebSocketHandler) newConnectionState(r *http.Request) *connectionState {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		userID = uuid.NewString()
	}

	limit := rate.Limit(h.cfg.RateLimit)
	if h.cfg.RateLimit <= 0 {
		limit = rate.Inf
	}
	burst := h.cfg.RateBurst
	if burst < 1 {
		burst = 1
	}

	return &connectionState{
		conversation: &activity.ConversationAccount{ID: uuid.NewString()},
		user:         &activity.ChannelAccount{ID: userID, Name: r.URL.Query().Get("name")},
		format:       r.URL.Query().Get("format"),
		limiter:      rate.NewLimiter(limit, burst),
	}
}

// handleWebSocket 处理WebSocket连接：连接建立即视为用户加入会话，每条文本消息产生一条回复
func (h *WebSocketHandler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	state := h.newConnectionState(r)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[websocket] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	metrics.WebSocketConnectionsCurrent.Inc()
	defer metrics.WebSocketConnectionsCurrent.Dec()

	log.Printf("[websocket] new connection conversation=%s user=%s", state.conversation.ID, state.user.ID)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	go h.pingLoop(ctx, conn)

	profile := h.bot.Profile()
	h.dispatch(ctx, conn, state, activity.Activity{
		Type:         activity.TypeConversationUpdate,
		ID:           uuid.NewString(),
		From:         state.user,
		Recipient:    &activity.ChannelAccount{ID: profile.ID, Name: profile.Name},
		Conversation: state.conversation,
		MembersAdded: []activity.ChannelAccount{*state.user},
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[websocket] read error: %v", err)
			}
			return
		}

		conn.SetReadDeadline(time.Now().Add(readTimeout))

		var msg inboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.sendError(conn, state, "invalid message format")
			continue
		}
		h.handleMessage(ctx, conn, state, &msg)
	}
}

func (h *WebSocketHandler) handleMessage(ctx context.Context, conn *websocket.Conn, state *connectionState, msg *inboundMessage) {
	if msg.Type != activity.TypeMessage {
		h.sendError(conn, state, "unsupported message type: "+msg.Type)
		return
	}
	if !state.limiter.Allow() {
		metrics.WebSocketRateLimited.Inc()
		h.sendError(conn, state, "rate limit exceeded, slow down")
		return
	}
	if msg.Format != "" {
		state.format = msg.Format
	}

	profile := h.bot.Profile()
	h.dispatch(ctx, conn, state, activity.Activity{
		Type:         activity.TypeMessage,
		ID:           uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Text:         msg.Text,
		From:         state.user,
		Recipient:    &activity.ChannelAccount{ID: profile.ID, Name: profile.Name},
		Conversation: state.conversation,
	})
}

func (h *WebSocketHandler) dispatch(ctx context.Context, conn *websocket.Conn, state *connectionState, in activity.Activity) {
	out := h.bot.OnActivity(ctx, in)
	if state.format == activity.FormatHTML {
		out = messages.RenderHTML(out)
	}
	for i := range out {
		h.send(conn, outgoingMessage{
			Type:           "activity",
			ConversationID: state.conversation.ID,
			Activity:       &out[i],
		})
	}
}

func (h *WebSocketHandler) sendError(conn *websocket.Conn, state *connectionState, message string) {
	h.send(conn, outgoingMessage{
		Type:           "error",
		ConversationID: state.conversation.ID,
		Error:          message,
	})
}

func (h *WebSocketHandler) send(conn *websocket.Conn, msg outgoingMessage) {
	msg.Timestamp = time.Now().Unix()
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[websocket] marshal %s failed: %v", msg.Type, err)
		return
	}
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		log.Printf("[websocket] write %s failed: %v", msg.Type, err)
	}
}

// pingLoop 定期发送ping消息；WriteControl 可与读写循环并发调用
func (h *WebSocketHandler) pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				return
			}
		}
	}
}
