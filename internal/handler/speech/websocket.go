package speech

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	speechmodel "github.com/eardo-app/eardo/backend/internal/model/speech"
	speechsvc "github.com/eardo-app/eardo/backend/internal/service/speech"
)

const (
	readTimeout  = 60 * time.Second
	writeTimeout = 10 * time.Second
	pingInterval = 54 * time.Second

	// 客户端消息本身不合法时使用的错误类型
	kindInvalidMessage = "invalid_message"
)

// WebSocketHandler WebSocket语音处理器
type WebSocketHandler struct {
	handler  *Handler
	upgrader websocket.Upgrader
}

// NewWebSocketHandler 创建WebSocket处理器
func NewWebSocketHandler(handler *Handler) *WebSocketHandler {
	return &WebSocketHandler{
		handler: handler,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterWebSocketRoutes 注册WebSocket路由
func (h *WebSocketHandler) RegisterWebSocketRoutes(r chi.Router) {
	r.Get("/ws", h.handleWebSocket)
}

type inboundMessage struct {
	Type      string                       `json:"type"`
	RequestID string                       `json:"requestId"`
	Data      speechmodel.SynthesisRequest `json:"data"`
}

type outgoingMessage struct {
	Type      string `json:"type"`
	ConnID    string `json:"connectionId,omitempty"`
	RequestID string `json:"requestId,omitempty"`
	Audio     string `json:"audio,omitempty"`
	Kind      string `json:"kind,omitempty"`
	Message   string `json:"message,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// handleWebSocket 处理WebSocket连接
//
// 读协程只负责收帧，合成请求在本协程中按到达顺序逐个执行；
// 连接断开会取消 ctx，从而中止正在进行的合成。
func (h *WebSocketHandler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.handler.logger.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}
	defer conn.Close()

	connID := uuid.NewString()
	logger := h.handler.logger.With(slog.String("conn_id", connID))
	logger.Info("websocket connected")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	frames := make(chan []byte, 8)
	go h.readLoop(ctx, cancel, conn, frames, logger)
	go h.pingLoop(ctx, conn)

	if err := h.send(conn, outgoingMessage{Type: "connected", ConnID: connID}); err != nil {
		logger.Warn("websocket write failed", slog.Any("error", err))
		return
	}

	for frame := range frames {
		if err := h.handleFrame(ctx, conn, frame, logger); err != nil {
			logger.Warn("websocket write failed", slog.Any("error", err))
			return
		}
	}

	logger.Info("websocket closed")
}

func (h *WebSocketHandler) readLoop(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, frames chan<- []byte, logger *slog.Logger) {
	defer close(frames)
	defer cancel()

	_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readTimeout))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("websocket read error", slog.Any("error", err))
			}
			return
		}

		_ = conn.SetReadDeadline(time.Now().Add(readTimeout))

		select {
		case frames <- data:
		case <-ctx.Done():
			return
		}
	}
}

func (h *WebSocketHandler) handleFrame(ctx context.Context, conn *websocket.Conn, frame []byte, logger *slog.Logger) error {
	var msg inboundMessage
	if err := json.Unmarshal(frame, &msg); err != nil {
		return h.sendError(conn, "", kindInvalidMessage, "invalid message")
	}

	switch msg.Type {
	case "ping":
		return h.send(conn, outgoingMessage{Type: "pong"})
	case "generate":
		return h.handleGenerate(ctx, conn, msg, logger)
	default:
		return h.sendError(conn, msg.RequestID, kindInvalidMessage, "unsupported message type: "+msg.Type)
	}
}

func (h *WebSocketHandler) handleGenerate(ctx context.Context, conn *websocket.Conn, msg inboundMessage, logger *slog.Logger) error {
	if strings.TrimSpace(msg.Data.Text) == "" {
		return h.sendError(conn, msg.RequestID, kindInvalidMessage, "text is required")
	}

	audio, err := h.handler.generate(ctx, msg.Data)
	if err != nil {
		if ctx.Err() != nil {
			// 连接已断开，无需回写
			return nil
		}
		kind := speechsvc.ErrorKind(err)
		logger.Error("generate audio failed",
			slog.String("request_id", msg.RequestID),
			slog.String("kind", kind),
			slog.Any("error", err),
		)
		return h.sendError(conn, msg.RequestID, kind, synthesisFailedMessage)
	}

	return h.send(conn, outgoingMessage{Type: "audio", RequestID: msg.RequestID, Audio: audio})
}

func (h *WebSocketHandler) sendError(conn *websocket.Conn, requestID, kind, message string) error {
	return h.send(conn, outgoingMessage{
		Type:      "error",
		RequestID: requestID,
		Kind:      kind,
		Message:   message,
	})
}

func (h *WebSocketHandler) send(conn *websocket.Conn, msg outgoingMessage) error {
	msg.Timestamp = time.Now().Unix()
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteJSON(msg)
}

// pingLoop 定期发送ping消息
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
