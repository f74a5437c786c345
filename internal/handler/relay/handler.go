package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	relaymodel "github.com/zhouzirui/captain-jack/backend/internal/model/relay"
	"github.com/zhouzirui/captain-jack/backend/pkg/utils"
)

// maxBodyBytes 限制请求体大小。
const maxBodyBytes = 1 << 20

// errProviderUnavailable 表示启动时未能创建大模型客户端。
var errProviderUnavailable = errors.New("completion provider is not configured")

var errTrailingData = errors.New("invalid request body: unexpected data after JSON object")

// Replier 生成 Captain Jack 的回复。
type Replier interface {
	GenerateReply(ctx context.Context, msg relaymodel.Message) (*relaymodel.Reply, error)
}

// Handler 消息转发服务的HTTP处理器
type Handler struct {
	replier Replier
	strict  bool
}

// New 创建消息处理器。replier 为 nil 时所有消息请求都返回 provider 错误。
// strict 为 true 时区分校验错误（422）与上游错误（502），否则统一返回 500。
func New(replier Replier, strict bool) *Handler {
	return &Handler{replier: replier, strict: strict}
}

// RegisterRoutes 注册消息相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handleReady)
	r.Post("/message", h.handleMessage)
}

// handleReady 就绪检查，不依赖大模型。
func (h *Handler) handleReady(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": relaymodel.ReadyStatus})
}

// handleMessage 校验请求并转发给大模型
func (h *Handler) handleMessage(w http.ResponseWriter, r *http.Request) {
	msg, err := decodeMessage(w, r)
	if err != nil {
		h.respondFailure(w, err)
		return
	}

	if h.replier == nil {
		h.respondFailure(w, relaymodel.NewProviderError(errProviderUnavailable))
		return
	}

	reply, err := h.replier.GenerateReply(r.Context(), msg)
	if err != nil {
		h.respondFailure(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, relaymodel.MessageResponse{
		Message: reply.Content,
		Status:  relaymodel.StatusSuccess,
	})
}

func decodeMessage(w http.ResponseWriter, r *http.Request) (relaymodel.Message, error) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))

	var payload relaymodel.MessageRequest
	if err := dec.Decode(&payload); err != nil {
		return relaymodel.Message{}, relaymodel.NewValidationError(fmt.Errorf("invalid request body: %w", err))
	}
	// 请求体只能包含一个 JSON 值。
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return relaymodel.Message{}, relaymodel.NewValidationError(errTrailingData)
	}
	return payload.Validate()
}

func (h *Handler) respondFailure(w http.ResponseWriter, err error) {
	kind := relaymodel.KindOf(err)
	status := h.statusFor(kind)

	logrus.WithError(err).WithFields(logrus.Fields{
		"kind":   kind.String(),
		"status": status,
	}).Warn("message request failed")

	utils.RespondJSON(w, status, relaymodel.ErrorResponse{Detail: err.Error()})
}

func (h *Handler) statusFor(kind relaymodel.Kind) int {
	if !h.strict {
		return http.StatusInternalServerError
	}
	switch kind {
	case relaymodel.KindValidation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}
