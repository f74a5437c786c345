package scenario

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/captain-jack/backend/internal/model/scenario"
	"github.com/zhouzirui/captain-jack/backend/pkg/utils"
)

// Handler scenario服务的HTTP处理器
type Handler struct {
	scenarios scenario.Store
}

// New 创建scenario处理器
func New(scenarios scenario.Store) *Handler {
	return &Handler{
		scenarios: scenarios,
	}
}

// RegisterRoutes 注册scenario相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/scenarios", h.handleListScenarios)
}

// handleListScenarios 按表顺序列出所有场景
func (h *Handler) handleListScenarios(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.scenarios.List())
}
