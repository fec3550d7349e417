package httpapi

import (
	"net/http"

	"opora-safety/internal/models"
	"opora-safety/internal/service"

	"go.uber.org/zap"
)

// SafetyHandler AI 入口安全评估接口
type SafetyHandler struct {
	gate   *service.GateService
	logger *zap.Logger
}

// NewSafetyHandler 创建安全评估 Handler
func NewSafetyHandler(gate *service.GateService, logger *zap.Logger) *SafetyHandler {
	return &SafetyHandler{
		gate:   gate,
		logger: logger,
	}
}

// evaluateRequest 评估请求体
type evaluateRequest struct {
	Surface          string `json:"surface"`
	AgeConfirmed     bool   `json:"age_confirmed"`
	ConsentSensitive bool   `json:"consent_sensitive"`
	Text             string `json:"text"`
}

// Evaluate POST /safety/api/v1/evaluate
// 任何请求体形状都会得到一个有效判定（引擎对输入域是全函数），
// 只有 JSON 解析失败才返回错误
func (h *SafetyHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid body"))
		return
	}

	decision := h.gate.Check(r.Context(), models.SafetyInput{
		Surface:          models.Surface(req.Surface),
		AgeConfirmed:     req.AgeConfirmed,
		ConsentSensitive: req.ConsentSensitive,
		Text:             req.Text,
	})

	writeJSON(w, http.StatusOK, Ok(decision))
}
