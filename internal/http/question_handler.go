package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"opora-safety/internal/models"
	"opora-safety/internal/service"

	"go.uber.org/zap"
)

// QuestionHandler 匿名提问提交与审核接口
type QuestionHandler struct {
	questions *service.QuestionService
	logger    *zap.Logger
}

// NewQuestionHandler 创建提问 Handler
func NewQuestionHandler(questions *service.QuestionService, logger *zap.Logger) *QuestionHandler {
	return &QuestionHandler{
		questions: questions,
		logger:    logger,
	}
}

// submitRequest 提交请求体
type submitRequest struct {
	Text string `json:"text"`
}

// submitResponse 提交响应（不回显任何文本）
type submitResponse struct {
	QuestionID string               `json:"question_id"`
	Status     string               `json:"status"`
	Flags      []models.TriggerFlag `json:"flags"`
}

// Submit POST /safety/api/v1/questions
func (h *QuestionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid body"))
		return
	}

	question, err := h.questions.Submit(r.Context(), req.Text)
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(fmt.Sprintf("failed to submit question: %v", err)))
		return
	}

	writeJSON(w, http.StatusOK, Ok(submitResponse{
		QuestionID: question.QuestionID,
		Status:     string(question.Status),
		Flags:      question.TriggerFlags,
	}))
}

// ListFlagged GET /safety/api/v1/questions/flagged?limit=50
// 响应里只有 ID、标记、状态和时间——密文列不序列化
func (h *QuestionHandler) ListFlagged(w http.ResponseWriter, r *http.Request) {
	limit := parseInt(r.URL.Query().Get("limit"), 50)

	items, err := h.questions.ListFlagged(r.Context(), limit)
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(fmt.Sprintf("failed to list flagged questions: %v", err)))
		return
	}

	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"items": items,
		"total": len(items),
	}))
}

// statusRequest 审核动作请求体
type statusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus POST /safety/api/v1/questions/{id}/status
func (h *QuestionHandler) UpdateStatus(w http.ResponseWriter, r *http.Request, questionID string) {
	var req statusRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid body"))
		return
	}
	if req.Status == "" {
		writeJSON(w, http.StatusOK, Fail("status is required"))
		return
	}

	err := h.questions.Review(r.Context(), questionID, models.QuestionStatus(req.Status))
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(fmt.Sprintf("failed to update question status: %v", err)))
		return
	}

	writeJSON(w, http.StatusOK, Ok(map[string]any{"success": true}))
}

// Export GET /safety/api/v1/questions/export
// 导出审核工作表（xlsx），字段同列表接口——没有任何文本内容
func (h *QuestionHandler) Export(w http.ResponseWriter, r *http.Request) {
	limit := parseInt(r.URL.Query().Get("limit"), 500)

	items, err := h.questions.ListFlagged(r.Context(), limit)
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(fmt.Sprintf("failed to list flagged questions: %v", err)))
		return
	}

	data, err := GenerateModerationExport(items)
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(fmt.Sprintf("failed to generate export: %v", err)))
		return
	}

	filename := fmt.Sprintf("moderation_queue_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
