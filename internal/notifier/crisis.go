package notifier

import (
	"fmt"
	"time"

	"opora-safety/internal/models"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// CrisisNotification 危机转介通知载荷
// 只携带判定枚举值与审计 ID，绝不携带用户文本
type CrisisNotification struct {
	EvaluationID string               `json:"evaluation_id"`
	Surface      models.Surface       `json:"surface"`
	Trigger      models.CrisisTrigger `json:"trigger"`
	OccurredAt   int64                `json:"occurred_at"`
}

// CrisisNotifier 危机转介 Webhook 客户端
// 通知失败不会影响评估结果的返回：危机判定本身是安全关键路径，
// 通知只是尽力而为的旁路
type CrisisNotifier struct {
	httpClient *resty.Client
	webhookURL string
	logger     *zap.Logger
}

// NewCrisisNotifier 创建危机通知客户端
// webhookURL 为空表示未配置通知，Notify 直接返回 nil
func NewCrisisNotifier(webhookURL string, logger *zap.Logger) *CrisisNotifier {
	client := resty.New().
		SetTimeout(5 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		SetHeader("Content-Type", "application/json")

	return &CrisisNotifier{
		httpClient: client,
		webhookURL: webhookURL,
		logger:     logger,
	}
}

// Notify 发送危机转介通知
func (n *CrisisNotifier) Notify(evaluationID string, surface models.Surface, trigger models.CrisisTrigger) error {
	if n.webhookURL == "" {
		return nil
	}

	payload := CrisisNotification{
		EvaluationID: evaluationID,
		Surface:      surface,
		Trigger:      trigger,
		OccurredAt:   time.Now().Unix(),
	}

	resp, err := n.httpClient.R().
		SetBody(payload).
		Post(n.webhookURL)
	if err != nil {
		return fmt.Errorf("failed to post crisis notification: %w", err)
	}
	if resp.StatusCode() >= 300 {
		return fmt.Errorf("crisis webhook returned status %d", resp.StatusCode())
	}

	n.logger.Info("Crisis notification sent",
		zap.String("evaluation_id", evaluationID),
		zap.String("surface", string(surface)),
		zap.String("trigger", string(trigger)),
	)

	return nil
}
