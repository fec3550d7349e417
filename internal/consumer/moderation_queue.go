package consumer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"opora-safety/internal/config"
	"opora-safety/internal/models"
	redisx "opora-safety/internal/redis"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ModerationQueue 审核队列发布器
// 被标记的提问以 Redis Stream 消息形式发给（外部的）审核端消费者。
// 消息只含提问 ID、标记和时间戳——原文密文留在数据库里。
type ModerationQueue struct {
	config      *config.Config
	redisClient *redis.Client
	logger      *zap.Logger
}

// NewModerationQueue 创建审核队列发布器
func NewModerationQueue(
	cfg *config.Config,
	redisClient *redis.Client,
	logger *zap.Logger,
) *ModerationQueue {
	return &ModerationQueue{
		config:      cfg,
		redisClient: redisClient,
		logger:      logger,
	}
}

// EnqueueFlagged 发布一条被标记的提问到审核队列
func (q *ModerationQueue) EnqueueFlagged(ctx context.Context, questionID string, flags []models.TriggerFlag) error {
	flagNames := make([]string, 0, len(flags))
	for _, f := range flags {
		flagNames = append(flagNames, string(f))
	}

	id, err := redisx.PublishToStream(ctx, q.redisClient, q.config.Safety.ModerationStream, map[string]interface{}{
		"question_id": questionID,
		"flags":       strings.Join(flagNames, ","),
		"flagged_at":  time.Now().Unix(),
	})
	if err != nil {
		return fmt.Errorf("failed to enqueue flagged question: %w", err)
	}

	q.logger.Info("Flagged question enqueued",
		zap.String("question_id", questionID),
		zap.Strings("flags", flagNames),
		zap.String("stream_id", id),
	)

	return nil
}

// EnsureConsumerGroup 确保审核端消费者组存在（启动时调用一次）
func (q *ModerationQueue) EnsureConsumerGroup(ctx context.Context, groupName string) error {
	return redisx.CreateConsumerGroup(ctx, q.redisClient, q.config.Safety.ModerationStream, groupName)
}

// Dequeue 以消费者身份读取一批待审核消息（XREADGROUP）
// 审核端 worker 调用；没有新消息时返回空切片
func (q *ModerationQueue) Dequeue(ctx context.Context, groupName string, consumerName string, count int64) ([]redisx.StreamMessage, error) {
	messages, err := redisx.ReadFromStream(ctx, q.redisClient, q.config.Safety.ModerationStream, groupName, consumerName, count)
	if err != nil {
		return nil, fmt.Errorf("failed to dequeue flagged questions: %w", err)
	}
	return messages, nil
}
