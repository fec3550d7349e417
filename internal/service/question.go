package service

import (
	"context"
	"fmt"
	"strings"

	"opora-safety/internal/consumer"
	"opora-safety/internal/crypto"
	"opora-safety/internal/models"
	"opora-safety/internal/repository"
	"opora-safety/internal/triage"

	"go.uber.org/zap"
)

// QuestionService 匿名提问提交用例
// 提交路径：分诊 → 推导状态 → 加密原文 → 落库 → 被标记的进审核队列。
// 明文只在本方法的同步路径中存在，不落日志、不进队列
type QuestionService struct {
	classifier   *triage.Classifier
	sealer       crypto.Sealer
	questionRepo *repository.QuestionRepository
	queue        *consumer.ModerationQueue
	logger       *zap.Logger
}

// NewQuestionService 创建提问服务
func NewQuestionService(
	classifier *triage.Classifier,
	sealer crypto.Sealer,
	questionRepo *repository.QuestionRepository,
	queue *consumer.ModerationQueue,
	logger *zap.Logger,
) *QuestionService {
	return &QuestionService{
		classifier:   classifier,
		sealer:       sealer,
		questionRepo: questionRepo,
		queue:        queue,
		logger:       logger,
	}
}

// Submit 提交一条匿名提问
// 返回落库后的提问（含 ID、标记、状态；密文不对外序列化）
func (s *QuestionService) Submit(ctx context.Context, text string) (*models.Question, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("question text is empty")
	}

	// 1. 分诊（对明文，同步完成）
	result := s.classifier.Triage(text)

	// 2. 加密原文
	sealed, err := s.sealer.Seal(text)
	if err != nil {
		return nil, fmt.Errorf("failed to seal question text: %w", err)
	}

	// 3. 落库
	question := &models.Question{
		ContentEncrypted: sealed,
		TriggerFlags:     result.Flags,
		Status:           result.Status,
	}
	if err := s.questionRepo.CreateQuestion(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	// 4. 被标记的提问进审核队列
	// 入队失败不阻塞提交：标记和状态已经落库，审核端可以兜底扫表
	if question.Status == models.QuestionFlagged {
		if err := s.queue.EnqueueFlagged(ctx, question.QuestionID, question.TriggerFlags); err != nil {
			s.logger.Error("Failed to enqueue flagged question",
				zap.String("question_id", question.QuestionID),
				zap.Error(err),
			)
		}
	}

	return question, nil
}

// Review 人工审核动作：通过或拒绝
func (s *QuestionService) Review(ctx context.Context, questionID string, status models.QuestionStatus) error {
	if status != models.QuestionApproved && status != models.QuestionRejected {
		return fmt.Errorf("invalid review status: %s", status)
	}
	return s.questionRepo.UpdateQuestionStatus(ctx, questionID, status)
}

// ListFlagged 获取待审核的被标记提问
func (s *QuestionService) ListFlagged(ctx context.Context, limit int) ([]models.Question, error) {
	return s.questionRepo.ListQuestionsByStatus(ctx, models.QuestionFlagged, limit)
}
