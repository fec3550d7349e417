package service

import (
	"context"

	"opora-safety/internal/models"
	"opora-safety/internal/notifier"
	"opora-safety/internal/policy"
	"opora-safety/internal/repository"

	"go.uber.org/zap"
)

// GateService AI 入口安全闸门用例
// 在生成任何回复之前完成：评估 → 审计落库（尽力）→ 危机通知（尽力）。
// 审计或通知失败绝不能吞掉判定结果——调用方无论如何都要拿到 decision，
// 危机结果对应的紧急资源界面由调用方保证展示。
type GateService struct {
	engine    *policy.Engine
	auditRepo *repository.SafetyAuditRepository
	notifier  *notifier.CrisisNotifier
	logger    *zap.Logger
}

// NewGateService 创建安全闸门服务
func NewGateService(
	engine *policy.Engine,
	auditRepo *repository.SafetyAuditRepository,
	crisisNotifier *notifier.CrisisNotifier,
	logger *zap.Logger,
) *GateService {
	return &GateService{
		engine:    engine,
		auditRepo: auditRepo,
		notifier:  crisisNotifier,
		logger:    logger,
	}
}

// Check 评估一次 AI 入口输入
// 返回的 decision 永远有效；错误只可能来自调用方上下文取消之类的外部原因，
// 因此签名上没有 error——旁路失败只记日志
func (s *GateService) Check(ctx context.Context, input models.SafetyInput) models.SafetyDecision {
	decision := s.engine.Evaluate(input)

	// 审计落库（尽力而为）。日志里只有枚举值，没有文本。
	evaluationID, err := s.auditRepo.CreateEvaluation(ctx, input.Surface, decision)
	if err != nil {
		s.logger.Error("Failed to persist safety evaluation",
			zap.String("surface", string(input.Surface)),
			zap.String("status", string(decision.Status)),
			zap.Error(err),
		)
	}

	s.logger.Info("Safety evaluation completed",
		zap.String("evaluation_id", evaluationID),
		zap.String("surface", string(input.Surface)),
		zap.String("status", string(decision.Status)),
		zap.String("refusal_reason", string(decision.RefusalReason)),
		zap.String("crisis_trigger", string(decision.CrisisTrigger)),
	)

	// 危机结果额外触发转介通知（尽力而为）
	if decision.Status == models.StatusCrisis {
		if err := s.notifier.Notify(evaluationID, input.Surface, decision.CrisisTrigger); err != nil {
			s.logger.Error("Failed to send crisis notification",
				zap.String("evaluation_id", evaluationID),
				zap.String("trigger", string(decision.CrisisTrigger)),
				zap.Error(err),
			)
			// 继续：危机判定必须原样返回给调用方
		}
	}

	return decision
}
