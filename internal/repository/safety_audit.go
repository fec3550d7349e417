package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"opora-safety/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SafetyAuditRepository 安全评估审计仓库
// safety_evaluations 表没有任何文本列：审计记录只含判定枚举值，
// 隐私约束由表结构本身保证
type SafetyAuditRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSafetyAuditRepository 创建审计仓库
func NewSafetyAuditRepository(db *sql.DB, logger *zap.Logger) *SafetyAuditRepository {
	return &SafetyAuditRepository{
		db:     db,
		logger: logger,
	}
}

// CreateEvaluation 写入一条评估审计记录
// 返回生成的 evaluation_id
func (r *SafetyAuditRepository) CreateEvaluation(ctx context.Context, surface models.Surface, decision models.SafetyDecision) (string, error) {
	evaluationID := uuid.New().String()

	var reason, trigger sql.NullString
	if decision.RefusalReason != "" {
		reason = sql.NullString{String: string(decision.RefusalReason), Valid: true}
	}
	if decision.CrisisTrigger != "" {
		trigger = sql.NullString{String: string(decision.CrisisTrigger), Valid: true}
	}

	query := `
		INSERT INTO safety_evaluations (
			evaluation_id, surface, status, refusal_reason, crisis_trigger, evaluated_at
		) VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		evaluationID,
		string(surface),
		string(decision.Status),
		reason,
		trigger,
		time.Now(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert evaluation: %w", err)
	}

	return evaluationID, nil
}

// CountByStatus 按结论统计评估次数（监控用）
func (r *SafetyAuditRepository) CountByStatus(ctx context.Context, since time.Time) (map[models.SafetyStatus]int, error) {
	query := `
		SELECT status, COUNT(*)
		FROM safety_evaluations
		WHERE evaluated_at >= $1
		GROUP BY status`

	rows, err := r.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to count evaluations: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.SafetyStatus]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[models.SafetyStatus(status)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate counts: %w", err)
	}

	return counts, nil
}
