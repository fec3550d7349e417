package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"opora-safety/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// QuestionRepository 匿名提问仓库
// 只接触密文：明文在 service 层加密后才进入这里
type QuestionRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewQuestionRepository 创建提问仓库
func NewQuestionRepository(db *sql.DB, logger *zap.Logger) *QuestionRepository {
	return &QuestionRepository{
		db:     db,
		logger: logger,
	}
}

// CreateQuestion 写入新提问（密文 + 分诊标记 + 初始状态）
// question.QuestionID 为空时自动生成
func (r *QuestionRepository) CreateQuestion(ctx context.Context, question *models.Question) error {
	if question.QuestionID == "" {
		question.QuestionID = uuid.New().String()
	}
	now := time.Now()
	question.CreatedAt = now
	question.UpdatedAt = now

	flagsJSON, err := json.Marshal(question.TriggerFlags)
	if err != nil {
		return fmt.Errorf("failed to marshal trigger flags: %w", err)
	}

	query := `
		INSERT INTO questions (
			question_id, content_encrypted, trigger_flags, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = r.db.ExecContext(ctx, query,
		question.QuestionID,
		question.ContentEncrypted,
		string(flagsJSON),
		string(question.Status),
		question.CreatedAt,
		question.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert question: %w", err)
	}

	r.logger.Info("Question created",
		zap.String("question_id", question.QuestionID),
		zap.String("status", string(question.Status)),
		zap.Int("flag_count", len(question.TriggerFlags)),
	)

	return nil
}

// GetQuestion 按 ID 查询提问
func (r *QuestionRepository) GetQuestion(ctx context.Context, questionID string) (*models.Question, error) {
	query := `
		SELECT question_id, content_encrypted, trigger_flags, status, created_at, updated_at
		FROM questions
		WHERE question_id = $1`

	row := r.db.QueryRowContext(ctx, query, questionID)

	question, err := scanQuestion(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("question not found: %s", questionID)
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}

	return question, nil
}

// ListQuestionsByStatus 按状态查询提问列表（审核队列用）
func (r *QuestionRepository) ListQuestionsByStatus(ctx context.Context, status models.QuestionStatus, limit int) ([]models.Question, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT question_id, content_encrypted, trigger_flags, status, created_at, updated_at
		FROM questions
		WHERE status = $1
		ORDER BY created_at ASC
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, string(status), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		question, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, *question)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate questions: %w", err)
	}

	return questions, nil
}

// UpdateQuestionStatus 更新审核状态（approve / reject）
func (r *QuestionRepository) UpdateQuestionStatus(ctx context.Context, questionID string, status models.QuestionStatus) error {
	query := `
		UPDATE questions
		SET status = $2, updated_at = $3
		WHERE question_id = $1`

	result, err := r.db.ExecContext(ctx, query, questionID, string(status), time.Now())
	if err != nil {
		return fmt.Errorf("failed to update question status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("question not found: %s", questionID)
	}

	r.logger.Info("Question status updated",
		zap.String("question_id", questionID),
		zap.String("status", string(status)),
	)

	return nil
}

// rowScanner 兼容 *sql.Row 和 *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanQuestion 扫描单行提问记录
func scanQuestion(row rowScanner) (*models.Question, error) {
	var question models.Question
	var flagsJSON string
	var status string

	err := row.Scan(
		&question.QuestionID,
		&question.ContentEncrypted,
		&flagsJSON,
		&status,
		&question.CreatedAt,
		&question.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	question.Status = models.QuestionStatus(status)
	if err := json.Unmarshal([]byte(flagsJSON), &question.TriggerFlags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal trigger flags: %w", err)
	}

	return &question, nil
}
