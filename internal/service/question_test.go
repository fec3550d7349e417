package service

import (
	"context"
	"testing"

	"opora-safety/internal/config"
	"opora-safety/internal/consumer"
	"opora-safety/internal/crypto"
	"opora-safety/internal/models"
	"opora-safety/internal/repository"
	"opora-safety/internal/rules"
	"opora-safety/internal/triage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testStream = "opora:moderation:flagged"

func setupQuestionService(t *testing.T) (sqlmock.Sqlmock, *miniredis.Miniredis, *redis.Client, *QuestionService) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redisClient.Close() })

	cfg := &config.Config{}
	cfg.Safety.ModerationStream = testStream

	logger := zap.NewNop()
	sealer, err := crypto.NewAESSealer("test-secret", "test-salt")
	require.NoError(t, err)

	classifier := triage.NewClassifier(rules.DefaultTable())
	questionRepo := repository.NewQuestionRepository(db, logger)
	queue := consumer.NewModerationQueue(cfg, redisClient, logger)

	return mock, mr, redisClient, NewQuestionService(classifier, sealer, questionRepo, queue, logger)
}

func TestSubmit_CleanQuestionPending(t *testing.T) {
	mock, mr, _, svc := setupQuestionService(t)

	mock.ExpectExec(`INSERT INTO questions`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "null", "pending", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	question, err := svc.Submit(context.Background(), "Как научиться говорить нет коллегам?")
	require.NoError(t, err)

	assert.NotEmpty(t, question.QuestionID)
	assert.Equal(t, models.QuestionPending, question.Status)
	assert.Empty(t, question.TriggerFlags)

	// 未标记的提问不进审核队列
	assert.False(t, mr.Exists(testStream))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmit_FlaggedQuestionEnqueued(t *testing.T) {
	mock, _, redisClient, svc := setupQuestionService(t)

	mock.ExpectExec(`INSERT INTO questions`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	question, err := svc.Submit(context.Background(), "Мой муж бьет меня, мой телефон +7 916 123-45-67")
	require.NoError(t, err)

	assert.Equal(t, models.QuestionFlagged, question.Status)
	assert.ElementsMatch(t, []models.TriggerFlag{models.FlagCrisis, models.FlagPII}, question.TriggerFlags)

	msgs, err := redisClient.XRange(context.Background(), testStream, "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, question.QuestionID, msgs[0].Values["question_id"])
}

// 密文必须可由同一 sealer 解回原文，且不等于明文
func TestSubmit_ContentSealed(t *testing.T) {
	mock, _, _, svc := setupQuestionService(t)

	mock.ExpectExec(`INSERT INTO questions`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	text := "Постоянно прокрастинирую и виню себя"
	question, err := svc.Submit(context.Background(), text)
	require.NoError(t, err)

	assert.NotEqual(t, text, question.ContentEncrypted)

	opened, err := svc.sealer.Open(question.ContentEncrypted)
	require.NoError(t, err)
	assert.Equal(t, text, opened)
}

func TestSubmit_EmptyTextRejected(t *testing.T) {
	_, _, _, svc := setupQuestionService(t)

	_, err := svc.Submit(context.Background(), "   ")
	assert.Error(t, err)
}

// 入队失败不阻塞提交：落库已完成，审核端可兜底扫表
func TestSubmit_QueueFailureDoesNotBlock(t *testing.T) {
	mock, mr, _, svc := setupQuestionService(t)

	mock.ExpectExec(`INSERT INTO questions`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mr.Close()

	question, err := svc.Submit(context.Background(), "не хочу жить")
	require.NoError(t, err)
	assert.Equal(t, models.QuestionFlagged, question.Status)
}

func TestReview_ValidStatuses(t *testing.T) {
	mock, _, _, svc := setupQuestionService(t)

	mock.ExpectExec(`UPDATE questions`).
		WithArgs("q-1", "approved", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := svc.Review(context.Background(), "q-1", models.QuestionApproved)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReview_InvalidStatusRejected(t *testing.T) {
	_, _, _, svc := setupQuestionService(t)

	err := svc.Review(context.Background(), "q-1", models.QuestionPending)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid review status")
}
