package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"opora-safety/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupMockQuestionDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *QuestionRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	logger := zap.NewNop()
	repo := NewQuestionRepository(db, logger)

	return db, mock, repo
}

func TestCreateQuestion_Success(t *testing.T) {
	db, mock, repo := setupMockQuestionDB(t)
	defer db.Close()

	ctx := context.Background()
	question := &models.Question{
		ContentEncrypted: "c2VhbGVkLWNvbnRlbnQ=",
		TriggerFlags:     []models.TriggerFlag{models.FlagCrisis, models.FlagPII},
		Status:           models.QuestionFlagged,
	}

	mock.ExpectExec(`INSERT INTO questions`).
		WithArgs(
			sqlmock.AnyArg(), // question_id 自动生成
			"c2VhbGVkLWNvbnRlbnQ=",
			`["crisis","pii"]`,
			"flagged",
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.CreateQuestion(ctx, question)

	require.NoError(t, err)
	assert.NotEmpty(t, question.QuestionID)
	assert.False(t, question.CreatedAt.IsZero())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetQuestion_Success(t *testing.T) {
	db, mock, repo := setupMockQuestionDB(t)
	defer db.Close()

	ctx := context.Background()
	questionID := uuid.New().String()
	createdAt := time.Now()
	updatedAt := time.Now()

	rows := sqlmock.NewRows([]string{
		"question_id", "content_encrypted", "trigger_flags", "status", "created_at", "updated_at",
	}).AddRow(
		questionID, "c2VhbGVk", `["medical"]`, "flagged", createdAt, updatedAt,
	)

	mock.ExpectQuery(`SELECT`).
		WithArgs(questionID).
		WillReturnRows(rows)

	question, err := repo.GetQuestion(ctx, questionID)

	require.NoError(t, err)
	assert.Equal(t, questionID, question.QuestionID)
	assert.Equal(t, "c2VhbGVk", question.ContentEncrypted)
	assert.Equal(t, []models.TriggerFlag{models.FlagMedical}, question.TriggerFlags)
	assert.Equal(t, models.QuestionFlagged, question.Status)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetQuestion_NotFound(t *testing.T) {
	db, mock, repo := setupMockQuestionDB(t)
	defer db.Close()

	ctx := context.Background()
	questionID := uuid.New().String()

	mock.ExpectQuery(`SELECT`).
		WithArgs(questionID).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetQuestion(ctx, questionID)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "question not found")
}

func TestListQuestionsByStatus_Success(t *testing.T) {
	db, mock, repo := setupMockQuestionDB(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	rows := sqlmock.NewRows([]string{
		"question_id", "content_encrypted", "trigger_flags", "status", "created_at", "updated_at",
	}).AddRow(
		uuid.New().String(), "YQ==", `["crisis"]`, "flagged", now, now,
	).AddRow(
		uuid.New().String(), "Yg==", `["pii","medical"]`, "flagged", now, now,
	)

	mock.ExpectQuery(`SELECT`).
		WithArgs("flagged", 10).
		WillReturnRows(rows)

	questions, err := repo.ListQuestionsByStatus(ctx, models.QuestionFlagged, 10)

	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, []models.TriggerFlag{models.FlagCrisis}, questions[0].TriggerFlags)
	assert.Equal(t, []models.TriggerFlag{models.FlagPII, models.FlagMedical}, questions[1].TriggerFlags)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateQuestionStatus_Success(t *testing.T) {
	db, mock, repo := setupMockQuestionDB(t)
	defer db.Close()

	ctx := context.Background()
	questionID := uuid.New().String()

	mock.ExpectExec(`UPDATE questions`).
		WithArgs(questionID, "approved", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateQuestionStatus(ctx, questionID, models.QuestionApproved)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateQuestionStatus_NotFound(t *testing.T) {
	db, mock, repo := setupMockQuestionDB(t)
	defer db.Close()

	ctx := context.Background()
	questionID := uuid.New().String()

	mock.ExpectExec(`UPDATE questions`).
		WithArgs(questionID, "rejected", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateQuestionStatus(ctx, questionID, models.QuestionRejected)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "question not found")
}
