package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seekers/internal/domain"
)

func interviewRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "category", "level", "tier",
		"questions", "answers", "completed_at", "evaluated", "evaluation",
	})
}

func TestInterviewRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	t.Run("inserts the record with its documents", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewInterviewRepository(db)

		mock.ExpectExec(`INSERT INTO interviews`).
			WithArgs("iv-1", "u-1", "Backend Development", "junior", "premium",
				sqlmock.AnyArg(), sqlmock.AnyArg(), now).
			WillReturnResult(sqlmock.NewResult(0, 1))

		rec := &domain.InterviewRecord{
			ID: "iv-1", UserID: "u-1", Category: "Backend Development",
			Level: domain.LevelJunior, Tier: "premium",
			Questions:   []*domain.Question{{ID: "q-1", Content: "Explain goroutines."}},
			Answers:     []domain.Answer{{QuestionID: "q-1", Transcription: "Lightweight threads.", Duration: 45}},
			CompletedAt: now,
		}
		require.NoError(t, repo.Create(ctx, rec))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nil answers are stored as an empty array", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewInterviewRepository(db)

		mock.ExpectExec(`INSERT INTO interviews`).
			WithArgs("iv-1", "u-1", "Backend Development", "junior", "free",
				sqlmock.AnyArg(), []byte(`[]`), now).
			WillReturnResult(sqlmock.NewResult(0, 1))

		rec := &domain.InterviewRecord{
			ID: "iv-1", UserID: "u-1", Category: "Backend Development",
			Level: domain.LevelJunior, Tier: "free", CompletedAt: now,
		}
		require.NoError(t, repo.Create(ctx, rec))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestInterviewRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	t.Run("decodes documents and the stored evaluation", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewInterviewRepository(db)

		rows := interviewRows().AddRow(
			"iv-1", "u-1", "Backend Development", "junior", "premium",
			[]byte(`[{"id":"q-1","content":"Explain goroutines."}]`),
			[]byte(`[{"questionId":"q-1","transcription":"Lightweight threads.","duration":45}]`),
			now, true,
			[]byte(`{"overallScore":82,"overallGrade":"B+","totalQuestions":1}`),
		)
		mock.ExpectQuery(`SELECT .+ FROM interviews WHERE id = \$1`).
			WithArgs("iv-1").
			WillReturnRows(rows)

		got, err := repo.GetByID(ctx, "iv-1")
		require.NoError(t, err)
		assert.Equal(t, domain.LevelJunior, got.Level)
		require.Len(t, got.Answers, 1)
		assert.Equal(t, "q-1", got.Answers[0].QuestionID)
		assert.True(t, got.Evaluated)
		require.NotNil(t, got.Evaluation)
		assert.Equal(t, "B+", got.Evaluation.OverallGrade)
	})

	t.Run("unevaluated row keeps a nil evaluation", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewInterviewRepository(db)

		rows := interviewRows().AddRow(
			"iv-1", "u-1", "Backend Development", "junior", "free",
			[]byte(`[]`), []byte(`[]`), now, false, nil,
		)
		mock.ExpectQuery(`SELECT .+ FROM interviews WHERE id = \$1`).
			WithArgs("iv-1").
			WillReturnRows(rows)

		got, err := repo.GetByID(ctx, "iv-1")
		require.NoError(t, err)
		assert.False(t, got.Evaluated)
		assert.Nil(t, got.Evaluation)
	})

	t.Run("missing interview", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewInterviewRepository(db)

		mock.ExpectQuery(`SELECT .+ FROM interviews WHERE id = \$1`).
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(ctx, "ghost")
		assert.ErrorIs(t, err, domain.ErrInterviewNotFound)
	})
}

func TestInterviewRepository_ListByUser(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	db, mock := newMockDB(t)
	repo := NewInterviewRepository(db)

	rows := interviewRows().
		AddRow("iv-2", "u-1", "Frontend Development", "middle", "free",
			[]byte(`[]`), []byte(`[]`), now, false, nil).
		AddRow("iv-1", "u-1", "Backend Development", "junior", "premium",
			[]byte(`[]`), []byte(`[]`), now.Add(-24*time.Hour), true,
			[]byte(`{"overallScore":70,"overallGrade":"B"}`))
	mock.ExpectQuery(`SELECT .+ FROM interviews WHERE user_id = \$1 ORDER BY completed_at DESC`).
		WithArgs("u-1").
		WillReturnRows(rows)

	records, err := repo.ListByUser(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "iv-2", records[0].ID)
	assert.Equal(t, "iv-1", records[1].ID)
	require.NotNil(t, records[1].Evaluation)
	assert.Equal(t, 70, records[1].Evaluation.OverallScore)
}

func TestInterviewRepository_SaveEvaluation(t *testing.T) {
	ctx := context.Background()
	eval := &domain.InterviewEvaluation{OverallScore: 82, OverallGrade: "B+"}

	t.Run("marks the interview evaluated", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewInterviewRepository(db)

		mock.ExpectExec(`UPDATE interviews SET evaluation = \$2, evaluated = true WHERE id = \$1`).
			WithArgs("iv-1", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.SaveEvaluation(ctx, "iv-1", eval))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown interview", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewInterviewRepository(db)

		mock.ExpectExec(`UPDATE interviews`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SaveEvaluation(ctx, "ghost", eval)
		assert.ErrorIs(t, err, domain.ErrInterviewNotFound)
	})
}
