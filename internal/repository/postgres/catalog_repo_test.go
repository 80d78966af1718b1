package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seekers/internal/domain"
)

func TestCatalogRepository_ListCategories(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	repo := NewCatalogRepository(db)

	rows := sqlmock.NewRows([]string{"id", "title", "description", "icon", "level_junior", "level_middle", "level_senior", "published"}).
		AddRow("cat-be", "Backend Engineer", "Server-side roles", "server", true, true, false, true).
		AddRow("cat-draft", "Draft Category", "", "", true, false, false, false)
	mock.ExpectQuery(`SELECT .+ FROM categories ORDER BY title`).WillReturnRows(rows)

	categories, err := repo.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.True(t, categories[0].Level.Junior)
	assert.True(t, categories[0].Level.Middle)
	assert.False(t, categories[0].Level.Senior)
	assert.False(t, categories[1].Published)
}

func TestCatalogRepository_GetCategory(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	repo := NewCatalogRepository(db)

	mock.ExpectQuery(`SELECT .+ FROM categories WHERE id = \$1`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetCategory(ctx, "ghost")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestCatalogRepository_ListTiers(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	repo := NewCatalogRepository(db)

	rows := sqlmock.NewRows([]string{"id", "title", "price", "quota", "benefits", "description", "popular"}).
		AddRow("tier-free", "Free", 0, 3, []byte(`["3 questions"]`), "Try it out", false).
		AddRow("tier-premium", "Premium", 10, 10, []byte(`["10 questions","AI feedback"]`), "Full session", true)
	mock.ExpectQuery(`SELECT .+ FROM tiers ORDER BY price`).WillReturnRows(rows)

	tiers, err := repo.ListTiers(ctx)
	require.NoError(t, err)
	require.Len(t, tiers, 2)
	assert.Equal(t, []string{"10 questions", "AI feedback"}, tiers[1].Benefits)
	assert.Equal(t, 10, tiers[1].Price)
}

func TestCatalogRepository_CountQuestions(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	repo := NewCatalogRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM questions`).
		WithArgs("cat-be", "junior").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	count, err := repo.CountQuestions(ctx, "cat-be", domain.LevelJunior)
	require.NoError(t, err)
	assert.Equal(t, 12, count)
}

func TestCatalogRepository_ListQuestions(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	repo := NewCatalogRepository(db)

	rows := sqlmock.NewRows([]string{"id", "category_id", "level", "type", "content", "follow_up", "audio_url"}).
		AddRow("q-1", "cat-be", "junior", "technical", "What is a goroutine?", false, "").
		AddRow("q-2", "cat-be", "junior", "behavioral", "Tell me about a hard bug.", true, "")
	mock.ExpectQuery(`SELECT .+ FROM questions`).
		WithArgs("cat-be", "junior", 3).
		WillReturnRows(rows)

	questions, err := repo.ListQuestions(ctx, "cat-be", domain.LevelJunior, 3)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, domain.LevelJunior, questions[0].Level)
	assert.True(t, questions[1].FollowUp)
}
