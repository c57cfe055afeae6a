package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupRepositoryLists(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewLookupRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM categories ORDER BY name")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("c1", "Agriculture").AddRow("c2", "Health"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM technologies ORDER BY name")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	categories, err := repo.Categories(context.Background())
	require.NoError(t, err)
	assert.Len(t, categories, 2)

	techs, err := repo.Technologies(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, techs)
	assert.Empty(t, techs)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLookupRepositoryCategoryExists(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewLookupRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM categories")).
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.CategoryExists(context.Background(), "c1")
	require.NoError(t, err)
	assert.True(t, ok)
}
