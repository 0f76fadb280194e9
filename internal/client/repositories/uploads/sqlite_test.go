package uploads

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/storyshare/internal/client/client"
	"github.com/dmitrijs2005/storyshare/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, client.RunMigrations(context.Background(), db))
	return db
}

func TestAddAndList(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	lat, lon := -6.2, 106.8
	first := &models.Upload{Description: "first", ImageName: "a.jpg", Message: "Story created successfully", UploadedAt: base}
	second := &models.Upload{Description: "second", ImageName: "b.jpg", Lat: &lat, Lon: &lon, UploadedAt: base.Add(time.Hour)}

	require.NoError(t, r.Add(ctx, first))
	require.NoError(t, r.Add(ctx, second))
	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)

	got, err := r.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "second", got[0].Description)
	require.NotNil(t, got[0].Lat)
	assert.Equal(t, -6.2, *got[0].Lat)
	assert.True(t, got[0].UploadedAt.Equal(base.Add(time.Hour)))

	assert.Equal(t, "first", got[1].Description)
	assert.Nil(t, got[1].Lat)
	assert.Nil(t, got[1].Lon)
	assert.Equal(t, "Story created successfully", got[1].Message)

	limited, err := r.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "second", limited[0].Description)
}

func TestAdd_DefaultsTimestamp(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	u := &models.Upload{ImageName: "a.jpg"}
	require.NoError(t, r.Add(context.Background(), u))
	assert.False(t, u.UploadedAt.IsZero())
}

func TestAdd_DuplicateID(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	require.NoError(t, r.Add(ctx, &models.Upload{ID: "x", ImageName: "a.jpg"}))
	require.Error(t, r.Add(ctx, &models.Upload{ID: "x", ImageName: "b.jpg"}))
}

func TestList_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("db gone")
	mock.ExpectQuery("SELECT id, description").WillReturnError(boom)

	_, err = NewSQLiteRepository(db).List(context.Background(), 5)
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}
