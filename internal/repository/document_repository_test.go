package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"docanalyzer/internal/model"
	sqliteClient "docanalyzer/internal/platform/sqlite"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := sqliteClient.New(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Document{},
		&model.DocumentContent{},
		&model.AnalysisSession{},
		&model.Query{},
	))
	return db
}

func TestDocumentGetByIDMissingReturnsNil(t *testing.T) {
	repo := NewDocumentRepository(newTestDB(t))

	doc, err := repo.GetByID("missing")
	require.NoError(t, err)
	assert.Nil(t, doc)

	content, err := repo.GetContent("missing")
	require.NoError(t, err)
	assert.Nil(t, content)
}

func TestDocumentExists(t *testing.T) {
	db := newTestDB(t)
	repo := NewDocumentRepository(db)

	require.NoError(t, db.Create(&model.Document{
		ID:       "doc-1",
		FileName: "a.txt",
		FilePath: "/tmp/a.txt",
		MimeType: "text/plain",
		Status:   model.StatusUploaded,
	}).Error)

	ok, err := repo.Exists("doc-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Exists("doc-2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionGetByIDMissingReturnsNil(t *testing.T) {
	repo := NewSessionRepository(newTestDB(t))

	session, err := repo.GetByID("missing")
	require.NoError(t, err)
	assert.Nil(t, session)
}
