package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/justchokingaround/aniview/internal/anime"
	"github.com/justchokingaround/aniview/internal/config"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(&config.DatabaseConfig{
		Path:           filepath.Join(t.TempDir(), "test.db"),
		MaxConnections: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestOpenFreshDatabase(t *testing.T) {
	db := openTestDB(t)

	assert.True(t, db.Migrator().HasTable(&AnimeEntry{}))
	assert.True(t, db.Migrator().HasColumn(&AnimeEntry{}, "AddedAt"))

	applied, err := getAppliedMigrations(db)
	require.NoError(t, err)
	assert.True(t, applied["20261001"], "column migrations are recorded as skipped on fresh databases")
	assert.True(t, applied["20261012"])
}

func TestEntryRoundTrip(t *testing.T) {
	db := openTestDB(t)

	rec := anime.Record{
		MalID:  20,
		Title:  "Naruto",
		Score:  8,
		Year:   2002,
		URL:    "https://example.com",
		Images: anime.Images{JPG: anime.Image{ImageURL: "https://cdn.example.com/20.jpg"}},
		Genres: []anime.Genre{{MalID: 1, Name: "Action"}, {MalID: 2, Name: "Adventure"}},
	}
	require.NoError(t, db.Create(ptr(EntryFromRecord(rec))).Error)

	var got AnimeEntry
	require.NoError(t, db.First(&got, "mal_id = ?", 20).Error)
	assert.Equal(t, rec, got.Record())
}

func TestSettings(t *testing.T) {
	db := openTestDB(t)

	v, err := GetSetting(db, "last_viewed")
	require.NoError(t, err)
	assert.Equal(t, "", v)

	require.NoError(t, SaveSetting(db, "last_viewed", "20"))
	require.NoError(t, SaveSetting(db, "last_viewed", "1"))

	v, err = GetSetting(db, "last_viewed")
	require.NoError(t, err)
	assert.Equal(t, "1", v)

	require.NoError(t, DeleteSetting(db, "last_viewed"))
	require.NoError(t, DeleteSetting(db, "last_viewed"))
	v, err = GetSetting(db, "last_viewed")
	require.NoError(t, err)
	assert.Equal(t, "", v)

	assert.Error(t, SaveSetting(db, "", "x"))
}

func TestSplitStatements(t *testing.T) {
	sql := "-- adds-column: anime.added_at\nALTER TABLE anime ADD COLUMN added_at DATETIME;\nUPDATE anime SET added_at = 1;\n"
	assert.Equal(t, []string{
		"ALTER TABLE anime ADD COLUMN added_at DATETIME",
		"UPDATE anime SET added_at = 1",
	}, splitStatements(sql))
}

func TestExtractMigrationName(t *testing.T) {
	assert.Equal(t, "20261001", extractMigrationName("20261001_anime_added_at.sql"))
	assert.Equal(t, "notes.sql", extractMigrationName("notes.sql"))
}

func ptr[T any](v T) *T { return &v }
