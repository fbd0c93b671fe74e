package database

import (
	"time"

	"gorm.io/gorm"

	"github.com/justchokingaround/aniview/internal/anime"
)

// AnimeEntry is one catalog row. Genres are stored as a JSON column.
type AnimeEntry struct {
	MalID     int           `gorm:"column:mal_id;primaryKey;autoIncrement:false"`
	Title     string        `gorm:"not null;index"`
	Synopsis  string        `gorm:"default:''"`
	Rating    string        `gorm:"default:''"`
	Score     float64       `gorm:"default:0;index"`
	Year      int           `gorm:"default:0;index"`
	URL       string        `gorm:"column:url;default:''"`
	ImageURL  string        `gorm:"column:image_url;default:''"`
	Genres    []anime.Genre `gorm:"type:text;serializer:json"`
	AddedAt   time.Time     `gorm:"index"`
	UpdatedAt time.Time
}

// TableName overrides the table name
func (AnimeEntry) TableName() string {
	return "anime"
}

// EntryFromRecord maps a record onto its catalog row
func EntryFromRecord(rec anime.Record) AnimeEntry {
	return AnimeEntry{
		MalID:    rec.MalID,
		Title:    rec.Title,
		Synopsis: rec.Synopsis,
		Rating:   rec.Rating,
		Score:    rec.Score,
		Year:     rec.Year,
		URL:      rec.URL,
		ImageURL: rec.ImageURL(),
		Genres:   rec.Genres,
	}
}

// Record maps the row back onto a detail record
func (e AnimeEntry) Record() anime.Record {
	return anime.Record{
		MalID:    e.MalID,
		Title:    e.Title,
		Synopsis: e.Synopsis,
		Rating:   e.Rating,
		Score:    e.Score,
		Year:     e.Year,
		URL:      e.URL,
		Images:   anime.Images{JPG: anime.Image{ImageURL: e.ImageURL}},
		Genres:   e.Genres,
	}
}

// Setting represents a key-value store for application settings
type Setting struct {
	Key       string    `gorm:"primaryKey"`
	Value     string    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`
}

// TableName overrides the table name
func (Setting) TableName() string {
	return "settings"
}

// Migrate runs GORM schema migrations
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&AnimeEntry{},
		&Setting{},
	)
}
