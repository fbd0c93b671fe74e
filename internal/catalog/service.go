// Package catalog manages the local collection of anime records the user
// can open in the detail screen.
package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/justchokingaround/aniview/internal/anime"
	"github.com/justchokingaround/aniview/internal/database"
)

// ErrNotFound is returned when no entry has the requested mal_id
var ErrNotFound = errors.New("anime not found in catalog")

const lastViewedKey = "last_viewed"

// Service provides catalog management functionality
type Service struct {
	db  *gorm.DB
	now func() time.Time
}

// SortOrder defines the sorting order for catalog listings
type SortOrder string

const (
	SortRecentFirst SortOrder = "recent_first"
	SortTitleAsc    SortOrder = "title_asc"
	SortTitleDesc   SortOrder = "title_desc"
	SortScoreDesc   SortOrder = "score_desc"
	SortYearDesc    SortOrder = "year_desc"
)

// sortNames maps the short names used on the command line to sort orders
var sortNames = map[string]SortOrder{
	"recent": SortRecentFirst,
	"title":  SortTitleAsc,
	"score":  SortScoreDesc,
	"year":   SortYearDesc,
}

// ParseSortOrder accepts a short name (recent, title, score, year) or a
// full sort order such as title_desc
func ParseSortOrder(name string) (SortOrder, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if order, ok := sortNames[name]; ok {
		return order, nil
	}
	switch order := SortOrder(name); order {
	case SortRecentFirst, SortTitleAsc, SortTitleDesc, SortScoreDesc, SortYearDesc:
		return order, nil
	}
	return "", fmt.Errorf("unknown sort order %q", name)
}

// FilterOptions defines filtering options for catalog queries
type FilterOptions struct {
	SearchQuery string    // Substring of the title
	MinScore    float64   // 0 = no lower bound
	Year        int       // 0 = any year
	Limit       int       // 0 = no limit
	Offset      int       // Offset for pagination
	SortBy      SortOrder // Sorting order
}

// Item is a catalog entry together with when it was added
type Item struct {
	Record  anime.Record
	AddedAt time.Time
}

// NewService creates a new catalog service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// Import validates and upserts records by mal_id. Nothing is written when
// any record is invalid. It returns the number of distinct entries stored;
// a mal_id repeated in the batch counts once and the last copy wins.
func (s *Service) Import(records []anime.Record) (int, error) {
	if s.db == nil {
		return 0, fmt.Errorf("database connection is nil")
	}

	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			return 0, fmt.Errorf("invalid record: %w", err)
		}
	}

	stored := make(map[int]struct{}, len(records))
	now := s.now()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, rec := range records {
			entry := database.EntryFromRecord(rec)
			entry.AddedAt = now
			entry.UpdatedAt = now

			// Re-importing refreshes the data but keeps the original added_at.
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "mal_id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"title", "synopsis", "rating", "score", "year", "url", "image_url", "genres", "updated_at",
				}),
			}).Create(&entry).Error
			if err != nil {
				return fmt.Errorf("failed to store %q: %w", rec.Title, err)
			}
			stored[rec.MalID] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return len(stored), nil
}

// List retrieves catalog items with filtering and sorting
func (s *Service) List(filter FilterOptions) ([]Item, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	query := s.db.Model(&database.AnimeEntry{})

	if filter.SearchQuery != "" {
		query = query.Where("title LIKE ?", "%"+filter.SearchQuery+"%")
	}
	if filter.MinScore > 0 {
		query = query.Where("score >= ?", filter.MinScore)
	}
	if filter.Year != 0 {
		query = query.Where("year = ?", filter.Year)
	}

	switch filter.SortBy {
	case SortTitleAsc:
		query = query.Order("title ASC")
	case SortTitleDesc:
		query = query.Order("title DESC")
	case SortScoreDesc:
		query = query.Order("score DESC").Order("title ASC")
	case SortYearDesc:
		query = query.Order("year DESC").Order("title ASC")
	default: // SortRecentFirst
		query = query.Order("added_at DESC").Order("title ASC")
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var entries []database.AnimeEntry
	if err := query.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list catalog: %w", err)
	}

	items := make([]Item, len(entries))
	for i, e := range entries {
		items[i] = Item{Record: e.Record(), AddedAt: e.AddedAt}
	}
	return items, nil
}

// Get retrieves one record by mal_id
func (s *Service) Get(malID int) (anime.Record, error) {
	if s.db == nil {
		return anime.Record{}, fmt.Errorf("database connection is nil")
	}

	var entry database.AnimeEntry
	err := s.db.First(&entry, "mal_id = ?", malID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return anime.Record{}, fmt.Errorf("mal_id %d: %w", malID, ErrNotFound)
	}
	if err != nil {
		return anime.Record{}, fmt.Errorf("failed to fetch mal_id %d: %w", malID, err)
	}
	return entry.Record(), nil
}

// Delete removes a record. Deleting a missing record returns ErrNotFound.
func (s *Service) Delete(malID int) error {
	if s.db == nil {
		return fmt.Errorf("database connection is nil")
	}

	res := s.db.Where("mal_id = ?", malID).Delete(&database.AnimeEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("mal_id %d: %w", malID, ErrNotFound)
	}
	return nil
}

// Count returns the number of records in the catalog
func (s *Service) Count() (int64, error) {
	if s.db == nil {
		return 0, fmt.Errorf("database connection is nil")
	}

	var n int64
	err := s.db.Model(&database.AnimeEntry{}).Count(&n).Error
	return n, err
}

// SetLastViewed remembers the record last opened in the detail screen
func (s *Service) SetLastViewed(malID int) error {
	if s.db == nil {
		return fmt.Errorf("database connection is nil")
	}
	return database.SaveSetting(s.db, lastViewedKey, strconv.Itoa(malID))
}

// LastViewed returns the record last opened, or ErrNotFound when there is
// none or it has since been deleted
func (s *Service) LastViewed() (anime.Record, error) {
	if s.db == nil {
		return anime.Record{}, fmt.Errorf("database connection is nil")
	}

	v, err := database.GetSetting(s.db, lastViewedKey)
	if err != nil {
		return anime.Record{}, err
	}
	if v == "" {
		return anime.Record{}, ErrNotFound
	}

	id, err := strconv.Atoi(v)
	if err != nil {
		return anime.Record{}, fmt.Errorf("corrupt %s setting %q: %w", lastViewedKey, v, err)
	}
	return s.Get(id)
}
