// Package anime holds the detail record shown by the detail screen and the
// helpers that derive display data from it.
package anime

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrMissingID      = errors.New("record has no mal_id")
	ErrMissingTitle   = errors.New("record has no title")
	ErrDuplicateGenre = errors.New("duplicate genre id")
)

// Record describes one anime. Optional fields use their zero value for
// "absent": an empty Rating or URL, a zero Score or Year, nil Genres.
type Record struct {
	MalID    int     `json:"mal_id" yaml:"mal_id"`
	Title    string  `json:"title" yaml:"title"`
	Synopsis string  `json:"synopsis" yaml:"synopsis"`
	Rating   string  `json:"rating,omitempty" yaml:"rating,omitempty"`
	Score    float64 `json:"score,omitempty" yaml:"score,omitempty"`
	Year     int     `json:"year,omitempty" yaml:"year,omitempty"`
	URL      string  `json:"url,omitempty" yaml:"url,omitempty"`
	Images   Images  `json:"images" yaml:"images"`
	Genres   []Genre `json:"genres,omitempty" yaml:"genres,omitempty"`
}

// Images groups the image variants of a record
type Images struct {
	JPG Image `json:"jpg" yaml:"jpg"`
}

// Image is a reference to a remote image resource
type Image struct {
	ImageURL string `json:"image_url" yaml:"image_url"`
}

// Genre is one genre tag; IDs are unique within a record
type Genre struct {
	MalID int    `json:"mal_id" yaml:"mal_id"`
	Name  string `json:"name" yaml:"name"`
}

// Key returns the stable list identity of the genre
func (g Genre) Key() string {
	return strconv.Itoa(g.MalID)
}

// Details returns the metadata strings shown under the title, in the fixed
// order rating, score, year. Absent fields are skipped.
func (r Record) Details() []string {
	details := []string{}

	if r.Rating != "" {
		details = append(details, r.Rating)
	}
	if r.Score != 0 {
		details = append(details, strconv.FormatFloat(r.Score, 'f', -1, 64))
	}
	if r.Year != 0 {
		details = append(details, strconv.Itoa(r.Year))
	}

	return details
}

// HasURL reports whether the record links to an external page
func (r Record) HasURL() bool {
	return r.URL != ""
}

// HasGenres reports whether there is at least one genre to show
func (r Record) HasGenres() bool {
	return len(r.Genres) > 0
}

// ImageURL returns the primary image reference, possibly empty
func (r Record) ImageURL() string {
	return r.Images.JPG.ImageURL
}

// GenreNames returns the genre names in order
func (r Record) GenreNames() []string {
	names := make([]string, 0, len(r.Genres))
	for _, g := range r.Genres {
		names = append(names, g.Name)
	}
	return names
}

// Validate checks the invariants a record must hold before it is stored
func (r Record) Validate() error {
	if r.MalID == 0 {
		return fmt.Errorf("%q: %w", r.Title, ErrMissingID)
	}
	if r.Title == "" {
		return fmt.Errorf("mal_id %d: %w", r.MalID, ErrMissingTitle)
	}

	seen := make(map[int]struct{}, len(r.Genres))
	for _, g := range r.Genres {
		if _, dup := seen[g.MalID]; dup {
			return fmt.Errorf("%q: %w %d", r.Title, ErrDuplicateGenre, g.MalID)
		}
		seen[g.MalID] = struct{}{}
	}

	return nil
}
