// Package detail renders the detail screen of the currently selected anime.
package detail

import (
	"github.com/justchokingaround/aniview/internal/anime"
)

// Handlers are the outbound actions of the screen
type Handlers struct {
	Back     func()
	Favorite func()
	Play     func(url string)
}

// Button is a pressable element of the screen
type Button struct {
	Label   string
	OnPress func()
}

// Press invokes the button's handler, if any
func (b *Button) Press() {
	if b != nil && b.OnPress != nil {
		b.OnPress()
	}
}

// Banner is the image area at the top of the screen
type Banner struct {
	ImageURL string
}

// Actions are the two round buttons above the content
type Actions struct {
	Back     Button
	Favorite Button
}

// Header holds the title, the metadata list and the play affordance
type Header struct {
	Title   string
	Details []string
	// Play is nil when the record has no URL
	Play *Button
}

// Chip is one genre label, keyed by the genre id
type Chip struct {
	Key   string
	Label string
}

// GenreList is the horizontal row of genre chips
type GenreList struct {
	Items          []Chip
	SeparatorWidth int
}

// Screen is the render tree of the detail screen
type Screen struct {
	Banner   Banner
	Actions  Actions
	Header   Header
	Synopsis string
	// Genres is nil when the record has no genres
	Genres *GenreList
}

// Build lays out rec as a Screen. It has no side effects: handlers only
// run when a button is pressed.
func Build(rec anime.Record, h Handlers, separatorWidth int) Screen {
	s := Screen{
		Banner: Banner{ImageURL: rec.ImageURL()},
		Actions: Actions{
			Back:     Button{Label: "←", OnPress: h.Back},
			Favorite: Button{Label: "♥", OnPress: h.Favorite},
		},
		Header: Header{
			Title:   rec.Title,
			Details: rec.Details(),
		},
		Synopsis: rec.Synopsis,
	}

	if rec.HasURL() {
		url := rec.URL
		s.Header.Play = &Button{
			Label: "▶ Play",
			OnPress: func() {
				if h.Play != nil {
					h.Play(url)
				}
			},
		}
	}

	if rec.HasGenres() {
		items := make([]Chip, len(rec.Genres))
		for i, g := range rec.Genres {
			items[i] = Chip{Key: g.Key(), Label: g.Name}
		}
		s.Genres = &GenreList{Items: items, SeparatorWidth: separatorWidth}
	}

	return s
}
