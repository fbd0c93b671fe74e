package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justchokingaround/aniview/internal/anime"
)

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		name     string
		s1, s2   string
		expected int
	}{
		{"identical strings", "hello", "hello", 0},
		{"empty strings", "", "", 0},
		{"one empty", "hello", "", 5},
		{"single char diff", "hello", "hallo", 1},
		{"multiple diffs", "kitten", "sitting", 3},
		{"completely different", "abc", "xyz", 3},
		{"multibyte runes count once", "進撃の巨人", "進撃の巨大", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, LevenshteinDistance(tt.s1, tt.s2))
		})
	}
}

func TestSimilarityScore(t *testing.T) {
	tests := []struct {
		name           string
		title1, title2 string
		minScore       float64
	}{
		{"identical", "Attack on Titan", "Attack on Titan", 1.0},
		{"season suffix", "Attack on Titan", "Attack on Titan Season 2", 1.0},
		{"case diff", "attack on titan", "ATTACK ON TITAN", 1.0},
		{"similar", "Demon Slayer", "Demon Slayers", 0.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.GreaterOrEqual(t, SimilarityScore(tt.title1, tt.title2), tt.minScore)
		})
	}

	assert.Less(t, SimilarityScore("Naruto", "One Piece"), MinTitleScore)
	assert.Zero(t, SimilarityScore("", "Naruto"))
}

func TestRankByTitle(t *testing.T) {
	items := []Item{
		{Record: anime.Record{MalID: 1735, Title: "Naruto: Shippuuden"}},
		{Record: anime.Record{MalID: 20, Title: "Naruto"}},
		{Record: anime.Record{MalID: 21, Title: "One Piece"}},
	}

	matches := RankByTitle("naruto", items, MinTitleScore)
	require.NotEmpty(t, matches)
	assert.Equal(t, 20, matches[0].Item.Record.MalID)
	assert.True(t, matches[0].IsExact)
	for _, m := range matches {
		assert.NotEqual(t, 21, m.Item.Record.MalID)
	}
}

func TestFindByTitle(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Import([]anime.Record{
		{MalID: 20, Title: "Naruto"},
		{MalID: 1, Title: "Cowboy Bebop"},
	})
	require.NoError(t, err)

	rec, err := svc.FindByTitle("cowboy bebop")
	require.NoError(t, err)
	assert.Equal(t, 1, rec.MalID)

	rec, err = svc.FindByTitle("Narutto")
	require.NoError(t, err)
	assert.Equal(t, 20, rec.MalID)

	_, err = svc.FindByTitle("Monster")
	assert.ErrorIs(t, err, ErrNotFound)
}
