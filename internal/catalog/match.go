package catalog

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/justchokingaround/aniview/internal/anime"
)

// MinTitleScore is the similarity FindByTitle requires
const MinTitleScore = 0.6

var (
	seasonPattern = regexp.MustCompile(`\s*season\s+\d+\s*`)
	partPattern   = regexp.MustCompile(`\s*part\s+\d+\s*`)
)

// NormalizeTitle lowercases title and drops season/part suffixes and
// punctuation so near-identical titles compare equal
func NormalizeTitle(title string) string {
	title = strings.ToLower(title)
	title = seasonPattern.ReplaceAllString(title, " ")
	title = partPattern.ReplaceAllString(title, " ")

	var b strings.Builder
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// LevenshteinDistance is the number of single-rune edits between s1 and s2
func LevenshteinDistance(s1, s2 string) int {
	a, b := []rune(s1), []rune(s2)

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// SimilarityScore rates two titles from 0 (unrelated) to 1 (same title)
func SimilarityScore(title1, title2 string) float64 {
	n1, n2 := NormalizeTitle(title1), NormalizeTitle(title2)
	if n1 == "" || n2 == "" {
		return 0
	}

	maxLen := max(len([]rune(n1)), len([]rune(n2)))
	return max(1-float64(LevenshteinDistance(n1, n2))/float64(maxLen), 0)
}

// Match is a catalog item with its title similarity to a query
type Match struct {
	Item    Item
	Score   float64
	IsExact bool
}

// RankByTitle scores items against query and returns those at or above
// minScore, exact matches first, then by score
func RankByTitle(query string, items []Item, minScore float64) []Match {
	normQuery := NormalizeTitle(query)

	var matches []Match
	for _, it := range items {
		score := SimilarityScore(query, it.Record.Title)
		exact := NormalizeTitle(it.Record.Title) == normQuery
		if score >= minScore || exact {
			matches = append(matches, Match{Item: it, Score: score, IsExact: exact})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].IsExact != matches[j].IsExact {
			return matches[i].IsExact
		}
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// FindByTitle returns the catalog record whose title is closest to query
func (s *Service) FindByTitle(query string) (anime.Record, error) {
	items, err := s.List(FilterOptions{SortBy: SortTitleAsc})
	if err != nil {
		return anime.Record{}, err
	}

	matches := RankByTitle(query, items, MinTitleScore)
	if len(matches) == 0 {
		return anime.Record{}, fmt.Errorf("title %q: %w", query, ErrNotFound)
	}
	return matches[0].Item.Record, nil
}
