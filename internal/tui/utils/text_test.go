package utils

import (
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
)

func TestWrapText(t *testing.T) {
	assert.Nil(t, WrapText("", 10))

	assert.Equal(t,
		[]string{"Moments", "prior to", "Naruto's", "birth"},
		WrapText("Moments prior to Naruto's birth", 9))

	assert.Equal(t,
		[]string{"one two", "", "three"},
		WrapText("one two\n\nthree", 20),
		"paragraph breaks survive")

	assert.Equal(t,
		[]string{"abcde", "fghij", "k"},
		WrapText("abcdefghijk", 5),
		"long words are hard-broken")

	for _, line := range WrapText("進撃の巨人 は 諫山創 による 漫画", 6) {
		assert.LessOrEqual(t, runewidth.StringWidth(line), 6, line)
	}
}

func TestTruncateWithWidth(t *testing.T) {
	assert.Equal(t, "Action", TruncateWithWidth("Action", 10))
	assert.Equal(t, "Supernat…", TruncateWithWidth("Supernatural", 9))
	assert.Equal(t, "", TruncateWithWidth("Drama", 0))
}

func TestFitCenter(t *testing.T) {
	assert.Equal(t, "  Action  ", FitCenter("Action", 10))
	assert.Equal(t, " Drama  ", FitCenter("Drama", 8))
	assert.Equal(t, "Slice o…", FitCenter("Slice of Life", 8))
	assert.Equal(t, 8, runewidth.StringWidth(FitCenter("恋愛", 8)))
}
