package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFuzzySearchFilter(t *testing.T) {
	titles := []string{"Naruto", "Cowboy Bebop", "Naruto Shippuden", "Monster"}

	f := NewFuzzySearch()
	assert.Equal(t, []int{0, 1, 2, 3}, f.Filter(titles), "inactive filter keeps everything")

	f.Activate()
	assert.True(t, f.IsEditing())
	assert.Equal(t, []int{0, 1, 2, 3}, f.Filter(titles), "empty query keeps everything")

	f.SetQuery("naru")
	assert.False(t, f.IsEditing())
	assert.ElementsMatch(t, []int{0, 2}, f.Filter(titles))

	f.Deactivate()
	assert.False(t, f.IsActive())
	assert.Empty(t, f.Query())
	assert.Len(t, f.Filter(titles), 4)
}
