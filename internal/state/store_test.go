package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/justchokingaround/aniview/internal/anime"
)

func TestStore(t *testing.T) {
	s := NewStore()

	_, ok := s.Selected()
	assert.False(t, ok)
	assert.Equal(t, anime.Record{}, s.CurrentDetail())

	naruto := anime.Record{MalID: 20, Title: "Naruto"}
	s.Select(naruto)
	got, ok := s.Selected()
	assert.True(t, ok)
	assert.Equal(t, naruto, got)

	bebop := anime.Record{MalID: 1, Title: "Cowboy Bebop"}
	s.Select(bebop)
	assert.Equal(t, bebop, s.CurrentDetail(), "a new selection overwrites the slot")

	s.Clear()
	_, ok = s.Selected()
	assert.False(t, ok)
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(2)
		go func(id int) {
			defer wg.Done()
			s.Select(anime.Record{MalID: id, Title: "t"})
		}(i)
		go func() {
			defer wg.Done()
			_ = s.CurrentDetail()
		}()
	}
	wg.Wait()

	rec, ok := s.Selected()
	assert.True(t, ok)
	assert.NotZero(t, rec.MalID)
}

func TestStatic(t *testing.T) {
	var q DetailQuery = Static(anime.Record{Title: "Trigun"})
	assert.Equal(t, "Trigun", q.CurrentDetail().Title)
}
