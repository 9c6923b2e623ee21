package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	l := DefaultLimits()

	p := l.Normalize(0, 0)
	assert.Equal(t, Params{Page: 1, PageSize: 20}, p)
	assert.Equal(t, 0, p.Offset())

	p = l.Normalize(3, 500)
	assert.Equal(t, 100, p.PageSize)
	assert.Equal(t, 200, p.Offset())

	p = Limits{Default: 5, Max: 10}.Normalize(-2, 7)
	assert.Equal(t, Params{Page: 1, PageSize: 7}, p)
}

func TestNormalize_LimitsInvalidos(t *testing.T) {
	p := Limits{}.Normalize(1, 0)
	assert.Equal(t, DefaultPageSize, p.PageSize)

	p = Limits{Default: 50, Max: 10}.Normalize(1, 0)
	assert.Equal(t, 10, p.PageSize, "el default no puede superar el máximo")
}

func TestNewMeta(t *testing.T) {
	m := NewMeta(45, Params{Page: 2, PageSize: 20})
	assert.Equal(t, 3, m.TotalPages)
	assert.True(t, m.HasNext)
	assert.True(t, m.HasPrev)

	m = NewMeta(45, Params{Page: 3, PageSize: 20})
	assert.False(t, m.HasNext)

	m = NewMeta(0, Params{Page: 1, PageSize: 20})
	assert.Equal(t, 0, m.TotalPages)
	assert.False(t, m.HasNext)
	assert.False(t, m.HasPrev)
}
