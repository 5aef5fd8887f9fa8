package todoquery

import (
	"errors"
	"testing"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	p, err := Parse("owner-1", RawParams{})
	require.NoError(t, err)

	assert.Equal(t, "owner-1", p.Filter.OwnerID)
	assert.Nil(t, p.Filter.Completed)
	assert.Empty(t, p.Filter.Search)
	assert.Equal(t, Sort{Field: SortNone, Direction: Asc}, p.Sort)
	assert.Equal(t, Page{Limit: 10, Offset: 0}, p.Page)
}

func TestParse_AllParameters(t *testing.T) {
	p, err := Parse("owner-1", RawParams{
		Completed: "true",
		Search:    "Milk",
		Sort:      "createdAt",
		Order:     "descending",
		Limit:     "5",
		Offset:    "15",
	})
	require.NoError(t, err)

	require.NotNil(t, p.Filter.Completed)
	assert.True(t, *p.Filter.Completed)
	assert.Equal(t, "Milk", p.Filter.Search)
	assert.Equal(t, Sort{Field: SortCreatedAt, Direction: Desc}, p.Sort)
	assert.Equal(t, Page{Limit: 5, Offset: 15}, p.Page)
}

func TestParse_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		raw   RawParams
		field string
	}{
		{"completed not boolean", RawParams{Completed: "yes"}, "completed"},
		{"unknown sort field", RawParams{Sort: "password"}, "sort"},
		{"unknown order", RawParams{Sort: "title", Order: "sideways"}, "order"},
		{"limit not a number", RawParams{Limit: "ten"}, "limit"},
		{"limit zero", RawParams{Limit: "0"}, "limit"},
		{"limit too large", RawParams{Limit: "101"}, "limit"},
		{"negative offset", RawParams{Offset: "-1"}, "offset"},
		{"offset not a number", RawParams{Offset: "1.5"}, "offset"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("owner-1", tt.raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, common.ErrorValidation))

			var ve *common.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestWindow(t *testing.T) {
	page := func(limit, offset int) Params {
		return Params{Page: Page{Limit: limit, Offset: offset}}
	}

	t.Run("empty set", func(t *testing.T) {
		_, err := page(10, 0).Window(0)
		assert.ErrorIs(t, err, common.ErrNoResults)
	})

	t.Run("offset at end", func(t *testing.T) {
		_, err := page(10, 3).Window(3)
		assert.ErrorIs(t, err, common.ErrOffsetOutOfBounds)

		var oob *common.OutOfBoundsError
		require.ErrorAs(t, err, &oob)
		assert.Equal(t, 3, oob.Total)
		assert.NotErrorIs(t, err, common.ErrNoResults)
	})

	t.Run("has more", func(t *testing.T) {
		m, err := page(2, 0).Window(3)
		require.NoError(t, err)
		assert.Equal(t, Meta{Limit: 2, Offset: 0, Total: 3, HasMore: true}, m)
	})

	t.Run("last page", func(t *testing.T) {
		m, err := page(2, 2).Window(3)
		require.NoError(t, err)
		assert.Equal(t, Meta{Limit: 2, Offset: 2, Total: 3, HasMore: false}, m)
	})

	t.Run("exact fit", func(t *testing.T) {
		m, err := page(3, 0).Window(3)
		require.NoError(t, err)
		assert.False(t, m.HasMore)
	})
}

func TestWindow_HasMoreInvariant(t *testing.T) {
	for total := 1; total <= 12; total++ {
		for limit := 1; limit <= 5; limit++ {
			for offset := 0; offset < total; offset++ {
				m, err := Params{Page: Page{Limit: limit, Offset: offset}}.Window(total)
				require.NoError(t, err)
				assert.Equal(t, offset+limit < total, m.HasMore, "total=%d limit=%d offset=%d", total, limit, offset)
			}
		}
	}
}
