package pagination

import (
	"testing"

	"eFurnitureMarket/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name      string
		pageIndex int
		pageSize  int
		wantIndex int
		wantSize  int
		wantErr   bool
	}{
		{"first page", 0, 20, 0, 20, false},
		{"later page", 7, 50, 7, 50, false},
		{"size clamped to max", 0, 5000, 0, MaxPageSize, false},
		{"negative index", -1, 20, 0, 0, true},
		{"zero size", 0, 0, 0, 0, true},
		{"negative size", 0, -5, 0, 0, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gotIndex, gotSize, err := Normalize(tc.pageIndex, tc.pageSize)
			if tc.wantErr {
				require.ErrorIs(t, err, domain.ErrInvalidPage)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantIndex, gotIndex)
			assert.Equal(t, tc.wantSize, gotSize)
		})
	}
}

func TestNew_NilItemsBecomeEmptySlice(t *testing.T) {
	page := New[string](0, 10, 0, nil)

	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
}

func TestNew_CarriesMetadata(t *testing.T) {
	items := []int{1, 2, 3}
	page := New(2, 3, 11, items)

	assert.Equal(t, 2, page.PageIndex)
	assert.Equal(t, 3, page.PageSize)
	assert.Equal(t, int64(11), page.TotalItemsCount)
	assert.Equal(t, items, page.Items)
}
