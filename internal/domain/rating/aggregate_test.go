package rating

import (
	"testing"

	"store_ratings/internal/common"
	"store_ratings/internal/domain/model"

	"github.com/stretchr/testify/require"
)

func scores(ss ...int) []model.Rating {
	rs := make([]model.Rating, 0, len(ss))
	for i, s := range ss {
		rs = append(rs, model.Rating{ID: int64(i + 1), Score: s})
	}
	return rs
}

func TestAverageEmpty(t *testing.T) {
	avg, count := Average(nil)
	require.Equal(t, 0.0, avg)
	require.Equal(t, 0, count)
}

func TestAverage(t *testing.T) {
	tests := []struct {
		name   string
		scores []int
		want   float64
	}{
		{"two ratings", []int{4, 5}, 4.50},
		{"repeating third", []int{4, 4, 5}, 4.33},
		{"single", []int{3}, 3.00},
		{"all same", []int{5, 5, 5, 5}, 5.00},
		{"two thirds", []int{1, 2, 2}, 1.67},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			avg, count := Average(scores(tt.scores...))
			require.Equal(t, tt.want, avg)
			require.Equal(t, len(tt.scores), count)
		})
	}
}

func TestAverageRoundsHalfAwayFromZero(t *testing.T) {
	// 29 / 8 = 3.625 exactly; the tie rounds up to 3.63.
	avg, count := Average(scores(4, 4, 4, 4, 4, 4, 4, 1))
	require.Equal(t, 3.63, avg)
	require.Equal(t, 8, count)
}

func TestValidateScore(t *testing.T) {
	for s := MinScore; s <= MaxScore; s++ {
		require.NoError(t, ValidateScore(s))
	}
	require.ErrorIs(t, ValidateScore(0), common.ErrValidation)
	require.ErrorIs(t, ValidateScore(6), common.ErrValidation)
	require.ErrorIs(t, ValidateScore(-1), common.ErrValidation)
}

func TestOwnerAggregatesKeepStoresApart(t *testing.T) {
	stores := []model.Store{
		{ID: 10, Name: "Bluebird Market"},
		{ID: 20, Name: "Sunset Grocers"},
	}
	byStore := map[int64][]model.Rating{
		10: scores(5, 5),
		20: scores(1, 2),
	}

	aggs := OwnerAggregates(stores, byStore)
	require.Len(t, aggs, 2)

	require.Equal(t, int64(10), aggs[0].StoreID)
	require.Equal(t, 5.00, aggs[0].Average)
	require.Equal(t, 2, aggs[0].Count)

	require.Equal(t, int64(20), aggs[1].StoreID)
	require.Equal(t, 1.50, aggs[1].Average)
	require.Equal(t, 2, aggs[1].Count)
}

func TestOwnerAggregatesMissingStore(t *testing.T) {
	stores := []model.Store{{ID: 30, Name: "Quiet Corner"}}

	aggs := OwnerAggregates(stores, map[int64][]model.Rating{})
	require.Len(t, aggs, 1)
	require.Equal(t, 0.0, aggs[0].Average)
	require.Equal(t, 0, aggs[0].Count)
}
