// Package rating holds the aggregation rules for store ratings: score
// bounds, 2-decimal averages and per-store owner rollups.
package rating

import (
	"math"
	"store_ratings/internal/common"
	"store_ratings/internal/domain/model"
)

const (
	MinScore = 1
	MaxScore = 5
)

// ValidateScore rejects scores outside [1,5]. Upstream request validation
// checks this too; the aggregator rejects defensively regardless.
func ValidateScore(score int) error {
	if score < MinScore || score > MaxScore {
		return common.Errorf("score must be between %d and %d: %w", MinScore, MaxScore, common.ErrValidation)
	}
	return nil
}

// Average returns the mean score rounded to 2 decimal places and the
// number of ratings. Empty input yields (0, 0). Ties round half away
// from zero (math.Round semantics): 3.625 becomes 3.63.
func Average(ratings []model.Rating) (float64, int) {
	if len(ratings) == 0 {
		return 0, 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Score
	}
	avg := float64(sum) / float64(len(ratings))
	return math.Round(avg*100) / 100, len(ratings)
}

// StoreAggregate is the rollup for a single store.
type StoreAggregate struct {
	StoreID int64   `json:"store_id"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// OwnerAggregates computes one aggregate per store, each over that
// store's own ratings only. Stores with no entry in ratingsByStore get a
// zero aggregate.
func OwnerAggregates(stores []model.Store, ratingsByStore map[int64][]model.Rating) []StoreAggregate {
	aggregates := make([]StoreAggregate, 0, len(stores))
	for _, s := range stores {
		avg, count := Average(ratingsByStore[s.ID])
		aggregates = append(aggregates, StoreAggregate{StoreID: s.ID, Average: avg, Count: count})
	}
	return aggregates
}
