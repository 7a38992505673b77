package algo

import "github.com/huangsam/uli/schema"

// AggregatePercent reduces a score set to sum / (6 * 10) * 100.
// Scores start at 1, so the floor is 10 rather than 0.
func AggregatePercent(scores schema.ScoreSet) float64 {
	maxTotal := float64(len(schema.AllPrinciples) * schema.MaxScore)
	return float64(scores.Sum()) / maxTotal * 100
}
