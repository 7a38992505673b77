package algo

import "github.com/huangsam/uli/schema"

// Recommend returns the principle with the lowest score. Ties go to the principle
// that comes first in canonical order, so an all-equal set yields r3.
func Recommend(scores schema.ScoreSet) schema.Principle {
	return TiedLowest(scores)[0]
}

// TiedLowest returns every principle sharing the minimum score, in canonical order.
// The result is never empty.
func TiedLowest(scores schema.ScoreSet) []schema.Principle {
	lowest := scores.Get(schema.AllPrinciples[0])
	for _, p := range schema.AllPrinciples[1:] {
		lowest = min(lowest, scores.Get(p))
	}

	var tied []schema.Principle
	for _, p := range schema.AllPrinciples {
		if scores.Get(p) == lowest {
			tied = append(tied, p)
		}
	}
	return tied
}
