package schema

// PrincipleSummary is one dashboard row.
type PrincipleSummary struct {
	Principle Principle `json:"principle"`
	Label     string    `json:"label"`
	Score     int       `json:"score"`
	History   []int     `json:"history"` // chronological scores for sparklines
}

// DashboardResult aggregates everything the dashboard shows.
type DashboardResult struct {
	Identity         string             `json:"identity"`
	HasScores        bool               `json:"has_scores"` // false when defaults were substituted
	Scores           ScoreSet           `json:"scores"`
	AggregatePercent float64            `json:"aggregate_percent"`
	Streak           int                `json:"streak"`
	Recommendation   Principle          `json:"recommendation"`
	Exercise         Exercise           `json:"exercise"`
	Principles       []PrincipleSummary `json:"principles"`
	ReflectionCount  int                `json:"reflection_count"`
	HistoryCount     int                `json:"history_count"`
}

// HistoryResult is a filtered view over reflection entries.
type HistoryResult struct {
	Query   string            `json:"query"`
	Tag     string            `json:"tag"`
	Total   int               `json:"total"`
	Entries []ReflectionEntry `json:"entries"`
}

// RecommendationResult is the next-exercise suggestion.
type RecommendationResult struct {
	Principle Principle   `json:"principle"`
	Score     int         `json:"score"`
	Tied      []Principle `json:"tied"`
	Exercise  Exercise    `json:"exercise"`
}

// ReflectResult confirms a logged reflection with the recomputed metrics.
type ReflectResult struct {
	Identity         string          `json:"identity"`
	Entry            ReflectionEntry `json:"entry"`
	AggregatePercent float64         `json:"aggregate_percent"`
	Streak           int             `json:"streak"`
	Recommendation   Principle       `json:"recommendation"`
}

// TagCount is one entry of the tag index.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}
