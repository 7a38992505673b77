package algo

import (
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/huangsam/uli/schema"
)

// AllTagsFilter matches entries regardless of their tags.
const AllTagsFilter = "all"

// SearchReflections returns entries newest first, keeping those whose text or tags
// contain query (case-insensitive) and that carry tag exactly. An empty tag or
// AllTagsFilter disables tag filtering. Entries before since are dropped unless
// since is zero.
func SearchReflections(entries []schema.ReflectionEntry, query, tag string, since time.Time) []schema.ReflectionEntry {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b schema.ReflectionEntry) int {
		return b.Timestamp.Compare(a.Timestamp.Time)
	})

	needle := strings.ToLower(strings.TrimSpace(query))
	result := make([]schema.ReflectionEntry, 0, len(sorted))
	for _, e := range sorted {
		if !since.IsZero() && e.Timestamp.Before(since) {
			continue
		}
		if tag != "" && tag != AllTagsFilter && !slices.Contains(e.Tags, tag) {
			continue
		}
		if needle != "" && !matchesQuery(e, needle) {
			continue
		}
		result = append(result, e)
	}
	return result
}

func matchesQuery(e schema.ReflectionEntry, needle string) bool {
	if strings.Contains(strings.ToLower(e.Reflection), needle) {
		return true
	}
	for _, t := range e.Tags {
		if strings.Contains(strings.ToLower(t), needle) {
			return true
		}
	}
	return false
}

// AllTags returns the sorted, deduplicated tags used across entries.
func AllTags(entries []schema.ReflectionEntry) []string {
	var tags []string
	for _, e := range entries {
		tags = append(tags, e.Tags...)
	}
	slices.Sort(tags)
	return slices.Compact(tags)
}

// TagCounts returns how many entries carry each tag, sorted by tag.
// A tag repeated within one entry counts once for that entry.
func TagCounts(entries []schema.ReflectionEntry) []schema.TagCount {
	counts := make(map[string]int)
	for _, e := range entries {
		for _, t := range slices.Compact(slices.Sorted(slices.Values(e.Tags))) {
			counts[t]++
		}
	}
	result := make([]schema.TagCount, 0, len(counts))
	for _, t := range slices.Sorted(maps.Keys(counts)) {
		result = append(result, schema.TagCount{Tag: t, Count: counts[t]})
	}
	return result
}
