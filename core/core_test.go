package core

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/uli/internal/contract"
	"github.com/huangsam/uli/internal/store"
	"github.com/huangsam/uli/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testIdentity = "tester"

var baseTime = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

func uniform(v int) map[schema.Principle]int {
	scores := make(map[schema.Principle]int, len(schema.AllPrinciples))
	for _, p := range schema.AllPrinciples {
		scores[p] = v
	}
	return scores
}

// seed logs one reflection per day ending at baseTime.
func seed(t *testing.T, records contract.RecordStore, inputs ...ReflectInput) {
	t.Helper()
	start := baseTime.AddDate(0, 0, -(len(inputs) - 1))
	for i, in := range inputs {
		_, err := LogReflection(records, testIdentity, in, start.AddDate(0, 0, i))
		require.NoError(t, err)
	}
}

func testConfig(t *testing.T, output schema.OutputMode) *contract.Config {
	t.Helper()
	return &contract.Config{
		Identity:   testIdentity,
		Output:     output,
		OutputFile: filepath.Join(t.TempDir(), "out"),
		Precision:  1,
		Window:     schema.WindowAll,
		Principles: schema.AllPrinciples,
	}
}

func withClock(t *testing.T, now time.Time) {
	t.Helper()
	orig := nowFunc
	nowFunc = func() time.Time { return now }
	t.Cleanup(func() { nowFunc = orig })
}

func TestRecordsFrom(t *testing.T) {
	_, err := recordsFrom(nil)
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	mgr := &store.MockStoreManager{}
	mgr.On("GetRecordStore").Return(nil)
	_, err = recordsFrom(mgr)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	mgr.AssertExpectations(t)

	records := store.NewMemoryStore()
	got, err := recordsFrom(store.NewRecordStoreManager(records))
	require.NoError(t, err)
	assert.Same(t, records, got)
}

func TestBuildDashboardEmpty(t *testing.T) {
	result, err := BuildDashboard(store.NewMemoryStore(), testIdentity, baseTime)
	require.NoError(t, err)

	assert.False(t, result.HasScores)
	assert.Equal(t, schema.DefaultScoreSet(), result.Scores)
	assert.InDelta(t, 50.0, result.AggregatePercent, 1e-9)
	assert.Equal(t, 0, result.Streak)
	assert.Equal(t, schema.R3, result.Recommendation)
	assert.Equal(t, schema.R3, result.Exercise.Principle)
	require.Len(t, result.Principles, len(schema.AllPrinciples))
	for i, summary := range result.Principles {
		assert.Equal(t, schema.AllPrinciples[i], summary.Principle)
		assert.Equal(t, schema.DefaultScore, summary.Score)
		assert.Empty(t, summary.History)
	}
	assert.Zero(t, result.ReflectionCount)
	assert.Zero(t, result.HistoryCount)
}

func TestBuildDashboard(t *testing.T) {
	records := store.NewMemoryStore()
	seed(t, records,
		ReflectInput{Text: "day one", Scores: uniform(4)},
		ReflectInput{Text: "day two", Scores: map[schema.Principle]int{schema.APD: 2}},
		ReflectInput{Text: "day three", Scores: map[schema.Principle]int{schema.R3: 9}},
	)

	result, err := BuildDashboard(records, testIdentity, baseTime.Add(time.Hour))
	require.NoError(t, err)

	assert.True(t, result.HasScores)
	assert.Equal(t, schema.ScoreSet{R3: 9, PHCB: 4, APD: 2, LPS: 4, CDR: 4, EIA: 4}, result.Scores)
	assert.Equal(t, 3, result.Streak)
	assert.Equal(t, schema.APD, result.Recommendation)
	assert.InDelta(t, 27.0/60*100, result.AggregatePercent, 1e-9)
	assert.Equal(t, []int{4, 4, 9}, result.Principles[0].History)
	assert.Equal(t, []int{4, 2, 2}, result.Principles[2].History)
	assert.Equal(t, 3, result.ReflectionCount)
	assert.Equal(t, 3, result.HistoryCount)
}

func TestBuildDashboardStoreError(t *testing.T) {
	records := &store.MockRecordStore{}
	records.On("LoadCurrentScores", testIdentity).Return(schema.ScoreSet{}, false, errors.New("boom"))

	_, err := BuildDashboard(records, testIdentity, baseTime)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load current scores")
	records.AssertExpectations(t)
}

func TestLogReflection(t *testing.T) {
	records := store.NewMemoryStore()

	result, err := LogReflection(records, testIdentity, ReflectInput{
		Text:   "  noticed the noticing ",
		Tags:   "focus, morning,,",
		Scores: map[schema.Principle]int{schema.R3: 8, schema.EIA: 3},
	}, baseTime)
	require.NoError(t, err)

	assert.Equal(t, testIdentity, result.Identity)
	assert.Equal(t, []string{"focus", "morning"}, result.Entry.Tags)
	assert.Equal(t, schema.ScoreSet{R3: 8, PHCB: 5, APD: 5, LPS: 5, CDR: 5, EIA: 3}, result.Entry.Scores)
	assert.Equal(t, 1, result.Streak)
	assert.Equal(t, schema.EIA, result.Recommendation)
	assert.InDelta(t, 31.0/60*100, result.AggregatePercent, 1e-9)

	history, err := records.LoadHistory(testIdentity)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, result.Entry.Point(), history[0])

	scores, ok, err := records.LoadCurrentScores(testIdentity)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, result.Entry.Scores, scores)
}

func TestLogReflectionKeepsCurrentScores(t *testing.T) {
	records := store.NewMemoryStore()
	seed(t, records, ReflectInput{Text: "first", Scores: uniform(7)})

	result, err := LogReflection(records, testIdentity, ReflectInput{
		Text:   "second",
		Scores: map[schema.Principle]int{schema.LPS: 1},
	}, baseTime.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, schema.ScoreSet{R3: 7, PHCB: 7, APD: 7, LPS: 1, CDR: 7, EIA: 7}, result.Entry.Scores)
}

func TestLogReflectionInvalid(t *testing.T) {
	tests := []struct {
		name string
		in   ReflectInput
	}{
		{name: "empty text", in: ReflectInput{Text: "   "}},
		{name: "score too high", in: ReflectInput{Text: "x", Scores: map[schema.Principle]int{schema.CDR: 11}}},
		{name: "score too low", in: ReflectInput{Text: "x", Scores: map[schema.Principle]int{schema.R3: 0}}},
		{name: "unknown principle", in: ReflectInput{Text: "x", Scores: map[schema.Principle]int{"xyz": 5}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := store.NewMemoryStore()
			_, err := LogReflection(records, testIdentity, tt.in, baseTime)
			require.Error(t, err)

			reflections, err := records.LoadReflections(testIdentity)
			require.NoError(t, err)
			assert.Empty(t, reflections)
		})
	}
}

func TestLogReflectionMalformed(t *testing.T) {
	_, err := LogReflection(store.NewMemoryStore(), testIdentity, ReflectInput{Text: ""}, baseTime)
	assert.ErrorIs(t, err, schema.ErrMalformedRecord)
}

func TestBuildTrendResult(t *testing.T) {
	records := store.NewMemoryStore()

	result, err := BuildTrendResult(records, testIdentity, schema.WindowAll, nil, baseTime)
	require.NoError(t, err)
	assert.True(t, result.Insufficient)

	seed(t, records,
		ReflectInput{Text: "a", Scores: uniform(3)},
		ReflectInput{Text: "b", Scores: uniform(6)},
	)
	result, err = BuildTrendResult(records, testIdentity, schema.WindowAll, []schema.Principle{schema.R3}, baseTime)
	require.NoError(t, err)
	assert.False(t, result.Insufficient)
	require.NotNil(t, result.Chart)
	require.Len(t, result.Chart.Series, 1)
	assert.Len(t, result.Chart.Series[0].Points, 2)
}

func TestSearchHistory(t *testing.T) {
	records := store.NewMemoryStore()
	seed(t, records,
		ReflectInput{Text: "Morning breathing", Tags: "calm"},
		ReflectInput{Text: "Pattern in cooking", Tags: "patterns, kitchen"},
		ReflectInput{Text: "Evening breathing", Tags: "calm, evening"},
	)

	result, err := SearchHistory(records, testIdentity, "breathing", "", time.Time{}, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
	require.Len(t, result.Entries, 2)
	assert.Equal(t, "Evening breathing", result.Entries[0].Reflection)

	result, err = SearchHistory(records, testIdentity, "", "calm", time.Time{}, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
	assert.Len(t, result.Entries, 1)

	result, err = SearchHistory(records, testIdentity, "", "", baseTime.Add(-time.Hour), 0)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)
}

func TestListTags(t *testing.T) {
	records := store.NewMemoryStore()
	seed(t, records,
		ReflectInput{Text: "a", Tags: "calm, calm"},
		ReflectInput{Text: "b", Tags: "calm, evening"},
	)

	tags, err := ListTags(records, testIdentity)
	require.NoError(t, err)
	assert.Equal(t, []schema.TagCount{{Tag: "calm", Count: 2}, {Tag: "evening", Count: 1}}, tags)
}

func TestBuildRecommendation(t *testing.T) {
	records := store.NewMemoryStore()

	result, err := BuildRecommendation(records, testIdentity, nil)
	require.NoError(t, err)
	assert.Equal(t, schema.R3, result.Principle)
	assert.Equal(t, schema.AllPrinciples, result.Tied)
	assert.Equal(t, schema.R3, result.Exercise.Principle)

	last := func(tied []schema.Principle) schema.Principle { return tied[len(tied)-1] }
	result, err = BuildRecommendation(records, testIdentity, last)
	require.NoError(t, err)
	assert.Equal(t, schema.EIA, result.Principle)

	seed(t, records, ReflectInput{Text: "x", Scores: map[schema.Principle]int{schema.CDR: 2}})
	result, err = BuildRecommendation(records, testIdentity, last)
	require.NoError(t, err)
	assert.Equal(t, schema.CDR, result.Principle)
	assert.Equal(t, 2, result.Score)
	assert.Equal(t, []schema.Principle{schema.CDR}, result.Tied)
}

func TestRandomTie(t *testing.T) {
	tied := []schema.Principle{schema.APD, schema.LPS}
	for range 20 {
		assert.Contains(t, tied, RandomTie(tied))
	}
	assert.Equal(t, schema.APD, FirstTie(tied))
}

func TestBundleRoundTrip(t *testing.T) {
	records := store.NewMemoryStore()
	seed(t, records,
		ReflectInput{Text: "a", Tags: "x", Scores: uniform(2)},
		ReflectInput{Text: "b", Scores: uniform(9)},
	)

	first, err := ExportBundle(records, testIdentity)
	require.NoError(t, err)

	other := store.NewMemoryStore()
	bundle, err := ImportBundle(other, testIdentity, first)
	require.NoError(t, err)
	assert.Len(t, bundle.Reflections, 2)
	assert.Len(t, bundle.History, 2)

	second, err := ExportBundle(other, testIdentity)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestExportBundleWithoutScores(t *testing.T) {
	data, err := ExportBundle(store.NewMemoryStore(), testIdentity)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.NotContains(t, raw, schema.ScoresKey(testIdentity))
	assert.NotContains(t, raw, schema.ReflectionsKey(testIdentity))
	assert.NotContains(t, raw, schema.HistoryKey(testIdentity))
}

func TestImportBundleMalformedLeavesStore(t *testing.T) {
	records := store.NewMemoryStore()
	seed(t, records, ReflectInput{Text: "keep me"})

	bad := []byte(`{"uli_reflections_tester": [{"reflection": "", "tags": [], "timestamp": "2024-03-15T09:30:00.000Z",
		"scores": {"r3": 5, "phcb": 5, "apd": 5, "lps": 5, "cdr": 5, "eia": 5}}]}`)
	_, err := ImportBundle(records, testIdentity, bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrMalformedRecord)

	reflections, err := records.LoadReflections(testIdentity)
	require.NoError(t, err)
	require.Len(t, reflections, 1)
	assert.Equal(t, "keep me", reflections[0].Reflection)
}

func TestImportBundleReplaceError(t *testing.T) {
	records := &store.MockRecordStore{}
	records.On("ReplaceAll", mock.AnythingOfType("schema.Bundle")).Return(errors.New("disk full"))

	_, err := ImportBundle(records, testIdentity, []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	records.AssertExpectations(t)
}

func TestExportPath(t *testing.T) {
	cfg := &contract.Config{Identity: testIdentity}
	assert.Equal(t, "uli_data_tester_2024-03-15.json", exportPath(cfg, baseTime))

	cfg.OutputFile = "custom.json"
	assert.Equal(t, "custom.json", exportPath(cfg, baseTime))
}

func TestExecuteDashboardJSON(t *testing.T) {
	records := store.NewMemoryStore()
	seed(t, records, ReflectInput{Text: "a", Scores: uniform(6)})
	withClock(t, baseTime)

	cfg := testConfig(t, schema.JSONOut)
	require.NoError(t, ExecuteDashboard(context.Background(), cfg, store.NewRecordStoreManager(records)))

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	var got schema.DashboardResult
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, testIdentity, got.Identity)
	assert.Equal(t, 1, got.Streak)
	assert.Equal(t, 6, got.Scores.R3)
}

func TestExecuteReflectJSON(t *testing.T) {
	records := store.NewMemoryStore()
	withClock(t, baseTime)

	cfg := testConfig(t, schema.JSONOut)
	exec := ExecuteReflect(ReflectInput{Text: "logged", Tags: "cli"})
	require.NoError(t, exec(context.Background(), cfg, store.NewRecordStoreManager(records)))

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	var got schema.ReflectResult
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "logged", got.Entry.Reflection)
	assert.True(t, got.Entry.Timestamp.Equal(baseTime))
}

func TestExecuteCommandsWithoutStore(t *testing.T) {
	cfg := testConfig(t, schema.TextOut)
	executors := map[string]ExecutorFunc{
		"dashboard":      ExecuteDashboard,
		"trend":          ExecuteTrend,
		"history":        ExecuteHistory,
		"tags":           ExecuteTags,
		"recommend":      ExecuteRecommend,
		"reflect":        ExecuteReflect(ReflectInput{Text: "x"}),
		"export":         ExecuteDataExport,
		"import":         ExecuteDataImport("missing.json"),
		"export-parquet": ExecuteDataExportParquet,
		"status":         ExecuteStoreStatus,
		"clear":          ExecuteStoreClear,
	}
	for name, exec := range executors {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, exec(context.Background(), cfg, nil), ErrStoreUnavailable)
		})
	}
}

func TestExecuteDataExportImport(t *testing.T) {
	records := store.NewMemoryStore()
	seed(t, records, ReflectInput{Text: "exported", Tags: "one"})
	withClock(t, baseTime)

	cfg := testConfig(t, schema.TextOut)
	mgr := store.NewRecordStoreManager(records)
	require.NoError(t, ExecuteDataExport(context.Background(), cfg, mgr))

	require.NoError(t, ExecuteStoreClear(context.Background(), cfg, mgr))
	reflections, err := records.LoadReflections(testIdentity)
	require.NoError(t, err)
	assert.Empty(t, reflections)

	require.NoError(t, ExecuteDataImport(cfg.OutputFile)(context.Background(), cfg, mgr))
	reflections, err = records.LoadReflections(testIdentity)
	require.NoError(t, err)
	require.Len(t, reflections, 1)
	assert.Equal(t, []string{"one"}, reflections[0].Tags)
}

func TestExecuteDataImportMissingFile(t *testing.T) {
	cfg := testConfig(t, schema.TextOut)
	err := ExecuteDataImport(filepath.Join(t.TempDir(), "nope.json"))(context.Background(), cfg, store.NewRecordStoreManager(store.NewMemoryStore()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read bundle")
}

func TestExecuteDataExportParquet(t *testing.T) {
	records := store.NewMemoryStore()
	seed(t, records, ReflectInput{Text: "columnar"})

	cfg := testConfig(t, schema.TextOut)
	require.NoError(t, ExecuteDataExportParquet(context.Background(), cfg, store.NewRecordStoreManager(records)))
	assert.FileExists(t, cfg.OutputFile+".reflections.parquet")
	assert.FileExists(t, cfg.OutputFile+".history.parquet")
}

func TestExecuteStoreStatus(t *testing.T) {
	records := &store.MockRecordStore{}
	records.On("GetStatus").Return(schema.StoreStatus{}, errors.New("offline"))

	err := ExecuteStoreStatus(context.Background(), testConfig(t, schema.TextOut), store.NewRecordStoreManager(records))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "offline")
	records.AssertExpectations(t)
}

func BenchmarkBuildDashboard(b *testing.B) {
	records := store.NewMemoryStore()
	start := baseTime.AddDate(0, 0, -365)
	for i := range 365 {
		entry := schema.ReflectionEntry{
			Reflection: "daily",
			Tags:       []string{"bench"},
			Scores:     schema.ScoreSet{R3: 1 + i%10, PHCB: 5, APD: 5, LPS: 5, CDR: 5, EIA: 5},
			Timestamp:  schema.NewTimestamp(start.AddDate(0, 0, i)),
		}
		if err := records.AppendReflection(testIdentity, entry); err != nil {
			b.Fatal(err)
		}
	}

	for b.Loop() {
		_, _ = BuildDashboard(records, testIdentity, baseTime)
	}
}
