package schema

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrinciples(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    []Principle
		expectError bool
	}{
		{name: "empty selects all", input: "", expected: AllPrinciples},
		{name: "all keyword", input: "ALL", expected: AllPrinciples},
		{name: "canonical order restored", input: "eia, r3 ,LPS", expected: []Principle{R3, LPS, EIA}},
		{name: "single", input: "cdr", expected: []Principle{CDR}},
		{name: "unknown key", input: "r3,xyz", expectError: true},
		{name: "duplicate key", input: "r3,r3", expectError: true},
		{name: "only separators", input: ", ,", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePrinciples(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestPrincipleMetadata(t *testing.T) {
	assert.Equal(t, "Self-Awareness (R³)", R3.Label())
	assert.Equal(t, "#FF9F40", EIA.Color())
	assert.Equal(t, 3, LPS.Index())
	assert.Equal(t, -1, Principle("nope").Index())
	assert.Equal(t, "NOPE", Principle("nope").Label())
}

func TestScoreSetGetSet(t *testing.T) {
	s := DefaultScoreSet()
	assert.Equal(t, 30, s.Sum())
	require.NoError(t, s.Set(APD, 9))
	assert.Equal(t, 9, s.Get(APD))
	assert.Equal(t, 5, s.Get(R3))
	assert.Error(t, s.Set("bogus", 3))
	assert.Equal(t, 0, s.Get("bogus"))
}

func TestScoreSetUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
	}{
		{name: "valid", input: `{"r3":1,"phcb":2,"apd":3,"lps":4,"cdr":5,"eia":10}`},
		{name: "missing key", input: `{"r3":1,"phcb":2,"apd":3,"lps":4,"cdr":5}`, expectError: true},
		{name: "extra key", input: `{"r3":1,"phcb":2,"apd":3,"lps":4,"cdr":5,"eia":6,"zzz":1}`, expectError: true},
		{name: "wrong key", input: `{"r3":1,"phcb":2,"apd":3,"lps":4,"cdr":5,"xyz":6}`, expectError: true},
		{name: "below range", input: `{"r3":0,"phcb":2,"apd":3,"lps":4,"cdr":5,"eia":6}`, expectError: true},
		{name: "above range", input: `{"r3":11,"phcb":2,"apd":3,"lps":4,"cdr":5,"eia":6}`, expectError: true},
		{name: "non integer", input: `{"r3":1.5,"phcb":2,"apd":3,"lps":4,"cdr":5,"eia":6}`, expectError: true},
		{name: "string value", input: `{"r3":"1","phcb":2,"apd":3,"lps":4,"cdr":5,"eia":6}`, expectError: true},
		{name: "not an object", input: `[1,2,3]`, expectError: true},
		{name: "null", input: `null`, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s ScoreSet
			err := json.Unmarshal([]byte(tt.input), &s)
			if tt.expectError {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrMalformedRecord), "expected malformed record, got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, ScoreSet{R3: 1, PHCB: 2, APD: 3, LPS: 4, CDR: 5, EIA: 10}, s)
		})
	}
}

func TestScoreSetMarshalKeyOrder(t *testing.T) {
	data, err := json.Marshal(DefaultScoreSet())
	require.NoError(t, err)
	assert.Equal(t, `{"r3":5,"phcb":5,"apd":5,"lps":5,"cdr":5,"eia":5}`, string(data))
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"", []string{}},
		{"   ", []string{}},
		{"work", []string{"work"}},
		{"a, b,,c ", []string{"a", "b", "c"}},
		{"dup, dup", []string{"dup", "dup"}},
		{" , ,", []string{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, ParseTags(tt.input), "input %q", tt.input)
	}
}

func TestTimestampJSON(t *testing.T) {
	ts := NewTimestamp(time.Date(2024, 1, 2, 3, 4, 5, 678_900_000, time.UTC))
	data, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-02T03:04:05.678Z"`, string(data))

	var back Timestamp
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, ts.Equal(back.Time))

	// Offsets are accepted and normalized to UTC on output.
	require.NoError(t, json.Unmarshal([]byte(`"2024-01-02T05:04:05+02:00"`), &back))
	assert.Equal(t, "2024-01-02T03:04:05.000Z", back.String())

	for _, bad := range []string{`""`, `"yesterday"`, `42`, `null`} {
		err := json.Unmarshal([]byte(bad), &back)
		assert.ErrorIs(t, err, ErrMalformedRecord, "input %s", bad)
	}

	_, err = json.Marshal(Timestamp{})
	assert.Error(t, err)
}

func TestReflectionEntryValidation(t *testing.T) {
	valid := `{"reflection":"calm","tags":["a"],"scores":{"r3":1,"phcb":2,"apd":3,"lps":4,"cdr":5,"eia":6},"timestamp":"2024-01-02T03:04:05.000Z"}`
	var e ReflectionEntry
	require.NoError(t, json.Unmarshal([]byte(valid), &e))
	assert.Equal(t, "calm", e.Reflection)
	assert.Equal(t, []string{"a"}, e.Tags)
	assert.Equal(t, e.Timestamp, e.Point().Timestamp)

	invalid := map[string]string{
		"empty reflection": `{"reflection":"  ","tags":[],"scores":{"r3":1,"phcb":2,"apd":3,"lps":4,"cdr":5,"eia":6},"timestamp":"2024-01-02T03:04:05.000Z"}`,
		"missing scores":   `{"reflection":"x","tags":[],"timestamp":"2024-01-02T03:04:05.000Z"}`,
		"missing time":     `{"reflection":"x","tags":[],"scores":{"r3":1,"phcb":2,"apd":3,"lps":4,"cdr":5,"eia":6}}`,
		"blank tag":        `{"reflection":"x","tags":[" "],"scores":{"r3":1,"phcb":2,"apd":3,"lps":4,"cdr":5,"eia":6},"timestamp":"2024-01-02T03:04:05.000Z"}`,
	}
	for name, input := range invalid {
		t.Run(name, func(t *testing.T) {
			var e ReflectionEntry
			assert.ErrorIs(t, json.Unmarshal([]byte(input), &e), ErrMalformedRecord)
		})
	}
}

func TestReflectionEntryMarshalEmptyTags(t *testing.T) {
	e := ReflectionEntry{
		Reflection: "x",
		Scores:     DefaultScoreSet(),
		Timestamp:  NewTimestamp(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
	}
	data, err := json.Marshal(e)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"tags":[]`)
}

func TestMalformedRecordError(t *testing.T) {
	err := InCollection(Malformed("bad score"), "history", 3)
	assert.ErrorIs(t, err, ErrMalformedRecord)
	assert.Equal(t, "malformed record: history[3]: bad score", err.Error())

	plain := errors.New("other")
	assert.Equal(t, plain, InCollection(plain, "history", 1))
}

func TestExercises(t *testing.T) {
	all := AllExercises()
	require.Len(t, all, len(AllPrinciples))
	for i, ex := range all {
		assert.Equal(t, AllPrinciples[i], ex.Principle)
		assert.NotEmpty(t, ex.Title)
		assert.NotEmpty(t, ex.Prompt)
		assert.NotEmpty(t, ex.FeedbackPrompt)
	}
	lps, ok := ExerciseFor(LPS)
	require.True(t, ok)
	assert.Equal(t, 6*time.Minute, lps.Duration)
	r3, _ := ExerciseFor(R3)
	assert.Equal(t, 5*time.Minute, r3.Duration)
	_, ok = ExerciseFor("nope")
	assert.False(t, ok)
}
