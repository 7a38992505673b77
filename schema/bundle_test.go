package schema

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBundle() Bundle {
	t1 := NewTimestamp(time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC))
	t2 := NewTimestamp(time.Date(2024, 3, 2, 21, 15, 0, 125_000_000, time.UTC))
	s1 := ScoreSet{R3: 4, PHCB: 5, APD: 6, LPS: 7, CDR: 3, EIA: 8}
	s2 := ScoreSet{R3: 6, PHCB: 5, APD: 6, LPS: 7, CDR: 4, EIA: 9}
	return Bundle{
		Identity: DefaultIdentity,
		Scores:   &s2,
		Reflections: []ReflectionEntry{
			{Reflection: "first <entry> & more", Tags: []string{"work"}, Scores: s1, Timestamp: t1},
			{Reflection: "second", Tags: []string{}, Scores: s2, Timestamp: t2},
		},
		History: []HistoryPoint{
			{Timestamp: t1, Scores: s1},
			{Timestamp: t2, Scores: s2},
		},
	}
}

func TestBundleRoundTrip(t *testing.T) {
	first, err := EncodeBundle(sampleBundle())
	require.NoError(t, err)

	decoded, err := DecodeBundle(first, DefaultIdentity)
	require.NoError(t, err)
	assert.Equal(t, sampleBundle(), decoded)

	second, err := EncodeBundle(decoded)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestEncodeBundleKeys(t *testing.T) {
	data, err := EncodeBundle(Bundle{Identity: "alice"})
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))

	data, err = EncodeBundle(Bundle{Identity: "alice", Reflections: []ReflectionEntry{}, History: []HistoryPoint{}})
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))

	_, err = EncodeBundle(Bundle{})
	assert.Error(t, err)
}

func TestBundleMissingKeysRoundTrip(t *testing.T) {
	input := "{\n  \"uli_scores_alice\": {\"r3\":2,\"phcb\":3,\"apd\":4,\"lps\":5,\"cdr\":6,\"eia\":7}\n}\n"
	b, err := DecodeBundle([]byte(input), "alice")
	require.NoError(t, err)
	assert.Empty(t, b.Reflections)
	assert.Empty(t, b.History)

	data, err := EncodeBundle(b)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "uli_scores_alice")
	assert.NotContains(t, out, "uli_reflections_alice")
	assert.NotContains(t, out, "uli_history_alice")
}

func TestDecodeBundleIgnoresForeignKeys(t *testing.T) {
	input := `{
  "uli_scores_bob": {"r3":1,"phcb":1,"apd":1,"lps":1,"cdr":1,"eia":1},
  "unrelated": 42,
  "uli_scores_alice": {"r3":2,"phcb":3,"apd":4,"lps":5,"cdr":6,"eia":7}
}`
	b, err := DecodeBundle([]byte(input), "alice")
	require.NoError(t, err)
	require.NotNil(t, b.Scores)
	assert.Equal(t, 2, b.Scores.R3)
	assert.Empty(t, b.Reflections)
	assert.Empty(t, b.History)
}

func TestDecodeBundleMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "array", input: `[]`},
		{name: "string", input: `"hello"`},
		{name: "empty", input: ``},
		{name: "broken json", input: `{"uli_scores_u": `},
		{name: "bad scores", input: `{"uli_scores_u": {"r3":1}}`},
		{name: "history not array", input: `{"uli_history_u": {}}`},
		{name: "bad history point", input: `{"uli_history_u": [{"timestamp":"nope","scores":{"r3":1,"phcb":1,"apd":1,"lps":1,"cdr":1,"eia":1}}]}`},
		{name: "bad reflection", input: `{"uli_reflections_u": [{"reflection":"","tags":[],"scores":{"r3":1,"phcb":1,"apd":1,"lps":1,"cdr":1,"eia":1},"timestamp":"2024-01-01T00:00:00.000Z"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeBundle([]byte(tt.input), "u")
			assert.ErrorIs(t, err, ErrMalformedRecord)
		})
	}
}

func TestExportFileName(t *testing.T) {
	day := time.Date(2024, 7, 9, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "uli_data_local_user_id_2024-07-09.json", ExportFileName(DefaultIdentity, day))
}

func FuzzParseTags(f *testing.F) {
	for _, seed := range []string{"", "a,b", " , x ,", "é, ü ,,", ",,,,"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, input string) {
		for _, tag := range ParseTags(input) {
			if tag == "" {
				t.Fatalf("empty tag produced from %q", input)
			}
			if tag != strings.TrimSpace(tag) {
				t.Fatalf("untrimmed tag %q produced from %q", tag, input)
			}
		}
	})
}
