package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Key prefixes of the interchange bundle. Each is suffixed with the identity.
const (
	ScoresKeyPrefix      = "uli_scores_"
	ReflectionsKeyPrefix = "uli_reflections_"
	HistoryKeyPrefix     = "uli_history_"
)

// Bundle holds every collection stored for one identity.
type Bundle struct {
	Identity    string
	Scores      *ScoreSet // nil when no submission has been made
	Reflections []ReflectionEntry
	History     []HistoryPoint
}

// ScoresKey returns the bundle key for the current scores of identity.
func ScoresKey(identity string) string { return ScoresKeyPrefix + identity }

// ReflectionsKey returns the bundle key for the reflection entries of identity.
func ReflectionsKey(identity string) string { return ReflectionsKeyPrefix + identity }

// HistoryKey returns the bundle key for the score history of identity.
func HistoryKey(identity string) string { return HistoryKeyPrefix + identity }

// ExportFileName returns the default export file name for identity on the given day.
func ExportFileName(identity string, day time.Time) string {
	return fmt.Sprintf("uli_data_%s_%s.json", identity, day.Format(time.DateOnly))
}

// EncodeBundle renders the bundle as an indented JSON object. Keys are sorted, so the
// output is stable for a given bundle. Empty collections are left out, matching a
// store that has never been written to.
func EncodeBundle(b Bundle) ([]byte, error) {
	if b.Identity == "" {
		return nil, fmt.Errorf("bundle identity is empty")
	}

	out := make(map[string]json.RawMessage, 3)
	var err error
	if len(b.Reflections) > 0 {
		if out[ReflectionsKey(b.Identity)], err = json.Marshal(b.Reflections); err != nil {
			return nil, fmt.Errorf("failed to encode reflections: %w", err)
		}
	}
	if len(b.History) > 0 {
		if out[HistoryKey(b.Identity)], err = json.Marshal(b.History); err != nil {
			return nil, fmt.Errorf("failed to encode history: %w", err)
		}
	}
	if b.Scores != nil {
		if out[ScoresKey(b.Identity)], err = json.Marshal(b.Scores); err != nil {
			return nil, fmt.Errorf("failed to encode scores: %w", err)
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode bundle: %w", err)
	}
	return append(data, '\n'), nil
}

// DecodeBundle parses and validates a bundle for identity. Only keys containing the
// identity are considered. Any malformed collection fails the whole decode.
func DecodeBundle(data []byte, identity string) (Bundle, error) {
	if identity == "" {
		return Bundle{}, fmt.Errorf("bundle identity is empty")
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Bundle{}, Malformed("bundle must be a JSON object")
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return Bundle{}, Malformed("bundle is not valid JSON: %v", err)
	}

	b := Bundle{Identity: identity, Reflections: []ReflectionEntry{}, History: []HistoryPoint{}}
	for key, value := range raw {
		if !strings.Contains(key, identity) || isNull(value) {
			continue
		}
		switch key {
		case ScoresKey(identity):
			var scores ScoreSet
			if err := json.Unmarshal(value, &scores); err != nil {
				return Bundle{}, InCollection(asMalformed(err), "scores", -1)
			}
			b.Scores = &scores
		case ReflectionsKey(identity):
			entries, err := decodeList[ReflectionEntry](value, "reflections")
			if err != nil {
				return Bundle{}, err
			}
			b.Reflections = entries
		case HistoryKey(identity):
			points, err := decodeList[HistoryPoint](value, "history")
			if err != nil {
				return Bundle{}, err
			}
			b.History = points
		}
	}
	return b, nil
}

func decodeList[T any](value json.RawMessage, collection string) ([]T, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(value, &items); err != nil {
		return nil, &MalformedRecordError{Collection: collection, Index: -1, Reason: "must be an array"}
	}
	result := make([]T, 0, len(items))
	for i, item := range items {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			return nil, InCollection(asMalformed(err), collection, i)
		}
		result = append(result, v)
	}
	return result, nil
}

// asMalformed converts decoding errors from encoding/json into malformed record errors.
func asMalformed(err error) error {
	var mre *MalformedRecordError
	if errors.As(err, &mre) {
		return mre
	}
	return Malformed("%v", err)
}

func isNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
