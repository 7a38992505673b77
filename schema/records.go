package schema

import (
	"encoding/json"
	"strings"
	"time"
)

// TimestampLayout is the wire form of a Timestamp: UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Timestamp is an ISO-8601 instant. It always encodes in UTC with millisecond
// precision and decodes any RFC 3339 instant.
type Timestamp struct {
	time.Time
}

// NewTimestamp truncates t to the millisecond so it survives an encode/decode cycle unchanged.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC().Truncate(time.Millisecond)}
}

// ParseTimestamp parses an RFC 3339 instant.
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Timestamp{}, Malformed("timestamp is empty")
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return Timestamp{}, Malformed("unparseable timestamp %q", s)
	}
	return Timestamp{Time: t}, nil
}

// String returns the wire form of the timestamp.
func (t Timestamp) String() string {
	return t.UTC().Format(TimestampLayout)
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return nil, Malformed("cannot encode a zero timestamp")
	}
	return json.Marshal(t.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return Malformed("timestamp must be a string: %s", data)
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ReflectionEntry is one journal submission.
type ReflectionEntry struct {
	Reflection string    `json:"reflection"`
	Tags       []string  `json:"tags"`
	Scores     ScoreSet  `json:"scores"`
	Timestamp  Timestamp `json:"timestamp"`
}

// HistoryPoint is the score snapshot recorded with each submission.
type HistoryPoint struct {
	Timestamp Timestamp `json:"timestamp"`
	Scores    ScoreSet  `json:"scores"`
}

// Point returns the history point recorded alongside the entry.
func (e ReflectionEntry) Point() HistoryPoint {
	return HistoryPoint{Timestamp: e.Timestamp, Scores: e.Scores}
}

// Validate checks the entry invariants.
func (e ReflectionEntry) Validate() error {
	if strings.TrimSpace(e.Reflection) == "" {
		return Malformed("reflection text is empty")
	}
	for i, tag := range e.Tags {
		if strings.TrimSpace(tag) == "" || tag != strings.TrimSpace(tag) {
			return Malformed("tag %d is empty or not trimmed", i)
		}
	}
	if e.Timestamp.IsZero() {
		return Malformed("timestamp is missing")
	}
	return e.Scores.Validate()
}

// MarshalJSON keeps an empty tag list as [] rather than null.
func (e ReflectionEntry) MarshalJSON() ([]byte, error) {
	type alias ReflectionEntry
	out := alias(e)
	if out.Tags == nil {
		out.Tags = []string{}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes and validates an entry.
func (e *ReflectionEntry) UnmarshalJSON(data []byte) error {
	type alias ReflectionEntry
	var in alias
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	entry := ReflectionEntry(in)
	if entry.Tags == nil {
		entry.Tags = []string{}
	}
	if err := entry.Validate(); err != nil {
		return err
	}
	*e = entry
	return nil
}

// UnmarshalJSON decodes and validates a history point.
func (h *HistoryPoint) UnmarshalJSON(data []byte) error {
	type alias HistoryPoint
	var in alias
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in.Timestamp.IsZero() {
		return Malformed("timestamp is missing")
	}
	if err := in.Scores.Validate(); err != nil {
		return err
	}
	*h = HistoryPoint(in)
	return nil
}

// ParseTags splits a comma-separated tag string, trimming each tag and dropping empties.
// Order and duplicates are preserved.
func ParseTags(input string) []string {
	tags := []string{}
	for part := range strings.SplitSeq(input, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
