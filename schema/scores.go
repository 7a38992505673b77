package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ScoreSet holds one integer score per principle, each in [MinScore, MaxScore].
// Field order matches the canonical principle order, which also fixes the JSON key order.
type ScoreSet struct {
	R3   int `json:"r3"`
	PHCB int `json:"phcb"`
	APD  int `json:"apd"`
	LPS  int `json:"lps"`
	CDR  int `json:"cdr"`
	EIA  int `json:"eia"`
}

// DefaultScoreSet returns the score set used before any submission exists.
func DefaultScoreSet() ScoreSet {
	return ScoreSet{
		R3:   DefaultScore,
		PHCB: DefaultScore,
		APD:  DefaultScore,
		LPS:  DefaultScore,
		CDR:  DefaultScore,
		EIA:  DefaultScore,
	}
}

// Get returns the score for p. Unknown principles yield 0.
func (s ScoreSet) Get(p Principle) int {
	switch p {
	case R3:
		return s.R3
	case PHCB:
		return s.PHCB
	case APD:
		return s.APD
	case LPS:
		return s.LPS
	case CDR:
		return s.CDR
	case EIA:
		return s.EIA
	default:
		return 0
	}
}

// Set updates the score for p in place.
func (s *ScoreSet) Set(p Principle, v int) error {
	switch p {
	case R3:
		s.R3 = v
	case PHCB:
		s.PHCB = v
	case APD:
		s.APD = v
	case LPS:
		s.LPS = v
	case CDR:
		s.CDR = v
	case EIA:
		s.EIA = v
	default:
		return fmt.Errorf("unknown principle '%s'", p)
	}
	return nil
}

// Sum returns the total of all six scores.
func (s ScoreSet) Sum() int {
	return s.R3 + s.PHCB + s.APD + s.LPS + s.CDR + s.EIA
}

// Validate checks that every score lies in [MinScore, MaxScore].
func (s ScoreSet) Validate() error {
	for _, p := range AllPrinciples {
		if v := s.Get(p); v < MinScore || v > MaxScore {
			return Malformed("score %s=%d outside [%d, %d]", p, v, MinScore, MaxScore)
		}
	}
	return nil
}

// UnmarshalJSON decodes a score object that carries exactly the six principle keys,
// each holding an integer in [MinScore, MaxScore].
func (s *ScoreSet) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return Malformed("scores must be an object, got null")
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Malformed("scores must be an object: %v", err)
	}
	if len(raw) != len(AllPrinciples) {
		return Malformed("scores must contain exactly %d principles, got %d", len(AllPrinciples), len(raw))
	}

	var out ScoreSet
	for _, p := range AllPrinciples {
		value, ok := raw[string(p)]
		if !ok {
			return Malformed("scores missing principle %s", p)
		}
		n, err := strconv.Atoi(string(bytes.TrimSpace(value)))
		if err != nil {
			return Malformed("score %s is not an integer: %s", p, value)
		}
		_ = out.Set(p, n)
	}
	if err := out.Validate(); err != nil {
		return err
	}
	*s = out
	return nil
}
