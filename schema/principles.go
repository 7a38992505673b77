package schema

import (
	"fmt"
	"strings"
)

// PrincipleInfo holds display metadata for a principle.
type PrincipleInfo struct {
	Label       string
	Description string
	Color       string // hex line color used by charts
}

var principleInfo = map[Principle]PrincipleInfo{
	R3: {
		Label:       "Self-Awareness (R³)",
		Description: "How well you observe your own thoughts and the act of observing.",
		Color:       "#FF6384",
	},
	PHCB: {
		Label:       "Boundary Awareness (PHCB)",
		Description: "How fluidly you perceive your connection to surroundings.",
		Color:       "#36A2EB",
	},
	APD: {
		Label:       "Embracing Uncertainty (APD)",
		Description: "Your comfort and skill in analyzing what's unclear.",
		Color:       "#FFCD56",
	},
	LPS: {
		Label:       "Adaptive Flow (LPS)",
		Description: "Your conscious control over mental processing speed and focus.",
		Color:       "#4BC0C0",
	},
	CDR: {
		Label:       "Universal Connections (CDR)",
		Description: "Your ability to see repeating patterns across different areas.",
		Color:       "#9966FF",
	},
	EIA: {
		Label:       "Insight Generation (EIA)",
		Description: "Your understanding of how your own knowledge and wisdom are built.",
		Color:       "#FF9F40",
	},
}

// Info returns the display metadata for the principle.
func (p Principle) Info() PrincipleInfo {
	return principleInfo[p]
}

// Label returns the human-readable name of the principle.
func (p Principle) Label() string {
	if info, ok := principleInfo[p]; ok {
		return info.Label
	}
	return strings.ToUpper(string(p))
}

// Color returns the chart color of the principle.
func (p Principle) Color() string {
	return principleInfo[p].Color
}

// Index returns the position of the principle in AllPrinciples, or -1.
func (p Principle) Index() int {
	for i, q := range AllPrinciples {
		if p == q {
			return i
		}
	}
	return -1
}

// ParsePrinciples parses a comma-separated principle list such as "r3,lps".
// An empty string selects every principle. Unknown or repeated keys are rejected.
// The result is returned in canonical order.
func ParsePrinciples(s string) ([]Principle, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return append([]Principle(nil), AllPrinciples...), nil
	}

	seen := make(map[Principle]bool)
	for part := range strings.SplitSeq(s, ",") {
		p := Principle(strings.ToLower(strings.TrimSpace(part)))
		if p == "" {
			continue
		}
		if _, ok := ValidPrinciples[p]; !ok {
			return nil, fmt.Errorf("invalid principle '%s'. must be one of r3, phcb, apd, lps, cdr, eia", part)
		}
		if seen[p] {
			return nil, fmt.Errorf("principle '%s' selected more than once", p)
		}
		seen[p] = true
	}
	if len(seen) == 0 {
		return nil, fmt.Errorf("no principles selected in '%s'", s)
	}

	result := make([]Principle, 0, len(seen))
	for _, p := range AllPrinciples {
		if seen[p] {
			result = append(result, p)
		}
	}
	return result, nil
}
