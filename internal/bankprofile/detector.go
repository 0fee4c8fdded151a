package bankprofile

import "strings"

// DefaultMinConfidence is the score below which Detect reports no
// match. The value is a tuning knob, not a precision requirement.
const DefaultMinConfidence = 0.5

// partialWeight is the credit given to a substring header match
// relative to an exact one.
const partialWeight = 0.5

// Match is a detected profile with its confidence score in [0,1].
type Match struct {
	Profile    *Profile
	Confidence float64
}

// Detect scores the CSV header row against every registered profile
// and returns the best match, or nil if nothing reaches minConfidence.
// Greedy best-match: the single highest-scoring (profile, pattern)
// wins, ties keep the first encountered.
func (r *Registry) Detect(headers []string, minConfidence float64) *Match {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var best *Match
	for i := range r.profiles {
		p := &r.profiles[i]
		for _, pattern := range p.HeaderPatterns {
			score := scorePattern(normalized, pattern)
			if best == nil || score > best.Confidence {
				best = &Match{Profile: p, Confidence: score}
			}
		}
	}

	if best == nil || best.Confidence < minConfidence {
		return nil
	}
	return best
}

// scorePattern rates how well the observed headers cover one expected
// pattern: exact matches count 1, substring matches count
// partialWeight, divided by the number of expected headers.
func scorePattern(headers, expected []string) float64 {
	if len(expected) == 0 {
		return 0
	}

	var score float64
	for _, want := range expected {
		match := 0.0
		for _, have := range headers {
			if have == "" {
				continue
			}
			if have == want {
				match = 1
				break
			}
			if strings.Contains(have, want) || strings.Contains(want, have) {
				match = partialWeight
			}
		}
		score += match
	}
	return score / float64(len(expected))
}
