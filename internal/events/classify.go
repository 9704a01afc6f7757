package events

import "strings"

// classifyRule maps phrases found in a free-text block reason to a
// DetectionType. All wants every phrase present; any wants at least one.
type classifyRule struct {
	all    []string
	any    []string
	result DetectionType
}

// classifyRules is evaluated in order and the first match wins. Precedence
// matters: the JA4 sub-type phrases all contain "ja4", so the specific
// variants must be tested before the legacy catch-all. The taxonomy grew
// over time and old records only carry free text, hence substring matching
// instead of an exact lookup.
var classifyRules = []classifyRule{
	{all: []string{"token", "replay"}, result: TypeTokenReplay},
	{all: []string{"ja4", "ip_clustering"}, result: TypeJa4IpClustering},
	{all: []string{"ja4", "rapid_global"}, result: TypeJa4RapidGlobal},
	{all: []string{"ja4", "extended_global"}, result: TypeJa4ExtendedGlobal},
	{any: []string{"ja4", "session hopping"}, result: TypeJa4SessionHopping},
	{any: []string{"ephemeral", "automated", "multiple submissions"}, result: TypeEphemeralIDFraud},
	{all: []string{"ip"}, any: []string{"diversity", "multiple ip"}, result: TypeIPDiversity},
	{all: []string{"validation", "frequency"}, result: TypeValidationFrequency},
	{any: []string{"turnstile"}, result: TypeTurnstileFailed},
	{all: []string{"duplicate", "email"}, result: TypeDuplicateEmail},
}

// Classify infers a DetectionType from a free-text block reason. Matching is
// case-insensitive and deterministic. Unrecognized text maps to TypeOther.
func Classify(reason string) DetectionType {
	text := strings.ToLower(reason)
	for _, rule := range classifyRules {
		if rule.matches(text) {
			return rule.result
		}
	}
	return TypeOther
}

func (r classifyRule) matches(text string) bool {
	for _, phrase := range r.all {
		if !strings.Contains(text, phrase) {
			return false
		}
	}
	if len(r.any) == 0 {
		return true
	}
	for _, phrase := range r.any {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}

// ParseDetectionType maps a structured tag from the upstream service onto
// the taxonomy. Unknown or empty tags return false so callers can fall back
// to the legacy free-text inference.
func ParseDetectionType(tag string) (DetectionType, bool) {
	if tag == "" {
		return "", false
	}
	candidate := DetectionType(strings.ToLower(strings.TrimSpace(tag)))
	for _, dt := range DetectionTypes {
		if dt == candidate {
			return dt, true
		}
	}
	return "", false
}
