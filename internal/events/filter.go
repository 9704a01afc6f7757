package events

import (
	"fmt"
	"time"
)

// FilterAll disables a criterion.
const FilterAll = "all"

// Status filter values.
const (
	StatusActive    = "active"
	StatusDetection = "detection"
)

// RiskLevel buckets the 0-100 risk score for filtering and display.
// The buckets are contiguous and exhaustive over [0,100].
type RiskLevel string

const (
	RiskCritical RiskLevel = "critical" // >= 90
	RiskHigh     RiskLevel = "high"     // 70-89
	RiskMedium   RiskLevel = "medium"   // 50-69
	RiskLow      RiskLevel = "low"      // < 50
)

// RiskLevelOf returns the bucket a risk score falls into.
func RiskLevelOf(score int) RiskLevel {
	switch {
	case score >= 90:
		return RiskCritical
	case score >= 70:
		return RiskHigh
	case score >= 50:
		return RiskMedium
	default:
		return RiskLow
	}
}

// Criteria is the serializable filter state for the event timeline. The
// zero value (empty strings, nil range bounds) filters nothing. Criteria
// are AND-composed and order-independent.
type Criteria struct {
	DetectionType string     `json:"detection_type,omitempty"`
	Status        string     `json:"status,omitempty"`
	RiskLevel     string     `json:"risk_level,omitempty"`
	Start         *time.Time `json:"start,omitempty"`
	End           *time.Time `json:"end,omitempty"`
}

// IsZero reports whether no criterion is set.
func (c Criteria) IsZero() bool {
	return !c.filtersType() && !c.filtersStatus() && !c.filtersRisk() &&
		c.Start == nil && c.End == nil
}

func (c Criteria) filtersType() bool {
	return c.DetectionType != "" && c.DetectionType != FilterAll
}

func (c Criteria) filtersStatus() bool {
	return c.Status != "" && c.Status != FilterAll
}

func (c Criteria) filtersRisk() bool {
	return c.RiskLevel != "" && c.RiskLevel != FilterAll
}

// Equal compares criteria by effect, including the range bounds behind
// the pointers. An empty string and FilterAll both mean "no filter" and
// compare equal.
func (c Criteria) Equal(other Criteria) bool {
	return normFilter(c.DetectionType) == normFilter(other.DetectionType) &&
		normFilter(c.Status) == normFilter(other.Status) &&
		normFilter(c.RiskLevel) == normFilter(other.RiskLevel) &&
		timesEqual(c.Start, other.Start) &&
		timesEqual(c.End, other.End)
}

func normFilter(v string) string {
	if v == FilterAll {
		return ""
	}
	return v
}

func timesEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// Validate rejects criteria with values outside the known enumerations,
// e.g. from a hand-edited saved preset.
func (c Criteria) Validate() error {
	if c.filtersType() {
		if _, ok := ParseDetectionType(c.DetectionType); !ok {
			return fmt.Errorf("unknown detection type %q", c.DetectionType)
		}
	}
	if c.filtersStatus() && c.Status != StatusActive && c.Status != StatusDetection {
		return fmt.Errorf("unknown status %q", c.Status)
	}
	if c.filtersRisk() {
		switch RiskLevel(c.RiskLevel) {
		case RiskCritical, RiskHigh, RiskMedium, RiskLow:
		default:
			return fmt.Errorf("unknown risk level %q", c.RiskLevel)
		}
	}
	if c.Start != nil && c.End != nil && c.End.Before(*c.Start) {
		return fmt.Errorf("date range end before start")
	}
	return nil
}

// Matches reports whether a single event passes every set criterion.
func (c Criteria) Matches(ev SecurityEvent) bool {
	if c.filtersType() && string(ev.DetectionType) != c.DetectionType {
		return false
	}
	if c.filtersStatus() {
		switch c.Status {
		case StatusActive:
			if ev.Kind != KindActiveBlock {
				return false
			}
		case StatusDetection:
			if ev.Kind != KindDetection {
				return false
			}
		}
	}
	if c.filtersRisk() && string(RiskLevelOf(ev.RiskScore)) != c.RiskLevel {
		return false
	}
	if c.Start != nil && ev.Timestamp.Before(*c.Start) {
		return false
	}
	if c.End != nil && ev.Timestamp.After(*c.End) {
		return false
	}
	return true
}

// Filter returns the events matching the criteria, preserving input order.
func Filter(evs []SecurityEvent, c Criteria) []SecurityEvent {
	if c.IsZero() {
		return evs
	}
	out := make([]SecurityEvent, 0, len(evs))
	for _, ev := range evs {
		if c.Matches(ev) {
			out = append(out, ev)
		}
	}
	return out
}
