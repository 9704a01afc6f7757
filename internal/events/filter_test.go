package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func sampleEvents() []SecurityEvent {
	return []SecurityEvent{
		{ID: "block-1", Kind: KindActiveBlock, RiskScore: 95, DetectionType: TypeJa4IpClustering, Timestamp: ts("2026-08-01T10:00:00Z")},
		{ID: "detection-2", Kind: KindDetection, RiskScore: 75, DetectionType: TypeDuplicateEmail, Timestamp: ts("2026-08-01T09:00:00Z")},
		{ID: "detection-3", Kind: KindDetection, RiskScore: 40, DetectionType: TypeTurnstileFailed, Timestamp: ts("2026-08-01T08:00:00Z")},
	}
}

func TestRiskLevelOf_BucketsAreExhaustive(t *testing.T) {
	for score := 0; score <= 100; score++ {
		level := RiskLevelOf(score)
		switch {
		case score >= 90:
			assert.Equal(t, RiskCritical, level, "score %d", score)
		case score >= 70:
			assert.Equal(t, RiskHigh, level, "score %d", score)
		case score >= 50:
			assert.Equal(t, RiskMedium, level, "score %d", score)
		default:
			assert.Equal(t, RiskLow, level, "score %d", score)
		}
	}
}

func TestFilter_ZeroCriteriaPassesEverything(t *testing.T) {
	evs := sampleEvents()
	assert.Equal(t, evs, Filter(evs, Criteria{}))
	assert.Equal(t, evs, Filter(evs, Criteria{DetectionType: FilterAll, Status: FilterAll, RiskLevel: FilterAll}))
}

func TestCriteria_Equal(t *testing.T) {
	// "all" and empty both mean unfiltered.
	all := Criteria{DetectionType: FilterAll, Status: FilterAll, RiskLevel: FilterAll}
	assert.True(t, all.Equal(Criteria{}))
	assert.True(t, Criteria{}.Equal(all))

	assert.False(t, Criteria{Status: StatusActive}.Equal(Criteria{}))

	// Range bounds compare by value, not pointer identity.
	a, b := ts("2026-08-01T00:00:00Z"), ts("2026-08-01T00:00:00Z")
	assert.True(t, Criteria{Start: &a}.Equal(Criteria{Start: &b}))
	c := ts("2026-08-02T00:00:00Z")
	assert.False(t, Criteria{Start: &a}.Equal(Criteria{Start: &c}))
	assert.False(t, Criteria{Start: &a}.Equal(Criteria{}))
}

func TestFilter_RiskLevel(t *testing.T) {
	// Spec scenario: scores 95, 75, 40 with riskLevel=high keeps only 75.
	got := Filter(sampleEvents(), Criteria{RiskLevel: string(RiskHigh), Status: FilterAll})
	require.Len(t, got, 1)
	assert.Equal(t, 75, got[0].RiskScore)
}

func TestFilter_Status(t *testing.T) {
	got := Filter(sampleEvents(), Criteria{Status: StatusActive})
	require.Len(t, got, 1)
	assert.Equal(t, KindActiveBlock, got[0].Kind)

	got = Filter(sampleEvents(), Criteria{Status: StatusDetection})
	assert.Len(t, got, 2)
}

func TestFilter_DetectionType(t *testing.T) {
	got := Filter(sampleEvents(), Criteria{DetectionType: string(TypeDuplicateEmail)})
	require.Len(t, got, 1)
	assert.Equal(t, "detection-2", got[0].ID)
}

func TestFilter_DateRangeInclusive(t *testing.T) {
	start := ts("2026-08-01T09:00:00Z")
	end := ts("2026-08-01T10:00:00Z")
	got := Filter(sampleEvents(), Criteria{Start: &start, End: &end})
	require.Len(t, got, 2)
	assert.Equal(t, "block-1", got[0].ID)
	assert.Equal(t, "detection-2", got[1].ID)
}

func TestFilter_AndComposed(t *testing.T) {
	start := ts("2026-08-01T00:00:00Z")
	got := Filter(sampleEvents(), Criteria{
		Status:    StatusDetection,
		RiskLevel: string(RiskLow),
		Start:     &start,
	})
	require.Len(t, got, 1)
	assert.Equal(t, "detection-3", got[0].ID)
}

func TestFilter_OrderIndependent(t *testing.T) {
	evs := sampleEvents()
	c := Criteria{Status: StatusDetection, RiskLevel: string(RiskHigh)}
	// Filtering twice over swapped predicate application must agree; since
	// predicates are pure ANDs, one pass equals any composition order.
	once := Filter(evs, c)
	statusFirst := Filter(Filter(evs, Criteria{Status: StatusDetection}), Criteria{RiskLevel: string(RiskHigh)})
	riskFirst := Filter(Filter(evs, Criteria{RiskLevel: string(RiskHigh)}), Criteria{Status: StatusDetection})
	assert.Equal(t, once, statusFirst)
	assert.Equal(t, once, riskFirst)
}
