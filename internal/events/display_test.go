package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUrgency(t *testing.T) {
	now := ts("2026-08-01T10:00:00Z")

	label, rel := Urgency(now.Add(5*time.Minute), now)
	assert.Equal(t, UrgencyImminent, label)
	assert.Equal(t, "expires in 5m", rel)

	label, _ = Urgency(now.Add(90*time.Minute), now)
	assert.Equal(t, UrgencySoon, label)

	label, rel = Urgency(now.Add(48*time.Hour), now)
	assert.Equal(t, UrgencyNormal, label)
	assert.Equal(t, "expires in 2d", rel)

	// Expired blocks stay visible; only the label changes.
	label, rel = Urgency(now.Add(-time.Minute), now)
	assert.Equal(t, UrgencyExpired, label)
	assert.Equal(t, "expired", rel)
}

func TestTimeAgo(t *testing.T) {
	now := ts("2026-08-01T10:00:00Z")

	assert.Equal(t, "just now", TimeAgo(now.Add(-30*time.Second), now))
	assert.Equal(t, "10m ago", TimeAgo(now.Add(-10*time.Minute), now))
	assert.Equal(t, "3h ago", TimeAgo(now.Add(-3*time.Hour), now))
	assert.Equal(t, "2d ago", TimeAgo(now.Add(-50*time.Hour), now))
	// Clock skew never renders a negative duration.
	assert.Equal(t, "just now", TimeAgo(now.Add(time.Minute), now))
}

func TestDetectionTypeLabel(t *testing.T) {
	assert.Equal(t, "JA4 IP Clustering", TypeJa4IpClustering.Label())
	assert.Equal(t, "Other", TypeOther.Label())
	assert.Equal(t, "Other", DetectionType("bogus").Label())
}
