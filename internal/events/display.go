package events

import (
	"fmt"
	"time"
)

// Urgency tiers for an active block's remaining enforcement time. Display
// emphasis only; an already-expired block is still shown until the source
// stops returning it.
const (
	UrgencyImminent = "imminent"
	UrgencySoon     = "soon"
	UrgencyNormal   = "normal"
	UrgencyExpired  = "expired"
)

// Urgency buckets time-to-expiry and renders a relative display string.
func Urgency(expiresAt, now time.Time) (label, relative string) {
	remaining := expiresAt.Sub(now)
	switch {
	case remaining <= 0:
		return UrgencyExpired, "expired"
	case remaining < 15*time.Minute:
		return UrgencyImminent, "expires in " + humanDuration(remaining)
	case remaining < 2*time.Hour:
		return UrgencySoon, "expires in " + humanDuration(remaining)
	default:
		return UrgencyNormal, "expires in " + humanDuration(remaining)
	}
}

// TimeAgo renders an event timestamp relative to now.
func TimeAgo(t, now time.Time) string {
	d := now.Sub(t)
	if d < 0 {
		d = 0
	}
	if d < time.Minute {
		return "just now"
	}
	return humanDuration(d) + " ago"
}

func humanDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		h := int(d.Hours())
		m := int(d.Minutes()) - h*60
		if m == 0 {
			return fmt.Sprintf("%dh", h)
		}
		return fmt.Sprintf("%dh %dm", h, m)
	default:
		days := int(d.Hours()) / 24
		return fmt.Sprintf("%dd", days)
	}
}

var detectionTypeLabels = map[DetectionType]string{
	TypeTokenReplay:         "Token Replay",
	TypeJa4IpClustering:     "JA4 IP Clustering",
	TypeJa4RapidGlobal:      "JA4 Rapid Global",
	TypeJa4ExtendedGlobal:   "JA4 Extended Global",
	TypeJa4SessionHopping:   "JA4 Session Hopping",
	TypeEphemeralIDFraud:    "Ephemeral ID Fraud",
	TypeIPDiversity:         "IP Diversity",
	TypeValidationFrequency: "Validation Frequency",
	TypeTurnstileFailed:     "Turnstile Failed",
	TypeDuplicateEmail:      "Duplicate Email",
	TypeOther:               "Other",
}

// Label returns the human-readable name of the detection type.
func (d DetectionType) Label() string {
	if label, ok := detectionTypeLabels[d]; ok {
		return label
	}
	return detectionTypeLabels[TypeOther]
}
