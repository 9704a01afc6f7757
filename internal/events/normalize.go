package events

import "time"

// timeLayouts are tried in order when parsing source timestamps. The
// service emits RFC3339, but older log rows were written without a zone.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// parseTime parses a source timestamp. The zero time signals failure.
func parseTime(raw string) time.Time {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Normalize maps both source record shapes into canonical SecurityEvents.
// Records whose timestamp cannot be parsed are dropped rather than shown
// with a bogus epoch time. Event IDs are namespaced by source kind so the
// two sources can never collide.
func Normalize(blocks []ActiveBlockRecord, detections []DetectionRecord) []SecurityEvent {
	out := make([]SecurityEvent, 0, len(blocks)+len(detections))
	for _, b := range blocks {
		ts := parseTime(b.BlockedAt)
		if ts.IsZero() {
			continue
		}
		ev := SecurityEvent{
			ID:            "block-" + b.ID,
			Kind:          KindActiveBlock,
			Timestamp:     ts,
			RiskScore:     clampScore(b.RiskScore),
			DetectionType: Classify(b.BlockReason),
			Reason:        b.BlockReason,
			OffenseCount:  b.OffenseCount,
			Country:       b.Country,
			City:          b.City,
			JA4:           b.JA4,
		}
		ev.Identifier, ev.IdentifierKind = pickIdentifier(b.EphemeralID, b.IPAddress)
		if exp := parseTime(b.ExpiresAt); !exp.IsZero() {
			ev.ExpiresAt = &exp
		}
		out = append(out, ev)
	}
	for _, d := range detections {
		ts := parseTime(d.Timestamp)
		if ts.IsZero() {
			continue
		}
		ev := SecurityEvent{
			ID:        "detection-" + d.ID,
			Kind:      KindDetection,
			Timestamp: ts,
			RiskScore: clampScore(d.RiskScore),
			Reason:    d.BlockReason,
			Country:   d.Country,
			City:      d.City,
			JA4:       d.JA4,
		}
		ev.Identifier, ev.IdentifierKind = pickIdentifier(d.EphemeralID, d.IPAddress)
		if dt, ok := ParseDetectionType(d.DetectionType); ok {
			ev.DetectionType = dt
		} else {
			ev.DetectionType = Classify(d.BlockReason)
		}
		out = append(out, ev)
	}
	return out
}

// pickIdentifier prefers the ephemeral id when both identifiers are set.
func pickIdentifier(ephemeralID, ip string) (string, IdentifierKind) {
	if ephemeralID != "" {
		return ephemeralID, IdentifierEphemeral
	}
	return ip, IdentifierIP
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
