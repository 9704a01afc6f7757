package events

import "sort"

// Dedupe removes detection events whose identifier already has an active
// block: the enforced block is the evidence of the detection, and showing
// the same actor twice would double-count severity in aggregate views.
// Active-block events are never removed.
func Dedupe(evs []SecurityEvent) []SecurityEvent {
	blocked := make(map[string]struct{})
	for _, ev := range evs {
		if ev.Kind == KindActiveBlock && ev.Identifier != "" {
			blocked[ev.Identifier] = struct{}{}
		}
	}
	out := make([]SecurityEvent, 0, len(evs))
	for _, ev := range evs {
		if ev.Kind == KindDetection {
			if _, ok := blocked[ev.Identifier]; ok {
				continue
			}
		}
		out = append(out, ev)
	}
	return out
}

// Merge runs the full correlation pipeline: normalize both sources, drop
// detections shadowed by an active block, and order by recency. Equal
// timestamps tie-break on ascending ID so output order is reproducible
// regardless of input order.
func Merge(blocks []ActiveBlockRecord, detections []DetectionRecord) []SecurityEvent {
	evs := Dedupe(Normalize(blocks, detections))
	sort.Slice(evs, func(i, j int) bool {
		if !evs[i].Timestamp.Equal(evs[j].Timestamp) {
			return evs[i].Timestamp.After(evs[j].Timestamp)
		}
		return evs[i].ID < evs[j].ID
	})
	return evs
}
