package events

import "time"

// EventKind distinguishes the two record sources an event can come from.
type EventKind string

const (
	// KindActiveBlock marks an event backed by a currently-enforced block.
	KindActiveBlock EventKind = "active_block"
	// KindDetection marks an event backed by a historical detection log entry.
	KindDetection EventKind = "detection"
)

// IdentifierKind says which identifier correlates the event to an actor.
type IdentifierKind string

const (
	IdentifierEphemeral IdentifierKind = "ephemeral"
	IdentifierIP        IdentifierKind = "ip"
)

// DetectionType is the closed taxonomy every event is classified into.
type DetectionType string

const (
	TypeTokenReplay         DetectionType = "token_replay"
	TypeJa4IpClustering     DetectionType = "ja4_ip_clustering"
	TypeJa4RapidGlobal      DetectionType = "ja4_rapid_global"
	TypeJa4ExtendedGlobal   DetectionType = "ja4_extended_global"
	TypeJa4SessionHopping   DetectionType = "ja4_session_hopping"
	TypeEphemeralIDFraud    DetectionType = "ephemeral_id_fraud"
	TypeIPDiversity         DetectionType = "ip_diversity"
	TypeValidationFrequency DetectionType = "validation_frequency"
	TypeTurnstileFailed     DetectionType = "turnstile_failed"
	TypeDuplicateEmail      DetectionType = "duplicate_email"
	TypeOther               DetectionType = "other"
)

// DetectionTypes lists every member of the taxonomy, in display order.
var DetectionTypes = []DetectionType{
	TypeTokenReplay,
	TypeJa4IpClustering,
	TypeJa4RapidGlobal,
	TypeJa4ExtendedGlobal,
	TypeJa4SessionHopping,
	TypeEphemeralIDFraud,
	TypeIPDiversity,
	TypeValidationFrequency,
	TypeTurnstileFailed,
	TypeDuplicateEmail,
	TypeOther,
}

// SecurityEvent is the canonical model both record sources normalize into.
// It is a pure in-memory value; nothing here is persisted.
type SecurityEvent struct {
	ID             string         `json:"id"`
	Kind           EventKind      `json:"kind"`
	Timestamp      time.Time      `json:"timestamp"`
	Identifier     string         `json:"identifier"`
	IdentifierKind IdentifierKind `json:"identifier_kind"`
	RiskScore      int            `json:"risk_score"`
	DetectionType  DetectionType  `json:"detection_type"`
	Reason         string         `json:"reason"`

	// Only meaningful when Kind == KindActiveBlock.
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	OffenseCount int        `json:"offense_count,omitempty"`

	Country string `json:"country,omitempty"`
	City    string `json:"city,omitempty"`
	JA4     string `json:"ja4,omitempty"`
}
