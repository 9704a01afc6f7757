package events

// ActiveBlockRecord is a currently-enforced, time-bounded block as returned
// by the mitigation service. At least one of EphemeralID or IPAddress is
// set. Timestamps arrive as RFC3339 strings on the wire; parsing them is
// the normalizer's job so one bad row can't fail a whole fetch.
type ActiveBlockRecord struct {
	ID           string `json:"id"`
	EphemeralID  string `json:"ephemeralId,omitempty"`
	IPAddress    string `json:"ipAddress,omitempty"`
	BlockReason  string `json:"blockReason"`
	RiskScore    int    `json:"riskScore"`
	OffenseCount int    `json:"offenseCount"`
	BlockedAt    string `json:"blockedAt"`
	ExpiresAt    string `json:"expiresAt"`
	Country      string `json:"country,omitempty"`
	City         string `json:"city,omitempty"`
	JA4          string `json:"ja4,omitempty"`
	ERFID        string `json:"erfid,omitempty"`
}

// DetectionRecord is one entry of the append-only log of blocked validation
// attempts. DetectionType is a structured tag newer service versions emit;
// older records only carry free text in BlockReason.
type DetectionRecord struct {
	ID            string `json:"id"`
	EphemeralID   string `json:"ephemeralId,omitempty"`
	IPAddress     string `json:"ipAddress,omitempty"`
	BlockReason   string `json:"blockReason"`
	RiskScore     int    `json:"riskScore"`
	Timestamp     string `json:"timestamp"`
	DetectionType string `json:"detectionType,omitempty"`
	Country       string `json:"country,omitempty"`
	City          string `json:"city,omitempty"`
	JA4           string `json:"ja4,omitempty"`
}
