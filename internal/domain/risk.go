package domain

// RiskLevel is the ordered heuristic severity label used for UI emphasis.
type RiskLevel string

const (
	RiskNone      RiskLevel = "None"
	RiskMonitor   RiskLevel = "Monitor"
	RiskAttention RiskLevel = "Attention"
	RiskCritical  RiskLevel = "Critical"
)

// Severity returns the ordering rank of a risk level (None=0 … Critical=3).
func (r RiskLevel) Severity() int {
	switch r {
	case RiskCritical:
		return 3
	case RiskAttention:
		return 2
	case RiskMonitor:
		return 1
	default:
		return 0
	}
}

// RiskBands holds the miss-distance thresholds (km) for one audience.
// Bands are checked tightest first; a miss distance beyond every band is
// RiskNone.
type RiskBands struct {
	CriticalKm  float64
	AttentionKm float64
	MonitorKm   float64
}

// Classify maps a miss distance onto the band's risk tier.
func (b RiskBands) Classify(missDistanceKm float64) RiskLevel {
	switch {
	case missDistanceKm < b.CriticalKm:
		return RiskCritical
	case missDistanceKm < b.AttentionKm:
		return RiskAttention
	case missDistanceKm < b.MonitorKm:
		return RiskMonitor
	default:
		return RiskNone
	}
}

// Per-audience bands. The station is far more sensitive to close misses than
// the general satellite population, so its bands are the tightest; the
// satellite bands are the widest because the audience spans LEO through the
// GEO belt. Heuristic product constants, overridable per deployment.
var (
	EarthRiskBands      = RiskBands{CriticalKm: 10_000, AttentionKm: 100_000, MonitorKm: 1_000_000}
	HumansRiskBands     = RiskBands{CriticalKm: 5_000, AttentionKm: 75_000, MonitorKm: 750_000}
	ISSRiskBands        = RiskBands{CriticalKm: 1_000, AttentionKm: 10_000, MonitorKm: 50_000}
	SatellitesRiskBands = RiskBands{CriticalKm: 42_000, AttentionKm: 150_000, MonitorKm: 1_000_000}
)

// RiskAssessment carries the per-audience tiers for one approach.
type RiskAssessment struct {
	Earth      RiskLevel `json:"risk_earth"`
	Humans     RiskLevel `json:"risk_humans"`
	ISS        RiskLevel `json:"risk_iss"`
	Satellites RiskLevel `json:"risk_satellites"`
}

// AssessRisk evaluates every audience against the same miss distance.
func AssessRisk(missDistanceKm float64) RiskAssessment {
	return RiskAssessment{
		Earth:      EarthRiskBands.Classify(missDistanceKm),
		Humans:     HumansRiskBands.Classify(missDistanceKm),
		ISS:        ISSRiskBands.Classify(missDistanceKm),
		Satellites: SatellitesRiskBands.Classify(missDistanceKm),
	}
}
