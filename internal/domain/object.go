package domain

import "strings"

// ObjectType is the canonical catalog object category.
type ObjectType string

const (
	TypePayload    ObjectType = "PAYLOAD"
	TypeRocketBody ObjectType = "ROCKET_BODY"
	TypeDebris     ObjectType = "DEBRIS"
	TypeUnknown    ObjectType = "UNKNOWN"
)

// ObjectTypes lists every valid ObjectType, in display order.
var ObjectTypes = []ObjectType{TypePayload, TypeRocketBody, TypeDebris, TypeUnknown}

// OrbitClass is the coarse altitude bucket derived during normalization.
type OrbitClass string

const (
	OrbitLEO     OrbitClass = "LEO"
	OrbitMEO     OrbitClass = "MEO"
	OrbitGEO     OrbitClass = "GEO"
	OrbitHEO     OrbitClass = "HEO"
	OrbitUnknown OrbitClass = "UNKNOWN"
)

// OrbitClasses lists every valid OrbitClass, in display order.
var OrbitClasses = []OrbitClass{OrbitLEO, OrbitMEO, OrbitGEO, OrbitHEO, OrbitUnknown}

// ObjectStatus is the lifecycle status derived from decay date and the
// upstream status column.
type ObjectStatus string

const (
	StatusActive   ObjectStatus = "ACTIVE"
	StatusInactive ObjectStatus = "INACTIVE"
	StatusDecayed  ObjectStatus = "DECAYED"
	StatusUnknown  ObjectStatus = "UNKNOWN"
)

// UnknownValue is the sentinel for numeric fields that failed the permissive
// parse. Kept negative so it can never collide with a real altitude, period,
// or inclination.
const UnknownValue float64 = -1

// SpaceObject is the canonical catalog entity.
type SpaceObject struct {
	NoradID        int          `json:"norad_id"`
	Name           string       `json:"name"`
	IntlDesignator string       `json:"intl_designator"`
	Type           ObjectType   `json:"type"`
	Country        string       `json:"country"`
	LaunchDate     *string      `json:"launch_date,omitempty"`
	DecayDate      *string      `json:"decay_date,omitempty"`
	InclinationDeg float64      `json:"inclination_deg"`
	PeriodMin      float64      `json:"period_min"`
	ApogeeKm       float64      `json:"apogee_km"`
	PerigeeKm      float64      `json:"perigee_km"`
	OrbitClass     OrbitClass   `json:"orbit_class"`
	Status         ObjectStatus `json:"status"`
	RCSSize        string       `json:"rcs_size,omitempty"`
	DataSource     string       `json:"data_source"`
}

// RawCatalogRecord is the loosely-typed intermediate form of one catalog row.
// Every field is a string exactly as the feed delivered it.
type RawCatalogRecord struct {
	NoradCatID     string `json:"NORAD_CAT_ID"`
	ObjectName     string `json:"OBJECT_NAME"`
	ObjectID       string `json:"OBJECT_ID"`
	ObjectType     string `json:"OBJECT_TYPE"`
	Country        string `json:"COUNTRY"`
	Launch         string `json:"LAUNCH"`
	Decay          string `json:"DECAY"`
	Inclination    string `json:"INCLINATION"`
	Period         string `json:"PERIOD"`
	Apogee         string `json:"APOGEE"`
	Perigee        string `json:"PERIGEE"`
	OpsStatusCode  string `json:"OPS_STATUS_CODE"`
	RCSSize        string `json:"RCS_SIZE"`
	CurrentFlag    string `json:"CURRENT"`
	LaunchSiteCode string `json:"SITE"`
}

// Orbit band thresholds. Heuristic product constants, overridable per
// deployment; see the package documentation for the band semantics.
var (
	GEOAltitudeKm        = 35786.0
	GEOToleranceKm       = 200.0
	HEOEccentricityRatio = 4.0
	LEOMaxApogeeKm       = 2000.0
	MEOMaxApogeeKm       = 35000.0
)

// ClassifyOrbit derives the orbit class from apogee and perigee altitudes.
// It is a pure function of its inputs: identical altitudes always produce
// the identical class.
func ClassifyOrbit(apogeeKm, perigeeKm float64) OrbitClass {
	if apogeeKm < 0 || perigeeKm < 0 {
		return OrbitUnknown
	}

	geoLow, geoHigh := GEOAltitudeKm-GEOToleranceKm, GEOAltitudeKm+GEOToleranceKm
	switch {
	case apogeeKm >= geoLow && apogeeKm <= geoHigh && perigeeKm >= geoLow && perigeeKm <= geoHigh:
		return OrbitGEO
	case perigeeKm > 0 && apogeeKm/perigeeKm > HEOEccentricityRatio:
		return OrbitHEO
	case apogeeKm < LEOMaxApogeeKm:
		return OrbitLEO
	case apogeeKm <= MEOMaxApogeeKm:
		return OrbitMEO
	default:
		return OrbitUnknown
	}
}

// ClassifyStatus derives lifecycle status. A decay date wins over whatever
// the status column claims.
func ClassifyStatus(decayDate *string, opsStatus string) ObjectStatus {
	if decayDate != nil && *decayDate != "" {
		return StatusDecayed
	}

	switch strings.ToLower(strings.TrimSpace(opsStatus)) {
	case "+", "active", "operational":
		return StatusActive
	case "-", "p", "inactive", "nonoperational", "partially operational", "standby":
		return StatusInactive
	case "d", "decayed":
		return StatusDecayed
	default:
		return StatusUnknown
	}
}

// ParseObjectType maps free-text catalog type labels onto the closed enum.
// Accepts both the long names and the Space-Track short codes.
func ParseObjectType(value string) ObjectType {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "PAYLOAD", "PAY":
		return TypePayload
	case "ROCKET BODY", "ROCKET_BODY", "R/B":
		return TypeRocketBody
	case "DEBRIS", "DEB":
		return TypeDebris
	default:
		return TypeUnknown
	}
}

// ValidObjectType reports whether value is exactly one of the canonical enum
// members. Query validation is strict where record parsing is permissive.
func ValidObjectType(value string) bool {
	for _, t := range ObjectTypes {
		if value == string(t) {
			return true
		}
	}
	return false
}

// ValidOrbitClass reports whether value is exactly one of the canonical
// orbit classes.
func ValidOrbitClass(value string) bool {
	for _, c := range OrbitClasses {
		if value == string(c) {
			return true
		}
	}
	return false
}
