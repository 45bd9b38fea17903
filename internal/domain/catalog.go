package domain

import (
	"strconv"
	"strings"
)

// TypeCounts aggregates objects by canonical type.
type TypeCounts struct {
	Payload    int `json:"payload"`
	RocketBody int `json:"rocket_body"`
	Debris     int `json:"debris"`
	Unknown    int `json:"unknown"`
}

// OrbitCounts aggregates objects by orbit class.
type OrbitCounts struct {
	LEO     int `json:"leo"`
	MEO     int `json:"meo"`
	GEO     int `json:"geo"`
	HEO     int `json:"heo"`
	Unknown int `json:"unknown"`
}

// CatalogSet is the result of normalizing one catalog batch: the ordered
// objects plus aggregates counted in the same pass.
type CatalogSet struct {
	Objects       []SpaceObject
	CountsByType  TypeCounts
	CountsByOrbit OrbitCounts
}

// NormalizeCatalog maps raw catalog records into canonical SpaceObjects and
// counts the aggregates in a single traversal. A malformed record degrades
// field-by-field (sentinel numerics, UNKNOWN enums) rather than failing the
// batch. Record order is preserved.
func NormalizeCatalog(records []RawCatalogRecord, source string) CatalogSet {
	set := CatalogSet{Objects: make([]SpaceObject, 0, len(records))}

	for _, rec := range records {
		obj := normalizeCatalogRecord(rec, source)
		set.Objects = append(set.Objects, obj)
		countObject(&set, obj)
	}
	return set
}

// CountObjects recomputes both aggregates over objs. Used after filtering so
// counts always describe the sequence they accompany.
func CountObjects(objs []SpaceObject) (TypeCounts, OrbitCounts) {
	var set CatalogSet
	for _, obj := range objs {
		countObject(&set, obj)
	}
	return set.CountsByType, set.CountsByOrbit
}

func countObject(set *CatalogSet, obj SpaceObject) {
	switch obj.Type {
	case TypePayload:
		set.CountsByType.Payload++
	case TypeRocketBody:
		set.CountsByType.RocketBody++
	case TypeDebris:
		set.CountsByType.Debris++
	case TypeUnknown:
		set.CountsByType.Unknown++
	}

	switch obj.OrbitClass {
	case OrbitLEO:
		set.CountsByOrbit.LEO++
	case OrbitMEO:
		set.CountsByOrbit.MEO++
	case OrbitGEO:
		set.CountsByOrbit.GEO++
	case OrbitHEO:
		set.CountsByOrbit.HEO++
	case OrbitUnknown:
		set.CountsByOrbit.Unknown++
	}
}

func normalizeCatalogRecord(rec RawCatalogRecord, source string) SpaceObject {
	apogee := parseFloatOrUnknown(rec.Apogee)
	perigee := parseFloatOrUnknown(rec.Perigee)
	decay := parseISODate(rec.Decay)

	return SpaceObject{
		NoradID:        parseIntOrZero(rec.NoradCatID),
		Name:           strings.TrimSpace(rec.ObjectName),
		IntlDesignator: strings.TrimSpace(rec.ObjectID),
		Type:           ParseObjectType(rec.ObjectType),
		Country:        strings.TrimSpace(rec.Country),
		LaunchDate:     parseISODate(rec.Launch),
		DecayDate:      decay,
		InclinationDeg: parseFloatOrUnknown(rec.Inclination),
		PeriodMin:      parseFloatOrUnknown(rec.Period),
		ApogeeKm:       apogee,
		PerigeeKm:      perigee,
		OrbitClass:     ClassifyOrbit(apogee, perigee),
		Status:         ClassifyStatus(decay, rec.OpsStatusCode),
		RCSSize:        strings.TrimSpace(rec.RCSSize),
		DataSource:     source,
	}
}

// parseFloatOrUnknown parses a string as float64, returning the UnknownValue
// sentinel for empty, non-numeric, or negative values. Altitudes, periods,
// and inclinations are all non-negative quantities in this feed.
func parseFloatOrUnknown(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return UnknownValue
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return UnknownValue
	}
	return v
}

// parseIntOrZero parses a string as int, returning 0 on failure.
func parseIntOrZero(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}

// parseISODate returns a trimmed YYYY-MM-DD date, or nil when absent or not
// date-shaped. The feed leaves decay empty for objects still on orbit, so
// nil carries meaning and is preserved through JSON.
func parseISODate(s string) *string {
	s = strings.TrimSpace(s)
	if len(s) < 10 {
		return nil
	}
	s = s[:10]
	if s[4] != '-' || s[7] != '-' {
		return nil
	}
	return &s
}
