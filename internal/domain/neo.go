package domain

import (
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Asteroid is the canonical near-Earth-object entity.
type Asteroid struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	DiameterMinKm float64 `json:"diameter_min_km"`
	DiameterMaxKm float64 `json:"diameter_max_km"`
	Hazardous     bool    `json:"hazardous"`
}

// ApproachEvent is one predicted close approach. AsteroidID references an
// Asteroid in the same batch; events whose reference does not resolve are
// dropped during normalization, never rendered nameless.
type ApproachEvent struct {
	AsteroidID     string    `json:"asteroid_id"`
	ApproachTime   time.Time `json:"approach_time"`
	VelocityKmS    float64   `json:"velocity_km_s"`
	MissDistanceKm float64   `json:"miss_distance_km"`
}

// ApproachView is the flattened convenience shape the dashboard consumes:
// the event joined with its asteroid's display attributes and the computed
// risk tiers.
type ApproachView struct {
	AsteroidID     string    `json:"asteroid_id"`
	Name           string    `json:"name"`
	DiameterMinKm  float64   `json:"diameter_min_km"`
	DiameterMaxKm  float64   `json:"diameter_max_km"`
	Hazardous      bool      `json:"hazardous"`
	ApproachTime   time.Time `json:"approach_time"`
	VelocityKmS    float64   `json:"velocity_km_s"`
	VelocityKmH    float64   `json:"velocity_km_h"`
	MissDistanceKm float64   `json:"miss_distance_km"`
	RiskAssessment
}

// Raw intermediate types mirroring the close-approach feed payload. Numeric
// fields arrive string-encoded and are coerced during normalization.

// RawNEOFeed is the decoded feed response: objects grouped by calendar date.
type RawNEOFeed struct {
	ElementCount int                      `json:"element_count"`
	ObjectsByDay map[string][]RawNEObject `json:"near_earth_objects"`
}

// RawNEObject is one asteroid entry with its close-approach records.
type RawNEObject struct {
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	Hazardous         bool               `json:"is_potentially_hazardous_asteroid"`
	EstimatedDiameter struct {
		Kilometers struct {
			Min float64 `json:"estimated_diameter_min"`
			Max float64 `json:"estimated_diameter_max"`
		} `json:"kilometers"`
	} `json:"estimated_diameter"`
	CloseApproaches []RawCloseApproach `json:"close_approach_data"`
}

// RawCloseApproach is one close-approach record within a RawNEObject.
type RawCloseApproach struct {
	EpochMillis      int64  `json:"epoch_date_close_approach"`
	NeoReferenceID   string `json:"neo_reference_id"`
	RelativeVelocity struct {
		KmPerSecond string `json:"kilometers_per_second"`
	} `json:"relative_velocity"`
	MissDistance struct {
		Kilometers string `json:"kilometers"`
	} `json:"miss_distance"`
}

// NEOSet is the result of normalizing one feed batch.
type NEOSet struct {
	Asteroids []Asteroid
	Events    []ApproachEvent
	Views     []ApproachView
}

// NormalizeNEOFeed maps a raw feed batch into canonical asteroids, approach
// events, and the flattened dashboard view, sorted by approach time. An
// approach whose NeoReferenceID names an asteroid missing from the batch is
// logged and dropped; one orphan never fails the batch.
func NormalizeNEOFeed(feed RawNEOFeed, logger *slog.Logger) NEOSet {
	byID := make(map[string]Asteroid)
	var set NEOSet
	var orphans []RawCloseApproach

	days := make([]string, 0, len(feed.ObjectsByDay))
	for day := range feed.ObjectsByDay {
		days = append(days, day)
	}
	sort.Strings(days)

	for _, day := range days {
		for _, raw := range feed.ObjectsByDay[day] {
			ast := Asteroid{
				ID:            strings.TrimSpace(raw.ID),
				Name:          strings.TrimSpace(raw.Name),
				DiameterMinKm: raw.EstimatedDiameter.Kilometers.Min,
				DiameterMaxKm: raw.EstimatedDiameter.Kilometers.Max,
				Hazardous:     raw.Hazardous,
			}
			if ast.ID == "" {
				logger.Warn("asteroid without id, skipping", "name", ast.Name, "day", day)
				continue
			}
			if _, seen := byID[ast.ID]; !seen {
				byID[ast.ID] = ast
				set.Asteroids = append(set.Asteroids, ast)
			}

			for _, approach := range raw.CloseApproaches {
				refID := strings.TrimSpace(approach.NeoReferenceID)
				if refID == "" {
					refID = ast.ID
				}
				if refID != ast.ID {
					// Resolve against the whole batch after the first pass.
					orphans = append(orphans, approach)
					continue
				}
				set.Events = append(set.Events, newApproachEvent(refID, approach))
			}
		}
	}

	for _, approach := range orphans {
		refID := strings.TrimSpace(approach.NeoReferenceID)
		if _, ok := byID[refID]; !ok {
			logger.Warn("approach references unknown asteroid, dropping",
				"neo_reference_id", refID,
				"epoch_ms", approach.EpochMillis,
			)
			continue
		}
		set.Events = append(set.Events, newApproachEvent(refID, approach))
	}

	sort.Slice(set.Events, func(i, j int) bool {
		return set.Events[i].ApproachTime.Before(set.Events[j].ApproachTime)
	})

	set.Views = make([]ApproachView, 0, len(set.Events))
	for _, ev := range set.Events {
		set.Views = append(set.Views, flattenApproach(ev, byID[ev.AsteroidID]))
	}
	return set
}

func newApproachEvent(asteroidID string, raw RawCloseApproach) ApproachEvent {
	return ApproachEvent{
		AsteroidID:     asteroidID,
		ApproachTime:   time.UnixMilli(raw.EpochMillis).UTC(),
		VelocityKmS:    parseFloatOrZero(raw.RelativeVelocity.KmPerSecond),
		MissDistanceKm: parseFloatOrZero(raw.MissDistance.Kilometers),
	}
}

func flattenApproach(ev ApproachEvent, ast Asteroid) ApproachView {
	return ApproachView{
		AsteroidID:     ev.AsteroidID,
		Name:           ast.Name,
		DiameterMinKm:  ast.DiameterMinKm,
		DiameterMaxKm:  ast.DiameterMaxKm,
		Hazardous:      ast.Hazardous,
		ApproachTime:   ev.ApproachTime,
		VelocityKmS:    ev.VelocityKmS,
		VelocityKmH:    ev.VelocityKmS * 3600, // exact conversion, no rounding before the multiply
		MissDistanceKm: ev.MissDistanceKm,
		RiskAssessment: AssessRisk(ev.MissDistanceKm),
	}
}

// parseFloatOrZero parses a string as float64, returning 0 on failure.
func parseFloatOrZero(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
