// Package domain models tracked space objects and near-Earth-object close
// approaches as served to the situational-awareness dashboard.
//
// # Data Sources
//
// Catalog records come from a Space-Track-style satellite catalog feed
// (payloads, rocket bodies, debris, with orbital parameters). Every field in
// the upstream payload is a string, including numerics, and values are
// inconsistently populated between catalog snapshots; RawCatalogRecord
// carries them verbatim and all coercion happens during normalization.
//
// Close-approach records come from a NeoWs-style feed keyed by calendar date.
// Miss distances and relative velocities also arrive string-encoded. Each
// approach references its asteroid by id; the reference is only meaningful
// within the same response batch.
//
// # Orbit Classification
//
// Orbit class is always derived here from apogee/perigee, never taken from
// upstream (snapshots disagree with each other and with their own altitude
// columns). Fixed bands, checked in order:
//
//	GEO: apogee and perigee both within 35,786 km ± 200 km
//	HEO: apogee/perigee ratio above 4 (perigee must be positive)
//	LEO: apogee below 2,000 km
//	MEO: apogee between 2,000 km and 35,000 km
//	otherwise UNKNOWN (including unparsable altitudes)
//
// The band constants are heuristic product choices, not astrodynamics; they
// are package variables so a deployment can tune them.
//
// # Lifecycle Status
//
// A decay date means the object is no longer on orbit: DECAYED, regardless of
// what the status column says. Without one, the free-text status column is
// mapped permissively ("+"/"active"/"operational" → ACTIVE, "-"/"p"/
// "inactive" variants → INACTIVE, "d"/"decayed" → DECAYED, anything else
// UNKNOWN).
//
// # Risk Tiers
//
// Risk is a four-level ordered label (None < Monitor < Attention < Critical)
// assigned per audience from an approach's miss distance. Bands are ordered
// tightest first and the first match wins; beyond every band the risk is
// None. The ISS audience uses a much tighter band set than the general
// satellite population: a 300 km miss is Critical for the station, while
// 100,000 km is already None for it but still Attention for satellites.
// These are UI-emphasis thresholds, not collision probabilities.
//
// # Unknown Values
//
// UnknownValue (-1) is the sentinel for numeric fields that failed the
// permissive parse. One bad record never aborts a batch: bad numerics become
// the sentinel, bad enum text becomes the UNKNOWN member.
package domain
