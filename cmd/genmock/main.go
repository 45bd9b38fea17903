// Command genmock regenerates the embedded fallback fixtures from raw feed
// captures. It runs the captures through the actual normalizers so the
// offline datasets stay schema- and semantics-identical to live pipeline
// output, then prints aggregate stats for updating test assertions.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -catalog-raw captures/satcat_sample.json \
//	  -neo-raw captures/neo_feed_sample.json \
//	  -catalog-out internal/fallback/data/catalog.json \
//	  -neo-out internal/fallback/data/approaches.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/orbitdeck/space-data-pipeline/internal/domain"
	"github.com/orbitdeck/space-data-pipeline/internal/fallback"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	catalogRaw := flag.String("catalog-raw", "", "raw catalog feed capture (JSON array of records)")
	neoRaw := flag.String("neo-raw", "", "raw close-approach feed capture (JSON feed response)")
	catalogOut := flag.String("catalog-out", "internal/fallback/data/catalog.json", "output path for the catalog fixture")
	neoOut := flag.String("neo-out", "internal/fallback/data/approaches.json", "output path for the approaches fixture")
	flag.Parse()

	if *catalogRaw == "" || *neoRaw == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -catalog-raw, -neo-raw")
	}

	// Freeze time so regenerated fixtures are reproducible.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2026, time.August, 12, 0, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	var records []domain.RawCatalogRecord
	if err := readJSON(*catalogRaw, &records); err != nil {
		return fmt.Errorf("reading catalog capture: %w", err)
	}

	set := domain.NormalizeCatalog(records, fallback.DataSource)
	if err := writeJSON(*catalogOut, set.Objects); err != nil {
		return fmt.Errorf("writing catalog fixture: %w", err)
	}
	log.Printf("wrote catalog fixture: %s (%d objects)", *catalogOut, len(set.Objects))

	var feed domain.RawNEOFeed
	if err := readJSON(*neoRaw, &feed); err != nil {
		return fmt.Errorf("reading neo capture: %w", err)
	}

	neoSet := domain.NormalizeNEOFeed(feed, slog.Default())
	if err := writeJSON(*neoOut, neoSet.Views); err != nil {
		return fmt.Errorf("writing approaches fixture: %w", err)
	}
	log.Printf("wrote approaches fixture: %s (%d approaches)", *neoOut, len(neoSet.Views))

	printStats(set, neoSet)
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printStats(set domain.CatalogSet, neoSet domain.NEOSet) {
	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Catalog total: %d\n", len(set.Objects))
	fmt.Printf("By type: payload=%d, rocket_body=%d, debris=%d, unknown=%d\n",
		set.CountsByType.Payload, set.CountsByType.RocketBody,
		set.CountsByType.Debris, set.CountsByType.Unknown)
	fmt.Printf("By orbit: leo=%d, meo=%d, geo=%d, heo=%d, unknown=%d\n",
		set.CountsByOrbit.LEO, set.CountsByOrbit.MEO,
		set.CountsByOrbit.GEO, set.CountsByOrbit.HEO, set.CountsByOrbit.Unknown)

	var active, decayed int
	for i := range set.Objects {
		switch set.Objects[i].Status {
		case domain.StatusActive:
			active++
		case domain.StatusDecayed:
			decayed++
		}
	}
	fmt.Printf("Active: %d, Decayed: %d\n", active, decayed)

	fmt.Printf("\nAsteroids: %d, Approaches: %d\n", len(neoSet.Asteroids), len(neoSet.Events))
	riskCounts := map[domain.RiskLevel]int{}
	var hazardous int
	for i := range neoSet.Views {
		riskCounts[neoSet.Views[i].Satellites]++
		if neoSet.Views[i].Hazardous {
			hazardous++
		}
	}
	fmt.Printf("Hazardous approaches: %d\n", hazardous)
	fmt.Printf("Satellite risk: critical=%d, attention=%d, monitor=%d, none=%d\n",
		riskCounts[domain.RiskCritical], riskCounts[domain.RiskAttention],
		riskCounts[domain.RiskMonitor], riskCounts[domain.RiskNone])

	if len(neoSet.Views) > 0 {
		v := neoSet.Views[0]
		fmt.Printf("\nFirst approach:\n")
		fmt.Printf("  Asteroid: %s (%s)\n", v.Name, v.AsteroidID)
		fmt.Printf("  Time: %s\n", v.ApproachTime.Format(time.RFC3339))
		fmt.Printf("  Miss distance: %g km, velocity: %g km/s\n", v.MissDistanceKm, v.VelocityKmS)
		fmt.Printf("  Risk (earth/humans/iss/satellites): %s/%s/%s/%s\n",
			v.Earth, v.Humans, v.ISS, v.Satellites)
	}
}
