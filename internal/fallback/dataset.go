// Package fallback holds the fixed offline datasets served whenever an
// upstream feed is unreachable, misconfigured, or malformed. The fixtures
// are generated by cmd/genmock through the real normalizers, so they are
// schema-identical to live data; callers never special-case mock responses
// beyond reading the is_mock flag.
package fallback

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/orbitdeck/space-data-pipeline/internal/domain"
)

// Version identifies the fixture snapshot. Bump it when regenerating with
// cmd/genmock.
const Version = "2026.08"

// DataSource is the provenance tag carried by every fallback entity.
const DataSource = "Mock Data"

//go:embed data/catalog.json
var catalogJSON []byte

//go:embed data/approaches.json
var approachesJSON []byte

var (
	loadOnce   sync.Once
	loadErr    error
	catalog    []domain.SpaceObject
	approaches []domain.ApproachView
)

func load() error {
	loadOnce.Do(func() {
		if err := json.Unmarshal(catalogJSON, &catalog); err != nil {
			loadErr = fmt.Errorf("fallback catalog fixture: %w", err)
			return
		}
		if err := json.Unmarshal(approachesJSON, &approaches); err != nil {
			loadErr = fmt.Errorf("fallback approaches fixture: %w", err)
			return
		}
	})
	return loadErr
}

// Verify confirms both fixtures decode. Used by the readiness check: once
// this holds, the service can always produce an envelope.
func Verify() error { return load() }

// Catalog returns a fresh copy of the offline catalog dataset.
func Catalog() ([]domain.SpaceObject, error) {
	if err := load(); err != nil {
		return nil, err
	}
	out := make([]domain.SpaceObject, len(catalog))
	copy(out, catalog)
	return out, nil
}

// Approaches returns a fresh copy of the offline close-approach dataset.
func Approaches() ([]domain.ApproachView, error) {
	if err := load(); err != nil {
		return nil, err
	}
	out := make([]domain.ApproachView, len(approaches))
	copy(out, approaches)
	return out, nil
}
