package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testObjects() []SpaceObject {
	decay := "2021-03-05"
	return []SpaceObject{
		{NoradID: 1, Type: TypePayload, Country: "US", OrbitClass: OrbitLEO, Status: StatusActive},
		{NoradID: 2, Type: TypePayload, Country: "US", OrbitClass: OrbitGEO, Status: StatusInactive},
		{NoradID: 3, Type: TypeRocketBody, Country: "CIS", OrbitClass: OrbitLEO, Status: StatusDecayed, DecayDate: &decay},
		{NoradID: 4, Type: TypeDebris, Country: "PRC", OrbitClass: OrbitLEO, Status: StatusUnknown},
		{NoradID: 5, Type: TypePayload, Country: "FR", OrbitClass: OrbitHEO, Status: StatusActive},
	}
}

func TestFilterByType(t *testing.T) {
	objs := testObjects()

	payloads := FilterByType(objs, TypePayload)

	require.Len(t, payloads, 3)
	for _, o := range payloads {
		assert.Equal(t, TypePayload, o.Type)
	}
}

func TestFilterActive(t *testing.T) {
	objs := testObjects()

	active := FilterActive(objs)

	require.Len(t, active, 3)
	for _, o := range active {
		assert.Nil(t, o.DecayDate)
		assert.NotEqual(t, StatusDecayed, o.Status)
		assert.NotEqual(t, StatusInactive, o.Status)
	}
}

func TestFilterActive_DecayDateAloneExcludes(t *testing.T) {
	decay := "2020-01-01"
	objs := []SpaceObject{
		{NoradID: 1, Status: StatusActive, DecayDate: &decay},
	}

	assert.Empty(t, FilterActive(objs))
}

func TestFilterByCountry_CaseSensitive(t *testing.T) {
	objs := testObjects()

	assert.Len(t, FilterByCountry(objs, "US"), 2)
	assert.Empty(t, FilterByCountry(objs, "us"))
}

func TestFilters_ComposeOrderIndependent(t *testing.T) {
	objs := testObjects()

	a := FilterByOrbit(FilterByType(objs, TypePayload), OrbitLEO)
	b := FilterByType(FilterByOrbit(objs, OrbitLEO), TypePayload)

	assert.Equal(t, a, b)
	require.Len(t, a, 1)
	assert.Equal(t, 1, a[0].NoradID)
}

func TestFilters_DoNotMutateInput(t *testing.T) {
	objs := testObjects()
	original := make([]SpaceObject, len(objs))
	copy(original, objs)

	FilterByType(objs, TypeDebris)
	FilterActive(objs)
	FilterByCountry(objs, "US")
	FilterByOrbit(objs, OrbitLEO)

	assert.Equal(t, original, objs)
}

func TestCountObjects_MatchesFilteredSequence(t *testing.T) {
	objs := testObjects()

	leo := FilterByOrbit(objs, OrbitLEO)
	byType, byOrbit := CountObjects(leo)

	assert.Equal(t, TypeCounts{Payload: 1, RocketBody: 1, Debris: 1}, byType)
	assert.Equal(t, OrbitCounts{LEO: 3}, byOrbit)
	assert.Equal(t, len(leo), byType.Payload+byType.RocketBody+byType.Debris+byType.Unknown)
}

func TestCountObjects_Empty(t *testing.T) {
	byType, byOrbit := CountObjects(nil)

	assert.Equal(t, TypeCounts{}, byType)
	assert.Equal(t, OrbitCounts{}, byOrbit)
}
