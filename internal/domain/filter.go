package domain

// Filters are pure and order-independent: each returns a fresh slice, never
// mutates its input, and composing them in any order yields the same
// intersection. Aggregates must be recomputed (CountObjects) after every
// application; pre-filter counts never describe a filtered sequence.

// FilterByType selects objects with exactly the given canonical type.
func FilterByType(objs []SpaceObject, t ObjectType) []SpaceObject {
	return filter(objs, func(o SpaceObject) bool { return o.Type == t })
}

// FilterByOrbit selects objects in the given orbit class.
func FilterByOrbit(objs []SpaceObject, c OrbitClass) []SpaceObject {
	return filter(objs, func(o SpaceObject) bool { return o.OrbitClass == c })
}

// FilterActive selects objects still on orbit and operating: no decay date
// and a status that is neither DECAYED nor INACTIVE.
func FilterActive(objs []SpaceObject) []SpaceObject {
	return filter(objs, func(o SpaceObject) bool {
		return o.DecayDate == nil && o.Status != StatusDecayed && o.Status != StatusInactive
	})
}

// FilterByCountry selects objects whose owning country/organization code
// matches exactly. Case-sensitive: codes are canonical upstream identifiers,
// not display text.
func FilterByCountry(objs []SpaceObject, code string) []SpaceObject {
	return filter(objs, func(o SpaceObject) bool { return o.Country == code })
}

func filter(objs []SpaceObject, keep func(SpaceObject) bool) []SpaceObject {
	out := make([]SpaceObject, 0, len(objs))
	for _, o := range objs {
		if keep(o) {
			out = append(out, o)
		}
	}
	return out
}
