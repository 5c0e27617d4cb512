// Package location acquires a single best-effort position fix. Absence of
// a fix is a normal outcome, not an error.
package location

// Coordinates identifies a point on earth in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Fix is either a known coordinate pair or nothing. The zero value is
// Unknown.
type Fix struct {
	Coordinates
	Known bool
}

// Unknown is the fix used whenever a position could not be acquired.
var Unknown = Fix{}

// KnownFix wraps coordinates in a known fix.
func KnownFix(lat, lon float64) Fix {
	return Fix{Coordinates: Coordinates{Latitude: lat, Longitude: lon}, Known: true}
}
