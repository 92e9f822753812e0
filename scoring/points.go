// Package scoring turns battle-royale match results into points, standings
// and advancement flags. Every function is a pure transformation of its input.
package scoring

const (
	// LobbySize is the number of placements that earn placement points.
	LobbySize        = 12
	FirstPlacePoints = 39
	PlacementStep    = 3
	PointsPerKill    = 2
)

// PlacementPoints maps a 1-based placement to points: 39 for first, 3 less
// for every following rank down to 6 for twelfth. Anything outside 1..12
// earns nothing.
func PlacementPoints(placement int) int {
	if placement < 1 || placement > LobbySize {
		return 0
	}
	return FirstPlacePoints - PlacementStep*(placement-1)
}

// KillPoints returns two points per kill. Negative kill counts are clamped to zero.
func KillPoints(kills int) int {
	if kills < 0 {
		return 0
	}
	return kills * PointsPerKill
}

func ResultPoints(placement, kills int) int {
	return PlacementPoints(placement) + KillPoints(kills)
}
