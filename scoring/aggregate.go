package scoring

import "github.com/Dosada05/br-standings/models"

// Stats are the cumulative numbers of one participant over a set of results.
type Stats struct {
	MapsPlayed      int `json:"maps_played"`
	PlacementPoints int `json:"placement_points"`
	KillPoints      int `json:"kill_points"`
	TotalPoints     int `json:"total_points"`
	Wins            int `json:"wins"`
}

// Diagnostics counts input rows the engine skipped. None of them is an error.
type Diagnostics struct {
	UnknownParticipants int `json:"unknown_participants"`
	UnknownMatches      int `json:"unknown_matches"`
	PendingResults      int `json:"pending_results"`
}

func (d Diagnostics) Empty() bool {
	return d == Diagnostics{}
}

func (d Diagnostics) merge(o Diagnostics) Diagnostics {
	return Diagnostics{
		UnknownParticipants: d.UnknownParticipants + o.UnknownParticipants,
		UnknownMatches:      d.UnknownMatches + o.UnknownMatches,
		PendingResults:      d.PendingResults + o.PendingResults,
	}
}

// Aggregate folds results into per-participant totals keyed by participant ID.
// Every supplied participant is present in the map, including those without
// results. Results for unknown participants are skipped and counted.
// Duplicate placements are summed as given.
func Aggregate(results []models.MatchResult, participants []models.Participant) (map[int]Stats, Diagnostics) {
	stats := make(map[int]Stats, len(participants))
	for _, p := range participants {
		stats[p.ID] = Stats{}
	}

	var diag Diagnostics
	for _, r := range results {
		s, ok := stats[r.ParticipantID]
		if !ok {
			diag.UnknownParticipants++
			continue
		}
		placement := PlacementPoints(r.Placement)
		kills := KillPoints(r.Kills)

		s.MapsPlayed++
		s.PlacementPoints += placement
		s.KillPoints += kills
		s.TotalPoints += placement + kills
		if r.Placement == 1 {
			s.Wins++
		}
		stats[r.ParticipantID] = s
	}
	return stats, diag
}

// CompletedResults keeps the results whose match is in matches and completed.
func CompletedResults(results []models.MatchResult, matches []models.Match) ([]models.MatchResult, Diagnostics) {
	status := make(map[int]models.MatchStatus, len(matches))
	for _, m := range matches {
		status[m.ID] = m.Status
	}

	var diag Diagnostics
	kept := make([]models.MatchResult, 0, len(results))
	for _, r := range results {
		st, ok := status[r.MatchID]
		switch {
		case !ok:
			diag.UnknownMatches++
		case st != models.MatchStatusCompleted:
			diag.PendingResults++
		default:
			kept = append(kept, r)
		}
	}
	return kept, diag
}
