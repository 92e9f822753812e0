package scoring

import (
	"sort"

	"github.com/Dosada05/br-standings/models"
)

// Snapshot is one mutually consistent read of a tournament's data.
type Snapshot struct {
	Tournament   models.Tournament
	Participants []models.Participant
	Matches      []models.Match
	Results      []models.MatchResult
}

type Standings struct {
	TournamentID     int              `json:"tournament_id"`
	Plan             StagePlan        `json:"plan"`
	Groups           []GroupStandings `json:"groups"`
	Registered       int              `json:"registered"`
	Reporting        int              `json:"reporting"`
	MatchesTotal     int              `json:"matches_total"`
	MatchesCompleted int              `json:"matches_completed"`
	Provisional      bool             `json:"provisional"`
	Champion         *RankedEntry     `json:"champion,omitempty"`
	Diagnostics      Diagnostics      `json:"diagnostics"`
}

// Compute runs the whole pipeline for one stage of the snapshot. stageID 0
// selects the current stage. Only completed matches of that stage count.
func Compute(s Snapshot, stageID int) (*Standings, error) {
	plan, err := ResolveStage(s.Tournament, stageID)
	if err != nil {
		return nil, err
	}

	matches := StageMatches(plan, s.Matches)
	completed := 0
	for _, m := range matches {
		if m.Completed() {
			completed++
		}
	}

	results, matchDiag := CompletedResults(stageResults(s.Results, s.Matches, matches), matches)
	stats, aggDiag := Aggregate(results, s.Participants)

	groups := Rank(stats, s.Participants, plan.GroupOf())
	provisional := completed < len(matches)
	ApplyAdvancement(groups, plan.Cutoff, plan.Terminal, plan.Grouped)

	out := &Standings{
		TournamentID:     s.Tournament.ID,
		Plan:             plan,
		Groups:           groups,
		Registered:       len(s.Participants),
		Reporting:        Reporting(stats),
		MatchesTotal:     len(matches),
		MatchesCompleted: completed,
		Provisional:      provisional,
		Diagnostics:      matchDiag.merge(aggDiag),
	}

	// A champion exists once a single-table final has every match in.
	if provisional || completed == 0 {
		for gi := range groups {
			for i := range groups[gi].Entries {
				groups[gi].Entries[i].Champion = false
			}
		}
	} else if len(groups) == 1 && len(groups[0].Entries) > 0 && groups[0].Entries[0].Champion {
		champion := groups[0].Entries[0]
		out.Champion = &champion
	}
	return out, nil
}

// stageResults drops results of matches that exist in the tournament but
// belong to another stage, so they are not reported as unknown matches.
func stageResults(results []models.MatchResult, all, stage []models.Match) []models.MatchResult {
	if len(all) == len(stage) {
		return results
	}
	inStage := make(map[int]bool, len(stage))
	for _, m := range stage {
		inStage[m.ID] = true
	}
	known := make(map[int]bool, len(all))
	for _, m := range all {
		known[m.ID] = true
	}
	out := make([]models.MatchResult, 0, len(results))
	for _, r := range results {
		if known[r.MatchID] && !inStage[r.MatchID] {
			continue
		}
		out = append(out, r)
	}
	return out
}

// OnlyPlayed returns a copy whose tables hide participants without maps played.
func (s *Standings) OnlyPlayed() *Standings {
	cp := *s
	cp.Groups = OnlyPlayed(s.Groups)
	return &cp
}

// MatchEntry is one row of a single match's result table.
type MatchEntry struct {
	ParticipantID   int                 `json:"participant_id"`
	Participant     *models.Participant `json:"participant,omitempty"`
	Placement       int                 `json:"placement"`
	Kills           int                 `json:"kills"`
	PlacementPoints int                 `json:"placement_points"`
	KillPoints      int                 `json:"kill_points"`
	TotalPoints     int                 `json:"total_points"`
}

// MatchTable scores the results of one match regardless of its status, ordered
// by placement (unplaced rows last) and then kills.
func MatchTable(results []models.MatchResult, participants []models.Participant) []MatchEntry {
	byID := make(map[int]models.Participant, len(participants))
	for _, p := range participants {
		byID[p.ID] = p
	}

	entries := make([]MatchEntry, 0, len(results))
	for _, r := range results {
		e := MatchEntry{
			ParticipantID:   r.ParticipantID,
			Placement:       r.Placement,
			Kills:           r.Kills,
			PlacementPoints: PlacementPoints(r.Placement),
			KillPoints:      KillPoints(r.Kills),
		}
		e.TotalPoints = e.PlacementPoints + e.KillPoints
		if p, ok := byID[r.ParticipantID]; ok {
			e.Participant = &p
		}
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		pi, pj := entries[i].Placement, entries[j].Placement
		if (pi < 1) != (pj < 1) {
			return pj < 1
		}
		if pi != pj {
			return pi < pj
		}
		return entries[i].Kills > entries[j].Kills
	})
	return entries
}
