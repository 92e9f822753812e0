package scoring

import (
	"sort"

	"github.com/Dosada05/br-standings/models"
)

type RankedEntry struct {
	Participant models.Participant `json:"participant"`
	Stats       Stats              `json:"stats"`
	Rank        int                `json:"rank"`
	Advancing   bool               `json:"advancing"`
	Champion    bool               `json:"champion,omitempty"`
}

// GroupStandings is the ranked table of one group. Group is "" for the
// implicit single group of a flat stage.
type GroupStandings struct {
	Group   string        `json:"group"`
	Entries []RankedEntry `json:"entries"`
}

// Ahead reports whether a ranks strictly ahead of b:
// total points, then kill points, then wins, all descending.
func Ahead(a, b Stats) bool {
	if a.TotalPoints != b.TotalPoints {
		return a.TotalPoints > b.TotalPoints
	}
	if a.KillPoints != b.KillPoints {
		return a.KillPoints > b.KillPoints
	}
	return a.Wins > b.Wins
}

// Rank partitions participants by groupOf and sorts each partition.
// Remaining ties keep the order of participants. Labelled groups come first in
// label order; participants without a label form the trailing "" group.
// Participants missing from stats are not ranked.
func Rank(stats map[int]Stats, participants []models.Participant, groupOf func(models.Participant) string) []GroupStandings {
	if groupOf == nil {
		groupOf = func(models.Participant) string { return "" }
	}

	byGroup := make(map[string][]RankedEntry)
	seen := make(map[int]bool, len(participants))
	for _, p := range participants {
		s, ok := stats[p.ID]
		if !ok || seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		label := groupOf(p)
		byGroup[label] = append(byGroup[label], RankedEntry{Participant: p, Stats: s})
	}

	labels := make([]string, 0, len(byGroup))
	for label := range byGroup {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if labels[i] == "" || labels[j] == "" {
			return labels[j] == ""
		}
		return labels[i] < labels[j]
	})

	groups := make([]GroupStandings, 0, len(labels))
	for _, label := range labels {
		entries := byGroup[label]
		sort.SliceStable(entries, func(i, j int) bool {
			return Ahead(entries[i].Stats, entries[j].Stats)
		})
		for i := range entries {
			entries[i].Rank = i + 1
		}
		groups = append(groups, GroupStandings{Group: label, Entries: entries})
	}
	return groups
}

// ApplyAdvancement flags entries ranked within cutoff as advancing. In a
// grouped stage the trailing "" group holds participants not drawn into a
// group yet; they never advance. On a terminal stage nobody advances and rank 1
// is the champion only when the stage has a single table.
func ApplyAdvancement(groups []GroupStandings, cutoff int, terminal, grouped bool) {
	singleTable := len(groups) == 1 && (!grouped || groups[0].Group != "")
	for gi := range groups {
		drawn := !grouped || groups[gi].Group != ""
		entries := groups[gi].Entries
		for i := range entries {
			entries[i].Advancing = !terminal && drawn && entries[i].Rank <= cutoff
			entries[i].Champion = terminal && singleTable && entries[i].Rank == 1
		}
	}
}

// OnlyPlayed drops entries without maps played. Ranks are left as computed.
func OnlyPlayed(groups []GroupStandings) []GroupStandings {
	out := make([]GroupStandings, 0, len(groups))
	for _, g := range groups {
		entries := make([]RankedEntry, 0, len(g.Entries))
		for _, e := range g.Entries {
			if e.Stats.MapsPlayed > 0 {
				entries = append(entries, e)
			}
		}
		out = append(out, GroupStandings{Group: g.Group, Entries: entries})
	}
	return out
}

// Reporting counts participants with at least one map played.
func Reporting(stats map[int]Stats) int {
	n := 0
	for _, s := range stats {
		if s.MapsPlayed > 0 {
			n++
		}
	}
	return n
}
