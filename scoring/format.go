package scoring

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/Dosada05/br-standings/models"
)

var (
	ErrNoStages       = errors.New("tournament has no stages")
	ErrStageNotFound  = errors.New("stage not found")
	ErrStageNotRanked = errors.New("stage is not ranked by points")
	ErrUnknownFormat  = errors.New("unknown tournament format")
)

var cutoffPattern = regexp.MustCompile(`Top (\d+)`)

// ParseCutoff extracts N from the first "Top N" in an advancement rule such as
// "Top 9 per group + 3 Wildcard". A rule without it yields 0: nobody advances.
func ParseCutoff(rule string) int {
	m := cutoffPattern.FindStringSubmatch(rule)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// StagePlan is the ranking setup for one stage of a tournament.
type StagePlan struct {
	Stage          models.Stage            `json:"stage"`
	Format         models.TournamentFormat `json:"format,omitempty"`
	Grouped        bool                    `json:"grouped"`
	Cutoff         int                     `json:"cutoff"`
	Wildcards      int                     `json:"wildcards,omitempty"`
	Terminal       bool                    `json:"terminal"`
	EffectiveTeams int                     `json:"effective_teams"`
	GroupSize      int                     `json:"group_size,omitempty"`
	Scrim          bool                    `json:"scrim,omitempty"`
}

// GroupOf returns the grouping function for the plan.
func (p StagePlan) GroupOf() func(models.Participant) string {
	if !p.Grouped {
		return nil
	}
	return models.Participant.Group
}

func knownFormat(f models.TournamentFormat) bool {
	switch f {
	case models.FormatGroupedBattleRoyale,
		models.FormatFlatBattleRoyale,
		models.FormatRoundRobinElimination,
		models.FormatProSeries:
		return true
	}
	return false
}

// ResolveStage picks the stage to rank. stageID 0 means the tournament's
// current stage, falling back to the first stage when none is set.
// Scrims resolve to a single implicit flat stage spanning all matches.
func ResolveStage(t models.Tournament, stageID int) (StagePlan, error) {
	if t.IsScrim() {
		return StagePlan{
			Stage:    models.Stage{Name: "Scrim"},
			Format:   t.Format,
			Terminal: true,
			Scrim:    true,
		}, nil
	}
	if !knownFormat(t.Format) {
		return StagePlan{}, fmt.Errorf("%w: %q", ErrUnknownFormat, t.Format)
	}
	if len(t.Stages) == 0 {
		return StagePlan{}, ErrNoStages
	}

	if stageID == 0 {
		stageID = t.CurrentStage
	}
	idx := 0
	if stageID != 0 {
		idx = -1
		for i, s := range t.Stages {
			if s.ID == stageID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return StagePlan{}, fmt.Errorf("%w: stage %d in tournament %d", ErrStageNotFound, stageID, t.ID)
		}
	}
	stage := t.Stages[idx]

	// Only the league stage of a round robin feeds points standings; the
	// bracket that follows progresses by elimination.
	if t.Format == models.FormatRoundRobinElimination && idx > 0 {
		return StagePlan{}, fmt.Errorf("%w: %q is a bracket stage", ErrStageNotRanked, stage.Name)
	}

	plan := StagePlan{
		Stage:          stage,
		Format:         t.Format,
		Grouped:        t.Format != models.FormatFlatBattleRoyale && stage.Groups > 0,
		Cutoff:         stageCutoff(stage),
		Wildcards:      stage.Wildcards,
		Terminal:       idx == len(t.Stages)-1,
		EffectiveTeams: stage.TotalTeams,
	}
	if t.Format == models.FormatProSeries {
		plan.EffectiveTeams += stage.SeededTeams
	}
	if plan.Grouped {
		plan.GroupSize = stage.GroupSize
		if plan.GroupSize == 0 {
			plan.GroupSize = (plan.EffectiveTeams + stage.Groups - 1) / stage.Groups
		}
	}
	return plan, nil
}

func stageCutoff(s models.Stage) int {
	if s.Cutoff != nil {
		if *s.Cutoff < 0 {
			return 0
		}
		return *s.Cutoff
	}
	return ParseCutoff(s.AdvanceRule)
}

// StageMatches returns the matches that belong to the planned stage.
func StageMatches(plan StagePlan, matches []models.Match) []models.Match {
	if plan.Scrim {
		return matches
	}
	out := make([]models.Match, 0, len(matches))
	for _, m := range matches {
		if m.StageID == plan.Stage.ID {
			out = append(out, m)
		}
	}
	return out
}
