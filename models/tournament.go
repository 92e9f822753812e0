package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// TournamentFormat описывает топологию стадий турнира.
type TournamentFormat string

const (
	FormatGroupedBattleRoyale   TournamentFormat = "grouped_battle_royale"
	FormatFlatBattleRoyale      TournamentFormat = "flat_battle_royale"
	FormatRoundRobinElimination TournamentFormat = "round_robin_single_elimination"
	FormatProSeries             TournamentFormat = "pro_series"
)

type TournamentType string

const (
	TypeTournament TournamentType = "tournament"
	TypeScrim      TournamentType = "scrim"
)

// Stage is one phase of a tournament. Cutoff and Wildcards are the structured
// form of AdvanceRule; when Cutoff is set it wins over the free-text rule.
type Stage struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	TotalTeams  int    `json:"total_teams"`
	Groups      int    `json:"groups,omitempty"`
	GroupSize   int    `json:"group_size,omitempty"`
	SeededTeams int    `json:"seeded_teams,omitempty"`
	AdvanceRule string `json:"advance_rule"`
	Cutoff      *int   `json:"cutoff,omitempty"`
	Wildcards   int    `json:"wildcards,omitempty"`
}

// StageList is stored in the tournaments.stages JSONB column.
type StageList []Stage

func (s StageList) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s)
}

func (s *StageList) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*s = StageList{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("stages: unsupported column type")
	}
	return json.Unmarshal(raw, s)
}

// Tournament представляет турнир или скрим.
type Tournament struct {
	ID           int              `json:"id" db:"id"`
	Name         string           `json:"name" db:"name"`
	Type         TournamentType   `json:"type" db:"type"`
	Format       TournamentFormat `json:"format" db:"format"`
	Stages       StageList        `json:"stages" db:"stages"`
	CurrentStage int              `json:"current_stage" db:"current_stage"`
	Rounds       int              `json:"rounds,omitempty" db:"rounds"`
	CreatedAt    time.Time        `json:"created_at" db:"created_at"`
}

func (t Tournament) IsScrim() bool {
	return t.Type == TypeScrim
}
