package models

import "time"

// StageStanding is a persisted row of derived standings for one stage.
type StageStanding struct {
	ID              int       `json:"id" db:"id"`
	TournamentID    int       `json:"tournament_id" db:"tournament_id"`
	StageID         int       `json:"stage_id" db:"stage_id"`
	ParticipantID   int       `json:"participant_id" db:"participant_id"`
	GroupLabel      string    `json:"group_label" db:"group_label"`
	Rank            int       `json:"rank" db:"rank"`
	MapsPlayed      int       `json:"maps_played" db:"maps_played"`
	PlacementPoints int       `json:"placement_points" db:"placement_points"`
	KillPoints      int       `json:"kill_points" db:"kill_points"`
	TotalPoints     int       `json:"total_points" db:"total_points"`
	Wins            int       `json:"wins" db:"wins"`
	Advancing       bool      `json:"advancing" db:"advancing"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}
