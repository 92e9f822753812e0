package models

import "time"

// Participant is a team registered in one tournament.
type Participant struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	TeamID       int       `json:"team_id" db:"team_id"`
	TeamName     string    `json:"team_name" db:"team_name"`
	TeamLogo     *string   `json:"team_logo,omitempty" db:"team_logo"`
	CurrentGroup *string   `json:"current_group,omitempty" db:"current_group"`
	Seeded       bool      `json:"seeded" db:"seeded"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Group returns the assigned group label or "" before the group draw.
func (p Participant) Group() string {
	if p.CurrentGroup == nil {
		return ""
	}
	return *p.CurrentGroup
}
