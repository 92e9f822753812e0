package models

import "time"

type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = "Scheduled"
	MatchStatusCompleted MatchStatus = "Completed"
)

type Match struct {
	ID           int         `json:"id" db:"id"`
	TournamentID int         `json:"tournament_id" db:"tournament_id"`
	StageID      int         `json:"stage_id" db:"stage_id"`
	GroupLabel   *string     `json:"group_label,omitempty" db:"group_label"`
	MatchNumber  int         `json:"match_number" db:"match_number"`
	ScheduledAt  time.Time   `json:"scheduled_at" db:"scheduled_at"`
	Status       MatchStatus `json:"status" db:"status"`
}

func (m Match) Completed() bool {
	return m.Status == MatchStatusCompleted
}

// MatchResult is one participant's outcome in one match.
type MatchResult struct {
	ID            int       `json:"id" db:"id"`
	MatchID       int       `json:"match_id" db:"match_id"`
	ParticipantID int       `json:"participant_id" db:"participant_id"`
	Placement     int       `json:"placement" db:"placement"`
	Kills         int       `json:"kills" db:"kills"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
