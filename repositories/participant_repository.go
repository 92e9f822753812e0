package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dosada05/br-standings/models"
)

type ParticipantRepository interface {
	// ListByTournament returns participants in registration order.
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Participant, error)
}

type postgresParticipantRepository struct {
	db *sql.DB
}

func NewPostgresParticipantRepository(db *sql.DB) ParticipantRepository {
	return &postgresParticipantRepository{db: db}
}

func (r *postgresParticipantRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.Participant, error) {
	query := `
		SELECT p.id, p.tournament_id, p.team_id, t.name, t.logo_url, p.current_group, p.seeded, p.created_at
		FROM participants p
		JOIN teams t ON t.id = p.team_id
		WHERE p.tournament_id = $1
		ORDER BY p.created_at, p.id`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	participants := make([]models.Participant, 0)
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(
			&p.ID, &p.TournamentID, &p.TeamID, &p.TeamName, &p.TeamLogo,
			&p.CurrentGroup, &p.Seeded, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}
