package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/br-standings/models"
)

var (
	ErrMatchNotFound        = errors.New("match not found")
	ErrMatchAlreadyComplete = errors.New("match is already completed")
)

type MatchRepository interface {
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Match, error)
	// MarkCompleted moves a scheduled match to completed. Completed matches
	// are never moved back.
	MarkCompleted(ctx context.Context, exec SQLExecutor, id int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `id, tournament_id, stage_id, group_label, match_number, scheduled_at, status`

func scanMatch(row rowScanner, m *models.Match) error {
	return row.Scan(&m.ID, &m.TournamentID, &m.StageID, &m.GroupLabel, &m.MatchNumber, &m.ScheduledAt, &m.Status)
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

	m := &models.Match{}
	if err := scanMatch(executorOr(exec, r.db).QueryRowContext(ctx, query, id), m); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %d: %w", id, err)
	}
	return m, nil
}

func (r *postgresMatchRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE tournament_id = $1 ORDER BY stage_id, match_number, id`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		var m models.Match
		if err := scanMatch(rows, &m); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (r *postgresMatchRepository) MarkCompleted(ctx context.Context, exec SQLExecutor, id int) error {
	query := `UPDATE matches SET status = $1 WHERE id = $2 AND status = $3`
	result, err := executorOr(exec, r.db).ExecContext(ctx, query,
		models.MatchStatusCompleted, id, models.MatchStatusScheduled)
	if err != nil {
		return fmt.Errorf("failed to complete match %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrMatchAlreadyComplete)
}
