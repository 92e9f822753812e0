package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/br-standings/models"
	"github.com/lib/pq"
)

var (
	ErrResultParticipantInvalid = errors.New("match result references an unknown participant")
	ErrResultMatchInvalid       = errors.New("match result references an unknown match")
)

type MatchResultRepository interface {
	ListByTournament(ctx context.Context, tournamentID int) ([]models.MatchResult, error)
	ListByMatch(ctx context.Context, matchID int) ([]models.MatchResult, error)
	// ReplaceForMatch upserts results by participant and removes the match's
	// rows for participants not in results.
	ReplaceForMatch(ctx context.Context, exec SQLExecutor, matchID int, results []models.MatchResult) error
}

type postgresMatchResultRepository struct {
	db *sql.DB
}

func NewPostgresMatchResultRepository(db *sql.DB) MatchResultRepository {
	return &postgresMatchResultRepository{db: db}
}

func (r *postgresMatchResultRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.MatchResult, error) {
	query := `
		SELECT mr.id, mr.match_id, mr.participant_id, mr.placement, mr.kills, mr.created_at
		FROM match_results mr
		JOIN matches m ON m.id = mr.match_id
		WHERE m.tournament_id = $1
		ORDER BY mr.match_id, mr.placement, mr.id`
	return r.list(ctx, query, tournamentID)
}

func (r *postgresMatchResultRepository) ListByMatch(ctx context.Context, matchID int) ([]models.MatchResult, error) {
	query := `
		SELECT id, match_id, participant_id, placement, kills, created_at
		FROM match_results
		WHERE match_id = $1
		ORDER BY placement, id`
	return r.list(ctx, query, matchID)
}

func (r *postgresMatchResultRepository) list(ctx context.Context, query string, arg int) ([]models.MatchResult, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list match results: %w", err)
	}
	defer rows.Close()

	results := make([]models.MatchResult, 0)
	for rows.Next() {
		var mr models.MatchResult
		if err := rows.Scan(&mr.ID, &mr.MatchID, &mr.ParticipantID, &mr.Placement, &mr.Kills, &mr.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match result: %w", err)
		}
		results = append(results, mr)
	}
	return results, rows.Err()
}

func (r *postgresMatchResultRepository) ReplaceForMatch(ctx context.Context, exec SQLExecutor, matchID int, results []models.MatchResult) error {
	executor := executorOr(exec, r.db)

	keep := make([]int64, 0, len(results))
	for _, mr := range results {
		keep = append(keep, int64(mr.ParticipantID))
	}
	if _, err := executor.ExecContext(ctx,
		`DELETE FROM match_results WHERE match_id = $1 AND NOT (participant_id = ANY($2))`,
		matchID, pq.Array(keep),
	); err != nil {
		return fmt.Errorf("failed to clear stale results for match %d: %w", matchID, err)
	}

	query := `
		INSERT INTO match_results (match_id, participant_id, placement, kills)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (match_id, participant_id)
		DO UPDATE SET placement = EXCLUDED.placement, kills = EXCLUDED.kills
		RETURNING id, created_at`
	for i := range results {
		mr := &results[i]
		mr.MatchID = matchID
		err := executor.QueryRowContext(ctx, query, matchID, mr.ParticipantID, mr.Placement, mr.Kills).
			Scan(&mr.ID, &mr.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to save result of participant %d in match %d: %w",
				mr.ParticipantID, matchID, handleResultError(err))
		}
	}
	return nil
}

func handleResultError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23503" {
		switch pqErr.Constraint {
		case "match_results_participant_id_fkey":
			return ErrResultParticipantInvalid
		case "match_results_match_id_fkey":
			return ErrResultMatchInvalid
		}
	}
	return err
}
