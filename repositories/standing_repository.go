package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Dosada05/br-standings/models"
)

// StandingRepository stores derived stage standings. Rows are always
// recomputed from results and replaced as a whole.
type StandingRepository interface {
	ReplaceForStage(ctx context.Context, exec SQLExecutor, tournamentID, stageID int, standings []models.StageStanding) error
	ListByStage(ctx context.Context, tournamentID, stageID int) ([]models.StageStanding, error)
}

type postgresStandingRepository struct {
	db *sql.DB
}

func NewPostgresStandingRepository(db *sql.DB) StandingRepository {
	return &postgresStandingRepository{db: db}
}

func (r *postgresStandingRepository) ReplaceForStage(ctx context.Context, exec SQLExecutor, tournamentID, stageID int, standings []models.StageStanding) (err error) {
	tx, ok := exec.(*sql.Tx)
	if !ok {
		tx, err = r.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("ReplaceForStage failed to begin transaction: %w", err)
		}
		defer func() {
			if p := recover(); p != nil {
				_ = tx.Rollback()
				panic(p)
			} else if err != nil {
				_ = tx.Rollback()
			} else {
				err = tx.Commit()
			}
		}()
	}

	// Concurrent publishes of one stage are serialized until the transaction ends.
	if _, err = tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1::int, $2::int)`, tournamentID, stageID); err != nil {
		return fmt.Errorf("ReplaceForStage failed to lock stage %d: %w", stageID, err)
	}

	if _, err = tx.ExecContext(ctx,
		`DELETE FROM stage_standings WHERE tournament_id = $1 AND stage_id = $2`,
		tournamentID, stageID,
	); err != nil {
		return fmt.Errorf("ReplaceForStage failed to clear stage %d: %w", stageID, err)
	}
	if len(standings) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO stage_standings
			(tournament_id, stage_id, participant_id, group_label, rank, maps_played,
			 placement_points, kill_points, total_points, wins, advancing, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`)
	if err != nil {
		return fmt.Errorf("ReplaceForStage failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for i := range standings {
		s := &standings[i]
		s.TournamentID, s.StageID = tournamentID, stageID
		if s.UpdatedAt.IsZero() {
			s.UpdatedAt = now
		}
		err = stmt.QueryRowContext(ctx,
			s.TournamentID, s.StageID, s.ParticipantID, s.GroupLabel, s.Rank, s.MapsPlayed,
			s.PlacementPoints, s.KillPoints, s.TotalPoints, s.Wins, s.Advancing, s.UpdatedAt,
		).Scan(&s.ID)
		if err != nil {
			return fmt.Errorf("ReplaceForStage failed for participant %d: %w", s.ParticipantID, err)
		}
	}
	return nil
}

func (r *postgresStandingRepository) ListByStage(ctx context.Context, tournamentID, stageID int) ([]models.StageStanding, error) {
	query := `
		SELECT id, tournament_id, stage_id, participant_id, group_label, rank, maps_played,
		       placement_points, kill_points, total_points, wins, advancing, updated_at
		FROM stage_standings
		WHERE tournament_id = $1 AND stage_id = $2
		ORDER BY group_label, rank`

	rows, err := r.db.QueryContext(ctx, query, tournamentID, stageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	standings := make([]models.StageStanding, 0)
	for rows.Next() {
		var s models.StageStanding
		if err := rows.Scan(
			&s.ID, &s.TournamentID, &s.StageID, &s.ParticipantID, &s.GroupLabel, &s.Rank, &s.MapsPlayed,
			&s.PlacementPoints, &s.KillPoints, &s.TotalPoints, &s.Wins, &s.Advancing, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		standings = append(standings, s)
	}
	return standings, rows.Err()
}
