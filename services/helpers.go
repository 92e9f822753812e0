package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/br-standings/models"
	"github.com/Dosada05/br-standings/repositories"
	"github.com/Dosada05/br-standings/scoring"
	"golang.org/x/sync/errgroup"
)

// TxRunner runs fn inside a single database transaction.
type TxRunner interface {
	InTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error
}

type sqlTxRunner struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewTxRunner(db *sql.DB, logger *slog.Logger) TxRunner {
	return &sqlTxRunner{db: db, logger: logger}
}

func (r *sqlTxRunner) InTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) (txErr error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if txErr != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				r.logger.Error("transaction rollback failed", slog.Any("error", rbErr), slog.Any("cause", txErr))
				txErr = fmt.Errorf("transaction processing error: %w (rollback also failed: %v)", txErr, rbErr)
			}
		} else if cErr := tx.Commit(); cErr != nil {
			txErr = fmt.Errorf("failed to commit transaction: %w", cErr)
		}
	}()
	return fn(tx)
}

// snapshotLoader reads everything the scoring pipeline needs for one
// tournament.
type snapshotLoader struct {
	tournamentRepo  repositories.TournamentRepository
	participantRepo repositories.ParticipantRepository
	matchRepo       repositories.MatchRepository
	resultRepo      repositories.MatchResultRepository
}

func (l snapshotLoader) load(ctx context.Context, tournamentID int) (scoring.Snapshot, error) {
	var snap scoring.Snapshot
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		t, err := l.tournamentRepo.GetByID(gCtx, tournamentID)
		if err != nil {
			return handleRepositoryError(err)
		}
		snap.Tournament = *t
		return nil
	})
	g.Go(func() error {
		participants, err := l.participantRepo.ListByTournament(gCtx, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to load participants of tournament %d: %w", tournamentID, err)
		}
		snap.Participants = participants
		return nil
	})
	g.Go(func() error {
		matches, err := l.matchRepo.ListByTournament(gCtx, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to load matches of tournament %d: %w", tournamentID, err)
		}
		snap.Matches = matches
		return nil
	})
	g.Go(func() error {
		results, err := l.resultRepo.ListByTournament(gCtx, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to load results of tournament %d: %w", tournamentID, err)
		}
		snap.Results = results
		return nil
	})

	if err := g.Wait(); err != nil {
		return scoring.Snapshot{}, err
	}
	return snap, nil
}

func handleRepositoryError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrTournamentNotFound):
		return ErrTournamentNotFound
	case errors.Is(err, repositories.ErrMatchNotFound):
		return ErrMatchNotFound
	}
	return err
}

func logDiagnostics(logger *slog.Logger, tournamentID int, d scoring.Diagnostics) {
	if d.Empty() {
		return
	}
	logger.Warn("standings computed with skipped results",
		slog.Int("tournament_id", tournamentID),
		slog.Int("unknown_participants", d.UnknownParticipants),
		slog.Int("unknown_matches", d.UnknownMatches),
		slog.Int("pending_results", d.PendingResults),
	)
}

// standingRows flattens computed standings into persisted rows.
func standingRows(st *scoring.Standings) []models.StageStanding {
	rows := make([]models.StageStanding, 0, st.Registered)
	for _, g := range st.Groups {
		for _, e := range g.Entries {
			rows = append(rows, models.StageStanding{
				TournamentID:    st.TournamentID,
				StageID:         st.Plan.Stage.ID,
				ParticipantID:   e.Participant.ID,
				GroupLabel:      g.Group,
				Rank:            e.Rank,
				MapsPlayed:      e.Stats.MapsPlayed,
				PlacementPoints: e.Stats.PlacementPoints,
				KillPoints:      e.Stats.KillPoints,
				TotalPoints:     e.Stats.TotalPoints,
				Wins:            e.Stats.Wins,
				Advancing:       e.Advancing,
			})
		}
	}
	return rows
}
