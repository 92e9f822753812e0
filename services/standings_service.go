package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Dosada05/br-standings/models"
	"github.com/Dosada05/br-standings/repositories"
	"github.com/Dosada05/br-standings/scoring"
)

type StandingsService interface {
	// GetStandings computes live standings of a stage. stageID 0 selects the
	// tournament's current stage.
	GetStandings(ctx context.Context, tournamentID, stageID int, onlyPlayed bool) (*scoring.Standings, error)
	GetScrimStandings(ctx context.Context, scrimID int, onlyPlayed bool) (*scoring.Standings, error)
	// GetStoredStandings returns the rows persisted by the last publish.
	GetStoredStandings(ctx context.Context, tournamentID, stageID int) ([]models.StageStanding, error)
}

type standingsService struct {
	loader       snapshotLoader
	standingRepo repositories.StandingRepository
	logger       *slog.Logger
}

func NewStandingsService(
	tournamentRepo repositories.TournamentRepository,
	participantRepo repositories.ParticipantRepository,
	matchRepo repositories.MatchRepository,
	resultRepo repositories.MatchResultRepository,
	standingRepo repositories.StandingRepository,
	logger *slog.Logger,
) StandingsService {
	return &standingsService{
		loader: snapshotLoader{
			tournamentRepo:  tournamentRepo,
			participantRepo: participantRepo,
			matchRepo:       matchRepo,
			resultRepo:      resultRepo,
		},
		standingRepo: standingRepo,
		logger:       logger,
	}
}

func (s *standingsService) GetStandings(ctx context.Context, tournamentID, stageID int, onlyPlayed bool) (*scoring.Standings, error) {
	snap, err := s.loader.load(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	return s.compute(snap, stageID, onlyPlayed)
}

func (s *standingsService) GetScrimStandings(ctx context.Context, scrimID int, onlyPlayed bool) (*scoring.Standings, error) {
	snap, err := s.loader.load(ctx, scrimID)
	if err != nil {
		return nil, err
	}
	if !snap.Tournament.IsScrim() {
		return nil, fmt.Errorf("%w: tournament %d has type %q", ErrNotScrim, scrimID, snap.Tournament.Type)
	}
	return s.compute(snap, 0, onlyPlayed)
}

func (s *standingsService) compute(snap scoring.Snapshot, stageID int, onlyPlayed bool) (*scoring.Standings, error) {
	st, err := scoring.Compute(snap, stageID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute standings of tournament %d: %w", snap.Tournament.ID, err)
	}
	logDiagnostics(s.logger, snap.Tournament.ID, st.Diagnostics)
	if onlyPlayed {
		st = st.OnlyPlayed()
	}
	return st, nil
}

func (s *standingsService) GetStoredStandings(ctx context.Context, tournamentID, stageID int) ([]models.StageStanding, error) {
	t, err := s.loader.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	plan, err := scoring.ResolveStage(*t, stageID)
	if err != nil {
		return nil, err
	}
	rows, err := s.standingRepo.ListByStage(ctx, tournamentID, plan.Stage.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load stored standings of tournament %d: %w", tournamentID, err)
	}
	return rows, nil
}
