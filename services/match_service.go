package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/br-standings/models"
	"github.com/Dosada05/br-standings/repositories"
	"github.com/Dosada05/br-standings/scoring"
)

type ResultInput struct {
	ParticipantID int `json:"participant_id"`
	Placement     int `json:"placement"`
	Kills         int `json:"kills"`
}

type SubmitResultsInput struct {
	Results []ResultInput `json:"results"`
}

// MatchResultsView is the scored result table of one match.
type MatchResultsView struct {
	Match   models.Match         `json:"match"`
	Entries []scoring.MatchEntry `json:"entries"`
}

type MatchService interface {
	GetMatchResults(ctx context.Context, matchID int) (*MatchResultsView, error)
	// SubmitResults replaces the results of a match and completes it, then
	// republishes the standings of its stage.
	SubmitResults(ctx context.Context, matchID int, input SubmitResultsInput) (*MatchResultsView, error)
}

type matchService struct {
	tx              TxRunner
	matchRepo       repositories.MatchRepository
	resultRepo      repositories.MatchResultRepository
	participantRepo repositories.ParticipantRepository
	publisher       StandingsPublisher
	logger          *slog.Logger
}

func NewMatchService(
	tx TxRunner,
	matchRepo repositories.MatchRepository,
	resultRepo repositories.MatchResultRepository,
	participantRepo repositories.ParticipantRepository,
	publisher StandingsPublisher,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		tx:              tx,
		matchRepo:       matchRepo,
		resultRepo:      resultRepo,
		participantRepo: participantRepo,
		publisher:       publisher,
		logger:          logger,
	}
}

func (s *matchService) GetMatchResults(ctx context.Context, matchID int) (*MatchResultsView, error) {
	match, err := s.matchRepo.GetByID(ctx, nil, matchID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	return s.view(ctx, match)
}

func (s *matchService) view(ctx context.Context, match *models.Match) (*MatchResultsView, error) {
	results, err := s.resultRepo.ListByMatch(ctx, match.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load results of match %d: %w", match.ID, err)
	}
	participants, err := s.participantRepo.ListByTournament(ctx, match.TournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load participants of tournament %d: %w", match.TournamentID, err)
	}
	return &MatchResultsView{
		Match:   *match,
		Entries: scoring.MatchTable(results, participants),
	}, nil
}

func (s *matchService) SubmitResults(ctx context.Context, matchID int, input SubmitResultsInput) (*MatchResultsView, error) {
	match, err := s.matchRepo.GetByID(ctx, nil, matchID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	participants, err := s.participantRepo.ListByTournament(ctx, match.TournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load participants of tournament %d: %w", match.TournamentID, err)
	}
	if err := validateResults(input, participants); err != nil {
		return nil, err
	}

	results := make([]models.MatchResult, 0, len(input.Results))
	for _, in := range input.Results {
		results = append(results, models.MatchResult{
			MatchID:       matchID,
			ParticipantID: in.ParticipantID,
			Placement:     in.Placement,
			Kills:         in.Kills,
		})
	}

	err = s.tx.InTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.resultRepo.ReplaceForMatch(ctx, exec, matchID, results); err != nil {
			return err
		}
		if match.Completed() {
			return nil
		}
		if err := s.matchRepo.MarkCompleted(ctx, exec, matchID); err != nil && !errors.Is(err, repositories.ErrMatchAlreadyComplete) {
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repositories.ErrResultParticipantInvalid) {
			return nil, ValidationErrors{"results": "participant does not exist"}
		}
		if errors.Is(err, repositories.ErrResultMatchInvalid) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to save results of match %d: %w", matchID, err)
	}
	match.Status = models.MatchStatusCompleted
	s.logger.Info("match results submitted", slog.Int("match_id", matchID), slog.Int("results", len(results)))

	// The results are committed at this point; a failed recompute only
	// leaves the published standings stale until the next submission.
	if _, err := s.publisher.Publish(ctx, match.TournamentID, match.StageID, matchID); err != nil {
		s.logger.Warn("failed to publish standings after result submission",
			slog.Int("tournament_id", match.TournamentID),
			slog.Int("stage_id", match.StageID),
			slog.Any("error", err))
	}

	return s.view(ctx, match)
}

func validateResults(input SubmitResultsInput, participants []models.Participant) error {
	if len(input.Results) == 0 {
		return ValidationErrors{"results": "must contain at least one result"}
	}

	registered := make(map[int]bool, len(participants))
	for _, p := range participants {
		registered[p.ID] = true
	}

	errs := ValidationErrors{}
	seen := make(map[int]bool, len(input.Results))
	for i, r := range input.Results {
		field := fmt.Sprintf("results[%d]", i)
		switch {
		case !registered[r.ParticipantID]:
			errs[field+".participant_id"] = fmt.Sprintf("participant %d is not registered in this tournament", r.ParticipantID)
		case seen[r.ParticipantID]:
			errs[field+".participant_id"] = fmt.Sprintf("participant %d is listed more than once", r.ParticipantID)
		}
		seen[r.ParticipantID] = true

		if r.Placement < 1 {
			errs[field+".placement"] = "must be at least 1"
		}
		if r.Kills < 0 {
			errs[field+".kills"] = "must not be negative"
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
