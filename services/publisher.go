package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/br-standings/realtime"
	"github.com/Dosada05/br-standings/repositories"
	"github.com/Dosada05/br-standings/scoring"
	"github.com/Dosada05/br-standings/storage"
)

// StandingsNotifier pushes invalidation signals to live subscribers.
type StandingsNotifier interface {
	NotifyStandings(p realtime.InvalidationPayload)
}

// StandingsPublisher recomputes a stage after its results changed, stores the
// derived rows, exports a snapshot and tells subscribers to refetch.
type StandingsPublisher interface {
	Publish(ctx context.Context, tournamentID, stageID, matchID int) (*scoring.Standings, error)
}

type standingsPublisher struct {
	loader       snapshotLoader
	standingRepo repositories.StandingRepository
	uploader     storage.FileUploader
	notifier     StandingsNotifier
	logger       *slog.Logger
	now          func() time.Time
}

// NewStandingsPublisher builds a publisher. uploader may be nil, in which
// case no snapshot is exported.
func NewStandingsPublisher(
	tournamentRepo repositories.TournamentRepository,
	participantRepo repositories.ParticipantRepository,
	matchRepo repositories.MatchRepository,
	resultRepo repositories.MatchResultRepository,
	standingRepo repositories.StandingRepository,
	uploader storage.FileUploader,
	notifier StandingsNotifier,
	logger *slog.Logger,
) StandingsPublisher {
	return &standingsPublisher{
		loader: snapshotLoader{
			tournamentRepo:  tournamentRepo,
			participantRepo: participantRepo,
			matchRepo:       matchRepo,
			resultRepo:      resultRepo,
		},
		standingRepo: standingRepo,
		uploader:     uploader,
		notifier:     notifier,
		logger:       logger,
		now:          time.Now,
	}
}

func (p *standingsPublisher) Publish(ctx context.Context, tournamentID, stageID, matchID int) (*scoring.Standings, error) {
	snap, err := p.loader.load(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	st, err := scoring.Compute(snap, stageID)
	if err != nil {
		if stageID != 0 && (errors.Is(err, scoring.ErrStageNotRanked) || errors.Is(err, scoring.ErrStageNotFound)) {
			p.withdraw(ctx, tournamentID, stageID)
		}
		return nil, fmt.Errorf("failed to compute standings of tournament %d: %w", tournamentID, err)
	}
	logDiagnostics(p.logger, tournamentID, st.Diagnostics)

	publishedStage := st.Plan.Stage.ID
	if err := p.standingRepo.ReplaceForStage(ctx, nil, tournamentID, publishedStage, standingRows(st)); err != nil {
		return nil, fmt.Errorf("failed to store standings of tournament %d stage %d: %w", tournamentID, publishedStage, err)
	}

	payload := realtime.InvalidationPayload{
		TournamentID: tournamentID,
		StageID:      publishedStage,
		MatchID:      matchID,
		At:           p.now().UTC(),
	}

	// Export failures leave the stored rows authoritative; subscribers are
	// still notified.
	if p.uploader != nil {
		res, err := storage.UploadJSON(ctx, p.uploader, storage.StandingsSnapshotKey(tournamentID, publishedStage), st)
		if err != nil {
			p.logger.Error("failed to export standings snapshot",
				slog.Int("tournament_id", tournamentID), slog.Int("stage_id", publishedStage), slog.Any("error", err))
		} else {
			payload.SnapshotURL = res.Location
		}
	}

	p.notifier.NotifyStandings(payload)
	p.logger.Info("standings published",
		slog.Int("tournament_id", tournamentID),
		slog.Int("stage_id", publishedStage),
		slog.Int("reporting", st.Reporting),
		slog.Bool("provisional", st.Provisional),
	)
	return st, nil
}

// withdraw removes stored rows and the exported snapshot of a stage that no
// longer has points standings, so overlays stop showing a stale table.
func (p *standingsPublisher) withdraw(ctx context.Context, tournamentID, stageID int) {
	if err := p.standingRepo.ReplaceForStage(ctx, nil, tournamentID, stageID, nil); err != nil {
		p.logger.Error("failed to clear standings of unranked stage",
			slog.Int("tournament_id", tournamentID), slog.Int("stage_id", stageID), slog.Any("error", err))
	}
	if p.uploader == nil {
		return
	}
	if err := p.uploader.Delete(ctx, storage.StandingsSnapshotKey(tournamentID, stageID)); err != nil {
		p.logger.Error("failed to delete standings snapshot",
			slog.Int("tournament_id", tournamentID), slog.Int("stage_id", stageID), slog.Any("error", err))
	}
}
