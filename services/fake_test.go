package services

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/Dosada05/br-standings/models"
	"github.com/Dosada05/br-standings/realtime"
	"github.com/Dosada05/br-standings/repositories"
	"github.com/Dosada05/br-standings/scoring"
	"github.com/Dosada05/br-standings/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeDB is an in-memory backing store shared by the fake repositories.
type fakeDB struct {
	mu           sync.Mutex
	tournaments  map[int]models.Tournament
	participants []models.Participant
	matches      []models.Match
	results      []models.MatchResult
	standings    map[[2]int][]models.StageStanding

	listErr          error
	replaceErr       error
	markErr          error
	standingErr      error
	lastFilter       repositories.ListTournamentsFilter
	markCompletedIDs []int
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		tournaments: map[int]models.Tournament{},
		standings:   map[[2]int][]models.StageStanding{},
	}
}

type fakeTournamentRepo struct{ db *fakeDB }

func (f fakeTournamentRepo) GetByID(_ context.Context, id int) (*models.Tournament, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	t, ok := f.db.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	return &t, nil
}

func (f fakeTournamentRepo) List(_ context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	f.db.lastFilter = filter
	out := make([]models.Tournament, 0)
	for _, t := range f.db.tournaments {
		if filter.Type == nil || t.Type == *filter.Type {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeParticipantRepo struct{ db *fakeDB }

func (f fakeParticipantRepo) ListByTournament(_ context.Context, tournamentID int) ([]models.Participant, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if f.db.listErr != nil {
		return nil, f.db.listErr
	}
	out := make([]models.Participant, 0)
	for _, p := range f.db.participants {
		if p.TournamentID == tournamentID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeMatchRepo struct{ db *fakeDB }

func (f fakeMatchRepo) GetByID(_ context.Context, _ repositories.SQLExecutor, id int) (*models.Match, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, m := range f.db.matches {
		if m.ID == id {
			return &m, nil
		}
	}
	return nil, repositories.ErrMatchNotFound
}

func (f fakeMatchRepo) ListByTournament(_ context.Context, tournamentID int) ([]models.Match, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	out := make([]models.Match, 0)
	for _, m := range f.db.matches {
		if m.TournamentID == tournamentID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f fakeMatchRepo) MarkCompleted(_ context.Context, _ repositories.SQLExecutor, id int) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if f.db.markErr != nil {
		return f.db.markErr
	}
	for i := range f.db.matches {
		if f.db.matches[i].ID == id {
			if f.db.matches[i].Completed() {
				return repositories.ErrMatchAlreadyComplete
			}
			f.db.matches[i].Status = models.MatchStatusCompleted
			f.db.markCompletedIDs = append(f.db.markCompletedIDs, id)
			return nil
		}
	}
	return repositories.ErrMatchAlreadyComplete
}

type fakeResultRepo struct{ db *fakeDB }

func (f fakeResultRepo) ListByTournament(_ context.Context, tournamentID int) ([]models.MatchResult, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	inTournament := map[int]bool{}
	for _, m := range f.db.matches {
		if m.TournamentID == tournamentID {
			inTournament[m.ID] = true
		}
	}
	out := make([]models.MatchResult, 0)
	for _, r := range f.db.results {
		if inTournament[r.MatchID] {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f fakeResultRepo) ListByMatch(_ context.Context, matchID int) ([]models.MatchResult, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	out := make([]models.MatchResult, 0)
	for _, r := range f.db.results {
		if r.MatchID == matchID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f fakeResultRepo) ReplaceForMatch(_ context.Context, _ repositories.SQLExecutor, matchID int, results []models.MatchResult) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if f.db.replaceErr != nil {
		return f.db.replaceErr
	}
	kept := f.db.results[:0]
	for _, r := range f.db.results {
		if r.MatchID != matchID {
			kept = append(kept, r)
		}
	}
	f.db.results = append(kept, results...)
	return nil
}

type fakeStandingRepo struct{ db *fakeDB }

func (f fakeStandingRepo) ReplaceForStage(_ context.Context, _ repositories.SQLExecutor, tournamentID, stageID int, standings []models.StageStanding) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if f.db.standingErr != nil {
		return f.db.standingErr
	}
	f.db.standings[[2]int{tournamentID, stageID}] = standings
	return nil
}

func (f fakeStandingRepo) ListByStage(_ context.Context, tournamentID, stageID int) ([]models.StageStanding, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	return f.db.standings[[2]int{tournamentID, stageID}], nil
}

// fakeTx runs fn without a real transaction and remembers whether it failed.
type fakeTx struct {
	calls      int
	rolledBack bool
}

func (f *fakeTx) InTx(_ context.Context, fn func(exec repositories.SQLExecutor) error) error {
	f.calls++
	err := fn(nil)
	f.rolledBack = err != nil
	return err
}

type fakeNotifier struct {
	mu       sync.Mutex
	payloads []realtime.InvalidationPayload
}

func (f *fakeNotifier) NotifyStandings(p realtime.InvalidationPayload) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads = append(f.payloads, p)
}

type fakeUploader struct {
	keys    []string
	deleted []string
	err     error
}

func (f *fakeUploader) Upload(_ context.Context, key, _ string, _ io.Reader) (*storage.UploadResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.keys = append(f.keys, key)
	return &storage.UploadResult{Key: key, Location: f.GetPublicURL(key)}, nil
}

func (f *fakeUploader) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeUploader) GetPublicURL(key string) string { return "https://cdn.example.gg/" + key }

type fakePublisher struct {
	calls [][3]int
	err   error
}

func (f *fakePublisher) Publish(_ context.Context, tournamentID, stageID, matchID int) (*scoring.Standings, error) {
	f.calls = append(f.calls, [3]int{tournamentID, stageID, matchID})
	if f.err != nil {
		return nil, f.err
	}
	return &scoring.Standings{TournamentID: tournamentID}, nil
}

func strPtr(s string) *string { return &s }

// seedFlat stores a flat two-stage tournament 1 with four teams; stage 10
// has matches 100 (completed) and 101 (scheduled).
func seedFlat(db *fakeDB) {
	db.tournaments[1] = models.Tournament{
		ID:     1,
		Name:   "Weekly Cup",
		Type:   models.TypeTournament,
		Format: models.FormatFlatBattleRoyale,
		Stages: models.StageList{
			{ID: 10, Name: "Qualifier", TotalTeams: 4, AdvanceRule: "Top 2 advance"},
			{ID: 20, Name: "Final", TotalTeams: 2},
		},
		CurrentStage: 10,
	}
	for i := 1; i <= 4; i++ {
		db.participants = append(db.participants, models.Participant{ID: i, TournamentID: 1, TeamID: 100 + i})
	}
	db.matches = append(db.matches,
		models.Match{ID: 100, TournamentID: 1, StageID: 10, MatchNumber: 1, Status: models.MatchStatusCompleted},
		models.Match{ID: 101, TournamentID: 1, StageID: 10, MatchNumber: 2, Status: models.MatchStatusScheduled},
	)
	db.results = append(db.results,
		models.MatchResult{MatchID: 100, ParticipantID: 2, Placement: 1, Kills: 5},
		models.MatchResult{MatchID: 100, ParticipantID: 1, Placement: 2, Kills: 1},
		models.MatchResult{MatchID: 100, ParticipantID: 3, Placement: 3, Kills: 0},
	)
}
