package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Dosada05/br-standings/models"
	"github.com/Dosada05/br-standings/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStandingsService(db *fakeDB) StandingsService {
	return NewStandingsService(
		fakeTournamentRepo{db}, fakeParticipantRepo{db}, fakeMatchRepo{db}, fakeResultRepo{db}, fakeStandingRepo{db},
		discardLogger(),
	)
}

func rankedIDs(st *scoring.Standings) []int {
	var ids []int
	for _, g := range st.Groups {
		for _, e := range g.Entries {
			ids = append(ids, e.Participant.ID)
		}
	}
	return ids
}

func TestStandingsService_GetStandings(t *testing.T) {
	db := newFakeDB()
	seedFlat(db)
	svc := newTestStandingsService(db)

	st, err := svc.GetStandings(context.Background(), 1, 0, false)

	require.NoError(t, err)
	assert.Equal(t, 10, st.Plan.Stage.ID)
	assert.Equal(t, []int{2, 1, 3, 4}, rankedIDs(st))
	require.Len(t, st.Groups, 1)
	entries := st.Groups[0].Entries
	assert.Equal(t, 49, entries[0].Stats.TotalPoints)
	assert.True(t, entries[0].Advancing)
	assert.True(t, entries[1].Advancing)
	assert.False(t, entries[2].Advancing)
	assert.Equal(t, 4, st.Registered)
	assert.Equal(t, 3, st.Reporting)
	assert.True(t, st.Provisional)
	assert.Nil(t, st.Champion)
}

func TestStandingsService_GetStandings_OnlyPlayed(t *testing.T) {
	db := newFakeDB()
	seedFlat(db)
	svc := newTestStandingsService(db)

	st, err := svc.GetStandings(context.Background(), 1, 10, true)

	require.NoError(t, err)
	assert.Equal(t, []int{2, 1, 3}, rankedIDs(st))
	assert.Equal(t, 4, st.Registered)
}

func TestStandingsService_GetStandings_Errors(t *testing.T) {
	db := newFakeDB()
	seedFlat(db)
	svc := newTestStandingsService(db)

	_, err := svc.GetStandings(context.Background(), 99, 0, false)
	assert.ErrorIs(t, err, ErrTournamentNotFound)

	_, err = svc.GetStandings(context.Background(), 1, 77, false)
	assert.ErrorIs(t, err, scoring.ErrStageNotFound)

	db.listErr = errors.New("connection reset")
	_, err = svc.GetStandings(context.Background(), 1, 0, false)
	assert.ErrorIs(t, err, db.listErr)
}

func TestStandingsService_GetScrimStandings(t *testing.T) {
	db := newFakeDB()
	seedFlat(db)
	db.tournaments[2] = models.Tournament{ID: 2, Name: "Tuesday Scrims", Type: models.TypeScrim}
	db.participants = append(db.participants,
		models.Participant{ID: 21, TournamentID: 2},
		models.Participant{ID: 22, TournamentID: 2},
	)
	db.matches = append(db.matches,
		models.Match{ID: 200, TournamentID: 2, Status: models.MatchStatusCompleted},
		models.Match{ID: 201, TournamentID: 2, Status: models.MatchStatusCompleted},
	)
	db.results = append(db.results,
		models.MatchResult{MatchID: 200, ParticipantID: 21, Placement: 2},
		models.MatchResult{MatchID: 200, ParticipantID: 22, Placement: 1},
		models.MatchResult{MatchID: 201, ParticipantID: 21, Placement: 1, Kills: 4},
		models.MatchResult{MatchID: 201, ParticipantID: 22, Placement: 2},
	)
	svc := newTestStandingsService(db)

	st, err := svc.GetScrimStandings(context.Background(), 2, false)

	require.NoError(t, err)
	assert.True(t, st.Plan.Scrim)
	assert.Equal(t, []int{21, 22}, rankedIDs(st))
	for _, e := range st.Groups[0].Entries {
		assert.False(t, e.Advancing)
	}

	_, err = svc.GetScrimStandings(context.Background(), 1, false)
	assert.ErrorIs(t, err, ErrNotScrim)
}

func TestStandingsService_GetStoredStandings(t *testing.T) {
	db := newFakeDB()
	seedFlat(db)
	db.standings[[2]int{1, 10}] = []models.StageStanding{{ParticipantID: 2, Rank: 1}}
	svc := newTestStandingsService(db)

	rows, err := svc.GetStoredStandings(context.Background(), 1, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].ParticipantID)

	rows, err = svc.GetStoredStandings(context.Background(), 1, 20)
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = svc.GetStoredStandings(context.Background(), 5, 0)
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}
