package repositories

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/Dosada05/br-standings/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingDriver is a database/sql driver that accepts every statement and
// records it, so the SQL a repository issues can be checked without Postgres.
type recordingDriver struct {
	mu         sync.Mutex
	statements []string
	commits    int
	rollbacks  int
}

func (d *recordingDriver) record(q string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.statements = append(d.statements, strings.Join(strings.Fields(q), " "))
}

func (d *recordingDriver) Open(string) (driver.Conn, error) { return &recordingConn{d: d}, nil }

type recordingConn struct{ d *recordingDriver }

func (c *recordingConn) Prepare(query string) (driver.Stmt, error) {
	return &recordingStmt{d: c.d, query: query}, nil
}
func (c *recordingConn) Close() error              { return nil }
func (c *recordingConn) Begin() (driver.Tx, error) { return &recordingTx{d: c.d}, nil }

type recordingTx struct{ d *recordingDriver }

func (t *recordingTx) Commit() error {
	t.d.mu.Lock()
	defer t.d.mu.Unlock()
	t.d.commits++
	return nil
}

func (t *recordingTx) Rollback() error {
	t.d.mu.Lock()
	defer t.d.mu.Unlock()
	t.d.rollbacks++
	return nil
}

type recordingStmt struct {
	d     *recordingDriver
	query string
}

func (s *recordingStmt) Close() error  { return nil }
func (s *recordingStmt) NumInput() int { return -1 }

func (s *recordingStmt) Exec([]driver.Value) (driver.Result, error) {
	s.d.record(s.query)
	return driver.RowsAffected(1), nil
}

func (s *recordingStmt) Query([]driver.Value) (driver.Rows, error) {
	s.d.record(s.query)
	return &idRows{}, nil
}

// idRows yields a single row holding id 1.
type idRows struct{ done bool }

func (r *idRows) Columns() []string { return []string{"id"} }
func (r *idRows) Close() error      { return nil }

func (r *idRows) Next(dest []driver.Value) error {
	if r.done {
		return io.EOF
	}
	r.done = true
	dest[0] = int64(1)
	return nil
}

var (
	recorder     = &recordingDriver{}
	registerOnce sync.Once
)

func openRecordingDB(t *testing.T) *sql.DB {
	t.Helper()
	registerOnce.Do(func() { sql.Register("recording", recorder) })
	recorder.mu.Lock()
	recorder.statements, recorder.commits, recorder.rollbacks = nil, 0, 0
	recorder.mu.Unlock()

	db, err := sql.Open("recording", "")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestStandingRepository_ReplaceForStageLocksStageFirst(t *testing.T) {
	db := openRecordingDB(t)
	repo := NewPostgresStandingRepository(db)

	rows := []models.StageStanding{
		{ParticipantID: 2, GroupLabel: "A", Rank: 1, TotalPoints: 49},
		{ParticipantID: 1, GroupLabel: "A", Rank: 2, TotalPoints: 38},
	}
	require.NoError(t, repo.ReplaceForStage(context.Background(), nil, 7, 3, rows))

	require.Len(t, recorder.statements, 4)
	assert.Contains(t, recorder.statements[0], "pg_advisory_xact_lock")
	assert.True(t, strings.HasPrefix(recorder.statements[1], "DELETE FROM stage_standings"))
	assert.True(t, strings.HasPrefix(recorder.statements[2], "INSERT INTO stage_standings"))
	assert.Equal(t, 1, recorder.commits)
	assert.Zero(t, recorder.rollbacks)

	for _, r := range rows {
		assert.Equal(t, 7, r.TournamentID)
		assert.Equal(t, 3, r.StageID)
		assert.False(t, r.UpdatedAt.IsZero())
	}
}

func TestStandingRepository_ReplaceForStageInCallerTx(t *testing.T) {
	db := openRecordingDB(t)
	repo := NewPostgresStandingRepository(db)

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	require.NoError(t, repo.ReplaceForStage(context.Background(), tx, 7, 3, nil))

	// The caller owns the transaction.
	assert.Zero(t, recorder.commits)
	require.Len(t, recorder.statements, 2)
	assert.Contains(t, recorder.statements[0], "pg_advisory_xact_lock")
	require.NoError(t, tx.Commit())
}
