package realtime

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func TestTournamentRoom(t *testing.T) {
	assert.Equal(t, "tournament_42", TournamentRoom(42))
}

func TestHub_NotifyStandings(t *testing.T) {
	hub := newTestHub(t)

	subscriber := hub.NewClient(nil, TournamentRoom(7))
	other := hub.NewClient(nil, TournamentRoom(8))
	hub.Register <- subscriber
	hub.Register <- other
	require.Eventually(t, func() bool { return hub.RoomSize(TournamentRoom(7)) == 1 }, time.Second, 5*time.Millisecond)

	hub.NotifyStandings(InvalidationPayload{TournamentID: 7, StageID: 2, MatchID: 11})

	select {
	case raw := <-subscriber.Send:
		var msg struct {
			Type    string              `json:"type"`
			RoomID  string              `json:"room_id"`
			Payload InvalidationPayload `json:"payload"`
		}
		require.NoError(t, json.Unmarshal(raw, &msg))
		assert.Equal(t, MessageStandingsInvalidated, msg.Type)
		assert.Equal(t, "tournament_7", msg.RoomID)
		assert.Equal(t, 2, msg.Payload.StageID)
		assert.Equal(t, 11, msg.Payload.MatchID)
	case <-time.After(time.Second):
		t.Fatal("subscriber did not receive the invalidation")
	}
	assert.Empty(t, other.Send)
}

func TestHub_UnregisterClosesSendAndRoom(t *testing.T) {
	hub := newTestHub(t)
	room := TournamentRoom(3)

	client := hub.NewClient(nil, room)
	hub.Register <- client
	hub.Unregister <- client

	require.Eventually(t, func() bool { return hub.RoomSize(room) == 0 }, time.Second, 5*time.Millisecond)
	_, open := <-client.Send
	assert.False(t, open)

	// Broadcasting to an empty room is a no-op.
	hub.NotifyStandings(InvalidationPayload{TournamentID: 3})
}

func TestHub_RunStopsOnContextCancel(t *testing.T) {
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()

	client := hub.NewClient(nil, TournamentRoom(1))
	hub.Register <- client
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}
	_, open := <-client.Send
	assert.False(t, open)
	assert.Zero(t, hub.RoomSize(TournamentRoom(1)))
}

func TestHub_SubscribeAfterStop(t *testing.T) {
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()

	assert.True(t, hub.Subscribe(hub.NewClient(nil, TournamentRoom(2))))
	cancel()
	<-done

	subscribed := make(chan bool, 1)
	go func() { subscribed <- hub.Subscribe(hub.NewClient(nil, TournamentRoom(2))) }()

	select {
	case ok := <-subscribed:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("Subscribe blocked on a stopped hub")
	}
	assert.Zero(t, hub.RoomSize(TournamentRoom(2)))
}
