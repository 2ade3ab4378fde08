package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"chatroom_backend/internal/models"
	"chatroom_backend/internal/repositories"
	"chatroom_backend/internal/repositories/badgerstore"
	"chatroom_backend/internal/repositories/mocks"
	"chatroom_backend/internal/services"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newStore(t *testing.T) repositories.Store {
	t.Helper()
	db, err := badgerstore.Open("", true)
	require.NoError(t, err)
	store, err := badgerstore.NewStore(db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestInactivityWorker_SweepEvictsStaleParticipants(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := newStore(t)
	clock := &testClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	svc := services.NewParticipantService(store.Participants, store.Messages, nil, clock.Now)

	_, err := svc.Register(ctx, "Alice")
	req.NoError(err)
	clock.Advance(8 * time.Second)
	_, err = svc.Register(ctx, "Bob")
	req.NoError(err)
	clock.Advance(3 * time.Second)

	worker := NewInactivityWorker(svc, 15*time.Second, 10*time.Second, clock.Now)
	result := worker.Sweep(ctx)
	req.Equal(SweepResult{Checked: 2, Evicted: 1}, result)

	participants, err := store.Participants.FindAll(ctx)
	req.NoError(err)
	req.Len(participants, 1)
	req.Equal("Bob", participants[0].Name)

	messages, err := store.Messages.FindAll(ctx)
	req.NoError(err)
	last := messages[len(messages)-1]
	req.Equal("Alice", last.From)
	req.Equal(models.BroadcastTarget, last.To)
	req.Equal(models.MessageTypeStatus, last.Type)
	req.Equal(models.StatusTextLeft, last.Text)
	req.Equal("12:00:11", last.Time)
}

func TestInactivityWorker_SweepAgreesWithStoreBelowMillisecond(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := newStore(t)
	clock := &testClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	svc := services.NewParticipantService(store.Participants, store.Messages, nil, clock.Now)
	worker := NewInactivityWorker(svc, 15*time.Second, 10*time.Second, clock.Now)

	_, err := svc.Register(ctx, "Alice")
	req.NoError(err)

	clock.Advance(10 * time.Second)
	req.Equal(SweepResult{Checked: 1}, worker.Sweep(ctx))

	clock.Advance(500 * time.Microsecond)
	req.Equal(SweepResult{Checked: 1, Evicted: 1}, worker.Sweep(ctx))

	participants, err := store.Participants.FindAll(ctx)
	req.NoError(err)
	req.Empty(participants)
}

func TestInactivityWorker_HeartbeatKeepsParticipant(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := newStore(t)
	clock := &testClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	svc := services.NewParticipantService(store.Participants, store.Messages, nil, clock.Now)

	_, err := svc.Register(ctx, "Alice")
	req.NoError(err)
	clock.Advance(9 * time.Second)
	req.NoError(svc.Heartbeat(ctx, "Alice"))
	clock.Advance(9 * time.Second)

	result := NewInactivityWorker(svc, time.Second, 10*time.Second, clock.Now).Sweep(ctx)
	req.Equal(0, result.Evicted)

	active, err := svc.IsActive(ctx, "Alice")
	req.NoError(err)
	req.True(active)
}

func TestInactivityWorker_ListFailureAbortsPass(t *testing.T) {
	ctrl := gomock.NewController(t)
	participants := mocks.NewMockParticipantRepository(ctrl)
	svc := services.NewParticipantService(participants, mocks.NewMockMessageRepository(ctrl), nil, nil)

	participants.EXPECT().FindAll(gomock.Any()).Return(nil, errors.New("down"))

	result := NewInactivityWorker(svc, time.Second, time.Second, nil).Sweep(context.Background())
	require.Equal(t, SweepResult{}, result)
}

func TestInactivityWorker_ContinuesAfterParticipantFailure(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	participants := mocks.NewMockParticipantRepository(ctrl)
	messages := mocks.NewMockMessageRepository(ctrl)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	svc := services.NewParticipantService(participants, messages, nil, clock)

	stale := now.Add(-time.Minute).UnixMilli()
	participants.EXPECT().FindAll(gomock.Any()).Return([]models.Participant{
		{Name: "Alice", LastStatus: stale},
		{Name: "Bob", LastStatus: stale},
	}, nil)
	participants.EXPECT().DeleteIdle(gomock.Any(), "Alice", gomock.Any()).Return(false, errors.New("boom"))
	participants.EXPECT().DeleteIdle(gomock.Any(), "Bob", gomock.Any()).Return(true, nil)
	messages.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	result := NewInactivityWorker(svc, time.Second, 10*time.Second, clock).Sweep(context.Background())
	req.Equal(SweepResult{Checked: 2, Evicted: 1, Failed: 1}, result)
}

func TestInactivityWorker_StartStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	participants := mocks.NewMockParticipantRepository(ctrl)
	svc := services.NewParticipantService(participants, mocks.NewMockMessageRepository(ctrl), nil, nil)

	swept := make(chan struct{}, 1)
	participants.EXPECT().FindAll(gomock.Any()).DoAndReturn(func(context.Context) ([]models.Participant, error) {
		select {
		case swept <- struct{}{}:
		default:
		}
		return nil, nil
	}).MinTimes(1)

	worker := NewInactivityWorker(svc, 10*time.Millisecond, time.Second, nil)
	worker.Start(context.Background())
	worker.Start(context.Background())

	select {
	case <-swept:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not sweep")
	}

	worker.Stop()
	worker.Stop()
}
