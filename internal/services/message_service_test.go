package services

import (
	"context"
	"errors"
	"testing"

	"chatroom_backend/internal/models"
	"chatroom_backend/internal/repositories"
	"chatroom_backend/internal/repositories/mocks"
	"chatroom_backend/internal/services/dto"
	"chatroom_backend/pkg/apperrors"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type messageServiceFixture struct {
	participants *mocks.MockParticipantRepository
	messages     *mocks.MockMessageRepository
	publisher    *recordingPublisher
	svc          MessageService
}

func newMessageServiceFixture(t *testing.T) *messageServiceFixture {
	ctrl := gomock.NewController(t)
	f := &messageServiceFixture{
		participants: mocks.NewMockParticipantRepository(ctrl),
		messages:     mocks.NewMockMessageRepository(ctrl),
		publisher:    &recordingPublisher{},
	}
	registry := NewParticipantService(f.participants, f.messages, nil, fixedClock)
	f.svc = NewMessageService(f.messages, registry, NewVisibilityFilter(false), f.publisher, fixedClock)
	return f
}

func (f *messageServiceFixture) active(name string) {
	f.participants.EXPECT().FindByName(gomock.Any(), name).Return(&models.Participant{Name: name}, nil)
}

func TestMessageService_Create(t *testing.T) {
	req := require.New(t)
	f := newMessageServiceFixture(t)

	f.active("Alice")
	f.messages.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, m *models.Message) error {
			m.ID = "m1"
			return nil
		})
	f.participants.EXPECT().Touch(gomock.Any(), "Alice", fixedNow).Return(nil)

	m, err := f.svc.Create(context.Background(), "Alice", &dto.MessageRequest{To: "Todos", Text: "hi", Type: models.MessageTypeMessage})
	req.NoError(err)
	req.Equal("m1", m.ID)
	req.Equal("Alice", m.From)
	req.Equal("13:45:10", m.Time)
	req.Len(f.publisher.events, 1)
}

func TestMessageService_Create_InactiveSender(t *testing.T) {
	req := require.New(t)
	f := newMessageServiceFixture(t)

	f.participants.EXPECT().FindByName(gomock.Any(), "Ghost").Return(nil, repositories.ErrParticipantNotFound)

	_, err := f.svc.Create(context.Background(), "Ghost", &dto.MessageRequest{To: "Todos", Text: "hi", Type: models.MessageTypeMessage})
	req.ErrorIs(err, apperrors.ErrInactiveSender)
	req.Empty(f.publisher.events)

	_, err = f.svc.Create(context.Background(), "", &dto.MessageRequest{To: "Todos", Text: "hi", Type: models.MessageTypeMessage})
	req.ErrorIs(err, apperrors.ErrInactiveSender)
}

// stubRegistry отвечает на IsActive заранее заданным значением
// и запоминает, кто продлевал присутствие
type stubRegistry struct {
	ParticipantService
	active     bool
	err        error
	heartbeats []string
}

func (r *stubRegistry) IsActive(context.Context, string) (bool, error) {
	return r.active, r.err
}

func (r *stubRegistry) Heartbeat(_ context.Context, name string) error {
	r.heartbeats = append(r.heartbeats, name)
	return nil
}

func TestMessageService_SenderCheckGoesThroughRegistry(t *testing.T) {
	body := &dto.MessageRequest{To: "Todos", Text: "hi", Type: models.MessageTypeMessage}

	t.Run("inactive", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		registry := &stubRegistry{active: false}
		svc := NewMessageService(mocks.NewMockMessageRepository(ctrl), registry, NewVisibilityFilter(false), nil, fixedClock)

		_, err := svc.Create(context.Background(), "Alice", body)
		require.ErrorIs(t, err, apperrors.ErrInactiveSender)
		_, err = svc.Update(context.Background(), "Alice", "m1", body)
		require.ErrorIs(t, err, apperrors.ErrInactiveSender)
		require.Empty(t, registry.heartbeats)
	})

	t.Run("registry failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		registry := &stubRegistry{err: apperrors.DatabaseError(errors.New("down"))}
		svc := NewMessageService(mocks.NewMockMessageRepository(ctrl), registry, NewVisibilityFilter(false), nil, fixedClock)

		_, err := svc.Create(context.Background(), "Alice", body)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		require.Equal(t, 500, appErr.HTTPCode)
	})

	t.Run("active sender is refreshed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		messages := mocks.NewMockMessageRepository(ctrl)
		registry := &stubRegistry{active: true}
		svc := NewMessageService(messages, registry, NewVisibilityFilter(false), nil, fixedClock)

		messages.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		_, err := svc.Create(context.Background(), "Alice", body)
		require.NoError(t, err)
		require.Equal(t, []string{"Alice"}, registry.heartbeats)
	})
}

func TestMessageService_Create_TouchFailureIsIgnored(t *testing.T) {
	f := newMessageServiceFixture(t)

	f.active("Alice")
	f.messages.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	f.participants.EXPECT().Touch(gomock.Any(), "Alice", gomock.Any()).Return(errors.New("boom"))

	_, err := f.svc.Create(context.Background(), "Alice", &dto.MessageRequest{To: "Todos", Text: "hi", Type: models.MessageTypeMessage})
	require.NoError(t, err)
}

func TestMessageService_Update(t *testing.T) {
	req := require.New(t)
	f := newMessageServiceFixture(t)

	f.active("Alice")
	f.messages.EXPECT().FindByID(gomock.Any(), "m1").Return(&models.Message{ID: "m1", From: "Alice", To: "Todos", Type: models.MessageTypeMessage}, nil)
	f.messages.EXPECT().Update(gomock.Any(), "m1", models.MessageUpdate{
		To: "Bob", Text: "edited", Type: models.MessageTypePrivateMessage, Time: "13:45:10",
	}).Return(&models.Message{ID: "m1", From: "Alice", To: "Bob", Text: "edited", Type: models.MessageTypePrivateMessage, Time: "13:45:10"}, nil)
	f.participants.EXPECT().Touch(gomock.Any(), "Alice", fixedNow).Return(nil)

	m, err := f.svc.Update(context.Background(), "Alice", "m1", &dto.MessageRequest{To: "Bob", Text: "edited", Type: models.MessageTypePrivateMessage})
	req.NoError(err)
	req.Equal("m1", m.ID)
	req.Equal("Alice", m.From)
	req.Equal("edited", m.Text)
	req.Equal(models.FeedEventUpdated, f.publisher.events[0].Event)
}

func TestMessageService_Update_Ordering(t *testing.T) {
	body := &dto.MessageRequest{To: "Todos", Text: "x", Type: models.MessageTypeMessage}

	t.Run("inactive sender before existence", func(t *testing.T) {
		f := newMessageServiceFixture(t)
		f.participants.EXPECT().FindByName(gomock.Any(), "Ghost").Return(nil, repositories.ErrParticipantNotFound)
		_, err := f.svc.Update(context.Background(), "Ghost", "missing", body)
		require.ErrorIs(t, err, apperrors.ErrInactiveSender)
	})

	t.Run("missing message", func(t *testing.T) {
		f := newMessageServiceFixture(t)
		f.active("Bob")
		f.messages.EXPECT().FindByID(gomock.Any(), "missing").Return(nil, repositories.ErrMessageNotFound)
		_, err := f.svc.Update(context.Background(), "Bob", "missing", body)
		require.ErrorIs(t, err, apperrors.ErrMessageNotFound)
	})

	t.Run("not owner", func(t *testing.T) {
		f := newMessageServiceFixture(t)
		f.active("Bob")
		f.messages.EXPECT().FindByID(gomock.Any(), "m1").Return(&models.Message{ID: "m1", From: "Alice"}, nil)
		_, err := f.svc.Update(context.Background(), "Bob", "m1", body)
		require.ErrorIs(t, err, apperrors.ErrNotMessageOwner)
	})

	t.Run("status message is system owned", func(t *testing.T) {
		f := newMessageServiceFixture(t)
		f.active("Alice")
		f.messages.EXPECT().FindByID(gomock.Any(), "s1").Return(&models.Message{ID: "s1", From: "Alice", Type: models.MessageTypeStatus}, nil)
		_, err := f.svc.Update(context.Background(), "Alice", "s1", body)
		require.ErrorIs(t, err, apperrors.ErrNotMessageOwner)
	})
}

func TestMessageService_Delete(t *testing.T) {
	t.Run("missing before ownership", func(t *testing.T) {
		f := newMessageServiceFixture(t)
		f.messages.EXPECT().FindByID(gomock.Any(), "missing").Return(nil, repositories.ErrMessageNotFound)
		require.ErrorIs(t, f.svc.Delete(context.Background(), "Bob", "missing"), apperrors.ErrMessageNotFound)
	})

	t.Run("not owner", func(t *testing.T) {
		f := newMessageServiceFixture(t)
		f.messages.EXPECT().FindByID(gomock.Any(), "m1").Return(&models.Message{ID: "m1", From: "Alice"}, nil)
		require.ErrorIs(t, f.svc.Delete(context.Background(), "Bob", "m1"), apperrors.ErrNotMessageOwner)
	})

	t.Run("owner deletes", func(t *testing.T) {
		f := newMessageServiceFixture(t)
		f.messages.EXPECT().FindByID(gomock.Any(), "m1").Return(&models.Message{ID: "m1", From: "Alice"}, nil)
		f.messages.EXPECT().Delete(gomock.Any(), "m1").Return(nil)
		require.NoError(t, f.svc.Delete(context.Background(), "Alice", "m1"))
		require.Equal(t, models.FeedEventDeleted, f.publisher.events[0].Event)
	})

	t.Run("concurrent delete wins", func(t *testing.T) {
		f := newMessageServiceFixture(t)
		f.messages.EXPECT().FindByID(gomock.Any(), "m1").Return(&models.Message{ID: "m1", From: "Alice"}, nil)
		f.messages.EXPECT().Delete(gomock.Any(), "m1").Return(repositories.ErrMessageNotFound)
		require.ErrorIs(t, f.svc.Delete(context.Background(), "Alice", "m1"), apperrors.ErrMessageNotFound)
	})
}

func TestMessageService_List(t *testing.T) {
	req := require.New(t)
	f := newMessageServiceFixture(t)

	f.messages.EXPECT().FindAll(gomock.Any()).Return([]models.Message{
		{ID: "m1", From: "Alice", To: "Todos", Type: models.MessageTypeMessage},
		{ID: "p1", From: "Alice", To: "Bob", Type: models.MessageTypePrivateMessage},
		{ID: "m2", From: "Bob", To: "Todos", Type: models.MessageTypeMessage},
	}, nil)

	list, err := f.svc.List(context.Background(), "Carol", 0)
	req.NoError(err)
	req.Equal([]string{"m1", "m2"}, ids(list))
}

func TestMessageService_List_StorageError(t *testing.T) {
	f := newMessageServiceFixture(t)
	f.messages.EXPECT().FindAll(gomock.Any()).Return(nil, errors.New("down"))

	_, err := f.svc.List(context.Background(), "Carol", 0)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	require.Equal(t, 500, appErr.HTTPCode)
}
