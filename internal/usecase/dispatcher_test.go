package usecase

import (
	"context"
	"testing"

	"github.com/KlimZavadski/granica-bot/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUpdateRepo struct {
	mock.Mock
}

func (m *mockUpdateRepo) Save(ctx context.Context, update *entity.Update) error {
	args := m.Called(ctx, update)
	return args.Error(0)
}

func (m *mockUpdateRepo) FindUnprocessed(ctx context.Context, limit int) ([]*entity.Update, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Update), args.Error(1)
}

func (m *mockUpdateRepo) MarkProcessed(ctx context.Context, updateID string, status string, errorDetail string) error {
	args := m.Called(ctx, updateID, status, errorDetail)
	return args.Error(0)
}

func newDispatcherFixture(t *testing.T) (*conversationFixture, *mockUpdateRepo, *UpdateDispatcher) {
	t.Helper()
	f := newConversationFixture(t)
	updateRepo := new(mockUpdateRepo)
	dispatcher := NewUpdateDispatcher(updateRepo, f.conversation, testMetrics, testLogger{})
	return f, updateRepo, dispatcher
}

func TestDispatchMarksCompleted(t *testing.T) {
	_, updateRepo, dispatcher := newDispatcherFixture(t)

	updateRepo.On("Save", mock.Anything, mock.AnythingOfType("*entity.Update")).Return(nil)
	updateRepo.On("MarkProcessed", mock.Anything, "u-1", entity.StatusCompleted, "").Return(nil)

	replies, err := dispatcher.Dispatch(context.Background(), &entity.Update{
		UpdateID: "u-1",
		UserID:   42,
		Kind:     entity.UpdateCommand,
		Text:     "/start",
	})
	require.NoError(t, err)
	require.Len(t, replies, 1)
	updateRepo.AssertExpectations(t)
}

func TestDispatchMarksSkippedOnDuplicateJourney(t *testing.T) {
	f, updateRepo, dispatcher := newDispatcherFixture(t)

	f.journeyRepo.On("GetUserActiveJourney", mock.Anything, int64(42)).
		Return(&entity.Journey{ID: "journey-1", UserID: 42}, nil)
	updateRepo.On("Save", mock.Anything, mock.AnythingOfType("*entity.Update")).Return(nil)
	updateRepo.On("MarkProcessed", mock.Anything, "u-2", entity.StatusSkipped, mock.AnythingOfType("string")).Return(nil)

	replies, err := dispatcher.Dispatch(context.Background(), &entity.Update{
		UpdateID: "u-2",
		UserID:   42,
		Kind:     entity.UpdateCommand,
		Text:     "/new",
	})
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0].Text, "already have an active journey")
	updateRepo.AssertExpectations(t)
}

func TestDispatchMarksFailedOnStoreError(t *testing.T) {
	f, updateRepo, dispatcher := newDispatcherFixture(t)

	f.journeyRepo.On("GetUserActiveJourney", mock.Anything, int64(42)).
		Return(nil, assert.AnError)
	updateRepo.On("Save", mock.Anything, mock.AnythingOfType("*entity.Update")).Return(nil)
	updateRepo.On("MarkProcessed", mock.Anything, "u-3", entity.StatusFailed, mock.AnythingOfType("string")).Return(nil)

	replies, err := dispatcher.Dispatch(context.Background(), &entity.Update{
		UpdateID: "u-3",
		UserID:   42,
		Kind:     entity.UpdateCommand,
		Text:     "/new",
	})
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0].Text, "Something went wrong")
	updateRepo.AssertExpectations(t)
}

func TestDispatchSkipsUnknownKind(t *testing.T) {
	_, updateRepo, dispatcher := newDispatcherFixture(t)

	updateRepo.On("Save", mock.Anything, mock.AnythingOfType("*entity.Update")).Return(nil)
	updateRepo.On("MarkProcessed", mock.Anything, "u-4", entity.StatusSkipped, mock.AnythingOfType("string")).Return(nil)

	replies, err := dispatcher.Dispatch(context.Background(), &entity.Update{
		UpdateID: "u-4",
		UserID:   42,
		Kind:     "sticker",
	})
	require.NoError(t, err)
	assert.Empty(t, replies)
	updateRepo.AssertExpectations(t)
}

func TestRecoverPendingRedispatchesWithoutRelogging(t *testing.T) {
	_, updateRepo, dispatcher := newDispatcherFixture(t)

	pending := []*entity.Update{
		{UpdateID: "u-6", UserID: 42, Kind: entity.UpdateCommand, Text: "/start", ProcessStatus: entity.StatusPending},
		{UpdateID: "u-7", UserID: 43, Kind: entity.UpdateCommand, Text: "/start", ProcessStatus: entity.StatusPending},
	}
	updateRepo.On("FindUnprocessed", mock.Anything, 100).Return(pending, nil)
	updateRepo.On("MarkProcessed", mock.Anything, "u-6", entity.StatusCompleted, "").Return(nil)
	updateRepo.On("MarkProcessed", mock.Anything, "u-7", entity.StatusCompleted, "").Return(nil)

	n, err := dispatcher.RecoverPending(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// Recovery replays already-logged updates, it must not insert them again
	updateRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	updateRepo.AssertExpectations(t)
}

func TestRecoverPendingNothingToDo(t *testing.T) {
	_, updateRepo, dispatcher := newDispatcherFixture(t)

	updateRepo.On("FindUnprocessed", mock.Anything, 100).Return([]*entity.Update{}, nil)

	n, err := dispatcher.RecoverPending(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestDispatchProcessesDespiteLogFailure(t *testing.T) {
	_, updateRepo, dispatcher := newDispatcherFixture(t)

	updateRepo.On("Save", mock.Anything, mock.AnythingOfType("*entity.Update")).Return(assert.AnError)
	updateRepo.On("MarkProcessed", mock.Anything, "u-5", entity.StatusCompleted, "").Return(nil)

	replies, err := dispatcher.Dispatch(context.Background(), &entity.Update{
		UpdateID: "u-5",
		UserID:   42,
		Kind:     entity.UpdateCommand,
		Text:     "/start",
	})
	require.NoError(t, err)
	require.Len(t, replies, 1)
}
