package repository

import (
	"context"
	"testing"
	"time"

	"github.com/KlimZavadski/granica-bot/internal/domain/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSessionRepo(t *testing.T) (*miniredis.Miniredis, *RedisSessionRepository) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, &RedisSessionRepository{client: client, ttl: time.Hour}
}

func TestSessionSaveGetRoundTrip(t *testing.T) {
	_, repo := setupSessionRepo(t)
	ctx := context.Background()

	saved := &entity.Session{
		UserID:          42,
		ChatID:          42,
		State:           entity.StateChoosingTimezone,
		CarrierID:       3,
		CarrierName:     "Intercars",
		DepartureDate:   "2024-11-27",
		DepartureTime:   "20:00",
		Timezone:        "Europe/Minsk",
		JourneyID:       "journey-1",
		CheckpointIDs:   []uint{1, 2, 3, 4, 5, 6, 7},
		CheckpointIndex: 2,
		ReferenceUTC:    time.Date(2024, 11, 27, 17, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Save(ctx, saved))

	loaded, err := repo.Get(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, saved.State, loaded.State)
	assert.Equal(t, saved.CarrierID, loaded.CarrierID)
	assert.Equal(t, saved.DepartureDate, loaded.DepartureDate)
	assert.Equal(t, saved.CheckpointIDs, loaded.CheckpointIDs)
	assert.Equal(t, saved.CheckpointIndex, loaded.CheckpointIndex)
	assert.True(t, saved.ReferenceUTC.Equal(loaded.ReferenceUTC))
	assert.False(t, loaded.CreatedAt.IsZero())
}

func TestSessionGetMissingReturnsNil(t *testing.T) {
	_, repo := setupSessionRepo(t)

	session, err := repo.Get(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestSessionDelete(t *testing.T) {
	_, repo := setupSessionRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &entity.Session{UserID: 42, State: entity.StateChoosingCarrier}))
	require.NoError(t, repo.Delete(ctx, 42))

	session, err := repo.Get(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, session)

	// Deleting an absent session is not an error
	require.NoError(t, repo.Delete(ctx, 42))
}

func TestSessionExpiresWithTTL(t *testing.T) {
	mr, repo := setupSessionRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &entity.Session{UserID: 42, State: entity.StateChoosingCarrier}))

	mr.FastForward(2 * time.Hour)

	session, err := repo.Get(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, session)
}
