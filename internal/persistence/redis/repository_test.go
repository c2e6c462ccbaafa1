package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/meeting-scheduler/internal/persistence"
	"github.com/example/meeting-scheduler/internal/persistence/redis"
	"github.com/example/meeting-scheduler/internal/testfixtures"
)

func setupTestRepository(t *testing.T) *redis.Repository {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	repo, err := redis.NewRepository(redis.Config{
		Addr:      mr.Addr(),
		KeyPrefix: "test:",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	return repo
}

func testRoom(id, name string) persistence.Room {
	return testfixtures.Room(
		testfixtures.WithRoomID(id),
		testfixtures.WithRoomName(name),
		testfixtures.WithRoomLocation("4F"),
		testfixtures.WithRoomCapacity(8),
	)
}

func TestRepository_CreateAndGetRoom(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	room := testRoom("room-1", "Fuji")
	require.NoError(t, repo.CreateRoom(ctx, room))

	got, err := repo.GetRoom(ctx, "room-1")
	require.NoError(t, err)
	assert.Equal(t, room, got)

	_, err = repo.GetRoom(ctx, "missing")
	assert.ErrorIs(t, err, persistence.ErrNotFound)
}

func TestRepository_CreateRoomRejectsDuplicates(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateRoom(ctx, testRoom("room-1", "Fuji")))
	err := repo.CreateRoom(ctx, testRoom("room-1", "Aso"))
	assert.ErrorIs(t, err, persistence.ErrDuplicate)
}

func TestRepository_CreateRoomValidatesCapacity(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	room := testRoom("room-1", "Fuji")
	room.Capacity = 0
	assert.ErrorIs(t, repo.CreateRoom(ctx, room), persistence.ErrConstraintViolation)
}

func TestRepository_ListRoomsPreservesRegistrationOrder(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	for _, id := range []string{"room-3", "room-1", "room-2"} {
		require.NoError(t, repo.CreateRoom(ctx, testRoom(id, id)))
	}

	rooms, err := repo.ListRooms(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 3)
	assert.Equal(t, "room-3", rooms[0].ID)
	assert.Equal(t, "room-1", rooms[1].ID)
	assert.Equal(t, "room-2", rooms[2].ID)
}

func TestRepository_UpdateRoom(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	room := testRoom("room-1", "Fuji")
	require.NoError(t, repo.CreateRoom(ctx, room))

	room.Name = "Fuji (renovated)"
	room.Capacity = 12
	require.NoError(t, repo.UpdateRoom(ctx, room))

	got, err := repo.GetRoom(ctx, "room-1")
	require.NoError(t, err)
	assert.Equal(t, "Fuji (renovated)", got.Name)
	assert.Equal(t, 12, got.Capacity)

	assert.ErrorIs(t, repo.UpdateRoom(ctx, testRoom("missing", "Nowhere")), persistence.ErrNotFound)
}

func TestRepository_DeleteRoom(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateRoom(ctx, testRoom("room-1", "Fuji")))
	require.NoError(t, repo.CreateRoom(ctx, testRoom("room-2", "Aso")))

	require.NoError(t, repo.DeleteRoom(ctx, "room-1"))
	assert.ErrorIs(t, repo.DeleteRoom(ctx, "room-1"), persistence.ErrNotFound)

	rooms, err := repo.ListRooms(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "room-2", rooms[0].ID)
}
