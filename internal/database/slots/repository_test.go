package slots

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookhub/internal/entities"
	"github.com/mrlokans/bookhub/internal/favorites"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	dbPath := "./test_slots_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.Slot{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, cleanup
}

func TestRepository_SetSlot_New(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	err := repo.SetSlot(ctx, "client-a", "bookhub:favs", []byte(`[]`))
	require.NoError(t, err)

	slot, err := repo.GetSlot(ctx, "client-a", "bookhub:favs")
	require.NoError(t, err)
	assert.Equal(t, "client-a", slot.ClientID)
	assert.Equal(t, "bookhub:favs", slot.Key)
	assert.Equal(t, `[]`, string(slot.Value))
}

func TestRepository_SetSlot_Overwrite(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, repo.SetSlot(ctx, "client-a", "k", []byte("first")))
	require.NoError(t, repo.SetSlot(ctx, "client-a", "k", []byte("second")))

	slot, err := repo.GetSlot(ctx, "client-a", "k")
	require.NoError(t, err)
	assert.Equal(t, "second", string(slot.Value))

	var count int64
	require.NoError(t, repo.db.Model(&entities.Slot{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRepository_ClientsAreIsolated(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, repo.SetSlot(ctx, "client-a", "k", []byte("a")))
	require.NoError(t, repo.SetSlot(ctx, "client-b", "k", []byte("b")))

	a, err := repo.GetSlot(ctx, "client-a", "k")
	require.NoError(t, err)
	b, err := repo.GetSlot(ctx, "client-b", "k")
	require.NoError(t, err)

	assert.Equal(t, "a", string(a.Value))
	assert.Equal(t, "b", string(b.Value))

	count, err := repo.CountClients(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestRepository_GetSlot_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.GetSlot(context.Background(), "client-a", "nonexistent")

	assert.Error(t, err)
}

func TestRepository_DeleteSlot(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, repo.SetSlot(ctx, "client-a", "to-delete", []byte("value")))
	require.NoError(t, repo.DeleteSlot(ctx, "client-a", "to-delete"))

	_, err := repo.GetSlot(ctx, "client-a", "to-delete")
	assert.Error(t, err)

	// Should not error even if key doesn't exist
	assert.NoError(t, repo.DeleteSlot(ctx, "client-a", "nonexistent"))
}

func TestClientKV(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	kv := repo.ForClient("client-a")

	_, err := kv.Get(ctx, "bookhub:favs")
	assert.True(t, errors.Is(err, favorites.ErrSlotMissing))

	require.NoError(t, kv.Set(ctx, "bookhub:favs", []byte(`[{"title":"Dune","author":"Frank Herbert","cover":""}]`)))

	data, err := kv.Get(ctx, "bookhub:favs")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"title":"Dune","author":"Frank Herbert","cover":""}]`, string(data))
}

func TestClientKV_BacksFavoritesStore(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	store := favorites.NewStore(repo.ForClient("client-a"), entities.SlotKeyFavorites)
	store.Load(ctx)

	dune := entities.Book{Title: "Dune", Author: "Frank Herbert"}
	_, err := store.Toggle(ctx, dune)
	require.NoError(t, err)

	reloaded := favorites.NewStore(repo.ForClient("client-a"), entities.SlotKeyFavorites)
	reloaded.Load(ctx)
	assert.Equal(t, []entities.Book{dune}, reloaded.Books())

	other := favorites.NewStore(repo.ForClient("client-b"), entities.SlotKeyFavorites)
	other.Load(ctx)
	assert.Equal(t, 0, other.Len())
}
