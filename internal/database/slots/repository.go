// Package slots provides database operations for client-local key-value slots.
//
// Every client owns its own key namespace, so two clients writing the same key
// never see each other's values.
//
// # Interface Implementation
//
//	var _ favorites.KV = (*ClientKV)(nil)
//
// # Usage
//
//	repo := slots.NewRepository(db)
//	kv := repo.ForClient("4f1c...")
//	store := favorites.NewStore(kv, entities.SlotKeyFavorites)
package slots

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/bookhub/internal/entities"
	"github.com/mrlokans/bookhub/internal/favorites"
)

var _ favorites.KV = (*ClientKV)(nil)

// Repository handles all slot database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new slots repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetSlot retrieves a slot by client and key.
func (r *Repository) GetSlot(ctx context.Context, clientID, key string) (*entities.Slot, error) {
	var slot entities.Slot
	err := r.db.WithContext(ctx).
		Where("client_id = ? AND key = ?", clientID, key).
		First(&slot).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// SetSlot creates or overwrites a slot.
func (r *Repository) SetSlot(ctx context.Context, clientID, key string, value []byte) error {
	slot := entities.Slot{
		ClientID: clientID,
		Key:      key,
		Value:    value,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "client_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&slot).Error
}

// DeleteSlot removes a slot. Deleting a missing slot is not an error.
func (r *Repository) DeleteSlot(ctx context.Context, clientID, key string) error {
	return r.db.WithContext(ctx).
		Where("client_id = ? AND key = ?", clientID, key).
		Delete(&entities.Slot{}).Error
}

// CountClients returns how many distinct clients have at least one slot.
func (r *Repository) CountClients(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Slot{}).
		Distinct("client_id").
		Count(&count).Error
	return count, err
}

// ForClient returns a KV view scoped to one client.
func (r *Repository) ForClient(clientID string) *ClientKV {
	return &ClientKV{repo: r, clientID: clientID}
}

// ClientKV adapts the repository to favorites.KV for a single client.
type ClientKV struct {
	repo     *Repository
	clientID string
}

func (kv *ClientKV) Get(ctx context.Context, key string) ([]byte, error) {
	slot, err := kv.repo.GetSlot(ctx, kv.clientID, key)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, favorites.ErrSlotMissing
	}
	if err != nil {
		return nil, err
	}
	return slot.Value, nil
}

func (kv *ClientKV) Set(ctx context.Context, key string, value []byte) error {
	return kv.repo.SetSlot(ctx, kv.clientID, key, value)
}
