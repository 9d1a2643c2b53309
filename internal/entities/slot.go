package entities

import (
	"time"
)

// Slot is one client-local key-value entry. Each client owns its own
// namespace of keys.
type Slot struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ClientID  string    `gorm:"uniqueIndex:idx_slot_client_key;size:64" json:"client_id"`
	Key       string    `gorm:"uniqueIndex:idx_slot_client_key;size:100" json:"key"`
	Value     []byte    `gorm:"type:blob" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Slot) TableName() string {
	return "slots"
}

// Known slot keys
const (
	SlotKeyFavorites = "bookhub:favs"
)
