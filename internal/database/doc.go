// Package database provides the data access layer for the application.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup and migrations
//	└── slots/           # Client-local key-value slots
//
// # Using Sub-packages
//
//	db, err := database.NewDatabase("./bookhub.db", logger.Warn)
//	slotsRepo := slots.NewRepository(db.DB)
//	kv := slotsRepo.ForClient(clientID)
//
// # Interface Implementations
//
//   - slots.ClientKV: implements favorites.KV
package database
