package config

const (
	// DefaultDatabasePath is the default path for the slots and sessions database
	DefaultDatabasePath = "./bookhub.db"

	// DefaultClientID owns the favorites slot used by the terminal commands
	DefaultClientID = "local"
)

// Slot backends
const (
	SlotBackendDatabase = "database"
	SlotBackendSession  = "session"
)
