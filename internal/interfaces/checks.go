package interfaces

// Compile-time checks that concrete types satisfy the interfaces they are
// wired through.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"time"

	"github.com/peterh/liner"

	"github.com/mrlokans/bookhub/internal/database/slots"
	"github.com/mrlokans/bookhub/internal/favorites"
	"github.com/mrlokans/bookhub/internal/reveal"
	"github.com/mrlokans/bookhub/internal/sessions"
	"github.com/mrlokans/bookhub/internal/shell"
)

// Favorites slot backends
var _ favorites.KV = (*slots.ClientKV)(nil)
var _ favorites.KV = (*sessions.KV)(nil)
var _ favorites.KV = (*favorites.MemoryKV)(nil)

// Reveal timers
var _ reveal.Timer = (*time.Timer)(nil)

// Terminal input
var _ shell.Input = (*liner.State)(nil)
