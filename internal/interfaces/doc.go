// Package interfaces documents the extension points of BookHub and holds
// compile-time checks for their implementations.
//
// # Favorites Slot Backends
//
//   - favorites.KV: byte-level Get/Set of a named slot (internal/favorites/store.go)
//
// Implementations:
//
//   - slots.ClientKV: one row per (client, key) in the application database
//   - sessions.KV: the slot lives in the client's scs session
//   - favorites.MemoryKV: process-local, used by tests
//
// A Get of a slot that was never written must return favorites.ErrSlotMissing.
// Any other error is treated as an unreadable slot and the store starts empty.
//
// # Adding a New Slot Backend
//
//  1. Implement favorites.KV:
//
//     type RedisKV struct {
//         client *redis.Client
//         prefix string
//     }
//
//     func (kv *RedisKV) Get(ctx context.Context, key string) ([]byte, error)
//     func (kv *RedisKV) Set(ctx context.Context, key string, value []byte) error
//
//  2. Add a SLOT_BACKEND value in internal/config/constants.go
//
//  3. Select it in App.NewController (internal/entrypoint/entrypoint.go)
//
//  4. Add a compile-time check to checks.go:
//
//     var _ favorites.KV = (*RedisKV)(nil)
//
// # Reveal Timers
//
//   - reveal.Timer: the Stop half of *time.Timer, so tests can inject a
//     fake clock through reveal.WithAfterFunc
//
// # Terminal Input
//
//   - shell.Input: line prompt plus history, implemented by *liner.State
//     and by scripted inputs in tests
//
// # Compile-Time Interface Checks
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go.
package interfaces
