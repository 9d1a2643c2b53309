// Package favorites keeps a client's favorite books and mirrors them to a
// single durable key-value slot.
//
// The whole list is serialised as a JSON array of
// {title, author, cover, summary} objects and written back after every
// mutation. Books are identified by their (title, author) pair; the list never
// holds two entries with the same pair and keeps insertion order.
//
// # Usage
//
//	store := favorites.NewStore(kv, entities.SlotKeyFavorites)
//	store.Load(ctx)
//	added, err := store.Toggle(ctx, book)
package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mrlokans/bookhub/internal/entities"
	"github.com/mrlokans/bookhub/internal/logger"
	"github.com/mrlokans/bookhub/internal/metrics"
)

// ErrSlotMissing is returned by KV implementations when the key has never
// been written.
var ErrSlotMissing = errors.New("slot not found")

// KV is the durable storage behind a Store.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Store is an ordered, identity-unique list of books backed by one KV slot.
// It is not safe for concurrent use; callers serialise access.
type Store struct {
	kv    KV
	key   string
	books []entities.Book
}

// NewStore creates an empty store. Call Load to read the slot.
func NewStore(kv KV, key string) *Store {
	return &Store{kv: kv, key: key}
}

// Key returns the slot key the store persists under.
func (s *Store) Key() string {
	return s.key
}

// Load replaces the in-memory list with the slot contents. Missing,
// unreadable or malformed content leaves the store empty; it is logged and
// never returned as an error.
func (s *Store) Load(ctx context.Context) {
	s.books = nil

	data, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, ErrSlotMissing) {
		return
	}
	if err != nil {
		metrics.SlotLoadFailuresTotal.Inc()
		logger.For(ctx).WithError(err).Warnf("favorites: could not read slot %q, starting empty", s.key)
		return
	}

	books, err := Decode(data)
	if err != nil {
		metrics.SlotLoadFailuresTotal.Inc()
		logger.For(ctx).WithError(err).Warnf("favorites: slot %q is malformed, starting empty", s.key)
		return
	}

	s.books = dedupe(books)
}

// Books returns a copy of the favorites in insertion order.
func (s *Store) Books() []entities.Book {
	out := make([]entities.Book, len(s.books))
	copy(out, s.books)
	return out
}

// Len returns the number of favorites.
func (s *Store) Len() int {
	return len(s.books)
}

// Contains reports whether a book with this identity is a favorite.
func (s *Store) Contains(ref entities.BookRef) bool {
	return s.indexOf(ref) >= 0
}

// Toggle adds the book when absent and removes it otherwise, then persists.
// It reports whether the book is a favorite afterwards. A persist error
// leaves the in-memory change applied.
func (s *Store) Toggle(ctx context.Context, book entities.Book) (bool, error) {
	if i := s.indexOf(book.Ref()); i >= 0 {
		s.books = append(s.books[:i:i], s.books[i+1:]...)
		metrics.FavoriteMutationsTotal.WithLabelValues("remove").Inc()
		return false, s.persist(ctx)
	}

	s.books = append(s.books, book)
	metrics.FavoriteMutationsTotal.WithLabelValues("add").Inc()
	return true, s.persist(ctx)
}

// Remove deletes the matching favorite. Removing an absent pair is a no-op
// that still rewrites the slot.
func (s *Store) Remove(ctx context.Context, ref entities.BookRef) (bool, error) {
	removed := false
	if i := s.indexOf(ref); i >= 0 {
		s.books = append(s.books[:i:i], s.books[i+1:]...)
		removed = true
		metrics.FavoriteMutationsTotal.WithLabelValues("remove").Inc()
	}
	return removed, s.persist(ctx)
}

// Clear empties the store and persists. Confirmation is the caller's job.
func (s *Store) Clear(ctx context.Context) error {
	s.books = nil
	metrics.FavoriteMutationsTotal.WithLabelValues("clear").Inc()
	return s.persist(ctx)
}

func (s *Store) indexOf(ref entities.BookRef) int {
	for i, b := range s.books {
		if b.Is(ref) {
			return i
		}
	}
	return -1
}

func (s *Store) persist(ctx context.Context) error {
	data, err := Encode(s.books)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("persist favorites: %w", err)
	}
	return nil
}

// Encode serialises books as the slot payload. An empty list encodes as [].
func Encode(books []entities.Book) ([]byte, error) {
	if books == nil {
		books = []entities.Book{}
	}
	data, err := json.Marshal(books)
	if err != nil {
		return nil, fmt.Errorf("encode favorites: %w", err)
	}
	return data, nil
}

// Decode validates and parses a slot payload.
func Decode(data []byte) ([]entities.Book, error) {
	if err := validate(data); err != nil {
		return nil, err
	}

	var books []entities.Book
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, fmt.Errorf("decode favorites: %w", err)
	}
	return books, nil
}

// dedupe keeps the first entry of every identity.
func dedupe(books []entities.Book) []entities.Book {
	seen := make(map[entities.BookRef]bool, len(books))
	out := make([]entities.Book, 0, len(books))
	for _, b := range books {
		if seen[b.Ref()] {
			continue
		}
		seen[b.Ref()] = true
		out = append(out, b)
	}
	return out
}
