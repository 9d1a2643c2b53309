// Package controller maps user actions onto queries, favorites mutations and
// view state for one client.
//
// Every input source (web forms, JSON API, terminal) builds an Event and calls
// Dispatch. Events are looked up in a dispatch table keyed by Action, so a key
// press and the equivalent button click run the same handler. A Controller
// serialises its events behind a mutex; reveal callbacks from the scheduler
// take the same mutex and drop themselves when a newer search has started.
package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mrlokans/bookhub/internal/catalog"
	"github.com/mrlokans/bookhub/internal/entities"
	"github.com/mrlokans/bookhub/internal/favorites"
	"github.com/mrlokans/bookhub/internal/logger"
	"github.com/mrlokans/bookhub/internal/metrics"
	"github.com/mrlokans/bookhub/internal/query"
	"github.com/mrlokans/bookhub/internal/reveal"
	"github.com/mrlokans/bookhub/internal/view"
)

// ErrUnknownAction is returned for actions missing from the dispatch table.
var ErrUnknownAction = errors.New("unknown action")

// ErrClosed is returned by Dispatch after Close. The registry may already
// hold a newer controller for the same client.
var ErrClosed = errors.New("controller closed")

// ClearPrompt is the question asked before all favorites are removed.
const ClearPrompt = "Clear all favorites?"

type Action string

const (
	ActionSearch         Action = "search"
	ActionOpenDetail     Action = "open-detail"
	ActionCloseDetail    Action = "close-detail"
	ActionToggleFavorite Action = "toggle-favorite"
	ActionOpenFavorites  Action = "open-favorites"
	ActionCloseFavorites Action = "close-favorites"
	ActionClearFavorites Action = "clear-favorites"
	ActionRemoveFavorite Action = "remove-favorite"
	ActionToggleTheme    Action = "toggle-theme"
	ActionKey            Action = "key"
)

type Key string

const (
	KeyEnter  Key = "Enter"
	KeySpace  Key = " "
	KeyEscape Key = "Escape"
)

// Focus names the control a key press was aimed at.
type Focus string

const (
	FocusNone         Focus = ""
	FocusSearch       Focus = "search"
	FocusGlobalSearch Focus = "global-search"
	FocusCard         Focus = "card"
)

// ConfirmFunc asks the user a yes/no question.
type ConfirmFunc func(prompt string) bool

// Event is one user action with its payload. Only the fields the action
// needs are read.
type Event struct {
	Action  Action
	Query   query.Query
	Book    entities.BookRef
	Key     Key
	Focus   Focus
	Confirm ConfirmFunc
}

// Screen is a consistent copy of everything a front end draws.
type Screen struct {
	Query     query.Query
	Genres    []string
	Grid      view.Grid
	Revealed  []view.Card
	Detail    *view.Detail
	Favorites view.FavoritesPanel
	Dark      bool
}

type handler func(ctx context.Context, ev Event) error

// Config carries a controller's collaborators.
type Config struct {
	ClientID  string
	Catalog   *catalog.Catalog
	Store     *favorites.Store
	Scheduler *reveal.Scheduler
}

// Controller owns one client's view state.
type Controller struct {
	mu sync.Mutex

	clientID string
	cat      *catalog.Catalog
	store    *favorites.Store
	sched    *reveal.Scheduler
	handlers map[Action]handler

	query         query.Query
	grid          view.Grid
	revealed      []view.Card
	early         map[int]view.Card
	detail        *view.Detail
	favoritesOpen bool
	dark          bool

	subs    map[int]chan GridEvent
	nextSub int
	closed  bool
}

// New creates a controller and loads the client's favorites. The initial grid
// is empty until the first search.
func New(ctx context.Context, cfg Config) *Controller {
	sched := cfg.Scheduler
	if sched == nil {
		sched = reveal.New(reveal.DefaultStep)
	}

	c := &Controller{
		clientID: cfg.ClientID,
		cat:      cfg.Catalog,
		store:    cfg.Store,
		sched:    sched,
		grid:     view.NewGrid(0, nil, ""),
		subs:     make(map[int]chan GridEvent),
	}
	c.handlers = map[Action]handler{
		ActionSearch:         c.search,
		ActionOpenDetail:     c.openDetail,
		ActionCloseDetail:    c.closeDetail,
		ActionToggleFavorite: c.toggleFavorite,
		ActionOpenFavorites:  c.openFavorites,
		ActionCloseFavorites: c.closeFavorites,
		ActionClearFavorites: c.clearFavorites,
		ActionRemoveFavorite: c.removeFavorite,
		ActionToggleTheme:    c.toggleTheme,
		ActionKey:            c.keyPress,
	}

	c.store.Load(c.logContext(ctx))
	return c
}

// ClientID returns the id of the client this controller serves.
func (c *Controller) ClientID() string {
	return c.clientID
}

// Dispatch runs the handler registered for ev.Action.
func (c *Controller) Dispatch(ctx context.Context, ev Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}

	h, ok := c.handlers[ev.Action]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, ev.Action)
	}

	ctx = c.logContext(ctx)
	if err := h(ctx, ev); err != nil {
		logger.For(ctx).WithError(err).Warnf("action %s failed", ev.Action)
		return err
	}
	return nil
}

// Snapshot returns a copy of the current screen.
func (c *Controller) Snapshot() Screen {
	c.mu.Lock()
	defer c.mu.Unlock()

	grid := c.grid
	grid.Cards = append([]view.Card(nil), c.grid.Cards...)

	var detail *view.Detail
	if c.detail != nil {
		d := *c.detail
		detail = &d
	}

	return Screen{
		Query:     c.query,
		Genres:    c.cat.Genres(),
		Grid:      grid,
		Revealed:  append([]view.Card(nil), c.revealed...),
		Detail:    detail,
		Favorites: view.NewFavoritesPanel(c.store.Books(), c.favoritesOpen),
		Dark:      c.dark,
	}
}

// Favorites returns the client's favorites in insertion order.
func (c *Controller) Favorites() []entities.Book {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Books()
}

// Close cancels pending reveals and ends every subscription.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.sched.Cancel()
	for id, ch := range c.subs {
		close(ch)
		delete(c.subs, id)
	}
}

func (c *Controller) logContext(ctx context.Context) context.Context {
	if c.clientID == "" {
		return ctx
	}
	return logger.ContextWithClient(ctx, c.clientID)
}

// --- handlers (called with c.mu held) ---

func (c *Controller) search(ctx context.Context, ev Event) error {
	done := logger.Track(ctx, "search")
	defer done()

	c.query = ev.Query
	results := query.Run(c.cat, ev.Query)
	metrics.ObserveQuery(ev.Query.Genre, len(results))

	gen := c.sched.Begin()
	cards := view.NewCards(results, c.store.Contains, c.sched.Delay)
	c.grid = view.NewGrid(gen, cards, view.StatusLine(ev.Query.Global))
	c.revealed = nil
	c.early = make(map[int]view.Card)

	c.emitLocked(GridEvent{Kind: GridReset, Generation: gen, Total: len(cards), CountLabel: c.grid.CountLabel, Status: c.grid.Status})
	if len(cards) == 0 {
		c.emitLocked(GridEvent{Kind: GridDone, Generation: gen, Total: 0})
		return nil
	}

	for _, card := range cards {
		card := card
		c.sched.Schedule(gen, card.Index, func() {
			c.revealCard(gen, card)
		})
	}
	return nil
}

// revealCard runs on a timer goroutine. Timers with equal deadlines fire in
// any order, so a card waits in c.early until every lower index is out.
func (c *Controller) revealCard(gen uint64, card view.Card) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || !c.sched.Valid(gen) {
		return
	}

	c.early[card.Index] = card
	for {
		next, ok := c.early[len(c.revealed)]
		if !ok {
			return
		}
		delete(c.early, next.Index)

		next.Favorite = c.store.Contains(next.Book.Ref())
		c.revealed = append(c.revealed, next)
		c.emitLocked(GridEvent{Kind: GridCard, Generation: gen, Total: len(c.grid.Cards), Card: &next})

		if len(c.revealed) == len(c.grid.Cards) {
			c.emitLocked(GridEvent{Kind: GridDone, Generation: gen, Total: len(c.grid.Cards)})
			return
		}
	}
}

func (c *Controller) openDetail(_ context.Context, ev Event) error {
	book, err := c.cat.Find(ev.Book)
	if err != nil {
		return err
	}
	c.detail = view.NewDetail(book)
	return nil
}

func (c *Controller) closeDetail(context.Context, Event) error {
	c.detail = nil
	return nil
}

func (c *Controller) toggleFavorite(ctx context.Context, ev Event) error {
	book, err := c.lookup(ev.Book)
	if err != nil {
		return err
	}

	added, err := c.store.Toggle(ctx, book)
	c.refreshFavoriteFlags()
	if err != nil {
		return err
	}

	logger.For(ctx).WithField("added", added).Debugf("toggled favorite %q", book.Title)
	return nil
}

func (c *Controller) removeFavorite(ctx context.Context, ev Event) error {
	_, err := c.store.Remove(ctx, ev.Book)
	c.refreshFavoriteFlags()
	return err
}

func (c *Controller) clearFavorites(ctx context.Context, ev Event) error {
	if ev.Confirm == nil || !ev.Confirm(ClearPrompt) {
		logger.For(ctx).Debug("clear favorites declined")
		return nil
	}

	err := c.store.Clear(ctx)
	c.refreshFavoriteFlags()
	return err
}

func (c *Controller) openFavorites(context.Context, Event) error {
	c.favoritesOpen = true
	return nil
}

func (c *Controller) closeFavorites(context.Context, Event) error {
	c.favoritesOpen = false
	return nil
}

func (c *Controller) toggleTheme(context.Context, Event) error {
	c.dark = !c.dark
	return nil
}

// keyPress routes keyboard input to the same handlers the pointer controls use.
func (c *Controller) keyPress(ctx context.Context, ev Event) error {
	switch ev.Key {
	case KeyEnter:
		switch ev.Focus {
		case FocusSearch, FocusGlobalSearch:
			return c.search(ctx, ev)
		case FocusCard:
			return c.openDetail(ctx, ev)
		}
	case KeySpace:
		if ev.Focus == FocusCard {
			return c.openDetail(ctx, ev)
		}
	case KeyEscape:
		c.detail = nil
		c.favoritesOpen = false
	}
	return nil
}

// lookup resolves a reference against the catalog, falling back to the
// favorites so entries from an older catalog can still be toggled off.
func (c *Controller) lookup(ref entities.BookRef) (entities.Book, error) {
	book, err := c.cat.Find(ref)
	if err == nil {
		return book, nil
	}
	for _, fav := range c.store.Books() {
		if fav.Is(ref) {
			return fav, nil
		}
	}
	return entities.Book{}, err
}

func (c *Controller) refreshFavoriteFlags() {
	for i := range c.grid.Cards {
		c.grid.Cards[i].Favorite = c.store.Contains(c.grid.Cards[i].Book.Ref())
	}
	for i := range c.revealed {
		c.revealed[i].Favorite = c.store.Contains(c.revealed[i].Book.Ref())
	}
}
