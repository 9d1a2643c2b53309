// Package shell is the interactive terminal front end. Every command becomes
// a controller event, so the terminal and the web page share one behaviour.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/peterh/liner"

	"github.com/mrlokans/bookhub/internal/controller"
	"github.com/mrlokans/bookhub/internal/entities"
	"github.com/mrlokans/bookhub/internal/query"
	"github.com/mrlokans/bookhub/internal/view"
)

const prompt = "bookhub> "

const help = `Type text and press Enter to search titles and authors.
  :global TEXT  search all books ("" clears)
  :genre NAME   show one genre (no name shows all)
  :open N       show details of card N
  :fav N        toggle card N as favorite
  :favs         list favorites
  :rm N         remove favorite N
  :clear        remove all favorites
  :close        close details and favorites
  :esc          same as pressing Escape
  :theme        toggle dark mode
  :help         show this help
  :quit         leave`

// Input reads lines from the user. *liner.State implements it.
type Input interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// Shell drives one controller from a line-oriented terminal.
type Shell struct {
	ctrl *controller.Controller
	in   Input

	mu  sync.Mutex
	out io.Writer
}

func New(ctrl *controller.Controller, in Input, out io.Writer) *Shell {
	return &Shell{ctrl: ctrl, in: in, out: out}
}

// NewLiner opens a liner terminal. The caller closes it.
func NewLiner() *liner.State {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return line
}

// Run reads commands until :quit, end of input or ctx is cancelled.
func (s *Shell) Run(ctx context.Context) error {
	events, cancel := s.ctrl.Subscribe(64)
	printed := make(chan struct{})
	go func() {
		defer close(printed)
		s.printEvents(events)
	}()
	defer func() {
		cancel()
		<-printed
	}()

	s.println("BookHub. Type :help for commands.")
	for {
		if ctx.Err() != nil {
			return nil
		}

		line, err := s.in.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read command: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		s.in.AppendHistory(line)

		quit, err := s.Execute(ctx, line)
		if err != nil {
			s.printf("error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

// Execute runs one command line. It reports whether the shell should exit.
func (s *Shell) Execute(ctx context.Context, line string) (bool, error) {
	if !strings.HasPrefix(line, ":") {
		q := s.ctrl.Snapshot().Query
		q.Local = line
		return false, s.dispatch(ctx, controller.Event{
			Action: controller.ActionKey,
			Key:    controller.KeyEnter,
			Focus:  controller.FocusSearch,
			Query:  q,
		})
	}

	cmd, arg, _ := strings.Cut(strings.TrimPrefix(line, ":"), " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "quit", "q", "exit":
		return true, nil
	case "help", "h":
		s.println(help)
		return false, nil
	case "global", "g":
		q := s.ctrl.Snapshot().Query
		q.Global = unquote(arg)
		return false, s.dispatch(ctx, controller.Event{
			Action: controller.ActionKey,
			Key:    controller.KeyEnter,
			Focus:  controller.FocusGlobalSearch,
			Query:  q,
		})
	case "genre":
		return false, s.genre(ctx, arg)
	case "open", "o":
		card, err := s.card(arg)
		if err != nil {
			return false, err
		}
		if err := s.dispatch(ctx, controller.Event{
			Action: controller.ActionKey,
			Key:    controller.KeyEnter,
			Focus:  controller.FocusCard,
			Book:   card.Book.Ref(),
		}); err != nil {
			return false, err
		}
		s.withOut(func(w io.Writer) { view.WriteDetail(w, s.ctrl.Snapshot().Detail) })
		return false, nil
	case "fav", "f":
		card, err := s.card(arg)
		if err != nil {
			return false, err
		}
		if err := s.dispatch(ctx, controller.Event{Action: controller.ActionToggleFavorite, Book: card.Book.Ref()}); err != nil {
			return false, err
		}
		s.printFavoriteState(card.Book.Ref())
		return false, nil
	case "favs":
		if err := s.dispatch(ctx, controller.Event{Action: controller.ActionOpenFavorites}); err != nil {
			return false, err
		}
		s.withOut(func(w io.Writer) { view.WriteFavorites(w, s.ctrl.Snapshot().Favorites) })
		return false, nil
	case "rm":
		book, err := s.favorite(arg)
		if err != nil {
			return false, err
		}
		if err := s.dispatch(ctx, controller.Event{Action: controller.ActionRemoveFavorite, Book: book.Ref()}); err != nil {
			return false, err
		}
		s.printf("Removed %s.\n", book.Title)
		return false, nil
	case "clear":
		if err := s.dispatch(ctx, controller.Event{Action: controller.ActionClearFavorites, Confirm: s.confirm}); err != nil {
			return false, err
		}
		s.withOut(func(w io.Writer) { view.WriteFavorites(w, s.ctrl.Snapshot().Favorites) })
		return false, nil
	case "close":
		if err := s.dispatch(ctx, controller.Event{Action: controller.ActionCloseDetail}); err != nil {
			return false, err
		}
		return false, s.dispatch(ctx, controller.Event{Action: controller.ActionCloseFavorites})
	case "esc":
		return false, s.dispatch(ctx, controller.Event{Action: controller.ActionKey, Key: controller.KeyEscape})
	case "theme":
		if err := s.dispatch(ctx, controller.Event{Action: controller.ActionToggleTheme}); err != nil {
			return false, err
		}
		if s.ctrl.Snapshot().Dark {
			s.println("Dark mode on.")
		} else {
			s.println("Dark mode off.")
		}
		return false, nil
	default:
		return false, fmt.Errorf("unknown command :%s, type :help", cmd)
	}
}

func (s *Shell) genre(ctx context.Context, name string) error {
	screen := s.ctrl.Snapshot()
	if name != query.AllGenres && !contains(screen.Genres, name) {
		return fmt.Errorf("unknown genre %q, choose one of: %s", name, strings.Join(screen.Genres, ", "))
	}
	q := screen.Query
	q.Genre = name
	return s.dispatch(ctx, controller.Event{Action: controller.ActionSearch, Query: q})
}

func (s *Shell) dispatch(ctx context.Context, ev controller.Event) error {
	return s.ctrl.Dispatch(ctx, ev)
}

// confirm asks a yes/no question; anything but y or yes declines.
func (s *Shell) confirm(question string) bool {
	answer, err := s.in.Prompt(question + " [y/N] ")
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

// card returns the Nth card (1-based) of the current grid.
func (s *Shell) card(arg string) (view.Card, error) {
	cards := s.ctrl.Snapshot().Grid.Cards
	n, err := position(arg, len(cards))
	if err != nil {
		return view.Card{}, fmt.Errorf("card: %w", err)
	}
	return cards[n], nil
}

// favorite returns the Nth favorite (1-based).
func (s *Shell) favorite(arg string) (entities.Book, error) {
	books := s.ctrl.Favorites()
	n, err := position(arg, len(books))
	if err != nil {
		return entities.Book{}, fmt.Errorf("favorite: %w", err)
	}
	return books[n], nil
}

func (s *Shell) printFavoriteState(ref entities.BookRef) {
	for _, b := range s.ctrl.Favorites() {
		if b.Is(ref) {
			s.printf("♥ %s added to favorites.\n", ref.Title)
			return
		}
	}
	s.printf("♡ %s removed from favorites.\n", ref.Title)
}

func (s *Shell) printEvents(events <-chan controller.GridEvent) {
	for ev := range events {
		switch ev.Kind {
		case controller.GridReset:
			s.withOut(func(w io.Writer) {
				view.WriteGridHeader(w, view.Grid{
					Count:      ev.Total,
					CountLabel: ev.CountLabel,
					Empty:      ev.Total == 0,
					Status:     ev.Status,
				})
			})
		case controller.GridCard:
			s.withOut(func(w io.Writer) { view.WriteCard(w, *ev.Card) })
		}
	}
}

func (s *Shell) withOut(fn func(w io.Writer)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.out)
}

func (s *Shell) println(msg string) {
	s.withOut(func(w io.Writer) { fmt.Fprintln(w, msg) })
}

func (s *Shell) printf(format string, args ...any) {
	s.withOut(func(w io.Writer) { fmt.Fprintf(w, format, args...) })
}

func position(arg string, n int) (int, error) {
	i, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", arg)
	}
	if i < 1 || i > n {
		return 0, fmt.Errorf("%d is out of range 1..%d", i, n)
	}
	return i - 1, nil
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
