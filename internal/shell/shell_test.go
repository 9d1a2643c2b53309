package shell

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookhub/internal/catalog"
	"github.com/mrlokans/bookhub/internal/controller"
	"github.com/mrlokans/bookhub/internal/entities"
	"github.com/mrlokans/bookhub/internal/favorites"
	"github.com/mrlokans/bookhub/internal/reveal"
)

// scriptedInput replays lines and then reports end of input.
type scriptedInput struct {
	lines   []string
	prompts []string
	history []string
}

func (s *scriptedInput) Prompt(p string) (string, error) {
	s.prompts = append(s.prompts, p)
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func (s *scriptedInput) AppendHistory(item string) {
	s.history = append(s.history, item)
}

func newTestShell(t *testing.T, lines ...string) (*Shell, *controller.Controller, *scriptedInput, *bytes.Buffer) {
	t.Helper()
	ctrl := controller.New(context.Background(), controller.Config{
		ClientID:  "shell-test",
		Catalog:   catalog.Default(),
		Store:     favorites.NewStore(favorites.NewMemoryKV(), entities.SlotKeyFavorites),
		Scheduler: reveal.New(0),
	})
	t.Cleanup(ctrl.Close)

	in := &scriptedInput{lines: lines}
	out := &bytes.Buffer{}
	return New(ctrl, in, out), ctrl, in, out
}

func exec(t *testing.T, s *Shell, line string) {
	t.Helper()
	quit, err := s.Execute(context.Background(), line)
	require.NoError(t, err, line)
	require.False(t, quit)
}

func TestShell_PlainTextIsLocalSearch(t *testing.T) {
	s, ctrl, _, _ := newTestShell(t)

	exec(t, s, ":genre sci-fi")
	exec(t, s, "mart")

	screen := ctrl.Snapshot()
	assert.Equal(t, "sci-fi", screen.Query.Genre)
	assert.Equal(t, "mart", screen.Query.Local)
	require.Len(t, screen.Grid.Cards, 1)
	assert.Equal(t, "The Martian", screen.Grid.Cards[0].Book.Title)
}

func TestShell_GlobalSearch(t *testing.T) {
	s, ctrl, _, _ := newTestShell(t)

	exec(t, s, `:global "dune"`)

	screen := ctrl.Snapshot()
	assert.Equal(t, "dune", screen.Query.Global)
	assert.Equal(t, `Results for "dune"`, screen.Grid.Status)
}

func TestShell_UnknownGenre(t *testing.T) {
	s, _, _, _ := newTestShell(t)

	_, err := s.Execute(context.Background(), ":genre poetry")

	assert.ErrorContains(t, err, "unknown genre")
}

func TestShell_OpenAndClose(t *testing.T) {
	s, ctrl, _, out := newTestShell(t)
	exec(t, s, ":genre mystery")

	exec(t, s, ":open 2")

	require.NotNil(t, ctrl.Snapshot().Detail)
	assert.Contains(t, out.String(), "A gothic Sherlock Holmes mystery.")

	exec(t, s, ":esc")
	assert.Nil(t, ctrl.Snapshot().Detail)
}

func TestShell_CardOutOfRange(t *testing.T) {
	s, _, _, _ := newTestShell(t)
	exec(t, s, ":genre mystery")

	_, err := s.Execute(context.Background(), ":open 3")
	assert.ErrorContains(t, err, "out of range")

	_, err = s.Execute(context.Background(), ":fav x")
	assert.ErrorContains(t, err, "not a number")
}

func TestShell_Favorites(t *testing.T) {
	s, ctrl, _, out := newTestShell(t)
	exec(t, s, ":genre sci-fi")

	exec(t, s, ":fav 1")
	exec(t, s, ":fav 2")
	assert.Contains(t, out.String(), "♥ Dune added to favorites.")

	exec(t, s, ":favs")
	assert.True(t, ctrl.Snapshot().Favorites.Open)
	assert.Contains(t, out.String(), "Favorites (2)")

	exec(t, s, ":rm 1")
	favs := ctrl.Favorites()
	require.Len(t, favs, 1)
	assert.Equal(t, "The Martian", favs[0].Title)

	exec(t, s, ":close")
	assert.False(t, ctrl.Snapshot().Favorites.Open)
}

func TestShell_ClearAsksFirst(t *testing.T) {
	s, ctrl, in, _ := newTestShell(t, "n", "yes")
	exec(t, s, ":genre sci-fi")
	exec(t, s, ":fav 1")

	exec(t, s, ":clear")
	assert.Len(t, ctrl.Favorites(), 1)

	exec(t, s, ":clear")
	assert.Empty(t, ctrl.Favorites())
	assert.Equal(t, []string{"Clear all favorites? [y/N] ", "Clear all favorites? [y/N] "}, in.prompts)
}

func TestShell_Theme(t *testing.T) {
	s, ctrl, _, out := newTestShell(t)

	exec(t, s, ":theme")

	assert.True(t, ctrl.Snapshot().Dark)
	assert.Contains(t, out.String(), "Dark mode on.")
}

func TestShell_UnknownCommand(t *testing.T) {
	s, _, _, _ := newTestShell(t)

	_, err := s.Execute(context.Background(), ":dance")

	assert.ErrorContains(t, err, "unknown command")
}

func TestShell_Run(t *testing.T) {
	s, ctrl, in, out := newTestShell(t, ":genre fantasy", "", ":bogus", ":quit", ":theme")

	require.NoError(t, s.Run(context.Background()))

	assert.Equal(t, []string{":genre fantasy", ":bogus", ":quit"}, in.history)
	assert.Equal(t, []string{":theme"}, in.lines, "commands after :quit are not read")
	assert.Equal(t, "fantasy", ctrl.Snapshot().Query.Genre)
	assert.Contains(t, out.String(), "BookHub. Type :help for commands.")
	assert.Contains(t, out.String(), "error: unknown command :bogus")
}

func TestShell_RunStopsAtEndOfInput(t *testing.T) {
	s, _, _, _ := newTestShell(t)

	assert.NoError(t, s.Run(context.Background()))
}
