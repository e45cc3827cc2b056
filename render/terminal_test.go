package render_test

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ghostbfs/render"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)
	return screen
}

func runeAt(screen tcell.Screen, x, y int) rune {
	r, _, _, _ := screen.GetContent(x, y)
	return r
}

func TestTerminal_Draw(t *testing.T) {
	screen := newScreen(t)
	s := newSession(t)
	require.NoError(t, s.Select(5))
	logger, _ := test.NewNullLogger()
	term := render.NewTerminal(screen, render.DefaultOptions(), logger)

	term.Draw(s.Snapshot())

	assert.Equal(t, '+', runeAt(screen, 0, 0))
	assert.Equal(t, '|', runeAt(screen, 0, 1))
	assert.Equal(t, 'G', runeAt(screen, 3, 1))
	assert.Equal(t, '2', runeAt(screen, 7, 1))
	assert.Equal(t, '#', runeAt(screen, 6, 3))
	assert.Equal(t, 'X', runeAt(screen, 11, 3))
	assert.Equal(t, 'a', runeAt(screen, 0, 6), "status line sits below the board")
}

func TestTerminal_DrawWithoutBorders(t *testing.T) {
	screen := newScreen(t)
	s := newSession(t)
	logger, _ := test.NewNullLogger()
	term := render.NewTerminal(screen, render.Options{}, logger)

	term.Draw(s.Snapshot())

	assert.Equal(t, 'G', runeAt(screen, 2, 0))
	assert.Equal(t, '#', runeAt(screen, 3, 1))
	assert.Equal(t, 'a', runeAt(screen, 0, 3))
}

func TestTerminal_CellAt(t *testing.T) {
	screen := newScreen(t)
	s := newSession(t)
	snap := s.Snapshot()
	logger, _ := test.NewNullLogger()

	bordered := render.NewTerminal(screen, render.DefaultOptions(), logger)
	cases := []struct {
		x, y int
		idx  int
		ok   bool
	}{
		{2, 1, 0, true},
		{4, 1, 0, false},
		{6, 3, 4, true},
		{10, 3, 5, true},
		{2, 2, 0, false},
		{0, 0, 0, false},
		{40, 1, 0, false},
	}
	for _, tc := range cases {
		idx, ok := bordered.CellAt(snap, tc.x, tc.y)
		assert.Equal(t, tc.ok, ok, "(%d,%d)", tc.x, tc.y)
		if tc.ok {
			assert.Equal(t, tc.idx, idx, "(%d,%d)", tc.x, tc.y)
		}
	}

	plain := render.NewTerminal(screen, render.Options{}, logger)
	idx, ok := plain.CellAt(snap, 4, 1)
	assert.True(t, ok)
	assert.Equal(t, 4, idx)
	_, ok = plain.CellAt(snap, 0, 2)
	assert.False(t, ok)
}

func TestTerminal_HandleClick(t *testing.T) {
	screen := newScreen(t)
	s := newSession(t)
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	term := render.NewTerminal(screen, render.DefaultOptions(), logger)

	term.HandleClick(s, s.Snapshot(), 9, 1)
	dest, ok := s.Destination()
	require.True(t, ok)
	assert.Equal(t, 2, dest)

	term.HandleClick(s, s.Snapshot(), 6, 3)
	dest, _ = s.Destination()
	assert.Equal(t, 2, dest, "walls are not selectable")
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "click ignored", hook.LastEntry().Message)

	term.HandleClick(s, s.Snapshot(), 60, 20)
	dest, _ = s.Destination()
	assert.Equal(t, 2, dest)
}

func TestTerminal_HandleRune(t *testing.T) {
	screen := newScreen(t)
	s := newSession(t)
	logger, _ := test.NewNullLogger()
	term := render.NewTerminal(screen, render.DefaultOptions(), logger)

	assert.False(t, term.HandleRune(s, 'b'))
	assert.False(t, term.Options().ShowBorders)
	assert.False(t, term.HandleRune(s, 'd'))
	assert.False(t, term.Options().ShowDistances)
	assert.False(t, term.HandleRune(s, 'D'))
	assert.True(t, term.Options().ShowDistances)

	require.NoError(t, s.Select(5))
	assert.False(t, term.HandleRune(s, 'r'))
	_, ok := s.Destination()
	assert.False(t, ok)

	assert.False(t, term.HandleRune(s, 'z'))
	assert.True(t, term.HandleRune(s, 'q'))
}

func TestTerminal_RunStopsOnContext(t *testing.T) {
	screen := newScreen(t)
	s := newSession(t)
	logger, _ := test.NewNullLogger()
	term := render.NewTerminal(screen, render.DefaultOptions(), logger)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- term.Run(ctx, s) }()

	require.NoError(t, s.Select(5))
	cancel()

	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
