package render_test

import (
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ghostbfs/gridgraph"
	"github.com/katalvlaran/ghostbfs/render"
	"github.com/katalvlaran/ghostbfs/session"
)

// newSession builds
//
//	. . .
//	. # .
//
// with the agent on 0 and a manual scheduler.
func newSession(t *testing.T) *session.Session {
	t.Helper()
	g, err := gridgraph.FromMask([][]bool{
		{true, true, true},
		{true, false, true},
	})
	require.NoError(t, err)
	logger, _ := test.NewNullLogger()
	s, err := session.New(g, 0,
		session.WithScheduler(session.NewManualScheduler()),
		session.WithLogger(logger),
	)
	require.NoError(t, err)
	return s
}

func TestText_Idle(t *testing.T) {
	s := newSession(t)
	got := render.Text(s.Snapshot(), render.Options{})
	assert.Equal(t, "  G  .  .\n  .###  .\n", got)
}

func TestText_Distances(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.Select(5))

	got := render.Text(s.Snapshot(), render.Options{ShowDistances: true})
	assert.Equal(t, "  G  2  1\n  4###  X\n", got)

	got = render.Text(s.Snapshot(), render.DefaultOptions())
	want := "+---+---+---+\n" +
		"|  G|  2|  1|\n" +
		"+---+---+---+\n" +
		"|  4|###|  X|\n" +
		"+---+---+---+\n"
	assert.Equal(t, want, got)

	got = render.Text(s.Snapshot(), render.Options{})
	assert.Equal(t, "  G  .  .\n  .###  X\n", got, "hidden distances show as empty cells")
}

func TestLabel_AgentOnDestination(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.Select(0))
	snap := s.Snapshot()
	assert.Equal(t, "  G", render.Label(snap, 0, render.DefaultOptions()))
	assert.Equal(t, "  1", render.Label(snap, 1, render.DefaultOptions()))
}

func TestLabel_LongDistance(t *testing.T) {
	g, err := gridgraph.Open(1, 1200)
	require.NoError(t, err)
	logger, _ := test.NewNullLogger()
	s, err := session.New(g, 1199,
		session.WithScheduler(session.NewManualScheduler()),
		session.WithLogger(logger),
	)
	require.NoError(t, err)
	require.NoError(t, s.Select(0))

	assert.Equal(t, "198", render.Label(s.Snapshot(), 1198, render.DefaultOptions()), "keeps the low digits")
}

func TestStatus(t *testing.T) {
	s := newSession(t)
	assert.Equal(t, "agent 0  destination none  steps 0  idle", render.Status(s.Snapshot()))

	require.NoError(t, s.Select(2))
	assert.Equal(t, "agent 0  destination 2  steps 0  walking", render.Status(s.Snapshot()))

	for !s.Arrived() {
		s.Step()
	}
	s.Step()
	assert.Equal(t, "agent 2  destination 2  steps 2  arrived", render.Status(s.Snapshot()))
}
