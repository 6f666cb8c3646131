package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvassign/cbba"
	"github.com/katalvlaran/lvassign/gridgraph"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T, maxIter int) Model {
	t.Helper()
	opts := cbba.DefaultOptions()
	opts.MaxIterations = maxIter
	sim, err := cbba.NewSimulation(opts)
	require.NoError(t, err)
	require.NoError(t, sim.LoadDefaults())

	return NewModel(sim, nil)
}

func press(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)

	return out
}

func TestStepKeys(t *testing.T) {
	m := newTestModel(t, 2)

	m = press(t, m, runes("n"))
	assert.Equal(t, 1, m.sim.Iteration())
	assert.Contains(t, m.View(), "Iteration 1 / 2")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 2, m.sim.Iteration())

	m = press(t, m, runes("n"))
	assert.Equal(t, 2, m.sim.Iteration(), "next is disabled at the cap")
	assert.NoError(t, m.err)
	assert.Contains(t, m.View(), "Iteration limit reached")
}

func TestResetAndDefaults(t *testing.T) {
	m := newTestModel(t, 5)
	m = press(t, m, runes("n"))

	m = press(t, m, runes("r"))
	assert.Zero(t, m.sim.Iteration())
	assert.Empty(t, m.sim.Tasks())
	assert.Empty(t, m.sim.History())

	m = press(t, m, runes("d"))
	assert.Len(t, m.sim.Tasks(), 4)
	assert.Len(t, m.sim.Agents(), 2)
	assert.Contains(t, m.View(), "Default board loaded")
}

func TestDefaultsLoaderError(t *testing.T) {
	sim, err := cbba.NewSimulation(cbba.DefaultOptions())
	require.NoError(t, err)
	boom := errors.New("boom")
	m := NewModel(sim, func(*cbba.Simulation) error { return boom })

	m = press(t, m, runes("d"))
	assert.ErrorIs(t, m.err, boom)
	assert.Contains(t, m.View(), "Error: boom")
}

func TestAddNearCenter(t *testing.T) {
	m := newTestModel(t, 5)

	m = press(t, m, runes("t"))
	require.NoError(t, m.err)
	tasks := m.sim.Tasks()
	require.Len(t, tasks, 5)
	assert.Equal(t, gridgraph.Point{X: 5, Y: 5}, tasks[4].Position)
	assert.Equal(t, 4, tasks[4].ID)

	m = press(t, m, runes("a"))
	require.NoError(t, m.err)
	agents := m.sim.Agents()
	require.Len(t, agents, 3)
	assert.Equal(t, gridgraph.Point{X: 5, Y: 4}, agents[2].Position)
	assert.Equal(t, NewAgentCapacity, agents[2].Capacity)
}

func TestCursorRewardAndCapacity(t *testing.T) {
	m := newTestModel(t, 5)
	assert.Contains(t, m.View(), "Cursor (5,5) • reward 10 • capacity 1")

	for _, key := range []tea.KeyMsg{{Type: tea.KeyUp}, runes("h"), {Type: tea.KeyLeft}, runes("+"), runes("=")} {
		m = press(t, m, key)
	}
	assert.Equal(t, gridgraph.Point{X: 3, Y: 6}, m.cursor)

	m = press(t, m, runes("t"))
	require.NoError(t, m.err)
	tasks := m.sim.Tasks()
	require.Len(t, tasks, 5)
	assert.Equal(t, gridgraph.Point{X: 3, Y: 6}, tasks[4].Position)
	assert.Equal(t, 12.0, tasks[4].Reward)
	assert.Contains(t, m.View(), "Task 4 (reward 12) added at (3,6)")

	m = press(t, m, runes("j"))
	m = press(t, m, runes("]"))
	m = press(t, m, runes("]"))
	m = press(t, m, runes("a"))
	require.NoError(t, m.err)
	agents := m.sim.Agents()
	require.Len(t, agents, 3)
	assert.Equal(t, gridgraph.Point{X: 3, Y: 5}, agents[2].Position)
	assert.Equal(t, 3, agents[2].Capacity)
}

func TestCursorClampsAndFloors(t *testing.T) {
	m := newTestModel(t, 5)
	for i := 0; i < 20; i++ {
		m = press(t, m, runes("l"))
		m = press(t, m, runes("k"))
		m = press(t, m, runes("-"))
		m = press(t, m, runes("["))
	}
	assert.Equal(t, gridgraph.Point{X: 9, Y: 9}, m.cursor)
	assert.Zero(t, m.reward)
	assert.Zero(t, m.capacity)

	for i := 0; i < 20; i++ {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
		m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, gridgraph.Point{}, m.cursor)

	// (0,0) holds agent 0, so the zero-capacity agent lands on the nearest free cell.
	m = press(t, m, runes("a"))
	require.NoError(t, m.err)
	agents := m.sim.Agents()
	require.Len(t, agents, 3)
	assert.NotEqual(t, gridgraph.Point{}, agents[2].Position)
	assert.Zero(t, agents[2].Capacity)
}

func TestQuit(t *testing.T) {
	for _, key := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}} {
		m := newTestModel(t, 5)
		next, cmd := m.Update(key)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
		assert.Empty(t, next.View())
	}
}

func TestWindowSize(t *testing.T) {
	m := newTestModel(t, 5)
	m = press(t, m, tea.WindowSizeMsg{Width: 80, Height: 40})
	assert.Equal(t, 80, m.width)
	assert.Equal(t, 40, m.height)
	assert.Nil(t, m.Init())
}
