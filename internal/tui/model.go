// Package tui steps a bundle-allocation simulation interactively.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/katalvlaran/lvassign/cbba"
	"github.com/katalvlaran/lvassign/gridgraph"
	"github.com/katalvlaran/lvassign/internal/render"
)

const (
	// NewTaskReward is the initial pending reward for the "t" key.
	NewTaskReward = 10
	// NewAgentCapacity is the initial pending capacity for the "a" key.
	NewAgentCapacity = 1
)

// Loader fills a freshly reset simulation with a board.
type Loader func(sim *cbba.Simulation) error

// Model is the bubbletea model around one simulation.
type Model struct {
	sim  *cbba.Simulation
	load Loader

	styles render.Styles
	help   lipgloss.Style
	status lipgloss.Style
	errSt  lipgloss.Style

	// cursor, reward and capacity describe the next task or agent to add.
	cursor   gridgraph.Point
	reward   float64
	capacity int

	message  string
	err      error
	width    int
	height   int
	quitting bool
}

// NewModel wraps sim. load is used by the "d" key; nil means the demo board.
func NewModel(sim *cbba.Simulation, load Loader) Model {
	if load == nil {
		load = (*cbba.Simulation).LoadDefaults
	}

	g := sim.Grid()

	return Model{
		sim:      sim,
		load:     load,
		cursor:   gridgraph.Point{X: g.Width / 2, Y: g.Height / 2},
		reward:   NewTaskReward,
		capacity: NewAgentCapacity,
		styles:   render.DefaultStyles(),
		help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		status: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")),
		errSt: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")),
	}
}

// Init initializes the model (required by Bubble Tea)
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles key presses and window resizes (required by Bubble Tea)
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	m.message = ""

	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit

	case "n", "enter":
		if m.sim.Done() {
			m.message = "Iteration limit reached, press r to reset"
			return m, nil
		}
		if _, err := m.sim.Step(); err != nil {
			m.err = err
			return m, nil
		}
		m.message = fmt.Sprintf("Iteration %d complete", m.sim.Iteration())

	case "r":
		m.sim.Reset()
		m.message = "Simulation reset"

	case "d":
		m.sim.Reset()
		if err := m.load(m.sim); err != nil {
			m.err = err
			return m, nil
		}
		m.message = "Default board loaded"

	case "up", "k":
		m.moveCursor(0, 1)
	case "down", "j":
		m.moveCursor(0, -1)
	case "left", "h":
		m.moveCursor(-1, 0)
	case "right", "l":
		m.moveCursor(1, 0)

	case "+", "=":
		m.reward++
	case "-":
		m.reward = max(m.reward-1, 0)
	case "]":
		m.capacity++
	case "[":
		m.capacity = max(m.capacity-1, 0)

	case "t":
		task, err := m.sim.AddTaskNear(m.reward, m.cursor)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.message = fmt.Sprintf("Task %d (reward %g) added at %v", task.ID, task.Reward, task.Position)

	case "a":
		agent, err := m.sim.AddAgentNear(m.capacity, m.cursor)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.message = fmt.Sprintf("Agent %d (capacity %d) added at %v", agent.ID, agent.Capacity, agent.Position)
	}

	return m, nil
}

// moveCursor shifts the cursor and clamps it to the board. Y grows upward,
// matching the rendered board.
func (m *Model) moveCursor(dx, dy int) {
	g := m.sim.Grid()
	m.cursor.X = min(max(m.cursor.X+dx, 0), g.Width-1)
	m.cursor.Y = min(max(m.cursor.Y+dy, 0), g.Height-1)
}

// View renders the board, the iteration counter and the history (required by Bubble Tea)
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("CBBA bundle allocation"))
	b.WriteString("\n")
	b.WriteString(m.status.Render(fmt.Sprintf("Iteration %d / %d", m.sim.Iteration(), m.sim.MaxIterations())))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Board(m.sim.Grid(), m.sim.Tasks(), m.sim.Agents()))
	b.WriteString("\n")
	b.WriteString(m.styles.History(m.sim.History()))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Cursor %v • reward %g • capacity %d", m.cursor, m.reward, m.capacity)

	switch {
	case m.err != nil:
		b.WriteString("\n")
		b.WriteString(m.errSt.Render("Error: " + m.err.Error()))
	case m.message != "":
		b.WriteString("\n")
		b.WriteString(m.status.Render(m.message))
	}

	b.WriteString("\n")
	b.WriteString(m.help.Render("n/enter: next iteration • r: reset • d: defaults • q: quit\n" +
		"arrows/hjkl: move cursor • +/-: reward • ]/[: capacity • t: add task • a: add agent"))
	b.WriteString("\n")

	return b.String()
}

// Run starts the interactive program and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, m Model, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run tui: %w", err)
	}

	return nil
}
