// Package render draws cost matrices, boards and allocation histories for
// the terminal with lipgloss.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/katalvlaran/lvassign/cbba"
	"github.com/katalvlaran/lvassign/gridgraph"
	"github.com/katalvlaran/lvassign/hungarian"
	"github.com/katalvlaran/lvassign/matrix"
)

// NoTasks is printed for an agent with an empty bundle.
const NoTasks = "No tasks"

// cellWidth fits labels such as "T12" or "A3" with padding.
const cellWidth = 5

// Styles contains lipgloss styles for every rendered element.
type Styles struct {
	Title    lipgloss.Style
	Header   lipgloss.Style
	Cell     lipgloss.Style
	Assigned lipgloss.Style
	Task     lipgloss.Style
	Agent    lipgloss.Style
	Empty    lipgloss.Style
	Muted    lipgloss.Style
	Value    lipgloss.Style
}

// DefaultStyles returns the default palette.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")), // Purple
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Cell: lipgloss.NewStyle().
			Width(cellWidth).
			Align(lipgloss.Right),
		Assigned: lipgloss.NewStyle().
			Width(cellWidth).
			Align(lipgloss.Right).
			Bold(true).
			Foreground(lipgloss.Color("230")). // Light yellow
			Background(lipgloss.Color("63")),
		Task: lipgloss.NewStyle().
			Width(cellWidth).
			Align(lipgloss.Center).
			Foreground(lipgloss.Color("214")), // Orange
		Agent: lipgloss.NewStyle().
			Width(cellWidth).
			Align(lipgloss.Center).
			Bold(true).
			Foreground(lipgloss.Color("86")), // Cyan
		Empty: lipgloss.NewStyle().
			Width(cellWidth).
			Align(lipgloss.Center).
			Foreground(lipgloss.Color("238")),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")), // Gray
		Value: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46")), // Green
	}
}

var defaultStyles = DefaultStyles()

// Assignment renders the cost matrix with every assigned cell highlighted,
// followed by one "worker i -> task j" line per row and the optimal cost.
func Assignment(cost matrix.Matrix, res hungarian.Result) string {
	return defaultStyles.Assignment(cost, res)
}

// Board renders the grid with y growing upward (row 0 printed last) and a
// legend of tasks and agents.
func Board(grid *gridgraph.Grid, tasks []cbba.Task, agents []cbba.Agent) string {
	return defaultStyles.Board(grid, tasks, agents)
}

// History renders every record: one block per iteration, one line per agent.
func History(records []cbba.HistoryRecord) string {
	return defaultStyles.History(records)
}

// Assignment is the styled form of the package-level Assignment.
func (s Styles) Assignment(cost matrix.Matrix, res hungarian.Result) string {
	var b strings.Builder
	b.WriteString(s.Title.Render("Cost matrix"))
	b.WriteString("\n")

	n := cost.Rows()
	cols := cost.Cols()
	for i := 0; i < n; i++ {
		for j := 0; j < cols; j++ {
			v, err := cost.At(i, j)
			if err != nil {
				continue
			}
			text := strconv.FormatFloat(v, 'g', -1, 64)
			if i < len(res.Assignment) && res.Assignment[i] == j {
				b.WriteString(s.Assigned.Render(text))
			} else {
				b.WriteString(s.Cell.Render(text))
			}
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(s.Header.Render("Assignment"))
	b.WriteString("\n")
	for i, j := range res.Assignment {
		if j == hungarian.Unassigned {
			b.WriteString(fmt.Sprintf("worker %d -> unassigned\n", i))
			continue
		}
		b.WriteString(fmt.Sprintf("worker %d -> task %d\n", i, j))
	}
	b.WriteString(s.Muted.Render("Optimal cost: "))
	b.WriteString(s.Value.Render(strconv.FormatFloat(res.Cost, 'g', -1, 64)))
	b.WriteString("\n")

	return b.String()
}

// Board is the styled form of the package-level Board.
func (s Styles) Board(grid *gridgraph.Grid, tasks []cbba.Task, agents []cbba.Agent) string {
	var b strings.Builder
	b.WriteString(s.Title.Render(fmt.Sprintf("Board %dx%d (%s)", grid.Width, grid.Height, grid.Conn)))
	b.WriteString("\n")

	for y := grid.Height - 1; y >= 0; y-- {
		b.WriteString(s.Muted.Render(fmt.Sprintf("%3d ", y)))
		for x := 0; x < grid.Width; x++ {
			occ, ok := grid.At(gridgraph.Point{X: x, Y: y})
			switch {
			case !ok:
				b.WriteString(s.Empty.Render("·"))
			case occ.Kind == gridgraph.TaskCell:
				b.WriteString(s.Task.Render(fmt.Sprintf("T%d", occ.ID)))
			default:
				b.WriteString(s.Agent.Render(fmt.Sprintf("A%d", occ.ID)))
			}
		}
		b.WriteString("\n")
	}
	b.WriteString("    ")
	for x := 0; x < grid.Width; x++ {
		b.WriteString(s.Muted.Width(cellWidth).Align(lipgloss.Center).Render(strconv.Itoa(x)))
	}
	b.WriteString("\n\n")

	for _, t := range tasks {
		b.WriteString(fmt.Sprintf("T%d reward %s at %v\n", t.ID, strconv.FormatFloat(t.Reward, 'g', -1, 64), t.Position))
	}
	for _, a := range agents {
		b.WriteString(fmt.Sprintf("A%d capacity %d at %v\n", a.ID, a.Capacity, a.Position))
	}

	return b.String()
}

// History is the styled form of the package-level History.
func (s Styles) History(records []cbba.HistoryRecord) string {
	if len(records) == 0 {
		return s.Muted.Render("No iterations yet") + "\n"
	}

	var b strings.Builder
	for _, rec := range records {
		b.WriteString(s.Header.Render(fmt.Sprintf("Iteration %d", rec.Iteration)))
		b.WriteString("\n")
		for _, a := range rec.Agents {
			b.WriteString(fmt.Sprintf("  Agent %d: %s\n", a.ID, bundleText(a)))
		}
	}

	return b.String()
}

func bundleText(a cbba.Agent) string {
	if len(a.Bundle) == 0 {
		return NoTasks
	}
	parts := make([]string, len(a.Bundle))
	for i, t := range a.Bundle {
		parts[i] = fmt.Sprintf("T%d", t.ID)
	}

	return strings.Join(parts, ", ")
}
