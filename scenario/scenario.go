package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvassign/cbba"
	"github.com/katalvlaran/lvassign/gridgraph"
	"github.com/katalvlaran/lvassign/hungarian"
	"github.com/katalvlaran/lvassign/matrix"
)

// ErrInvalidScenario indicates a scenario that cannot be turned into a
// simulation or a cost matrix.
var ErrInvalidScenario = errors.New("scenario: invalid scenario")

// Accepted string values.
const (
	ConnectivityConn4 = "conn4"
	ConnectivityConn8 = "conn8"

	ValuationReward     = "reward"
	ValuationDiscounted = "discounted"

	ObjectiveMin = "min"
	ObjectiveMax = "max"

	// DefaultRandomSize is the side of the generated demo cost matrix.
	DefaultRandomSize = 5
)

// Scenario is one YAML file: the allocation board and the assignment problem.
type Scenario struct {
	Grid          GridConfig       `yaml:"grid"`
	MaxIterations int              `yaml:"max_iterations"`
	Valuation     ValuationConfig  `yaml:"valuation"`
	Tasks         []TaskConfig     `yaml:"tasks"`
	Agents        []AgentConfig    `yaml:"agents"`
	Assignment    AssignmentConfig `yaml:"assignment"`
}

// GridConfig sizes the board.
type GridConfig struct {
	Width        int    `yaml:"width"`
	Height       int    `yaml:"height"`
	Connectivity string `yaml:"connectivity"`
}

// ValuationConfig picks the bidding policy. Lambda is used by "discounted" only.
type ValuationConfig struct {
	Kind   string  `yaml:"kind"`
	Lambda float64 `yaml:"lambda,omitempty"`
}

// TaskConfig places one task.
type TaskConfig struct {
	Reward float64 `yaml:"reward"`
	X      int     `yaml:"x"`
	Y      int     `yaml:"y"`
}

// AgentConfig places one agent.
type AgentConfig struct {
	Capacity int `yaml:"capacity"`
	X        int `yaml:"x"`
	Y        int `yaml:"y"`
}

// AssignmentConfig describes the cost matrix for the solver: either an
// explicit Cost or a Random one. Cost wins when both are set.
type AssignmentConfig struct {
	Objective string        `yaml:"objective"`
	Cost      [][]float64   `yaml:"cost,omitempty"`
	Random    *RandomConfig `yaml:"random,omitempty"`
}

// RandomConfig generates a Size×Size matrix of integers in [1, Max].
type RandomConfig struct {
	Size int   `yaml:"size"`
	Seed int64 `yaml:"seed"`
	Max  int   `yaml:"max"`
}

// Default returns the demo scenario: the four-task, two-agent board on a
// 10×10 grid and a seeded random 5×5 cost matrix.
func Default() *Scenario {
	s := &Scenario{
		Grid:          GridConfig{Width: cbba.DefaultGridSize, Height: cbba.DefaultGridSize, Connectivity: ConnectivityConn4},
		MaxIterations: cbba.DefaultMaxIterations,
		Valuation:     ValuationConfig{Kind: ValuationReward},
		Assignment: AssignmentConfig{
			Objective: ObjectiveMin,
			Random:    &RandomConfig{Size: DefaultRandomSize, Seed: 1, Max: matrix.DefaultRandomMax},
		},
	}
	for _, t := range cbba.DefaultTasks() {
		s.Tasks = append(s.Tasks, TaskConfig{Reward: t.Reward, X: t.Position.X, Y: t.Position.Y})
	}
	for _, a := range cbba.DefaultAgents() {
		s.Agents = append(s.Agents, AgentConfig{Capacity: a.Capacity, X: a.Position.X, Y: a.Position.Y})
	}

	return s
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}

// Parse decodes YAML strictly (unknown keys are errors), fills zero fields
// with defaults and validates the result. Empty input yields an empty board
// with default settings.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unmarshal: %w", ErrInvalidScenario, err)
	}
	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

// Save writes the scenario as YAML, creating the parent directory.
func Save(s *Scenario, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal scenario: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write scenario file: %w", err)
	}

	return nil
}

func (s *Scenario) applyDefaults() {
	if s.Grid.Width == 0 {
		s.Grid.Width = cbba.DefaultGridSize
	}
	if s.Grid.Height == 0 {
		s.Grid.Height = cbba.DefaultGridSize
	}
	if s.Grid.Connectivity == "" {
		s.Grid.Connectivity = ConnectivityConn4
	}
	if s.MaxIterations == 0 {
		s.MaxIterations = cbba.DefaultMaxIterations
	}
	if s.Valuation.Kind == "" {
		s.Valuation.Kind = ValuationReward
	}
	if s.Assignment.Objective == "" {
		s.Assignment.Objective = ObjectiveMin
	}
	if r := s.Assignment.Random; r != nil && r.Max == 0 {
		r.Max = matrix.DefaultRandomMax
	}
}

// Validate checks ranges, enum values, bounds and that no two entities
// share a cell. The first problem found is reported.
func (s *Scenario) Validate() error {
	if s.Grid.Width < 1 || s.Grid.Height < 1 {
		return invalidf("grid %dx%d must be at least 1x1", s.Grid.Width, s.Grid.Height)
	}
	if _, err := s.connectivity(); err != nil {
		return err
	}
	if s.MaxIterations < 1 {
		return invalidf("max_iterations %d must be >= 1", s.MaxIterations)
	}
	switch s.Valuation.Kind {
	case ValuationReward:
	case ValuationDiscounted:
		if math.IsNaN(s.Valuation.Lambda) || s.Valuation.Lambda <= 0 || s.Valuation.Lambda > 1 {
			return invalidf("valuation lambda %v not in (0,1]", s.Valuation.Lambda)
		}
	default:
		return invalidf("valuation kind %q", s.Valuation.Kind)
	}

	used := make(map[gridgraph.Point]string, len(s.Tasks)+len(s.Agents))
	place := func(what string, p gridgraph.Point) error {
		if p.X < 0 || p.X >= s.Grid.Width || p.Y < 0 || p.Y >= s.Grid.Height {
			return invalidf("%s at %v outside %dx%d grid", what, p, s.Grid.Width, s.Grid.Height)
		}
		if prev, ok := used[p]; ok {
			return invalidf("%s at %v: cell occupied by %s", what, p, prev)
		}
		used[p] = what

		return nil
	}
	for i, t := range s.Tasks {
		if math.IsNaN(t.Reward) || math.IsInf(t.Reward, 0) || t.Reward < 0 {
			return invalidf("tasks[%d]: reward %v must be a finite number >= 0", i, t.Reward)
		}
		if err := place(fmt.Sprintf("tasks[%d]", i), gridgraph.Point{X: t.X, Y: t.Y}); err != nil {
			return err
		}
	}
	for i, a := range s.Agents {
		if a.Capacity < 0 {
			return invalidf("agents[%d]: capacity %d must be >= 0", i, a.Capacity)
		}
		if err := place(fmt.Sprintf("agents[%d]", i), gridgraph.Point{X: a.X, Y: a.Y}); err != nil {
			return err
		}
	}

	if _, err := s.Objective(); err != nil {
		return err
	}
	if s.Assignment.Cost == nil && s.Assignment.Random != nil {
		if r := s.Assignment.Random; r.Size < 1 || r.Max < 1 {
			return invalidf("assignment random size %d and max %d must be >= 1", r.Size, r.Max)
		}
	}

	return nil
}

// Objective maps the assignment objective onto the solver's enum.
func (s *Scenario) Objective() (hungarian.Objective, error) {
	switch s.Assignment.Objective {
	case ObjectiveMin, "":
		return hungarian.Minimize, nil
	case ObjectiveMax:
		return hungarian.Maximize, nil
	default:
		return 0, invalidf("assignment objective %q", s.Assignment.Objective)
	}
}

// CostMatrix builds the explicit matrix when Cost is set, otherwise the
// random one. A scenario with neither has no assignment problem.
func (s *Scenario) CostMatrix() (*matrix.Dense, error) {
	switch {
	case s.Assignment.Cost != nil:
		m, err := matrix.NewFromRows(s.Assignment.Cost)
		if err != nil {
			return nil, fmt.Errorf("%w: assignment cost: %w", ErrInvalidScenario, err)
		}

		return m, nil
	case s.Assignment.Random != nil:
		r := s.Assignment.Random
		m, err := matrix.NewRandomCost(r.Size, r.Max, r.Seed)
		if err != nil {
			return nil, fmt.Errorf("%w: assignment random: %w", ErrInvalidScenario, err)
		}

		return m, nil
	default:
		return nil, invalidf("no assignment cost or random section")
	}
}

// SimulationOptions translates the scenario into cbba.Options.
func (s *Scenario) SimulationOptions(logger *zap.Logger) (cbba.Options, error) {
	conn, err := s.connectivity()
	if err != nil {
		return cbba.Options{}, err
	}
	opts := cbba.DefaultOptions()
	opts.MaxIterations = s.MaxIterations
	opts.Width, opts.Height = s.Grid.Width, s.Grid.Height
	opts.Conn = conn
	opts.Logger = logger

	if s.Valuation.Kind == ValuationDiscounted {
		distance := gridgraph.Manhattan
		if conn == gridgraph.Conn8 {
			distance = gridgraph.Chebyshev
		}
		v, err := cbba.NewDiscountedValuation(s.Valuation.Lambda, distance)
		if err != nil {
			return cbba.Options{}, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
		}
		opts.Valuation = v
	}

	return opts, nil
}

// Simulation builds a simulation populated with the scenario's tasks and
// agents, in file order.
func (s *Scenario) Simulation(logger *zap.Logger) (*cbba.Simulation, error) {
	opts, err := s.SimulationOptions(logger)
	if err != nil {
		return nil, err
	}
	sim, err := cbba.NewSimulation(opts)
	if err != nil {
		return nil, err
	}
	if err := s.Populate(sim); err != nil {
		return nil, err
	}

	return sim, nil
}

// Populate adds the scenario's tasks and agents to sim.
func (s *Scenario) Populate(sim *cbba.Simulation) error {
	for i, t := range s.Tasks {
		if _, err := sim.AddTask(t.Reward, gridgraph.Point{X: t.X, Y: t.Y}); err != nil {
			return fmt.Errorf("tasks[%d]: %w", i, err)
		}
	}
	for i, a := range s.Agents {
		if _, err := sim.AddAgent(a.Capacity, gridgraph.Point{X: a.X, Y: a.Y}); err != nil {
			return fmt.Errorf("agents[%d]: %w", i, err)
		}
	}

	return nil
}

func (s *Scenario) connectivity() (gridgraph.Connectivity, error) {
	switch s.Grid.Connectivity {
	case ConnectivityConn4, "":
		return gridgraph.Conn4, nil
	case ConnectivityConn8:
		return gridgraph.Conn8, nil
	default:
		return 0, invalidf("grid connectivity %q", s.Grid.Connectivity)
	}
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidScenario, fmt.Sprintf(format, args...))
}
