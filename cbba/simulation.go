package cbba

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/lvassign/gridgraph"
)

const (
	// DefaultMaxIterations caps the number of Step calls per run.
	DefaultMaxIterations = 5
	// DefaultGridSize is the width and height of the default board.
	DefaultGridSize = 10
)

// Options configures a Simulation.
//
// Fields:
//   - MaxIterations — number of rounds Step may run before ErrIterationLimit (≥1).
//   - Width, Height — board size (≥1 each).
//   - Conn          — board connectivity; Conn8 makes distances Chebyshev.
//   - Valuation     — bidding policy; nil means RewardValuation.
//   - Logger        — lifecycle logging; nil means zap.NewNop().
type Options struct {
	MaxIterations int
	Width, Height int
	Conn          gridgraph.Connectivity
	Valuation     Valuation
	Logger        *zap.Logger
}

// DefaultOptions returns 5 iterations on a 10×10 Conn4 board with reward bids.
func DefaultOptions() Options {
	return Options{
		MaxIterations: DefaultMaxIterations,
		Width:         DefaultGridSize,
		Height:        DefaultGridSize,
		Conn:          gridgraph.Conn4,
		Valuation:     RewardValuation{},
	}
}

// Simulation owns the state of one allocation session: the board, the task
// set, the agents, the iteration counter and the history. The caller owns
// its lifecycle (create, step, reset); it is not safe for concurrent use.
type Simulation struct {
	id        uuid.UUID
	opts      Options
	valuation Valuation
	log       *zap.Logger
	grid      *gridgraph.Grid
	tasks     []Task
	agents    []Agent
	history   []HistoryRecord
	iteration int
}

// NewSimulation validates opts and returns an empty simulation.
func NewSimulation(opts Options) (*Simulation, error) {
	if opts.MaxIterations < 1 {
		return nil, fmt.Errorf("max iterations %d: %w", opts.MaxIterations, ErrBadOptions)
	}
	grid, err := gridgraph.NewGrid(opts.Width, opts.Height, gridgraph.GridOptions{Conn: opts.Conn})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadOptions, err)
	}
	valuation := opts.Valuation
	if valuation == nil {
		valuation = RewardValuation{}
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	s := &Simulation{
		id:        uuid.New(),
		opts:      opts,
		valuation: valuation,
		grid:      grid,
	}
	s.log = log.With(zap.String("simulation", s.id.String()))
	s.log.Debug("simulation created",
		zap.Int("width", opts.Width),
		zap.Int("height", opts.Height),
		zap.Int("max_iterations", opts.MaxIterations))

	return s, nil
}

// AddTask places a new task at the given cell. Its id is one more than the
// largest task id so far (0 for the first task).
// Errors: ErrNegativeReward, gridgraph.ErrOutOfBounds, gridgraph.ErrCellOccupied.
func (s *Simulation) AddTask(reward float64, at gridgraph.Point) (Task, error) {
	if math.IsNaN(reward) || math.IsInf(reward, 0) || reward < 0 {
		return Task{}, fmt.Errorf("reward %v: %w", reward, ErrNegativeReward)
	}
	t := Task{ID: nextTaskID(s.tasks), Reward: reward, Position: at}
	if err := s.grid.Place(at, gridgraph.Occupant{Kind: gridgraph.TaskCell, ID: t.ID}); err != nil {
		return Task{}, err
	}
	s.tasks = append(s.tasks, t)
	s.log.Debug("task added", zap.Int("task", t.ID), zap.Float64("reward", reward), zap.Stringer("at", at))

	return t, nil
}

// AddTaskNear is AddTask on the free cell closest to at.
func (s *Simulation) AddTaskNear(reward float64, at gridgraph.Point) (Task, error) {
	p, err := s.grid.NearestFree(at)
	if err != nil {
		return Task{}, err
	}

	return s.AddTask(reward, p)
}

// AddAgent places a new agent with an empty bundle at the given cell.
// Errors: ErrNegativeCapacity, gridgraph.ErrOutOfBounds, gridgraph.ErrCellOccupied.
func (s *Simulation) AddAgent(capacity int, at gridgraph.Point) (Agent, error) {
	if capacity < 0 {
		return Agent{}, fmt.Errorf("capacity %d: %w", capacity, ErrNegativeCapacity)
	}
	a := Agent{ID: nextAgentID(s.agents), Capacity: capacity, Bundle: []Task{}, Bids: Bids{}, Position: at}
	if err := s.grid.Place(at, gridgraph.Occupant{Kind: gridgraph.AgentCell, ID: a.ID}); err != nil {
		return Agent{}, err
	}
	s.agents = append(s.agents, a)
	s.log.Debug("agent added", zap.Int("agent", a.ID), zap.Int("capacity", capacity), zap.Stringer("at", at))

	return a.Clone(), nil
}

// AddAgentNear is AddAgent on the free cell closest to at.
func (s *Simulation) AddAgentNear(capacity int, at gridgraph.Point) (Agent, error) {
	p, err := s.grid.NearestFree(at)
	if err != nil {
		return Agent{}, err
	}

	return s.AddAgent(capacity, p)
}

// Step runs one round over the current agents and tasks and appends a
// history record. Once MaxIterations rounds have run it returns
// ErrIterationLimit and leaves the state untouched.
func (s *Simulation) Step() (HistoryRecord, error) {
	if s.Done() {
		return HistoryRecord{}, fmt.Errorf("iteration %d of %d: %w", s.iteration, s.opts.MaxIterations, ErrIterationLimit)
	}
	next := Advance(s.agents, s.tasks, s.valuation)
	if err := Validate(next); err != nil {
		return HistoryRecord{}, err
	}

	s.iteration++
	s.agents = next
	rec := HistoryRecord{Iteration: s.iteration, Agents: cloneAgents(next)}
	s.history = append(s.history, rec)
	s.log.Debug("iteration complete",
		zap.Int("iteration", s.iteration),
		zap.Int("assigned", assignedCount(next)),
		zap.Int("tasks", len(s.tasks)))

	return rec.Clone(), nil
}

// Run steps until the iteration cap and returns the records it produced.
func (s *Simulation) Run() ([]HistoryRecord, error) {
	var out []HistoryRecord
	for !s.Done() {
		rec, err := s.Step()
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}

	return out, nil
}

// Reset clears tasks, agents, board, history and the iteration counter.
// The simulation gets a fresh ID.
func (s *Simulation) Reset() {
	s.log.Debug("simulation reset", zap.Int("iteration", s.iteration))
	s.tasks = nil
	s.agents = nil
	s.history = nil
	s.iteration = 0
	s.grid.Clear()
	s.id = uuid.New()
	s.log = s.baseLogger().With(zap.String("simulation", s.id.String()))
}

// LoadDefaults adds the demo board: four tasks and two agents of capacity 2.
func (s *Simulation) LoadDefaults() error {
	for _, t := range DefaultTasks() {
		if _, err := s.AddTask(t.Reward, t.Position); err != nil {
			return err
		}
	}
	for _, a := range DefaultAgents() {
		if _, err := s.AddAgent(a.Capacity, a.Position); err != nil {
			return err
		}
	}

	return nil
}

// ID identifies the current session in logs.
func (s *Simulation) ID() uuid.UUID { return s.id }

// Iteration returns the number of completed rounds.
func (s *Simulation) Iteration() int { return s.iteration }

// MaxIterations returns the iteration cap.
func (s *Simulation) MaxIterations() int { return s.opts.MaxIterations }

// Done reports whether the iteration cap is reached.
func (s *Simulation) Done() bool { return s.iteration >= s.opts.MaxIterations }

// Tasks returns a copy of the task set.
func (s *Simulation) Tasks() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)

	return out
}

// Agents returns deep copies of the current agents.
func (s *Simulation) Agents() []Agent {
	out := cloneAgents(s.agents)
	if out == nil {
		out = []Agent{}
	}

	return out
}

// History returns deep copies of all records, oldest first.
func (s *Simulation) History() []HistoryRecord {
	out := make([]HistoryRecord, len(s.history))
	for i, r := range s.history {
		out[i] = r.Clone()
	}

	return out
}

// Grid returns a copy of the board.
func (s *Simulation) Grid() *gridgraph.Grid { return s.grid.Clone() }

// Valuation returns the bidding policy in use.
func (s *Simulation) Valuation() Valuation { return s.valuation }

func (s *Simulation) baseLogger() *zap.Logger {
	if s.opts.Logger == nil {
		return zap.NewNop()
	}

	return s.opts.Logger
}

func nextTaskID(tasks []Task) int {
	id := 0
	for _, t := range tasks {
		if t.ID >= id {
			id = t.ID + 1
		}
	}

	return id
}

func nextAgentID(agents []Agent) int {
	id := 0
	for _, a := range agents {
		if a.ID >= id {
			id = a.ID + 1
		}
	}

	return id
}

func assignedCount(agents []Agent) int {
	n := 0
	for _, a := range agents {
		n += len(a.Bundle)
	}

	return n
}
