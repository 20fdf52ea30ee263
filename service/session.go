package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/metrics"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/beka-birhanu/vinom-maze/solver"
	"github.com/google/uuid"
)

const subscriberBuffer = 256

var (
	ErrAlreadySolving = errors.New("a solve is already running")
	ErrNoLogger       = errors.New("logger is required")
)

// Status is the controller's position in its Idle -> Solving -> Solved|Aborted -> Idle cycle.
type Status int

const (
	Idle Status = iota
	Solving
	Solved
	Aborted
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Solving:
		return "solving"
	case Solved:
		return "solved"
	case Aborted:
		return "aborted"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// State is what the presentation layer renders.
type State struct {
	Session     uuid.UUID       `json:"session"`           // run the state belongs to, uuid.Nil before the first run
	Status      Status          `json:"state"`             // controller status
	Outcome     string          `json:"outcome,omitempty"` // terminal outcome of the last run
	Player      maze.Position   `json:"player"`            // current player cell
	Path        []maze.Position `json:"path"`              // live path while solving, revealed path afterwards
	Direction   maze.Direction  `json:"direction"`         // last movement signal
	ShowingPath bool            `json:"showingPath"`       // true once the reveal phase started
	Steps       int             `json:"steps"`             // search iterations so far
}

// Config holds the dependencies of a SolveSession.
type Config struct {
	Maze        maze.Config      // Initial maze configuration
	Chooser     maze.Chooser     // Randomness for generation, nil seeds from the clock
	StepPacer   solver.Pacer     // Pause between search steps, nil for none
	RevealPacer solver.Pacer     // Pause between reveal ticks, nil for none
	Logger      i.Logger         // Logger
	Metrics     *metrics.Metrics // Optional metrics
}

// SolveSession owns the current maze and at most one running solve over it.
//
// Commands are serialized. Every run carries a session id; updates from a run whose id is
// no longer active are dropped, and commands that replace a run wait for it to exit first.
type SolveSession struct {
	cfg         maze.Config
	grid        *maze.Grid
	chooser     maze.Chooser
	stepPacer   solver.Pacer
	revealPacer solver.Pacer
	logger      i.Logger
	metrics     *metrics.Metrics

	state       State
	active      uuid.UUID
	cancel      func()
	subscribers map[chan State]struct{}

	cmd          sync.Mutex // serializes Start, Stop, Reset and Configure
	sync.RWMutex            // guards the fields above
}

// NewSolveSession validates c.Maze and generates the first maze.
func NewSolveSession(c *Config) (*SolveSession, error) {
	if c.Logger == nil {
		return nil, ErrNoLogger
	}
	if err := c.Maze.Validate(); err != nil {
		return nil, err
	}

	s := &SolveSession{
		chooser:     c.Chooser,
		stepPacer:   c.StepPacer,
		revealPacer: c.RevealPacer,
		logger:      c.Logger,
		metrics:     c.Metrics,
		subscribers: make(map[chan State]struct{}),
	}
	if s.chooser == nil {
		s.chooser = maze.NewChooser()
	}

	grid, err := s.generate(c.Maze)
	if err != nil {
		return nil, err
	}
	s.install(c.Maze, grid)
	return s, nil
}

// Start launches a solve over the current maze. Only valid while Idle.
func (s *SolveSession) Start() error {
	s.cmd.Lock()
	defer s.cmd.Unlock()

	s.Lock()
	defer s.Unlock()

	if s.state.Status != Idle {
		return ErrAlreadySolving
	}

	id := uuid.New()
	s.active = id
	s.state = State{
		Session:   id,
		Status:    Solving,
		Player:    s.cfg.Start,
		Direction: maze.NoDirection,
	}
	s.publish()

	s.metrics.SolveStarted()
	started := time.Now()
	s.cancel = solver.StartSolve(context.Background(), s.grid, s.cfg.Start,
		func(step solver.Step) { s.applyStep(id, step) },
		func(res solver.Result) { s.finish(id, res, time.Since(started)) },
		solver.Options{Pacer: s.stepPacer, RevealPacer: s.revealPacer},
	)

	s.logger.Info(fmt.Sprintf("solve %s started from %s on %dx%d maze", id, s.cfg.Start, s.cfg.Rows, s.cfg.Cols))
	return nil
}

// Stop cancels the running solve, if any, and returns once it has settled in Idle.
func (s *SolveSession) Stop() {
	s.cmd.Lock()
	defer s.cmd.Unlock()

	s.RLock()
	cancel := s.cancel
	s.RUnlock()

	if cancel != nil {
		cancel()
	}
}

// Reset cancels any solve and regenerates the maze with the current configuration.
func (s *SolveSession) Reset() error {
	s.cmd.Lock()
	defer s.cmd.Unlock()

	s.RLock()
	cfg := s.cfg
	s.RUnlock()

	return s.replace(cfg)
}

// Configure cancels any solve and regenerates the maze with cfg.
// An invalid cfg is rejected without touching the current maze or solve.
func (s *SolveSession) Configure(cfg maze.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	s.cmd.Lock()
	defer s.cmd.Unlock()
	return s.replace(cfg)
}

// Snapshot returns a copy of the current state.
func (s *SolveSession) Snapshot() State {
	s.RLock()
	defer s.RUnlock()
	return s.snapshot()
}

// Maze returns the current grid and its configuration. The grid must only be read.
func (s *SolveSession) Maze() (*maze.Grid, maze.Config) {
	s.RLock()
	defer s.RUnlock()
	return s.grid, s.cfg
}

// Subscribe returns a channel receiving every state change and a function to stop it.
// Slow subscribers miss updates rather than block the solver.
func (s *SolveSession) Subscribe() (<-chan State, func()) {
	ch := make(chan State, subscriberBuffer)

	s.Lock()
	s.subscribers[ch] = struct{}{}
	s.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.Lock()
			delete(s.subscribers, ch)
			s.Unlock()
			close(ch)
		})
	}
}

// replace invalidates the active run, waits for it, then installs a fresh maze. Caller holds cmd.
func (s *SolveSession) replace(cfg maze.Config) error {
	s.Lock()
	cancel := s.cancel
	previous := s.active
	s.active = uuid.Nil
	s.Unlock()

	if cancel != nil {
		cancel()
		s.logger.Info(fmt.Sprintf("solve %s cancelled for maze reset", previous))
	}

	grid, err := s.generate(cfg)
	if err != nil {
		s.install(s.cfg, s.grid)
		return err
	}
	s.install(cfg, grid)
	return nil
}

// generate builds a new maze. Caller holds cmd or is the constructor.
func (s *SolveSession) generate(cfg maze.Config) (*maze.Grid, error) {
	started := time.Now()
	grid, err := maze.New(cfg, s.chooser)
	if err != nil {
		s.logger.Error(fmt.Sprintf("generating %dx%d maze: %s", cfg.Rows, cfg.Cols, err))
		return nil, err
	}

	s.metrics.RecordGenerate(time.Since(started))
	s.logger.Info(fmt.Sprintf("generated %dx%d maze with %d passages", cfg.Rows, cfg.Cols, grid.OpenEdges()))
	return grid, nil
}

// install swaps in a new maze and returns to Idle with the player at the start.
func (s *SolveSession) install(cfg maze.Config, grid *maze.Grid) {
	s.Lock()
	defer s.Unlock()

	s.cfg = cfg
	s.grid = grid
	s.cancel = nil
	s.active = uuid.Nil
	s.state = State{
		Status:    Idle,
		Player:    cfg.Start,
		Direction: maze.NoDirection,
	}
	s.publish()
}

// applyStep records a solver step if id is still the active run.
func (s *SolveSession) applyStep(id uuid.UUID, step solver.Step) {
	s.Lock()
	defer s.Unlock()

	if s.active != id {
		s.metrics.StaleWrite()
		return
	}

	switch step.Phase {
	case solver.PhaseSearch:
		s.state.Player = step.Player
		s.state.Path = step.Path
		s.state.Direction = step.Direction
		s.state.Steps = step.Index + 1
	case solver.PhaseReveal:
		if s.state.Status == Solving {
			s.state.Status = Solved
			s.state.Outcome = solver.Solved.String()
			s.state.ShowingPath = true
		}
		s.state.Player = step.Player
		s.state.Path = step.Path
	}
	s.publish()
}

// finish settles the run in Idle if id is still the active run.
func (s *SolveSession) finish(id uuid.UUID, res solver.Result, elapsed time.Duration) {
	s.metrics.SolveFinished(res.Outcome.String(), res.Steps, elapsed)

	s.Lock()
	defer s.Unlock()

	if s.active != id {
		s.metrics.StaleWrite()
		return
	}

	s.state.Outcome = res.Outcome.String()
	switch res.Outcome {
	case solver.Solved:
		s.state.Status = Solved
		s.state.ShowingPath = true
		s.state.Path = res.Path
		s.state.Player = res.Path[len(res.Path)-1]
		s.logger.Info(fmt.Sprintf("solve %s reached the target in %d steps, path length %d", id, res.Steps, len(res.Path)))
	case solver.Aborted:
		s.state.Status = Aborted
		s.state.Path = nil
		s.publish()
		s.state.Player = s.cfg.Start
		s.logger.Info(fmt.Sprintf("solve %s aborted after %d steps", id, res.Steps))
	case solver.Exhausted:
		s.state.Path = nil
		s.logger.Warning(fmt.Sprintf("solve %s exhausted the maze after %d steps without reaching a target", id, res.Steps))
	}

	s.state.Status = Idle
	s.active = uuid.Nil
	s.cancel = nil
	s.publish()
}

// snapshot copies the state. Caller holds the lock.
func (s *SolveSession) snapshot() State {
	st := s.state
	st.Path = slices.Clone(s.state.Path)
	return st
}

// publish fans the current state out to subscribers without blocking. Caller holds the write lock.
func (s *SolveSession) publish() {
	if len(s.subscribers) == 0 {
		return
	}
	st := s.snapshot()
	for ch := range s.subscribers {
		select {
		case ch <- st:
		default:
		}
	}
}
