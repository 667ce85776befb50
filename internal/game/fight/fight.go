// Package fight orchestrates one match: placement, the fixed turn sequence,
// action execution through the action handler, deaths and termination.
package fight

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/tactics/internal/game/battlefield"
	"github.com/cory-johannsen/tactics/internal/game/event"
	"github.com/cory-johannsen/tactics/internal/game/fight/action"
	"github.com/cory-johannsen/tactics/internal/game/fight/fighter"
	"github.com/cory-johannsen/tactics/internal/game/fight/order"
)

var (
	// ErrNotEnoughTeams is returned when a fight is built with fewer than two non-empty teams.
	ErrNotEnoughTeams = errors.New("a fight needs at least two non-empty teams")
	// ErrNotPlacement is returned by placement operations once the fight has started.
	ErrNotPlacement = errors.New("fight is not in placement")
	// ErrNotActive is returned by operations that need a running fight.
	ErrNotActive = errors.New("fight is not active")
	// ErrUnknownFighter is returned for a fighter that is not part of the fight.
	ErrUnknownFighter = errors.New("fighter is not part of the fight")
	// ErrInvalidStartPlace is returned when placing a fighter outside its team's start places.
	ErrInvalidStartPlace = errors.New("cell is not a start place of the fighter's team")
	// ErrNoStartPlace is returned when a team has more fighters than free start places.
	ErrNoStartPlace = errors.New("no free start place left")
)

// State is the lifecycle phase of a fight.
type State int

const (
	StatePlacement State = iota
	StateActive
	StateFinished
)

// String returns the lower-case name of the state.
func (s State) String() string {
	switch s {
	case StatePlacement:
		return "placement"
	case StateActive:
		return "active"
	case StateFinished:
		return "finished"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Settings are the timings and rules of a fight.
type Settings struct {
	// TurnDuration is the time limit of one turn.
	TurnDuration time.Duration
	// MoveStepDuration is how long a move stays pending per cell walked.
	MoveStepDuration time.Duration
	// AttackDuration is how long a close combat attack stays pending.
	AttackDuration time.Duration
	// Order computes the turn sequence; nil selects order.AlternateTeam.
	Order order.Strategy
}

// DefaultSettings returns the timings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		TurnDuration:     30 * time.Second,
		MoveStepDuration: 300 * time.Millisecond,
		AttackDuration:   500 * time.Millisecond,
	}
}

// Fight is one running match.
// All methods are safe for concurrent use.
//
// Lock order: Fight.mu is never held while calling into the action handler or
// publishing on the bus; fighter and battlefield locks may be taken under it.
type Fight struct {
	id       string
	logger   *zap.Logger
	bus      *event.Bus
	field    *battlefield.Battlefield
	handler  *action.Handler
	settings Settings
	teams    []*fighter.Team

	mu     sync.Mutex
	state  State
	turns  *TurnList
	turn   *Turn
	winner *fighter.Team
	dead   map[*fighter.Fighter]struct{}
	err    error
	done   chan struct{}
}

// New creates a fight in placement over field.
//
// Precondition: field must be empty; every fighter belongs to exactly one of teams.
// Postcondition: State() == StatePlacement; the fight owns a fresh bus and action handler.
func New(id string, field *battlefield.Battlefield, teams []*fighter.Team, settings Settings, logger *zap.Logger) (*Fight, error) {
	nonEmpty := 0
	for _, t := range teams {
		if t.Len() > 0 {
			nonEmpty++
		}
	}
	if nonEmpty < 2 {
		return nil, ErrNotEnoughTeams
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if settings.Order == nil {
		settings.Order = order.AlternateTeam{}
	}

	bus := event.NewBus()
	f := &Fight{
		id:       id,
		logger:   logger,
		bus:      bus,
		field:    field,
		handler:  action.NewHandler(bus, logger),
		settings: settings,
		teams:    slices.Clone(teams),
		state:    StatePlacement,
		dead:     make(map[*fighter.Fighter]struct{}),
		done:     make(chan struct{}),
	}
	f.handler.OnFault(f.fail)
	f.handler.OnStarted(func(action.Action, action.Result) { f.collectDeaths() })
	return f, nil
}

// ID returns the fight id.
func (f *Fight) ID() string { return f.id }

// Bus returns the event bus of the fight.
func (f *Fight) Bus() *event.Bus { return f.bus }

// Battlefield returns the live battlefield.
func (f *Fight) Battlefield() *battlefield.Battlefield { return f.field }

// Handler returns the action handler serialising the fight's actions.
func (f *Fight) Handler() *action.Handler { return f.handler }

// Settings returns the fight settings.
func (f *Fight) Settings() Settings { return f.settings }

// Logger returns the fight-scoped logger.
func (f *Fight) Logger() *zap.Logger { return f.logger }

// Teams returns the teams in the order given at creation.
func (f *Fight) Teams() []*fighter.Team { return slices.Clone(f.teams) }

// Fighters returns every fighter of every team, team by team.
func (f *Fight) Fighters() []*fighter.Fighter {
	var out []*fighter.Fighter
	for _, t := range f.teams {
		out = append(out, t.Fighters()...)
	}
	return out
}

// State returns the current lifecycle phase.
func (f *Fight) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Turn returns the active turn, or nil between turns and outside StateActive.
func (f *Fight) Turn() *Turn {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.turn
}

// Order returns the fixed turn sequence; nil before the fight started.
func (f *Fight) Order() []*fighter.Fighter {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.turns == nil {
		return nil
	}
	return f.turns.Order()
}

// Winner returns the winning team once finished; nil otherwise or when nobody won.
func (f *Fight) Winner() *fighter.Team {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.winner
}

// Err returns the internal fault that stopped the fight, if any.
func (f *Fight) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Done is closed once the fight is finished.
func (f *Fight) Done() <-chan struct{} { return f.done }

// Place puts ft on one of its team's start places, moving it if already placed.
//
// Precondition: State() == StatePlacement.
// Postcondition: on success ft.Cell() == cellID.
func (f *Fight) Place(ft *fighter.Fighter, cellID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StatePlacement {
		return ErrNotPlacement
	}
	if !f.member(ft) {
		return fmt.Errorf("placing %s: %w", ft, ErrUnknownFighter)
	}
	if !slices.Contains(ft.Team().StartPlaces(), cellID) {
		return fmt.Errorf("placing %s on cell %d: %w", ft, cellID, ErrInvalidStartPlace)
	}
	if ft.Cell() == fighter.NoCell {
		return ft.Place(f.field, cellID)
	}
	return ft.Move(f.field, cellID)
}

// SetReady updates the readiness of ft. The fight starts as soon as every
// fighter is ready.
//
// Precondition: State() == StatePlacement.
func (f *Fight) SetReady(ft *fighter.Fighter, ready bool) error {
	f.mu.Lock()
	if f.state != StatePlacement {
		f.mu.Unlock()
		return ErrNotPlacement
	}
	if !f.member(ft) {
		f.mu.Unlock()
		return fmt.Errorf("readying %s: %w", ft, ErrUnknownFighter)
	}
	ft.SetReady(ready)
	all := !slices.ContainsFunc(f.Fighters(), func(m *fighter.Fighter) bool { return !m.Ready() })
	f.mu.Unlock()

	if !ready || !all {
		return nil
	}
	if err := f.Start(); err != nil && !errors.Is(err, ErrNotPlacement) {
		return err
	}
	return nil
}

// Start ends the placement phase: unplaced fighters take the first free start
// place of their team, the turn order is computed once, Started is published
// and the first turn begins.
//
// Precondition: State() == StatePlacement.
// Postcondition: on success State() is StateActive, or StateFinished when fewer
// than two teams can fight.
func (f *Fight) Start() error {
	if err := f.begin(); err != nil {
		return err
	}
	f.logger.Info("fight started", zap.Int("fighters", len(f.Order())))
	event.Publish(f.bus, Started{Fight: f})

	if f.checkTermination() {
		return nil
	}
	f.nextTurn()
	return nil
}

func (f *Fight) begin() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StatePlacement {
		return ErrNotPlacement
	}
	if err := f.placeRemaining(); err != nil {
		return err
	}
	f.state = StateActive
	f.turns = NewTurnList(f.settings.Order.Compute(f.teams))
	return nil
}

// placeRemaining must be called with f.mu held.
func (f *Fight) placeRemaining() error {
	for _, t := range f.teams {
		places := t.StartPlaces()
		for _, ft := range t.Fighters() {
			if ft.Cell() != fighter.NoCell {
				continue
			}
			placed := false
			for _, c := range places {
				if err := ft.Place(f.field, c); err == nil {
					placed = true
					break
				}
			}
			if !placed {
				return fmt.Errorf("placing %s of team %d: %w", ft, t.Number(), ErrNoStartPlace)
			}
		}
	}
	return nil
}

// Stop finishes the fight without a winner. Any pending action is terminated.
// Stopping a finished fight has no effect.
func (f *Fight) Stop() {
	f.finish(nil)
}

// Leave kills ft, as when its player disconnects.
//
// Precondition: State() == StateActive.
// Postcondition: ft is dead and removed from the battlefield; the fight may be finished.
func (f *Fight) Leave(ft *fighter.Fighter) error {
	f.mu.Lock()
	state := f.state
	known := f.member(ft)
	f.mu.Unlock()

	if state != StateActive {
		return ErrNotActive
	}
	if !known {
		return fmt.Errorf("leaving %s: %w", ft, ErrUnknownFighter)
	}
	current, _ := ft.Life()
	ft.Damage(current)
	f.collectDeaths()
	return nil
}

// member must be called with f.mu held.
func (f *Fight) member(ft *fighter.Fighter) bool {
	return ft != nil && slices.Contains(f.teams, ft.Team())
}

// nextTurn opens the turn of the next living fighter.
func (f *Fight) nextTurn() {
	t := f.openTurn()
	if t == nil {
		return
	}
	f.logger.Debug("turn started", zapFighter(t.Fighter()), zap.Int("round", t.Round()))
	event.Publish(f.bus, TurnStarted{Fight: f, Turn: t})
	t.arm()
}

func (f *Fight) openTurn() *Turn {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateActive || f.turn != nil {
		return nil
	}
	next := f.turns.Next()
	if next == nil {
		return nil
	}
	f.turn = newTurn(f, next, f.turns.Round(), f.settings.TurnDuration)
	return f.turn
}

// endTurn closes t if it is still the active turn, then advances.
func (f *Fight) endTurn(t *Turn) {
	if !f.closeTurn(t) {
		return
	}
	f.advance(t)
}

// closeTurn detaches and closes t.
//
// Postcondition: returns true iff t was the active turn and this call closed it.
func (f *Fight) closeTurn(t *Turn) bool {
	return f.detachTurn(t) && t.close()
}

// advance publishes the end of the closed turn t and opens the next one.
func (f *Fight) advance(t *Turn) {
	f.logger.Debug("turn stopped", zapFighter(t.Fighter()), zap.Int("round", t.Round()))
	event.Publish(f.bus, TurnStopped{Fight: f, Turn: t})

	if f.checkTermination() {
		return
	}
	f.nextTurn()
}

func (f *Fight) detachTurn(t *Turn) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.turn != t {
		return false
	}
	f.turn = nil
	return true
}

// collectDeaths removes newly dead fighters from the battlefield, publishes
// FighterDied for each, then checks termination and ends the turn of a dead
// fighter.
func (f *Fight) collectDeaths() {
	died, current := f.newlyDead()
	if len(died) == 0 {
		return
	}
	for _, ft := range died {
		ft.Remove(f.field)
		f.logger.Info("fighter died", zapFighter(ft))
		event.Publish(f.bus, FighterDied{Fight: f, Fighter: ft})
	}

	if f.checkTermination() {
		return
	}
	if current != nil && current.Fighter().Dead() {
		current.Stop()
	}
}

func (f *Fight) newlyDead() ([]*fighter.Fighter, *Turn) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateActive {
		return nil, nil
	}
	var died []*fighter.Fighter
	for _, t := range f.teams {
		for _, ft := range t.Fighters() {
			if _, known := f.dead[ft]; known || !ft.Dead() {
				continue
			}
			f.dead[ft] = struct{}{}
			died = append(died, ft)
		}
	}
	return died, f.turn
}

// checkTermination finishes the fight when fewer than two teams have a living
// fighter.
//
// Postcondition: returns true iff the fight is finished.
func (f *Fight) checkTermination() bool {
	var alive []*fighter.Team
	for _, t := range f.teams {
		if t.Alive() {
			alive = append(alive, t)
		}
	}
	if len(alive) >= 2 {
		return f.State() == StateFinished
	}

	var winner *fighter.Team
	if len(alive) == 1 {
		winner = alive[0]
	}
	f.finish(winner)
	return true
}

// finish moves the fight to StateFinished, terminating the pending action and
// closing the active turn.
func (f *Fight) finish(winner *fighter.Team) {
	t, ok := f.markFinished(winner)
	if !ok {
		return
	}

	f.handler.Terminate()
	if t != nil && t.close() {
		event.Publish(f.bus, TurnStopped{Fight: f, Turn: t})
	}

	fields := []zap.Field{}
	if winner != nil {
		fields = append(fields, zap.Int("winner", winner.Number()))
	}
	f.logger.Info("fight stopped", fields...)
	event.Publish(f.bus, Stopped{Fight: f, Winner: winner})
	close(f.done)
}

func (f *Fight) markFinished(winner *fighter.Team) (*Turn, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == StateFinished {
		return nil, false
	}
	f.state = StateFinished
	f.winner = winner
	t := f.turn
	f.turn = nil
	return t, true
}

// fail records an internal fault and stops the fight. Other fights are unaffected.
func (f *Fight) fail(err error) {
	f.mu.Lock()
	if f.err == nil {
		f.err = err
	}
	f.mu.Unlock()

	f.logger.Error("fight fault", zap.Error(err))
	f.finish(nil)
}

func (f *Fight) recoverFault() {
	if r := recover(); r != nil {
		f.fail(fmt.Errorf("fight %s: %v", f.id, r))
	}
}

func zapFighter(ft *fighter.Fighter) zap.Field {
	return zap.Stringer("fighter", ft)
}
