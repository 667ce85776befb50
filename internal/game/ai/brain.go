package ai

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cory-johannsen/tactics/internal/game/event"
	"github.com/cory-johannsen/tactics/internal/game/fight"
	"github.com/cory-johannsen/tactics/internal/game/fight/fighter"
)

// Options tune a Brain.
type Options struct {
	// Workers bounds the concurrent candidate evaluations of one decision.
	Workers int
	// ThinkDelay is the pause before each decision.
	ThinkDelay time.Duration
}

// Brain plays the turns of every monster of the fights it is attached to.
// Each turn is played on its own goroutine.
type Brain struct {
	opts   Options
	logger *zap.Logger
	wg     sync.WaitGroup
}

// NewBrain creates a Brain.
//
// Precondition: opts.Workers >= 1; logger may be nil.
func NewBrain(opts Options, logger *zap.Logger) *Brain {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Brain{opts: opts, logger: logger}
}

// Attach makes the brain play the monster turns of f.
//
// Postcondition: every TurnStarted of a monster published on f's bus starts a
// play goroutine until the returned subscription is cancelled.
func (b *Brain) Attach(f *fight.Fight) event.Subscription {
	return event.Subscribe(f.Bus(), func(e fight.TurnStarted) {
		if e.Turn.Fighter().Kind() != fighter.KindMonster {
			return
		}
		b.wg.Add(1)
		go func() {
			defer b.wg.Done()
			b.Play(e.Turn)
		}()
	})
}

// Wait blocks until every turn being played has returned.
func (b *Brain) Wait() { b.wg.Wait() }

// Play acts for the turn's fighter until nothing useful is left, then stops
// the turn. It returns early when the turn or the fight ends.
func (b *Brain) Play(turn *fight.Turn) {
	f := turn.Fight()
	logger := f.Logger().With(zap.Stringer("fighter", turn.Fighter()), zap.Int("round", turn.Round()))

	for turn.Active() {
		if !b.think(f) {
			return
		}
		acted, err := b.act(turn)
		if err != nil {
			logger.Error("ai decision failed", zap.Error(err))
			break
		}
		if !acted {
			break
		}
		waitIdle(f)
	}
	logger.Debug("ai turn over")
	turn.Stop()
}

// think waits for the think delay. It reports false when the fight ended meanwhile.
func (b *Brain) think(f *fight.Fight) bool {
	if b.opts.ThinkDelay <= 0 {
		return f.State() == fight.StateActive
	}
	select {
	case <-time.After(b.opts.ThinkDelay):
		return true
	case <-f.Done():
		return false
	}
}

// act performs one action: an attack when an enemy is adjacent, otherwise a
// move toward the best reachable position.
func (b *Brain) act(turn *fight.Turn) (bool, error) {
	f := turn.Fight()
	self := turn.Fighter()
	enemies := EnemiesOf(f, self)
	if len(enemies) == 0 {
		return false, nil
	}

	if turn.ActionPoints() >= fight.AttackCost {
		dims := f.Battlefield().Dimensions()
		adjacent := slices.DeleteFunc(slices.Clone(enemies), func(e *fighter.Fighter) bool {
			return !dims.Adjacent(self.Cell(), e.Cell())
		})
		if target := WeakestEnemy(adjacent); target != nil {
			return turn.Perform(fight.NewAttack(turn, target)), nil
		}
	}

	path, err := b.bestPath(turn, enemies)
	if err != nil || path == nil {
		return false, err
	}
	return turn.Perform(fight.NewMove(turn, path)), nil
}

// bestPath explores every cell reachable with the turn's movement points and
// returns the path to the best scored one, or nil when no cell beats staying.
// Equal scores prefer the lower cell id.
func (b *Brain) bestPath(turn *fight.Turn, enemies []*fighter.Fighter) ([]int, error) {
	self := turn.Fighter()
	live := turn.Fight().Battlefield()
	paths := Reachable(live, self.Cell(), turn.MovementPoints())
	if len(paths) == 0 {
		return nil, nil
	}

	cells := make([]int, 0, len(paths))
	for c := range paths {
		cells = append(cells, c)
	}
	slices.Sort(cells)

	origin := NewSimulation(live, self)
	sims := make([]*Simulation, len(cells))
	scores := make([]Score, len(cells))
	var g errgroup.Group
	g.SetLimit(b.opts.Workers)
	for i, c := range cells {
		g.Go(func() error {
			sim, err := origin.MoveTo(c)
			if err != nil {
				return fmt.Errorf("evaluating cell %d: %w", c, err)
			}
			sims[i], scores[i] = sim, Evaluate(sim, enemies)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	best, bestScore := -1, Evaluate(origin, enemies)
	for i, s := range scores {
		if s.Better(bestScore) {
			best, bestScore = i, s
		}
	}
	if best < 0 {
		return nil, nil
	}
	b.logger.Debug("ai destination chosen",
		zap.Stringer("fighter", self),
		zap.Int("cell", cells[best]),
		zap.Int("candidates", len(cells)),
		zap.Int("overrides", sims[best].field.Overrides()),
		zap.Int("score", bestScore.Value()),
	)
	return paths[cells[best]], nil
}

// waitIdle blocks until the fight's action handler has no pending action or
// the fight is over.
func waitIdle(f *fight.Fight) {
	idle := make(chan struct{})
	f.Handler().Terminated(func() { close(idle) })
	select {
	case <-idle:
	case <-f.Done():
	}
}
