package listener

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/tactics/internal/game/event"
	"github.com/cory-johannsen/tactics/internal/game/fight"
	"github.com/cory-johannsen/tactics/internal/game/fight/action"
	"github.com/cory-johannsen/tactics/internal/observability"
)

// LogFightEvents writes one structured entry per fight, turn, action and death
// event of f.
//
// Precondition: logger must be non-nil.
func LogFightEvents(f *fight.Fight, logger *zap.Logger) []event.Subscription {
	bus := f.Bus()
	logger = observability.FightLogger(logger, f.ID())

	return []event.Subscription{
		event.Subscribe(bus, func(e fight.Started) {
			logger.Info("fight begins", zap.Int("fighters", len(e.Fight.Order())))
		}),
		event.Subscribe(bus, func(e fight.TurnStarted) {
			logger.Debug("turn begins",
				zap.Stringer("fighter", e.Turn.Fighter()),
				zap.Int("round", e.Turn.Round()),
			)
		}),
		event.Subscribe(bus, func(e fight.TurnStopped) {
			logger.Debug("turn ends",
				zap.Stringer("fighter", e.Turn.Fighter()),
				zap.Int("round", e.Turn.Round()),
			)
		}),
		event.Subscribe(bus, func(e action.Started) {
			logger.Info("action",
				zap.Stringer("fighter", e.Action.Performer()),
				zap.Stringer("type", e.Action.Type()),
				zap.Bool("success", e.Result.Success()),
				zap.Any("args", e.Result.Arguments()),
			)
		}),
		event.Subscribe(bus, func(e fight.FighterDied) {
			logger.Info("fighter killed", zap.Stringer("fighter", e.Fighter))
		}),
		event.Subscribe(bus, func(e fight.Stopped) {
			if e.Winner == nil {
				logger.Info("fight over, no winner")
				return
			}
			logger.Info("fight over", zap.Int("winner", e.Winner.Number()))
		}),
	}
}
