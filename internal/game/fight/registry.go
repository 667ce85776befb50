package fight

import (
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/tactics/internal/game/battlefield"
	"github.com/cory-johannsen/tactics/internal/game/event"
	"github.com/cory-johannsen/tactics/internal/game/fight/action"
	"github.com/cory-johannsen/tactics/internal/game/fight/fighter"
	"github.com/cory-johannsen/tactics/internal/observability"
)

// Registry holds every running fight, keyed by a generated id.
// All methods are safe for concurrent use.
type Registry struct {
	settings Settings
	logger   *zap.Logger

	mu     sync.RWMutex
	fights map[string]*Fight
	hooks  []func(*Fight)
}

// NewRegistry creates an empty Registry building fights with settings.
//
// Postcondition: Len() == 0.
func NewRegistry(settings Settings, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{settings: settings, logger: logger, fights: make(map[string]*Fight)}
}

// OnCreate registers fn to run on every fight created afterwards, before
// Create returns. Hooks subscribe the fight's listeners.
func (r *Registry) OnCreate(fn func(*Fight)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks = append(r.hooks, fn)
}

// Create builds a fight over a fresh battlefield of topology and registers it
// until it stops.
//
// Precondition: topology must be valid.
// Postcondition: on success Get(f.ID()) returns f while f is not finished.
func (r *Registry) Create(topology *battlefield.Topology, teams []*fighter.Team) (*Fight, error) {
	id := uuid.NewString()
	f, err := New(id, battlefield.New(topology), teams, r.settings, observability.FightLogger(r.logger, id))
	if err != nil {
		return nil, fmt.Errorf("creating fight on map %q: %w", topology.ID, err)
	}
	event.Subscribe(f.Bus(), func(Stopped) { r.remove(id) })

	r.mu.Lock()
	r.fights[id] = f
	hooks := slices.Clone(r.hooks)
	r.mu.Unlock()

	for _, fn := range hooks {
		fn(f)
	}
	r.logger.Info("fight created",
		zap.String("fight_id", id),
		zap.String("map", topology.ID),
		zap.Int("action_listeners", event.Count[action.Started](f.Bus())),
	)
	return f, nil
}

// Get returns the running fight with the given id.
//
// Postcondition: Returns (fight, true) if found, or (nil, false) otherwise.
func (r *Registry) Get(id string) (*Fight, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.fights[id]
	return f, ok
}

// Len returns the number of running fights.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.fights)
}

// StopAll stops every running fight.
func (r *Registry) StopAll() {
	r.mu.RLock()
	fights := make([]*Fight, 0, len(r.fights))
	for _, f := range r.fights {
		fights = append(fights, f)
	}
	r.mu.RUnlock()

	for _, f := range fights {
		f.Stop()
	}
}

func (r *Registry) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.fights, id)
}
