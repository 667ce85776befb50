package action

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/cory-johannsen/tactics/internal/game/clock"
	"github.com/cory-johannsen/tactics/internal/game/event"
)

// Handler serialises the actions of one fight: at most one action is pending
// (started and not yet ended) at any instant.
// All methods are safe for concurrent use.
//
// mu guards the pending action, its timer, the generation token and the
// termination listeners, so that Start, Terminate and a timer fire cannot
// end the same action twice or lose a transition.
type Handler struct {
	bus    *event.Bus
	logger *zap.Logger

	mu         sync.Mutex
	pending    Action
	generation uint64
	timer      *clock.Timer
	listeners  []func()
	onFault    func(error)
	onStarted  func(Action, Result)
}

// NewHandler creates an idle Handler publishing on bus.
//
// Precondition: bus must not be nil; logger may be nil.
// Postcondition: Pending() is false.
func NewHandler(bus *event.Bus, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{bus: bus, logger: logger}
}

// OnFault registers the callback receiving unexpected failures raised while
// ending an action from the timer goroutine.
func (h *Handler) OnFault(fn func(error)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onFault = fn
}

// OnStarted registers the callback run after every Start that called a.Start,
// once Started has reached every subscriber and the timer is armed. It runs on
// the goroutine calling Start and may call back into the Handler.
func (h *Handler) OnStarted(fn func(Action, Result)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onStarted = fn
}

// Pending reports whether an action is in flight.
func (h *Handler) Pending() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pending != nil
}

// Start runs a.
//
// Returns false without calling a.Start when an action is already pending or
// a.Validate fails. Otherwise a.Start is called, Started is published and true
// is returned, whatever the result. A failed result leaves the handler idle
// without querying a.Duration; a successful one makes a pending until its
// duration elapses or Terminate is called.
func (h *Handler) Start(a Action) bool {
	result, generation, ok := h.begin(a)
	if !ok {
		return false
	}

	event.Publish(h.bus, Started{Action: a, Result: result})

	if generation != 0 {
		h.arm(a, generation)
	}

	h.mu.Lock()
	onStarted := h.onStarted
	h.mu.Unlock()
	if onStarted != nil {
		onStarted(a, result)
	}
	return true
}

// begin validates and starts a under the lock. The returned generation is
// zero when a did not become pending.
func (h *Handler) begin(a Action) (Result, uint64, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.pending != nil || !a.Validate() {
		return nil, 0, false
	}
	result := a.Start()
	if !result.Success() {
		return result, 0, true
	}
	h.generation++
	h.pending = a
	return result, h.generation, true
}

// arm schedules the natural end of a, unless it was already terminated.
func (h *Handler) arm(a Action, generation uint64) {
	d := a.Duration()

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.generation != generation {
		return
	}
	h.timer = clock.AfterFunc(d, func() { h.expire(generation) })
}

func (h *Handler) expire(generation uint64) {
	defer h.recoverFault()

	a, listeners, err := h.finish(generation, false)
	if a == nil {
		return
	}
	h.logger.Debug("action duration elapsed", zap.Uint64("generation", generation))
	h.notify(a, listeners)
	h.fault(err)
}

// Terminate force-ends the pending action, if any, and fires the termination
// listeners. With no pending action it publishes nothing but still fires and
// clears the listeners. A panic from End is reported to the fault callback.
//
// Postcondition: the ended action's End ran exactly once.
func (h *Handler) Terminate() {
	a, listeners, err := h.finish(0, true)
	if a == nil {
		fire(listeners)
		return
	}
	h.notify(a, listeners)
	h.fault(err)
}

// Terminated registers fn to run once the handler is next idle: immediately
// when no action is pending, otherwise when the pending action ends.
// Each registration fires at most once.
func (h *Handler) Terminated(fn func()) {
	h.mu.Lock()
	if h.pending != nil {
		h.listeners = append(h.listeners, fn)
		h.mu.Unlock()
		return
	}
	h.mu.Unlock()
	fn()
}

// finish ends the pending action and drains the listeners. Without force, only
// the action started under generation is ended, and an idle handler keeps its
// listeners. End runs inside the critical section; a panic from it is returned
// as an error and still leaves the handler idle.
func (h *Handler) finish(generation uint64, force bool) (Action, []func(), error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.pending == nil {
		if !force {
			return nil, nil, nil
		}
		listeners := h.listeners
		h.listeners = nil
		return nil, listeners, nil
	}
	if !force && generation != h.generation {
		return nil, nil, nil
	}

	a := h.pending
	listeners := h.listeners
	h.pending = nil
	h.listeners = nil
	h.generation++
	h.timer.Stop()
	h.timer = nil

	return a, listeners, end(a)
}

func end(a Action) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("action handler: ending action: %v", r)
		}
	}()
	a.End()
	return nil
}

func (h *Handler) notify(a Action, listeners []func()) {
	event.Publish(h.bus, Terminated{Action: a})
	fire(listeners)
}

func fire(listeners []func()) {
	for _, fn := range listeners {
		fn()
	}
}

func (h *Handler) recoverFault() {
	if r := recover(); r != nil {
		h.fault(fmt.Errorf("action handler: %v", r))
	}
}

// fault logs err and reports it to the fault callback. No-op for a nil err.
func (h *Handler) fault(err error) {
	if err == nil {
		return
	}
	h.logger.Error("ending action failed", zap.Error(err))

	h.mu.Lock()
	onFault := h.onFault
	h.mu.Unlock()
	if onFault != nil {
		onFault(err)
	}
}
