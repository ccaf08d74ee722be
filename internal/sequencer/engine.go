// Package sequencer drives the randomized lighting show one tick at a time.
package sequencer

import (
	"errors"
	"log/slog"

	"flicker/internal/core"
	"flicker/internal/dispatch"
	"flicker/internal/effect"
)

// Option configures an Engine.
type Option func(*Engine)

// WithReporter receives an event each time an effect finishes.
func WithReporter(r core.Reporter) Option {
	return func(e *Engine) { e.reporter = r }
}

// WithLogger sets the logger for refills, overflows and defects.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// Engine owns the effect state, the dispatch stack and the active effect.
// Tick never blocks. An Engine is NOT safe for concurrent use; a single host
// loop must call it.
type Engine struct {
	env      *effect.Env
	stack    *dispatch.Stack
	catalog  *dispatch.Catalog
	reporter core.Reporter
	logger   *slog.Logger

	state   effect.State
	active  effect.Kind
	running bool

	ticks       uint64
	sequence    uint64
	effectTicks int
	started     core.Millis
}

// New creates an Idle engine. The first Tick fills the stack.
func New(env *effect.Env, stack *dispatch.Stack, catalog *dispatch.Catalog, opts ...Option) *Engine {
	e := &Engine{
		env:      env,
		stack:    stack,
		catalog:  catalog,
		reporter: core.NullReporter,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	if env.Logger == nil {
		env.Logger = e.logger
	}
	e.Setup()
	return e
}

// Setup zeroes the effect state and leaves the engine Idle.
func (e *Engine) Setup() {
	e.state.Reset()
	e.active = effect.None
	e.running = false
	e.effectTicks = 0
	e.stack.Clear()
}

// Tick advances the show by one step. When Idle it loads a new program;
// when Running it advances the active effect and, once that effect is
// done, starts the next one from the stack.
func (e *Engine) Tick() {
	e.ticks++

	if !e.running {
		e.refill()
		return
	}

	e.effectTicks++
	if !e.active.Advance(e.env, &e.state) {
		return
	}
	e.finish()

	next, ok := e.stack.Pop()
	if !ok {
		e.refill()
		return
	}
	e.activate(next)
}

// Stop ends the show and drops pending effects. The next Tick starts a new
// program.
func (e *Engine) Stop() {
	e.Setup()
}

func (e *Engine) refill() {
	k, ok, err := e.catalog.Refill(e.stack, e.env.Rand)
	if err != nil {
		if errors.Is(err, dispatch.ErrStackOverflow) {
			e.logger.Warn("dispatch stack overflow", "depth", e.stack.Depth(), "capacity", e.stack.Capacity(), "error", err)
		} else {
			e.logger.Error("refill failed", "error", err)
		}
	}
	if !ok {
		e.logger.Warn("no effect available, sequencer idle")
		e.Setup()
		return
	}
	e.logger.Debug("program loaded", "effects", e.stack.Depth()+1)
	e.activate(k)
}

func (e *Engine) activate(k effect.Kind) {
	e.state.Reset()
	e.active = k
	e.running = true
	e.effectTicks = 0
	e.started = e.env.Clock.Millis()
	e.sequence++
	e.logger.Debug("effect started", "effect", k.String(), "sequence", e.sequence, "pending", e.stack.Depth())
}

func (e *Engine) finish() {
	e.reporter.Report(core.Event{
		Effect:   e.active.String(),
		Started:  e.started,
		Finished: e.env.Clock.Millis(),
		Ticks:    e.effectTicks,
		Sequence: e.sequence,
	})
}

// Active returns the running effect, or effect.None when Idle.
func (e *Engine) Active() effect.Kind { return e.active }

// Running reports whether an effect is active.
func (e *Engine) Running() bool { return e.running }

// State returns a copy of the active effect's state.
func (e *Engine) State() effect.State { return e.state }

// Ticks returns how many times Tick has been called.
func (e *Engine) Ticks() uint64 { return e.ticks }

// Sequence returns how many effects have been started.
func (e *Engine) Sequence() uint64 { return e.sequence }

// Pending returns the number of effects left on the stack.
func (e *Engine) Pending() int { return e.stack.Depth() }
