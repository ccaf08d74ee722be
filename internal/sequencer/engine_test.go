package sequencer

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"flicker/internal/core"
	"flicker/internal/dispatch"
	"flicker/internal/effect"
)

type mockReporter struct {
	events []core.Event
}

func (m *mockReporter) Report(e core.Event) {
	m.events = append(m.events, e)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEngine(seed int64, catalog *dispatch.Catalog, opts ...Option) (*Engine, *core.FakeClock, *core.RecordingOutput) {
	clock := core.NewFakeClock(0)
	out := &core.RecordingOutput{}
	env := effect.NewEnv(clock, core.NewSeededRandom(seed), out)
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	return New(env, dispatch.NewStack(dispatch.DefaultCapacity), catalog, opts...), clock, out
}

func TestEngine_StartsIdle(t *testing.T) {
	e, _, _ := newTestEngine(1, dispatch.DefaultCatalog())

	if e.Running() {
		t.Error("expected engine to start idle")
	}
	if e.Active() != effect.None {
		t.Errorf("expected no active effect, got %s", e.Active())
	}
	if e.State() != (effect.State{}) {
		t.Errorf("expected zero state, got %+v", e.State())
	}
}

func TestEngine_FirstTickLoadsProgram(t *testing.T) {
	e, _, _ := newTestEngine(1, dispatch.DefaultCatalog())

	e.Tick()

	if !e.Running() {
		t.Fatal("expected engine to be running after first tick")
	}
	if !e.Active().Valid() {
		t.Errorf("expected a valid active effect, got %s", e.Active())
	}
	if e.Pending() != dispatch.DefaultCapacity-1 {
		t.Errorf("expected %d pending effects, got %d", dispatch.DefaultCapacity-1, e.Pending())
	}
	if e.Sequence() != 1 {
		t.Errorf("expected sequence 1, got %d", e.Sequence())
	}
}

func TestEngine_AdvancesToNextEffect(t *testing.T) {
	rep := &mockReporter{}
	e, _, out := newTestEngine(1, dispatch.NewCatalog(effect.SteadyOn), WithReporter(rep))

	e.Tick() // load
	e.Tick() // steady_on finishes, next popped

	if len(rep.events) != 1 {
		t.Fatalf("expected 1 finished effect, got %d", len(rep.events))
	}
	if rep.events[0].Effect != "steady_on" || rep.events[0].Ticks != 1 {
		t.Errorf("unexpected event %+v", rep.events[0])
	}
	if e.Pending() != dispatch.DefaultCapacity-2 {
		t.Errorf("expected %d pending, got %d", dispatch.DefaultCapacity-2, e.Pending())
	}
	if len(out.Writes) != 1 {
		t.Errorf("expected one output write, got %d", len(out.Writes))
	}
}

func TestEngine_ResetsStateBetweenEffects(t *testing.T) {
	e, clock, _ := newTestEngine(3, dispatch.NewCatalog(effect.BadWiring))

	e.Tick()
	e.Tick() // bad wiring draws its duration
	if e.State().Param == 0 {
		t.Fatal("expected bad wiring to record a duration")
	}

	first := e.Sequence()
	for e.Sequence() == first {
		clock.AdvanceMillis(100)
		e.Tick()
	}
	if e.State() != (effect.State{}) {
		t.Errorf("expected zero state for the new effect, got %+v", e.State())
	}
}

func TestEngine_RefillsForever(t *testing.T) {
	rep := &mockReporter{}
	e, clock, _ := newTestEngine(42, dispatch.DefaultCatalog(), WithReporter(rep))

	e.Tick()
	target := uint64(2*dispatch.DefaultCapacity + 5)
	for ticks := 0; e.Sequence() < target; ticks++ {
		if ticks > 5_000_000 {
			t.Fatalf("only %d effects started after %d ticks", e.Sequence(), ticks)
		}
		clock.AdvanceMillis(20)
		e.Tick()
		if !e.Running() {
			t.Fatalf("engine went idle after %d effects", e.Sequence())
		}
	}

	if uint64(len(rep.events)) != target-1 {
		t.Errorf("expected %d finished effects, got %d", target-1, len(rep.events))
	}
	for i, ev := range rep.events {
		if ev.Sequence != uint64(i+1) {
			t.Fatalf("event %d has sequence %d", i, ev.Sequence)
		}
	}
}

func TestEngine_EmptyCatalogStaysIdle(t *testing.T) {
	logs := &core.MockWriter{}
	clock := core.NewFakeClock(0)
	env := effect.NewEnv(clock, core.NewSeededRandom(1), core.NullOutput)
	e := New(env, dispatch.NewStack(4), dispatch.NewCatalog(),
		WithLogger(slog.New(slog.NewTextHandler(logs, nil))))

	e.Tick()
	e.Tick()

	if e.Running() {
		t.Error("expected engine to stay idle with an empty catalog")
	}
	if !strings.Contains(logs.String(), "sequencer idle") {
		t.Errorf("expected idle warning, got %q", logs.String())
	}
}

func TestEngine_Stop(t *testing.T) {
	e, _, _ := newTestEngine(1, dispatch.DefaultCatalog())
	e.Tick()

	e.Stop()
	if e.Running() || e.Active() != effect.None || e.Pending() != 0 {
		t.Errorf("expected idle and empty after Stop, running=%v active=%s pending=%d",
			e.Running(), e.Active(), e.Pending())
	}

	e.Tick()
	if !e.Running() {
		t.Error("expected the next tick to load a new program")
	}
}

func TestEngine_Deterministic(t *testing.T) {
	collect := func() []string {
		rep := &mockReporter{}
		e, clock, _ := newTestEngine(7, dispatch.DefaultCatalog(), WithReporter(rep))
		for i := 0; i < 20000; i++ {
			e.Tick()
			clock.AdvanceMillis(25)
		}
		names := make([]string, len(rep.events))
		for i, ev := range rep.events {
			names[i] = ev.Effect
		}
		return names
	}

	a, b := collect(), collect()
	if len(a) != len(b) {
		t.Fatalf("runs finished %d and %d effects", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("effect %d differs: %s vs %s", i, a[i], b[i])
		}
	}
}

func TestEngine_LogsInvalidPhase(t *testing.T) {
	logs := &core.MockWriter{}
	e, _, _ := newTestEngine(1, dispatch.NewCatalog(effect.Dropout),
		WithLogger(slog.New(slog.NewTextHandler(logs, nil))))
	e.Tick()
	e.state.Step = 42

	e.Tick()

	if e.Sequence() != 2 {
		t.Errorf("expected the broken effect to finish, sequence %d", e.Sequence())
	}
	if !strings.Contains(logs.String(), "invalid phase") {
		t.Errorf("expected defect to be logged, got %q", logs.String())
	}
}
