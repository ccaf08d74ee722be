package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flicker/internal/collector"
	"flicker/internal/config"
	"flicker/internal/core"
	"flicker/internal/dispatch"
	"flicker/internal/effect"
	"flicker/internal/host"
	"flicker/internal/output"
	"flicker/internal/progress"
	"flicker/internal/sequencer"
	"flicker/internal/trace"
)

const (
	ExitSuccess = 0
	ExitError   = 2
)

// defaultPixels is one fadecandy channel.
const defaultPixels = 64

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("flicker", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "", "path to YAML config file")
	tickRate := flags.Int("rate", 0, "ticks per second (overrides config)")
	maxTicks := flags.Int("max-ticks", 0, "stop after this many ticks (0 = unlimited)")
	duration := flags.Duration("duration", 0, "stop after this long (0 = until interrupted)")
	seed := flags.Int64("seed", 0, "random seed (0 = entropy)")
	format := flags.String("output", "text", "report format: text, json")
	quiet := flags.Bool("quiet", false, "suppress progress output")
	verbose := flags.Bool("verbose", false, "enable debug logging, including every light write")
	tracePath := flags.String("trace", "", "write a JSON-lines trace of light writes to this file")
	opcServer := flags.String("opc", "", "stream to an Open Pixel Control server at host:port")
	if err := flags.Parse(args); err != nil {
		return ExitError
	}

	if *format != "text" && *format != "json" {
		fmt.Fprintf(stderr, "error: --output must be 'text' or 'json', got %q\n", *format)
		return ExitError
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return ExitError
		}
		cfg = loaded
	}

	// CLI flags override config file values, but only when given.
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "rate":
			cfg.Tick.Rate = *tickRate
		case "max-ticks":
			cfg.Tick.MaxTicks = *maxTicks
		case "duration":
			cfg.Tick.Duration = *duration
		case "seed":
			cfg.Seed = *seed
		case "trace":
			cfg.Output.Trace = *tracePath
		case "opc":
			if cfg.Output.OPC == nil {
				cfg.Output.OPC = &config.OPCConfig{Pixels: defaultPixels}
			}
			cfg.Output.OPC.Server = *opcServer
		}
	})
	if *verbose {
		cfg.Output.Log = true
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return ExitError
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	catalog, err := cfg.BuildCatalog()
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return ExitError
	}

	clock := core.NewRealClock()
	sinks := output.Fanout{}
	if cfg.Output.Log {
		sinks = append(sinks, output.NewLog(logger))
	}
	if opc := cfg.Output.OPC; opc != nil {
		o, err := output.Dial(opc.Server, opc.Channel, opc.Pixels, opc.Color, logger)
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return ExitError
		}
		sinks = append(sinks, o)
	}

	var out core.Output = sinks
	var (
		recorder  *trace.Recorder
		traceFile *os.File
	)
	if cfg.Output.Trace != "" {
		f, err := os.Create(cfg.Output.Trace)
		if err != nil {
			fmt.Fprintf(stderr, "error: creating trace file: %v\n", err)
			return ExitError
		}
		traceFile = f
		recorder = trace.NewRecorder(f, clock, sinks)
		out = recorder
	}

	rnd := core.NewSeededRandom(cfg.Seed)
	env := effect.NewEnv(clock, rnd, out)
	env.Timing = cfg.Timing.Effect()

	coll := collector.New()
	engine := sequencer.New(env, dispatch.NewStack(cfg.Stack.Capacity), catalog,
		sequencer.WithReporter(coll),
		sequencer.WithLogger(logger))

	if cfg.Tick.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Tick.Duration)
		defer cancel()
	}

	prog := progress.New(coll, *quiet)
	prog.SetOutput(stderr)
	prog.Printf("Flicker starting: seed %d, %d ticks/s, %d catalog entries",
		rnd.Seed(), cfg.Tick.Rate, catalog.Len())
	prog.Start()

	runner := host.NewRunner(engine, host.NewPacer(cfg.Tick.Rate), host.RunnerConfig{
		MaxTicks: cfg.Tick.MaxTicks,
	})
	runErr := runner.Run(ctx)

	prog.Stop()
	engine.Stop()
	out.SetBinary(false)
	coll.Close()

	if recorder != nil {
		if err := finishTrace(recorder, traceFile); err != nil {
			logger.Warn("trace incomplete", "path", cfg.Output.Trace, "error", err)
		}
	}

	switch {
	case errors.Is(runErr, host.ErrMaxTicksReached), errors.Is(runErr, context.DeadlineExceeded):
	case errors.Is(runErr, context.Canceled):
		prog.Print("Interrupted, light off")
	default:
		fmt.Fprintf(stderr, "error: %v\n", runErr)
		return ExitError
	}

	if dropped := coll.DroppedEvents(); dropped > 0 {
		logger.Warn("events dropped", "count", dropped)
	}

	logger.Debug("show ended", "ticks", runner.Ticks(), "effects", engine.Sequence(), "elapsed", coll.Duration().Round(time.Millisecond))

	metrics := coll.Compute()
	if *format == "json" {
		collector.FormatJSON(stdout, metrics)
	} else {
		collector.FormatText(stdout, metrics)
	}
	return ExitSuccess
}

// finishTrace closes the trace file and reports anything that kept the
// trace from being written in full, including a failed final flush.
func finishTrace(recorder *trace.Recorder, f io.Closer) error {
	var errs []error
	if err := recorder.Err(); err != nil {
		errs = append(errs, err)
	}
	if err := f.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing trace file: %w", err))
	}
	return errors.Join(errs...)
}
