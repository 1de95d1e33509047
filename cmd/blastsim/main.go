package main

import (
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/l1jgo/blastsim/internal/audio"
	"github.com/l1jgo/blastsim/internal/component"
	"github.com/l1jgo/blastsim/internal/config"
	"github.com/l1jgo/blastsim/internal/core/ecs"
	"github.com/l1jgo/blastsim/internal/core/event"
	"github.com/l1jgo/blastsim/internal/data"
	"github.com/l1jgo/blastsim/internal/render"
	"github.com/l1jgo/blastsim/internal/scripting"
	"github.com/l1jgo/blastsim/internal/system"
	"github.com/pkg/profile"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(runID string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m              blastsim  v0.1.0             \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mrun:\033[0m %s\n\n", runID)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, value any) {
	valStr := fmt.Sprint(value)
	dotsLen := 42 - len(label) - len(valStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), valStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

// ── Main simulation logic ─────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/sim.toml"
	if p := os.Getenv("BLASTSIM_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger; the terminal belongs to the renderer when it is on
	runID := uuid.New().String()
	log, err := newLogger(cfg.Logging, cfg.Render.Enabled)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()
	log = log.With(zap.String("run_id", runID))

	switch cfg.Profile.Mode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(cfg.Profile.Path), profile.NoShutdownHook, profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(cfg.Profile.Path), profile.NoShutdownHook, profile.Quiet).Stop()
	}

	printBanner(runID)

	// 3. Load scenario and tuning scripts
	printSection("data")
	scenario := data.DefaultScenario()
	if cfg.Data.Scenario != "" {
		if scenario, err = data.LoadScenario(cfg.Data.Scenario); err != nil {
			return fmt.Errorf("load scenario: %w", err)
		}
	}
	printStat("scenario", scenario.Name)
	printStat("population", scenario.Population)
	printStat("palette", len(scenario.Palette))

	lua, err := scripting.NewEngine(cfg.Scripts.Dir, log)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer lua.Close()
	printOK("tuning scripts loaded")
	fmt.Println()

	// 4. Build world, bus, and systems
	seed := cfg.Sim.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	sim := system.Build(system.Options{
		Width:    cfg.Sim.Width,
		Height:   cfg.Sim.Height,
		CellSize: cfg.Sim.CellSize,
		Scenario: scenario,
		Tuning:   lua,
		Rand:     rand.New(rand.NewSource(seed)),
	}, log)

	printSection("simulation")
	printStat("world", fmt.Sprintf("%gx%g", cfg.Sim.Width, cfg.Sim.Height))
	printStat("grid cells", sim.Detector.Grid().CellCount())
	printStat("systems", sim.Scheduler.Len())
	printStat("tick", cfg.Sim.TickRate)
	printStat("seed", seed)
	fmt.Println()

	// 5. Optional collaborators: audio and terminal rendering
	if cfg.Audio.Enabled {
		player := audio.NewPlayer(cfg.Audio.Volume, log)
		if err := player.Initialize(); err != nil {
			// Non-fatal, the simulation runs without sound
			log.Warn("audio init failed", zap.Error(err))
		} else {
			defer player.Close()
			event.Subscribe[event.Explosion](sim.Bus, player)
		}
	}

	var renderer *render.Renderer
	inputCh := make(chan tcell.Event, 64)
	if cfg.Render.Enabled {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("screen: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("screen init: %w", err)
		}
		defer screen.Fini()
		renderer = render.NewRenderer(screen, cfg.Sim.Width, cfg.Sim.Height)
		go func() {
			for {
				ev := screen.PollEvent()
				if ev == nil {
					return // screen finalized
				}
				inputCh <- ev
			}
		}()
	}

	// 6. Start frame loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Sim.TickRate)
	defer ticker.Stop()

	log.Info("simulation started",
		zap.Float64("width", cfg.Sim.Width),
		zap.Float64("height", cfg.Sim.Height),
		zap.Duration("tick", cfg.Sim.TickRate),
		zap.Int64("seed", seed),
	)

	started := time.Now()
	for {
		select {
		case <-ticker.C:
			sim.Scheduler.Advance(cfg.Sim.TickRate)
			if renderer != nil {
				renderer.Draw(sim.World.Registry())
			}
			if cfg.Sim.MaxTicks > 0 && sim.Scheduler.Tick() >= cfg.Sim.MaxTicks {
				logSummary(log, sim, time.Since(started))
				return nil
			}
		case ev := <-inputCh:
			if render.IsQuit(ev) {
				logSummary(log, sim, time.Since(started))
				return nil
			}
			if _, ok := ev.(*tcell.EventResize); ok {
				renderer.Sync()
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()))
			logSummary(log, sim, time.Since(started))
			return nil
		}
	}
}

func logSummary(log *zap.Logger, sim *system.Pipeline, elapsed time.Duration) {
	reg := sim.World.Registry()
	log.Info("simulation stopped",
		zap.Uint64("ticks", sim.Scheduler.Tick()),
		zap.Duration("elapsed", elapsed),
		zap.Int("entities", sim.World.Store().Len()),
		zap.Int("circles", ecs.Count[component.Collidable](reg)),
		zap.Int("particles", ecs.Count[component.Particle](reg)),
		zap.Uint64("spawned", sim.Spawn.Spawned()),
		zap.Uint64("collisions", sim.Detector.Total()),
		zap.Uint64("explosions", sim.Explosion.Exploded()),
	)
}

func newLogger(cfg config.LoggingConfig, toFile bool) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	if toFile && cfg.File != "" {
		zapCfg.OutputPaths = []string{cfg.File}
		zapCfg.ErrorOutputPaths = []string{cfg.File}
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	return zapCfg.Build()
}
