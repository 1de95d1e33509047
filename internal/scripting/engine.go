package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Fallbacks used when a tuning function is missing or fails.
const (
	defaultParticleCount = 12
	defaultParticleSpeed = 60.0
	defaultParticleDecay = 1.5
)

// Engine wraps a single gopher-lua VM holding the explosion tuning formulas.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

func newEngine(log *zap.Logger) *Engine {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	return &Engine{vm: vm, log: log}
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
// A missing directory yields an engine that answers with built-in defaults.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	e := newEngine(log)
	if err := e.loadDir(scriptsDir); err != nil {
		e.vm.Close()
		return nil, fmt.Errorf("load scripts: %w", err)
	}
	return e, nil
}

// NewEngineFromString creates an engine from inline source.
func NewEngineFromString(src string, log *zap.Logger) (*Engine, error) {
	e := newEngine(log)
	if err := e.vm.DoString(src); err != nil {
		e.vm.Close()
		return nil, fmt.Errorf("load script: %w", err)
	}
	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			e.log.Warn("scripts dir missing, using defaults", zap.String("dir", dir))
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// ParticleCount calls Lua particle_count(radius). Never below zero.
func (e *Engine) ParticleCount(radius float64) int {
	n, ok := e.callNumber("particle_count", radius)
	if !ok {
		return defaultParticleCount
	}
	if n < 0 {
		return 0
	}
	return int(n)
}

// ParticleSpeed calls Lua particle_speed(radius), in world units per second.
func (e *Engine) ParticleSpeed(radius float64) float64 {
	v, ok := e.callNumber("particle_speed", radius)
	if !ok || v < 0 {
		return defaultParticleSpeed
	}
	return v
}

// ParticleDecay calls Lua particle_decay(radius), alpha lost per second.
func (e *Engine) ParticleDecay(radius float64) float64 {
	v, ok := e.callNumber("particle_decay", radius)
	if !ok || v <= 0 {
		return defaultParticleDecay
	}
	return v
}

func (e *Engine) callNumber(name string, args ...float64) (float64, bool) {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		return 0, false
	}

	lArgs := make([]lua.LValue, len(args))
	for i, a := range args {
		lArgs[i] = lua.LNumber(a)
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lArgs...); err != nil {
		e.log.Error("lua call error", zap.String("func", name), zap.Error(err))
		return 0, false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)
	n, ok := result.(lua.LNumber)
	if !ok {
		e.log.Error("lua function returned non-number", zap.String("func", name))
		return 0, false
	}
	return float64(n), true
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
