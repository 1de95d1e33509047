package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

const tuning = `
function particle_count(radius)
  return math.floor(radius * 2)
end

function particle_speed(radius)
  return 100 - radius
end

function particle_decay(radius)
  return 0.5
end
`

func TestEngineCallsTuning(t *testing.T) {
	e, err := NewEngineFromString(tuning, zap.NewNop())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	defer e.Close()

	if n := e.ParticleCount(5.5); n != 11 {
		t.Errorf("expected 11 particles, got %d", n)
	}
	if v := e.ParticleSpeed(10); v != 90 {
		t.Errorf("expected speed 90, got %v", v)
	}
	if v := e.ParticleDecay(10); v != 0.5 {
		t.Errorf("expected decay 0.5, got %v", v)
	}
}

func TestEngineFallsBackWhenMissing(t *testing.T) {
	e, err := NewEngineFromString("", zap.NewNop())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	defer e.Close()

	if n := e.ParticleCount(5); n != defaultParticleCount {
		t.Errorf("expected default count, got %d", n)
	}
	if v := e.ParticleSpeed(5); v != defaultParticleSpeed {
		t.Errorf("expected default speed, got %v", v)
	}
	if v := e.ParticleDecay(5); v != defaultParticleDecay {
		t.Errorf("expected default decay, got %v", v)
	}
}

func TestEngineFallsBackOnError(t *testing.T) {
	e, err := NewEngineFromString(`
function particle_count(r) error("boom") end
function particle_speed(r) return "fast" end
function particle_decay(r) return -1 end
`, zap.NewNop())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	defer e.Close()

	if n := e.ParticleCount(5); n != defaultParticleCount {
		t.Errorf("runtime error should fall back, got %d", n)
	}
	if v := e.ParticleSpeed(5); v != defaultParticleSpeed {
		t.Errorf("non-number should fall back, got %v", v)
	}
	if v := e.ParticleDecay(5); v != defaultParticleDecay {
		t.Errorf("non-positive decay should fall back, got %v", v)
	}
}

func TestEngineNegativeCountClamped(t *testing.T) {
	e, err := NewEngineFromString("function particle_count(r) return -4 end", zap.NewNop())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	defer e.Close()
	if n := e.ParticleCount(1); n != 0 {
		t.Errorf("expected 0, got %d", n)
	}
}

func TestNewEngineLoadsDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "explosion.lua"), []byte(tuning), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not lua ("), 0o644); err != nil {
		t.Fatal(err)
	}
	e, err := NewEngine(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	defer e.Close()
	if n := e.ParticleCount(3); n != 6 {
		t.Errorf("expected 6, got %d", n)
	}
}

func TestNewEngineMissingDir(t *testing.T) {
	e, err := NewEngine(filepath.Join(t.TempDir(), "absent"), zap.NewNop())
	if err != nil {
		t.Fatalf("missing dir should not fail: %v", err)
	}
	defer e.Close()
	if n := e.ParticleCount(3); n != defaultParticleCount {
		t.Errorf("expected default, got %d", n)
	}
}

func TestNewEngineSyntaxError(t *testing.T) {
	if _, err := NewEngineFromString("function (", zap.NewNop()); err == nil {
		t.Error("expected syntax error")
	}
}
