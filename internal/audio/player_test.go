package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/l1jgo/blastsim/internal/core/event"
	"go.uber.org/zap"
)

// TestBurstGeneratorRange verifies samples stay in [-1, 1] and decay
func TestBurstGeneratorRange(t *testing.T) {
	rate := beep.SampleRate(44100)
	gen := NewBurstGenerator(rate, 10, 1, 42)

	samples := make([][2]float64, rate.N(500*time.Millisecond))
	n, ok := gen.Stream(samples)
	if !ok || n != len(samples) {
		t.Fatalf("expected %d samples, got %d ok=%v", len(samples), n, ok)
	}

	head, tail := 0.0, 0.0
	quarter := n / 4
	for i := 0; i < n; i++ {
		s := samples[i][0]
		if s < -1 || s > 1 {
			t.Fatalf("sample %d out of range: %f", i, s)
		}
		if samples[i][0] != samples[i][1] {
			t.Fatalf("sample %d not mono", i)
		}
		if i < quarter {
			head += math.Abs(s)
		} else if i >= n-quarter {
			tail += math.Abs(s)
		}
	}
	if tail >= head {
		t.Errorf("expected envelope to decay: head %f tail %f", head, tail)
	}
	if gen.Err() != nil {
		t.Errorf("expected no error, got %v", gen.Err())
	}
}

// TestBurstGeneratorVolume verifies zero volume is silent
func TestBurstGeneratorVolume(t *testing.T) {
	gen := NewBurstGenerator(sampleRate, 10, 0, 1)
	samples := make([][2]float64, 256)
	gen.Stream(samples)
	for i, s := range samples {
		if s[0] != 0 {
			t.Fatalf("sample %d not silent: %f", i, s[0])
		}
	}
}

func TestBurstDuration(t *testing.T) {
	if burstDuration(0) != 120*time.Millisecond {
		t.Errorf("unexpected base duration %s", burstDuration(0))
	}
	if burstDuration(1000) != 600*time.Millisecond {
		t.Errorf("duration not capped: %s", burstDuration(1000))
	}
	if burstDuration(20) <= burstDuration(5) {
		t.Error("larger circles should sound longer")
	}
}

// TestPlayerUninitialized verifies events are dropped before Initialize
func TestPlayerUninitialized(t *testing.T) {
	p := NewPlayer(2, zap.NewNop())
	if p.volume != 1 {
		t.Errorf("volume not clamped: %f", p.volume)
	}
	p.Receive(event.Explosion{Radius: 10})
	if p.mixer.Len() != 0 {
		t.Errorf("expected no voices, got %d", p.mixer.Len())
	}
	p.Close()
}
