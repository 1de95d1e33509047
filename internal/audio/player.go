package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/l1jgo/blastsim/internal/core/event"
	"go.uber.org/zap"
)

const (
	sampleRate = beep.SampleRate(48000)
	maxVoices  = 16
)

// Player turns explosion events into short noise bursts. It is safe to
// subscribe before Initialize; until then every event is dropped.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	log         *zap.Logger
	seed        int64
}

func NewPlayer(volume float64, log *zap.Logger) *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		volume: math.Max(0, math.Min(1, volume)),
		log:    log,
		seed:   time.Now().UnixNano(),
	}
}

// Initialize opens the speaker and starts the mixer.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Receive queues one burst per explosion. Larger circles sound longer and lower.
func (p *Player) Receive(ev event.Explosion) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	defer speaker.Unlock()
	if p.mixer.Len() >= maxVoices {
		p.log.Debug("audio voices saturated, dropping burst", zap.Uint64("entity", uint64(ev.Entity)))
		return
	}
	p.seed++
	d := burstDuration(ev.Radius)
	p.mixer.Add(beep.Take(sampleRate.N(d), NewBurstGenerator(sampleRate, ev.Radius, p.volume, p.seed)))
}

// Close stops all sounds and closes the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}

func burstDuration(radius float64) time.Duration {
	ms := 120 + 8*radius
	return time.Duration(math.Min(ms, 600)) * time.Millisecond
}

// BurstGenerator is noise with a low rumble under an exponential envelope.
type BurstGenerator struct {
	sr     beep.SampleRate
	pos    int
	seed   int64
	rumble float64
	decay  float64
	gain   float64
}

func NewBurstGenerator(sr beep.SampleRate, radius, volume float64, seed int64) *BurstGenerator {
	return &BurstGenerator{
		sr:     sr,
		seed:   seed & 0x7fffffff,
		rumble: math.Max(40, 160-3*radius),
		decay:  math.Max(3, 12-radius/4),
		gain:   volume,
	}
}

func (g *BurstGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		envelope := math.Exp(-t * g.decay)

		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1
		low := math.Sin(2 * math.Pi * g.rumble * t)

		sample := g.gain * envelope * (0.6*noise + 0.4*low)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *BurstGenerator) Err() error {
	return nil
}
