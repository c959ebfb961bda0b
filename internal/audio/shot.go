package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
)

// ShotGenerator is a square wave falling from 880 Hz to 110 Hz under a burst
// of noise, with a linear decay to silence.
type ShotGenerator struct {
	sr      beep.SampleRate
	pos     int
	samples int
	phase   float64
	rng     *rand.Rand
}

// NewShotGenerator creates a shot lasting d
func NewShotGenerator(sr beep.SampleRate, d time.Duration) *ShotGenerator {
	return &ShotGenerator{
		sr:      sr,
		samples: max(1, sr.N(d)),
		rng:     rand.New(rand.NewSource(1)),
	}
}

func (g *ShotGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.pos >= g.samples {
			return i, i > 0
		}
		progress := float64(g.pos) / float64(g.samples)
		freq := 880 * math.Pow(0.125, progress)

		square := 1.0
		if g.phase >= 0.5 {
			square = -1.0
		}
		noise := g.rng.Float64()*2 - 1
		noiseMix := 0.6 * (1 - progress) * (1 - progress)
		val := (1 - progress) * 0.4 * ((1-noiseMix)*square + noiseMix*noise)

		samples[i][0] = val
		samples[i][1] = val

		g.phase += freq / float64(g.sr)
		g.phase -= math.Floor(g.phase)
		g.pos++
	}
	return len(samples), true
}

func (g *ShotGenerator) Err() error { return nil }
