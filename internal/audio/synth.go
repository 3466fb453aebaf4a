package audio

import (
	"math"
	"math/rand"
)

const (
	SampleRate = 44100

	knockDuration = 0.25
	knockDecay    = 0.045
	knockClick    = 0.008
)

// Knock synthesizes a short wooden hit: two low partials and a noise click,
// all under an exponential decay. The output is deterministic.
func Knock(sampleRate int) []int16 {
	n := int(knockDuration * float64(sampleRate))
	out := make([]int16, n)
	rng := rand.New(rand.NewSource(1))
	for i := range out {
		t := float64(i) / float64(sampleRate)
		env := math.Exp(-t / knockDecay)
		v := 0.6*math.Sin(2*math.Pi*180*t) + 0.3*math.Sin(2*math.Pi*410*t)
		if t < knockClick {
			v += (rng.Float64()*2 - 1) * (1 - t/knockClick)
		}
		v *= env * 0.8
		out[i] = int16(math.Max(-1, math.Min(1, v)) * math.MaxInt16)
	}
	return out
}
