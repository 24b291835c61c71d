package sim

import (
	"math"
	"math/rand"
)

// Rand is the single random source for a simulation run. Every stochastic
// draw goes through one Rand instance in a fixed call order, so the whole
// run is reproducible from one seed. Not safe for concurrent use; the
// simulation is strictly sequential.
type Rand struct {
	src *rand.Rand
}

// NewRand returns a seeded source.
func NewRand(seed int64) *Rand {
	return &Rand{src: rand.New(rand.NewSource(seed))}
}

// Float64 draws from [0, 1).
func (r *Rand) Float64() float64 {
	return r.src.Float64()
}

// Uniform draws from [lo, hi).
func (r *Rand) Uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*r.src.Float64()
}

// Intn draws a non-negative integer below n.
func (r *Rand) Intn(n int) int {
	return r.src.Intn(n)
}

// IntBetween draws uniformly from [lo, hi).
func (r *Rand) IntBetween(lo, hi int) int {
	return lo + r.src.Intn(hi-lo)
}

// Binomial draws the number of successes in n independent trials with
// success probability p. n is small enough here (clicks per channel-day)
// that direct Bernoulli summation is fine and keeps the draw count, and
// therefore the stream position, an exact function of n.
func (r *Rand) Binomial(n int, p float64) int {
	if n <= 0 || p <= 0 {
		return 0
	}
	if p >= 1 {
		return n
	}
	k := 0
	for i := 0; i < n; i++ {
		if r.src.Float64() < p {
			k++
		}
	}
	return k
}

// LogNormal draws exp(N(mu, sigma^2)).
func (r *Rand) LogNormal(mu, sigma float64) float64 {
	return math.Exp(mu + sigma*r.src.NormFloat64())
}

// Pick draws one element uniformly from items.
func (r *Rand) Pick(items []string) string {
	return items[r.src.Intn(len(items))]
}

// WeightedPick draws one category name from an ordered discrete
// distribution, normalizing internally. Zero-sum weight tables are rejected
// by Config.Validate before any sampling happens; the final-entry fallback
// only covers float round-off on the cumulative sum.
func (r *Rand) WeightedPick(weights []CategoryWeight) string {
	total := 0.0
	for _, w := range weights {
		total += w.Weight
	}
	x := r.src.Float64() * total
	cum := 0.0
	for _, w := range weights {
		cum += w.Weight
		if x < cum {
			return w.Name
		}
	}
	return weights[len(weights)-1].Name
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// round2 rounds to cents.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// round4 rounds to four decimal places, the precision CTRs are reported at.
func round4(x float64) float64 {
	return math.Round(x*10000) / 10000
}
