package changepoint

import (
	"context"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"BrentWatch/internal/domain/models"
)

// seedMix is the second PCG seed word; the first is masterSeed XOR the
// chain index, so every chain gets an independent deterministic stream.
const seedMix = 0x9e3779b97f4a7c15

// sigmaStep is the random-walk proposal scale on log(sigma).
const sigmaStep = 0.15

// hyperParams are shared, read-only across chains. The weakly
// informative priors are centered on the sample mean with the sample
// standard deviation as scale.
type hyperParams struct {
	m0 float64 // prior mean for mu1, mu2
	s0 float64 // prior scale for mu1, mu2 and half-normal scale for sigma
}

// seriesStats caches prefix sums of y and y^2 so the discrete full
// conditional of tau and the likelihood of sigma are O(1) per split.
type seriesStats struct {
	n   int
	sum []float64 // sum[k] = y[0] + ... + y[k-1]
	sq  []float64 // sq[k]  = y[0]^2 + ... + y[k-1]^2
}

func newSeriesStats(y []float64) seriesStats {
	n := len(y)
	s := seriesStats{n: n, sum: make([]float64, n+1), sq: make([]float64, n+1)}
	for i, v := range y {
		s.sum[i+1] = s.sum[i] + v
		s.sq[i+1] = s.sq[i] + v*v
	}
	return s
}

// sse returns the residual sum of squares for a split at tau with means
// mu1 (t < tau) and mu2 (t >= tau).
func (s seriesStats) sse(tau int, mu1, mu2 float64) float64 {
	n1 := float64(tau)
	n2 := float64(s.n - tau)
	sse1 := s.sq[tau] - 2*mu1*s.sum[tau] + n1*mu1*mu1
	sse2 := (s.sq[s.n] - s.sq[tau]) - 2*mu2*(s.sum[s.n]-s.sum[tau]) + n2*mu2*mu2
	return sse1 + sse2
}

// runChain executes one Gibbs chain: conjugate Normal updates for the
// regime means, an exact categorical draw for tau, and a
// Metropolis step on log(sigma) against the half-normal prior. Only the
// post-burn-in draws are stored, into buffers pre-allocated to the draw
// count. The chain checks ctx periodically and reports ctx.Err() when
// its budget is exceeded.
func runChain(ctx context.Context, idx int, seed uint64, stats seriesStats, hp hyperParams, draws, burnIn int) models.ChainTrace {
	trace := models.ChainTrace{
		Index: idx,
		Tau:   make([]int, 0, draws),
		Mu1:   make([]float64, 0, draws),
		Mu2:   make([]float64, 0, draws),
		Sigma: make([]float64, 0, draws),
	}

	rng := rand.New(rand.NewPCG(seed, seedMix))
	sigmaPrior := distuv.Normal{Mu: 0, Sigma: hp.s0, Src: rng}

	n := stats.n
	// tau ranges over [1, n-2]; both regimes keep at least one point.
	lo, hi := 1, n-2
	logw := make([]float64, hi-lo+1)

	// Initial state: tau mid-series, means at the prior center, sigma
	// drawn from its prior.
	tau := (lo + hi) / 2
	mu1, mu2 := hp.m0, hp.m0
	sigma := math.Abs(sigmaPrior.Rand())
	if sigma == 0 {
		sigma = hp.s0
	}

	total := burnIn + draws
	for iter := 0; iter < total; iter++ {
		if iter&63 == 0 {
			select {
			case <-ctx.Done():
				trace.Err = ctx.Err()
				return trace
			default:
			}
		}

		mu1 = sampleRegimeMean(rng, hp, sigma, stats.sum[tau], float64(tau))
		mu2 = sampleRegimeMean(rng, hp, sigma, stats.sum[n]-stats.sum[tau], float64(n-tau))
		sigma = sampleSigma(rng, sigmaPrior, stats, tau, mu1, mu2, sigma)
		tau = sampleTau(rng, stats, mu1, mu2, sigma, lo, logw)

		if iter >= burnIn {
			trace.Tau = append(trace.Tau, tau)
			trace.Mu1 = append(trace.Mu1, mu1)
			trace.Mu2 = append(trace.Mu2, mu2)
			trace.Sigma = append(trace.Sigma, sigma)
		}
	}
	return trace
}

// sampleRegimeMean draws from the conjugate Normal full conditional of a
// regime mean given its observation sum and count.
func sampleRegimeMean(rng *rand.Rand, hp hyperParams, sigma, obsSum, obsN float64) float64 {
	priorPrec := 1 / (hp.s0 * hp.s0)
	likPrec := obsN / (sigma * sigma)
	prec := priorPrec + likPrec
	mean := (hp.m0*priorPrec + obsSum/(sigma*sigma)) / prec
	return mean + rng.NormFloat64()/math.Sqrt(prec)
}

// sampleSigma performs one random-walk Metropolis step on log(sigma).
// The log target includes the Jacobian of the log transform.
func sampleSigma(rng *rand.Rand, prior distuv.Normal, stats seriesStats, tau int, mu1, mu2, sigma float64) float64 {
	logPost := func(s float64) float64 {
		sse := stats.sse(tau, mu1, mu2)
		// half-normal log density = Normal.LogProb + ln 2 on s >= 0
		return -float64(stats.n)*math.Log(s) - sse/(2*s*s) + prior.LogProb(s) + math.Ln2 + math.Log(s)
	}

	prop := sigma * math.Exp(sigmaStep*rng.NormFloat64())
	if math.IsInf(prop, 0) || prop <= 0 {
		return sigma
	}
	logRatio := logPost(prop) - logPost(sigma)
	if logRatio >= 0 || math.Log(rng.Float64()) < logRatio {
		return prop
	}
	return sigma
}

// sampleTau draws tau from its exact discrete full conditional over
// [lo, lo+len(logw)-1] using prefix sums and a max-shifted cumulative
// scan. The -n*log(sigma) likelihood term is constant in tau and
// dropped.
func sampleTau(rng *rand.Rand, stats seriesStats, mu1, mu2, sigma float64, lo int, logw []float64) int {
	inv2s2 := 1 / (2 * sigma * sigma)
	maxw := math.Inf(-1)
	for i := range logw {
		logw[i] = -stats.sse(lo+i, mu1, mu2) * inv2s2
		if logw[i] > maxw {
			maxw = logw[i]
		}
	}
	total := 0.0
	for i := range logw {
		logw[i] = math.Exp(logw[i] - maxw)
		total += logw[i]
	}
	u := rng.Float64() * total
	acc := 0.0
	for i := range logw {
		acc += logw[i]
		if u < acc {
			return lo + i
		}
	}
	return lo + len(logw) - 1
}
