package changepoint

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// GelmanRubin computes the potential scale reduction factor for one
// parameter across chains: the ratio of pooled (between + within) chain
// variance to within-chain variance, ~1.0 at convergence. Chains with
// zero within-chain variance (a posterior collapsed onto one index) are
// converged by construction and yield 1.0 unless the chains disagree.
func GelmanRubin(chains [][]float64) float64 {
	m := len(chains)
	if m < 2 {
		return math.NaN()
	}
	s := len(chains[0])
	if s < 2 {
		return math.NaN()
	}

	means := make([]float64, m)
	vars := make([]float64, m)
	for i, c := range chains {
		means[i] = stat.Mean(c, nil)
		vars[i] = stat.Variance(c, nil)
	}

	w := stat.Mean(vars, nil)
	b := float64(s) * stat.Variance(means, nil)

	if w == 0 {
		if b == 0 {
			return 1
		}
		return math.Inf(1)
	}

	varPlus := float64(s-1)/float64(s)*w + b/float64(s)
	return math.Sqrt(varPlus / w)
}

// EffectiveSampleSize estimates the effective number of independent
// draws across chains using per-chain autocorrelations with Geyer's
// initial positive sequence truncation. A chain with zero variance
// contributes its full length.
func EffectiveSampleSize(chains [][]float64) float64 {
	total := 0.0
	for _, c := range chains {
		total += chainESS(c)
	}
	return total
}

func chainESS(c []float64) float64 {
	s := len(c)
	if s < 4 {
		return float64(s)
	}
	mean := stat.Mean(c, nil)

	gamma0 := autocovariance(c, mean, 0)
	if gamma0 == 0 {
		return float64(s)
	}

	// Sum consecutive autocorrelation pairs until a pair goes negative.
	sum := 0.0
	maxLag := s - 2
	for k := 1; k+1 <= maxLag; k += 2 {
		pair := (autocovariance(c, mean, k) + autocovariance(c, mean, k+1)) / gamma0
		if pair < 0 {
			break
		}
		sum += pair
	}

	ess := float64(s) / (1 + 2*sum)
	if ess > float64(s) {
		return float64(s)
	}
	return ess
}

func autocovariance(c []float64, mean float64, lag int) float64 {
	s := len(c)
	acc := 0.0
	for i := 0; i+lag < s; i++ {
		acc += (c[i] - mean) * (c[i+lag] - mean)
	}
	return acc / float64(s)
}
