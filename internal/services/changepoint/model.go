package changepoint

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"

	"BrentWatch/internal/domain/models"
	domrepo "BrentWatch/internal/domain/repository"
	domsvc "BrentWatch/internal/domain/service"
	"BrentWatch/pkg/config"
	applogger "BrentWatch/pkg/logger"
)

// s0Floor keeps the prior scales strictly positive for degenerate
// (constant) input series.
const s0Floor = 1e-9

// Sampler infers the posterior over a single break index tau under two
// stationary Gaussian regimes with a shared noise scale.
//
// Priors: tau ~ DiscreteUniform[1, N-2]; mu1, mu2 ~ Normal(mean(y),
// std(y)); sigma ~ HalfNormal(std(y)). The likelihood is a hard regime
// switch at tau, not a mixture.
type Sampler struct {
	chains        int
	draws         int
	burnIn        int
	seed          uint64
	chainTimeout  time.Duration
	rhatThreshold float64
	essFloor      float64

	metrics domrepo.Metrics
	log     *applogger.Logger
}

func New(cfg *config.Config, m domrepo.Metrics, l *applogger.Logger) *Sampler {
	return &Sampler{
		chains:        cfg.Analysis.Chains,
		draws:         cfg.Analysis.Draws,
		burnIn:        cfg.Analysis.BurnIn,
		seed:          cfg.Analysis.Seed,
		chainTimeout:  cfg.Analysis.ChainTimeout,
		rhatThreshold: cfg.Analysis.RHatThreshold,
		essFloor:      cfg.Analysis.ESSFloor,
		metrics:       m,
		log:           l,
	}
}

// Sample runs the configured number of independent chains in parallel
// and pools their draws after the convergence gate passes. Chain i is
// seeded with masterSeed XOR i, so a fixed master seed reproduces the
// pooled posterior bit for bit regardless of goroutine scheduling.
func (s *Sampler) Sample(ctx context.Context, series models.ReturnSeries) (models.Posterior, error) {
	n := series.Len()
	if n < 3 {
		return models.Posterior{}, &models.ValidationError{
			Check:  "min_length",
			Detail: fmt.Sprintf("need at least 3 observations for a break index, got %d", n),
		}
	}

	y := series.Values()
	stats := newSeriesStats(y)
	hp := hyperParams{m0: stat.Mean(y, nil), s0: stat.StdDev(y, nil)}
	if math.IsNaN(hp.s0) || hp.s0 < s0Floor {
		hp.s0 = s0Floor
	}

	runCtx := ctx
	if s.chainTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.chainTimeout)
		defer cancel()
	}

	s.log.Info("sampling started",
		applogger.Int("chains", s.chains),
		applogger.Int("draws", s.draws),
		applogger.Int("burn_in", s.burnIn),
		applogger.Int("observations", n),
	)
	start := time.Now()

	// One goroutine per chain; the WaitGroup is the single join barrier.
	// Chains share only the immutable series stats and hyperparameters.
	traces := make([]models.ChainTrace, s.chains)
	var wg sync.WaitGroup
	for i := 0; i < s.chains; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			traces[idx] = runChain(runCtx, idx, s.seed^uint64(idx), stats, hp, s.draws, s.burnIn)
		}(i)
	}
	wg.Wait()

	s.metrics.RecordDuration("sampling", time.Since(start).Seconds())

	return s.gate(traces)
}

// gate applies the convergence decision to the joined chains. No chain
// contributes before every chain has finished or failed; the
// between-chain variance term needs all of them.
func (s *Sampler) gate(traces []models.ChainTrace) (models.Posterior, error) {
	surviving := make([]models.ChainTrace, 0, len(traces))
	failed := 0
	for _, t := range traces {
		if t.Err != nil {
			failed++
			reason := "error"
			if errors.Is(t.Err, context.DeadlineExceeded) || errors.Is(t.Err, context.Canceled) {
				reason = "cancelled"
			}
			s.metrics.RecordChainFailure(reason)
			s.log.Warn("chain failed",
				applogger.Int("chain", t.Index),
				applogger.Error(t.Err),
			)
			continue
		}
		surviving = append(surviving, t)
	}

	diag := models.Diagnostics{
		Chains:        len(surviving),
		FailedChains:  failed,
		DrawsPerChain: s.draws,
		BurnIn:        s.burnIn,
	}

	// Cross-chain variance cannot be estimated from fewer than two
	// chains.
	if len(surviving) < 2 {
		return models.Posterior{}, &models.ConvergenceError{
			Reason:       "insufficient surviving chains",
			FailedChains: failed,
		}
	}

	tauChains := make([][]float64, len(surviving))
	for i, t := range surviving {
		tauChains[i] = make([]float64, len(t.Tau))
		for j, v := range t.Tau {
			tauChains[i][j] = float64(v)
		}
	}

	diag.RHat = GelmanRubin(tauChains)
	diag.ESS = EffectiveSampleSize(tauChains)
	s.metrics.RecordDiagnostics(diag.RHat, diag.ESS)
	s.log.Info("convergence diagnostics",
		applogger.Float64("rhat", diag.RHat),
		applogger.Float64("ess", diag.ESS),
		applogger.Int("failed_chains", failed),
	)

	if math.IsNaN(diag.RHat) || diag.RHat > s.rhatThreshold {
		return models.Posterior{}, &models.ConvergenceError{
			Reason:       "rhat above threshold",
			RHat:         diag.RHat,
			ESS:          diag.ESS,
			FailedChains: failed,
		}
	}
	if diag.ESS < s.essFloor {
		return models.Posterior{}, &models.ConvergenceError{
			Reason:       "effective sample size below floor",
			RHat:         diag.RHat,
			ESS:          diag.ESS,
			FailedChains: failed,
		}
	}

	return pool(surviving, diag), nil
}

// pool concatenates surviving chains in chain-index order.
func pool(traces []models.ChainTrace, diag models.Diagnostics) models.Posterior {
	size := 0
	for _, t := range traces {
		size += len(t.Tau)
	}
	post := models.Posterior{
		Tau:         make([]int, 0, size),
		Mu1:         make([]float64, 0, size),
		Mu2:         make([]float64, 0, size),
		Sigma:       make([]float64, 0, size),
		Diagnostics: diag,
	}
	for _, t := range traces {
		post.Tau = append(post.Tau, t.Tau...)
		post.Mu1 = append(post.Mu1, t.Mu1...)
		post.Mu2 = append(post.Mu2, t.Mu2...)
		post.Sigma = append(post.Sigma, t.Sigma...)
	}
	return post
}

var _ domsvc.ChangePointSampler = (*Sampler)(nil)
