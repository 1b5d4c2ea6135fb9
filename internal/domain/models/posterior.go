package models

// ChainTrace holds the post-burn-in draws of a single sampling chain.
// Buffers are pre-allocated to the configured draw count; a chain that
// failed or was cancelled carries Err and empty buffers.
type ChainTrace struct {
	Index int
	Tau   []int
	Mu1   []float64
	Mu2   []float64
	Sigma []float64
	Err   error
}

// Posterior is the pooled set of samples from all surviving chains,
// concatenated in chain order so results are reproducible for a fixed
// master seed regardless of goroutine scheduling.
type Posterior struct {
	Tau   []int
	Mu1   []float64
	Mu2   []float64
	Sigma []float64

	Diagnostics Diagnostics
}

// Diagnostics records the cross-chain convergence evidence the gate was
// judged on. It is reported alongside results so a caller can decide how
// to reconfigure after a ConvergenceError.
type Diagnostics struct {
	RHat          float64 `json:"rhat"`
	ESS           float64 `json:"ess"`
	Chains        int     `json:"chains"`
	FailedChains  int     `json:"failed_chains"`
	DrawsPerChain int     `json:"draws_per_chain"`
	BurnIn        int     `json:"burn_in"`
}
