package models

import "fmt"

// ValidationError reports malformed input data. It is surfaced
// immediately and never retried; retrying the same bad input is
// pointless.
type ValidationError struct {
	Check  string // which validation failed, e.g. "min_length"
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("data validation failed (%s): %s", e.Check, e.Detail)
}

// ConvergenceError reports that MCMC diagnostics failed after all chains
// completed, or that too many chains were cancelled. An unconverged
// posterior is never returned as a result.
type ConvergenceError struct {
	Reason       string
	RHat         float64
	ESS          float64
	FailedChains int
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("convergence check failed (%s): rhat=%.4f ess=%.1f failed_chains=%d",
		e.Reason, e.RHat, e.ESS, e.FailedChains)
}
