package metrics

// Noop is a metrics recorder that discards everything. Used in tests and
// when metrics are disabled.
type Noop struct{}

func (Noop) RecordRun(string)                   {}
func (Noop) RecordChainFailure(string)          {}
func (Noop) RecordError(string)                 {}
func (Noop) RecordDuration(string, float64)     {}
func (Noop) RecordDiagnostics(float64, float64) {}
