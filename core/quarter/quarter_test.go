package quarter

// metricPair is the shared test container: a count metric that sums over a
// trailing year, and a rate metric that averages.
type metricPair struct {
	Count float64
	Rate  float64
}

func newMetricPair() Container { return &metricPair{} }

func (p *metricPair) MetricNames() []string       { return []string{"count", "rate"} }
func (p *metricPair) AggregatedMetrics() []string { return []string{"rate"} }
func (p *metricPair) MetricValues() []float64     { return []float64{p.Count, p.Rate} }

func (p *metricPair) Snapshot() map[string]float64 {
	return map[string]float64{"count": p.Count, "rate": p.Rate}
}

func (p *metricPair) Restore(snapshot map[string]float64) {
	p.Count = snapshot["count"]
	p.Rate = snapshot["rate"]
}
