package quarter

import "slices"

// trailingQuarters is the size of the trailing-year window.
const trailingQuarters = 4

// LastYearStats aggregates a trailing four-quarter window into one value per
// metric. The window is the four quarters ending offset quarters before the
// most recent bucket: buckets are sorted ascending, the last 4+offset are
// taken, and the first four of those are combined. Metrics listed in
// AggregatedMetrics are averaged (sum divided by 4.0); all others keep the
// raw sum.
//
// When fewer than 4+offset buckets exist the aggregation runs over whatever
// is available, which silently under-counts. Callers that need a full year
// should check Len first.
func (s *Store) LastYearStats(offset int) map[string]float64 {
	names := s.newContainer().MetricNames()
	sums := make([]float64, len(names))

	for _, e := range s.lastYearWindow(offset) {
		for i, v := range e.Container.MetricValues() {
			if i < len(sums) {
				sums[i] += v
			}
		}
	}

	averaged := s.newContainer().AggregatedMetrics()
	stats := make(map[string]float64, len(names))
	for i, name := range names {
		if slices.Contains(averaged, name) {
			stats[name] = sums[i] / float64(trailingQuarters)
		} else {
			stats[name] = sums[i]
		}
	}
	return stats
}

// LastYearData returns the LastYearStats values in MetricNames order. It is a
// projection of LastYearStats, not a separate aggregation.
func (s *Store) LastYearData(offset int) []float64 {
	stats := s.LastYearStats(offset)
	names := s.newContainer().MetricNames()
	data := make([]float64, 0, len(names))
	for _, name := range names {
		data = append(data, stats[name])
	}
	return data
}

// lastYearWindow selects the trailing window entries in ascending order.
func (s *Store) lastYearWindow(offset int) []Entry {
	entries := s.Preview()
	if tail := trailingQuarters + offset; len(entries) > tail {
		entries = entries[len(entries)-tail:]
	}
	if len(entries) > trailingQuarters {
		entries = entries[:trailingQuarters]
	}
	return entries
}
