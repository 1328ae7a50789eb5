package quarter

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"time"
)

// fulfillStepDays is the stride used when synthesizing missing buckets.
// Quarters are 90 to 92 days long, so a 93-day step taken from a quarter
// start always lands inside the following quarter and never skips one.
const fulfillStepDays = 93

// Store is a sparse, ordered mapping from quarter-start timestamp to a
// metrics Container. Buckets are created lazily and never replaced once
// created. The store is synchronous and not safe for concurrent mutation;
// callers that write from multiple workers must serialize access themselves.
type Store struct {
	newContainer func() Container
	buckets      map[int64]Container
	startDate    time.Time
	endDate      time.Time
	now          func() time.Time
}

// Option configures a Store at construction time.
type Option func(*Store)

// WithClock overrides the reference clock used for interval defaults and the
// end-of-current-quarter sentinel. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates an empty store whose buckets are produced by factory.
// StartDate and EndDate default to the creation time until Fulfill is called.
func NewStore(factory func() Container, opts ...Option) *Store {
	s := &Store{
		newContainer: factory,
		buckets:      make(map[int64]Container),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	created := s.now()
	s.startDate = created
	s.endDate = created
	return s
}

// Len returns the number of quarter buckets currently present.
func (s *Store) Len() int { return len(s.buckets) }

// StartDate returns the earliest quarter start after Fulfill, or the store
// creation time before it.
func (s *Store) StartDate() time.Time { return s.startDate }

// EndDate returns the latest quarter start after Fulfill, or the store
// creation time before it.
func (s *Store) EndDate() time.Time { return s.endDate }

// Fetch returns the existing bucket for the quarter containing t. It is a
// strict read: a quarter that was never populated yields ErrNotFound.
func (s *Store) Fetch(t time.Time) (Container, error) {
	key := Key(t)
	c, ok := s.buckets[key]
	if !ok {
		return nil, fmt.Errorf("%w: quarter starting %s", ErrNotFound, time.Unix(key, 0).UTC().Format(DateLayout))
	}
	return c, nil
}

// FindOrCreate returns the bucket for the quarter containing t, creating a
// zeroed container first if the quarter has never been seen. Repeated calls
// with dates in the same quarter return the same instance.
func (s *Store) FindOrCreate(t time.Time) Container {
	key := Key(t)
	if c, ok := s.buckets[key]; ok {
		return c
	}
	c := s.newContainer()
	s.buckets[key] = c
	return c
}

// Fulfill synthesizes empty buckets for every quarter strictly between the
// earliest and latest existing keys, then pins StartDate and EndDate to those
// keys. It is a no-op on an empty store and idempotent otherwise.
func (s *Store) Fulfill() {
	if len(s.buckets) == 0 {
		return
	}
	keys := s.sortedKeys()
	minKey, maxKey := keys[0], keys[len(keys)-1]

	cursor := time.Unix(minKey, 0).UTC()
	for cursor.Unix() < maxKey {
		cursor = StartOf(cursor.AddDate(0, 0, fulfillStepDays))
		s.FindOrCreate(cursor)
	}

	s.startDate = time.Unix(minKey, 0).UTC()
	s.endDate = time.Unix(maxKey, 0).UTC()
}

// ExtendToNow creates a bucket for the current quarter and fills every gap
// back to the earliest existing bucket, so that a subsequent
// WithQuarterIntervals walk yields exactly one window per calendar quarter.
// Without it a store whose newest bucket is in the past would produce a
// single sentinel window covering several quarters. No-op on an empty store.
func (s *Store) ExtendToNow() {
	if len(s.buckets) == 0 {
		return
	}
	s.FindOrCreate(s.now())
	s.Fulfill()
}

// Preview returns the series as (quarter start, container) pairs in ascending
// key order.
func (s *Store) Preview() []Entry {
	keys := s.sortedKeys()
	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, Entry{Start: time.Unix(k, 0).UTC(), Container: s.buckets[k]})
	}
	return entries
}

// EachSorted invokes fn for every bucket in ascending key order.
func (s *Store) EachSorted(fn func(start time.Time, c Container)) {
	for _, k := range s.sortedKeys() {
		fn(time.Unix(k, 0).UTC(), s.buckets[k])
	}
}

// ReverseEachSorted invokes fn for every bucket in descending key order.
func (s *Store) ReverseEachSorted(fn func(start time.Time, c Container)) {
	keys := s.sortedKeys()
	for i := len(keys) - 1; i >= 0; i-- {
		fn(time.Unix(keys[i], 0).UTC(), s.buckets[keys[i]])
	}
}

// WithQuarterIntervals invokes fn once per window that a collector still
// needs to query: every existing quarter boundary pair in ascending order,
// closed off by an end-of-current-quarter sentinel so the gap between the
// last known bucket and now is included. On an empty store it falls back to
// BuildIntervals over the trailing year.
func (s *Store) WithQuarterIntervals(fn func(start, finish time.Time)) {
	if len(s.buckets) == 0 {
		now := s.now()
		for _, iv := range BuildIntervals(now.AddDate(-1, 0, 0), now) {
			fn(iv.Start, iv.End)
		}
		return
	}

	keys := s.sortedKeys()
	bounds := make([]time.Time, 0, len(keys)+1)
	for _, k := range keys {
		bounds = append(bounds, time.Unix(k, 0).UTC())
	}
	bounds = append(bounds, EndOf(s.now()))

	for i := 0; i+1 < len(bounds); i++ {
		fn(bounds[i], bounds[i+1])
	}
}

// MarshalJSON serializes the store as an object keyed by the decimal
// quarter-start timestamp, with each value being the container's snapshot.
func (s *Store) MarshalJSON() ([]byte, error) {
	doc := make(map[string]map[string]float64, len(s.buckets))
	for k, c := range s.buckets {
		doc[strconv.FormatInt(k, 10)] = c.Snapshot()
	}
	return json.Marshal(doc)
}

// UnmarshalJSON restores buckets from the MarshalJSON form. Existing buckets
// with colliding keys are overwritten; bounds are not recomputed, so callers
// that need StartDate/EndDate should run Fulfill afterwards.
func (s *Store) UnmarshalJSON(data []byte) error {
	var doc map[string]map[string]float64
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	if s.buckets == nil {
		s.buckets = make(map[int64]Container, len(doc))
	}
	for k, snapshot := range doc {
		sec, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid quarter key %q: %w", k, err)
		}
		c := s.newContainer()
		c.Restore(snapshot)
		s.buckets[KeyFromUnix(sec)] = c
	}
	return nil
}

func (s *Store) sortedKeys() []int64 {
	return slices.Sorted(maps.Keys(s.buckets))
}
