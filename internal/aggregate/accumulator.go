package aggregate

import (
	"maps"
	"slices"
)

// Stats counts what happened to the records of a dictionary during aggregation.
type Stats struct {
	Files              int `json:"files"`
	Paradigms          int `json:"paradigms"`
	Variants           int `json:"variants"`
	InflectingVariants int `json:"inflectingVariants"`
	InvariantVariants  int `json:"invariantVariants"`
	CompoundVariants   int `json:"compoundVariants"`
	MalformedRecords   int `json:"malformedRecords"`
}

// Add sums the counters of other into s.
func (s *Stats) Add(other Stats) {
	s.Files += other.Files
	s.Paradigms += other.Paradigms
	s.Variants += other.Variants
	s.InflectingVariants += other.InflectingVariants
	s.InvariantVariants += other.InvariantVariants
	s.CompoundVariants += other.CompoundVariants
	s.MalformedRecords += other.MalformedRecords
}

// Accumulator holds the corpus-wide flexion counts and invariant words.
// Merging accumulators is commutative and associative, so per-file results
// can be combined in any order. An Accumulator is not safe for concurrent use.
type Accumulator struct {
	flexions   map[string]int
	invariants map[string]struct{}
	stats      Stats
}

// NewAccumulator creates an empty Accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{
		flexions:   make(map[string]int),
		invariants: make(map[string]struct{}),
	}
}

// AddFlexion increments the occurrence count of a flexion.
func (a *Accumulator) AddFlexion(flexion string) {
	a.flexions[flexion]++
}

// AddInvariant records a word that never changes its form.
func (a *Accumulator) AddInvariant(word string) {
	a.invariants[word] = struct{}{}
}

// Merge folds other into a.
func (a *Accumulator) Merge(other *Accumulator) {
	for flexion, count := range other.flexions {
		a.flexions[flexion] += count
	}

	for word := range other.invariants {
		a.invariants[word] = struct{}{}
	}

	a.stats.Add(other.stats)
}

// Flexions returns a copy of the raw flexion count table.
func (a *Accumulator) Flexions() map[string]int {
	return maps.Clone(a.flexions)
}

// Invariants returns the invariant words in lexicographic order.
func (a *Accumulator) Invariants() []string {
	return slices.Sorted(maps.Keys(a.invariants))
}

// Stats returns the aggregation counters.
func (a *Accumulator) Stats() Stats {
	return a.stats
}
