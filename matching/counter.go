package matching

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BaSui01/hiermatch/hierarchy"
	"github.com/BaSui01/hiermatch/internal/metrics"
	"github.com/BaSui01/hiermatch/kb"
	"github.com/BaSui01/hiermatch/types"
)

// HierarchicalMatchingsCounter aligns gold and annotator entities, compares
// the types of every aligned pair and keeps the resulting triples per call.
// A counter owns its accumulator and must not be used from two goroutines.
type HierarchicalMatchingsCounter struct {
	spanMatcher    SpanMatcher
	typeMatcher    *TypeSetMatcher
	accumulator    *Accumulator
	countUnaligned bool

	strategy Strategy
	runID    string
	logger   *zap.Logger
	metrics  *metrics.Collector
}

// Option configures a HierarchicalMatchingsCounter.
type Option func(*HierarchicalMatchingsCounter)

// WithStrategy selects the type set comparison strategy.
func WithStrategy(s Strategy) Option {
	return func(c *HierarchicalMatchingsCounter) { c.strategy = s }
}

// WithUnalignedPenalty makes every entity without a span partner contribute
// a triple: unaligned gold entities count as false negatives, unaligned
// annotator entities as false positives.
func WithUnalignedPenalty(enabled bool) Option {
	return func(c *HierarchicalMatchingsCounter) { c.countUnaligned = enabled }
}

// WithLogger sets a custom logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *HierarchicalMatchingsCounter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics records every call into the given collector.
func WithMetrics(collector *metrics.Collector) Option {
	return func(c *HierarchicalMatchingsCounter) { c.metrics = collector }
}

// WithRunID overrides the generated run identifier used in log fields.
func WithRunID(id string) Option {
	return func(c *HierarchicalMatchingsCounter) {
		if id != "" {
			c.runID = id
		}
	}
}

// NewHierarchicalMatchingsCounter creates a counter. A nil spanMatcher falls
// back to WeakSpanMatcher.
func NewHierarchicalMatchingsCounter(spanMatcher SpanMatcher, classifier kb.Classifier, h *hierarchy.Hierarchy, opts ...Option) (*HierarchicalMatchingsCounter, error) {
	c := &HierarchicalMatchingsCounter{
		spanMatcher: spanMatcher,
		accumulator: NewAccumulator(),
		strategy:    StrategySubsumption,
		runID:       uuid.NewString(),
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.spanMatcher == nil {
		c.spanMatcher = WeakSpanMatcher{}
	}

	typeMatcher, err := NewTypeSetMatcher(h, classifier, c.strategy)
	if err != nil {
		return nil, fmt.Errorf("create type set matcher: %w", err)
	}
	c.typeMatcher = typeMatcher
	c.strategy = typeMatcher.Strategy()
	c.logger = c.logger.With(
		zap.String("component", "matchings_counter"),
		zap.String("run_id", c.runID),
	)

	return c, nil
}

// CountMatchings compares one annotator result against its gold standard,
// appends the produced triples as a new call and returns them. On error no
// call is recorded.
func (c *HierarchicalMatchingsCounter) CountMatchings(annotator, gold []types.TypedEntity) ([]types.MatchTriple, error) {
	start := time.Now()

	triples, stats, err := c.compare(annotator, gold)
	if err != nil {
		c.recordCall("error", time.Since(start))
		c.logger.Warn("matching call rejected", zap.Error(err))
		return nil, err
	}

	index := c.accumulator.Append(triples)
	total := types.SumTriples(triples)

	c.recordCall("success", time.Since(start))
	if c.metrics != nil {
		c.metrics.RecordAlignment(string(c.strategy), stats.pairs, stats.unalignedGold, stats.unalignedAnnotator)
		c.metrics.RecordTriple(string(c.strategy), total.Matched, total.FalsePositive, total.FalseNegative)
	}

	c.logger.Debug("matching call recorded",
		zap.Int("call", index),
		zap.Int("pairs", stats.pairs),
		zap.Int("unaligned_gold", stats.unalignedGold),
		zap.Int("unaligned_annotator", stats.unalignedAnnotator),
		zap.Stringer("total", total),
	)

	return append([]types.MatchTriple{}, triples...), nil
}

type alignmentStats struct {
	pairs              int
	unalignedGold      int
	unalignedAnnotator int
}

func (c *HierarchicalMatchingsCounter) compare(annotator, gold []types.TypedEntity) ([]types.MatchTriple, alignmentStats, error) {
	var stats alignmentStats

	alignments, err := c.spanMatcher.Align(gold, annotator)
	if err != nil {
		return nil, stats, fmt.Errorf("align spans: %w", err)
	}
	if err := validateAlignments(alignments, len(gold), len(annotator)); err != nil {
		return nil, stats, err
	}

	triples := make([]types.MatchTriple, 0, len(alignments))
	goldAligned := make([]bool, len(gold))
	annotatorAligned := make([]bool, len(annotator))

	for _, a := range alignments {
		goldAligned[a.Gold] = true
		annotatorAligned[a.Annotator] = true
		triples = append(triples, c.typeMatcher.Match(gold[a.Gold].Types, annotator[a.Annotator].Types))
	}
	stats.pairs = len(alignments)

	for i, aligned := range goldAligned {
		if aligned {
			continue
		}
		stats.unalignedGold++
		if c.countUnaligned {
			triples = append(triples, c.typeMatcher.Match(gold[i].Types, nil))
		}
	}
	for i, aligned := range annotatorAligned {
		if aligned {
			continue
		}
		stats.unalignedAnnotator++
		if c.countUnaligned {
			triples = append(triples, c.typeMatcher.Match(nil, annotator[i].Types))
		}
	}

	return triples, stats, nil
}

func (c *HierarchicalMatchingsCounter) recordCall(status string, d time.Duration) {
	if c.metrics != nil {
		c.metrics.RecordCall(string(c.strategy), status, d)
	}
}

// Counts returns one triple list per successful call, in call order.
func (c *HierarchicalMatchingsCounter) Counts() [][]types.MatchTriple {
	return c.accumulator.Calls()
}

// Calls returns the number of recorded calls.
func (c *HierarchicalMatchingsCounter) Calls() int {
	return c.accumulator.Len()
}

// Strategy returns the comparison strategy in use.
func (c *HierarchicalMatchingsCounter) Strategy() Strategy {
	return c.strategy
}

// RunID returns the identifier attached to this counter's log entries.
func (c *HierarchicalMatchingsCounter) RunID() string {
	return c.runID
}
