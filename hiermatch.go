// Package hiermatch is the top-level entry point for hierarchy-aware entity
// type evaluation. It wires the type hierarchy, the knowledge base
// classifier, the span matcher and the ambient stack (logging, metrics,
// telemetry) from a single configuration.
//
// Usage:
//
//	cfg, err := config.NewLoader().WithConfigPath("hiermatch.yaml").Load()
//	ev, err := hiermatch.Open(cfg, logger)
//	defer ev.Close(ctx)
//
//	counter, err := ev.NewCounter()
//	triples, err := counter.CountMatchings(annotator, gold)
//
//	acc, err := ev.RunParallel(ctx, docs)
package hiermatch

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/BaSui01/hiermatch/config"
	"github.com/BaSui01/hiermatch/hierarchy"
	"github.com/BaSui01/hiermatch/internal/ctxkeys"
	"github.com/BaSui01/hiermatch/internal/logging"
	"github.com/BaSui01/hiermatch/internal/metrics"
	"github.com/BaSui01/hiermatch/internal/telemetry"
	"github.com/BaSui01/hiermatch/kb"
	"github.com/BaSui01/hiermatch/matching"
)

// Evaluator holds the shared, read-only state of an evaluation run. Counters
// created from it are independent; the Evaluator itself is safe for
// concurrent use.
type Evaluator struct {
	cfg         *config.Config
	logger      *zap.Logger
	hierarchy   *hierarchy.Hierarchy
	classifier  kb.Classifier
	spanMatcher matching.SpanMatcher
	strategy    matching.Strategy
	metrics     *metrics.Collector
	telemetry   *telemetry.Providers
}

// OpenOption configures Open.
type OpenOption func(*openOptions)

type openOptions struct {
	registerer prometheus.Registerer
	hierarchy  *hierarchy.Hierarchy
}

// WithRegisterer registers metrics with reg instead of the default registry.
func WithRegisterer(reg prometheus.Registerer) OpenOption {
	return func(o *openOptions) { o.registerer = reg }
}

// WithHierarchy uses an already built hierarchy and ignores hierarchy.path.
func WithHierarchy(h *hierarchy.Hierarchy) OpenOption {
	return func(o *openOptions) { o.hierarchy = h }
}

// Open validates cfg and builds an Evaluator. A nil cfg uses the defaults; a
// nil logger is built from cfg.Log.
func Open(cfg *config.Config, logger *zap.Logger, opts ...OpenOption) (*Evaluator, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := openOptions{registerer: prometheus.DefaultRegisterer}
	for _, opt := range opts {
		opt(&o)
	}

	if logger == nil {
		l, err := logging.New(cfg.Log)
		if err != nil {
			return nil, fmt.Errorf("build logger: %w", err)
		}
		logger = l
	}

	strategy, err := matching.ParseStrategy(cfg.Matching.Strategy)
	if err != nil {
		return nil, err
	}
	spanMatcher, err := matching.NewSpanMatcher(matching.SpanMode(cfg.Matching.SpanMode))
	if err != nil {
		return nil, err
	}

	h := o.hierarchy
	if h == nil {
		h, err = loadHierarchy(cfg.Hierarchy, logger)
		if err != nil {
			return nil, err
		}
	}

	ev := &Evaluator{
		cfg:         cfg,
		logger:      logger.With(zap.String("component", "evaluator")),
		hierarchy:   h,
		classifier:  kb.NewWhitelistClassifier(cfg.KB.Prefixes...),
		spanMatcher: spanMatcher,
		strategy:    strategy,
	}

	if cfg.Metrics.Enabled {
		ev.metrics = metrics.NewCollectorWithRegistry(cfg.Metrics.Namespace, o.registerer, logger)
	}

	providers, err := telemetry.Init(cfg.Telemetry, logger)
	if err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}
	ev.telemetry = providers

	ev.logger.Info("evaluator ready",
		zap.String("strategy", string(strategy)),
		zap.String("span_mode", cfg.Matching.SpanMode),
		zap.Int("hierarchy_types", len(h.Types())),
		zap.Strings("kb_prefixes", cfg.KB.Prefixes),
	)
	return ev, nil
}

func loadHierarchy(cfg config.HierarchyConfig, logger *zap.Logger) (*hierarchy.Hierarchy, error) {
	b := hierarchy.NewBuilder().WithLogger(logger).WithPrecompute(cfg.Precompute)
	if cfg.Path == "" {
		return b.Build(), nil
	}
	edges, err := hierarchy.LoadFile(cfg.Path)
	if err != nil {
		return nil, err
	}
	return b.AddEdges(edges...).Build(), nil
}

// NewCounter creates a counter configured from the evaluator's settings.
func (e *Evaluator) NewCounter() (*matching.HierarchicalMatchingsCounter, error) {
	return e.newCounter("")
}

func (e *Evaluator) newCounter(runID string) (*matching.HierarchicalMatchingsCounter, error) {
	return matching.NewHierarchicalMatchingsCounter(e.spanMatcher, e.classifier, e.hierarchy,
		matching.WithStrategy(e.strategy),
		matching.WithUnalignedPenalty(e.cfg.Matching.CountUnaligned),
		matching.WithLogger(e.logger),
		matching.WithMetrics(e.metrics),
		matching.WithRunID(runID),
	)
}

// RunParallel evaluates docs with the configured number of workers. The
// result holds one call per document in document order. Every worker counter
// shares the run id found in ctx, or a fresh one.
func (e *Evaluator) RunParallel(ctx context.Context, docs []matching.Document) (*matching.Accumulator, error) {
	runID, ok := ctxkeys.RunID(ctx)
	if !ok {
		runID = uuid.NewString()
		ctx = ctxkeys.WithRunID(ctx, runID)
	}
	logger := e.logger.With(zap.String("run_id", runID))

	acc, err := matching.RunParallel(ctx, docs, e.cfg.Matching.Workers, func() (*matching.HierarchicalMatchingsCounter, error) {
		return e.newCounter(runID)
	})
	if err != nil {
		logger.Warn("parallel evaluation failed", zap.Int("documents", len(docs)), zap.Error(err))
		return nil, err
	}
	logger.Debug("parallel evaluation finished",
		zap.Int("documents", len(docs)),
		zap.Stringer("total", acc.Total()),
	)
	return acc, nil
}

// Hierarchy returns the type hierarchy in use.
func (e *Evaluator) Hierarchy() *hierarchy.Hierarchy {
	return e.hierarchy
}

// Classifier returns the knowledge base classifier in use.
func (e *Evaluator) Classifier() kb.Classifier {
	return e.classifier
}

// Close flushes telemetry.
func (e *Evaluator) Close(ctx context.Context) error {
	return e.telemetry.Shutdown(ctx)
}
