// Package metrics provides internal metrics collection.
// This package is internal and should not be imported by external projects.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// =============================================================================
// 📊 指标收集器
// =============================================================================

// Collector 指标收集器
type Collector struct {
	// 评估调用指标
	callsTotal   *prometheus.CounterVec
	callDuration *prometheus.HistogramVec

	// 实体对齐指标
	alignedPairsTotal *prometheus.CounterVec
	unalignedTotal    *prometheus.CounterVec

	// 计数三元组指标
	tripleCountsTotal *prometheus.CounterVec

	logger *zap.Logger
}

// NewCollector 创建指标收集器，注册到默认 registry
func NewCollector(namespace string, logger *zap.Logger) *Collector {
	return NewCollectorWithRegistry(namespace, prometheus.DefaultRegisterer, logger)
}

// NewCollectorWithRegistry 创建指标收集器，注册到指定 registry
func NewCollectorWithRegistry(namespace string, reg prometheus.Registerer, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	factory := promauto.With(reg)

	c := &Collector{
		logger: logger.With(zap.String("component", "metrics")),
	}

	c.callsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matching_calls_total",
			Help:      "Total number of matching calls",
		},
		[]string{"strategy", "status"},
	)

	c.callDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "matching_call_duration_seconds",
			Help:      "Matching call duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
		[]string{"strategy"},
	)

	c.alignedPairsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "aligned_pairs_total",
			Help:      "Total number of span-aligned entity pairs",
		},
		[]string{"strategy"},
	)

	c.unalignedTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unaligned_entities_total",
			Help:      "Total number of entities without a span partner",
		},
		[]string{"side"}, // side: gold, annotator
	)

	c.tripleCountsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "triple_counts_total",
			Help:      "Sum of matched / false positive / false negative counts",
		},
		[]string{"strategy", "kind"},
	)

	c.logger.Info("metrics collector initialized", zap.String("namespace", namespace))

	return c
}

// =============================================================================
// 🎯 评估调用记录
// =============================================================================

// RecordCall 记录一次匹配调用
func (c *Collector) RecordCall(strategy, status string, duration time.Duration) {
	c.callsTotal.WithLabelValues(strategy, status).Inc()
	c.callDuration.WithLabelValues(strategy).Observe(duration.Seconds())
}

// RecordAlignment 记录对齐结果
func (c *Collector) RecordAlignment(strategy string, pairs, unalignedGold, unalignedAnnotator int) {
	c.alignedPairsTotal.WithLabelValues(strategy).Add(float64(pairs))
	c.unalignedTotal.WithLabelValues("gold").Add(float64(unalignedGold))
	c.unalignedTotal.WithLabelValues("annotator").Add(float64(unalignedAnnotator))
}

// RecordTriple 记录计数三元组
func (c *Collector) RecordTriple(strategy string, matched, falsePositive, falseNegative int) {
	c.tripleCountsTotal.WithLabelValues(strategy, "matched").Add(float64(matched))
	c.tripleCountsTotal.WithLabelValues(strategy, "false_positive").Add(float64(falsePositive))
	c.tripleCountsTotal.WithLabelValues(strategy, "false_negative").Add(float64(falseNegative))
}
