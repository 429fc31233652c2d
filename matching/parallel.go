package matching

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/BaSui01/hiermatch/internal/ctxkeys"
	"github.com/BaSui01/hiermatch/types"
)

const instrumentationName = "github.com/BaSui01/hiermatch/matching"

// Document is one evaluation instance: a gold standard and the annotator
// output for the same text.
type Document struct {
	ID        string              `json:"id" yaml:"id"`
	Gold      []types.TypedEntity `json:"gold" yaml:"gold"`
	Annotator []types.TypedEntity `json:"annotator" yaml:"annotator"`
}

// CounterFactory creates a fresh counter for one worker.
type CounterFactory func() (*HierarchicalMatchingsCounter, error)

// RunParallel evaluates docs with up to workers goroutines. Documents are
// split into contiguous chunks and every worker owns its own counter. The
// returned accumulator holds one call per document, in document order. A run
// id carried by ctx is attached to every document span.
func RunParallel(ctx context.Context, docs []Document, workers int, newCounter CounterFactory) (*Accumulator, error) {
	if newCounter == nil {
		return nil, types.NewError(types.ErrInvalidInput, "counter factory is nil")
	}
	if workers <= 0 {
		workers = 1
	}
	if workers > len(docs) {
		workers = len(docs)
	}
	if workers == 0 {
		return NewAccumulator(), nil
	}

	chunk := (len(docs) + workers - 1) / workers
	counters := make([]*HierarchicalMatchingsCounter, workers)
	inst := newInstruments()

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > len(docs) {
			hi = len(docs)
		}
		if lo >= hi {
			continue
		}
		w := w
		g.Go(func() error {
			counter, err := newCounter()
			if err != nil {
				return fmt.Errorf("worker %d: create counter: %w", w, err)
			}
			counters[w] = counter

			for i := lo; i < hi; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				if err := inst.countDocument(gctx, counter, i, docs[i]); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := NewAccumulator()
	for _, c := range counters {
		if c != nil {
			merged.Merge(c.accumulator)
		}
	}
	return merged, nil
}

type instruments struct {
	tracer    trace.Tracer
	documents metric.Int64Counter
}

func newInstruments() instruments {
	// A failed registration still returns a usable noop instrument.
	documents, _ := otel.Meter(instrumentationName).Int64Counter("hiermatch.documents",
		metric.WithDescription("Documents evaluated by RunParallel"),
		metric.WithUnit("{document}"),
	)
	return instruments{
		tracer:    otel.Tracer(instrumentationName),
		documents: documents,
	}
}

func (inst instruments) countDocument(ctx context.Context, counter *HierarchicalMatchingsCounter, index int, doc Document) error {
	ctx, span := inst.tracer.Start(ctx, "hiermatch.count_matchings",
		trace.WithAttributes(
			attribute.String("document.id", doc.ID),
			attribute.Int("document.index", index),
			attribute.Int("gold.entities", len(doc.Gold)),
			attribute.Int("annotator.entities", len(doc.Annotator)),
			attribute.String("matching.strategy", string(counter.Strategy())),
		),
	)
	defer span.End()
	if runID, ok := ctxkeys.RunID(ctx); ok {
		span.SetAttributes(attribute.String("run.id", runID))
	}

	strategy := attribute.String("strategy", string(counter.Strategy()))
	triples, err := counter.CountMatchings(doc.Annotator, doc.Gold)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		inst.documents.Add(ctx, 1, metric.WithAttributes(strategy, attribute.String("status", "error")))
		return fmt.Errorf("document %d (%s): %w", index, doc.ID, err)
	}
	span.SetAttributes(attribute.Int("triples", len(triples)))
	inst.documents.Add(ctx, 1, metric.WithAttributes(strategy, attribute.String("status", "success")))
	return nil
}
