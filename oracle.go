package treeoracle

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/aretw0/treeoracle/internal/runtime"
	"github.com/aretw0/treeoracle/pkg/domain"
	"github.com/aretw0/treeoracle/pkg/grammar"
	"github.com/aretw0/treeoracle/pkg/ports"
	"github.com/aretw0/treeoracle/pkg/registry"
	"github.com/aretw0/treeoracle/pkg/sampler"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Version is the library version reported by the CLI and the HTTP adapter.
const Version = "0.3.0"

// DefaultWorkers is the batch parallelism when none is configured.
const DefaultWorkers = 4

// sampleNamespace scopes deterministic sample IDs.
var sampleNamespace = uuid.MustParse("6f1c7e0a-4b8e-4f0e-9a51-2f4f3c1d9b7e")

// Oracle is the high-level entry point of the library.
// It wraps the generator, the grammar registry and an optional sample store.
type Oracle struct {
	generator *runtime.Generator
	registry  *registry.Registry
	store     ports.SampleStore
	hooks     domain.Hooks
	logger    *slog.Logger

	seed     int64
	src      sampler.Source
	workers  int
	maxSteps int
	x, y     float64
	now      func() time.Time

	next atomic.Int64
}

// Option defines a functional option for configuring the Oracle.
type Option func(*Oracle)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Oracle) {
		o.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.Hooks) Option {
	return func(o *Oracle) {
		o.hooks = hooks
	}
}

// WithSeed sets the base seed. Single-shot helpers draw from a stream seeded
// with it; batch sample i draws from a stream seeded with seed+i.
func WithSeed(seed int64) Option {
	return func(o *Oracle) {
		o.seed = seed
	}
}

// WithSource replaces the stream used by the single-shot helpers.
// The source is wrapped so it may be shared across goroutines.
func WithSource(src sampler.Source) Option {
	return func(o *Oracle) {
		o.src = src
	}
}

// WithWorkers sets the batch parallelism.
func WithWorkers(n int) Option {
	return func(o *Oracle) {
		o.workers = n
	}
}

// WithMaxSteps bounds the expansions of one generation. Zero disables the bound.
func WithMaxSteps(n int) Option {
	return func(o *Oracle) {
		o.maxSteps = n
	}
}

// WithStore persists every sample produced by Sample and Batch.
func WithStore(store ports.SampleStore) Option {
	return func(o *Oracle) {
		o.store = store
	}
}

// WithRegistry replaces the default grammar registry.
func WithRegistry(r *registry.Registry) Option {
	return func(o *Oracle) {
		o.registry = r
	}
}

// WithLogicalInputs binds the truth values of x and y (default 0 and 1).
// It has no effect when a custom registry is supplied.
func WithLogicalInputs(x, y float64) Option {
	return func(o *Oracle) {
		o.x, o.y = x, y
	}
}

// WithClock overrides the time source stamped on samples.
func WithClock(now func() time.Time) Option {
	return func(o *Oracle) {
		o.now = now
	}
}

// New initializes an Oracle.
func New(opts ...Option) *Oracle {
	o := &Oracle{
		workers:  DefaultWorkers,
		maxSteps: runtime.DefaultMaxSteps,
		x:        0,
		y:        1,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(o)
	}

	// Ensure logger is initialized (so we don't pass nil to runtime)
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.registry == nil {
		o.registry = registry.Default(o.x, o.y)
	}
	if o.src == nil {
		o.src = sampler.NewSource(o.seed)
	}
	o.src = sampler.NewLocked(o.src)
	if o.workers < 1 {
		o.workers = 1
	}

	o.generator = runtime.NewGenerator(
		runtime.WithLogger(o.logger),
		runtime.WithHooks(o.hooks),
		runtime.WithMaxSteps(o.maxSteps),
	)
	return o
}

// Registry returns the grammars the oracle can sample.
func (o *Oracle) Registry() *registry.Registry {
	return o.registry
}

// Store returns the configured sample store, or nil.
func (o *Oracle) Store() ports.SampleStore {
	return o.store
}

// Seed returns the base seed.
func (o *Oracle) Seed() int64 {
	return o.seed
}

// GenerateTree samples one tree from gr at start using the oracle's shared stream.
func (o *Oracle) GenerateTree(ctx context.Context, start domain.Label, gr *grammar.Grammar) (*domain.Tree, error) {
	return o.generator.Generate(ctx, start, gr, o.src)
}

// GenerateLogicalTree samples the logical grammar at S and evaluates the tree
// at the configured x and y.
func (o *Oracle) GenerateLogicalTree(ctx context.Context) (*domain.Tree, float64, error) {
	return o.generateScored(ctx, grammar.NameLogical)
}

// GenerateRNATree samples the RNA grammar at S and estimates the tree's energy.
func (o *Oracle) GenerateRNATree(ctx context.Context) (*domain.Tree, float64, error) {
	return o.generateScored(ctx, grammar.NameRNA)
}

func (o *Oracle) generateScored(ctx context.Context, name string) (*domain.Tree, float64, error) {
	e, err := o.registry.Get(name)
	if err != nil {
		return nil, 0, err
	}
	tree, err := o.generator.Generate(ctx, e.Start, e.Grammar, o.src)
	if err != nil {
		return nil, 0, err
	}
	score, err := e.Scorer.Score(tree)
	if err != nil {
		return nil, 0, err
	}
	return tree, score, nil
}

// Sample produces the next sample of the named grammar and persists it when a
// store is configured. Successive calls advance a shared index, so the k-th
// call on a fresh oracle returns the same sample as index k of a Batch.
func (o *Oracle) Sample(ctx context.Context, name string) (*domain.Sample, error) {
	index := int(o.next.Add(1) - 1)
	s, err := o.sampleAt(ctx, name, o.seed, index)
	if err != nil {
		return nil, err
	}
	if err := o.save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Batch produces n samples of the named grammar in parallel, in index order.
// Sample i draws from a stream seeded with seed+i, so the result does not
// depend on the worker count. The first failure cancels the remaining work.
func (o *Oracle) Batch(ctx context.Context, name string, n int) ([]*domain.Sample, error) {
	return o.BatchFrom(ctx, name, o.seed, n)
}

// BatchFrom is Batch with an explicit base seed in place of the configured one.
func (o *Oracle) BatchFrom(ctx context.Context, name string, seed int64, n int) ([]*domain.Sample, error) {
	if n < 0 {
		return nil, fmt.Errorf("batch size must be non-negative, got %d", n)
	}
	if _, err := o.registry.Get(name); err != nil {
		return nil, err
	}

	samples := make([]*domain.Sample, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s, err := o.sampleAt(gctx, name, seed, i)
			if err != nil {
				return fmt.Errorf("sample %d: %w", i, err)
			}
			if err := o.save(gctx, s); err != nil {
				return err
			}
			samples[i] = s
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	o.logger.Info("batch generated", "grammar", name, "count", n, "seed", seed, "workers", o.workers)
	return samples, nil
}

func (o *Oracle) sampleAt(ctx context.Context, name string, seed int64, index int) (*domain.Sample, error) {
	e, err := o.registry.Get(name)
	if err != nil {
		return nil, err
	}

	began := o.now()
	src := sampler.NewSource(seed + int64(index))

	tree, err := o.generator.Generate(ctx, e.Start, e.Grammar, src)
	if err == nil && e.Alphabet != nil {
		err = e.Alphabet.Check(tree)
	}
	var score float64
	if err == nil {
		score, err = e.Scorer.Score(tree)
	}
	if err != nil {
		o.fireError(ctx, name, err)
		return nil, err
	}

	s := &domain.Sample{
		ID:        SampleID(name, seed, index),
		Grammar:   name,
		Seed:      seed + int64(index),
		Index:     index,
		Tree:      tree,
		Score:     score,
		Size:      tree.Size(),
		CreatedAt: began,
	}

	if o.hooks.OnSample != nil {
		o.hooks.OnSample(ctx, &domain.SampleEvent{
			EventBase: domain.EventBase{Timestamp: o.now(), Type: domain.EventSample, Grammar: name},
			SampleID:  s.ID,
			Size:      s.Size,
			Depth:     tree.Depth(),
			Score:     score,
			Duration:  o.now().Sub(began),
		})
	}
	return s, nil
}

func (o *Oracle) save(ctx context.Context, s *domain.Sample) error {
	if o.store == nil {
		return nil
	}
	if err := o.store.Save(ctx, s); err != nil {
		o.logger.Error("failed to save sample", "id", s.ID, "err", err)
		o.fireError(ctx, s.Grammar, err)
		return fmt.Errorf("save sample %s: %w", s.ID, err)
	}
	return nil
}

func (o *Oracle) fireError(ctx context.Context, name string, err error) {
	if o.hooks.OnError != nil {
		o.hooks.OnError(ctx, &domain.ErrorEvent{
			EventBase: domain.EventBase{Timestamp: o.now(), Type: domain.EventError, Grammar: name},
			Err:       err,
		})
	}
}

// SampleID derives a stable identifier for sample index of a seeded batch.
func SampleID(name string, seed int64, index int) string {
	return uuid.NewSHA1(sampleNamespace, fmt.Appendf(nil, "%s/%d/%d", name, seed, index)).String()
}
