package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/treeoracle/pkg/domain"
)

// LogHooks returns hooks that write one structured record per event.
// Expansions are logged at Debug since a single tree may produce thousands.
func LogHooks(logger *slog.Logger) domain.Hooks {
	return domain.Hooks{
		OnExpand: func(ctx context.Context, e *domain.ExpandEvent) {
			logger.DebugContext(ctx, "expand",
				"grammar", e.Grammar,
				"symbol", e.Symbol,
				"option", e.Option,
				"step", e.Step,
			)
		},
		OnSample: func(ctx context.Context, e *domain.SampleEvent) {
			logger.InfoContext(ctx, "sample",
				"grammar", e.Grammar,
				"id", e.SampleID,
				"size", e.Size,
				"depth", e.Depth,
				"score", e.Score,
				"duration", e.Duration,
			)
		},
		OnError: func(ctx context.Context, e *domain.ErrorEvent) {
			logger.ErrorContext(ctx, "sample failed", "grammar", e.Grammar, "err", e.Err)
		},
	}
}

// Chain merges hook sets; each event is delivered to every non-nil callback in order.
func Chain(sets ...domain.Hooks) domain.Hooks {
	var out domain.Hooks

	var expand []func(context.Context, *domain.ExpandEvent)
	var sample []func(context.Context, *domain.SampleEvent)
	var fail []func(context.Context, *domain.ErrorEvent)
	for _, h := range sets {
		if h.OnExpand != nil {
			expand = append(expand, h.OnExpand)
		}
		if h.OnSample != nil {
			sample = append(sample, h.OnSample)
		}
		if h.OnError != nil {
			fail = append(fail, h.OnError)
		}
	}

	if len(expand) > 0 {
		out.OnExpand = func(ctx context.Context, e *domain.ExpandEvent) {
			for _, fn := range expand {
				fn(ctx, e)
			}
		}
	}
	if len(sample) > 0 {
		out.OnSample = func(ctx context.Context, e *domain.SampleEvent) {
			for _, fn := range sample {
				fn(ctx, e)
			}
		}
	}
	if len(fail) > 0 {
		out.OnError = func(ctx context.Context, e *domain.ErrorEvent) {
			for _, fn := range fail {
				fn(ctx, e)
			}
		}
	}
	return out
}
