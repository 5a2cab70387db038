package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aretw0/treeoracle/pkg/domain"
	"github.com/aretw0/treeoracle/pkg/ports"
)

type loggingMiddleware struct {
	next   ports.SampleStore
	logger *slog.Logger
}

// NewLoggingMiddleware logs every store call at Debug and failures at Error.
// A missing sample on Load is not a failure.
func NewLoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next ports.SampleStore) ports.SampleStore {
		return &loggingMiddleware{next: next, logger: logger}
	}
}

func (m *loggingMiddleware) log(ctx context.Context, op, id string, start time.Time, err error) {
	attrs := []any{"op", op, "duration", time.Since(start)}
	if id != "" {
		attrs = append(attrs, "sample_id", id)
	}
	if err != nil && !errors.Is(err, domain.ErrSampleNotFound) {
		m.logger.ErrorContext(ctx, "sample store call failed", append(attrs, "err", err)...)
		return
	}
	m.logger.DebugContext(ctx, "sample store call", attrs...)
}

func (m *loggingMiddleware) Save(ctx context.Context, sample *domain.Sample) error {
	start := time.Now()
	err := m.next.Save(ctx, sample)
	id := ""
	if sample != nil {
		id = sample.ID
	}
	m.log(ctx, "save", id, start, err)
	return err
}

func (m *loggingMiddleware) Load(ctx context.Context, id string) (*domain.Sample, error) {
	start := time.Now()
	s, err := m.next.Load(ctx, id)
	m.log(ctx, "load", id, start, err)
	return s, err
}

func (m *loggingMiddleware) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := m.next.Delete(ctx, id)
	m.log(ctx, "delete", id, start, err)
	return err
}

func (m *loggingMiddleware) List(ctx context.Context) ([]string, error) {
	start := time.Now()
	ids, err := m.next.List(ctx)
	m.log(ctx, "list", "", start, err)
	return ids, err
}
