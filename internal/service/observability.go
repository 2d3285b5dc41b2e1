package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"wayplan/internal/domain"
)

// MutationEvent captures lightweight execution telemetry for one
// structural operation.
type MutationEvent struct {
	Op        string
	Buckets   []domain.BucketKey
	Duration  time.Duration
	NoOp      bool
	Err       error
	StartedAt time.Time
}

// MutationObserver receives mutation execution events.
type MutationObserver interface {
	ObserveMutation(ctx context.Context, event MutationEvent)
}

// NoopMutationObserver ignores all events.
type NoopMutationObserver struct{}

func (NoopMutationObserver) ObserveMutation(context.Context, MutationEvent) {}

type logMutationObserver struct {
	logger *slog.Logger
}

// NewLogMutationObserver writes mutation events to the provided writer.
func NewLogMutationObserver(w io.Writer) MutationObserver {
	if w == nil {
		return NoopMutationObserver{}
	}
	return &logMutationObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logMutationObserver) ObserveMutation(ctx context.Context, event MutationEvent) {
	buckets := make([]string, 0, len(event.Buckets))
	for _, k := range event.Buckets {
		buckets = append(buckets, k.String())
	}
	attrs := []any{
		"op", event.Op,
		"buckets", buckets,
		"duration_ms", event.Duration.Milliseconds(),
		"no_op", event.NoOp,
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.ErrorContext(ctx, "itinerary_mutation", attrs...)
		return
	}
	o.logger.InfoContext(ctx, "itinerary_mutation", attrs...)
}

func mutationObserverOrNoop(observers []MutationObserver) MutationObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopMutationObserver{}
}
