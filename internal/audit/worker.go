package audit

import (
	"context"
	"log/slog"
)

// Sink receives audit entries fanned out by the auditor, typically toward a
// message broker for downstream compliance consumers.
type Sink interface {
	Publish(ctx context.Context, entry Entry) error
}

// Worker drains the auditor's fan-out channel into a sink. Publish failures
// are logged and skipped: the store remains the source of truth, the sink is
// best-effort.
type Worker struct {
	sink   Sink
	inbox  <-chan Entry
	logger *slog.Logger
}

func NewWorker(sink Sink, inbox <-chan Entry, logger *slog.Logger) *Worker {
	return &Worker{sink: sink, inbox: inbox, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case entry := <-w.inbox:
			if err := w.sink.Publish(ctx, entry); err != nil {
				w.logger.ErrorContext(ctx, "publish audit entry",
					"entry_id", entry.ID,
					"error", err,
				)
			}
		}
	}
}
