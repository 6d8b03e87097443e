package changefeed

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// Multi publishes every event to all of its publishers.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Forward copies events from a remote feed into a local publisher until ctx
// is done. Events stamped with source were already delivered locally and are
// skipped.
func Forward(ctx context.Context, from Subscriber, to Publisher, source string) error {
	events, err := from.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("subscribe to remote feed: %w", err)
	}
	for e := range events {
		if e.Source == source {
			continue
		}
		if err := to.Publish(ctx, e); err != nil {
			log.Error("Failed to forward change event", "event", e.ID, "error", err)
			continue
		}
		log.Debug("Forwarded change event", "event", e.ID, "op", e.Op, "uuid", e.UUID, "source", e.Source)
	}
	return nil
}
