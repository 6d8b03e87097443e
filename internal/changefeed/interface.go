package changefeed

import "context"

// Publisher announces that the players table changed.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Subscriber delivers change events until ctx is cancelled, then closes the channel.
type Subscriber interface {
	Subscribe(ctx context.Context) (<-chan Event, error)
}
