package changefeed

import (
	"context"
	"database/sql"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lib/pq"
	"github.com/vmihailenco/msgpack/v5"
)

var (
	_ Publisher  = (*PGNotify)(nil)
	_ Subscriber = (*PGNotify)(nil)
)

// DefaultChannel is the NOTIFY channel used when none is configured.
const DefaultChannel = "player_changes"

// PGNotify carries change events through Postgres LISTEN/NOTIFY so every
// instance sharing a database sees every write.
type PGNotify struct {
	db      *sql.DB
	dsn     string
	channel string
}

// NewPGNotify publishes through db and listens on a dedicated connection to dsn.
func NewPGNotify(db *sql.DB, dsn, channel string) *PGNotify {
	if channel == "" {
		channel = DefaultChannel
	}
	return &PGNotify{db: db, dsn: dsn, channel: channel}
}

func (n *PGNotify) Publish(ctx context.Context, e Event) error {
	payload, err := encodeNotify(e)
	if err != nil {
		return err
	}
	if _, err := n.db.ExecContext(ctx, "SELECT pg_notify($1, $2)", n.channel, payload); err != nil {
		return fmt.Errorf("notify %s: %w", n.channel, err)
	}
	return nil
}

func (n *PGNotify) Subscribe(ctx context.Context) (<-chan Event, error) {
	listener := pq.NewListener(n.dsn, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			log.Error("Postgres listener event", "event", ev, "error", err)
		}
	})
	if err := listener.Listen(n.channel); err != nil {
		listener.Close()
		return nil, fmt.Errorf("listen %s: %w", n.channel, err)
	}

	ch := make(chan Event, subscriberBuffer)
	go func() {
		defer close(ch)
		defer listener.Close()

		ping := time.NewTicker(90 * time.Second)
		defer ping.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ping.C:
				go listener.Ping()
			case notification := <-listener.Notify:
				var e Event
				if notification == nil {
					// Reconnected: anything may have changed while we were away.
					log.Warn("Postgres listener reconnected, requesting resync", "channel", n.channel)
					e = NewEvent(OpUpdate, "", "", time.Now().UTC())
				} else {
					var err error
					if e, err = decodeNotify(notification.Extra); err != nil {
						log.Error("Dropping undecodable notification", "channel", notification.Channel, "error", err)
						continue
					}
				}
				select {
				case ch <- e:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return ch, nil
}

// NOTIFY payloads must be text, so the MessagePack body is base64 encoded.
func encodeNotify(e Event) (string, error) {
	data, err := msgpack.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("encode change event: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

func decodeNotify(payload string) (Event, error) {
	var e Event
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return e, fmt.Errorf("decode notification payload: %w", err)
	}
	if err := msgpack.Unmarshal(data, &e); err != nil {
		return e, fmt.Errorf("decode change event: %w", err)
	}
	return e, nil
}
