package nats

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// Notifier publishes the archive refresh signal. The signal carries no
// payload: subscribers re-query the listing on any message.
type Notifier struct {
	conn    *nats.Conn
	subject string
}

func New(url, subject string) (*Notifier, error) {
	conn, err := nats.Connect(
		url,
		nats.Name("docvault"),
		nats.Timeout(2*time.Second),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(60),
		nats.RetryOnFailedConnect(true),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			slog.Warn("nats disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			slog.Info("nats reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return &Notifier{conn: conn, subject: subject}, nil
}

func (n *Notifier) Close() {
	if n.conn != nil {
		n.conn.Close()
	}
}

func (n *Notifier) NotifyArchiveChanged(_ context.Context) error {
	if err := n.conn.Publish(n.subject, nil); err != nil {
		return fmt.Errorf("nats publish: %w", err)
	}
	return nil
}

// SubscribeArchiveChanged blocks until ctx is done, invoking handler on every
// refresh signal. Used by presentation-layer consumers outside this service.
func (n *Notifier) SubscribeArchiveChanged(ctx context.Context, handler func(context.Context)) error {
	sub, err := n.conn.Subscribe(n.subject, func(_ *nats.Msg) {
		if ctx.Err() != nil {
			return
		}
		handler(ctx)
	})
	if err != nil {
		return fmt.Errorf("nats subscribe: %w", err)
	}

	if err := n.conn.Flush(); err != nil {
		return fmt.Errorf("nats flush: %w", err)
	}

	<-ctx.Done()
	if err := sub.Drain(); err != nil {
		return fmt.Errorf("nats drain subscription: %w", err)
	}
	return nil
}
