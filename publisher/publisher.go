package publisher

import (
	"context"
	"encoding/json"

	"github.com/charmbracelet/log"
	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"

	"github.com/SylvanB/meme.crabenjoyer.xyz/model"
)

// Publisher hands fetch results to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, result model.FetchResult) error
	Close()
}

// NATSPublisher publishes fetch results as JSON on a NATS subject
type NATSPublisher struct {
	conn    *nats.Conn
	subject string
	logger  *log.Logger
}

func NewNATSPublisher(url, subject string, logger *log.Logger) (*NATSPublisher, error) {
	nc, err := nats.Connect(url, nats.Name("memes-client"))
	if err != nil {
		return nil, errors.Wrapf(err, "connecting to NATS at %s", url)
	}

	return NewNATSPublisherWithConn(nc, subject, logger), nil
}

func NewNATSPublisherWithConn(nc *nats.Conn, subject string, logger *log.Logger) *NATSPublisher {
	return &NATSPublisher{
		conn:    nc,
		subject: subject,
		logger:  logger,
	}
}

func (np *NATSPublisher) Publish(ctx context.Context, result model.FetchResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(result)
	if err != nil {
		return errors.Wrap(err, "marshaling fetch result")
	}

	if err := np.conn.Publish(np.subject, data); err != nil {
		return errors.Wrapf(err, "publishing to %s", np.subject)
	}

	np.logger.Info("Published recent memes", "subject", np.subject, "count", result.Count)
	return nil
}

func (np *NATSPublisher) Close() {
	if np.conn != nil {
		np.conn.Close()
	}
}

// LogPublisher only logs results; used when no NATS URL is configured.
type LogPublisher struct {
	logger *log.Logger
}

func NewLogPublisher(logger *log.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (lp *LogPublisher) Publish(_ context.Context, result model.FetchResult) error {
	lp.logger.Info("Recent memes", "count", result.Count, "fetchedAt", result.FetchedAt)
	for _, m := range result.Memes {
		lp.logger.Debug("Meme", "url", m.URL, "hash", m.Hash)
	}
	return nil
}

func (lp *LogPublisher) Close() {}
