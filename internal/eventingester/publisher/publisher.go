// Package publisher publishes event log records to a Pulsar topic.
package publisher

import (
	"context"
	"strconv"
	"time"

	"github.com/apache/pulsar-client-go/pulsar"
	pulsarlog "github.com/apache/pulsar-client-go/pulsar/log"
	"github.com/avast/retry-go"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	commonconfig "github.com/openlava/openlava-go/internal/common/config"
	"github.com/openlava/openlava-go/internal/eventingester/model"
)

const (
	PropertyType    = "type"
	PropertyLogName = "logName"
	PropertyLine    = "line"
)

// Sender is the part of pulsar.Producer used here.
type Sender interface {
	Send(ctx context.Context, msg *pulsar.ProducerMessage) (pulsar.MessageID, error)
}

// PulsarPublisher sends one message per event. Messages are keyed by job so that the events of a job
// stay in order on a partitioned topic.
type PulsarPublisher struct {
	producer    Sender
	maxAttempts uint
	backoff     time.Duration
}

func NewPulsarPublisher(producer Sender, maxAttempts uint, backoff time.Duration) *PulsarPublisher {
	if maxAttempts == 0 {
		maxAttempts = 1
	}
	return &PulsarPublisher{producer: producer, maxAttempts: maxAttempts, backoff: backoff}
}

// NewPulsarClient connects to Pulsar, logging through logrus.
func NewPulsarClient(config *commonconfig.PulsarConfig) (pulsar.Client, error) {
	client, err := pulsar.NewClient(pulsar.ClientOptions{
		URL:    config.URL,
		Logger: pulsarlog.NewLoggerWithLogrus(log.StandardLogger()),
	})
	return client, errors.WithStack(err)
}

// NewProducer creates a producer on the configured topic.
func NewProducer(client pulsar.Client, config *commonconfig.PulsarConfig) (pulsar.Producer, error) {
	producer, err := client.CreateProducer(pulsar.ProducerOptions{
		Topic:           config.Topic,
		CompressionType: config.CompressionType,
	})
	return producer, errors.Wrapf(err, "creating producer on %s", config.Topic)
}

func (p *PulsarPublisher) Name() string {
	return "publisher"
}

func (p *PulsarPublisher) Store(ctx context.Context, events []*model.Event) error {
	for _, e := range events {
		msg := message(e)
		err := retry.Do(
			func() error {
				_, err := p.producer.Send(ctx, msg)
				return err
			},
			retry.Context(ctx),
			retry.Attempts(p.maxAttempts),
			retry.Delay(p.backoff),
			retry.LastErrorOnly(true),
			retry.OnRetry(func(n uint, err error) {
				log.WithError(err).Warnf("Failed to publish line %d of %s, attempt %d", e.End.Line, e.LogName, n+1)
			}),
		)
		if err != nil {
			return errors.Wrapf(err, "publishing line %d of %s", e.End.Line, e.LogName)
		}
	}
	return nil
}

func message(e *model.Event) *pulsar.ProducerMessage {
	key := e.LogName
	if e.JobId.IsValid() {
		key = strconv.FormatInt(e.JobId.BaseId(), 10)
	}
	return &pulsar.ProducerMessage{
		Payload:   e.Json,
		Key:       key,
		EventTime: e.Time,
		Properties: map[string]string{
			PropertyType:    e.Type.String(),
			PropertyLogName: e.LogName,
			PropertyLine:    strconv.FormatInt(e.End.Line, 10),
		},
	}
}
