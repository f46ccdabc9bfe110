// Package eventingester follows a daemon event log and stores every record it decodes in one or more sinks:
// a Postgres archive, a Pulsar topic and per-job lists in Redis. Progress is checkpointed after each batch has
// been stored by every sink, so a restarted ingester resumes where it stopped. Records may be handed to the
// sinks twice around a restart. The archive and the Redis lists ignore repeats; Pulsar consumers see them.
package eventingester

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"k8s.io/utils/clock"

	"github.com/openlava/openlava-go/internal/common/logging"
	"github.com/openlava/openlava-go/internal/common/lsberrors"
	"github.com/openlava/openlava-go/internal/eventingester/batch"
	"github.com/openlava/openlava-go/internal/eventingester/convert"
	"github.com/openlava/openlava-go/internal/eventingester/metrics"
	"github.com/openlava/openlava-go/internal/eventingester/model"
	"github.com/openlava/openlava-go/internal/eventlog"
)

// Sink stores batches of events. A batch may be stored again after a failure.
type Sink interface {
	Name() string
	Store(ctx context.Context, events []*model.Event) error
}

// LogResetter is implemented by sinks that track how much of a log they have stored. ResetLog is called
// when the log turns out to have been truncated and is read again from the start.
type LogResetter interface {
	ResetLog(logName string) error
}

type Options struct {
	// Path of the event log
	Path string
	// Name the log's events and checkpoint are stored under
	LogName string
	// Keep polling at the end of the log instead of returning
	Follow        bool
	PollInterval  time.Duration
	BatchSize     int
	BatchDuration time.Duration
}

type Ingester struct {
	opts        Options
	checkpoints eventlog.CheckpointStore
	sinks       []Sink
	metrics     *metrics.Metrics
	clock       clock.Clock
}

func NewIngester(opts Options, checkpoints eventlog.CheckpointStore, sinks ...Sink) *Ingester {
	return &Ingester{
		opts:        opts,
		checkpoints: checkpoints,
		sinks:       sinks,
		metrics:     metrics.Get(),
		clock:       clock.RealClock{},
	}
}

// Run ingests the log until ctx is cancelled or, when not following, until the end of the log is reached.
func (i *Ingester) Run(ctx context.Context) error {
	logger := log.WithField("log", i.opts.LogName)

	file, err := os.Open(i.opts.Path)
	if err != nil {
		return errors.WithStack(err)
	}
	defer file.Close()

	start, err := i.startPosition(file)
	if err != nil {
		return err
	}
	decoder, err := eventlog.NewDecoderAt(file, start)
	if err != nil {
		return err
	}
	logger.Infof("Ingesting %s from line %d", i.opts.Path, start.Line)

	g, ctx := errgroup.WithContext(ctx)
	events := make(chan *model.Event, 2*i.opts.BatchSize)
	g.Go(func() error {
		defer close(events)
		return i.tail(ctx, decoder, events)
	})
	batches := batch.Batch(ctx, events, i.opts.BatchSize, i.opts.BatchDuration, 5, i.clock)
	g.Go(func() error {
		for b := range batches {
			if err := i.store(ctx, b); err != nil {
				return err
			}
		}
		return nil
	})
	return g.Wait()
}

// startPosition returns the saved checkpoint, or the start of the log if there is none or if the log has
// been truncated below it.
func (i *Ingester) startPosition(file *os.File) (eventlog.Position, error) {
	pos, ok, err := i.checkpoints.Load(i.opts.LogName)
	if err != nil || !ok {
		return eventlog.Position{}, err
	}
	info, err := file.Stat()
	if err != nil {
		return eventlog.Position{}, errors.WithStack(err)
	}
	if info.Size() < pos.Offset {
		log.WithField("log", i.opts.LogName).Warnf(
			"Log is %d bytes but checkpoint is at offset %d; starting from the beginning", info.Size(), pos.Offset)
		for _, sink := range i.sinks {
			if r, ok := sink.(LogResetter); ok {
				if err := r.ResetLog(i.opts.LogName); err != nil {
					return eventlog.Position{}, errors.WithMessagef(err, "resetting %s", sink.Name())
				}
			}
		}
		return eventlog.Position{}, nil
	}
	return pos, nil
}

// tail decodes records and sends them to out. Records that cannot be decoded are logged and skipped.
func (i *Ingester) tail(ctx context.Context, decoder *eventlog.Decoder, out chan<- *model.Event) error {
	converter := convert.NewEventConverter(i.opts.LogName)
	for {
		record, err := decoder.Next()
		if err == io.EOF {
			if !i.opts.Follow {
				return nil
			}
			select {
			case <-ctx.Done():
				return nil
			case <-i.clock.After(i.opts.PollInterval):
			}
			continue
		}
		var decodeErr *lsberrors.ErrDecode
		if errors.As(err, &decodeErr) {
			i.metrics.RecordDecodeError()
			logging.WithStacktrace(log.WithField("log", i.opts.LogName), err).Warn("Skipping malformed record")
			continue
		}
		if err != nil {
			return err
		}

		event, err := converter.Convert(record, decoder.Position())
		if err != nil {
			logging.WithStacktrace(log.WithField("log", i.opts.LogName), err).Warnf("Skipping record at line %d", decoder.Position().Line)
			continue
		}
		i.metrics.RecordEvent(event.Type)
		select {
		case out <- event:
		case <-ctx.Done():
			return nil
		}
	}
}

// store hands the batch to every sink concurrently and saves the checkpoint once all have succeeded.
func (i *Ingester) store(ctx context.Context, events []*model.Event) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, sink := range i.sinks {
		sink := sink
		g.Go(func() error {
			if err := sink.Store(gctx, events); err != nil {
				i.metrics.RecordSinkError(sink.Name())
				return errors.WithMessagef(err, "sink %s", sink.Name())
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	end := events[len(events)-1].End
	if err := i.checkpoints.Save(i.opts.LogName, end); err != nil {
		return err
	}
	i.metrics.RecordBatch(len(events), end.Line)
	log.WithField("log", i.opts.LogName).Debugf("Stored %d events up to line %d", len(events), end.Line)
	return nil
}
