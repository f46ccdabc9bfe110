package fakelsbd

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"k8s.io/utils/clock"

	"github.com/openlava/openlava-go/internal/fakedaemon"
	"github.com/openlava/openlava-go/pkg/lsb"
)

type runningJob struct {
	host     string
	finishAt time.Time
}

// Scheduler moves jobs of a fake daemon through their lifecycle: each host runs one job at a time,
// and every job finishes a fixed time after it started.
type Scheduler struct {
	daemon     *fakedaemon.Daemon
	hosts      []string
	runFor     time.Duration
	exitStatus int32
	clock      clock.WithTicker

	running map[lsb.JobId]runningJob
}

func NewScheduler(daemon *fakedaemon.Daemon, hosts []string, runFor time.Duration, exitStatus int32, clock clock.WithTicker) *Scheduler {
	return &Scheduler{
		daemon:     daemon,
		hosts:      hosts,
		runFor:     runFor,
		exitStatus: exitStatus,
		clock:      clock,
		running:    make(map[lsb.JobId]runningJob),
	}
}

// Run schedules every interval until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) error {
	ticker := s.clock.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C():
			if err := s.tick(); err != nil {
				return err
			}
		}
	}
}

// tick finishes the jobs whose run time is over, then starts pending jobs on the idle hosts.
func (s *Scheduler) tick() error {
	now := s.clock.Now()
	ids := maps.Keys(s.running)
	slices.Sort(ids)
	for _, id := range ids {
		if now.Before(s.running[id].finishAt) {
			continue
		}
		if err := s.daemon.Finish(id, s.exitStatus); err != nil {
			// The job may have been removed or finished by other means.
			log.WithError(err).WithField("jobId", id).Warn("failed to finish job")
		}
		delete(s.running, id)
	}

	busy := make(map[string]bool, len(s.running))
	for _, job := range s.running {
		busy[job.host] = true
	}
	for _, host := range s.hosts {
		if busy[host] {
			continue
		}
		id, ok, err := s.daemon.Dispatch(host)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		s.running[id] = runningJob{host: host, finishAt: now.Add(s.runFor)}
	}
	return nil
}
