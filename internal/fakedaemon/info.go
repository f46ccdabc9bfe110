package fakedaemon

import (
	"context"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/openlava/openlava-go/internal/common/arena"
	"github.com/openlava/openlava-go/internal/common/lsberrors"
	"github.com/openlava/openlava-go/pkg/lsb"
)

// Every host runs one job at a time.
const hostJobSlots = 1

// jobCounts tallies the unfinished jobs of a queue, host or user.
type jobCounts struct {
	pend, run, ssusp, ususp int32
}

func (c *jobCounts) add(status lsb.JobStatus) {
	switch {
	case status&lsb.JobStatusUSusp != 0:
		c.ususp++
	case status&lsb.JobStatusSSusp != 0:
		c.ssusp++
	case status.IsRunning():
		c.run++
	case status.IsPending():
		c.pend++
	}
}

func (c jobCounts) total() int32 {
	return c.pend + c.run + c.ssusp + c.ususp
}

// snapshot counts the unfinished jobs by queue, execution host and user.
type snapshot struct {
	queues map[string]*jobCounts
	hosts  map[string]*jobCounts
	users  map[string]*jobCounts
}

func count(m map[string]*jobCounts, key string, status lsb.JobStatus) {
	c, ok := m[key]
	if !ok {
		c = &jobCounts{}
		m[key] = c
	}
	c.add(status)
}

func (d *Daemon) snapshot() (*snapshot, error) {
	rows, err := candidates(d.db.Txn(false), &lsb.JobQuery{})
	if err != nil {
		return nil, err
	}
	s := &snapshot{
		queues: make(map[string]*jobCounts),
		hosts:  make(map[string]*jobCounts),
		users:  map[string]*jobCounts{d.config.User: {}},
	}
	for _, row := range rows {
		record := row.Record
		if record.Status.IsFinished() {
			continue
		}
		count(s.queues, row.Queue, record.Status)
		count(s.users, record.User, record.Status)
		record.ExecHosts.Each(func(_ int, host string) bool {
			count(s.hosts, host, record.Status)
			return true
		})
	}
	return s, nil
}

func (s *snapshot) get(m map[string]*jobCounts, key string) jobCounts {
	if c, ok := m[key]; ok {
		return *c
	}
	return jobCounts{}
}

// selectNames returns the wanted names in the order asked for, or all names when none are asked for.
func selectNames(all []string, wanted []string, code lsberrors.RejectCode, kind string) ([]string, error) {
	if len(wanted) == 0 {
		return all, nil
	}
	for _, name := range wanted {
		if !slices.Contains(all, name) {
			return nil, rejection(code, "%s %s is not known to the cluster", kind, name)
		}
	}
	return wanted, nil
}

func (c *Conn) QueueInfo(_ context.Context, names []string) ([]*lsb.QueueInfo, error) {
	d := c.daemon
	all := make([]string, 0, len(d.config.Queues))
	for _, q := range d.config.Queues {
		all = append(all, q.Name)
	}
	selected, err := selectNames(all, names, lsberrors.RejectBadQueue, "queue")
	if err != nil {
		return nil, err
	}
	s, err := d.snapshot()
	if err != nil {
		return nil, err
	}
	result := make([]*lsb.QueueInfo, 0, len(selected))
	for _, name := range selected {
		config, _ := d.queue(name)
		status := lsb.QueueStatusActive | lsb.QueueStatusRun
		if !config.Closed {
			status |= lsb.QueueStatusOpen
		}
		counts := s.get(s.queues, name)
		result = append(result, &lsb.QueueInfo{
			Queue:       name,
			Description: config.Description,
			Priority:    config.Priority,
			HostList:    arena.ArrayOf(d.config.Hosts...),
			RLimits:     lsb.DefaultRLimits(),
			Status:      status,
			NumJobs:     counts.total(),
			NumPend:     counts.pend,
			NumRun:      counts.run,
			NumSSusp:    counts.ssusp,
			NumUSusp:    counts.ususp,
		})
	}
	return result, nil
}

func (c *Conn) HostInfo(_ context.Context, names []string) ([]*lsb.HostInfo, error) {
	d := c.daemon
	selected, err := selectNames(d.config.Hosts, names, lsberrors.RejectBadHost, "host")
	if err != nil {
		return nil, err
	}
	s, err := d.snapshot()
	if err != nil {
		return nil, err
	}
	result := make([]*lsb.HostInfo, 0, len(selected))
	for _, name := range selected {
		counts := s.get(s.hosts, name)
		status := lsb.HostStatusOk
		if counts.total() >= hostJobSlots {
			status = lsb.HostStatusFull
		}
		result = append(result, &lsb.HostInfo{
			Host:      name,
			Status:    status,
			CpuFactor: 1,
			MaxJobs:   hostJobSlots,
			NumJobs:   counts.total(),
			NumRun:    counts.run,
			NumSSusp:  counts.ssusp,
			NumUSusp:  counts.ususp,
		})
	}
	return result, nil
}

func (c *Conn) UserInfo(_ context.Context, names []string) ([]*lsb.UserInfo, error) {
	d := c.daemon
	s, err := d.snapshot()
	if err != nil {
		return nil, err
	}
	all := maps.Keys(s.users)
	slices.Sort(all)
	selected, err := selectNames(all, names, lsberrors.RejectBadUser, "user")
	if err != nil {
		return nil, err
	}
	result := make([]*lsb.UserInfo, 0, len(selected))
	for _, name := range selected {
		counts := s.get(s.users, name)
		result = append(result, &lsb.UserInfo{
			User:         name,
			NumStartJobs: counts.run + counts.ssusp + counts.ususp,
			NumJobs:      counts.total(),
			NumPend:      counts.pend,
			NumRun:       counts.run,
			NumSSusp:     counts.ssusp,
			NumUSusp:     counts.ususp,
		})
	}
	return result, nil
}

func (c *Conn) ClusterInfo(context.Context) (*lsb.ClusterInfo, error) {
	return &lsb.ClusterInfo{ClusterName: c.daemon.config.ClusterName, MasterName: c.daemon.config.MasterHost}, nil
}
