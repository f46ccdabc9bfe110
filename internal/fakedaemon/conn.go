package fakedaemon

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"

	"github.com/hashicorp/go-memdb"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"

	"github.com/openlava/openlava-go/internal/common/arena"
	"github.com/openlava/openlava-go/internal/common/lsberrors"
	"github.com/openlava/openlava-go/pkg/lsb"
)

// Conn is one client's connection to the daemon. Like the real daemon it keeps at most one job query open and
// hands out the same record buffer on every read.
type Conn struct {
	daemon *Daemon

	mu      sync.Mutex
	appName string
	// Snapshot of the matching jobs taken when the query was opened.
	matches []*storedJob
	open    bool
	next    int
	buffer  *arena.Arena
	record  *lsb.JobRecord
}

func (c *Conn) Init(_ context.Context, appName string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.appName = appName
	return nil
}

// Buffer returns the allocator holding the record handed out by the last read.
func (c *Conn) Buffer() *arena.Arena {
	return c.buffer
}

func (c *Conn) OpenJobInfo(_ context.Context, query *lsb.JobQuery) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()

	rows, err := candidates(c.daemon.db.Txn(false), query)
	if err != nil {
		return 0, err
	}
	var matches []*storedJob
	for _, row := range rows {
		if query.Matches(row.Record) {
			matches = append(matches, row)
		}
	}
	if query.Options&lsb.QueryLastJob != 0 && len(matches) > 1 {
		matches = matches[len(matches)-1:]
	}
	if len(matches) == 0 {
		return 0, errors.WithStack(&lsberrors.ErrRemoteRejection{Code: lsberrors.RejectNoJob, Message: "no matching job found"})
	}
	c.matches = matches
	c.open = true
	c.next = 0
	log.WithField("app", c.appName).WithField("count", len(matches)).Debug("job query opened")
	return len(matches), nil
}

func (c *Conn) ReadJobInfo(_ context.Context) (*lsb.JobRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.open {
		return nil, errors.WithStack(&lsberrors.ErrUsage{Operation: "ReadJobInfo", Message: "no job query is open"})
	}
	if c.next >= len(c.matches) {
		return nil, io.EOF
	}
	c.releaseRecord()
	record, err := c.matches[c.next].Record.DeepCopy(c.buffer)
	if err != nil {
		return nil, err
	}
	c.next++
	c.record = record
	return record, nil
}

func (c *Conn) CloseJobInfo(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()
	return nil
}

func (c *Conn) closeLocked() {
	c.releaseRecord()
	c.matches = nil
	c.open = false
	c.next = 0
}

func (c *Conn) releaseRecord() {
	if c.record != nil {
		c.record.Release(c.buffer)
		c.record = nil
	}
}

func rejection(code lsberrors.RejectCode, format string, args ...interface{}) error {
	return errors.WithStack(&lsberrors.ErrRemoteRejection{Code: code, Message: fmt.Sprintf(format, args...)})
}

// Submit creates a pending job from sub.
func (c *Conn) Submit(_ context.Context, sub *lsb.Submission) (*lsb.SubmitReply, error) {
	d := c.daemon
	d.mu.Lock()
	defer d.mu.Unlock()
	txn := d.db.Txn(true)
	defer txn.Abort()

	queue := d.config.DefaultQueue
	if sub.Options&lsb.SubQueue != 0 {
		queue = sub.Queue
	}
	reply := &lsb.SubmitReply{Queue: queue}
	if err := d.checkSubmission(txn, sub, queue, reply); err != nil {
		return reply, err
	}

	record := &lsb.JobRecord{
		JobId:       lsb.NewJobId(d.lastId+1, 0),
		User:        d.config.User,
		Status:      lsb.JobStatusPend,
		SubmitTime:  d.timestamp(),
		Cwd:         d.config.Cwd,
		FromHost:    d.config.FromHost,
		JobName:     sub.JobName,
		JobType:     lsb.JobTypeNormal,
		JobPriority: sub.UserPriority,
	}
	if record.JobName == "" {
		record.JobName = sub.Command
	}
	copied, err := sub.DeepCopy(arena.Heap)
	if err != nil {
		return reply, err
	}
	record.Submission = *copied
	record.Submission.Queue = queue
	if err := upsertJob(txn, record); err != nil {
		return reply, err
	}
	txn.Commit()
	d.lastId++

	d.writeEvent(&lsb.JobNewEvent{
		JobId:            record.JobId,
		UserId:           d.config.UserId,
		UserName:         record.User,
		Options:          sub.Options,
		Options2:         sub.Options2,
		NumProcessors:    sub.NumProcessors,
		SubmitTime:       record.SubmitTime,
		BeginTime:        sub.BeginTime,
		TermTime:         sub.TermTime,
		SigValue:         sub.SigValue,
		ChkpntPeriod:     sub.ChkpntPeriod,
		RLimits:          sub.RLimits,
		HostSpec:         sub.HostSpec,
		Queue:            queue,
		ResReq:           sub.ResReq,
		FromHost:         record.FromHost,
		Cwd:              record.Cwd,
		ChkpntDir:        sub.ChkpntDir,
		InFile:           sub.InFile,
		OutFile:          sub.OutFile,
		ErrFile:          sub.ErrFile,
		AskedHosts:       sub.AskedHosts,
		DependCond:       sub.DependCond,
		PreExecCmd:       sub.PreExecCmd,
		JobName:          record.JobName,
		Command:          sub.Command,
		ExtraFiles:       sub.ExtraFiles,
		MailUser:         sub.MailUser,
		ProjectName:      sub.ProjectName,
		MaxNumProcessors: sub.MaxNumProcessors,
		LoginShell:       sub.LoginShell,
		UserPriority:     sub.UserPriority,
	})
	reply.JobId = record.JobId
	log.WithField("jobId", record.JobId).WithField("queue", queue).Info("job submitted")
	return reply, nil
}

// Modify applies the fields of sub flagged in its options to an existing job.
func (c *Conn) Modify(_ context.Context, sub *lsb.Submission, jobId lsb.JobId) (*lsb.SubmitReply, error) {
	d := c.daemon
	d.mu.Lock()
	defer d.mu.Unlock()
	txn := d.db.Txn(true)
	defer txn.Abort()

	reply := &lsb.SubmitReply{BadJobId: jobId}
	row, err := getJob(txn, jobId)
	if err != nil {
		return reply, err
	}
	if row == nil {
		return reply, rejection(lsberrors.RejectNoJob, "job %s not found", jobId)
	}
	status := row.Record.Status
	if status.IsFinished() {
		return reply, rejection(lsberrors.RejectBadJobId, "job %s has already finished", jobId)
	}
	if !status.IsPending() && sub.Options2&lsb.Sub2ModifyPendJob != 0 {
		return reply, rejection(lsberrors.RejectBadOption, "job %s has started; only run-time parameters can be changed", jobId)
	}

	queue := row.Record.Submission.Queue
	if sub.Options&lsb.SubQueue != 0 {
		queue = sub.Queue
	}
	if err := d.checkSubmission(txn, sub, queue, reply); err != nil {
		return reply, err
	}

	mod, err := sub.DeepCopy(arena.Heap)
	if err != nil {
		return reply, err
	}
	record := row.mutableCopy()
	applyModification(&record.Submission, mod)
	record.Submission.Queue = queue
	if sub.Options&lsb.SubJobName != 0 {
		record.JobName = sub.JobName
	}
	if sub.Options2&lsb.Sub2JobPriority != 0 {
		record.JobPriority = sub.UserPriority
	}
	if err := upsertJob(txn, record); err != nil {
		return reply, err
	}
	txn.Commit()

	d.writeEvent(&lsb.JobModifyEvent{
		JobIdStr:   jobId.String(),
		UserId:     d.config.UserId,
		UserName:   record.User,
		SubmitTime: record.SubmitTime,
		FromHost:   record.FromHost,
		Cwd:        record.Cwd,
		Submission: *sub,
	})
	return &lsb.SubmitReply{JobId: jobId, Queue: queue}, nil
}

var dependencyPattern = regexp.MustCompile(`\w+\(\s*([^()]*?)\s*\)`)

// checkSubmission rejects submissions naming unknown queues, hosts or jobs. The offending name is recorded in reply.
func (d *Daemon) checkSubmission(txn *memdb.Txn, sub *lsb.Submission, queue string, reply *lsb.SubmitReply) error {
	q, ok := d.queue(queue)
	if !ok {
		return rejection(lsberrors.RejectBadQueue, "no such queue %q", queue)
	}
	if q.Closed {
		return rejection(lsberrors.RejectQueueClosed, "queue %q is closed", queue)
	}

	var badHost error
	sub.AskedHosts.Each(func(i int, host string) bool {
		if !slices.Contains(d.config.Hosts, host) {
			reply.BadReqIndex = int32(i)
			badHost = rejection(lsberrors.RejectBadOption, "unknown host %q", host)
			return false
		}
		return true
	})
	if badHost != nil {
		return badHost
	}

	if strings.Count(sub.ResReq, "[") != strings.Count(sub.ResReq, "]") ||
		strings.Count(sub.ResReq, "(") != strings.Count(sub.ResReq, ")") {
		return rejection(lsberrors.RejectBadResourceRequest, "unbalanced brackets in %q", sub.ResReq)
	}

	for _, m := range dependencyPattern.FindAllStringSubmatch(sub.DependCond, -1) {
		dep := strings.Trim(m[1], `"`)
		var found interface{}
		var err error
		if id, parseErr := lsb.ParseJobId(dep); parseErr == nil {
			found, err = txn.First(jobsTable, idIndex, int64(id))
		} else {
			found, err = txn.First(jobsTable, nameIndex, dep)
		}
		if err != nil {
			return errors.WithStack(err)
		}
		if found == nil {
			reply.BadJobName = dep
			return rejection(lsberrors.RejectBadDependency, "dependency on unknown job %q", dep)
		}
	}
	return nil
}

// applyModification copies the fields that mod sets or deletes into dst.
func applyModification(dst *lsb.Submission, mod *lsb.Submission) {
	fields := []struct {
		opt lsb.SubOption
		dst *string
		src string
	}{
		{lsb.SubJobName, &dst.JobName, mod.JobName},
		{lsb.SubResReq, &dst.ResReq, mod.ResReq},
		{lsb.SubHostSpec, &dst.HostSpec, mod.HostSpec},
		{lsb.SubDependCond, &dst.DependCond, mod.DependCond},
		{lsb.SubInFile, &dst.InFile, mod.InFile},
		{lsb.SubOutFile, &dst.OutFile, mod.OutFile},
		{lsb.SubErrFile, &dst.ErrFile, mod.ErrFile},
		{lsb.SubChkpntDir, &dst.ChkpntDir, mod.ChkpntDir},
		{lsb.SubPreExec, &dst.PreExecCmd, mod.PreExecCmd},
		{lsb.SubMailUser, &dst.MailUser, mod.MailUser},
		{lsb.SubProjectName, &dst.ProjectName, mod.ProjectName},
		{lsb.SubLoginShell, &dst.LoginShell, mod.LoginShell},
	}
	for _, f := range fields {
		switch {
		case mod.Options&f.opt != 0:
			*f.dst = f.src
		case mod.DelOptions&f.opt != 0:
			*f.dst = ""
		}
	}
	if mod.Options&lsb.SubHost != 0 || mod.DelOptions&lsb.SubHost != 0 {
		dst.AskedHosts = mod.AskedHosts
	}
	if mod.Options&lsb.SubOtherFiles != 0 || mod.DelOptions&lsb.SubOtherFiles != 0 {
		dst.ExtraFiles = mod.ExtraFiles
	}
	if mod.Options&lsb.SubChkpntPeriod != 0 {
		dst.ChkpntPeriod = mod.ChkpntPeriod
	}
	if mod.Options&lsb.SubWindowSig != 0 {
		dst.SigValue = mod.SigValue
	}
	if mod.Options2&lsb.Sub2ModifyCmd != 0 {
		dst.Command = mod.Command
	}
	if mod.Options2&lsb.Sub2JobPriority != 0 {
		dst.UserPriority = mod.UserPriority
	}
	if mod.NumProcessors > 0 {
		dst.NumProcessors = mod.NumProcessors
		dst.MaxNumProcessors = mod.MaxNumProcessors
	}
	if !mod.BeginTime.IsZero() {
		dst.BeginTime = mod.BeginTime
	}
	if !mod.TermTime.IsZero() {
		dst.TermTime = mod.TermTime
	}
	for i, limit := range mod.RLimits {
		if limit != lsb.RLimitDefault {
			dst.RLimits[i] = limit
		}
	}
	dst.Options = (dst.Options | mod.Options) &^ mod.DelOptions &^ (lsb.SubModify | lsb.SubModifyOnce)
	dst.DelOptions = 0
}
