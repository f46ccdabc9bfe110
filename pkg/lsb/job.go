package lsb

import (
	"time"

	"github.com/openlava/openlava-go/internal/common/arena"
)

// LoadThreshold holds the scheduling and suspending thresholds of one load index.
type LoadThreshold struct {
	Sched float32 `json:"sched"`
	Stop  float32 `json:"stop"`
}

// PidInfo describes one process of a running job.
type PidInfo struct {
	Pid   int32 `json:"pid"`
	PPid  int32 `json:"ppid"`
	PGid  int32 `json:"pgid"`
	JobId int32 `json:"jobId"`
}

// Rusage is the resource usage of a running job as last reported by the execution host.
// Mem and Swap are in kilobytes, UTime and STime in seconds.
type Rusage struct {
	Mem   int32                `json:"mem"`
	Swap  int32                `json:"swap"`
	UTime int32                `json:"utime"`
	STime int32                `json:"stime"`
	Pids  arena.Array[PidInfo] `json:"pids"`
	Pgids arena.Array[int32]   `json:"pgids"`
}

func (r *Rusage) deepCopy(c *arena.Copier) Rusage {
	out := *r
	out.Pids = arena.CopierArray(c, r.Pids)
	out.Pgids = arena.CopierArray(c, r.Pgids)
	return out
}

func (r *Rusage) release(alloc arena.Allocator) {
	arena.ReleaseArray(alloc, &r.Pids)
	arena.ReleaseArray(alloc, &r.Pgids)
}

// Counter indices into JobRecord.Counters for job arrays.
const (
	CounterTotal = iota
	CounterNumPend
	CounterNumRun
	CounterNumDone
	CounterNumExit
	CounterNumSSusp
	CounterNumUSusp
	numCounters
)

type JobType int32

const (
	JobTypeNormal JobType = iota
	JobTypeArray
	JobTypeArrayElement
)

// JobRecord is a snapshot of one job as returned by a job query.
// A JobRecord handed out by a daemon is only valid until the next read; DeepCopy it to keep it.
// LoadThresholds holds one entry per load index, so the scheduling and stop thresholds share a single length.
type JobRecord struct {
	JobId            JobId                      `json:"jobId"`
	User             string                     `json:"user"`
	Status           JobStatus                  `json:"status"`
	ReasonTable      arena.Array[int32]         `json:"reasonTable"`
	Reasons          int32                      `json:"reasons"`
	SubReasons       int32                      `json:"subreasons"`
	JobPid           int32                      `json:"jobPid"`
	SubmitTime       time.Time                  `json:"submitTime"`
	ReserveTime      time.Time                  `json:"reserveTime"`
	StartTime        time.Time                  `json:"startTime"`
	PredictedStart   time.Time                  `json:"predictedStartTime"`
	EndTime          time.Time                  `json:"endTime"`
	CpuTime          float32                    `json:"cpuTime"`
	Umask            int32                      `json:"umask"`
	Cwd              string                     `json:"cwd"`
	SubHomeDir       string                     `json:"subHomeDir"`
	FromHost         string                     `json:"fromHost"`
	ExecHosts        arena.Array[string]        `json:"exHosts"`
	CpuFactor        float32                    `json:"cpuFactor"`
	LoadThresholds   arena.Array[LoadThreshold] `json:"loadThresholds"`
	Submission       Submission                 `json:"submit"`
	ExitStatus       int32                      `json:"exitStatus"`
	ExecUid          int32                      `json:"execUid"`
	ExecHome         string                     `json:"execHome"`
	ExecCwd          string                     `json:"execCwd"`
	ExecUsername     string                     `json:"execUsername"`
	RusageUpdateTime time.Time                  `json:"jRusageUpdateTime"`
	RunRusage        Rusage                     `json:"runRusage"`
	JobType          JobType                    `json:"jType"`
	ParentGroup      string                     `json:"parentGroup"`
	JobName          string                     `json:"jName"`
	Counters         [numCounters]int32         `json:"counter"`
	Port             uint16                     `json:"port"`
	JobPriority      int32                      `json:"jobPriority"`
}

// DeepCopy returns a copy of j that shares no storage with it. Every owned field is accounted to alloc.
// On failure nothing stays allocated.
func (j *JobRecord) DeepCopy(alloc arena.Allocator) (*JobRecord, error) {
	c := &arena.Copier{Alloc: alloc}
	out := *j
	out.User = c.String(j.User)
	out.ReasonTable = arena.CopierArray(c, j.ReasonTable)
	out.Cwd = c.String(j.Cwd)
	out.SubHomeDir = c.String(j.SubHomeDir)
	out.FromHost = c.String(j.FromHost)
	out.ExecHosts = c.Strings(j.ExecHosts)
	out.LoadThresholds = arena.CopierArray(c, j.LoadThresholds)
	out.Submission = j.Submission.deepCopy(c)
	out.ExecHome = c.String(j.ExecHome)
	out.ExecCwd = c.String(j.ExecCwd)
	out.ExecUsername = c.String(j.ExecUsername)
	out.RunRusage = j.RunRusage.deepCopy(c)
	out.ParentGroup = c.String(j.ParentGroup)
	out.JobName = c.String(j.JobName)
	if c.Err != nil {
		// Fields the copier skipped are null, so releasing frees exactly what was copied.
		out.Release(alloc)
		return nil, c.Err
	}
	return &out, nil
}

// Release frees every owned field of j and nulls it. Releasing twice is a no-op.
func (j *JobRecord) Release(alloc arena.Allocator) {
	arena.ReleaseString(alloc, &j.User)
	arena.ReleaseArray(alloc, &j.ReasonTable)
	arena.ReleaseString(alloc, &j.Cwd)
	arena.ReleaseString(alloc, &j.SubHomeDir)
	arena.ReleaseString(alloc, &j.FromHost)
	arena.ReleaseStrings(alloc, &j.ExecHosts)
	arena.ReleaseArray(alloc, &j.LoadThresholds)
	j.Submission.Release(alloc)
	arena.ReleaseString(alloc, &j.ExecHome)
	arena.ReleaseString(alloc, &j.ExecCwd)
	arena.ReleaseString(alloc, &j.ExecUsername)
	j.RunRusage.release(alloc)
	arena.ReleaseString(alloc, &j.ParentGroup)
	arena.ReleaseString(alloc, &j.JobName)
}
