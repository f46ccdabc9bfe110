package lsb

import (
	"strconv"

	"github.com/openlava/openlava-go/internal/common/arena"
)

// QueueStatus is a set of queue state flags.
type QueueStatus int32

const (
	// Jobs may be submitted to the queue.
	QueueStatusOpen QueueStatus = 0x01
	// Jobs of the queue may be dispatched.
	QueueStatusActive QueueStatus = 0x02
	// The queue's run window is open.
	QueueStatusRun QueueStatus = 0x04
	// The requesting user may not submit to the queue.
	QueueStatusNoPerm QueueStatus = 0x08
)

// String renders the status the way bqueues does, e.g. "Open:Active".
func (s QueueStatus) String() string {
	open := "Closed"
	if s&QueueStatusOpen != 0 {
		open = "Open"
	}
	active := "Inact"
	if s&QueueStatusActive != 0 {
		active = "Active"
	}
	return open + ":" + active
}

// QueueInfo describes one queue and the jobs in it.
type QueueInfo struct {
	Queue        string              `json:"queue"`
	Description  string              `json:"description"`
	Priority     int32               `json:"priority"`
	Nice         int32               `json:"nice"`
	UserList     arena.Array[string] `json:"userList"`
	HostList     arena.Array[string] `json:"hostList"`
	UserJobLimit int32               `json:"userJobLimit"`
	ProcJobLimit float32             `json:"procJobLimit"`
	Windows      string              `json:"windows"`
	// One entry per load index, binding the scheduling and suspending thresholds together.
	LoadThresholds arena.Array[LoadThreshold] `json:"loadThresholds"`
	RLimits        [NumRLimits]int64          `json:"rLimits"`
	HostSpec       string                     `json:"hostSpec"`
	QAttrib        int32                      `json:"qAttrib"`
	Status         QueueStatus                `json:"qStatus"`
	MaxJobs        int32                      `json:"maxJobs"`
	NumJobs        int32                      `json:"numJobs"`
	NumPend        int32                      `json:"numPEND"`
	NumRun         int32                      `json:"numRUN"`
	NumSSusp       int32                      `json:"numSSUSP"`
	NumUSusp       int32                      `json:"numUSUSP"`
	Mig            int32                      `json:"mig"`
	SchedDelay     int32                      `json:"schedDelay"`
	AcceptIntvl    int32                      `json:"acceptIntvl"`
}

// HostStatus is a set of batch host state flags. Zero means the host accepts jobs.
type HostStatus int32

const (
	HostStatusOk       HostStatus = 0x00
	HostStatusBusy     HostStatus = 0x01
	HostStatusWind     HostStatus = 0x02
	HostStatusDisabled HostStatus = 0x04
	HostStatusLocked   HostStatus = 0x08
	HostStatusFull     HostStatus = 0x10
	HostStatusUnreach  HostStatus = 0x20
	HostStatusUnavail  HostStatus = 0x40
)

// String renders the status the way bhosts does: "ok", "unavail", "unreach" or "closed".
func (s HostStatus) String() string {
	switch {
	case s == HostStatusOk:
		return "ok"
	case s&HostStatusUnavail != 0:
		return "unavail"
	case s&HostStatusUnreach != 0:
		return "unreach"
	}
	return "closed"
}

// HostInfo describes one batch host and the jobs on it.
type HostInfo struct {
	Host           string                     `json:"host"`
	Status         HostStatus                 `json:"hStatus"`
	CpuFactor      float32                    `json:"cpuFactor"`
	LoadThresholds arena.Array[LoadThreshold] `json:"loadThresholds"`
	Windows        string                     `json:"windows"`
	UserJobLimit   int32                      `json:"userJobLimit"`
	MaxJobs        int32                      `json:"maxJobs"`
	NumJobs        int32                      `json:"numJobs"`
	NumRun         int32                      `json:"numRUN"`
	NumSSusp       int32                      `json:"numSSUSP"`
	NumUSusp       int32                      `json:"numUSUSP"`
	NumReserve     int32                      `json:"numRESERVE"`
	Mig            int32                      `json:"mig"`
}

// UserInfo describes the job limits and job counts of one user.
type UserInfo struct {
	User         string  `json:"user"`
	ProcJobLimit float32 `json:"procJobLimit"`
	MaxJobs      int32   `json:"maxJobs"`
	NumStartJobs int32   `json:"numStartJobs"`
	NumJobs      int32   `json:"numJobs"`
	NumPend      int32   `json:"numPEND"`
	NumRun       int32   `json:"numRUN"`
	NumSSusp     int32   `json:"numSSUSP"`
	NumUSusp     int32   `json:"numUSUSP"`
	NumReserve   int32   `json:"numRESERVE"`
}

// ClusterInfo names the cluster and its current master host.
type ClusterInfo struct {
	ClusterName string `json:"clusterName"`
	MasterName  string `json:"masterName"`
}

// MaxJobsString renders a job limit, where zero or less means unlimited.
func MaxJobsString(limit int32) string {
	if limit <= 0 {
		return "-"
	}
	return strconv.FormatInt(int64(limit), 10)
}
