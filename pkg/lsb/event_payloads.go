package lsb

import (
	"time"

	"github.com/openlava/openlava-go/internal/common/arena"
)

// LsfRusage is the resource usage of a finished job as accounted by the execution host.
// Times are in seconds, sizes in kilobytes. Fields the host could not measure are -1.
type LsfRusage struct {
	UTime    float64 `json:"utime"`
	STime    float64 `json:"stime"`
	MaxRSS   float64 `json:"maxrss"`
	IxRSS    float64 `json:"ixrss"`
	IsmRSS   float64 `json:"ismrss"`
	IdRSS    float64 `json:"idrss"`
	IsRSS    float64 `json:"isrss"`
	MinFlt   float64 `json:"minflt"`
	MajFlt   float64 `json:"majflt"`
	NSwap    float64 `json:"nswap"`
	InBlock  float64 `json:"inblock"`
	OuBlock  float64 `json:"oublock"`
	IoCh     float64 `json:"ioch"`
	MsgSnd   float64 `json:"msgsnd"`
	MsgRcv   float64 `json:"msgrcv"`
	NSignals float64 `json:"nsignals"`
	NVCsw    float64 `json:"nvcsw"`
	NIvCsw   float64 `json:"nivcsw"`
	ExUTime  float64 `json:"exutime"`
}

// JobNewEvent is logged when a job is accepted by the daemon.
type JobNewEvent struct {
	JobId            JobId               `json:"jobId"`
	UserId           int32               `json:"userId"`
	UserName         string              `json:"userName"`
	Options          SubOption           `json:"options"`
	Options2         SubOption2          `json:"options2"`
	NumProcessors    int32               `json:"numProcessors"`
	SubmitTime       time.Time           `json:"submitTime"`
	BeginTime        time.Time           `json:"beginTime"`
	TermTime         time.Time           `json:"termTime"`
	SigValue         int32               `json:"sigValue"`
	ChkpntPeriod     time.Duration       `json:"chkpntPeriod"`
	RestartPid       int32               `json:"restartPid"`
	RLimits          [NumRLimits]int64   `json:"rLimits"`
	HostSpec         string              `json:"hostSpec"`
	HostFactor       float32             `json:"hostFactor"`
	Umask            int32               `json:"umask"`
	Queue            string              `json:"queue"`
	ResReq           string              `json:"resReq"`
	FromHost         string              `json:"fromHost"`
	Cwd              string              `json:"cwd"`
	ChkpntDir        string              `json:"chkpntDir"`
	InFile           string              `json:"inFile"`
	OutFile          string              `json:"outFile"`
	ErrFile          string              `json:"errFile"`
	JobFile          string              `json:"jobFile"`
	AskedHosts       arena.Array[string] `json:"askedHosts"`
	DependCond       string              `json:"dependCond"`
	PreExecCmd       string              `json:"preExecCmd"`
	JobName          string              `json:"jobName"`
	Command          string              `json:"command"`
	ExtraFiles       arena.Array[XFile]  `json:"xf"`
	MailUser         string              `json:"mailUser"`
	ProjectName      string              `json:"projectName"`
	NiosPort         int32               `json:"niosPort"`
	MaxNumProcessors int32               `json:"maxNumProcessors"`
	LoginShell       string              `json:"loginShell"`
	UserPriority     int32               `json:"userPriority"`
}

func (e *JobNewEvent) EventType() EventType {
	return EventJobNew
}

func (e *JobNewEvent) deepCopy(c *arena.Copier) EventPayload {
	out := *e
	out.UserName = c.String(e.UserName)
	out.HostSpec = c.String(e.HostSpec)
	out.Queue = c.String(e.Queue)
	out.ResReq = c.String(e.ResReq)
	out.FromHost = c.String(e.FromHost)
	out.Cwd = c.String(e.Cwd)
	out.ChkpntDir = c.String(e.ChkpntDir)
	out.InFile = c.String(e.InFile)
	out.OutFile = c.String(e.OutFile)
	out.ErrFile = c.String(e.ErrFile)
	out.JobFile = c.String(e.JobFile)
	out.AskedHosts = c.Strings(e.AskedHosts)
	out.DependCond = c.String(e.DependCond)
	out.PreExecCmd = c.String(e.PreExecCmd)
	out.JobName = c.String(e.JobName)
	out.Command = c.String(e.Command)
	out.ExtraFiles = arena.CopierArrayFunc(c, e.ExtraFiles, copyXFile, releaseXFile)
	out.MailUser = c.String(e.MailUser)
	out.ProjectName = c.String(e.ProjectName)
	out.LoginShell = c.String(e.LoginShell)
	return &out
}

func (e *JobNewEvent) release(alloc arena.Allocator) {
	arena.ReleaseString(alloc, &e.UserName)
	arena.ReleaseString(alloc, &e.HostSpec)
	arena.ReleaseString(alloc, &e.Queue)
	arena.ReleaseString(alloc, &e.ResReq)
	arena.ReleaseString(alloc, &e.FromHost)
	arena.ReleaseString(alloc, &e.Cwd)
	arena.ReleaseString(alloc, &e.ChkpntDir)
	arena.ReleaseString(alloc, &e.InFile)
	arena.ReleaseString(alloc, &e.OutFile)
	arena.ReleaseString(alloc, &e.ErrFile)
	arena.ReleaseString(alloc, &e.JobFile)
	arena.ReleaseStrings(alloc, &e.AskedHosts)
	arena.ReleaseString(alloc, &e.DependCond)
	arena.ReleaseString(alloc, &e.PreExecCmd)
	arena.ReleaseString(alloc, &e.JobName)
	arena.ReleaseString(alloc, &e.Command)
	arena.ReleaseArrayFunc(alloc, &e.ExtraFiles, releaseXFile)
	arena.ReleaseString(alloc, &e.MailUser)
	arena.ReleaseString(alloc, &e.ProjectName)
	arena.ReleaseString(alloc, &e.LoginShell)
}

func (e *JobNewEvent) jobId() JobId {
	return e.JobId
}

// JobStartEvent is logged when a job is dispatched to its execution hosts.
type JobStartEvent struct {
	JobId        JobId               `json:"jobId"`
	Status       JobStatus           `json:"jStatus"`
	JobPid       int32               `json:"jobPid"`
	JobPGid      int32               `json:"jobPGid"`
	HostFactor   float32             `json:"hostFactor"`
	ExecHosts    arena.Array[string] `json:"execHosts"`
	QueuePreCmd  string              `json:"queuePreCmd"`
	QueuePostCmd string              `json:"queuePostCmd"`
	JFlags       int32               `json:"jFlags"`
	UserGroup    string              `json:"userGroup"`
}

func (e *JobStartEvent) EventType() EventType {
	return EventJobStart
}

func (e *JobStartEvent) deepCopy(c *arena.Copier) EventPayload {
	out := *e
	out.ExecHosts = c.Strings(e.ExecHosts)
	out.QueuePreCmd = c.String(e.QueuePreCmd)
	out.QueuePostCmd = c.String(e.QueuePostCmd)
	out.UserGroup = c.String(e.UserGroup)
	return &out
}

func (e *JobStartEvent) release(alloc arena.Allocator) {
	arena.ReleaseStrings(alloc, &e.ExecHosts)
	arena.ReleaseString(alloc, &e.QueuePreCmd)
	arena.ReleaseString(alloc, &e.QueuePostCmd)
	arena.ReleaseString(alloc, &e.UserGroup)
}

func (e *JobStartEvent) jobId() JobId {
	return e.JobId
}

// JobStatusEvent is logged when the status of a job changes.
type JobStatusEvent struct {
	JobId      JobId     `json:"jobId"`
	Status     JobStatus `json:"jStatus"`
	Reasons    int32     `json:"reason"`
	SubReasons int32     `json:"subreasons"`
	CpuTime    float32   `json:"cpuTime"`
	EndTime    time.Time `json:"endTime"`
	Rusage     LsfRusage `json:"lsfRusage"`
	JFlags     int32     `json:"jFlags"`
	ExitStatus int32     `json:"exitStatus"`
	ExitInfo   int32     `json:"exitInfo"`
}

func (e *JobStatusEvent) EventType() EventType {
	return EventJobStatus
}

func (e *JobStatusEvent) deepCopy(c *arena.Copier) EventPayload {
	out := *e
	return &out
}

func (e *JobStatusEvent) release(arena.Allocator) {}

func (e *JobStatusEvent) jobId() JobId {
	return e.JobId
}

type JobSwitchEvent struct {
	UserId   int32  `json:"userId"`
	JobId    JobId  `json:"jobId"`
	Queue    string `json:"queue"`
	UserName string `json:"userName"`
}

func (e *JobSwitchEvent) EventType() EventType {
	return EventJobSwitch
}

func (e *JobSwitchEvent) deepCopy(c *arena.Copier) EventPayload {
	out := *e
	out.Queue = c.String(e.Queue)
	out.UserName = c.String(e.UserName)
	return &out
}

func (e *JobSwitchEvent) release(alloc arena.Allocator) {
	arena.ReleaseString(alloc, &e.Queue)
	arena.ReleaseString(alloc, &e.UserName)
}

func (e *JobSwitchEvent) jobId() JobId {
	return e.JobId
}

// JobMoveEvent is logged when a pending job is moved within its queue.
type JobMoveEvent struct {
	UserId   int32  `json:"userId"`
	JobId    JobId  `json:"jobId"`
	Position int32  `json:"position"`
	Base     int32  `json:"base"`
	UserName string `json:"userName"`
}

func (e *JobMoveEvent) EventType() EventType {
	return EventJobMove
}

func (e *JobMoveEvent) deepCopy(c *arena.Copier) EventPayload {
	out := *e
	out.UserName = c.String(e.UserName)
	return &out
}

func (e *JobMoveEvent) release(alloc arena.Allocator) {
	arena.ReleaseString(alloc, &e.UserName)
}

func (e *JobMoveEvent) jobId() JobId {
	return e.JobId
}

type QueueCtrlEvent struct {
	OpCode   int32  `json:"opCode"`
	Queue    string `json:"queue"`
	UserId   int32  `json:"userId"`
	UserName string `json:"userName"`
}

func (e *QueueCtrlEvent) EventType() EventType {
	return EventQueueCtrl
}

func (e *QueueCtrlEvent) deepCopy(c *arena.Copier) EventPayload {
	out := *e
	out.Queue = c.String(e.Queue)
	out.UserName = c.String(e.UserName)
	return &out
}

func (e *QueueCtrlEvent) release(alloc arena.Allocator) {
	arena.ReleaseString(alloc, &e.Queue)
	arena.ReleaseString(alloc, &e.UserName)
}

type HostCtrlEvent struct {
	OpCode   int32  `json:"opCode"`
	Host     string `json:"host"`
	UserId   int32  `json:"userId"`
	UserName string `json:"userName"`
}

func (e *HostCtrlEvent) EventType() EventType {
	return EventHostCtrl
}

func (e *HostCtrlEvent) deepCopy(c *arena.Copier) EventPayload {
	out := *e
	out.Host = c.String(e.Host)
	out.UserName = c.String(e.UserName)
	return &out
}

func (e *HostCtrlEvent) release(alloc arena.Allocator) {
	arena.ReleaseString(alloc, &e.Host)
	arena.ReleaseString(alloc, &e.UserName)
}

// MbdDieEvent is the last record written by a daemon that shuts down.
type MbdDieEvent struct {
	Master        string `json:"master"`
	NumRemoveJobs int32  `json:"numRemoveJobs"`
	ExitCode      int32  `json:"exitCode"`
}

func (e *MbdDieEvent) EventType() EventType {
	return EventMbdDie
}

func (e *MbdDieEvent) deepCopy(c *arena.Copier) EventPayload {
	out := *e
	out.Master = c.String(e.Master)
	return &out
}

func (e *MbdDieEvent) release(alloc arena.Allocator) {
	arena.ReleaseString(alloc, &e.Master)
}

// MbdUnfulfillEvent records requests on a job that have not yet been carried out.
type MbdUnfulfillEvent struct {
	JobId            JobId         `json:"jobId"`
	NotSwitched      int32         `json:"notSwitched"`
	Sig              int32         `json:"sig"`
	Sig1             int32         `json:"sig1"`
	Sig1Flags        int32         `json:"sig1Flags"`
	ChkPeriod        time.Duration `json:"chkPeriod"`
	NotModified      int32         `json:"notModified"`
	MiscOpts4PendSig int32         `json:"miscOpts4PendSig"`
}

func (e *MbdUnfulfillEvent) EventType() EventType {
	return EventMbdUnfulfill
}

func (e *MbdUnfulfillEvent) deepCopy(c *arena.Copier) EventPayload {
	out := *e
	return &out
}

func (e *MbdUnfulfillEvent) release(arena.Allocator) {}

func (e *MbdUnfulfillEvent) jobId() JobId {
	return e.JobId
}

// JobFinishEvent is the accounting record of a finished job.
type JobFinishEvent struct {
	JobId            JobId               `json:"jobId"`
	UserId           int32               `json:"userId"`
	UserName         string              `json:"userName"`
	Options          SubOption           `json:"options"`
	NumProcessors    int32               `json:"numProcessors"`
	Status           JobStatus           `json:"jStatus"`
	SubmitTime       time.Time           `json:"submitTime"`
	BeginTime        time.Time           `json:"beginTime"`
	TermTime         time.Time           `json:"termTime"`
	StartTime        time.Time           `json:"startTime"`
	EndTime          time.Time           `json:"endTime"`
	Queue            string              `json:"queue"`
	ResReq           string              `json:"resReq"`
	FromHost         string              `json:"fromHost"`
	Cwd              string              `json:"cwd"`
	InFile           string              `json:"inFile"`
	OutFile          string              `json:"outFile"`
	ErrFile          string              `json:"errFile"`
	JobFile          string              `json:"jobFile"`
	AskedHosts       arena.Array[string] `json:"askedHosts"`
	ExecHosts        arena.Array[string] `json:"execHosts"`
	CpuTime          float32             `json:"cpuTime"`
	JobName          string              `json:"jobName"`
	Command          string              `json:"command"`
	Rusage           LsfRusage           `json:"lsfRusage"`
	DependCond       string              `json:"dependCond"`
	PreExecCmd       string              `json:"preExecCmd"`
	MailUser         string              `json:"mailUser"`
	ProjectName      string              `json:"projectName"`
	ExitStatus       int32               `json:"exitStatus"`
	MaxNumProcessors int32               `json:"maxNumProcessors"`
	LoginShell       string              `json:"loginShell"`
	MaxRMem          int32               `json:"maxRMem"`
	MaxRSwap         int32               `json:"maxRSwap"`
}

func (e *JobFinishEvent) EventType() EventType {
	return EventJobFinish
}

func (e *JobFinishEvent) deepCopy(c *arena.Copier) EventPayload {
	out := *e
	out.UserName = c.String(e.UserName)
	out.Queue = c.String(e.Queue)
	out.ResReq = c.String(e.ResReq)
	out.FromHost = c.String(e.FromHost)
	out.Cwd = c.String(e.Cwd)
	out.InFile = c.String(e.InFile)
	out.OutFile = c.String(e.OutFile)
	out.ErrFile = c.String(e.ErrFile)
	out.JobFile = c.String(e.JobFile)
	out.AskedHosts = c.Strings(e.AskedHosts)
	out.ExecHosts = c.Strings(e.ExecHosts)
	out.JobName = c.String(e.JobName)
	out.Command = c.String(e.Command)
	out.DependCond = c.String(e.DependCond)
	out.PreExecCmd = c.String(e.PreExecCmd)
	out.MailUser = c.String(e.MailUser)
	out.ProjectName = c.String(e.ProjectName)
	out.LoginShell = c.String(e.LoginShell)
	return &out
}

func (e *JobFinishEvent) release(alloc arena.Allocator) {
	arena.ReleaseString(alloc, &e.UserName)
	arena.ReleaseString(alloc, &e.Queue)
	arena.ReleaseString(alloc, &e.ResReq)
	arena.ReleaseString(alloc, &e.FromHost)
	arena.ReleaseString(alloc, &e.Cwd)
	arena.ReleaseString(alloc, &e.InFile)
	arena.ReleaseString(alloc, &e.OutFile)
	arena.ReleaseString(alloc, &e.ErrFile)
	arena.ReleaseString(alloc, &e.JobFile)
	arena.ReleaseStrings(alloc, &e.AskedHosts)
	arena.ReleaseStrings(alloc, &e.ExecHosts)
	arena.ReleaseString(alloc, &e.JobName)
	arena.ReleaseString(alloc, &e.Command)
	arena.ReleaseString(alloc, &e.DependCond)
	arena.ReleaseString(alloc, &e.PreExecCmd)
	arena.ReleaseString(alloc, &e.MailUser)
	arena.ReleaseString(alloc, &e.ProjectName)
	arena.ReleaseString(alloc, &e.LoginShell)
}

func (e *JobFinishEvent) jobId() JobId {
	return e.JobId
}

// LoadIndexEvent lists the names of the load indices known to the daemon.
type LoadIndexEvent struct {
	Names arena.Array[string] `json:"name"`
}

func (e *LoadIndexEvent) EventType() EventType {
	return EventLoadIndex
}

func (e *LoadIndexEvent) deepCopy(c *arena.Copier) EventPayload {
	out := *e
	out.Names = c.Strings(e.Names)
	return &out
}

func (e *LoadIndexEvent) release(alloc arena.Allocator) {
	arena.ReleaseStrings(alloc, &e.Names)
}

type ChkpntEvent struct {
	JobId  JobId         `json:"jobId"`
	Period time.Duration `json:"period"`
	Pid    int32         `json:"pid"`
	Ok     int32         `json:"ok"`
	Flags  int32         `json:"flags"`
}

func (e *ChkpntEvent) EventType() EventType {
	return EventChkpnt
}

func (e *ChkpntEvent) deepCopy(c *arena.Copier) EventPayload {
	out := *e
	return &out
}

func (e *ChkpntEvent) release(arena.Allocator) {}

func (e *ChkpntEvent) jobId() JobId {
	return e.JobId
}

type MigEvent struct {
	JobId      JobId               `json:"jobId"`
	AskedHosts arena.Array[string] `json:"askedHosts"`
	UserId     int32               `json:"userId"`
	UserName   string              `json:"userName"`
}

func (e *MigEvent) EventType() EventType {
	return EventMig
}

func (e *MigEvent) deepCopy(c *arena.Copier) EventPayload {
	out := *e
	out.AskedHosts = c.Strings(e.AskedHosts)
	out.UserName = c.String(e.UserName)
	return &out
}

func (e *MigEvent) release(alloc arena.Allocator) {
	arena.ReleaseStrings(alloc, &e.AskedHosts)
	arena.ReleaseString(alloc, &e.UserName)
}

func (e *MigEvent) jobId() JobId {
	return e.JobId
}

// PreExecStartEvent is logged when the pre-execution command of a job starts. It has the shape of a JobStartEvent.
type PreExecStartEvent JobStartEvent

func (e *PreExecStartEvent) EventType() EventType {
	return EventPreExecStart
}

func (e *PreExecStartEvent) deepCopy(c *arena.Copier) EventPayload {
	return (*PreExecStartEvent)((*JobStartEvent)(e).deepCopy(c).(*JobStartEvent))
}

func (e *PreExecStartEvent) release(alloc arena.Allocator) {
	(*JobStartEvent)(e).release(alloc)
}

func (e *PreExecStartEvent) jobId() JobId {
	return e.JobId
}

type MbdStartEvent struct {
	Master    string `json:"master"`
	Cluster   string `json:"cluster"`
	NumHosts  int32  `json:"numHosts"`
	NumQueues int32  `json:"numQueues"`
}

func (e *MbdStartEvent) EventType() EventType {
	return EventMbdStart
}

func (e *MbdStartEvent) deepCopy(c *arena.Copier) EventPayload {
	out := *e
	out.Master = c.String(e.Master)
	out.Cluster = c.String(e.Cluster)
	return &out
}

func (e *MbdStartEvent) release(alloc arena.Allocator) {
	arena.ReleaseString(alloc, &e.Master)
	arena.ReleaseString(alloc, &e.Cluster)
}

// JobModifyEvent records a modification of a job. JobIdStr names the target as the user typed it,
// e.g. "1234[5]", and Submission holds the new parameters with the option bits of what changed.
type JobModifyEvent struct {
	JobIdStr   string     `json:"jobIdStr"`
	UserId     int32      `json:"userId"`
	UserName   string     `json:"userName"`
	SubmitTime time.Time  `json:"submitTime"`
	Umask      int32      `json:"umask"`
	RestartPid int32      `json:"restartPid"`
	SubHomeDir string     `json:"subHomeDir"`
	JobFile    string     `json:"jobFile"`
	FromHost   string     `json:"fromHost"`
	Cwd        string     `json:"cwd"`
	NiosPort   int32      `json:"niosPort"`
	Submission Submission `json:"submit"`
}

func (e *JobModifyEvent) EventType() EventType {
	return EventJobModify
}

func (e *JobModifyEvent) deepCopy(c *arena.Copier) EventPayload {
	out := *e
	out.JobIdStr = c.String(e.JobIdStr)
	out.UserName = c.String(e.UserName)
	out.SubHomeDir = c.String(e.SubHomeDir)
	out.JobFile = c.String(e.JobFile)
	out.FromHost = c.String(e.FromHost)
	out.Cwd = c.String(e.Cwd)
	out.Submission = e.Submission.deepCopy(c)
	return &out
}

func (e *JobModifyEvent) release(alloc arena.Allocator) {
	arena.ReleaseString(alloc, &e.JobIdStr)
	arena.ReleaseString(alloc, &e.UserName)
	arena.ReleaseString(alloc, &e.SubHomeDir)
	arena.ReleaseString(alloc, &e.JobFile)
	arena.ReleaseString(alloc, &e.FromHost)
	arena.ReleaseString(alloc, &e.Cwd)
	e.Submission.Release(alloc)
}

type JobSignalEvent struct {
	JobId        JobId  `json:"jobId"`
	UserId       int32  `json:"userId"`
	RunCount     int32  `json:"runCount"`
	SignalSymbol string `json:"signalSymbol"`
	UserName     string `json:"userName"`
}

func (e *JobSignalEvent) EventType() EventType {
	return EventJobSignal
}

func (e *JobSignalEvent) deepCopy(c *arena.Copier) EventPayload {
	out := *e
	out.SignalSymbol = c.String(e.SignalSymbol)
	out.UserName = c.String(e.UserName)
	return &out
}

func (e *JobSignalEvent) release(alloc arena.Allocator) {
	arena.ReleaseString(alloc, &e.SignalSymbol)
	arena.ReleaseString(alloc, &e.UserName)
}

func (e *JobSignalEvent) jobId() JobId {
	return e.JobId
}

type JobForwardEvent struct {
	JobId      JobId               `json:"jobId"`
	ReserHosts arena.Array[string] `json:"reserHosts"`
	Cluster    string              `json:"cluster"`
	JobRmtAttr int32               `json:"jobRmtAttr"`
}

func (e *JobForwardEvent) EventType() EventType {
	return EventJobForward
}

func (e *JobForwardEvent) deepCopy(c *arena.Copier) EventPayload {
	out := *e
	out.ReserHosts = c.Strings(e.ReserHosts)
	out.Cluster = c.String(e.Cluster)
	return &out
}

func (e *JobForwardEvent) release(alloc arena.Allocator) {
	arena.ReleaseStrings(alloc, &e.ReserHosts)
	arena.ReleaseString(alloc, &e.Cluster)
}

func (e *JobForwardEvent) jobId() JobId {
	return e.JobId
}

type JobAcceptEvent struct {
	JobId      JobId  `json:"jobId"`
	RemoteJid  int64  `json:"remoteJid"`
	Cluster    string `json:"cluster"`
	JobRmtAttr int32  `json:"jobRmtAttr"`
}

func (e *JobAcceptEvent) EventType() EventType {
	return EventJobAccept
}

func (e *JobAcceptEvent) deepCopy(c *arena.Copier) EventPayload {
	out := *e
	out.Cluster = c.String(e.Cluster)
	return &out
}

func (e *JobAcceptEvent) release(alloc arena.Allocator) {
	arena.ReleaseString(alloc, &e.Cluster)
}

func (e *JobAcceptEvent) jobId() JobId {
	return e.JobId
}

type StatusAckEvent struct {
	JobId     JobId `json:"jobId"`
	StatusNum int32 `json:"statusNum"`
}

func (e *StatusAckEvent) EventType() EventType {
	return EventStatusAck
}

func (e *StatusAckEvent) deepCopy(c *arena.Copier) EventPayload {
	out := *e
	return &out
}

func (e *StatusAckEvent) release(arena.Allocator) {}

func (e *StatusAckEvent) jobId() JobId {
	return e.JobId
}

// JobExecuteEvent is logged once the job runs under its execution account.
type JobExecuteEvent struct {
	JobId        JobId  `json:"jobId"`
	ExecUid      int32  `json:"execUid"`
	ExecHome     string `json:"execHome"`
	ExecCwd      string `json:"execCwd"`
	JobPGid      int32  `json:"jobPGid"`
	ExecUsername string `json:"execUsername"`
	JobPid       int32  `json:"jobPid"`
}

func (e *JobExecuteEvent) EventType() EventType {
	return EventJobExecute
}

func (e *JobExecuteEvent) deepCopy(c *arena.Copier) EventPayload {
	out := *e
	out.ExecHome = c.String(e.ExecHome)
	out.ExecCwd = c.String(e.ExecCwd)
	out.ExecUsername = c.String(e.ExecUsername)
	return &out
}

func (e *JobExecuteEvent) release(alloc arena.Allocator) {
	arena.ReleaseString(alloc, &e.ExecHome)
	arena.ReleaseString(alloc, &e.ExecCwd)
	arena.ReleaseString(alloc, &e.ExecUsername)
}

func (e *JobExecuteEvent) jobId() JobId {
	return e.JobId
}

type JobMsgEvent struct {
	UserId  int32  `json:"usrId"`
	JobId   JobId  `json:"jobId"`
	MsgId   int32  `json:"msgId"`
	MsgType int32  `json:"type"`
	Src     string `json:"src"`
	Dest    string `json:"dest"`
	Msg     string `json:"msg"`
}

func (e *JobMsgEvent) EventType() EventType {
	return EventJobMsg
}

func (e *JobMsgEvent) deepCopy(c *arena.Copier) EventPayload {
	out := *e
	out.Src = c.String(e.Src)
	out.Dest = c.String(e.Dest)
	out.Msg = c.String(e.Msg)
	return &out
}

func (e *JobMsgEvent) release(alloc arena.Allocator) {
	arena.ReleaseString(alloc, &e.Src)
	arena.ReleaseString(alloc, &e.Dest)
	arena.ReleaseString(alloc, &e.Msg)
}

func (e *JobMsgEvent) jobId() JobId {
	return e.JobId
}

// JobMsgAckEvent acknowledges a JobMsgEvent and carries the same fields.
type JobMsgAckEvent JobMsgEvent

func (e *JobMsgAckEvent) EventType() EventType {
	return EventJobMsgAck
}

func (e *JobMsgAckEvent) deepCopy(c *arena.Copier) EventPayload {
	return (*JobMsgAckEvent)((*JobMsgEvent)(e).deepCopy(c).(*JobMsgEvent))
}

func (e *JobMsgAckEvent) release(alloc arena.Allocator) {
	(*JobMsgEvent)(e).release(alloc)
}

func (e *JobMsgAckEvent) jobId() JobId {
	return e.JobId
}

type JobRequeueEvent struct {
	JobId JobId `json:"jobId"`
}

func (e *JobRequeueEvent) EventType() EventType {
	return EventJobRequeue
}

func (e *JobRequeueEvent) deepCopy(c *arena.Copier) EventPayload {
	out := *e
	return &out
}

func (e *JobRequeueEvent) release(arena.Allocator) {}

func (e *JobRequeueEvent) jobId() JobId {
	return e.JobId
}

// JobSigActEvent records the progress of a signal action such as a checkpoint or a migration.
type JobSigActEvent struct {
	JobId        JobId         `json:"jobId"`
	Period       time.Duration `json:"period"`
	Pid          int32         `json:"pid"`
	Status       JobStatus     `json:"jStatus"`
	Reasons      int32         `json:"reasons"`
	Flags        int32         `json:"flags"`
	SignalSymbol string        `json:"signalSymbol"`
	ActStatus    int32         `json:"actStatus"`
}

func (e *JobSigActEvent) EventType() EventType {
	return EventJobSigAct
}

func (e *JobSigActEvent) deepCopy(c *arena.Copier) EventPayload {
	out := *e
	out.SignalSymbol = c.String(e.SignalSymbol)
	return &out
}

func (e *JobSigActEvent) release(alloc arena.Allocator) {
	arena.ReleaseString(alloc, &e.SignalSymbol)
}

func (e *JobSigActEvent) jobId() JobId {
	return e.JobId
}

type SbdJobStatusEvent struct {
	JobId         JobId         `json:"jobId"`
	Status        JobStatus     `json:"jStatus"`
	Reasons       int32         `json:"reasons"`
	SubReasons    int32         `json:"subreasons"`
	ActPid        int32         `json:"actPid"`
	ActValue      int32         `json:"actValue"`
	ActPeriod     time.Duration `json:"actPeriod"`
	ActFlags      int32         `json:"actFlags"`
	ActStatus     int32         `json:"actStatus"`
	ActReasons    int32         `json:"actReasons"`
	ActSubReasons int32         `json:"actSubReasons"`
}

func (e *SbdJobStatusEvent) EventType() EventType {
	return EventSbdJobStatus
}

func (e *SbdJobStatusEvent) deepCopy(c *arena.Copier) EventPayload {
	out := *e
	return &out
}

func (e *SbdJobStatusEvent) release(arena.Allocator) {}

func (e *SbdJobStatusEvent) jobId() JobId {
	return e.JobId
}

type JobStartAcceptEvent struct {
	JobId   JobId `json:"jobId"`
	JobPid  int32 `json:"jobPid"`
	JobPGid int32 `json:"jobPGid"`
}

func (e *JobStartAcceptEvent) EventType() EventType {
	return EventJobStartAccept
}

func (e *JobStartAcceptEvent) deepCopy(c *arena.Copier) EventPayload {
	out := *e
	return &out
}

func (e *JobStartAcceptEvent) release(arena.Allocator) {}

func (e *JobStartAcceptEvent) jobId() JobId {
	return e.JobId
}

type JobCleanEvent struct {
	JobId JobId `json:"jobId"`
}

func (e *JobCleanEvent) EventType() EventType {
	return EventJobClean
}

func (e *JobCleanEvent) deepCopy(c *arena.Copier) EventPayload {
	out := *e
	return &out
}

func (e *JobCleanEvent) release(arena.Allocator) {}

func (e *JobCleanEvent) jobId() JobId {
	return e.JobId
}

// JobForceEvent is logged when a job is forced to run on the given hosts.
type JobForceEvent struct {
	UserId    int32               `json:"userId"`
	JobId     JobId               `json:"jobId"`
	ExecHosts arena.Array[string] `json:"execHosts"`
	Options   int32               `json:"options"`
	UserName  string              `json:"userName"`
}

func (e *JobForceEvent) EventType() EventType {
	return EventJobForce
}

func (e *JobForceEvent) deepCopy(c *arena.Copier) EventPayload {
	out := *e
	out.ExecHosts = c.Strings(e.ExecHosts)
	out.UserName = c.String(e.UserName)
	return &out
}

func (e *JobForceEvent) release(alloc arena.Allocator) {
	arena.ReleaseStrings(alloc, &e.ExecHosts)
	arena.ReleaseString(alloc, &e.UserName)
}

func (e *JobForceEvent) jobId() JobId {
	return e.JobId
}

// LogSwitchEvent is the first record of a new log file.
type LogSwitchEvent struct {
	LastJobId int32 `json:"lastJobId"`
}

func (e *LogSwitchEvent) EventType() EventType {
	return EventLogSwitch
}

func (e *LogSwitchEvent) deepCopy(c *arena.Copier) EventPayload {
	out := *e
	return &out
}

func (e *LogSwitchEvent) release(arena.Allocator) {}

// GetJobNew returns the payload of a JOB_NEW record, or nil if the record holds another event.
// The other getters follow the same rule.
func (e *EventRecord) GetJobNew() *JobNewEvent {
	p, _ := e.payload.(*JobNewEvent)
	return p
}

func (e *EventRecord) GetJobStart() *JobStartEvent {
	p, _ := e.payload.(*JobStartEvent)
	return p
}

func (e *EventRecord) GetJobStatus() *JobStatusEvent {
	p, _ := e.payload.(*JobStatusEvent)
	return p
}

func (e *EventRecord) GetJobSwitch() *JobSwitchEvent {
	p, _ := e.payload.(*JobSwitchEvent)
	return p
}

func (e *EventRecord) GetJobMove() *JobMoveEvent {
	p, _ := e.payload.(*JobMoveEvent)
	return p
}

func (e *EventRecord) GetQueueCtrl() *QueueCtrlEvent {
	p, _ := e.payload.(*QueueCtrlEvent)
	return p
}

func (e *EventRecord) GetHostCtrl() *HostCtrlEvent {
	p, _ := e.payload.(*HostCtrlEvent)
	return p
}

func (e *EventRecord) GetMbdDie() *MbdDieEvent {
	p, _ := e.payload.(*MbdDieEvent)
	return p
}

func (e *EventRecord) GetMbdUnfulfill() *MbdUnfulfillEvent {
	p, _ := e.payload.(*MbdUnfulfillEvent)
	return p
}

func (e *EventRecord) GetJobFinish() *JobFinishEvent {
	p, _ := e.payload.(*JobFinishEvent)
	return p
}

func (e *EventRecord) GetLoadIndex() *LoadIndexEvent {
	p, _ := e.payload.(*LoadIndexEvent)
	return p
}

func (e *EventRecord) GetChkpnt() *ChkpntEvent {
	p, _ := e.payload.(*ChkpntEvent)
	return p
}

func (e *EventRecord) GetMig() *MigEvent {
	p, _ := e.payload.(*MigEvent)
	return p
}

func (e *EventRecord) GetPreExecStart() *PreExecStartEvent {
	p, _ := e.payload.(*PreExecStartEvent)
	return p
}

func (e *EventRecord) GetMbdStart() *MbdStartEvent {
	p, _ := e.payload.(*MbdStartEvent)
	return p
}

func (e *EventRecord) GetJobModify() *JobModifyEvent {
	p, _ := e.payload.(*JobModifyEvent)
	return p
}

func (e *EventRecord) GetJobSignal() *JobSignalEvent {
	p, _ := e.payload.(*JobSignalEvent)
	return p
}

func (e *EventRecord) GetJobForward() *JobForwardEvent {
	p, _ := e.payload.(*JobForwardEvent)
	return p
}

func (e *EventRecord) GetJobAccept() *JobAcceptEvent {
	p, _ := e.payload.(*JobAcceptEvent)
	return p
}

func (e *EventRecord) GetStatusAck() *StatusAckEvent {
	p, _ := e.payload.(*StatusAckEvent)
	return p
}

func (e *EventRecord) GetJobExecute() *JobExecuteEvent {
	p, _ := e.payload.(*JobExecuteEvent)
	return p
}

func (e *EventRecord) GetJobMsg() *JobMsgEvent {
	p, _ := e.payload.(*JobMsgEvent)
	return p
}

func (e *EventRecord) GetJobMsgAck() *JobMsgAckEvent {
	p, _ := e.payload.(*JobMsgAckEvent)
	return p
}

func (e *EventRecord) GetJobRequeue() *JobRequeueEvent {
	p, _ := e.payload.(*JobRequeueEvent)
	return p
}

func (e *EventRecord) GetJobSigAct() *JobSigActEvent {
	p, _ := e.payload.(*JobSigActEvent)
	return p
}

func (e *EventRecord) GetSbdJobStatus() *SbdJobStatusEvent {
	p, _ := e.payload.(*SbdJobStatusEvent)
	return p
}

func (e *EventRecord) GetJobStartAccept() *JobStartAcceptEvent {
	p, _ := e.payload.(*JobStartAcceptEvent)
	return p
}

func (e *EventRecord) GetJobClean() *JobCleanEvent {
	p, _ := e.payload.(*JobCleanEvent)
	return p
}

func (e *EventRecord) GetJobForce() *JobForceEvent {
	p, _ := e.payload.(*JobForceEvent)
	return p
}

func (e *EventRecord) GetLogSwitch() *LogSwitchEvent {
	p, _ := e.payload.(*LogSwitchEvent)
	return p
}
