package eventlog

import (
	"github.com/openlava/openlava-go/pkg/lsb"
)

// walkPayload visits the fields of an event in the order they appear in the log.
// Array indices of job ids are stored separately from the base id, at the end of the record.
func walkPayload(w fieldWalker, payload lsb.EventPayload) {
	switch e := payload.(type) {
	case *lsb.JobNewEvent:
		walkJobNew(w, e)
	case *lsb.JobStartEvent:
		walkJobStart(w, e)
	case *lsb.JobStatusEvent:
		walkJobStatus(w, e)
	case *lsb.JobSwitchEvent:
		walkJobSwitch(w, e)
	case *lsb.JobMoveEvent:
		walkJobMove(w, e)
	case *lsb.QueueCtrlEvent:
		walkQueueCtrl(w, e)
	case *lsb.HostCtrlEvent:
		walkHostCtrl(w, e)
	case *lsb.MbdDieEvent:
		walkMbdDie(w, e)
	case *lsb.MbdUnfulfillEvent:
		walkMbdUnfulfill(w, e)
	case *lsb.JobFinishEvent:
		walkJobFinish(w, e)
	case *lsb.LoadIndexEvent:
		walkLoadIndex(w, e)
	case *lsb.ChkpntEvent:
		walkChkpnt(w, e)
	case *lsb.MigEvent:
		walkMig(w, e)
	case *lsb.PreExecStartEvent:
		walkJobStart(w, (*lsb.JobStartEvent)(e))
	case *lsb.MbdStartEvent:
		walkMbdStart(w, e)
	case *lsb.JobModifyEvent:
		walkJobModify(w, e)
	case *lsb.JobSignalEvent:
		walkJobSignal(w, e)
	case *lsb.JobForwardEvent:
		walkJobForward(w, e)
	case *lsb.JobAcceptEvent:
		walkJobAccept(w, e)
	case *lsb.StatusAckEvent:
		walkStatusAck(w, e)
	case *lsb.JobExecuteEvent:
		walkJobExecute(w, e)
	case *lsb.JobMsgEvent:
		walkJobMsg(w, e)
	case *lsb.JobMsgAckEvent:
		walkJobMsg(w, (*lsb.JobMsgEvent)(e))
	case *lsb.JobRequeueEvent:
		walkJobRequeue(w, e)
	case *lsb.JobSigActEvent:
		walkJobSigAct(w, e)
	case *lsb.SbdJobStatusEvent:
		walkSbdJobStatus(w, e)
	case *lsb.JobStartAcceptEvent:
		walkJobStartAccept(w, e)
	case *lsb.JobCleanEvent:
		walkJobClean(w, e)
	case *lsb.JobForceEvent:
		walkJobForce(w, e)
	case *lsb.LogSwitchEvent:
		walkLogSwitch(w, e)
	}
}

func walkJobNew(w fieldWalker, e *lsb.JobNewEvent) {
	w.JobId(&e.JobId)
	w.Int32(&e.UserId)
	w.String(&e.UserName)
	w.Int32((*int32)(&e.Options))
	w.Int32((*int32)(&e.Options2))
	w.Int32(&e.NumProcessors)
	w.Time(&e.SubmitTime)
	w.Time(&e.BeginTime)
	w.Time(&e.TermTime)
	w.Int32(&e.SigValue)
	w.Duration(&e.ChkpntPeriod)
	w.Int32(&e.RestartPid)
	w.RLimits(&e.RLimits)
	w.String(&e.HostSpec)
	w.Float32(&e.HostFactor)
	w.Int32(&e.Umask)
	w.String(&e.Queue)
	w.String(&e.ResReq)
	w.String(&e.FromHost)
	w.String(&e.Cwd)
	w.String(&e.ChkpntDir)
	w.String(&e.InFile)
	w.String(&e.OutFile)
	w.String(&e.ErrFile)
	w.String(&e.JobFile)
	w.Strings(&e.AskedHosts)
	w.String(&e.DependCond)
	w.String(&e.PreExecCmd)
	w.String(&e.JobName)
	w.String(&e.Command)
	w.XFiles(&e.ExtraFiles)
	w.String(&e.MailUser)
	w.String(&e.ProjectName)
	w.Int32(&e.NiosPort)
	w.Int32(&e.MaxNumProcessors)
	w.String(&e.LoginShell)
	w.Int32(&e.UserPriority)
	w.ArrayIndex(&e.JobId)
}

func walkJobStart(w fieldWalker, e *lsb.JobStartEvent) {
	w.JobId(&e.JobId)
	w.Uint32((*uint32)(&e.Status))
	w.Int32(&e.JobPid)
	w.Int32(&e.JobPGid)
	w.Float32(&e.HostFactor)
	w.Strings(&e.ExecHosts)
	w.String(&e.QueuePreCmd)
	w.String(&e.QueuePostCmd)
	w.Int32(&e.JFlags)
	w.String(&e.UserGroup)
	w.ArrayIndex(&e.JobId)
}

func walkJobStatus(w fieldWalker, e *lsb.JobStatusEvent) {
	w.JobId(&e.JobId)
	w.Uint32((*uint32)(&e.Status))
	w.Int32(&e.Reasons)
	w.Int32(&e.SubReasons)
	w.Float32(&e.CpuTime)
	w.Time(&e.EndTime)
	walkRusage(w, &e.Rusage)
	w.Int32(&e.JFlags)
	w.Int32(&e.ExitStatus)
	w.Int32(&e.ExitInfo)
	w.ArrayIndex(&e.JobId)
}

func walkJobSwitch(w fieldWalker, e *lsb.JobSwitchEvent) {
	w.Int32(&e.UserId)
	w.JobId(&e.JobId)
	w.String(&e.Queue)
	w.String(&e.UserName)
	w.ArrayIndex(&e.JobId)
}

func walkJobMove(w fieldWalker, e *lsb.JobMoveEvent) {
	w.Int32(&e.UserId)
	w.JobId(&e.JobId)
	w.Int32(&e.Position)
	w.Int32(&e.Base)
	w.String(&e.UserName)
	w.ArrayIndex(&e.JobId)
}

func walkQueueCtrl(w fieldWalker, e *lsb.QueueCtrlEvent) {
	w.Int32(&e.OpCode)
	w.String(&e.Queue)
	w.Int32(&e.UserId)
	w.String(&e.UserName)
}

func walkHostCtrl(w fieldWalker, e *lsb.HostCtrlEvent) {
	w.Int32(&e.OpCode)
	w.String(&e.Host)
	w.Int32(&e.UserId)
	w.String(&e.UserName)
}

func walkMbdDie(w fieldWalker, e *lsb.MbdDieEvent) {
	w.String(&e.Master)
	w.Int32(&e.NumRemoveJobs)
	w.Int32(&e.ExitCode)
}

func walkMbdUnfulfill(w fieldWalker, e *lsb.MbdUnfulfillEvent) {
	w.JobId(&e.JobId)
	w.Int32(&e.NotSwitched)
	w.Int32(&e.Sig)
	w.Int32(&e.Sig1)
	w.Int32(&e.Sig1Flags)
	w.Duration(&e.ChkPeriod)
	w.Int32(&e.NotModified)
	w.Int32(&e.MiscOpts4PendSig)
	w.ArrayIndex(&e.JobId)
}

func walkJobFinish(w fieldWalker, e *lsb.JobFinishEvent) {
	w.JobId(&e.JobId)
	w.Int32(&e.UserId)
	w.String(&e.UserName)
	w.Int32((*int32)(&e.Options))
	w.Int32(&e.NumProcessors)
	w.Uint32((*uint32)(&e.Status))
	w.Time(&e.SubmitTime)
	w.Time(&e.BeginTime)
	w.Time(&e.TermTime)
	w.Time(&e.StartTime)
	w.Time(&e.EndTime)
	w.String(&e.Queue)
	w.String(&e.ResReq)
	w.String(&e.FromHost)
	w.String(&e.Cwd)
	w.String(&e.InFile)
	w.String(&e.OutFile)
	w.String(&e.ErrFile)
	w.String(&e.JobFile)
	w.Strings(&e.AskedHosts)
	w.Strings(&e.ExecHosts)
	w.Float32(&e.CpuTime)
	w.String(&e.JobName)
	w.String(&e.Command)
	walkRusage(w, &e.Rusage)
	w.String(&e.DependCond)
	w.String(&e.PreExecCmd)
	w.String(&e.MailUser)
	w.String(&e.ProjectName)
	w.Int32(&e.ExitStatus)
	w.Int32(&e.MaxNumProcessors)
	w.String(&e.LoginShell)
	w.Int32(&e.MaxRMem)
	w.Int32(&e.MaxRSwap)
	w.ArrayIndex(&e.JobId)
}

func walkLoadIndex(w fieldWalker, e *lsb.LoadIndexEvent) {
	w.Strings(&e.Names)
}

func walkChkpnt(w fieldWalker, e *lsb.ChkpntEvent) {
	w.JobId(&e.JobId)
	w.Duration(&e.Period)
	w.Int32(&e.Pid)
	w.Int32(&e.Ok)
	w.Int32(&e.Flags)
	w.ArrayIndex(&e.JobId)
}

func walkMig(w fieldWalker, e *lsb.MigEvent) {
	w.JobId(&e.JobId)
	w.Strings(&e.AskedHosts)
	w.Int32(&e.UserId)
	w.String(&e.UserName)
	w.ArrayIndex(&e.JobId)
}

func walkMbdStart(w fieldWalker, e *lsb.MbdStartEvent) {
	w.String(&e.Master)
	w.String(&e.Cluster)
	w.Int32(&e.NumHosts)
	w.Int32(&e.NumQueues)
}

func walkJobModify(w fieldWalker, e *lsb.JobModifyEvent) {
	w.String(&e.JobIdStr)
	w.Int32(&e.UserId)
	w.String(&e.UserName)
	w.Time(&e.SubmitTime)
	w.Int32(&e.Umask)
	w.Int32(&e.RestartPid)
	w.String(&e.SubHomeDir)
	w.String(&e.JobFile)
	w.String(&e.FromHost)
	w.String(&e.Cwd)
	w.Int32(&e.NiosPort)
	walkSubmission(w, &e.Submission)
}

func walkJobSignal(w fieldWalker, e *lsb.JobSignalEvent) {
	w.JobId(&e.JobId)
	w.Int32(&e.UserId)
	w.Int32(&e.RunCount)
	w.String(&e.SignalSymbol)
	w.String(&e.UserName)
	w.ArrayIndex(&e.JobId)
}

func walkJobForward(w fieldWalker, e *lsb.JobForwardEvent) {
	w.JobId(&e.JobId)
	w.Strings(&e.ReserHosts)
	w.String(&e.Cluster)
	w.Int32(&e.JobRmtAttr)
	w.ArrayIndex(&e.JobId)
}

func walkJobAccept(w fieldWalker, e *lsb.JobAcceptEvent) {
	w.JobId(&e.JobId)
	w.Int64(&e.RemoteJid)
	w.String(&e.Cluster)
	w.Int32(&e.JobRmtAttr)
	w.ArrayIndex(&e.JobId)
}

func walkStatusAck(w fieldWalker, e *lsb.StatusAckEvent) {
	w.JobId(&e.JobId)
	w.Int32(&e.StatusNum)
	w.ArrayIndex(&e.JobId)
}

func walkJobExecute(w fieldWalker, e *lsb.JobExecuteEvent) {
	w.JobId(&e.JobId)
	w.Int32(&e.ExecUid)
	w.String(&e.ExecHome)
	w.String(&e.ExecCwd)
	w.Int32(&e.JobPGid)
	w.String(&e.ExecUsername)
	w.Int32(&e.JobPid)
	w.ArrayIndex(&e.JobId)
}

func walkJobMsg(w fieldWalker, e *lsb.JobMsgEvent) {
	w.Int32(&e.UserId)
	w.JobId(&e.JobId)
	w.Int32(&e.MsgId)
	w.Int32(&e.MsgType)
	w.String(&e.Src)
	w.String(&e.Dest)
	w.String(&e.Msg)
	w.ArrayIndex(&e.JobId)
}

func walkJobRequeue(w fieldWalker, e *lsb.JobRequeueEvent) {
	w.JobId(&e.JobId)
	w.ArrayIndex(&e.JobId)
}

func walkJobSigAct(w fieldWalker, e *lsb.JobSigActEvent) {
	w.JobId(&e.JobId)
	w.Duration(&e.Period)
	w.Int32(&e.Pid)
	w.Uint32((*uint32)(&e.Status))
	w.Int32(&e.Reasons)
	w.Int32(&e.Flags)
	w.String(&e.SignalSymbol)
	w.Int32(&e.ActStatus)
	w.ArrayIndex(&e.JobId)
}

func walkSbdJobStatus(w fieldWalker, e *lsb.SbdJobStatusEvent) {
	w.JobId(&e.JobId)
	w.Uint32((*uint32)(&e.Status))
	w.Int32(&e.Reasons)
	w.Int32(&e.SubReasons)
	w.Int32(&e.ActPid)
	w.Int32(&e.ActValue)
	w.Duration(&e.ActPeriod)
	w.Int32(&e.ActFlags)
	w.Int32(&e.ActStatus)
	w.Int32(&e.ActReasons)
	w.Int32(&e.ActSubReasons)
	w.ArrayIndex(&e.JobId)
}

func walkJobStartAccept(w fieldWalker, e *lsb.JobStartAcceptEvent) {
	w.JobId(&e.JobId)
	w.Int32(&e.JobPid)
	w.Int32(&e.JobPGid)
	w.ArrayIndex(&e.JobId)
}

func walkJobClean(w fieldWalker, e *lsb.JobCleanEvent) {
	w.JobId(&e.JobId)
	w.ArrayIndex(&e.JobId)
}

func walkJobForce(w fieldWalker, e *lsb.JobForceEvent) {
	w.Int32(&e.UserId)
	w.JobId(&e.JobId)
	w.Strings(&e.ExecHosts)
	w.Int32(&e.Options)
	w.String(&e.UserName)
	w.ArrayIndex(&e.JobId)
}

func walkLogSwitch(w fieldWalker, e *lsb.LogSwitchEvent) {
	w.Int32(&e.LastJobId)
}
