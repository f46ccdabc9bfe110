package lsb

import (
	"time"

	"github.com/openlava/openlava-go/internal/common/arena"
)

// SubOption flags which fields of a Submission are set.
type SubOption int32

const (
	SubJobName      SubOption = 0x01
	SubQueue        SubOption = 0x02
	SubHost         SubOption = 0x04
	SubInFile       SubOption = 0x08
	SubOutFile      SubOption = 0x10
	SubErrFile      SubOption = 0x20
	SubExclusive    SubOption = 0x40
	SubNotifyEnd    SubOption = 0x80
	SubNotifyBegin  SubOption = 0x100
	SubUserGroup    SubOption = 0x200
	SubChkpntPeriod SubOption = 0x400
	SubChkpntDir    SubOption = 0x800
	SubRestartForce SubOption = 0x1000
	SubRestart      SubOption = 0x2000
	SubRerunnable   SubOption = 0x4000
	SubWindowSig    SubOption = 0x8000
	SubHostSpec     SubOption = 0x10000
	SubDependCond   SubOption = 0x20000
	SubResReq       SubOption = 0x40000
	SubOtherFiles   SubOption = 0x80000
	SubPreExec      SubOption = 0x100000
	SubLoginShell   SubOption = 0x200000
	SubMailUser     SubOption = 0x400000
	SubModify       SubOption = 0x800000
	SubModifyOnce   SubOption = 0x1000000
	SubProjectName  SubOption = 0x2000000
	SubInteractive  SubOption = 0x4000000
)

// SubOption2 holds the second word of submission flags, including the modify scope.
type SubOption2 int32

const (
	Sub2Hold            SubOption2 = 0x01
	Sub2ModifyCmd       SubOption2 = 0x02
	Sub2BsubBlock       SubOption2 = 0x04
	Sub2HostNT          SubOption2 = 0x08
	Sub2HostUX          SubOption2 = 0x10
	Sub2QueueChkpnt     SubOption2 = 0x20
	Sub2QueueRerunnable SubOption2 = 0x40
	Sub2InFileSpool     SubOption2 = 0x80
	Sub2JobCmdSpool     SubOption2 = 0x100
	Sub2JobPriority     SubOption2 = 0x200
	Sub2UseDefProcLimit SubOption2 = 0x400
	// Sub2ModifyRunJob marks a change that is meaningful for a job that is already running.
	Sub2ModifyRunJob SubOption2 = 0x800
	// Sub2ModifyPendJob marks a change that can only be applied while the job is pending.
	Sub2ModifyPendJob SubOption2 = 0x1000
)

// Indices into Submission.RLimits.
const (
	RLimitCPU = iota
	RLimitFSize
	RLimitData
	RLimitStack
	RLimitCore
	RLimitRSS
	RLimitNoFile
	RLimitOpenMax
	RLimitSwap
	RLimitRun
	RLimitProcess
	NumRLimits
)

// RLimitDefault means the limit is not set.
const RLimitDefault int64 = -1

// XFileOption says in which direction and how an extra file is transferred.
type XFileOption int32

const (
	XFileSub2Exec       XFileOption = 0x1
	XFileExec2Sub       XFileOption = 0x2
	XFileSub2ExecAppend XFileOption = 0x4
	XFileExec2SubAppend XFileOption = 0x8
	XFileURLSource      XFileOption = 0x10
	XFileURLDest        XFileOption = 0x20
)

// MaxXFilePath is the longest source or destination path of an extra file.
const MaxXFilePath = 256

// XFile is a file copied between the submission host and the execution host.
type XFile struct {
	Source  string      `json:"subFn"`
	Dest    string      `json:"execFn"`
	Options XFileOption `json:"options"`
}

func copyXFile(alloc arena.Allocator, x XFile) (XFile, error) {
	c := &arena.Copier{Alloc: alloc}
	out := XFile{Source: c.String(x.Source), Dest: c.String(x.Dest), Options: x.Options}
	if c.Err != nil {
		releaseXFile(alloc, &out)
		return XFile{}, c.Err
	}
	return out, nil
}

func releaseXFile(alloc arena.Allocator, x *XFile) {
	arena.ReleaseString(alloc, &x.Source)
	arena.ReleaseString(alloc, &x.Dest)
}

// Submission holds the parameters of a job as submitted. It is both the payload of a submit or modify request
// and the snapshot carried by a JobRecord. Zero times mean "not set".
type Submission struct {
	Options          SubOption           `json:"options"`
	Options2         SubOption2          `json:"options2"`
	JobName          string              `json:"jobName"`
	Queue            string              `json:"queue"`
	AskedHosts       arena.Array[string] `json:"askedHosts"`
	ResReq           string              `json:"resReq"`
	RLimits          [NumRLimits]int64   `json:"rLimits"`
	HostSpec         string              `json:"hostSpec"`
	NumProcessors    int32               `json:"numProcessors"`
	DependCond       string              `json:"dependCond"`
	BeginTime        time.Time           `json:"beginTime"`
	TermTime         time.Time           `json:"termTime"`
	SigValue         int32               `json:"sigValue"`
	InFile           string              `json:"inFile"`
	OutFile          string              `json:"outFile"`
	ErrFile          string              `json:"errFile"`
	Command          string              `json:"command"`
	ChkpntPeriod     time.Duration       `json:"chkpntPeriod"`
	ChkpntDir        string              `json:"chkpntDir"`
	ExtraFiles       arena.Array[XFile]  `json:"xf"`
	PreExecCmd       string              `json:"preExecCmd"`
	MailUser         string              `json:"mailUser"`
	DelOptions       SubOption           `json:"delOptions"`
	DelOptions2      SubOption2          `json:"delOptions2"`
	ProjectName      string              `json:"projectName"`
	MaxNumProcessors int32               `json:"maxNumProcessors"`
	LoginShell       string              `json:"loginShell"`
	UserPriority     int32               `json:"userPriority"`
}

// DefaultRLimits returns a limit vector with every limit unset.
func DefaultRLimits() [NumRLimits]int64 {
	var limits [NumRLimits]int64
	for i := range limits {
		limits[i] = RLimitDefault
	}
	return limits
}

// DeepCopy returns a copy of s that shares no storage with it. On failure nothing stays allocated.
func (s *Submission) DeepCopy(alloc arena.Allocator) (*Submission, error) {
	c := &arena.Copier{Alloc: alloc}
	out := s.deepCopy(c)
	if c.Err != nil {
		out.Release(alloc)
		return nil, c.Err
	}
	return &out, nil
}

func (s *Submission) deepCopy(c *arena.Copier) Submission {
	out := *s
	out.JobName = c.String(s.JobName)
	out.Queue = c.String(s.Queue)
	out.AskedHosts = c.Strings(s.AskedHosts)
	out.ResReq = c.String(s.ResReq)
	out.HostSpec = c.String(s.HostSpec)
	out.DependCond = c.String(s.DependCond)
	out.InFile = c.String(s.InFile)
	out.OutFile = c.String(s.OutFile)
	out.ErrFile = c.String(s.ErrFile)
	out.Command = c.String(s.Command)
	out.ChkpntDir = c.String(s.ChkpntDir)
	out.ExtraFiles = arena.CopierArrayFunc(c, s.ExtraFiles, copyXFile, releaseXFile)
	out.PreExecCmd = c.String(s.PreExecCmd)
	out.MailUser = c.String(s.MailUser)
	out.ProjectName = c.String(s.ProjectName)
	out.LoginShell = c.String(s.LoginShell)
	return out
}

// Release frees every owned field of s and nulls it. Releasing twice is a no-op.
func (s *Submission) Release(alloc arena.Allocator) {
	arena.ReleaseString(alloc, &s.JobName)
	arena.ReleaseString(alloc, &s.Queue)
	arena.ReleaseStrings(alloc, &s.AskedHosts)
	arena.ReleaseString(alloc, &s.ResReq)
	arena.ReleaseString(alloc, &s.HostSpec)
	arena.ReleaseString(alloc, &s.DependCond)
	arena.ReleaseString(alloc, &s.InFile)
	arena.ReleaseString(alloc, &s.OutFile)
	arena.ReleaseString(alloc, &s.ErrFile)
	arena.ReleaseString(alloc, &s.Command)
	arena.ReleaseString(alloc, &s.ChkpntDir)
	arena.ReleaseArrayFunc(alloc, &s.ExtraFiles, releaseXFile)
	arena.ReleaseString(alloc, &s.PreExecCmd)
	arena.ReleaseString(alloc, &s.MailUser)
	arena.ReleaseString(alloc, &s.ProjectName)
	arena.ReleaseString(alloc, &s.LoginShell)
}
