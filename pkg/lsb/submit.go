package lsb

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/openlava/openlava-go/internal/common/arena"
	"github.com/openlava/openlava-go/internal/common/lsberrors"
)

// SubmitRequest builds the Submission handed to a submit or modify call.
//
// The request owns its strings and arrays through an Allocator: every setter releases the previous value
// before installing a copy of the new one, and Release frees everything. Besides the option bit of the field,
// each setter records whether the change concerns a pending job, a running job or both, so that a modify
// request can be checked by the daemon against the state of the target job.
type SubmitRequest struct {
	alloc arena.Allocator
	sub   Submission
}

// NewSubmitRequest returns an empty request whose storage is not accounted.
func NewSubmitRequest() *SubmitRequest {
	return NewSubmitRequestWithAllocator(arena.Heap)
}

func NewSubmitRequestWithAllocator(alloc arena.Allocator) *SubmitRequest {
	return &SubmitRequest{
		alloc: alloc,
		sub: Submission{
			RLimits:      DefaultRLimits(),
			UserPriority: -1,
		},
	}
}

// setString installs a copy of value into field. An empty value clears the field and records the option in
// DelOptions so that a modify request removes it from the job.
func (r *SubmitRequest) setString(field *string, value string, opt SubOption, scope SubOption2) error {
	copied, err := arena.CopyString(r.alloc, value)
	if err != nil {
		return err
	}
	arena.ReleaseString(r.alloc, field)
	*field = copied
	r.markOption(value == "", opt)
	r.sub.Options2 |= scope
	return nil
}

func (r *SubmitRequest) markOption(cleared bool, opt SubOption) {
	if cleared {
		r.sub.Options &^= opt
		r.sub.DelOptions |= opt
	} else {
		r.sub.Options |= opt
		r.sub.DelOptions &^= opt
	}
}

func (r *SubmitRequest) SetJobName(name string) error {
	return r.setString(&r.sub.JobName, name, SubJobName, Sub2ModifyPendJob)
}

func (r *SubmitRequest) SetQueue(queue string) error {
	return r.setString(&r.sub.Queue, queue, SubQueue, Sub2ModifyPendJob)
}

func (r *SubmitRequest) SetResReq(resReq string) error {
	return r.setString(&r.sub.ResReq, resReq, SubResReq, Sub2ModifyPendJob)
}

func (r *SubmitRequest) SetHostSpec(hostSpec string) error {
	return r.setString(&r.sub.HostSpec, hostSpec, SubHostSpec, Sub2ModifyPendJob)
}

func (r *SubmitRequest) SetDependCond(cond string) error {
	return r.setString(&r.sub.DependCond, cond, SubDependCond, Sub2ModifyPendJob)
}

func (r *SubmitRequest) SetInFile(path string) error {
	return r.setString(&r.sub.InFile, path, SubInFile, Sub2ModifyPendJob)
}

func (r *SubmitRequest) SetOutFile(path string) error {
	return r.setString(&r.sub.OutFile, path, SubOutFile, Sub2ModifyRunJob)
}

func (r *SubmitRequest) SetErrFile(path string) error {
	return r.setString(&r.sub.ErrFile, path, SubErrFile, Sub2ModifyRunJob)
}

func (r *SubmitRequest) SetPreExecCmd(cmd string) error {
	return r.setString(&r.sub.PreExecCmd, cmd, SubPreExec, Sub2ModifyPendJob)
}

func (r *SubmitRequest) SetMailUser(user string) error {
	return r.setString(&r.sub.MailUser, user, SubMailUser, Sub2ModifyPendJob)
}

func (r *SubmitRequest) SetProjectName(project string) error {
	return r.setString(&r.sub.ProjectName, project, SubProjectName, Sub2ModifyPendJob)
}

func (r *SubmitRequest) SetLoginShell(shell string) error {
	return r.setString(&r.sub.LoginShell, shell, SubLoginShell, Sub2ModifyPendJob)
}

// SetCommand sets the command line. A new command applies to the job as a whole, so it carries no modify scope.
func (r *SubmitRequest) SetCommand(command string) error {
	copied, err := arena.CopyString(r.alloc, command)
	if err != nil {
		return err
	}
	arena.ReleaseString(r.alloc, &r.sub.Command)
	r.sub.Command = copied
	if command == "" {
		r.sub.Options2 &^= Sub2ModifyCmd
	} else {
		r.sub.Options2 |= Sub2ModifyCmd
	}
	return nil
}

// SetChkpntDir sets the checkpoint directory and, if period is positive, the checkpoint period.
func (r *SubmitRequest) SetChkpntDir(dir string, period time.Duration) error {
	if err := r.setString(&r.sub.ChkpntDir, dir, SubChkpntDir, Sub2ModifyRunJob); err != nil {
		return err
	}
	r.sub.ChkpntPeriod = period
	r.markOption(period <= 0, SubChkpntPeriod)
	return nil
}

func (r *SubmitRequest) SetAskedHosts(hosts ...string) error {
	copied, err := arena.CopyStrings(r.alloc, arena.ArrayOf(hosts...))
	if err != nil {
		return err
	}
	arena.ReleaseStrings(r.alloc, &r.sub.AskedHosts)
	r.sub.AskedHosts = copied
	r.markOption(copied.Len() == 0, SubHost)
	r.sub.Options2 |= Sub2ModifyPendJob
	return nil
}

// SetExtraFiles replaces the whole list of extra files.
func (r *SubmitRequest) SetExtraFiles(files ...XFile) error {
	copied, err := arena.CopyArrayFunc(r.alloc, arena.ArrayOf(files...), copyXFile, releaseXFile)
	if err != nil {
		return err
	}
	arena.ReleaseArrayFunc(r.alloc, &r.sub.ExtraFiles, releaseXFile)
	r.sub.ExtraFiles = copied
	r.markOption(copied.Len() == 0, SubOtherFiles)
	r.sub.Options2 |= Sub2ModifyPendJob
	return nil
}

// AddExtraFile appends one extra file to the list.
func (r *SubmitRequest) AddExtraFile(file XFile) error {
	return r.SetExtraFiles(append(r.sub.ExtraFiles.Items(), file)...)
}

func (r *SubmitRequest) SetProcessors(min, max int32) {
	r.sub.NumProcessors = min
	r.sub.MaxNumProcessors = max
	r.sub.Options2 |= Sub2ModifyPendJob
}

func (r *SubmitRequest) SetBeginTime(t time.Time) {
	r.sub.BeginTime = t
	r.sub.Options2 |= Sub2ModifyPendJob
}

func (r *SubmitRequest) SetTermTime(t time.Time) {
	r.sub.TermTime = t
	r.sub.Options2 |= Sub2ModifyRunJob
}

func (r *SubmitRequest) SetSigValue(sig int32) {
	r.sub.SigValue = sig
	r.markOption(sig == 0, SubWindowSig)
	r.sub.Options2 |= Sub2ModifyRunJob
}

func (r *SubmitRequest) SetUserPriority(priority int32) {
	r.sub.UserPriority = priority
	if priority < 0 {
		r.sub.Options2 &^= Sub2JobPriority
	} else {
		r.sub.Options2 |= Sub2JobPriority
	}
	r.sub.Options2 |= Sub2ModifyPendJob
}

// SetRLimit sets resource limit idx (one of the RLimit constants). RLimitDefault unsets it.
func (r *SubmitRequest) SetRLimit(idx int, value int64) error {
	if idx < 0 || idx >= NumRLimits {
		return errors.WithStack(&lsberrors.ErrUsage{
			Operation: "SetRLimit",
			Message:   fmt.Sprintf("resource limit index %d out of range [0, %d)", idx, NumRLimits),
		})
	}
	r.sub.RLimits[idx] = value
	r.sub.Options2 |= Sub2ModifyRunJob
	return nil
}

// SetOptions turns on flags that carry no value, e.g. SubExclusive or SubRerunnable.
func (r *SubmitRequest) SetOptions(opts SubOption) {
	r.sub.Options |= opts
}

// SetOptions2 turns on second-word flags, e.g. Sub2Hold.
func (r *SubmitRequest) SetOptions2(opts SubOption2) {
	r.sub.Options2 |= opts
}

func (r *SubmitRequest) Options() SubOption {
	return r.sub.Options
}

func (r *SubmitRequest) Options2() SubOption2 {
	return r.sub.Options2
}

// Submission returns a deep copy of the request contents, allocated on the heap.
func (r *SubmitRequest) Submission() *Submission {
	s, err := r.sub.DeepCopy(arena.Heap)
	if err != nil {
		// The heap allocator never fails.
		panic(err)
	}
	return s
}

// Validate checks the request locally. All problems found are returned together in a *multierror.Error.
func (r *SubmitRequest) Validate() error {
	var result *multierror.Error
	usage := func(format string, args ...interface{}) {
		result = multierror.Append(result, errors.WithStack(&lsberrors.ErrUsage{
			Operation: "Submit",
			Message:   fmt.Sprintf(format, args...),
		}))
	}
	s := &r.sub
	if s.NumProcessors < 0 || s.MaxNumProcessors < 0 {
		usage("processor counts must not be negative; got %d,%d", s.NumProcessors, s.MaxNumProcessors)
	} else if s.MaxNumProcessors > 0 && s.NumProcessors > s.MaxNumProcessors {
		usage("minimum processors %d exceeds maximum %d", s.NumProcessors, s.MaxNumProcessors)
	}
	for i, limit := range s.RLimits {
		if limit < RLimitDefault {
			usage("resource limit %d must be -1 or a non-negative value; got %d", i, limit)
		}
	}
	s.ExtraFiles.Each(func(i int, x XFile) bool {
		if len(x.Source) > MaxXFilePath {
			usage("extra file %d: source path longer than %d bytes", i, MaxXFilePath)
		}
		if len(x.Dest) > MaxXFilePath {
			usage("extra file %d: destination path longer than %d bytes", i, MaxXFilePath)
		}
		return true
	})
	if !s.BeginTime.IsZero() && !s.TermTime.IsZero() && s.TermTime.Before(s.BeginTime) {
		usage("termination time %s is before begin time %s", s.TermTime, s.BeginTime)
	}
	if s.ChkpntPeriod < 0 {
		usage("checkpoint period must not be negative; got %s", s.ChkpntPeriod)
	}
	return result.ErrorOrNil()
}

// Release frees everything the request owns. The request may be reused afterwards.
func (r *SubmitRequest) Release() {
	r.sub.Release(r.alloc)
}

// SubmitReply is the outcome of a submit or modify call. JobId is NoJob unless the call succeeded.
// On a rejection, BadJobId, BadJobName and BadReqIndex point at the offending part of the request.
type SubmitReply struct {
	JobId       JobId  `json:"jobId"`
	Queue       string `json:"queue,omitempty"`
	BadJobId    JobId  `json:"badJobId,omitempty"`
	BadJobName  string `json:"badJobName,omitempty"`
	BadReqIndex int32  `json:"badReqIndx,omitempty"`
}
