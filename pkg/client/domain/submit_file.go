package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/openlava/openlava-go/pkg/lsb"
)

// JobSubmitFile is the content of a file passed to lavactl submit. It may be written as YAML or JSON.
type JobSubmitFile struct {
	// Queue of the jobs that don't name one. Empty means the daemon's default queue.
	Queue string     `json:"queue,omitempty"`
	Jobs  []*JobSpec `json:"jobs"`
}

type ProcessorRange struct {
	Min int32 `json:"min"`
	Max int32 `json:"max,omitempty"`
}

type ExtraFile struct {
	Source string `json:"source"`
	Dest   string `json:"dest"`
	// "in" copies the file to the execution host before the job starts, "out" back after it ends.
	Direction string `json:"direction"`
	Append    bool   `json:"append,omitempty"`
}

type Checkpoint struct {
	Dir string `json:"dir"`
	// Period in time.ParseDuration syntax, e.g. "10m".
	Period string `json:"period,omitempty"`
}

type JobSpec struct {
	Name        string           `json:"name,omitempty"`
	Queue       string           `json:"queue,omitempty"`
	Command     string           `json:"command"`
	ResReq      string           `json:"resReq,omitempty"`
	Hosts       []string         `json:"hosts,omitempty"`
	HostSpec    string           `json:"hostSpec,omitempty"`
	Processors  *ProcessorRange  `json:"processors,omitempty"`
	DependCond  string           `json:"dependCond,omitempty"`
	InFile      string           `json:"inFile,omitempty"`
	OutFile     string           `json:"outFile,omitempty"`
	ErrFile     string           `json:"errFile,omitempty"`
	PreExecCmd  string           `json:"preExecCmd,omitempty"`
	MailUser    string           `json:"mailUser,omitempty"`
	ProjectName string           `json:"projectName,omitempty"`
	LoginShell  string           `json:"loginShell,omitempty"`
	Priority    *int32           `json:"priority,omitempty"`
	BeginTime   *time.Time       `json:"beginTime,omitempty"`
	TermTime    *time.Time       `json:"termTime,omitempty"`
	Limits      map[string]int64 `json:"limits,omitempty"`
	ExtraFiles  []ExtraFile      `json:"extraFiles,omitempty"`
	Checkpoint  *Checkpoint      `json:"checkpoint,omitempty"`
}

// Names of resource limits as used in submit files.
var LimitNames = map[string]int{
	"cpu":     lsb.RLimitCPU,
	"fsize":   lsb.RLimitFSize,
	"data":    lsb.RLimitData,
	"stack":   lsb.RLimitStack,
	"core":    lsb.RLimitCore,
	"rss":     lsb.RLimitRSS,
	"nofile":  lsb.RLimitNoFile,
	"openmax": lsb.RLimitOpenMax,
	"swap":    lsb.RLimitSwap,
	"run":     lsb.RLimitRun,
	"process": lsb.RLimitProcess,
}

func xfileOption(f ExtraFile) (lsb.XFileOption, error) {
	switch strings.ToLower(f.Direction) {
	case "in", "":
		if f.Append {
			return lsb.XFileSub2ExecAppend, nil
		}
		return lsb.XFileSub2Exec, nil
	case "out":
		if f.Append {
			return lsb.XFileExec2SubAppend, nil
		}
		return lsb.XFileExec2Sub, nil
	}
	return 0, errors.Errorf("unknown direction %q", f.Direction)
}

// Request builds a submit request for the job. defaultQueue is used if the job names no queue.
// All problems are reported together.
func (j *JobSpec) Request(defaultQueue string) (*lsb.SubmitRequest, error) {
	return j.request(defaultQueue, true)
}

// ModifyRequest builds a modify request changing exactly the fields set in this JobSpec.
// Unlike Request, no command is required.
func (j *JobSpec) ModifyRequest() (*lsb.SubmitRequest, error) {
	return j.request("", false)
}

func (j *JobSpec) request(defaultQueue string, requireCommand bool) (*lsb.SubmitRequest, error) {
	r := lsb.NewSubmitRequest()
	var result *multierror.Error
	check := func(field string, err error) {
		if err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "invalid %s", field))
		}
	}

	if requireCommand && j.Command == "" {
		check("command", errors.New("a command is required"))
	}
	check("command", r.SetCommand(j.Command))
	queue := j.Queue
	if queue == "" {
		queue = defaultQueue
	}
	fields := []struct {
		field string
		value string
		set   func(string) error
	}{
		{"name", j.Name, r.SetJobName},
		{"queue", queue, r.SetQueue},
		{"resReq", j.ResReq, r.SetResReq},
		{"hostSpec", j.HostSpec, r.SetHostSpec},
		{"dependCond", j.DependCond, r.SetDependCond},
		{"inFile", j.InFile, r.SetInFile},
		{"outFile", j.OutFile, r.SetOutFile},
		{"errFile", j.ErrFile, r.SetErrFile},
		{"preExecCmd", j.PreExecCmd, r.SetPreExecCmd},
		{"mailUser", j.MailUser, r.SetMailUser},
		{"projectName", j.ProjectName, r.SetProjectName},
		{"loginShell", j.LoginShell, r.SetLoginShell},
	}
	for _, s := range fields {
		if s.value != "" {
			check(s.field, s.set(s.value))
		}
	}
	if len(j.Hosts) > 0 {
		check("hosts", r.SetAskedHosts(j.Hosts...))
	}
	if j.Processors != nil {
		r.SetProcessors(j.Processors.Min, j.Processors.Max)
	}
	if j.Priority != nil {
		r.SetUserPriority(*j.Priority)
	}
	if j.BeginTime != nil {
		r.SetBeginTime(*j.BeginTime)
	}
	if j.TermTime != nil {
		r.SetTermTime(*j.TermTime)
	}
	for name, value := range j.Limits {
		idx, ok := LimitNames[name]
		if !ok {
			check("limits", errors.Errorf("unknown resource limit %q", name))
			continue
		}
		check("limits", r.SetRLimit(idx, value))
	}
	for i, f := range j.ExtraFiles {
		opt, err := xfileOption(f)
		if err != nil {
			check(fmt.Sprintf("extraFiles[%d]", i), err)
			continue
		}
		check("extraFiles", r.AddExtraFile(lsb.XFile{Source: f.Source, Dest: f.Dest, Options: opt}))
	}
	if j.Checkpoint != nil {
		var period time.Duration
		if j.Checkpoint.Period != "" {
			var err error
			period, err = time.ParseDuration(j.Checkpoint.Period)
			check("checkpoint.period", err)
		}
		check("checkpoint.dir", r.SetChkpntDir(j.Checkpoint.Dir, period))
	}
	check("job", r.Validate())

	if err := result.ErrorOrNil(); err != nil {
		r.Release()
		return nil, err
	}
	return r, nil
}
