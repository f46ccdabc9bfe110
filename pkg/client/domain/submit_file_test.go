package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlava/openlava-go/internal/common/lsberrors"
	"github.com/openlava/openlava-go/pkg/lsb"
)

func TestJobSpec_Request(t *testing.T) {
	priority := int32(3)
	begin := time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC)
	spec := &JobSpec{
		Name:       "main",
		Command:    "./run.sh",
		Hosts:      []string{"node1"},
		Processors: &ProcessorRange{Min: 2, Max: 4},
		Priority:   &priority,
		BeginTime:  &begin,
		Limits:     map[string]int64{"cpu": 60},
		ExtraFiles: []ExtraFile{{Source: "a", Dest: "b", Direction: "out", Append: true}},
		Checkpoint: &Checkpoint{Dir: "/chk", Period: "5m"},
	}
	r, err := spec.Request("normal")
	require.NoError(t, err)
	defer r.Release()

	sub := r.Submission()
	assert.Equal(t, "main", sub.JobName)
	assert.Equal(t, "normal", sub.Queue)
	assert.Equal(t, "./run.sh", sub.Command)
	assert.Equal(t, []string{"node1"}, sub.AskedHosts.Items())
	assert.Equal(t, int32(2), sub.NumProcessors)
	assert.Equal(t, int32(4), sub.MaxNumProcessors)
	assert.Equal(t, int32(3), sub.UserPriority)
	assert.Equal(t, begin, sub.BeginTime)
	assert.Equal(t, int64(60), sub.RLimits[lsb.RLimitCPU])
	assert.Equal(t, lsb.RLimitDefault, sub.RLimits[lsb.RLimitRun])
	assert.Equal(t, []lsb.XFile{{Source: "a", Dest: "b", Options: lsb.XFileExec2SubAppend}}, sub.ExtraFiles.Items())
	assert.Equal(t, "/chk", sub.ChkpntDir)
	assert.Equal(t, 5*time.Minute, sub.ChkpntPeriod)
	for _, opt := range []lsb.SubOption{lsb.SubJobName, lsb.SubQueue, lsb.SubHost, lsb.SubOtherFiles, lsb.SubChkpntDir, lsb.SubChkpntPeriod} {
		assert.NotZero(t, sub.Options&opt, "option %#x", opt)
	}
}

func TestJobSpec_Request_ReportsAllProblems(t *testing.T) {
	spec := &JobSpec{
		Limits:     map[string]int64{"walltime": 1},
		Processors: &ProcessorRange{Min: 3, Max: 1},
		Checkpoint: &Checkpoint{Dir: "/chk", Period: "soon"},
	}
	_, err := spec.Request("")
	require.Error(t, err)
	for _, fragment := range []string{"command", "walltime", "checkpoint.period", "exceeds maximum"} {
		assert.Contains(t, err.Error(), fragment)
	}
	assert.True(t, lsberrors.IsUsage(err))
}

func TestJobSpec_ModifyRequest_OnlySetFields(t *testing.T) {
	spec := &JobSpec{Name: "renamed", OutFile: "/tmp/out"}
	r, err := spec.ModifyRequest()
	require.NoError(t, err)
	defer r.Release()

	assert.Equal(t, lsb.SubJobName|lsb.SubOutFile, r.Options())
	assert.Equal(t, lsb.Sub2ModifyPendJob|lsb.Sub2ModifyRunJob, r.Options2())
	assert.Equal(t, "", r.Submission().Command)
}
