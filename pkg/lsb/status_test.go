package lsb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlava/openlava-go/internal/common/lsberrors"
)

func TestJobStatus_String(t *testing.T) {
	assert.Equal(t, "PEND", JobStatusPend.String())
	assert.Equal(t, "DONE+PDONE", (JobStatusDone | JobStatusPDone).String())
	assert.Equal(t, "JobStatus(0x400000)", JobStatus(0x400000).String())
}

func TestJobStatus_Classes(t *testing.T) {
	assert.True(t, JobStatusPend.IsPending())
	assert.True(t, JobStatusPSusp.IsPending())
	assert.True(t, JobStatusPSusp.IsSuspended())
	assert.True(t, JobStatusUSusp.IsSuspended())
	assert.False(t, JobStatusRun.IsSuspended())
	assert.True(t, JobStatusRun.IsRunning())
	assert.True(t, (JobStatusDone | JobStatusPDone).IsFinished())
	assert.True(t, JobStatusExit.IsFinished())
	assert.False(t, JobStatusPend.IsFinished())
}

func TestParseQueryOption(t *testing.T) {
	tests := map[string]struct {
		input    string
		expected QueryOption
	}{
		"empty":      {"", 0},
		"single":     {"all", QueryAllJob},
		"pipe":       {"pend|susp", QueryPendJob | QuerySuspJob},
		"comma":      {"DONE,cur", QueryDoneJob | QueryCurJob},
		"whitespace": {"last ", QueryLastJob},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			opt, err := ParseQueryOption(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, opt)
		})
	}

	_, err := ParseQueryOption("pend|zombie")
	require.Error(t, err)
	assert.True(t, lsberrors.IsUsage(err))
}

func TestQueryOption_String(t *testing.T) {
	assert.Equal(t, "cur", QueryOption(0).String())
	assert.Equal(t, "pend|susp", (QueryPendJob | QuerySuspJob).String())
	assert.Equal(t, "all|0x100", (QueryAllJob | QueryOption(0x100)).String())
}

func TestQueryOption_Matches(t *testing.T) {
	tests := map[string]struct {
		opt      QueryOption
		status   JobStatus
		expected bool
	}{
		"default includes running": {0, JobStatusRun, true},
		"default excludes done":    {0, JobStatusDone, false},
		"all includes done":        {QueryAllJob, JobStatusDone, true},
		"done excludes pending":    {QueryDoneJob, JobStatusPend, false},
		"done includes exit":       {QueryDoneJob, JobStatusExit, true},
		"pend includes psusp":      {QueryPendJob, JobStatusPSusp, true},
		"pend excludes running":    {QueryPendJob, JobStatusRun, false},
		"susp includes ssusp":      {QuerySuspJob, JobStatusSSusp, true},
		"last includes anything":   {QueryLastJob, JobStatusDone, true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.opt.Matches(tc.status))
		})
	}
}
