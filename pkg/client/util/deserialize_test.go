package util

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlava/openlava-go/pkg/client/domain"
)

func TestBindJsonOrYaml_Yaml(t *testing.T) {
	submitFile := &domain.JobSubmitFile{}
	err := BindJsonOrYaml(filepath.Join("testdata", "jobs.yaml"), submitFile)
	require.NoError(t, err)
	assert.Equal(t, getExpectedJobSubmitFile(), submitFile)
}

func TestBindJsonOrYaml_Json(t *testing.T) {
	submitFile := &domain.JobSubmitFile{}
	err := BindJsonOrYaml(filepath.Join("testdata", "jobs.json"), submitFile)
	require.NoError(t, err)
	assert.Equal(t, getExpectedJobSubmitFile(), submitFile)
}

func TestBindJsonOrYaml_MissingFile(t *testing.T) {
	err := BindJsonOrYaml(filepath.Join("testdata", "missing.yaml"), &domain.JobSubmitFile{})
	assert.Error(t, err)
}

func getExpectedJobSubmitFile() *domain.JobSubmitFile {
	priority := int32(10)
	begin := time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC)
	return &domain.JobSubmitFile{
		Queue: "normal",
		Jobs: []*domain.JobSpec{
			{
				Name:    "prep",
				Command: "./prepare.sh",
				OutFile: "prep.%J.out",
				Limits:  map[string]int64{"cpu": 3600, "run": 7200},
			},
			{
				Name:       "main",
				Queue:      "short",
				Command:    "./run.sh --input data",
				ResReq:     "select[mem>100] rusage[mem=100]",
				Hosts:      []string{"node1", "node2"},
				Processors: &domain.ProcessorRange{Min: 2, Max: 4},
				DependCond: `done("prep")`,
				Priority:   &priority,
				BeginTime:  &begin,
				ExtraFiles: []domain.ExtraFile{
					{Source: "input.tar", Dest: "/tmp/input.tar", Direction: "in"},
					{Source: "result.log", Dest: "/tmp/result.log", Direction: "out", Append: true},
				},
				Checkpoint: &domain.Checkpoint{Dir: "/scratch/chk", Period: "10m"},
			},
		},
	}
}
