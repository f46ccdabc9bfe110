package fakedaemon

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlava/openlava-go/internal/common/lsberrors"
	"github.com/openlava/openlava-go/internal/eventlog"
	"github.com/openlava/openlava-go/internal/testfixtures"
	"github.com/openlava/openlava-go/pkg/lsb"
)

func testConfig() Config {
	return Config{
		Queues:   []QueueConfig{{Name: "normal"}, {Name: "short"}, {Name: "closed", Closed: true}},
		Hosts:    []string{"node1", "node2"},
		User:     "alice",
		UserId:   501,
		FromHost: "login1",
		Cwd:      "/home/alice",
	}
}

func withDaemon(t *testing.T, action func(d *Daemon, events *bytes.Buffer)) {
	var events bytes.Buffer
	d, err := New(testConfig(), WithEventLog(&events), WithClock(func() time.Time { return testfixtures.DefaultTime }))
	require.NoError(t, err)
	action(d, &events)
}

func submission(t *testing.T, build func(r *lsb.SubmitRequest)) *lsb.Submission {
	r := lsb.NewSubmitRequest()
	require.NoError(t, r.SetCommand("sleep 10"))
	if build != nil {
		build(r)
	}
	return r.Submission()
}

func submit(t *testing.T, c *Conn, build func(r *lsb.SubmitRequest)) lsb.JobId {
	reply, err := c.Submit(context.Background(), submission(t, build))
	require.NoError(t, err)
	return reply.JobId
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(Config{User: "alice", Hosts: []string{"node1"}})
	assert.Error(t, err)
}

func TestSubmit_ThenQueryById(t *testing.T) {
	withDaemon(t, func(d *Daemon, _ *bytes.Buffer) {
		ctx := context.Background()
		c := d.Connect()
		id := submit(t, c, func(r *lsb.SubmitRequest) {
			require.NoError(t, r.SetJobName("first"))
		})
		assert.Equal(t, lsb.NewJobId(1, 0), id)

		query := lsb.ByJobId(id)
		count, err := c.OpenJobInfo(ctx, &query)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		record, err := c.ReadJobInfo(ctx)
		require.NoError(t, err)
		assert.Equal(t, id, record.JobId)
		assert.Equal(t, lsb.JobStatusPend, record.Status)
		assert.Equal(t, "first", record.JobName)
		assert.Equal(t, "normal", record.Submission.Queue)
		assert.Equal(t, "sleep 10", record.Submission.Command)
		assert.Equal(t, "alice", record.User)
		assert.Equal(t, testfixtures.DefaultTime, record.SubmitTime)

		_, err = c.ReadJobInfo(ctx)
		assert.Equal(t, io.EOF, err)
		require.NoError(t, c.CloseJobInfo(ctx))
	})
}

func TestSubmit_JobIdsIncrease(t *testing.T) {
	withDaemon(t, func(d *Daemon, _ *bytes.Buffer) {
		require.NoError(t, d.AddJob(testfixtures.JobRecord(lsb.NewJobId(41, 0))))
		c := d.Connect()
		assert.Equal(t, lsb.NewJobId(42, 0), submit(t, c, nil))
		assert.Equal(t, lsb.NewJobId(43, 0), submit(t, c, nil))
	})
}

func TestSubmit_Rejections(t *testing.T) {
	tests := map[string]struct {
		build         func(t *testing.T, r *lsb.SubmitRequest)
		expectedCode  lsberrors.RejectCode
		expectedReply lsb.SubmitReply
	}{
		"unknown queue": {
			build:         func(t *testing.T, r *lsb.SubmitRequest) { require.NoError(t, r.SetQueue("gpu")) },
			expectedCode:  lsberrors.RejectBadQueue,
			expectedReply: lsb.SubmitReply{Queue: "gpu"},
		},
		"closed queue": {
			build:         func(t *testing.T, r *lsb.SubmitRequest) { require.NoError(t, r.SetQueue("closed")) },
			expectedCode:  lsberrors.RejectQueueClosed,
			expectedReply: lsb.SubmitReply{Queue: "closed"},
		},
		"unknown host": {
			build:         func(t *testing.T, r *lsb.SubmitRequest) { require.NoError(t, r.SetAskedHosts("node1", "node9")) },
			expectedCode:  lsberrors.RejectBadOption,
			expectedReply: lsb.SubmitReply{Queue: "normal", BadReqIndex: 1},
		},
		"unbalanced resource request": {
			build:         func(t *testing.T, r *lsb.SubmitRequest) { require.NoError(t, r.SetResReq("select[mem>100")) },
			expectedCode:  lsberrors.RejectBadResourceRequest,
			expectedReply: lsb.SubmitReply{Queue: "normal"},
		},
		"unknown dependency": {
			build:         func(t *testing.T, r *lsb.SubmitRequest) { require.NoError(t, r.SetDependCond(`done("prep")`)) },
			expectedCode:  lsberrors.RejectBadDependency,
			expectedReply: lsb.SubmitReply{Queue: "normal", BadJobName: "prep"},
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			withDaemon(t, func(d *Daemon, events *bytes.Buffer) {
				c := d.Connect()
				reply, err := c.Submit(context.Background(), submission(t, func(r *lsb.SubmitRequest) { tc.build(t, r) }))
				code, ok := lsberrors.RejectCodeOf(err)
				require.True(t, ok, "%v", err)
				assert.Equal(t, tc.expectedCode, code)
				assert.Equal(t, tc.expectedReply, *reply)
				assert.Equal(t, 0, events.Len())
			})
		})
	}
}

func TestSubmit_KnownDependency(t *testing.T) {
	withDaemon(t, func(d *Daemon, _ *bytes.Buffer) {
		c := d.Connect()
		prep := submit(t, c, func(r *lsb.SubmitRequest) { require.NoError(t, r.SetJobName("prep")) })
		submit(t, c, func(r *lsb.SubmitRequest) { require.NoError(t, r.SetDependCond(`done("prep")`)) })
		submit(t, c, func(r *lsb.SubmitRequest) { require.NoError(t, r.SetDependCond("ended(" + prep.String() + ")")) })
	})
}

func TestOpenJobInfo_NoMatch(t *testing.T) {
	withDaemon(t, func(d *Daemon, _ *bytes.Buffer) {
		c := d.Connect()
		query := lsb.ByUser("bob")
		_, err := c.OpenJobInfo(context.Background(), &query)
		code, ok := lsberrors.RejectCodeOf(err)
		require.True(t, ok)
		assert.Equal(t, lsberrors.RejectNoJob, code)
	})
}

func TestOpenJobInfo_ByQueueAndLastJob(t *testing.T) {
	withDaemon(t, func(d *Daemon, _ *bytes.Buffer) {
		ctx := context.Background()
		c := d.Connect()
		submit(t, c, nil)
		short1 := submit(t, c, func(r *lsb.SubmitRequest) { require.NoError(t, r.SetQueue("short")) })
		short2 := submit(t, c, func(r *lsb.SubmitRequest) { require.NoError(t, r.SetQueue("short")) })

		query := lsb.ByQueue("short")
		count, err := c.OpenJobInfo(ctx, &query)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
		first, err := c.ReadJobInfo(ctx)
		require.NoError(t, err)
		assert.Equal(t, short1, first.JobId)

		query = lsb.ByStatus(lsb.QueryLastJob)
		count, err = c.OpenJobInfo(ctx, &query)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
		last, err := c.ReadJobInfo(ctx)
		require.NoError(t, err)
		assert.Equal(t, short2, last.JobId)
	})
}

func TestReadJobInfo_ReusesBuffer(t *testing.T) {
	withDaemon(t, func(d *Daemon, _ *bytes.Buffer) {
		ctx := context.Background()
		require.NoError(t, d.AddJob(testfixtures.JobRecord(lsb.NewJobId(1, 0))))
		require.NoError(t, d.AddJob(testfixtures.JobRecord(lsb.NewJobId(2, 0))))
		c := d.Connect()

		query := lsb.ByStatus(lsb.QueryAllJob)
		_, err := c.OpenJobInfo(ctx, &query)
		require.NoError(t, err)

		_, err = c.ReadJobInfo(ctx)
		require.NoError(t, err)
		perRecord := c.Buffer().Outstanding()
		assert.Greater(t, perRecord, 0)

		second, err := c.ReadJobInfo(ctx)
		require.NoError(t, err)
		assert.Equal(t, lsb.NewJobId(2, 0), second.JobId)
		assert.Equal(t, perRecord, c.Buffer().Outstanding())

		require.NoError(t, c.CloseJobInfo(ctx))
		assert.Equal(t, 0, c.Buffer().Outstanding())
	})
}

func TestReadJobInfo_NothingOpen(t *testing.T) {
	withDaemon(t, func(d *Daemon, _ *bytes.Buffer) {
		_, err := d.Connect().ReadJobInfo(context.Background())
		assert.True(t, lsberrors.IsUsage(err))
	})
}

func TestConnections_HaveSeparateQueries(t *testing.T) {
	withDaemon(t, func(d *Daemon, _ *bytes.Buffer) {
		ctx := context.Background()
		a, b := d.Connect(), d.Connect()
		submit(t, a, nil)

		query := lsb.ByStatus(lsb.QueryAllJob)
		_, err := a.OpenJobInfo(ctx, &query)
		require.NoError(t, err)
		_, err = b.ReadJobInfo(ctx)
		assert.True(t, lsberrors.IsUsage(err))
		_, err = a.ReadJobInfo(ctx)
		assert.NoError(t, err)
	})
}

func TestLifecycle_WritesEvents(t *testing.T) {
	withDaemon(t, func(d *Daemon, events *bytes.Buffer) {
		c := d.Connect()
		id := submit(t, c, nil)

		started, ok, err := d.Dispatch("node1")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, id, started)
		_, ok, err = d.Dispatch("node1")
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, d.Finish(id, 3))
		assert.True(t, lsberrors.IsUsage(d.Finish(id, 0)))

		job, ok := d.Job(id)
		require.True(t, ok)
		assert.Equal(t, lsb.JobStatusExit, job.Status)
		assert.Equal(t, int32(3), job.ExitStatus)
		assert.Equal(t, []string{"node1"}, job.ExecHosts.Items())

		dec := eventlog.NewDecoder(bytes.NewReader(events.Bytes()))
		var types []lsb.EventType
		for {
			record, err := dec.Next()
			if err == io.EOF {
				break
			}
			require.NoError(t, err)
			assert.Equal(t, id, record.JobId())
			types = append(types, record.Type())
		}
		assert.Equal(t, []lsb.EventType{lsb.EventJobNew, lsb.EventJobStart, lsb.EventJobStatus}, types)
	})
}

func TestModify(t *testing.T) {
	withDaemon(t, func(d *Daemon, events *bytes.Buffer) {
		ctx := context.Background()
		c := d.Connect()
		id := submit(t, c, func(r *lsb.SubmitRequest) {
			require.NoError(t, r.SetJobName("before"))
			require.NoError(t, r.SetMailUser("ops"))
		})

		reply, err := c.Modify(ctx, submission(t, func(r *lsb.SubmitRequest) {
			require.NoError(t, r.SetJobName("after"))
			require.NoError(t, r.SetMailUser(""))
			require.NoError(t, r.SetRLimit(lsb.RLimitCPU, 60))
		}), id)
		require.NoError(t, err)
		assert.Equal(t, lsb.SubmitReply{JobId: id, Queue: "normal"}, *reply)

		job, ok := d.Job(id)
		require.True(t, ok)
		assert.Equal(t, "after", job.JobName)
		assert.Equal(t, "after", job.Submission.JobName)
		assert.Equal(t, "", job.Submission.MailUser)
		assert.Zero(t, job.Submission.Options&lsb.SubMailUser)
		assert.Equal(t, int64(60), job.Submission.RLimits[lsb.RLimitCPU])
		assert.Equal(t, lsb.RLimitDefault, job.Submission.RLimits[lsb.RLimitRun])
		assert.Contains(t, events.String(), `"JOB_MODIFY2"`)
	})
}

func TestModify_Rejections(t *testing.T) {
	withDaemon(t, func(d *Daemon, _ *bytes.Buffer) {
		ctx := context.Background()
		c := d.Connect()
		id := submit(t, c, nil)
		_, _, err := d.Dispatch("node2")
		require.NoError(t, err)

		rename := submission(t, func(r *lsb.SubmitRequest) { require.NoError(t, r.SetJobName("x")) })
		_, err = c.Modify(ctx, rename, id)
		code, _ := lsberrors.RejectCodeOf(err)
		assert.Equal(t, lsberrors.RejectBadOption, code)

		outFile := submission(t, func(r *lsb.SubmitRequest) { require.NoError(t, r.SetOutFile("out")) })
		_, err = c.Modify(ctx, outFile, id)
		assert.NoError(t, err)

		reply, err := c.Modify(ctx, outFile, lsb.NewJobId(99, 0))
		code, _ = lsberrors.RejectCodeOf(err)
		assert.Equal(t, lsberrors.RejectNoJob, code)
		assert.Equal(t, lsb.NewJobId(99, 0), reply.BadJobId)

		require.NoError(t, d.Finish(id, 0))
		_, err = c.Modify(ctx, outFile, id)
		code, _ = lsberrors.RejectCodeOf(err)
		assert.Equal(t, lsberrors.RejectBadJobId, code)
	})
}
