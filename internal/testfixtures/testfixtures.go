// Package testfixtures provides records shared by the tests of several packages.
package testfixtures

import (
	"time"

	"github.com/openlava/openlava-go/internal/common/arena"
	"github.com/openlava/openlava-go/pkg/lsb"
)

const DefaultVersion = "1.0"

var DefaultTime = time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC)

// RLimits returns a limit vector with a couple of limits set.
func RLimits(k int) [lsb.NumRLimits]int64 {
	limits := lsb.DefaultRLimits()
	limits[lsb.RLimitCPU] = int64(3600 * (k + 1))
	limits[lsb.RLimitRun] = int64(7200 * (k + 1))
	return limits
}

func Rusage(k int) lsb.LsfRusage {
	return lsb.LsfRusage{
		UTime:   float64(k) + 0.5,
		STime:   0.125,
		MaxRSS:  float64(1024 * (k + 1)),
		NSwap:   -1,
		ExUTime: 12,
	}
}

// Submission returns a submission with every owned field set.
func Submission(k int) lsb.Submission {
	return lsb.Submission{
		Options:          lsb.SubJobName | lsb.SubQueue | lsb.SubHost | lsb.SubOtherFiles,
		Options2:         lsb.Sub2ModifyPendJob | lsb.Sub2ModifyRunJob,
		JobName:          "job",
		Queue:            "normal",
		AskedHosts:       arena.ArrayOf("node1", "node2"),
		ResReq:           `select[mem>100] rusage[mem=100]`,
		RLimits:          RLimits(k),
		HostSpec:         "node1",
		NumProcessors:    2,
		DependCond:       `done("prep")`,
		BeginTime:        DefaultTime,
		TermTime:         DefaultTime.Add(time.Hour),
		SigValue:         15,
		InFile:           "/dev/null",
		OutFile:          "out.%J",
		ErrFile:          "err.%J",
		Command:          "./run.sh",
		ChkpntPeriod:     10 * time.Minute,
		ChkpntDir:        "/scratch/chk",
		ExtraFiles:       arena.ArrayOf(lsb.XFile{Source: "a", Dest: "b", Options: lsb.XFileExec2Sub}),
		PreExecCmd:       "true",
		MailUser:         "ops@example.com",
		DelOptions:       lsb.SubMailUser,
		ProjectName:      "proj",
		MaxNumProcessors: 4,
		LoginShell:       "/bin/bash",
		UserPriority:     5,
	}
}

// JobRecord returns a running job with every array field populated.
func JobRecord(id lsb.JobId) *lsb.JobRecord {
	return &lsb.JobRecord{
		JobId:          id,
		User:           "alice",
		Status:         lsb.JobStatusRun,
		ReasonTable:    arena.ArrayOf[int32](3, 7),
		JobPid:         4242,
		SubmitTime:     DefaultTime,
		StartTime:      DefaultTime.Add(time.Minute),
		Cwd:            "/home/alice",
		FromHost:       "login1",
		ExecHosts:      arena.ArrayOf("node1", "node2"),
		LoadThresholds: arena.ArrayOf(lsb.LoadThreshold{Sched: 1.5, Stop: 3}),
		Submission:     Submission(int(id.BaseId())),
		ExecUsername:   "alice",
		RunRusage: lsb.Rusage{
			Mem:   1024,
			Pids:  arena.ArrayOf(lsb.PidInfo{Pid: 4242, PPid: 1, PGid: 4242, JobId: int32(id.BaseId())}),
			Pgids: arena.ArrayOf[int32](4242),
		},
		JobName: "job",
	}
}

// AllEvents returns one record of every event type, in ascending type order. Every field is set, so consecutive
// records have no value in common that a missing copy could hide.
func AllEvents() []*lsb.EventRecord {
	return []*lsb.EventRecord{
		lsb.NewEventRecord(DefaultVersion, DefaultTime.Add(0*time.Second), &lsb.JobNewEvent{
			JobId:            lsb.NewJobId(1000, 0),
			UserId:           1,
			UserName:         "userName-0",
			Options:          lsb.SubJobName | lsb.SubQueue,
			Options2:         lsb.Sub2ModifyPendJob,
			NumProcessors:    5,
			SubmitTime:       DefaultTime.Add(6 * time.Minute),
			BeginTime:        DefaultTime.Add(7 * time.Minute),
			TermTime:         DefaultTime.Add(8 * time.Minute),
			SigValue:         9,
			ChkpntPeriod:     1 * time.Minute,
			RestartPid:       11,
			RLimits:          RLimits(0),
			HostSpec:         "hostSpec-0",
			HostFactor:       3.5,
			Umask:            15,
			Queue:            "queue-0",
			ResReq:           "resReq-0",
			FromHost:         "fromHost-0",
			Cwd:              "cwd-0",
			ChkpntDir:        "chkpntDir-0",
			InFile:           "inFile-0",
			OutFile:          "outFile-0",
			ErrFile:          "errFile-0",
			JobFile:          "jobFile-0",
			AskedHosts:       arena.ArrayOf("hostA-0", "hostB-0"),
			DependCond:       "dependCond-0",
			PreExecCmd:       "preExecCmd-0",
			JobName:          "jobName-0",
			Command:          `/bin/sh -c "echo 0"`,
			ExtraFiles:       arena.ArrayOf(lsb.XFile{Source: "in-0.dat", Dest: "/tmp/in-0.dat", Options: lsb.XFileSub2Exec}),
			MailUser:         "mailUser-0",
			ProjectName:      "projectName-0",
			NiosPort:         33,
			MaxNumProcessors: 34,
			LoginShell:       "loginShell-0",
			UserPriority:     36,
		}),
		lsb.NewEventRecord(DefaultVersion, DefaultTime.Add(1*time.Second), &lsb.JobStartEvent{
			JobId:        lsb.NewJobId(1001, 1),
			Status:       lsb.JobStatusDone,
			JobPid:       102,
			JobPGid:      103,
			HostFactor:   1.25,
			ExecHosts:    arena.ArrayOf("hostA-1", "hostB-1"),
			QueuePreCmd:  "queuePreCmd-1",
			QueuePostCmd: "queuePostCmd-1",
			JFlags:       108,
			UserGroup:    "userGroup-1",
		}),
		lsb.NewEventRecord(DefaultVersion, DefaultTime.Add(2*time.Second), &lsb.JobStatusEvent{
			JobId:      lsb.NewJobId(1002, 2),
			Status:     lsb.JobStatusExit,
			Reasons:    202,
			SubReasons: 203,
			CpuTime:    1.5,
			EndTime:    DefaultTime.Add(7 * time.Minute),
			Rusage:     Rusage(2),
			JFlags:     207,
			ExitStatus: 208,
			ExitInfo:   209,
		}),
		lsb.NewEventRecord(DefaultVersion, DefaultTime.Add(3*time.Second), &lsb.JobSwitchEvent{
			UserId:   300,
			JobId:    lsb.NewJobId(1003, 0),
			Queue:    "queue-3",
			UserName: "userName-3",
		}),
		lsb.NewEventRecord(DefaultVersion, DefaultTime.Add(4*time.Second), &lsb.JobMoveEvent{
			UserId:   400,
			JobId:    lsb.NewJobId(1004, 1),
			Position: 402,
			Base:     403,
			UserName: "userName-4",
		}),
		lsb.NewEventRecord(DefaultVersion, DefaultTime.Add(5*time.Second), &lsb.QueueCtrlEvent{
			OpCode:   500,
			Queue:    "queue-5",
			UserId:   502,
			UserName: "userName-5",
		}),
		lsb.NewEventRecord(DefaultVersion, DefaultTime.Add(6*time.Second), &lsb.HostCtrlEvent{
			OpCode:   600,
			Host:     "host-6",
			UserId:   602,
			UserName: "userName-6",
		}),
		lsb.NewEventRecord(DefaultVersion, DefaultTime.Add(7*time.Second), &lsb.MbdDieEvent{
			Master:        "master-7",
			NumRemoveJobs: 701,
			ExitCode:      702,
		}),
		lsb.NewEventRecord(DefaultVersion, DefaultTime.Add(8*time.Second), &lsb.MbdUnfulfillEvent{
			JobId:            lsb.NewJobId(1008, 2),
			NotSwitched:      801,
			Sig:              802,
			Sig1:             803,
			Sig1Flags:        804,
			ChkPeriod:        9 * time.Minute,
			NotModified:      806,
			MiscOpts4PendSig: 807,
		}),
		lsb.NewEventRecord(DefaultVersion, DefaultTime.Add(9*time.Second), &lsb.JobFinishEvent{
			JobId:            lsb.NewJobId(1009, 0),
			UserId:           901,
			UserName:         "userName-9",
			Options:          lsb.SubJobName | lsb.SubQueue,
			NumProcessors:    904,
			Status:           lsb.JobStatusDone,
			SubmitTime:       DefaultTime.Add(15 * time.Minute),
			BeginTime:        DefaultTime.Add(16 * time.Minute),
			TermTime:         DefaultTime.Add(17 * time.Minute),
			StartTime:        DefaultTime.Add(18 * time.Minute),
			EndTime:          DefaultTime.Add(19 * time.Minute),
			Queue:            "queue-9",
			ResReq:           "resReq-9",
			FromHost:         "fromHost-9",
			Cwd:              "cwd-9",
			InFile:           "inFile-9",
			OutFile:          "outFile-9",
			ErrFile:          "errFile-9",
			JobFile:          "jobFile-9",
			AskedHosts:       arena.ArrayOf("hostA-9", "hostB-9"),
			ExecHosts:        arena.ArrayOf("hostA-9", "hostB-9"),
			CpuTime:          7.5,
			JobName:          "jobName-9",
			Command:          `/bin/sh -c "echo 9"`,
			Rusage:           Rusage(9),
			DependCond:       "dependCond-9",
			PreExecCmd:       "preExecCmd-9",
			MailUser:         "mailUser-9",
			ProjectName:      "projectName-9",
			ExitStatus:       929,
			MaxNumProcessors: 930,
			LoginShell:       "loginShell-9",
			MaxRMem:          932,
			MaxRSwap:         933,
		}),
		lsb.NewEventRecord(DefaultVersion, DefaultTime.Add(10*time.Second), &lsb.LoadIndexEvent{
			Names: arena.ArrayOf("hostA-10", "hostB-10"),
		}),
		lsb.NewEventRecord(DefaultVersion, DefaultTime.Add(11*time.Second), &lsb.ChkpntEvent{
			JobId:  lsb.NewJobId(1011, 2),
			Period: 12 * time.Minute,
			Pid:    1102,
			Ok:     1103,
			Flags:  1104,
		}),
		lsb.NewEventRecord(DefaultVersion, DefaultTime.Add(12*time.Second), &lsb.MigEvent{
			JobId:      lsb.NewJobId(1012, 0),
			AskedHosts: arena.ArrayOf("hostA-12", "hostB-12"),
			UserId:     1202,
			UserName:   "userName-12",
		}),
		lsb.NewEventRecord(DefaultVersion, DefaultTime.Add(13*time.Second), (*lsb.PreExecStartEvent)(&lsb.JobStartEvent{
			JobId:        lsb.NewJobId(1013, 1),
			Status:       lsb.JobStatusDone,
			JobPid:       1302,
			JobPGid:      1303,
			HostFactor:   4.25,
			ExecHosts:    arena.ArrayOf("hostA-13", "hostB-13"),
			QueuePreCmd:  "queuePreCmd-13",
			QueuePostCmd: "queuePostCmd-13",
			JFlags:       1308,
			UserGroup:    "userGroup-13",
		})),
		lsb.NewEventRecord(DefaultVersion, DefaultTime.Add(14*time.Second), &lsb.MbdStartEvent{
			Master:    "master-14",
			Cluster:   "cluster-14",
			NumHosts:  1402,
			NumQueues: 1403,
		}),
		lsb.NewEventRecord(DefaultVersion, DefaultTime.Add(15*time.Second), &lsb.JobModifyEvent{
			JobIdStr:   "jobIdStr-15",
			UserId:     1501,
			UserName:   "userName-15",
			SubmitTime: DefaultTime.Add(18 * time.Minute),
			Umask:      1504,
			RestartPid: 1505,
			SubHomeDir: "subHomeDir-15",
			JobFile:    "jobFile-15",
			FromHost:   "fromHost-15",
			Cwd:        "cwd-15",
			NiosPort:   1510,
			Submission: Submission(15),
		}),
		lsb.NewEventRecord(DefaultVersion, DefaultTime.Add(16*time.Second), &lsb.JobSignalEvent{
			JobId:        lsb.NewJobId(1016, 1),
			UserId:       1601,
			RunCount:     1602,
			SignalSymbol: "signalSymbol-16",
			UserName:     "userName-16",
		}),
		lsb.NewEventRecord(DefaultVersion, DefaultTime.Add(17*time.Second), &lsb.JobForwardEvent{
			JobId:      lsb.NewJobId(1017, 2),
			ReserHosts: arena.ArrayOf("hostA-17", "hostB-17"),
			Cluster:    "cluster-17",
			JobRmtAttr: 1703,
		}),
		lsb.NewEventRecord(DefaultVersion, DefaultTime.Add(18*time.Second), &lsb.JobAcceptEvent{
			JobId:      lsb.NewJobId(1018, 0),
			RemoteJid:  163208757249,
			Cluster:    "cluster-18",
			JobRmtAttr: 1803,
		}),
		lsb.NewEventRecord(DefaultVersion, DefaultTime.Add(19*time.Second), &lsb.StatusAckEvent{
			JobId:     lsb.NewJobId(1019, 1),
			StatusNum: 1901,
		}),
		lsb.NewEventRecord(DefaultVersion, DefaultTime.Add(20*time.Second), &lsb.JobExecuteEvent{
			JobId:        lsb.NewJobId(1020, 2),
			ExecUid:      2001,
			ExecHome:     "execHome-20",
			ExecCwd:      "execCwd-20",
			JobPGid:      2004,
			ExecUsername: "execUsername-20",
			JobPid:       2006,
		}),
		lsb.NewEventRecord(DefaultVersion, DefaultTime.Add(21*time.Second), &lsb.JobMsgEvent{
			UserId:  2100,
			JobId:   lsb.NewJobId(1021, 0),
			MsgId:   2102,
			MsgType: 2103,
			Src:     "src-21",
			Dest:    "dest-21",
			Msg:     "msg-21",
		}),
		lsb.NewEventRecord(DefaultVersion, DefaultTime.Add(22*time.Second), (*lsb.JobMsgAckEvent)(&lsb.JobMsgEvent{
			UserId:  2200,
			JobId:   lsb.NewJobId(1022, 1),
			MsgId:   2202,
			MsgType: 2203,
			Src:     "src-22",
			Dest:    "dest-22",
			Msg:     "msg-22",
		})),
		lsb.NewEventRecord(DefaultVersion, DefaultTime.Add(23*time.Second), &lsb.JobRequeueEvent{
			JobId: lsb.NewJobId(1023, 2),
		}),
		lsb.NewEventRecord(DefaultVersion, DefaultTime.Add(24*time.Second), &lsb.JobSigActEvent{
			JobId:        lsb.NewJobId(1024, 0),
			Period:       25 * time.Minute,
			Pid:          2402,
			Status:       lsb.JobStatusRun,
			Reasons:      2404,
			Flags:        2405,
			SignalSymbol: "signalSymbol-24",
			ActStatus:    2407,
		}),
		lsb.NewEventRecord(DefaultVersion, DefaultTime.Add(25*time.Second), &lsb.SbdJobStatusEvent{
			JobId:         lsb.NewJobId(1025, 1),
			Status:        lsb.JobStatusDone,
			Reasons:       2502,
			SubReasons:    2503,
			ActPid:        2504,
			ActValue:      2505,
			ActPeriod:     26 * time.Minute,
			ActFlags:      2507,
			ActStatus:     2508,
			ActReasons:    2509,
			ActSubReasons: 2510,
		}),
		lsb.NewEventRecord(DefaultVersion, DefaultTime.Add(26*time.Second), &lsb.JobStartAcceptEvent{
			JobId:   lsb.NewJobId(1026, 2),
			JobPid:  2601,
			JobPGid: 2602,
		}),
		lsb.NewEventRecord(DefaultVersion, DefaultTime.Add(27*time.Second), &lsb.JobCleanEvent{
			JobId: lsb.NewJobId(1027, 0),
		}),
		lsb.NewEventRecord(DefaultVersion, DefaultTime.Add(28*time.Second), &lsb.JobForceEvent{
			UserId:    2800,
			JobId:     lsb.NewJobId(1028, 1),
			ExecHosts: arena.ArrayOf("hostA-28", "hostB-28"),
			Options:   2803,
			UserName:  "userName-28",
		}),
		lsb.NewEventRecord(DefaultVersion, DefaultTime.Add(29*time.Second), &lsb.LogSwitchEvent{
			LastJobId: 2900,
		}),
	}
}
