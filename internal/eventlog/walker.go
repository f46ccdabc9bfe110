package eventlog

import (
	"time"

	"github.com/openlava/openlava-go/internal/common/arena"
	"github.com/openlava/openlava-go/pkg/lsb"
)

// fieldWalker is implemented by the decoder and the encoder, so that the field order of every event type is
// written down once and shared by both directions.
type fieldWalker interface {
	Int32(v *int32)
	Uint32(v *uint32)
	Int64(v *int64)
	Float32(v *float32)
	Float64(v *float64)
	String(v *string)
	// Time is stored as seconds since the epoch; 0 is the zero time.
	Time(v *time.Time)
	// Duration is stored in whole seconds.
	Duration(v *time.Duration)
	// JobId is the base job id. The array index is walked separately by ArrayIndex.
	JobId(v *lsb.JobId)
	ArrayIndex(v *lsb.JobId)
	// Arrays are stored as a count followed by the elements.
	Strings(v *arena.Array[string])
	XFiles(v *arena.Array[lsb.XFile])
	RLimits(v *[lsb.NumRLimits]int64)
}

func walkRusage(w fieldWalker, r *lsb.LsfRusage) {
	for _, f := range []*float64{
		&r.UTime, &r.STime, &r.MaxRSS, &r.IxRSS, &r.IsmRSS, &r.IdRSS, &r.IsRSS, &r.MinFlt, &r.MajFlt, &r.NSwap,
		&r.InBlock, &r.OuBlock, &r.IoCh, &r.MsgSnd, &r.MsgRcv, &r.NSignals, &r.NVCsw, &r.NIvCsw, &r.ExUTime,
	} {
		w.Float64(f)
	}
}

func walkSubmission(w fieldWalker, s *lsb.Submission) {
	w.Int32((*int32)(&s.Options))
	w.Int32((*int32)(&s.Options2))
	w.Int32((*int32)(&s.DelOptions))
	w.Int32((*int32)(&s.DelOptions2))
	w.String(&s.JobName)
	w.String(&s.Queue)
	w.Strings(&s.AskedHosts)
	w.String(&s.ResReq)
	w.RLimits(&s.RLimits)
	w.String(&s.HostSpec)
	w.Int32(&s.NumProcessors)
	w.Int32(&s.MaxNumProcessors)
	w.String(&s.DependCond)
	w.Time(&s.BeginTime)
	w.Time(&s.TermTime)
	w.Int32(&s.SigValue)
	w.String(&s.InFile)
	w.String(&s.OutFile)
	w.String(&s.ErrFile)
	w.String(&s.Command)
	w.Duration(&s.ChkpntPeriod)
	w.String(&s.ChkpntDir)
	w.XFiles(&s.ExtraFiles)
	w.String(&s.PreExecCmd)
	w.String(&s.MailUser)
	w.String(&s.ProjectName)
	w.String(&s.LoginShell)
	w.Int32(&s.UserPriority)
}
