package lsbrpc

import (
	"context"

	"google.golang.org/grpc"
)

const serviceName = "lsbrpc.Daemon"

const (
	methodInit         = "/" + serviceName + "/Init"
	methodOpenJobInfo  = "/" + serviceName + "/OpenJobInfo"
	methodReadJobInfo  = "/" + serviceName + "/ReadJobInfo"
	methodCloseJobInfo = "/" + serviceName + "/CloseJobInfo"
	methodSubmit       = "/" + serviceName + "/Submit"
	methodModify       = "/" + serviceName + "/Modify"
	methodQueueInfo    = "/" + serviceName + "/QueueInfo"
	methodHostInfo     = "/" + serviceName + "/HostInfo"
	methodUserInfo     = "/" + serviceName + "/UserInfo"
	methodClusterInfo  = "/" + serviceName + "/ClusterInfo"
)

// DaemonServer is the server side of the daemon service.
type DaemonServer interface {
	Init(context.Context, *InitRequest) (*Empty, error)
	OpenJobInfo(context.Context, *OpenJobInfoRequest) (*OpenJobInfoReply, error)
	ReadJobInfo(context.Context, *Empty) (*ReadJobInfoReply, error)
	CloseJobInfo(context.Context, *Empty) (*Empty, error)
	Submit(context.Context, *SubmitRequest) (*SubmitReply, error)
	Modify(context.Context, *ModifyRequest) (*SubmitReply, error)
	QueueInfo(context.Context, *InfoRequest) (*QueueInfoReply, error)
	HostInfo(context.Context, *InfoRequest) (*HostInfoReply, error)
	UserInfo(context.Context, *InfoRequest) (*UserInfoReply, error)
	ClusterInfo(context.Context, *Empty) (*ClusterInfoReply, error)
}

func RegisterDaemonServer(s grpc.ServiceRegistrar, srv DaemonServer) {
	s.RegisterService(&daemonServiceDesc, srv)
}

// unaryHandler adapts a typed server method to grpc's method handler signature.
func unaryHandler[Req any, Reply any](
	fullMethod string,
	call func(DaemonServer, context.Context, *Req) (*Reply, error),
) func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(DaemonServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(DaemonServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var daemonServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*DaemonServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Init", Handler: unaryHandler(methodInit, DaemonServer.Init)},
		{MethodName: "OpenJobInfo", Handler: unaryHandler(methodOpenJobInfo, DaemonServer.OpenJobInfo)},
		{MethodName: "ReadJobInfo", Handler: unaryHandler(methodReadJobInfo, DaemonServer.ReadJobInfo)},
		{MethodName: "CloseJobInfo", Handler: unaryHandler(methodCloseJobInfo, DaemonServer.CloseJobInfo)},
		{MethodName: "Submit", Handler: unaryHandler(methodSubmit, DaemonServer.Submit)},
		{MethodName: "Modify", Handler: unaryHandler(methodModify, DaemonServer.Modify)},
		{MethodName: "QueueInfo", Handler: unaryHandler(methodQueueInfo, DaemonServer.QueueInfo)},
		{MethodName: "HostInfo", Handler: unaryHandler(methodHostInfo, DaemonServer.HostInfo)},
		{MethodName: "UserInfo", Handler: unaryHandler(methodUserInfo, DaemonServer.UserInfo)},
		{MethodName: "ClusterInfo", Handler: unaryHandler(methodClusterInfo, DaemonServer.ClusterInfo)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "lsbrpc",
}
