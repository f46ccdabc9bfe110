package configuration

import "google.golang.org/grpc/keepalive"

type GrpcConfig struct {
	Port                       uint16 `validate:"required"`
	KeepaliveParams            keepalive.ServerParameters
	KeepaliveEnforcementPolicy keepalive.EnforcementPolicy
}
