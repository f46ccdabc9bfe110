package database

import (
	"net"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/pkg/errors"
)

var retryableCodes = map[string]bool{
	pgerrcode.SerializationFailure:                    true,
	pgerrcode.DeadlockDetected:                        true,
	pgerrcode.ConnectionException:                     true,
	pgerrcode.ConnectionDoesNotExist:                  true,
	pgerrcode.ConnectionFailure:                       true,
	pgerrcode.SQLClientUnableToEstablishSQLConnection: true,
	pgerrcode.AdminShutdown:                           true,
	pgerrcode.CrashShutdown:                           true,
	pgerrcode.CannotConnectNow:                        true,
	pgerrcode.TooManyConnections:                      true,
}

// IsRetryable reports whether err is a transient failure worth retrying, either a network error or a
// Postgres error such as a serialization failure.
func IsRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return retryableCodes[pgErr.Code]
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
