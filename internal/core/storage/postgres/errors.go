package postgres

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/aevon-lab/costroll/internal/core/costkey"
	"github.com/aevon-lab/costroll/internal/core/storage"
	"github.com/lib/pq"
)

// SQLSTATE class 08 is "connection exception"; 57P01..57P03 are server
// shutdown and "cannot connect now".
const connectionExceptionClass pq.ErrorClass = "08"

var unavailableCodes = map[pq.ErrorCode]struct{}{
	"57P01": {},
	"57P02": {},
	"57P03": {},
}

// isConnectionError reports whether err means the server cannot be reached,
// as opposed to a statement or constraint failure.
func isConnectionError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code.Class() == connectionExceptionClass {
			return true
		}
		_, ok := unavailableCodes[pqErr.Code]
		return ok
	}
	return false
}

// classifyWriteError turns a failure inside one object type's transaction
// into the storage error taxonomy.
func classifyWriteError(ot costkey.ObjectType, op string, err error) error {
	if isConnectionError(err) {
		return &storage.StoreUnavailableError{Op: fmt.Sprintf("%s %s", op, ot), Err: err}
	}
	return &storage.TransactionError{ObjectType: ot, Err: fmt.Errorf("%s: %w", op, err)}
}
