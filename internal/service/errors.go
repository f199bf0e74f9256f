package service

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// Sentinel errors the handlers map onto HTTP status codes. Services wrap them
// with fmt.Errorf("%w: ...") when a more specific message helps the caller.
var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrNotFound          = errors.New("not found")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrConflict          = errors.New("already exists")
	ErrAlreadyInPlaylist = errors.New("video already in playlist")
	ErrNotInPlaylist     = errors.New("video not in playlist")
	ErrUploadFailed      = errors.New("asset upload failed")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInternal          = errors.New("internal error")
)

// isDuplicateKey reports whether err is MySQL error 1062 (duplicate entry),
// the signal that a unique index stopped a concurrent double insert.
func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
