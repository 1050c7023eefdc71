// internal/ledger/errors.go
package ledger

import "errors"

var (
	ErrNotFound        = errors.New("booking not found")
	ErrUnauthorized    = errors.New("caller not permitted for this transition")
	ErrInvalidState    = errors.New("settlement flag already released")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrTransferFailed  = errors.New("asset transfer declined")
	ErrConflict        = errors.New("concurrent settlement conflict")
)
