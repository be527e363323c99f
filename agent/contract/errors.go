package contract

import "errors"

var (
	ErrOracleUnavailable = errors.New("oracle unavailable")
	ErrEmptyReply        = errors.New("oracle returned empty reply")
	ErrUnknownTool       = errors.New("unknown tool")
	ErrStoreUnavailable  = errors.New("store unavailable")
	ErrUnauthenticated   = errors.New("caller identity is missing")
	ErrValidation        = errors.New("validation failed")
)
