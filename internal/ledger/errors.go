package ledger

import "errors"

// Caller-facing error taxonomy. Every operation reports failures as one of
// these sentinels (possibly wrapped); callers branch with errors.Is. No
// operation partially applies its effect on failure.
var (
	// ErrNotFound indicates an unknown owner or wallet.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a duplicate category within owner and type,
	// or a duplicate wallet registration.
	ErrAlreadyExists = errors.New("already exists")
	// ErrAccessDenied indicates an ownership mismatch on update.
	ErrAccessDenied = errors.New("access denied")
	// ErrInsufficientFunds indicates a failed solvency check.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrInvalidArgument indicates a self-transfer or malformed range.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrCategoryNotFound indicates a transaction referencing an unknown
	// category name.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrInternal is an opaque store failure; the underlying cause is
	// logged, never returned.
	ErrInternal = errors.New("internal error")
)
