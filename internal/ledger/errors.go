package ledger

import "errors"

var (
	// ErrValidation rejects an operation with missing or invalid fields
	// before any state change is applied.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a reference to an entity ID that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConstraint marks an operation that would violate a structural
	// rule, such as deleting the last remaining wallet.
	ErrConstraint = errors.New("constraint violated")

	// ErrNoSnapshot is returned by a Snapshotter when a key has never
	// been written. Loading treats it as an empty collection.
	ErrNoSnapshot = errors.New("snapshot not found")

	// ErrNoWallet means no wallet is selected, so wallet-scoped reads
	// such as export have nothing to operate on.
	ErrNoWallet = errors.New("no wallet selected")
)
