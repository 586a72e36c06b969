package models

import "errors"

// Error taxonomy shared by the ledger, the storage backends and the RPC layer.
// Callers wrap these with context and test them with errors.Is.
var (
	// ErrValidation marks malformed input.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a missing account, group, transaction or a
	// counterparty without any transaction history.
	ErrNotFound = errors.New("not found")

	// ErrAlreadySettled is returned by settle when the balance is already zero.
	ErrAlreadySettled = errors.New("balance already settled")

	// ErrStorage marks a failure of the underlying store.
	ErrStorage = errors.New("storage failure")
)
