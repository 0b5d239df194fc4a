package state

import "errors"

// Sentinel errors the Journaled State returns. Deliberately distinct
// values from core/vm's own error sentinels — this package cannot
// import core/vm (the driver in core/vm imports this package to build
// a Host, so the reverse would cycle) and the Host interface only
// requires its methods return the error interface, not a shared
// concrete type.
var (
	ErrOutOfFunds          = errors.New("state: insufficient balance for transfer")
	ErrOverflowPayment     = errors.New("state: balance overflow on transfer")
	ErrNonceOverflow       = errors.New("state: nonce overflow")
	ErrCreateCollision     = errors.New("state: create collision, target has code or nonce")
	ErrInsufficientBalance = errors.New("state: insufficient balance for account creation")
)
