// Package domain declares the sentinel errors shared by services and handlers.
// Services wrap these with context via fmt.Errorf("%w: ..."); handlers match
// with errors.Is to pick the HTTP status, so DB driver errors never decide
// what a client sees.
package domain

import "errors"

var (
	// ErrNotFound covers missing entities and entities owned by someone else:
	// an id outside the caller's scope must not leak existence.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate signals a unique-constraint conflict (username, email,
	// barcode, per-owner client cpf/email).
	ErrDuplicate = errors.New("already registered")

	// ErrInvalidCredentials is returned on login for unknown usernames and
	// password mismatches alike.
	ErrInvalidCredentials = errors.New("incorrect username or password")

	// ErrInsufficientStock aborts order creation when a line item asks for
	// more units than the product has left.
	ErrInsufficientStock = errors.New("not enough stock available")

	// ErrOrderCancelled rejects item mutations on a cancelled order.
	ErrOrderCancelled = errors.New("order is cancelled")

	// ErrInvalidStatus rejects statuses outside the closed set.
	ErrInvalidStatus = errors.New("invalid order status")

	// ErrInvalidRole rejects roles outside {admin, regular}.
	ErrInvalidRole = errors.New("invalid role")
)
