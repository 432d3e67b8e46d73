package workflows

import (
	"errors"
	"fmt"
)

// ErrNoPizzaSelected is returned when an order arrives without any pizza
// selection, before any store is touched.
var ErrNoPizzaSelected = errors.New("no pizza selected")

// ValidationError reports malformed or missing required input. It is
// produced before any write occurs.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// AccountCreationError reports a failure while registering a new account
// during order placement (duplicate email, policy violation).
type AccountCreationError struct {
	Email string
	Err   error
}

func (e *AccountCreationError) Error() string {
	return fmt.Sprintf("account creation failed for %s: %v", e.Email, e.Err)
}

func (e *AccountCreationError) Unwrap() error {
	return e.Err
}

// NotFoundError reports a referenced entity that does not exist.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.Key)
}

// StoreWriteError reports a persistence failure at a named workflow step.
// Writes committed by earlier steps of the same request are NOT rolled back.
type StoreWriteError struct {
	Step string
	Err  error
}

func (e *StoreWriteError) Error() string {
	return fmt.Sprintf("store write failed at step %s: %v", e.Step, e.Err)
}

func (e *StoreWriteError) Unwrap() error {
	return e.Err
}
