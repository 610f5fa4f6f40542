package regroup

import (
	"errors"
	"fmt"
)

// ErrHostUnavailable is wrapped by Host errors that mean the Host can't be used any longer. An insertion aborts
// as soon as it sees one.
var ErrHostUnavailable = errors.New("scene host is unavailable")

// ValidationError is returned when an insertion has nothing to work with: no nodes, no nodes that still exist,
// or no non-empty group names. Nothing is changed in the scene.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// StaleReferenceWarning reports a requested node that no longer exists; it's skipped, and the rest are processed.
type StaleReferenceWarning struct {
	Node NodeRef
}

func (w *StaleReferenceWarning) Error() string {
	return fmt.Sprintf("Object '%s' no longer exists and will be skipped.", w.Node)
}

// PerNodeInsertionError reports a Host operation that failed while inserting groups for one node. Whatever was
// already done for that node stays done; undoing the transaction is how it gets reverted.
type PerNodeInsertionError struct {
	Node NodeRef
	Op   string // The operation that failed, like "create group" or "reparent"
	Err  error
}

func (e *PerNodeInsertionError) Error() string {
	return fmt.Sprintf("inserting groups for '%s': %s: %v", e.Node, e.Op, e.Err)
}

func (e *PerNodeInsertionError) Unwrap() error {
	return e.Err
}

// HostOperationFailure is returned when the Host became unusable partway through an insertion, aborting it.
type HostOperationFailure struct {
	Op  string
	Err error
}

func (e *HostOperationFailure) Error() string {
	return fmt.Sprintf("Error during group insertion: %s: %v", e.Op, e.Err)
}

func (e *HostOperationFailure) Unwrap() error {
	return e.Err
}
