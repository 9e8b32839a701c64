package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for type checking
var (
	ErrNotFound             = errors.New("not found")
	ErrInvalidInput         = errors.New("invalid input")
	ErrIndexOutOfRange      = errors.New("index out of range")
	ErrUnresolvedDropTarget = errors.New("unresolved drop target")
	ErrEmptyStack           = errors.New("empty stack")
	ErrDragInProgress       = errors.New("drag already in progress")
	ErrNoDragSession        = errors.New("no drag in progress")
	ErrStaleDragSession     = errors.New("drag session is stale")
)

// NotFoundError indicates a resource doesn't exist.
type NotFoundError struct {
	Resource string // "entry", "config", "list"
	ID       string // The identifier that wasn't found
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// ValidationError indicates invalid user input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// IndexOutOfRangeError indicates a removal or lookup outside 0 <= index < len.
// Correct callers never produce this; it usually points at a stale view.
type IndexOutOfRangeError struct {
	List  string
	Index int
	Len   int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("index %d out of range for %s list (length %d)", e.Index, e.List, e.Len)
}

func (e *IndexOutOfRangeError) Unwrap() error {
	return ErrIndexOutOfRange
}

// UnresolvedDropTargetError indicates a drop point that maps to neither list.
type UnresolvedDropTargetError struct {
	Reason string
}

func (e *UnresolvedDropTargetError) Error() string {
	if e.Reason != "" {
		return "unresolved drop target: " + e.Reason
	}
	return "unresolved drop target"
}

func (e *UnresolvedDropTargetError) Unwrap() error {
	return ErrUnresolvedDropTarget
}

// EmptyStackError indicates an undo or redo request against an empty list.
type EmptyStackError struct {
	List string
}

func (e *EmptyStackError) Error() string {
	return fmt.Sprintf("%s list is empty", e.List)
}

func (e *EmptyStackError) Unwrap() error {
	return ErrEmptyStack
}

// Helper constructors for common cases

func IndexOutOfRange(list string, index, length int) error {
	return &IndexOutOfRangeError{List: list, Index: index, Len: length}
}

func ListNotFound(name string) error {
	return &NotFoundError{Resource: "list", ID: name}
}

func InvalidField(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func EmptyStack(list string) error {
	return &EmptyStackError{List: list}
}

// IsNotFound checks if an error is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsIndexOutOfRange checks if an error is an index-out-of-range error.
func IsIndexOutOfRange(err error) bool {
	return errors.Is(err, ErrIndexOutOfRange)
}

// IsUnresolvedDropTarget checks if an error is an unresolved-drop-target error.
func IsUnresolvedDropTarget(err error) bool {
	return errors.Is(err, ErrUnresolvedDropTarget)
}
