package livesync

import (
	"errors"
	"fmt"

	"github.com/brunoga/livesync/live"
)

var (
	// ErrNonRepresentable indicates a snapshot value that cannot be stored in
	// a live document.
	ErrNonRepresentable = errors.New("value is not representable in a live document")

	// ErrInconsistent indicates an update that does not fit the snapshot it is
	// applied to. The snapshot and the live document have diverged.
	ErrInconsistent = errors.New("update does not match snapshot")

	// ErrDetached indicates a node that is no longer reachable from the
	// document root.
	ErrDetached = errors.New("node is detached from the document")
)

// NonRepresentableError reports the key update Diff refused to apply.
type NonRepresentableError struct {
	Path  Path
	Value any
}

func (e *NonRepresentableError) Error() string {
	return fmt.Sprintf("livesync: value at %s (%T) is not representable in a live document", e.Path, e.Value)
}

func (e *NonRepresentableError) Unwrap() error {
	return ErrNonRepresentable
}

// InconsistencyError reports where an update stopped matching the snapshot.
type InconsistencyError struct {
	Path   Path
	Update live.Update
	Reason string
}

func (e *InconsistencyError) Error() string {
	return fmt.Sprintf("livesync: %s at %s: %s", e.Update, e.Path, e.Reason)
}

func (e *InconsistencyError) Unwrap() error {
	return ErrInconsistent
}

func inconsistent(path Path, u live.Update, format string, args ...any) error {
	return &InconsistencyError{
		Path:   path,
		Update: u,
		Reason: fmt.Sprintf(format, args...),
	}
}
