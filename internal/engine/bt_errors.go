package engine

import "errors"

// Blackboard and codec error taxonomy. Registry/table errors are recoverable
// at the call site; the five structural load errors abort a load atomically
// (no partial state is ever installed on a Context).
var (
	ErrRegistryFull          = errors.New("registry full")
	ErrDuplicateName         = errors.New("duplicate name")
	ErrEmptyName             = errors.New("empty name")
	ErrUnknownHandle         = errors.New("unknown handle")
	ErrBadMagic              = errors.New("bad magic")
	ErrUnsupportedVersion    = errors.New("unsupported version")
	ErrTruncatedStream       = errors.New("truncated stream")
	ErrUnknownNodeKind       = errors.New("unknown node kind")
	ErrUnknownDecoratorKind  = errors.New("unknown decorator kind")
)
