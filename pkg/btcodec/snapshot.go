package btcodec

import (
	"fmt"

	"teraglest/internal/engine"
)

// Snapshot is an opaque serialized (Registry, Context) pair, as produced by
// Encode.
type Snapshot []byte

// History maintains the undo/redo snapshot rings for one Context, per §4.6.
// Deserializing a snapshot fully replaces the bound Context's state rather
// than patching it in place.
type History struct {
	ctx  *engine.Context
	undo []Snapshot
	redo []Snapshot
}

// NewHistory binds a History to ctx. Callers must route every subsequent
// mutation through ctx as returned by Current after an Undo/Redo, since
// those calls swap in a brand-new *engine.Context value.
func NewHistory(ctx *engine.Context) *History {
	return &History{ctx: ctx}
}

// Current returns the Context this History currently tracks.
func (h *History) Current() *engine.Context { return h.ctx }

// PushChanges snapshots the current state onto the undo stack and clears
// redo, per §4.6.
func (h *History) PushChanges() error {
	snap, err := Encode(h.ctx)
	if err != nil {
		return fmt.Errorf("push changes: %w", err)
	}
	h.undo = append(h.undo, Snapshot(snap))
	h.redo = nil
	return nil
}

// Undo pops the latest undo snapshot, installs it as the current state, and
// pushes the context's pre-undo snapshot onto redo. Returns false if undo is
// empty.
func (h *History) Undo() (bool, error) {
	if len(h.undo) == 0 {
		return false, nil
	}
	preUndo, err := Encode(h.ctx)
	if err != nil {
		return false, fmt.Errorf("undo: snapshot current: %w", err)
	}

	last := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]

	newCtx, err := Decode(last)
	if err != nil {
		return false, fmt.Errorf("undo: decode snapshot: %w", err)
	}
	h.ctx = newCtx
	h.redo = append(h.redo, Snapshot(preUndo))
	return true, nil
}

// Redo is the mirror of Undo: it pops the latest redo snapshot, installs it,
// and pushes the pre-redo state onto undo. Returns false if redo is empty.
func (h *History) Redo() (bool, error) {
	if len(h.redo) == 0 {
		return false, nil
	}
	preRedo, err := Encode(h.ctx)
	if err != nil {
		return false, fmt.Errorf("redo: snapshot current: %w", err)
	}

	last := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]

	newCtx, err := Decode(last)
	if err != nil {
		return false, fmt.Errorf("redo: decode snapshot: %w", err)
	}
	h.ctx = newCtx
	h.undo = append(h.undo, Snapshot(preRedo))
	return true, nil
}

// UndoDepth and RedoDepth report how many steps are available in each
// direction, mainly for UI enablement and tests.
func (h *History) UndoDepth() int { return len(h.undo) }
func (h *History) RedoDepth() int { return len(h.redo) }
