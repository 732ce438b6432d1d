package engine

import "fmt"

// MaxRegistryEntries bounds how many distinct keys one DataRegistry may
// hold, matching the dense-handle encoding used by the binary codec.
const MaxRegistryEntries = 0xFF00

// InvalidDataHandle is returned by failed registrations and lookups.
const InvalidDataHandle DataHandle = -1

// DataHandle indexes a DataEntry within a DataRegistry. Handles are assigned
// in registration order and are never reused within one registry's lifetime.
type DataHandle int32

// DataEntry describes one registered blackboard key.
type DataEntry struct {
	Handle DataHandle
	Name   string
	Type   BTDataType
}

// DataRegistry is the ordered, versioned schema of blackboard keys shared by
// every Table bound to it. Modeled on the handle-assignment and duplicate
// checks of the original registration routine.
type DataRegistry struct {
	boardName string
	entries   []DataEntry
	byName    map[string]DataHandle
}

// NewDataRegistry creates an empty registry with the default board name.
func NewDataRegistry() *DataRegistry {
	return &DataRegistry{
		boardName: "Board",
		byName:    make(map[string]DataHandle),
	}
}

// BoardName returns the registry's persisted display name.
func (r *DataRegistry) BoardName() string { return r.boardName }

// SetBoardName sets the registry's persisted display name.
func (r *DataRegistry) SetBoardName(name string) { r.boardName = name }

// Register adds a new entry. Fails with ErrRegistryFull once MaxRegistryEntries
// entries exist, or ErrDuplicateName if the name is already registered;
// either failure leaves the registry unmodified.
func (r *DataRegistry) Register(name string, typ BTDataType) (DataHandle, error) {
	if name == "" {
		return InvalidDataHandle, fmt.Errorf("register %q: %w", name, ErrEmptyName)
	}
	if _, exists := r.byName[name]; exists {
		return InvalidDataHandle, fmt.Errorf("register %q: %w", name, ErrDuplicateName)
	}
	if len(r.entries) >= MaxRegistryEntries {
		return InvalidDataHandle, fmt.Errorf("register %q: %w", name, ErrRegistryFull)
	}
	handle := DataHandle(len(r.entries))
	r.entries = append(r.entries, DataEntry{Handle: handle, Name: name, Type: typ})
	r.byName[name] = handle
	return handle, nil
}

// HandleOf returns the handle registered under name, or InvalidDataHandle.
func (r *DataRegistry) HandleOf(name string) DataHandle {
	if h, ok := r.byName[name]; ok {
		return h
	}
	return InvalidDataHandle
}

// EntryOf returns the entry for a handle and whether it exists.
func (r *DataRegistry) EntryOf(handle DataHandle) (DataEntry, bool) {
	if handle < 0 || int(handle) >= len(r.entries) {
		return DataEntry{}, false
	}
	return r.entries[handle], true
}

// Entries returns the registry's entries in registration order. The slice
// is a defensive copy.
func (r *DataRegistry) Entries() []DataEntry {
	out := make([]DataEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of registered entries.
func (r *DataRegistry) Len() int { return len(r.entries) }

// DataTable is a sparse handle→Value map bound to one DataRegistry.
type DataTable struct {
	registry *DataRegistry
	values   map[DataHandle]Value
	order    []DataHandle
}

// NewDataTable creates a table bound to registry.
func NewDataTable(registry *DataRegistry) *DataTable {
	return &DataTable{
		registry: registry,
		values:   make(map[DataHandle]Value),
	}
}

// Registry returns the table's bound schema.
func (t *DataTable) Registry() *DataRegistry { return t.registry }

// Find returns the current value for handle and whether it is present.
func (t *DataTable) Find(handle DataHandle) (Value, bool) {
	v, ok := t.values[handle]
	return v, ok
}

// FindByName is a convenience wrapper around Find using the registry's
// name-to-handle lookup.
func (t *DataTable) FindByName(name string) (Value, bool) {
	handle := t.registry.HandleOf(name)
	if handle == InvalidDataHandle {
		return Value{}, false
	}
	return t.Find(handle)
}

// Set stores v under handle, appending handle to the insertion order if it
// was absent. A v whose tag differs from the registry's declared type is
// replaced by that type's default value. Returns false, storing nothing, if
// the handle is unknown to the registry.
func (t *DataTable) Set(handle DataHandle, v Value) bool {
	entry, ok := t.registry.EntryOf(handle)
	if !ok {
		return false
	}
	if v.Tag() != entry.Type {
		v = DefaultValue(entry.Type)
	}
	if _, existed := t.values[handle]; !existed {
		t.order = append(t.order, handle)
	}
	t.values[handle] = v
	return true
}

// Ensure returns the current value for handle, creating a default-typed
// entry first if absent. Returns false if the handle is unknown to the
// registry.
func (t *DataTable) Ensure(handle DataHandle) (Value, bool) {
	if v, ok := t.values[handle]; ok {
		return v, true
	}
	entry, ok := t.registry.EntryOf(handle)
	if !ok {
		return Value{}, false
	}
	v := DefaultValue(entry.Type)
	t.values[handle] = v
	t.order = append(t.order, handle)
	return v, true
}

// Unset removes a handle's value. No-op if absent.
func (t *DataTable) Unset(handle DataHandle) {
	if _, ok := t.values[handle]; !ok {
		return
	}
	delete(t.values, handle)
	for i, h := range t.order {
		if h == handle {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// SetByName resolves name through the registry and sets its value.
func (t *DataTable) SetByName(name string, v Value) bool {
	handle := t.registry.HandleOf(name)
	if handle == InvalidDataHandle {
		return false
	}
	return t.Set(handle, v)
}

// UnsetByName resolves name through the registry and unsets its value.
func (t *DataTable) UnsetByName(name string) {
	handle := t.registry.HandleOf(name)
	if handle == InvalidDataHandle {
		return
	}
	t.Unset(handle)
}

// Handles returns the handles currently holding a value, in insertion order.
func (t *DataTable) Handles() []DataHandle {
	out := make([]DataHandle, len(t.order))
	copy(out, t.order)
	return out
}
