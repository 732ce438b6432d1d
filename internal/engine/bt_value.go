package engine

import "fmt"

// BTDataType tags the payload carried by a Value.
type BTDataType uint32

const (
	BTTypeVoid BTDataType = iota
	BTTypeNumber
	BTTypeVector
	BTTypeBoolean
	BTTypeText
	BTTypePointer
	BTTypeActor
)

// String names a BTDataType for diagnostics and save-format field labels.
func (t BTDataType) String() string {
	switch t {
	case BTTypeVoid:
		return "Void"
	case BTTypeNumber:
		return "Number"
	case BTTypeVector:
		return "Vector"
	case BTTypeBoolean:
		return "Boolean"
	case BTTypeText:
		return "Text"
	case BTTypePointer:
		return "Pointer"
	case BTTypeActor:
		return "Actor"
	default:
		return "Unknown"
	}
}

// ActorUID is a packed generational handle to an external actor: 16 bits of
// index, 16 bits of salt. Zero is reserved as INVALID.
type ActorUID uint32

// InvalidActorUID is the zero handle.
const InvalidActorUID ActorUID = 0

// NewActorUID packs an index and salt into a handle. A zero index and salt
// still packs to zero (INVALID) by construction, matching the source format.
func NewActorUID(index, salt uint16) ActorUID {
	return ActorUID(uint32(salt)<<16 | uint32(index))
}

// Index returns the low 16 bits of the handle.
func (a ActorUID) Index() uint16 { return uint16(a & 0xFFFF) }

// Salt returns the high 16 bits of the handle.
func (a ActorUID) Salt() uint16 { return uint16(a >> 16) }

// IsValid reports whether the handle is non-zero.
func (a ActorUID) IsValid() bool { return a != InvalidActorUID }

// Value is a tagged variant of the seven primitive blackboard types. The tag
// is fixed at construction; reading through a mismatched accessor yields the
// requested type's default rather than mutating or panicking.
type Value struct {
	tag    BTDataType
	number float64
	vector Vector3
	boolean bool
	text   string
	pointer interface{}
	actor  ActorUID
}

// VoidValue returns the VOID value.
func VoidValue() Value { return Value{tag: BTTypeVoid} }

// NumberValue constructs a NUMBER value.
func NumberValue(v float64) Value { return Value{tag: BTTypeNumber, number: v} }

// VectorValue constructs a VECTOR value.
func VectorValue(v Vector3) Value { return Value{tag: BTTypeVector, vector: v} }

// BooleanValue constructs a BOOLEAN value.
func BooleanValue(v bool) Value { return Value{tag: BTTypeBoolean, boolean: v} }

// TextValue constructs a TEXT value.
func TextValue(v string) Value { return Value{tag: BTTypeText, text: v} }

// PointerValue constructs a POINTER value wrapping a host-owned object.
func PointerValue(v interface{}) Value { return Value{tag: BTTypePointer, pointer: v} }

// ActorValue constructs an ACTOR value.
func ActorValue(v ActorUID) Value { return Value{tag: BTTypeActor, actor: v} }

// DefaultValue constructs the zero value for a given tag.
func DefaultValue(tag BTDataType) Value {
	return Value{tag: tag}
}

// Tag returns the value's immutable type tag.
func (v Value) Tag() BTDataType { return v.tag }

// AsNumber returns the NUMBER payload, or the type's default (0.0) if the
// tag does not match.
func (v Value) AsNumber() float64 {
	if v.tag != BTTypeNumber {
		return 0.0
	}
	return v.number
}

// AsVector returns the VECTOR payload, or (0,0,0) if the tag does not match.
func (v Value) AsVector() Vector3 {
	if v.tag != BTTypeVector {
		return Vector3{}
	}
	return v.vector
}

// AsBoolean returns the BOOLEAN payload, or false if the tag does not match.
func (v Value) AsBoolean() bool {
	if v.tag != BTTypeBoolean {
		return false
	}
	return v.boolean
}

// AsText returns the TEXT payload, or "" if the tag does not match.
func (v Value) AsText() string {
	if v.tag != BTTypeText {
		return ""
	}
	return v.text
}

// AsPointer returns the POINTER payload, or nil if the tag does not match.
func (v Value) AsPointer() interface{} {
	if v.tag != BTTypePointer {
		return nil
	}
	return v.pointer
}

// AsActor returns the ACTOR payload, or InvalidActorUID if the tag does not
// match.
func (v Value) AsActor() ActorUID {
	if v.tag != BTTypeActor {
		return InvalidActorUID
	}
	return v.actor
}

// AssignFrom replaces the receiver's payload with other's, dispatching on
// other's tag. The source this is ported from dispatched on the receiver's
// prior tag instead, which read a mismatched union member whenever the two
// values differed in type; this copies the field that actually matches the
// incoming tag.
func (v *Value) AssignFrom(other Value) {
	*v = Value{tag: other.tag}
	switch other.tag {
	case BTTypeNumber:
		v.number = other.number
	case BTTypeVector:
		v.vector = other.vector
	case BTTypeBoolean:
		v.boolean = other.boolean
	case BTTypeText:
		v.text = other.text
	case BTTypePointer:
		v.pointer = other.pointer
	case BTTypeActor:
		v.actor = other.actor
	}
}

// Equal reports whether two values have the same tag and bitwise/string
// equal payload. POINTER values are equal iff they hold the identical Go
// value per ==; incomparable payloads are never equal to anything but
// themselves by identity, which == on interface{} already expresses for the
// comparable kinds this kernel stores there.
func (v Value) Equal(other Value) bool {
	if v.tag != other.tag {
		return false
	}
	switch v.tag {
	case BTTypeVoid:
		return true
	case BTTypeNumber:
		return v.number == other.number
	case BTTypeVector:
		return v.vector == other.vector
	case BTTypeBoolean:
		return v.boolean == other.boolean
	case BTTypeText:
		return v.text == other.text
	case BTTypePointer:
		return v.pointer == other.pointer
	case BTTypeActor:
		return v.actor == other.actor
	default:
		return false
	}
}

// String renders a Value for diagnostics.
func (v Value) String() string {
	switch v.tag {
	case BTTypeVoid:
		return "<void>"
	case BTTypeNumber:
		return fmt.Sprintf("%v", v.number)
	case BTTypeVector:
		return fmt.Sprintf("(%v, %v, %v)", v.vector.X, v.vector.Y, v.vector.Z)
	case BTTypeBoolean:
		return fmt.Sprintf("%v", v.boolean)
	case BTTypeText:
		return v.text
	case BTTypePointer:
		return fmt.Sprintf("<pointer %p>", v.pointer)
	case BTTypeActor:
		return fmt.Sprintf("actor#%d:%d", v.actor.Index(), v.actor.Salt())
	default:
		return "<unknown>"
	}
}
